package ranking

import "sort"

// Less reports whether a ranks strictly before b under this mode. The order
// is lexicographic over the mode's key list; the trailing id key makes it
// total, so two distinct providers never compare equal.
func (m Mode) Less(a, b *RankedProvider) bool {
	for _, k := range m.keys {
		c := k.Compare(a, b)
		if c == 0 {
			continue
		}
		if k.Desc {
			return c > 0
		}
		return c < 0
	}
	return false
}

// Sort orders providers in place by this mode's ranking.
func (m Mode) Sort(providers []RankedProvider) {
	sort.Slice(providers, func(i, j int) bool {
		return m.Less(&providers[i], &providers[j])
	})
}
