package ranking

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// EncodeCursor serializes the key tuple of the given row (normally the last
// row of a page) into an opaque pagination token. The tuple layout is exactly
// this mode's key list, in order.
func (m Mode) EncodeCursor(r *RankedProvider) (string, error) {
	values := make([]any, len(m.keys))
	for i, k := range m.keys {
		values[i] = k.Value(r)
	}
	payload, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("encode cursor: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(payload), nil
}

// DecodeCursor parses and validates an opaque pagination token against this
// mode's key tuple shape. A tuple whose arity does not match the current mode
// (for example a cursor minted while emergency mode was on, decoded after it
// was turned off) fails closed as INVALID_CURSOR instead of being
// misinterpreted field by field.
func (m Mode) DecodeCursor(token string) ([]any, error) {
	payload, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, NewValidationError(CodeInvalidCursor, "cursor is not valid base64")
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, NewValidationError(CodeInvalidCursor, "cursor payload is not a key tuple")
	}
	if len(raw) != len(m.keys) {
		return nil, NewValidationError(CodeInvalidCursor,
			fmt.Sprintf("cursor has %d keys, expected %d", len(raw), len(m.keys)))
	}
	values := make([]any, len(m.keys))
	for i, k := range m.keys {
		v, err := k.Parse(raw[i])
		if err != nil {
			return nil, NewValidationError(CodeInvalidCursor,
				fmt.Sprintf("cursor key %s: %v", k.Name, err))
		}
		values[i] = v
	}
	return values, nil
}
