package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContactChannelEventType(t *testing.T) {
	eventType, ok := ContactChannelEventType("CALL")
	assert.True(t, ok)
	assert.Equal(t, EVENT_CONTACT_CALL, eventType)

	eventType, ok = ContactChannelEventType("SMS")
	assert.True(t, ok)
	assert.Equal(t, EVENT_CONTACT_SMS, eventType)

	eventType, ok = ContactChannelEventType("WHATSAPP")
	assert.True(t, ok)
	assert.Equal(t, EVENT_CONTACT_WHATSAPP, eventType)

	_, ok = ContactChannelEventType("CARRIER_PIGEON")
	assert.False(t, ok)
}

func TestEventTypeSetsAreDisjoint(t *testing.T) {
	usage := GenuineUsageEventTypes()
	interactions := CustomerInteractionEventTypes()

	for _, u := range usage {
		assert.NotContains(t, interactions, u)
	}
}
