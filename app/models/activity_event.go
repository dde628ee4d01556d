package models

import (
	"time"
)

const (
	EVENT_PROFILE_VIEW     = "PROFILE_VIEW"
	EVENT_STATUS_UPDATE    = "STATUS_UPDATE"
	EVENT_LOGIN            = "LOGIN"
	EVENT_CONTACT_CALL     = "CONTACT_CALL"
	EVENT_CONTACT_SMS      = "CONTACT_SMS"
	EVENT_CONTACT_WHATSAPP = "CONTACT_WHATSAPP"
	EVENT_OPENED_FOR_WORK  = "OPENED_FOR_WORK"
)

// ActivityEvent is an append-only usage fact. Rows are only ever inserted;
// the ranking and verification code reads aggregates over them.
type ActivityEvent struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ProviderID uint      `gorm:"index:idx_event_provider_created;not null" json:"provider_id"`
	EventType  string    `gorm:"type:varchar(30);not null" json:"event_type"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index:idx_event_provider_created" json:"created_at"`
}

// GenuineUsageEventTypes are the event types counted towards "distinct active
// days" for verification. Contact events are excluded so that customer
// traffic alone cannot verify an otherwise idle provider.
func GenuineUsageEventTypes() []string {
	return []string{EVENT_PROFILE_VIEW, EVENT_STATUS_UPDATE, EVENT_LOGIN}
}

// CustomerInteractionEventTypes are the customer-facing contact channels.
func CustomerInteractionEventTypes() []string {
	return []string{EVENT_CONTACT_CALL, EVENT_CONTACT_SMS, EVENT_CONTACT_WHATSAPP}
}

// ContactChannelEventType maps a public contact channel to its event type.
func ContactChannelEventType(channel string) (string, bool) {
	switch channel {
	case "CALL":
		return EVENT_CONTACT_CALL, true
	case "SMS":
		return EVENT_CONTACT_SMS, true
	case "WHATSAPP":
		return EVENT_CONTACT_WHATSAPP, true
	default:
		return "", false
	}
}
