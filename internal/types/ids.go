package types

import (
	"time"

	"github.com/google/uuid"
)

// NewRuleID generates a UUIDv7 rule identifier.
// Time-ordered IDs ensure sequential inserts cluster in B-tree pages.
// Panics on clock regression (uuid.Must); acceptable for ID generation.
func NewRuleID() RuleID {
	return RuleID(uuid.Must(uuid.NewV7()).String())
}

// NewDeliveryID generates a UUIDv7 outbox delivery identifier.
// Panics on clock regression (uuid.Must); acceptable for ID generation.
func NewDeliveryID() DeliveryID {
	return DeliveryID(uuid.Must(uuid.NewV7()).String())
}

// ParseRuleID validates and converts a string to RuleID.
// Rejects malformed UUIDs to prevent invalid IDs from entering the system.
func ParseRuleID(s string) (RuleID, error) {
	_, err := uuid.Parse(s)
	if err != nil {
		return "", err
	}
	return RuleID(s), nil
}

// DeliveryIDTime extracts the timestamp embedded in a UUIDv7 delivery ID.
// Enables time-based outbox queries without a database lookup.
// Returns zero time for invalid UUIDs; caller should check IsZero().
func DeliveryIDTime(id DeliveryID) time.Time {
	u, err := uuid.Parse(string(id))
	if err != nil {
		return time.Time{}
	}
	sec, nsec := u.Time().UnixTime()
	return time.Unix(sec, nsec)
}
