package model

import (
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

// TimeLayout is a fixed-width UTC ISO-8601 layout. The nanosecond field is
// zero-padded so lexical order on stored timestamps is chronological order.
const TimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Now returns the current UTC time formatted with TimeLayout.
func Now() string {
	return time.Now().UTC().Format(TimeLayout)
}

// NewUserID ...
func NewUserID() string { return newID("usr_") }

// NewConversationID ...
func NewConversationID() string { return newID("conv_") }

// NewMessageID ...
func NewMessageID() string { return newID("msg_") }

// newID builds an entity-prefixed id from a random 128-bit suffix. Collisions
// are never checked for; at this scale they are not a concern.
func newID(prefix string) string {
	u := uuid.New()
	return prefix + hex.EncodeToString(u[:])
}
