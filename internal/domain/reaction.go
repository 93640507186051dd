package domain

import (
	"time"

	"github.com/google/uuid"
)

// Reaction is one member's emoji on one message. At most one row exists per
// (message, member, value); toggling the same value again removes the row.
type Reaction struct {
	ID          uuid.UUID `json:"id"`
	WorkspaceID uuid.UUID `json:"workspace_id"`
	MessageID   uuid.UUID `json:"message_id"`
	MemberID    uuid.UUID `json:"member_id"`
	Value       string    `json:"value"`
	CreatedAt   time.Time `json:"created_at"`
}
