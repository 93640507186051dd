package domain

import (
	"time"

	"github.com/google/uuid"
)

// Conversation is a direct-message thread between two workspace members.
// The pair is unordered: member_one_id always holds the lexicographically
// smaller member ID so each pair maps to exactly one row.
type Conversation struct {
	ID          uuid.UUID `json:"id"`
	WorkspaceID uuid.UUID `json:"workspace_id"`
	MemberOneID uuid.UUID `json:"member_one_id"`
	MemberTwoID uuid.UUID `json:"member_two_id"`
	CreatedAt   time.Time `json:"created_at"`
}
