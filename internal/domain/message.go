package domain

import (
	"time"

	"github.com/google/uuid"
)

// Message belongs to exactly one of a channel or a conversation. Replies
// carry the parent message ID and live in the same channel/conversation as
// their parent.
type Message struct {
	ID             uuid.UUID  `json:"id"`
	WorkspaceID    uuid.UUID  `json:"workspace_id"`
	MemberID       uuid.UUID  `json:"member_id"`
	ChannelID      *uuid.UUID `json:"channel_id,omitempty"`
	ConversationID *uuid.UUID `json:"conversation_id,omitempty"`
	ParentID       *uuid.UUID `json:"parent_id,omitempty"`
	Body           string     `json:"body"`
	FileKey        *string    `json:"file_key,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	EditedAt       *time.Time `json:"edited_at,omitempty"`
	// Joined fields
	AuthorName      string  `json:"author_name,omitempty"`
	AuthorAvatarURL *string `json:"author_avatar_url,omitempty"`
}
