package domain

import (
	"time"

	"github.com/google/uuid"
)

// ThreadSummary is the read-side preview of a message's replies: how many
// there are and who wrote the latest one. Messages without replies have no
// summary at all.
type ThreadSummary struct {
	ParentID             uuid.UUID `json:"parent_id"`
	Count                int       `json:"count"`
	LastReplyAt          time.Time `json:"last_reply_at"`
	LastReplyAuthorName  string    `json:"last_reply_author_name"`
	LastReplyAuthorImage *string   `json:"last_reply_author_image,omitempty"`
}
