package domain

import (
	"time"

	"github.com/google/uuid"
)

type Workspace struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	JoinCode  string    `json:"join_code,omitempty"`
	OwnerID   uuid.UUID `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

type Member struct {
	ID          uuid.UUID `json:"id"`
	WorkspaceID uuid.UUID `json:"workspace_id"`
	UserID      uuid.UUID `json:"user_id"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
	// Joined fields
	UserName      string  `json:"user_name,omitempty"`
	UserEmail     string  `json:"user_email,omitempty"`
	UserAvatarURL *string `json:"user_avatar_url,omitempty"`
}
