package repository

import (
	"context"
	"errors"

	"github.com/abdulrafay-07/slack/internal/domain"
	"github.com/google/uuid"
)

// ErrDuplicate is returned by inserts that hit a uniqueness constraint,
// e.g. two racing first-contact inserts for the same conversation pair.
var ErrDuplicate = errors.New("duplicate row")

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type WorkspaceRepository interface {
	Create(ctx context.Context, workspace *domain.Workspace) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Workspace, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Workspace, error)
	UpdateName(ctx context.Context, id uuid.UUID, name string) error
	UpdateJoinCode(ctx context.Context, id uuid.UUID, joinCode string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type MemberRepository interface {
	Create(ctx context.Context, member *domain.Member) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Member, error)
	GetByWorkspaceAndUser(ctx context.Context, workspaceID, userID uuid.UUID) (*domain.Member, error)
	ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.Member, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ChannelRepository interface {
	Create(ctx context.Context, channel *domain.Channel) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Channel, error)
	ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.Channel, error)
	UpdateName(ctx context.Context, id uuid.UUID, name string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ConversationRepository interface {
	Create(ctx context.Context, conv *domain.Conversation) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Conversation, error)
	// GetByMembers expects the pair in canonical order (memberOne <= memberTwo).
	GetByMembers(ctx context.Context, workspaceID, memberOneID, memberTwoID uuid.UUID) (*domain.Conversation, error)
}

type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Message, error)
	// List methods return messages newest first; the timeline assembler
	// restores chronological order inside each day group.
	ListByChannel(ctx context.Context, channelID uuid.UUID, before *uuid.UUID, limit int) ([]domain.Message, error)
	ListByConversation(ctx context.Context, conversationID uuid.UUID, before *uuid.UUID, limit int) ([]domain.Message, error)
	ListThread(ctx context.Context, parentID uuid.UUID, before *uuid.UUID, limit int) ([]domain.Message, error)
	UpdateBody(ctx context.Context, id uuid.UUID, body string) error
	Delete(ctx context.Context, id uuid.UUID) error
	ThreadSummaries(ctx context.Context, parentIDs []uuid.UUID) (map[uuid.UUID]*domain.ThreadSummary, error)
}

type ReactionRepository interface {
	Create(ctx context.Context, reaction *domain.Reaction) error
	Get(ctx context.Context, messageID, memberID uuid.UUID, value string) (*domain.Reaction, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// ListByMessageIDs returns each message's reactions in insertion order.
	ListByMessageIDs(ctx context.Context, messageIDs []uuid.UUID) (map[uuid.UUID][]domain.Reaction, error)
}
