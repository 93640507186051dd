package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abdulrafay-07/slack/internal/domain"
	"github.com/abdulrafay-07/slack/internal/repository"
	"github.com/google/uuid"
)

var ErrMemberNotFound = errors.New("member not found")

type ConversationService struct {
	conversationRepo repository.ConversationRepository
	memberRepo       repository.MemberRepository
}

func NewConversationService(conversationRepo repository.ConversationRepository, memberRepo repository.MemberRepository) *ConversationService {
	return &ConversationService{
		conversationRepo: conversationRepo,
		memberRepo:       memberRepo,
	}
}

// CreateOrGet returns the one conversation between the caller and the other
// member, creating it on first contact. Calling it again with the pair in
// either order returns the same conversation; a lost insert race resolves to
// the winner's row instead of a duplicate.
func (s *ConversationService) CreateOrGet(ctx context.Context, userID, workspaceID, otherMemberID uuid.UUID) (*domain.Conversation, error) {
	current, err := s.memberRepo.GetByWorkspaceAndUser(ctx, workspaceID, userID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrNotMember
	}

	other, err := s.memberRepo.GetByID(ctx, otherMemberID)
	if err != nil {
		return nil, err
	}
	if other == nil || other.WorkspaceID != workspaceID {
		return nil, ErrMemberNotFound
	}

	// Canonical pair order: smaller member ID first. Together with the
	// unique constraint this makes the unordered pair a single row.
	one, two := current.ID, other.ID
	if one.String() > two.String() {
		one, two = two, one
	}

	conv, err := s.conversationRepo.GetByMembers(ctx, workspaceID, one, two)
	if err != nil {
		return nil, err
	}
	if conv != nil {
		return conv, nil
	}

	conv = &domain.Conversation{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		MemberOneID: one,
		MemberTwoID: two,
		CreatedAt:   time.Now(),
	}

	err = s.conversationRepo.Create(ctx, conv)
	if errors.Is(err, repository.ErrDuplicate) {
		// Both participants navigated at once; the other insert won.
		return s.conversationRepo.GetByMembers(ctx, workspaceID, one, two)
	}
	if err != nil {
		return nil, fmt.Errorf("creating conversation: %w", err)
	}

	return conv, nil
}

// Get returns a conversation the caller participates in.
func (s *ConversationService) Get(ctx context.Context, userID, conversationID uuid.UUID) (*domain.Conversation, error) {
	conv, err := s.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, ErrConversationNotFound
	}

	member, err := s.memberRepo.GetByWorkspaceAndUser(ctx, conv.WorkspaceID, userID)
	if err != nil {
		return nil, err
	}
	if member == nil || (conv.MemberOneID != member.ID && conv.MemberTwoID != member.ID) {
		return nil, ErrNotParticipant
	}

	return conv, nil
}
