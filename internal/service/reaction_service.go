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

type ReactionService struct {
	reactionRepo repository.ReactionRepository
	messageRepo  repository.MessageRepository
	memberRepo   repository.MemberRepository
	notifier     Notifier
}

func NewReactionService(
	reactionRepo repository.ReactionRepository,
	messageRepo repository.MessageRepository,
	memberRepo repository.MemberRepository,
) *ReactionService {
	return &ReactionService{
		reactionRepo: reactionRepo,
		messageRepo:  messageRepo,
		memberRepo:   memberRepo,
	}
}

func (s *ReactionService) SetNotifier(n Notifier) {
	s.notifier = n
}

type ToggleResult struct {
	ReactionID uuid.UUID `json:"reaction_id"`
	Added      bool      `json:"added"`
}

// Toggle adds the member's emoji to the message, or removes it if that exact
// (message, member, value) row already exists. A member can hold several
// different emoji on one message but never the same one twice.
func (s *ReactionService) Toggle(ctx context.Context, userID, messageID uuid.UUID, value string) (*ToggleResult, error) {
	msg, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, ErrMessageNotFound
	}

	member, err := s.memberRepo.GetByWorkspaceAndUser(ctx, msg.WorkspaceID, userID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrNotMember
	}

	existing, err := s.reactionRepo.Get(ctx, messageID, member.ID, value)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		if err := s.reactionRepo.Delete(ctx, existing.ID); err != nil {
			return nil, fmt.Errorf("removing reaction: %w", err)
		}
		s.notifyToggled(msg, existing, false)
		return &ToggleResult{ReactionID: existing.ID, Added: false}, nil
	}

	reaction := &domain.Reaction{
		ID:          uuid.New(),
		WorkspaceID: msg.WorkspaceID,
		MessageID:   messageID,
		MemberID:    member.ID,
		Value:       value,
		CreatedAt:   time.Now(),
	}

	err = s.reactionRepo.Create(ctx, reaction)
	if errors.Is(err, repository.ErrDuplicate) {
		// A concurrent toggle inserted the same row first; treat ours as the
		// removing half of the pair.
		existing, err = s.reactionRepo.Get(ctx, messageID, member.ID, value)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			if err := s.reactionRepo.Delete(ctx, existing.ID); err != nil {
				return nil, fmt.Errorf("removing reaction: %w", err)
			}
			s.notifyToggled(msg, existing, false)
			return &ToggleResult{ReactionID: existing.ID, Added: false}, nil
		}
		return nil, fmt.Errorf("adding reaction: %w", repository.ErrDuplicate)
	}
	if err != nil {
		return nil, fmt.Errorf("adding reaction: %w", err)
	}

	s.notifyToggled(msg, reaction, true)
	return &ToggleResult{ReactionID: reaction.ID, Added: true}, nil
}

func (s *ReactionService) notifyToggled(msg *domain.Message, reaction *domain.Reaction, added bool) {
	if s.notifier != nil {
		s.notifier.NotifyReactionToggled(msg, reaction, added)
	}
}
