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

var (
	ErrMessageNotFound      = errors.New("message not found")
	ErrNotMessageOwner      = errors.New("only the message author can perform this action")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrNotParticipant       = errors.New("you are not a participant of this conversation")
	ErrInvalidTarget        = errors.New("message needs exactly one of channel or conversation")
)

// Notifier broadcasts real-time events to connected clients.
type Notifier interface {
	NotifyNewMessage(msg *domain.Message)
	NotifyEditedMessage(msg *domain.Message)
	NotifyDeletedMessage(topicID, messageID uuid.UUID)
	NotifyReactionToggled(msg *domain.Message, reaction *domain.Reaction, added bool)
}

type MessageService struct {
	messageRepo      repository.MessageRepository
	reactionRepo     repository.ReactionRepository
	channelRepo      repository.ChannelRepository
	conversationRepo repository.ConversationRepository
	memberRepo       repository.MemberRepository
	notifier         Notifier
}

func NewMessageService(
	messageRepo repository.MessageRepository,
	reactionRepo repository.ReactionRepository,
	channelRepo repository.ChannelRepository,
	conversationRepo repository.ConversationRepository,
	memberRepo repository.MemberRepository,
) *MessageService {
	return &MessageService{
		messageRepo:      messageRepo,
		reactionRepo:     reactionRepo,
		channelRepo:      channelRepo,
		conversationRepo: conversationRepo,
		memberRepo:       memberRepo,
	}
}

// SetNotifier sets the real-time notifier (optional dependency).
func (s *MessageService) SetNotifier(n Notifier) {
	s.notifier = n
}

type SendMessageInput struct {
	Body           string     `json:"body"`
	FileKey        *string    `json:"file_key,omitempty"`
	ChannelID      *uuid.UUID `json:"channel_id,omitempty"`
	ConversationID *uuid.UUID `json:"conversation_id,omitempty"`
	ParentID       *uuid.UUID `json:"parent_id,omitempty"`
}

type TimelineResponse struct {
	Days       []DayGroup `json:"days"`
	HasMore    bool       `json:"has_more"`
	NextCursor *uuid.UUID `json:"next_cursor,omitempty"`
}

func emptyTimeline() *TimelineResponse {
	return &TimelineResponse{Days: []DayGroup{}}
}

// Send posts a message to a channel, a conversation, or a thread. Replies
// inherit the parent's channel/conversation so thread activity reaches the
// same subscribers.
func (s *MessageService) Send(ctx context.Context, userID uuid.UUID, input SendMessageInput) (*domain.Message, error) {
	var workspaceID uuid.UUID
	var channelID, conversationID *uuid.UUID

	switch {
	case input.ParentID != nil:
		parent, err := s.messageRepo.GetByID(ctx, *input.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, ErrMessageNotFound
		}
		workspaceID = parent.WorkspaceID
		channelID = parent.ChannelID
		conversationID = parent.ConversationID

	case input.ChannelID != nil && input.ConversationID == nil:
		channel, err := s.channelRepo.GetByID(ctx, *input.ChannelID)
		if err != nil {
			return nil, err
		}
		if channel == nil {
			return nil, ErrChannelNotFound
		}
		workspaceID = channel.WorkspaceID
		channelID = input.ChannelID

	case input.ConversationID != nil && input.ChannelID == nil:
		conv, err := s.conversationRepo.GetByID(ctx, *input.ConversationID)
		if err != nil {
			return nil, err
		}
		if conv == nil {
			return nil, ErrConversationNotFound
		}
		workspaceID = conv.WorkspaceID
		conversationID = input.ConversationID

	default:
		return nil, ErrInvalidTarget
	}

	member, err := s.memberRepo.GetByWorkspaceAndUser(ctx, workspaceID, userID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrNotMember
	}

	if conversationID != nil {
		conv, err := s.conversationRepo.GetByID(ctx, *conversationID)
		if err != nil {
			return nil, err
		}
		if conv == nil {
			return nil, ErrConversationNotFound
		}
		if conv.MemberOneID != member.ID && conv.MemberTwoID != member.ID {
			return nil, ErrNotParticipant
		}
	}

	msg := &domain.Message{
		ID:             uuid.New(),
		WorkspaceID:    workspaceID,
		MemberID:       member.ID,
		ChannelID:      channelID,
		ConversationID: conversationID,
		ParentID:       input.ParentID,
		Body:           input.Body,
		FileKey:        input.FileKey,
		CreatedAt:      time.Now(),
	}

	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("creating message: %w", err)
	}

	full, err := s.messageRepo.GetByID(ctx, msg.ID)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyNewMessage(full)
	}

	return full, nil
}

// Get returns a single message with its aggregated reactions and thread
// summary, for a thread panel or an edit form.
func (s *MessageService) Get(ctx context.Context, userID, messageID uuid.UUID) (*TimelineMessage, error) {
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

	reactions, err := s.reactionRepo.ListByMessageIDs(ctx, []uuid.UUID{messageID})
	if err != nil {
		return nil, err
	}
	threads, err := s.messageRepo.ThreadSummaries(ctx, []uuid.UUID{messageID})
	if err != nil {
		return nil, err
	}

	return &TimelineMessage{
		Message:   *msg,
		Reactions: aggregateReactions(reactions[messageID], member.ID),
		Thread:    threads[messageID],
	}, nil
}

// ListChannel returns a channel's day-grouped timeline page. Callers outside
// the workspace (and unknown channels) get an empty timeline, so the
// endpoint never confirms a channel exists.
func (s *MessageService) ListChannel(ctx context.Context, userID, channelID uuid.UUID, before *uuid.UUID, limit int) (*TimelineResponse, error) {
	channel, err := s.channelRepo.GetByID(ctx, channelID)
	if err != nil {
		return nil, err
	}
	if channel == nil {
		return emptyTimeline(), nil
	}

	member, err := s.memberRepo.GetByWorkspaceAndUser(ctx, channel.WorkspaceID, userID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return emptyTimeline(), nil
	}

	return s.assemblePage(ctx, member.ID, before, limit, true, func(limit int) ([]domain.Message, error) {
		return s.messageRepo.ListByChannel(ctx, channelID, before, limit)
	})
}

// ListConversation returns a conversation's timeline page; non-participants
// get an empty timeline.
func (s *MessageService) ListConversation(ctx context.Context, userID, conversationID uuid.UUID, before *uuid.UUID, limit int) (*TimelineResponse, error) {
	conv, err := s.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return emptyTimeline(), nil
	}

	member, err := s.memberRepo.GetByWorkspaceAndUser(ctx, conv.WorkspaceID, userID)
	if err != nil {
		return nil, err
	}
	if member == nil || (conv.MemberOneID != member.ID && conv.MemberTwoID != member.ID) {
		return emptyTimeline(), nil
	}

	return s.assemblePage(ctx, member.ID, before, limit, true, func(limit int) ([]domain.Message, error) {
		return s.messageRepo.ListByConversation(ctx, conversationID, before, limit)
	})
}

// ListThread returns the replies under a parent message, day-grouped like
// any other timeline.
func (s *MessageService) ListThread(ctx context.Context, userID, parentID uuid.UUID, before *uuid.UUID, limit int) (*TimelineResponse, error) {
	parent, err := s.messageRepo.GetByID(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return emptyTimeline(), nil
	}

	member, err := s.memberRepo.GetByWorkspaceAndUser(ctx, parent.WorkspaceID, userID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return emptyTimeline(), nil
	}

	return s.assemblePage(ctx, member.ID, before, limit, false, func(limit int) ([]domain.Message, error) {
		return s.messageRepo.ListThread(ctx, parentID, before, limit)
	})
}

func (s *MessageService) assemblePage(
	ctx context.Context,
	viewerMemberID uuid.UUID,
	before *uuid.UUID,
	limit int,
	withThreads bool,
	fetch func(limit int) ([]domain.Message, error),
) (*TimelineResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	// Fetch one extra row to learn whether an older page exists.
	messages, err := fetch(limit + 1)
	if err != nil {
		return nil, err
	}

	hasMore := len(messages) > limit
	if hasMore {
		messages = messages[:limit]
	}

	ids := make([]uuid.UUID, len(messages))
	for i, msg := range messages {
		ids[i] = msg.ID
	}

	reactions, err := s.reactionRepo.ListByMessageIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	threads := map[uuid.UUID]*domain.ThreadSummary{}
	if withThreads {
		threads, err = s.messageRepo.ThreadSummaries(ctx, ids)
		if err != nil {
			return nil, err
		}
	}

	resp := &TimelineResponse{
		Days:    AssembleTimeline(messages, reactions, threads, viewerMemberID, time.Now()),
		HasMore: hasMore,
	}
	if hasMore && len(messages) > 0 {
		oldest := messages[len(messages)-1].ID
		resp.NextCursor = &oldest
	}
	return resp, nil
}

// Edit replaces a message body. Only the author can edit, and the edit
// stamps edited_at.
func (s *MessageService) Edit(ctx context.Context, userID, messageID uuid.UUID, body string) (*domain.Message, error) {
	msg, _, err := s.getOwned(ctx, userID, messageID)
	if err != nil {
		return nil, err
	}

	if err := s.messageRepo.UpdateBody(ctx, messageID, body); err != nil {
		return nil, fmt.Errorf("updating message: %w", err)
	}

	updated, err := s.messageRepo.GetByID(ctx, msg.ID)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyEditedMessage(updated)
	}

	return updated, nil
}

// Delete removes a message outright. Its reactions go with it and any
// replies lose their parent linkage.
func (s *MessageService) Delete(ctx context.Context, userID, messageID uuid.UUID) error {
	msg, _, err := s.getOwned(ctx, userID, messageID)
	if err != nil {
		return err
	}

	if err := s.messageRepo.Delete(ctx, messageID); err != nil {
		return fmt.Errorf("deleting message: %w", err)
	}

	if s.notifier != nil {
		s.notifier.NotifyDeletedMessage(MessageTopic(msg), messageID)
	}

	return nil
}

func (s *MessageService) getOwned(ctx context.Context, userID, messageID uuid.UUID) (*domain.Message, *domain.Member, error) {
	msg, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return nil, nil, err
	}
	if msg == nil {
		return nil, nil, ErrMessageNotFound
	}

	member, err := s.memberRepo.GetByWorkspaceAndUser(ctx, msg.WorkspaceID, userID)
	if err != nil {
		return nil, nil, err
	}
	if member == nil {
		return nil, nil, ErrNotMember
	}
	if msg.MemberID != member.ID {
		return nil, nil, ErrNotMessageOwner
	}

	return msg, member, nil
}

// MessageTopic is the broadcast topic for a message: its channel or its
// conversation.
func MessageTopic(msg *domain.Message) uuid.UUID {
	if msg.ChannelID != nil {
		return *msg.ChannelID
	}
	if msg.ConversationID != nil {
		return *msg.ConversationID
	}
	return uuid.Nil
}
