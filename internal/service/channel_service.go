package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/abdulrafay-07/slack/internal/domain"
	"github.com/abdulrafay-07/slack/internal/repository"
	"github.com/google/uuid"
)

var ErrChannelNotFound = errors.New("channel not found")

type ChannelService struct {
	channelRepo repository.ChannelRepository
	memberRepo  repository.MemberRepository
}

func NewChannelService(channelRepo repository.ChannelRepository, memberRepo repository.MemberRepository) *ChannelService {
	return &ChannelService{
		channelRepo: channelRepo,
		memberRepo:  memberRepo,
	}
}

func (s *ChannelService) Create(ctx context.Context, userID, workspaceID uuid.UUID, name string) (*domain.Channel, error) {
	if err := s.requireAdmin(ctx, userID, workspaceID); err != nil {
		return nil, err
	}

	channel := &domain.Channel{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		Name:        normalizeChannelName(name),
		CreatedAt:   time.Now(),
	}

	if err := s.channelRepo.Create(ctx, channel); err != nil {
		return nil, fmt.Errorf("creating channel: %w", err)
	}

	return channel, nil
}

func (s *ChannelService) GetByID(ctx context.Context, userID, channelID uuid.UUID) (*domain.Channel, error) {
	channel, err := s.channelRepo.GetByID(ctx, channelID)
	if err != nil {
		return nil, err
	}
	if channel == nil {
		return nil, ErrChannelNotFound
	}

	member, err := s.memberRepo.GetByWorkspaceAndUser(ctx, channel.WorkspaceID, userID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrNotMember
	}

	return channel, nil
}

func (s *ChannelService) ListByWorkspace(ctx context.Context, userID, workspaceID uuid.UUID) ([]domain.Channel, error) {
	member, err := s.memberRepo.GetByWorkspaceAndUser(ctx, workspaceID, userID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrNotMember
	}

	channels, err := s.channelRepo.ListByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if channels == nil {
		channels = []domain.Channel{}
	}
	return channels, nil
}

func (s *ChannelService) Rename(ctx context.Context, userID, channelID uuid.UUID, name string) (*domain.Channel, error) {
	channel, err := s.channelRepo.GetByID(ctx, channelID)
	if err != nil {
		return nil, err
	}
	if channel == nil {
		return nil, ErrChannelNotFound
	}

	if err := s.requireAdmin(ctx, userID, channel.WorkspaceID); err != nil {
		return nil, err
	}

	if err := s.channelRepo.UpdateName(ctx, channelID, normalizeChannelName(name)); err != nil {
		return nil, fmt.Errorf("renaming channel: %w", err)
	}

	return s.channelRepo.GetByID(ctx, channelID)
}

func (s *ChannelService) Delete(ctx context.Context, userID, channelID uuid.UUID) error {
	channel, err := s.channelRepo.GetByID(ctx, channelID)
	if err != nil {
		return err
	}
	if channel == nil {
		return ErrChannelNotFound
	}

	if err := s.requireAdmin(ctx, userID, channel.WorkspaceID); err != nil {
		return err
	}

	return s.channelRepo.Delete(ctx, channelID)
}

func (s *ChannelService) requireAdmin(ctx context.Context, userID, workspaceID uuid.UUID) error {
	member, err := s.memberRepo.GetByWorkspaceAndUser(ctx, workspaceID, userID)
	if err != nil {
		return err
	}
	if member == nil {
		return ErrNotMember
	}
	if member.Role != domain.RoleAdmin {
		return ErrNotAdmin
	}
	return nil
}

var channelNameStrip = regexp.MustCompile(`[^a-z0-9-]`)

// normalizeChannelName lowercases and dashes the name the way the client's
// channel form does ("Team Updates" -> "team-updates").
func normalizeChannelName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, " ", "-")
	return channelNameStrip.ReplaceAllString(name, "")
}
