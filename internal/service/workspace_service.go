package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/abdulrafay-07/slack/internal/domain"
	"github.com/abdulrafay-07/slack/internal/repository"
	"github.com/google/uuid"
)

var (
	ErrWorkspaceNotFound = errors.New("workspace not found")
	ErrNotMember         = errors.New("user is not a member of this workspace")
	ErrNotAdmin          = errors.New("only a workspace admin can perform this action")
	ErrAlreadyMember     = errors.New("user is already a member")
	ErrInvalidJoinCode   = errors.New("invalid join code")
	ErrAdminCannotLeave  = errors.New("an admin cannot leave the workspace")
)

type WorkspaceService struct {
	workspaceRepo repository.WorkspaceRepository
	memberRepo    repository.MemberRepository
	channelRepo   repository.ChannelRepository
}

func NewWorkspaceService(
	workspaceRepo repository.WorkspaceRepository,
	memberRepo repository.MemberRepository,
	channelRepo repository.ChannelRepository,
) *WorkspaceService {
	return &WorkspaceService{
		workspaceRepo: workspaceRepo,
		memberRepo:    memberRepo,
		channelRepo:   channelRepo,
	}
}

type CreateWorkspaceInput struct {
	Name string `json:"name"`
}

// WorkspaceInfo is the limited view shown on the join screen.
type WorkspaceInfo struct {
	Name     string `json:"name"`
	IsMember bool   `json:"is_member"`
}

// Create makes a workspace with a fresh join code, its creator as admin and
// a default "general" channel.
func (s *WorkspaceService) Create(ctx context.Context, userID uuid.UUID, input CreateWorkspaceInput) (*domain.Workspace, error) {
	joinCode, err := generateJoinCode()
	if err != nil {
		return nil, fmt.Errorf("generating join code: %w", err)
	}

	ws := &domain.Workspace{
		ID:        uuid.New(),
		Name:      input.Name,
		JoinCode:  joinCode,
		OwnerID:   userID,
		CreatedAt: time.Now(),
	}

	if err := s.workspaceRepo.Create(ctx, ws); err != nil {
		return nil, fmt.Errorf("creating workspace: %w", err)
	}

	member := &domain.Member{
		ID:          uuid.New(),
		WorkspaceID: ws.ID,
		UserID:      userID,
		Role:        domain.RoleAdmin,
		CreatedAt:   time.Now(),
	}
	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, fmt.Errorf("adding creator as member: %w", err)
	}

	channel := &domain.Channel{
		ID:          uuid.New(),
		WorkspaceID: ws.ID,
		Name:        "general",
		CreatedAt:   time.Now(),
	}
	if err := s.channelRepo.Create(ctx, channel); err != nil {
		return nil, fmt.Errorf("creating default channel: %w", err)
	}

	return ws, nil
}

func (s *WorkspaceService) GetByID(ctx context.Context, userID, workspaceID uuid.UUID) (*domain.Workspace, error) {
	member, err := s.memberRepo.GetByWorkspaceAndUser(ctx, workspaceID, userID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrNotMember
	}

	ws, err := s.workspaceRepo.GetByID(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if ws == nil {
		return nil, ErrWorkspaceNotFound
	}

	// Only admins get to see the join code.
	if member.Role != domain.RoleAdmin {
		ws.JoinCode = ""
	}

	return ws, nil
}

// GetInfo returns the name plus whether the caller already belongs, for the
// join screen. Non-members may call it.
func (s *WorkspaceService) GetInfo(ctx context.Context, userID, workspaceID uuid.UUID) (*WorkspaceInfo, error) {
	ws, err := s.workspaceRepo.GetByID(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if ws == nil {
		return nil, ErrWorkspaceNotFound
	}

	member, err := s.memberRepo.GetByWorkspaceAndUser(ctx, workspaceID, userID)
	if err != nil {
		return nil, err
	}

	return &WorkspaceInfo{Name: ws.Name, IsMember: member != nil}, nil
}

func (s *WorkspaceService) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Workspace, error) {
	workspaces, err := s.workspaceRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if workspaces == nil {
		workspaces = []domain.Workspace{}
	}
	for i := range workspaces {
		workspaces[i].JoinCode = ""
	}
	return workspaces, nil
}

func (s *WorkspaceService) Rename(ctx context.Context, userID, workspaceID uuid.UUID, name string) (*domain.Workspace, error) {
	if _, err := s.requireAdmin(ctx, userID, workspaceID); err != nil {
		return nil, err
	}

	if err := s.workspaceRepo.UpdateName(ctx, workspaceID, name); err != nil {
		return nil, fmt.Errorf("renaming workspace: %w", err)
	}

	return s.workspaceRepo.GetByID(ctx, workspaceID)
}

func (s *WorkspaceService) Delete(ctx context.Context, userID, workspaceID uuid.UUID) error {
	if _, err := s.requireAdmin(ctx, userID, workspaceID); err != nil {
		return err
	}
	return s.workspaceRepo.Delete(ctx, workspaceID)
}

// Join adds the caller as a member when the join code matches.
func (s *WorkspaceService) Join(ctx context.Context, userID, workspaceID uuid.UUID, joinCode string) (*domain.Member, error) {
	ws, err := s.workspaceRepo.GetByID(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if ws == nil {
		return nil, ErrWorkspaceNotFound
	}
	if !strings.EqualFold(joinCode, ws.JoinCode) {
		return nil, ErrInvalidJoinCode
	}

	existing, err := s.memberRepo.GetByWorkspaceAndUser(ctx, workspaceID, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyMember
	}

	member := &domain.Member{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		UserID:      userID,
		Role:        domain.RoleMember,
		CreatedAt:   time.Now(),
	}
	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, fmt.Errorf("joining workspace: %w", err)
	}

	return member, nil
}

// ResetJoinCode invalidates the current code by generating a new one.
func (s *WorkspaceService) ResetJoinCode(ctx context.Context, userID, workspaceID uuid.UUID) (string, error) {
	if _, err := s.requireAdmin(ctx, userID, workspaceID); err != nil {
		return "", err
	}

	joinCode, err := generateJoinCode()
	if err != nil {
		return "", fmt.Errorf("generating join code: %w", err)
	}
	if err := s.workspaceRepo.UpdateJoinCode(ctx, workspaceID, joinCode); err != nil {
		return "", fmt.Errorf("updating join code: %w", err)
	}

	return joinCode, nil
}

func (s *WorkspaceService) ListMembers(ctx context.Context, userID, workspaceID uuid.UUID) ([]domain.Member, error) {
	member, err := s.memberRepo.GetByWorkspaceAndUser(ctx, workspaceID, userID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrNotMember
	}

	members, err := s.memberRepo.ListByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if members == nil {
		members = []domain.Member{}
	}
	return members, nil
}

// CurrentMember resolves the caller's member record in a workspace.
func (s *WorkspaceService) CurrentMember(ctx context.Context, userID, workspaceID uuid.UUID) (*domain.Member, error) {
	member, err := s.memberRepo.GetByWorkspaceAndUser(ctx, workspaceID, userID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrNotMember
	}
	return member, nil
}

func (s *WorkspaceService) GetMember(ctx context.Context, userID, memberID uuid.UUID) (*domain.Member, error) {
	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrMemberNotFound
	}

	caller, err := s.memberRepo.GetByWorkspaceAndUser(ctx, member.WorkspaceID, userID)
	if err != nil {
		return nil, err
	}
	if caller == nil {
		return nil, ErrNotMember
	}

	return member, nil
}

func (s *WorkspaceService) UpdateMemberRole(ctx context.Context, userID, memberID uuid.UUID, role string) (*domain.Member, error) {
	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrMemberNotFound
	}

	if _, err := s.requireAdmin(ctx, userID, member.WorkspaceID); err != nil {
		return nil, err
	}

	if err := s.memberRepo.UpdateRole(ctx, memberID, role); err != nil {
		return nil, fmt.Errorf("updating member role: %w", err)
	}

	return s.memberRepo.GetByID(ctx, memberID)
}

// RemoveMember removes a member: admins remove non-admins, non-admins may
// remove only themselves (leave).
func (s *WorkspaceService) RemoveMember(ctx context.Context, userID, memberID uuid.UUID) error {
	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return err
	}
	if member == nil {
		return ErrMemberNotFound
	}

	caller, err := s.memberRepo.GetByWorkspaceAndUser(ctx, member.WorkspaceID, userID)
	if err != nil {
		return err
	}
	if caller == nil {
		return ErrNotMember
	}

	if caller.ID == member.ID {
		if member.Role == domain.RoleAdmin {
			return ErrAdminCannotLeave
		}
	} else {
		if caller.Role != domain.RoleAdmin {
			return ErrNotAdmin
		}
		if member.Role == domain.RoleAdmin {
			return ErrNotAdmin
		}
	}

	return s.memberRepo.Delete(ctx, memberID)
}

func (s *WorkspaceService) requireAdmin(ctx context.Context, userID, workspaceID uuid.UUID) (*domain.Member, error) {
	member, err := s.memberRepo.GetByWorkspaceAndUser(ctx, workspaceID, userID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrNotMember
	}
	if member.Role != domain.RoleAdmin {
		return nil, ErrNotAdmin
	}
	return member, nil
}

const joinCodeChars = "0123456789abcdefghijklmnopqrstuvwxyz"

func generateJoinCode() (string, error) {
	code := make([]byte, 6)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(joinCodeChars))))
		if err != nil {
			return "", err
		}
		code[i] = joinCodeChars[n.Int64()]
	}
	return string(code), nil
}
