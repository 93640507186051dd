package service

import (
	"context"
	"sort"
	"time"

	"github.com/abdulrafay-07/slack/internal/domain"
	"github.com/abdulrafay-07/slack/internal/repository"
	"github.com/google/uuid"
)

// In-memory repository fakes. They mirror the postgres repositories' contract:
// nil on not-found, repository.ErrDuplicate on uniqueness violations, list
// methods newest first.

type fakeUserRepo struct {
	users map[uuid.UUID]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

type fakeWorkspaceRepo struct {
	workspaces map[uuid.UUID]*domain.Workspace
}

func newFakeWorkspaceRepo() *fakeWorkspaceRepo {
	return &fakeWorkspaceRepo{workspaces: make(map[uuid.UUID]*domain.Workspace)}
}

func (r *fakeWorkspaceRepo) Create(_ context.Context, ws *domain.Workspace) error {
	cp := *ws
	r.workspaces[ws.ID] = &cp
	return nil
}

func (r *fakeWorkspaceRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Workspace, error) {
	if ws, ok := r.workspaces[id]; ok {
		cp := *ws
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeWorkspaceRepo) ListByUser(_ context.Context, _ uuid.UUID) ([]domain.Workspace, error) {
	return nil, nil
}

func (r *fakeWorkspaceRepo) UpdateName(_ context.Context, id uuid.UUID, name string) error {
	if ws, ok := r.workspaces[id]; ok {
		ws.Name = name
	}
	return nil
}

func (r *fakeWorkspaceRepo) UpdateJoinCode(_ context.Context, id uuid.UUID, joinCode string) error {
	if ws, ok := r.workspaces[id]; ok {
		ws.JoinCode = joinCode
	}
	return nil
}

func (r *fakeWorkspaceRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.workspaces, id)
	return nil
}

type fakeMemberRepo struct {
	members map[uuid.UUID]*domain.Member
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{members: make(map[uuid.UUID]*domain.Member)}
}

func (r *fakeMemberRepo) Create(_ context.Context, member *domain.Member) error {
	for _, m := range r.members {
		if m.WorkspaceID == member.WorkspaceID && m.UserID == member.UserID {
			return repository.ErrDuplicate
		}
	}
	cp := *member
	r.members[member.ID] = &cp
	return nil
}

func (r *fakeMemberRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Member, error) {
	if m, ok := r.members[id]; ok {
		cp := *m
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeMemberRepo) GetByWorkspaceAndUser(_ context.Context, workspaceID, userID uuid.UUID) (*domain.Member, error) {
	for _, m := range r.members {
		if m.WorkspaceID == workspaceID && m.UserID == userID {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeMemberRepo) ListByWorkspace(_ context.Context, workspaceID uuid.UUID) ([]domain.Member, error) {
	var out []domain.Member
	for _, m := range r.members {
		if m.WorkspaceID == workspaceID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeMemberRepo) UpdateRole(_ context.Context, id uuid.UUID, role string) error {
	if m, ok := r.members[id]; ok {
		m.Role = role
	}
	return nil
}

func (r *fakeMemberRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.members, id)
	return nil
}

type fakeChannelRepo struct {
	channels map[uuid.UUID]*domain.Channel
}

func newFakeChannelRepo() *fakeChannelRepo {
	return &fakeChannelRepo{channels: make(map[uuid.UUID]*domain.Channel)}
}

func (r *fakeChannelRepo) Create(_ context.Context, channel *domain.Channel) error {
	cp := *channel
	r.channels[channel.ID] = &cp
	return nil
}

func (r *fakeChannelRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Channel, error) {
	if c, ok := r.channels[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeChannelRepo) ListByWorkspace(_ context.Context, workspaceID uuid.UUID) ([]domain.Channel, error) {
	var out []domain.Channel
	for _, c := range r.channels {
		if c.WorkspaceID == workspaceID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeChannelRepo) UpdateName(_ context.Context, id uuid.UUID, name string) error {
	if c, ok := r.channels[id]; ok {
		c.Name = name
	}
	return nil
}

func (r *fakeChannelRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.channels, id)
	return nil
}

type fakeConversationRepo struct {
	conversations map[uuid.UUID]*domain.Conversation
	// onCreate runs before the insert's uniqueness check; tests use it to
	// slip in a competing row.
	onCreate func()
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{conversations: make(map[uuid.UUID]*domain.Conversation)}
}

func (r *fakeConversationRepo) Create(_ context.Context, conv *domain.Conversation) error {
	if r.onCreate != nil {
		r.onCreate()
	}
	for _, c := range r.conversations {
		if c.WorkspaceID == conv.WorkspaceID && c.MemberOneID == conv.MemberOneID && c.MemberTwoID == conv.MemberTwoID {
			return repository.ErrDuplicate
		}
	}
	cp := *conv
	r.conversations[conv.ID] = &cp
	return nil
}

func (r *fakeConversationRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Conversation, error) {
	if c, ok := r.conversations[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeConversationRepo) GetByMembers(_ context.Context, workspaceID, memberOneID, memberTwoID uuid.UUID) (*domain.Conversation, error) {
	for _, c := range r.conversations {
		if c.WorkspaceID == workspaceID && c.MemberOneID == memberOneID && c.MemberTwoID == memberTwoID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

type fakeMessageRepo struct {
	messages []*domain.Message
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{}
}

func (r *fakeMessageRepo) Create(_ context.Context, msg *domain.Message) error {
	cp := *msg
	r.messages = append(r.messages, &cp)
	return nil
}

func (r *fakeMessageRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Message, error) {
	for _, m := range r.messages {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeMessageRepo) list(match func(*domain.Message) bool, before *uuid.UUID, limit int) ([]domain.Message, error) {
	var cutoff time.Time
	if before != nil {
		for _, m := range r.messages {
			if m.ID == *before {
				cutoff = m.CreatedAt
			}
		}
	}

	var out []domain.Message
	for _, m := range r.messages {
		if !match(m) {
			continue
		}
		if before != nil && !m.CreatedAt.Before(cutoff) {
			continue
		}
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeMessageRepo) ListByChannel(_ context.Context, channelID uuid.UUID, before *uuid.UUID, limit int) ([]domain.Message, error) {
	return r.list(func(m *domain.Message) bool {
		return m.ChannelID != nil && *m.ChannelID == channelID && m.ParentID == nil
	}, before, limit)
}

func (r *fakeMessageRepo) ListByConversation(_ context.Context, conversationID uuid.UUID, before *uuid.UUID, limit int) ([]domain.Message, error) {
	return r.list(func(m *domain.Message) bool {
		return m.ConversationID != nil && *m.ConversationID == conversationID && m.ParentID == nil
	}, before, limit)
}

func (r *fakeMessageRepo) ListThread(_ context.Context, parentID uuid.UUID, before *uuid.UUID, limit int) ([]domain.Message, error) {
	return r.list(func(m *domain.Message) bool {
		return m.ParentID != nil && *m.ParentID == parentID
	}, before, limit)
}

func (r *fakeMessageRepo) UpdateBody(_ context.Context, id uuid.UUID, body string) error {
	for _, m := range r.messages {
		if m.ID == id {
			m.Body = body
			now := time.Now()
			m.EditedAt = &now
		}
	}
	return nil
}

func (r *fakeMessageRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, m := range r.messages {
		if m.ID == id {
			r.messages = append(r.messages[:i], r.messages[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeMessageRepo) ThreadSummaries(_ context.Context, parentIDs []uuid.UUID) (map[uuid.UUID]*domain.ThreadSummary, error) {
	wanted := make(map[uuid.UUID]bool, len(parentIDs))
	for _, id := range parentIDs {
		wanted[id] = true
	}

	out := make(map[uuid.UUID]*domain.ThreadSummary)
	for _, m := range r.messages {
		if m.ParentID == nil || !wanted[*m.ParentID] {
			continue
		}
		s := out[*m.ParentID]
		if s == nil {
			s = &domain.ThreadSummary{ParentID: *m.ParentID}
			out[*m.ParentID] = s
		}
		s.Count++
		if m.CreatedAt.After(s.LastReplyAt) {
			s.LastReplyAt = m.CreatedAt
			s.LastReplyAuthorName = m.AuthorName
			s.LastReplyAuthorImage = m.AuthorAvatarURL
		}
	}
	return out, nil
}

type fakeReactionRepo struct {
	rows []*domain.Reaction
	// onCreate mirrors fakeConversationRepo.onCreate.
	onCreate func()
}

func newFakeReactionRepo() *fakeReactionRepo {
	return &fakeReactionRepo{}
}

func (r *fakeReactionRepo) Create(_ context.Context, reaction *domain.Reaction) error {
	if r.onCreate != nil {
		r.onCreate()
	}
	for _, row := range r.rows {
		if row.MessageID == reaction.MessageID && row.MemberID == reaction.MemberID && row.Value == reaction.Value {
			return repository.ErrDuplicate
		}
	}
	cp := *reaction
	r.rows = append(r.rows, &cp)
	return nil
}

func (r *fakeReactionRepo) Get(_ context.Context, messageID, memberID uuid.UUID, value string) (*domain.Reaction, error) {
	for _, row := range r.rows {
		if row.MessageID == messageID && row.MemberID == memberID && row.Value == value {
			cp := *row
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeReactionRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, row := range r.rows {
		if row.ID == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeReactionRepo) ListByMessageIDs(_ context.Context, messageIDs []uuid.UUID) (map[uuid.UUID][]domain.Reaction, error) {
	wanted := make(map[uuid.UUID]bool, len(messageIDs))
	for _, id := range messageIDs {
		wanted[id] = true
	}

	out := make(map[uuid.UUID][]domain.Reaction)
	for _, row := range r.rows {
		if wanted[row.MessageID] {
			out[row.MessageID] = append(out[row.MessageID], *row)
		}
	}
	return out, nil
}
