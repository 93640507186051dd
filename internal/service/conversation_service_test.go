package service

import (
	"context"
	"testing"
	"time"

	"github.com/abdulrafay-07/slack/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type conversationFixture struct {
	svc       *ConversationService
	convRepo  *fakeConversationRepo
	workspace uuid.UUID

	aliceUser   uuid.UUID
	aliceMember *domain.Member
	bobUser     uuid.UUID
	bobMember   *domain.Member
}

func newConversationFixture(t *testing.T) *conversationFixture {
	t.Helper()

	memberRepo := newFakeMemberRepo()
	convRepo := newFakeConversationRepo()

	f := &conversationFixture{
		svc:       NewConversationService(convRepo, memberRepo),
		convRepo:  convRepo,
		workspace: uuid.New(),
		aliceUser: uuid.New(),
		bobUser:   uuid.New(),
	}

	f.aliceMember = &domain.Member{ID: uuid.New(), WorkspaceID: f.workspace, UserID: f.aliceUser, Role: domain.RoleAdmin, CreatedAt: time.Now()}
	f.bobMember = &domain.Member{ID: uuid.New(), WorkspaceID: f.workspace, UserID: f.bobUser, Role: domain.RoleMember, CreatedAt: time.Now()}
	require.NoError(t, memberRepo.Create(context.Background(), f.aliceMember))
	require.NoError(t, memberRepo.Create(context.Background(), f.bobMember))

	return f
}

func TestCreateOrGetIsIdempotentAcrossPairOrder(t *testing.T) {
	f := newConversationFixture(t)
	ctx := context.Background()

	first, err := f.svc.CreateOrGet(ctx, f.aliceUser, f.workspace, f.bobMember.ID)
	require.NoError(t, err)
	require.NotNil(t, first)

	// The pair in canonical order regardless of who initiated.
	assert.True(t, first.MemberOneID.String() <= first.MemberTwoID.String())

	// Same pair from the other side resolves to the same conversation.
	second, err := f.svc.CreateOrGet(ctx, f.bobUser, f.workspace, f.aliceMember.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	// Repeat from the original side too.
	third, err := f.svc.CreateOrGet(ctx, f.aliceUser, f.workspace, f.bobMember.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, third.ID)

	assert.Len(t, f.convRepo.conversations, 1)
}

func TestCreateOrGetLostInsertRace(t *testing.T) {
	f := newConversationFixture(t)
	ctx := context.Background()

	// A competing request inserts the row between our existence check and
	// our insert; the unique constraint rejects ours and we re-read theirs.
	winner := &domain.Conversation{
		ID:          uuid.New(),
		WorkspaceID: f.workspace,
		CreatedAt:   time.Now(),
	}
	winner.MemberOneID, winner.MemberTwoID = f.aliceMember.ID, f.bobMember.ID
	if winner.MemberOneID.String() > winner.MemberTwoID.String() {
		winner.MemberOneID, winner.MemberTwoID = winner.MemberTwoID, winner.MemberOneID
	}

	f.convRepo.onCreate = func() {
		f.convRepo.onCreate = nil
		cp := *winner
		f.convRepo.conversations[winner.ID] = &cp
	}

	conv, err := f.svc.CreateOrGet(ctx, f.aliceUser, f.workspace, f.bobMember.ID)
	require.NoError(t, err)
	assert.Equal(t, winner.ID, conv.ID)
	assert.Len(t, f.convRepo.conversations, 1)
}

func TestCreateOrGetCallerNotMember(t *testing.T) {
	f := newConversationFixture(t)

	_, err := f.svc.CreateOrGet(context.Background(), uuid.New(), f.workspace, f.bobMember.ID)
	assert.ErrorIs(t, err, ErrNotMember)
	assert.Empty(t, f.convRepo.conversations)
}

func TestCreateOrGetOtherMemberUnknown(t *testing.T) {
	f := newConversationFixture(t)

	_, err := f.svc.CreateOrGet(context.Background(), f.aliceUser, f.workspace, uuid.New())
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestCreateOrGetOtherMemberFromAnotherWorkspace(t *testing.T) {
	f := newConversationFixture(t)
	ctx := context.Background()

	memberRepo := newFakeMemberRepo()
	foreign := &domain.Member{ID: uuid.New(), WorkspaceID: uuid.New(), UserID: uuid.New(), Role: domain.RoleMember}
	require.NoError(t, memberRepo.Create(ctx, foreign))
	require.NoError(t, memberRepo.Create(ctx, f.aliceMember))
	svc := NewConversationService(f.convRepo, memberRepo)

	_, err := svc.CreateOrGet(ctx, f.aliceUser, f.workspace, foreign.ID)
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestCreateOrGetSelfConversation(t *testing.T) {
	f := newConversationFixture(t)
	ctx := context.Background()

	// Notes-to-self: both sides of the pair are the same member.
	conv, err := f.svc.CreateOrGet(ctx, f.aliceUser, f.workspace, f.aliceMember.ID)
	require.NoError(t, err)
	assert.Equal(t, f.aliceMember.ID, conv.MemberOneID)
	assert.Equal(t, f.aliceMember.ID, conv.MemberTwoID)

	again, err := f.svc.CreateOrGet(ctx, f.aliceUser, f.workspace, f.aliceMember.ID)
	require.NoError(t, err)
	assert.Equal(t, conv.ID, again.ID)
}

func TestGetConversationRequiresParticipant(t *testing.T) {
	f := newConversationFixture(t)
	ctx := context.Background()

	conv, err := f.svc.CreateOrGet(ctx, f.aliceUser, f.workspace, f.bobMember.ID)
	require.NoError(t, err)

	got, err := f.svc.Get(ctx, f.bobUser, conv.ID)
	require.NoError(t, err)
	assert.Equal(t, conv.ID, got.ID)

	_, err = f.svc.Get(ctx, uuid.New(), conv.ID)
	assert.ErrorIs(t, err, ErrNotParticipant)

	_, err = f.svc.Get(ctx, f.aliceUser, uuid.New())
	assert.ErrorIs(t, err, ErrConversationNotFound)
}
