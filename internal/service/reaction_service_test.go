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

type reactionFixture struct {
	svc          *ReactionService
	reactionRepo *fakeReactionRepo

	workspace uuid.UUID
	user      uuid.UUID
	member    *domain.Member
	message   *domain.Message
}

func newReactionFixture(t *testing.T) *reactionFixture {
	t.Helper()
	ctx := context.Background()

	reactionRepo := newFakeReactionRepo()
	messageRepo := newFakeMessageRepo()
	memberRepo := newFakeMemberRepo()

	f := &reactionFixture{
		svc:          NewReactionService(reactionRepo, messageRepo, memberRepo),
		reactionRepo: reactionRepo,
		workspace:    uuid.New(),
		user:         uuid.New(),
	}

	f.member = &domain.Member{ID: uuid.New(), WorkspaceID: f.workspace, UserID: f.user, Role: domain.RoleMember}
	require.NoError(t, memberRepo.Create(ctx, f.member))

	channelID := uuid.New()
	f.message = &domain.Message{
		ID:          uuid.New(),
		WorkspaceID: f.workspace,
		MemberID:    f.member.ID,
		ChannelID:   &channelID,
		Body:        "ship it",
		CreatedAt:   time.Now(),
	}
	require.NoError(t, messageRepo.Create(ctx, f.message))

	return f
}

func TestToggleAddsThenRemoves(t *testing.T) {
	f := newReactionFixture(t)
	ctx := context.Background()

	added, err := f.svc.Toggle(ctx, f.user, f.message.ID, "👍")
	require.NoError(t, err)
	assert.True(t, added.Added)
	require.Len(t, f.reactionRepo.rows, 1)
	assert.Equal(t, "👍", f.reactionRepo.rows[0].Value)
	assert.Equal(t, f.member.ID, f.reactionRepo.rows[0].MemberID)

	removed, err := f.svc.Toggle(ctx, f.user, f.message.ID, "👍")
	require.NoError(t, err)
	assert.False(t, removed.Added)
	assert.Equal(t, added.ReactionID, removed.ReactionID)
	assert.Empty(t, f.reactionRepo.rows, "the second toggle deletes the row")
}

func TestToggleDistinctEmojiCoexist(t *testing.T) {
	f := newReactionFixture(t)
	ctx := context.Background()

	for _, value := range []string{"👍", "🎉", "🔥"} {
		res, err := f.svc.Toggle(ctx, f.user, f.message.ID, value)
		require.NoError(t, err)
		assert.True(t, res.Added)
	}
	assert.Len(t, f.reactionRepo.rows, 3)

	// Removing one leaves the others alone.
	res, err := f.svc.Toggle(ctx, f.user, f.message.ID, "🎉")
	require.NoError(t, err)
	assert.False(t, res.Added)
	require.Len(t, f.reactionRepo.rows, 2)
	assert.Equal(t, "👍", f.reactionRepo.rows[0].Value)
	assert.Equal(t, "🔥", f.reactionRepo.rows[1].Value)
}

func TestToggleLostInsertRace(t *testing.T) {
	f := newReactionFixture(t)
	ctx := context.Background()

	// A concurrent toggle lands the same row first; ours collides on the
	// unique index and becomes the removing half of the pair.
	f.reactionRepo.onCreate = func() {
		f.reactionRepo.onCreate = nil
		f.reactionRepo.rows = append(f.reactionRepo.rows, &domain.Reaction{
			ID:          uuid.New(),
			WorkspaceID: f.workspace,
			MessageID:   f.message.ID,
			MemberID:    f.member.ID,
			Value:       "👍",
			CreatedAt:   time.Now(),
		})
	}

	res, err := f.svc.Toggle(ctx, f.user, f.message.ID, "👍")
	require.NoError(t, err)
	assert.False(t, res.Added)
	assert.Empty(t, f.reactionRepo.rows)
}

func TestToggleUnknownMessage(t *testing.T) {
	f := newReactionFixture(t)

	_, err := f.svc.Toggle(context.Background(), f.user, uuid.New(), "👍")
	assert.ErrorIs(t, err, ErrMessageNotFound)
}

func TestToggleNonMember(t *testing.T) {
	f := newReactionFixture(t)

	_, err := f.svc.Toggle(context.Background(), uuid.New(), f.message.ID, "👍")
	assert.ErrorIs(t, err, ErrNotMember)
	assert.Empty(t, f.reactionRepo.rows)
}
