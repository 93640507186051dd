package service

import (
	"context"
	"testing"

	"github.com/abdulrafay-07/slack/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeChannelName(t *testing.T) {
	assert.Equal(t, "team-updates", normalizeChannelName("Team Updates"))
	assert.Equal(t, "general", normalizeChannelName("  General  "))
	assert.Equal(t, "qa-2", normalizeChannelName("QA #2"))
	assert.Equal(t, "already-fine", normalizeChannelName("already-fine"))
}

func TestChannelCreateRequiresAdmin(t *testing.T) {
	channelRepo := newFakeChannelRepo()
	memberRepo := newFakeMemberRepo()
	svc := NewChannelService(channelRepo, memberRepo)
	ctx := context.Background()

	workspace := uuid.New()
	adminUser := uuid.New()
	memberUser := uuid.New()
	require.NoError(t, memberRepo.Create(ctx, &domain.Member{ID: uuid.New(), WorkspaceID: workspace, UserID: adminUser, Role: domain.RoleAdmin}))
	require.NoError(t, memberRepo.Create(ctx, &domain.Member{ID: uuid.New(), WorkspaceID: workspace, UserID: memberUser, Role: domain.RoleMember}))

	_, err := svc.Create(ctx, memberUser, workspace, "Team Updates")
	assert.ErrorIs(t, err, ErrNotAdmin)

	_, err = svc.Create(ctx, uuid.New(), workspace, "Team Updates")
	assert.ErrorIs(t, err, ErrNotMember)

	channel, err := svc.Create(ctx, adminUser, workspace, "Team Updates")
	require.NoError(t, err)
	assert.Equal(t, "team-updates", channel.Name)

	listed, err := svc.ListByWorkspace(ctx, memberUser, workspace)
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}
