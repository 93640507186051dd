package service

import (
	"context"
	"strings"
	"testing"

	"github.com/abdulrafay-07/slack/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type workspaceFixture struct {
	svc           *WorkspaceService
	workspaceRepo *fakeWorkspaceRepo
	memberRepo    *fakeMemberRepo
	channelRepo   *fakeChannelRepo
}

func newWorkspaceFixture() *workspaceFixture {
	workspaceRepo := newFakeWorkspaceRepo()
	memberRepo := newFakeMemberRepo()
	channelRepo := newFakeChannelRepo()
	return &workspaceFixture{
		svc:           NewWorkspaceService(workspaceRepo, memberRepo, channelRepo),
		workspaceRepo: workspaceRepo,
		memberRepo:    memberRepo,
		channelRepo:   channelRepo,
	}
}

func TestCreateWorkspaceBootstrap(t *testing.T) {
	f := newWorkspaceFixture()
	ctx := context.Background()
	creator := uuid.New()

	ws, err := f.svc.Create(ctx, creator, CreateWorkspaceInput{Name: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, creator, ws.OwnerID)
	assert.Len(t, ws.JoinCode, 6)

	member, err := f.memberRepo.GetByWorkspaceAndUser(ctx, ws.ID, creator)
	require.NoError(t, err)
	require.NotNil(t, member, "the creator becomes a member")
	assert.Equal(t, domain.RoleAdmin, member.Role)

	channels, err := f.channelRepo.ListByWorkspace(ctx, ws.ID)
	require.NoError(t, err)
	require.Len(t, channels, 1)
	assert.Equal(t, "general", channels[0].Name)
}

func TestJoinWorkspace(t *testing.T) {
	f := newWorkspaceFixture()
	ctx := context.Background()

	ws, err := f.svc.Create(ctx, uuid.New(), CreateWorkspaceInput{Name: "Acme"})
	require.NoError(t, err)

	joiner := uuid.New()

	_, err = f.svc.Join(ctx, joiner, ws.ID, "wrong1")
	assert.ErrorIs(t, err, ErrInvalidJoinCode)

	member, err := f.svc.Join(ctx, joiner, ws.ID, ws.JoinCode)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleMember, member.Role)

	_, err = f.svc.Join(ctx, joiner, ws.ID, ws.JoinCode)
	assert.ErrorIs(t, err, ErrAlreadyMember)
}

func TestJoinCodeIsCaseInsensitive(t *testing.T) {
	f := newWorkspaceFixture()
	ctx := context.Background()

	ws, err := f.svc.Create(ctx, uuid.New(), CreateWorkspaceInput{Name: "Acme"})
	require.NoError(t, err)

	_, err = f.svc.Join(ctx, uuid.New(), ws.ID, strings.ToUpper(ws.JoinCode))
	require.NoError(t, err)
}

func TestResetJoinCodeInvalidatesOldOne(t *testing.T) {
	f := newWorkspaceFixture()
	ctx := context.Background()
	admin := uuid.New()

	ws, err := f.svc.Create(ctx, admin, CreateWorkspaceInput{Name: "Acme"})
	require.NoError(t, err)
	oldCode := ws.JoinCode

	newCode, err := f.svc.ResetJoinCode(ctx, admin, ws.ID)
	require.NoError(t, err)
	assert.NotEqual(t, oldCode, newCode)

	_, err = f.svc.Join(ctx, uuid.New(), ws.ID, oldCode)
	assert.ErrorIs(t, err, ErrInvalidJoinCode)
}

func TestJoinCodeHiddenFromNonAdmins(t *testing.T) {
	f := newWorkspaceFixture()
	ctx := context.Background()
	admin := uuid.New()

	ws, err := f.svc.Create(ctx, admin, CreateWorkspaceInput{Name: "Acme"})
	require.NoError(t, err)

	memberUser := uuid.New()
	_, err = f.svc.Join(ctx, memberUser, ws.ID, ws.JoinCode)
	require.NoError(t, err)

	asAdmin, err := f.svc.GetByID(ctx, admin, ws.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, asAdmin.JoinCode)

	asMember, err := f.svc.GetByID(ctx, memberUser, ws.ID)
	require.NoError(t, err)
	assert.Empty(t, asMember.JoinCode)
}

func TestRemoveMemberRules(t *testing.T) {
	f := newWorkspaceFixture()
	ctx := context.Background()
	adminUser := uuid.New()

	ws, err := f.svc.Create(ctx, adminUser, CreateWorkspaceInput{Name: "Acme"})
	require.NoError(t, err)

	memberUser := uuid.New()
	member, err := f.svc.Join(ctx, memberUser, ws.ID, ws.JoinCode)
	require.NoError(t, err)

	admin, err := f.svc.CurrentMember(ctx, adminUser, ws.ID)
	require.NoError(t, err)

	// An admin cannot leave their own workspace.
	assert.ErrorIs(t, f.svc.RemoveMember(ctx, adminUser, admin.ID), ErrAdminCannotLeave)

	// A regular member cannot remove the admin.
	assert.ErrorIs(t, f.svc.RemoveMember(ctx, memberUser, admin.ID), ErrNotAdmin)

	// A regular member may leave on their own.
	require.NoError(t, f.svc.RemoveMember(ctx, memberUser, member.ID))
	_, err = f.svc.CurrentMember(ctx, memberUser, ws.ID)
	assert.ErrorIs(t, err, ErrNotMember)
}

func TestRenameRequiresAdmin(t *testing.T) {
	f := newWorkspaceFixture()
	ctx := context.Background()
	admin := uuid.New()

	ws, err := f.svc.Create(ctx, admin, CreateWorkspaceInput{Name: "Acme"})
	require.NoError(t, err)

	memberUser := uuid.New()
	_, err = f.svc.Join(ctx, memberUser, ws.ID, ws.JoinCode)
	require.NoError(t, err)

	_, err = f.svc.Rename(ctx, memberUser, ws.ID, "Evil Corp")
	assert.ErrorIs(t, err, ErrNotAdmin)

	renamed, err := f.svc.Rename(ctx, admin, ws.ID, "Acme v2")
	require.NoError(t, err)
	assert.Equal(t, "Acme v2", renamed.Name)
}
