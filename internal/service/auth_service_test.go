package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), "test-secret")
	ctx := context.Background()

	resp, err := svc.Register(ctx, RegisterInput{
		Email:    "alice@example.com",
		Name:     "Alice",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEqual(t, "hunter2hunter2", resp.User.PasswordHash, "password is stored hashed")

	login, err := svc.Login(ctx, LoginInput{Email: "alice@example.com", Password: "hunter2hunter2"})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)

	_, err = svc.Login(ctx, LoginInput{Email: "alice@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCreds)

	_, err = svc.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "hunter2hunter2"})
	assert.ErrorIs(t, err, ErrInvalidCreds)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), "test-secret")
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "a@b.com", Name: "A", Password: "password1"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Email: "a@b.com", Name: "A2", Password: "password2"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := hashPassword("s3cret-passw0rd")
	require.NoError(t, err)

	assert.True(t, verifyPassword("s3cret-passw0rd", hash))
	assert.False(t, verifyPassword("s3cret-passw0rd ", hash))
	assert.False(t, verifyPassword("other", hash))
	assert.False(t, verifyPassword("s3cret-passw0rd", "not-an-encoded-hash"))
}
