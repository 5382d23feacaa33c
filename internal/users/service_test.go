package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/templatehub/backend/pkg/apperr"
	"golang.org/x/crypto/bcrypt"
)

func TestRegister_HashesPassword(t *testing.T) {
	svc := NewService(NewMemoryUserRepository())
	ctx := context.Background()

	u, err := svc.Register(ctx, "alice", "alice@example.com", "s3cret-pass")
	require.NoError(t, err)
	require.False(t, u.ID.IsZero())
	require.NotEqual(t, "s3cret-pass", u.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cret-pass")))
}

func TestRegister_ShortPasswordRejected(t *testing.T) {
	svc := NewService(NewMemoryUserRepository())
	_, err := svc.Register(context.Background(), "bob", "", "short")
	require.Error(t, err)
	require.Equal(t, 400, apperr.StatusOf(err))
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc := NewService(NewMemoryUserRepository())
	ctx := context.Background()
	_, err := svc.Register(ctx, "carol", "", "password-1")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "carol", "", "password-2")
	require.Error(t, err)
	require.Equal(t, 400, apperr.StatusOf(err))
}

func TestAuthenticate(t *testing.T) {
	svc := NewService(NewMemoryUserRepository())
	ctx := context.Background()
	created, err := svc.Register(ctx, "dave", "dave@example.com", "correct-horse")
	require.NoError(t, err)

	u, err := svc.Authenticate(ctx, "dave", "correct-horse")
	require.NoError(t, err)
	require.Equal(t, created.ID, u.ID)

	_, err = svc.Authenticate(ctx, "dave", "wrong-password")
	require.Error(t, err)
	require.Equal(t, 401, apperr.StatusOf(err))

	_, err = svc.Authenticate(ctx, "nobody", "whatever")
	require.Error(t, err)
	require.Equal(t, 401, apperr.StatusOf(err))
}

func TestGetByID(t *testing.T) {
	svc := NewService(NewMemoryUserRepository())
	ctx := context.Background()
	created, err := svc.Register(ctx, "erin", "", "password-123")
	require.NoError(t, err)

	u, err := svc.GetByID(ctx, created.ID.Hex())
	require.NoError(t, err)
	require.Equal(t, "erin", u.Username)

	_, err = svc.GetByID(ctx, "not-a-hex-id")
	require.Error(t, err)
	require.Equal(t, 400, apperr.StatusOf(err))
}
