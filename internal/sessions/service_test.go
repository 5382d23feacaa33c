package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// memoryRepo is a trivial in-process Repository used by the service tests.
type memoryRepo struct {
	byRefresh map[string]*Session
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{byRefresh: make(map[string]*Session)}
}

func (m *memoryRepo) Create(ctx context.Context, s *Session) error {
	cp := *s
	m.byRefresh[s.RefreshToken] = &cp
	return nil
}

func (m *memoryRepo) GetByRefresh(ctx context.Context, refresh string) (*Session, error) {
	s, ok := m.byRefresh[refresh]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (m *memoryRepo) DeleteByRefresh(ctx context.Context, refresh string) error {
	delete(m.byRefresh, refresh)
	return nil
}

func TestService_CreateAndValidate(t *testing.T) {
	svc := NewService(newMemoryRepo())
	ctx := context.Background()

	rft, err := svc.CreateSession(ctx, "user-1", time.Hour)
	require.NoError(t, err)
	require.Len(t, rft, 64) // 32 random bytes hex-encoded

	sess, err := svc.ValidateRefresh(ctx, rft)
	require.NoError(t, err)
	require.NotNil(t, sess)
	require.Equal(t, "user-1", sess.UserID)
}

func TestService_ValidateUnknownToken(t *testing.T) {
	svc := NewService(newMemoryRepo())
	sess, err := svc.ValidateRefresh(context.Background(), "no-such-token")
	require.NoError(t, err)
	require.Nil(t, sess)
}

func TestService_ExpiredSessionIsCleanedUp(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	rft, err := svc.CreateSession(ctx, "user-2", -time.Minute)
	require.NoError(t, err)

	sess, err := svc.ValidateRefresh(ctx, rft)
	require.NoError(t, err)
	require.Nil(t, sess)
	require.NotContains(t, repo.byRefresh, rft)
}

func TestService_DeleteRefresh(t *testing.T) {
	svc := NewService(newMemoryRepo())
	ctx := context.Background()

	rft, err := svc.CreateSession(ctx, "user-3", time.Hour)
	require.NoError(t, err)
	require.NoError(t, svc.DeleteRefresh(ctx, rft))

	sess, err := svc.ValidateRefresh(ctx, rft)
	require.NoError(t, err)
	require.Nil(t, sess)
}
