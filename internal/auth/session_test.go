package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type memorySessionStore struct {
	tokens map[string]time.Time
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{tokens: make(map[string]time.Time)}
}

func (s *memorySessionStore) Create(ctx context.Context, token string, ttl time.Duration) error {
	s.tokens[token] = time.Now().Add(ttl)
	return nil
}

func (s *memorySessionStore) Exists(ctx context.Context, token string) (bool, error) {
	expiry, ok := s.tokens[token]
	if !ok {
		return false, nil
	}
	return time.Now().Before(expiry), nil
}

func (s *memorySessionStore) Destroy(ctx context.Context, token string) error {
	delete(s.tokens, token)
	return nil
}

func newTestService(store SessionStore) *Service {
	return NewService("admin@example.com", "s3cret", 7*24*time.Hour, store)
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newMemorySessionStore())

	token, err := svc.Login(ctx, "admin@example.com", "s3cret")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	valid, err := svc.Check(ctx, token)
	assert.NoError(t, err)
	assert.True(t, valid)
}

func TestService_Login_InvalidCredentials(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newMemorySessionStore())

	_, err := svc.Login(ctx, "admin@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "intruder@example.com", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Check_UnknownOrEmptyToken(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newMemorySessionStore())

	valid, err := svc.Check(ctx, "")
	assert.NoError(t, err)
	assert.False(t, valid)

	valid, err = svc.Check(ctx, "not-a-session")
	assert.NoError(t, err)
	assert.False(t, valid)
}

func TestService_Logout(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newMemorySessionStore())

	token, err := svc.Login(ctx, "admin@example.com", "s3cret")
	assert.NoError(t, err)

	assert.NoError(t, svc.Logout(ctx, token))

	valid, err := svc.Check(ctx, token)
	assert.NoError(t, err)
	assert.False(t, valid)
}

func TestService_ExpiredSessionRejected(t *testing.T) {
	ctx := context.Background()
	store := newMemorySessionStore()
	svc := NewService("admin@example.com", "s3cret", -time.Minute, store)

	token, err := svc.Login(ctx, "admin@example.com", "s3cret")
	assert.NoError(t, err)

	valid, err := svc.Check(ctx, token)
	assert.NoError(t, err)
	assert.False(t, valid)
}

func TestService_TokensAreUnique(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newMemorySessionStore())

	a, _ := svc.Login(ctx, "admin@example.com", "s3cret")
	b, _ := svc.Login(ctx, "admin@example.com", "s3cret")
	assert.NotEqual(t, a, b)
}
