// Package auth gates the admin surface behind a single shared credential.
// Authenticated or not is the only distinction; there are no per-user
// permissions.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// SessionCookie is the cookie carrying the opaque session token.
const SessionCookie = "admin_session"

// SessionStore holds issued tokens until they expire.
type SessionStore interface {
	Create(ctx context.Context, token string, ttl time.Duration) error
	Exists(ctx context.Context, token string) (bool, error)
	Destroy(ctx context.Context, token string) error
}

type redisSessionStore struct {
	rdb *redis.Client
}

func NewRedisSessionStore(rdb *redis.Client) SessionStore {
	return &redisSessionStore{rdb: rdb}
}

func sessionKey(token string) string {
	return "session:" + token
}

func (s *redisSessionStore) Create(ctx context.Context, token string, ttl time.Duration) error {
	return s.rdb.Set(ctx, sessionKey(token), "1", ttl).Err()
}

func (s *redisSessionStore) Exists(ctx context.Context, token string) (bool, error) {
	n, err := s.rdb.Exists(ctx, sessionKey(token)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *redisSessionStore) Destroy(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, sessionKey(token)).Err()
}

type Service struct {
	email    string
	password string
	ttl      time.Duration
	sessions SessionStore
}

func NewService(email, password string, ttl time.Duration, sessions SessionStore) *Service {
	return &Service{email: email, password: password, ttl: ttl, sessions: sessions}
}

func (s *Service) SessionTTL() time.Duration {
	return s.ttl
}

// Login compares the submitted pair against the configured credential
// and issues an opaque token valid for the session TTL.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(s.email)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) == 1
	if !emailOK || !passOK {
		return "", ErrInvalidCredentials
	}
	token := uuid.NewString()
	if err := s.sessions.Create(ctx, token, s.ttl); err != nil {
		return "", err
	}
	return token, nil
}

func (s *Service) Check(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	return s.sessions.Exists(ctx, token)
}

func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Destroy(ctx, token)
}
