// Package identity resolves request credentials to a caller using the session store
// the external auth service writes to.
package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"crop-auction/internal/models"

	"github.com/redis/go-redis/v9"
)

// DefaultSessionPrefix is the Redis key prefix sessions are stored under.
const DefaultSessionPrefix = "session:"

var (
	ErrNoCredential      = errors.New("no credential, authorization denied")
	ErrInvalidCredential = errors.New("invalid credential")
)

// Provider resolves a bearer credential to the caller it was issued for.
type Provider interface {
	Resolve(ctx context.Context, token string) (models.Caller, error)
}

// session is the stored shape: {"user": {"id": ..., "role": ...}}.
type session struct {
	User models.Caller `json:"user"`
}

// RedisSessionProvider reads sessions from Redis. It never writes or extends them.
type RedisSessionProvider struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisSessionProvider(rdb *redis.Client, prefix string) *RedisSessionProvider {
	if prefix == "" {
		prefix = DefaultSessionPrefix
	}
	return &RedisSessionProvider{rdb: rdb, prefix: prefix}
}

// Connect parses a redis:// URL and returns a client. The connection is verified lazily.
func Connect(redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("identity: parse redis url: %w", err)
	}
	return redis.NewClient(opt), nil
}

// Resolve returns the caller for token. A missing, expired or malformed session, or one
// with an unknown role, is ErrInvalidCredential; store failures are returned wrapped.
func (p *RedisSessionProvider) Resolve(ctx context.Context, token string) (models.Caller, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return models.Caller{}, ErrNoCredential
	}

	b, err := p.rdb.Get(ctx, p.prefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.Caller{}, ErrInvalidCredential
	}
	if err != nil {
		return models.Caller{}, fmt.Errorf("identity: read session: %w", err)
	}

	var s session
	if err := json.Unmarshal(b, &s); err != nil {
		return models.Caller{}, fmt.Errorf("%w: malformed session", ErrInvalidCredential)
	}
	if s.User.ID == "" || !models.ValidRole(s.User.Role) {
		return models.Caller{}, fmt.Errorf("%w: session has no usable identity", ErrInvalidCredential)
	}
	return s.User, nil
}

// StoreSession writes a session the way the auth service does. Used by tests and local tooling.
func StoreSession(ctx context.Context, rdb *redis.Client, prefix, token string, caller models.Caller, ttl time.Duration) error {
	if prefix == "" {
		prefix = DefaultSessionPrefix
	}
	b, err := json.Marshal(session{User: caller})
	if err != nil {
		return err
	}
	return rdb.Set(ctx, prefix+token, b, ttl).Err()
}
