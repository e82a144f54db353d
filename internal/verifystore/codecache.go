// Package verifystore backs the verification oracle: Postgres holds
// finished account bindings, Redis holds short-lived verification
// codes.
package verifystore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	mathrand "math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "mcv"

// ErrNoCode is returned when a player has no live verification code.
var ErrNoCode = errors.New("no verification code")

func codeKey(playerID uuid.UUID) string {
	return fmt.Sprintf("%s:verify_code:%s", keyPrefix, playerID)
}

// CodeEntry is the stored verification code record.
type CodeEntry struct {
	Code      int64     `json:"code"`
	CreatedAt time.Time `json:"created_at"`
}

// CodeCacheConfig holds Redis connection and TTL settings.
type CodeCacheConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int

	// CodeTTL bounds a code's life; it matches the verification window
	// so an expired code simply disappears and a rejoin mints a new one.
	CodeTTL time.Duration
}

// DefaultCodeCacheConfig returns sensible defaults.
func DefaultCodeCacheConfig() CodeCacheConfig {
	return CodeCacheConfig{
		URL:          "redis://localhost:6379",
		PoolSize:     10,
		MinIdleConns: 2,
		CodeTTL:      5 * time.Minute,
	}
}

// CodeCache is the Redis-backed verification code store.
type CodeCache struct {
	client *redis.Client
	cfg    CodeCacheConfig
}

// NewCodeCache connects to Redis and verifies the connection.
func NewCodeCache(cfg CodeCacheConfig) (*CodeCache, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}
	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &CodeCache{client: client, cfg: cfg}, nil
}

// NewCodeCacheWithClient wraps an existing client (for testing).
func NewCodeCacheWithClient(client *redis.Client, cfg CodeCacheConfig) *CodeCache {
	return &CodeCache{client: client, cfg: cfg}
}

// Close closes the Redis connection.
func (c *CodeCache) Close() error {
	return c.client.Close()
}

// Get returns the player's live code, or ErrNoCode.
func (c *CodeCache) Get(ctx context.Context, playerID uuid.UUID) (CodeEntry, error) {
	data, err := c.client.Get(ctx, codeKey(playerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return CodeEntry{}, ErrNoCode
		}
		return CodeEntry{}, err
	}

	var entry CodeEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return CodeEntry{}, err
	}
	return entry, nil
}

// GetOrCreate returns the player's live code, minting one if absent.
// Creation uses SETNX so concurrent sessions for the same player agree
// on a single code.
func (c *CodeCache) GetOrCreate(ctx context.Context, playerID uuid.UUID) (CodeEntry, error) {
	entry, err := c.Get(ctx, playerID)
	if err == nil {
		return entry, nil
	}
	if !errors.Is(err, ErrNoCode) {
		return CodeEntry{}, err
	}

	fresh := CodeEntry{
		Code:      newCode(),
		CreatedAt: time.Now().UTC(),
	}
	data, err := json.Marshal(fresh)
	if err != nil {
		return CodeEntry{}, err
	}

	set, err := c.client.SetNX(ctx, codeKey(playerID), data, c.cfg.CodeTTL).Result()
	if err != nil {
		return CodeEntry{}, err
	}
	if set {
		return fresh, nil
	}
	// Lost the race; take the winner's code.
	return c.Get(ctx, playerID)
}

// Delete removes a player's code.
func (c *CodeCache) Delete(ctx context.Context, playerID uuid.UUID) error {
	return c.client.Del(ctx, codeKey(playerID)).Err()
}

// newCode mints a six-digit verification code. Codes only need to be
// unguessable enough for a five-minute window tied to one UUID.
func newCode() int64 {
	return 100000 + mathrand.Int64N(900000)
}
