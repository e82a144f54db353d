package verify

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CheckResult is one answer from the verification oracle.
//
// Verified means a binding for the player already exists; Code and
// CreatedAt are meaningless in that case. Otherwise the oracle returns
// the player's current verification code and when it was issued. The
// oracle creates a code on first query, so a pending result always
// carries one.
type CheckResult struct {
	Verified  bool
	Code      int64
	CreatedAt time.Time
}

// Oracle answers whether a Minecraft account has been bound to a
// university identity. The server is a pure consumer: it never writes
// bindings, only polls.
type Oracle interface {
	CheckStatus(ctx context.Context, playerID uuid.UUID) (CheckResult, error)
}
