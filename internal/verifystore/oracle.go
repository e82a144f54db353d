package verifystore

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/daidr/mcverify-go/internal/verify"
)

// BindingSource looks up the durable binding for a Minecraft account.
type BindingSource interface {
	Get(ctx context.Context, playerID uuid.UUID) (*Binding, error)
}

// CodeSource issues and returns live verification codes.
type CodeSource interface {
	GetOrCreate(ctx context.Context, playerID uuid.UUID) (CodeEntry, error)
}

// Oracle is the composite verification oracle: Postgres decides
// "verified", Redis supplies the pending code.
type Oracle struct {
	bindings BindingSource
	codes    CodeSource
}

// NewOracle builds the oracle from its two stores.
func NewOracle(bindings BindingSource, codes CodeSource) *Oracle {
	return &Oracle{bindings: bindings, codes: codes}
}

var _ verify.Oracle = (*Oracle)(nil)

// CheckStatus implements verify.Oracle.
func (o *Oracle) CheckStatus(ctx context.Context, playerID uuid.UUID) (verify.CheckResult, error) {
	binding, err := o.bindings.Get(ctx, playerID)
	if err != nil {
		return verify.CheckResult{}, fmt.Errorf("checking binding: %w", err)
	}
	if binding != nil {
		return verify.CheckResult{Verified: true}, nil
	}

	entry, err := o.codes.GetOrCreate(ctx, playerID)
	if err != nil {
		return verify.CheckResult{}, fmt.Errorf("fetching verification code: %w", err)
	}
	return verify.CheckResult{
		Code:      entry.Code,
		CreatedAt: entry.CreatedAt,
	}, nil
}
