package verifystore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBindings struct {
	binding *Binding
	err     error
	calls   int
}

func (f *fakeBindings) Get(ctx context.Context, playerID uuid.UUID) (*Binding, error) {
	f.calls++
	return f.binding, f.err
}

type fakeCodes struct {
	entry CodeEntry
	err   error
	calls int
}

func (f *fakeCodes) GetOrCreate(ctx context.Context, playerID uuid.UUID) (CodeEntry, error) {
	f.calls++
	return f.entry, f.err
}

func TestOracle_BoundAccountIsVerified(t *testing.T) {
	bindings := &fakeBindings{binding: &Binding{Username: "Notch", StudentID: "23010001"}}
	codes := &fakeCodes{}
	oracle := NewOracle(bindings, codes)

	res, err := oracle.CheckStatus(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.True(t, res.Verified)
	assert.Equal(t, 0, codes.calls, "verified accounts must not get codes")
}

func TestOracle_UnboundAccountGetsCode(t *testing.T) {
	created := time.Now().UTC()
	bindings := &fakeBindings{}
	codes := &fakeCodes{entry: CodeEntry{Code: 123456, CreatedAt: created}}
	oracle := NewOracle(bindings, codes)

	res, err := oracle.CheckStatus(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.False(t, res.Verified)
	assert.Equal(t, int64(123456), res.Code)
	assert.Equal(t, created, res.CreatedAt)
}

func TestOracle_PropagatesErrors(t *testing.T) {
	dbErr := errors.New("pg: down")
	oracle := NewOracle(&fakeBindings{err: dbErr}, &fakeCodes{})

	_, err := oracle.CheckStatus(context.Background(), uuid.New())
	assert.ErrorIs(t, err, dbErr)

	cacheErr := errors.New("redis: down")
	oracle = NewOracle(&fakeBindings{}, &fakeCodes{err: cacheErr})

	_, err = oracle.CheckStatus(context.Background(), uuid.New())
	assert.ErrorIs(t, err, cacheErr)
}
