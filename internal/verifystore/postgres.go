package verifystore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Bindings wraps a pgx connection pool for the bindings table. A row
// in mc_bindings is the durable record that a Minecraft account was
// bound to a university identity.
type Bindings struct {
	pool *pgxpool.Pool
}

// NewBindings connects to PostgreSQL and returns a Bindings handle.
func NewBindings(ctx context.Context, dsn string) (*Bindings, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &Bindings{pool: pool}, nil
}

// NewBindingsWithPool wraps an existing pool (for testing).
func NewBindingsWithPool(pool *pgxpool.Pool) *Bindings {
	return &Bindings{pool: pool}
}

// Close closes the database connection pool.
func (b *Bindings) Close() {
	b.pool.Close()
}

// Binding is one finished verification.
type Binding struct {
	MinecraftUUID uuid.UUID
	Username      string
	StudentID     string
	BoundAt       time.Time
}

// Get retrieves a binding. Returns nil, nil if none exists.
func (b *Bindings) Get(ctx context.Context, playerID uuid.UUID) (*Binding, error) {
	var bd Binding
	err := b.pool.QueryRow(ctx,
		`SELECT minecraft_uuid, username, student_id, bound_at
		 FROM mc_bindings WHERE minecraft_uuid = $1`, playerID,
	).Scan(&bd.MinecraftUUID, &bd.Username, &bd.StudentID, &bd.BoundAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying binding for %s: %w", playerID, err)
	}
	return &bd, nil
}
