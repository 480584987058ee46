package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ErlanBelekov/easydev/internal/domain"
	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// psql builds queries with $n placeholders.
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}

	cfg.MaxConns = 25
	cfg.MinConns = 2
	cfg.MaxConnLifetime = 1 * time.Hour
	cfg.MaxConnIdleTime = 30 * time.Minute
	cfg.HealthCheckPeriod = 30 * time.Second
	cfg.ConnConfig.ConnectTimeout = 5 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	return pool, nil
}

// storeErr maps a deadline hit to domain.ErrStoreUnavailable and wraps everything
// else with op.
func storeErr(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return fmt.Errorf("%s: %w: %v", op, domain.ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// createErr is storeErr for inserts of user-owned rows: a missing owner
// (users FK, SQLSTATE 23503) is domain.ErrUserNotFound.
func createErr(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
		return fmt.Errorf("%s: %w", op, domain.ErrUserNotFound)
	}
	return storeErr(op, err)
}

const foreignKeyViolation = "23503"

// validID reports whether id can be a row key. Anything else cannot match a row,
// so callers answer not-found without a round-trip.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// pgx.Row and pgx.Rows both implement this.
type rowScanner interface {
	Scan(dest ...any) error
}

// timeouts bounds every store call made by a repository.
type timeouts struct {
	d time.Duration
}

func (t timeouts) ctx(parent context.Context) (context.Context, context.CancelFunc) {
	if t.d <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, t.d)
}
