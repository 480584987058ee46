package postgres

import (
	"context"
	"time"

	"github.com/ErlanBelekov/easydev/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

type StatsRepository struct {
	pool *pgxpool.Pool
	timeouts
}

func NewStatsRepository(pool *pgxpool.Pool, timeout time.Duration) *StatsRepository {
	return &StatsRepository{pool: pool, timeouts: timeouts{d: timeout}}
}

func (r *StatsRepository) Inventory(ctx context.Context) (repository.Inventory, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	query := `
		SELECT (SELECT COUNT(*) FROM users),
		       (SELECT COUNT(*) FROM notes),
		       (SELECT COUNT(*) FROM notes WHERE is_draft),
		       (SELECT COUNT(*) FROM snippets)`

	var inv repository.Inventory
	if err := r.pool.QueryRow(ctx, query).Scan(&inv.Users, &inv.Notes, &inv.Drafts, &inv.Snippets); err != nil {
		return repository.Inventory{}, storeErr("inventory", err)
	}
	return inv, nil
}
