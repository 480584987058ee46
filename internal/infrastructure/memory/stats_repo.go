package memory

import (
	"context"

	"github.com/ErlanBelekov/easydev/internal/repository"
)

type StatsRepository struct {
	s *Store
}

func (r *StatsRepository) Inventory(_ context.Context) (repository.Inventory, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	inv := repository.Inventory{
		Users:    len(r.s.users),
		Notes:    len(r.s.notes),
		Snippets: len(r.s.snippets),
	}
	for _, n := range r.s.notes {
		if n.IsDraft {
			inv.Drafts++
		}
	}
	return inv, nil
}
