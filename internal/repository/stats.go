package repository

import "context"

type Inventory struct {
	Users    int
	Notes    int
	Drafts   int
	Snippets int
}

// StatsRepository feeds the inventory gauges; it is not user-scoped.
type StatsRepository interface {
	Inventory(ctx context.Context) (Inventory, error)
}
