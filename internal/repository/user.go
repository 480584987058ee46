package repository

import (
	"context"

	"github.com/ErlanBelekov/easydev/internal/domain"
)

type UserRepository interface {
	// Create inserts a new user. Returns domain.ErrEmailTaken when the email is already registered.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}
