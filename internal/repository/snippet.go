package repository

import (
	"context"

	"github.com/ErlanBelekov/easydev/internal/domain"
)

type ListSnippetsInput struct {
	UserID string
	Filter domain.SnippetFilter
	Page   domain.PageRequest
}

// SnippetRepository follows the same ownership rule as NoteRepository.
type SnippetRepository interface {
	Create(ctx context.Context, s *domain.Snippet) (*domain.Snippet, error)
	GetByID(ctx context.Context, id, userID string) (*domain.Snippet, error)
	List(ctx context.Context, input ListSnippetsInput) ([]*domain.Snippet, int, error)
	Update(ctx context.Context, id, userID string, upd domain.SnippetUpdate) (*domain.Snippet, error)
	Delete(ctx context.Context, id, userID string) error

	DistinctLanguages(ctx context.Context, userID string) ([]string, error)
	DistinctTags(ctx context.Context, userID string) ([]string, error)
}
