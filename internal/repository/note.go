package repository

import (
	"context"

	"github.com/ErlanBelekov/easydev/internal/domain"
)

type ListNotesInput struct {
	UserID string
	Page   domain.PageRequest
}

// NoteRepository scopes every call by userID. A note owned by someone else is
// reported as domain.ErrNoteNotFound, exactly like a note that does not exist.
type NoteRepository interface {
	Create(ctx context.Context, note *domain.Note) (*domain.Note, error)
	GetByID(ctx context.Context, id, userID string) (*domain.Note, error)
	// List returns one page ordered by updated_at DESC plus the total count for the user.
	List(ctx context.Context, input ListNotesInput) ([]*domain.Note, int, error)
	Update(ctx context.Context, id, userID string, upd domain.NoteUpdate) (*domain.Note, error)
	Delete(ctx context.Context, id, userID string) error
	MarkSaved(ctx context.Context, id, userID string) (*domain.Note, error)
}
