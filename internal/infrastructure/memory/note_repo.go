package memory

import (
	"context"
	"sort"

	"github.com/ErlanBelekov/easydev/internal/domain"
	"github.com/ErlanBelekov/easydev/internal/repository"
)

type NoteRepository struct {
	s *Store
}

func (r *NoteRepository) Create(_ context.Context, note *domain.Note) (*domain.Note, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.tick()
	n := *note
	n.ID = newID()
	n.Tags = domain.NormalizeTags(note.Tags)
	n.CreatedAt = now
	n.UpdatedAt = now
	r.s.notes[n.ID] = &n

	return cloneNote(&n), nil
}

func (r *NoteRepository) GetByID(_ context.Context, id, userID string) (*domain.Note, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	n, err := r.owned(id, userID)
	if err != nil {
		return nil, err
	}
	return cloneNote(n), nil
}

func (r *NoteRepository) List(_ context.Context, input repository.ListNotesInput) ([]*domain.Note, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var all []*domain.Note
	for _, n := range r.s.notes {
		if n.UserID == input.UserID {
			all = append(all, n)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		return newestFirst(all[i].UpdatedAt, all[j].UpdatedAt, all[i].ID, all[j].ID)
	})

	window := page(all, input.Page)
	out := make([]*domain.Note, 0, len(window))
	for _, n := range window {
		out = append(out, cloneNote(n))
	}
	return out, len(all), nil
}

func (r *NoteRepository) Update(_ context.Context, id, userID string, upd domain.NoteUpdate) (*domain.Note, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	n, err := r.owned(id, userID)
	if err != nil {
		return nil, err
	}
	if upd.Title != nil {
		n.Title = *upd.Title
	}
	if upd.Content != nil {
		n.Content = *upd.Content
	}
	if upd.IsDraft != nil {
		n.IsDraft = *upd.IsDraft
	}
	if upd.Tags != nil {
		n.Tags = domain.NormalizeTags(*upd.Tags)
	}
	n.UpdatedAt = r.s.tick()
	return cloneNote(n), nil
}

func (r *NoteRepository) MarkSaved(ctx context.Context, id, userID string) (*domain.Note, error) {
	saved := false
	return r.Update(ctx, id, userID, domain.NoteUpdate{IsDraft: &saved})
}

func (r *NoteRepository) Delete(_ context.Context, id, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, err := r.owned(id, userID); err != nil {
		return err
	}
	delete(r.s.notes, id)
	return nil
}

// owned returns the stored note when it exists and belongs to userID. Caller holds mu.
func (r *NoteRepository) owned(id, userID string) (*domain.Note, error) {
	if !validID(id) {
		return nil, domain.ErrNoteNotFound
	}
	n, ok := r.s.notes[id]
	if !ok || n.UserID != userID {
		return nil, domain.ErrNoteNotFound
	}
	return n, nil
}

func cloneNote(n *domain.Note) *domain.Note {
	out := *n
	out.Tags = append([]string{}, n.Tags...)
	return &out
}
