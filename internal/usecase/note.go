package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/ErlanBelekov/easydev/internal/domain"
	"github.com/ErlanBelekov/easydev/internal/repository"
)

type NoteUsecase struct {
	repo repository.NoteRepository
}

func NewNoteUsecase(repo repository.NoteRepository) *NoteUsecase {
	return &NoteUsecase{repo: repo}
}

type CreateNoteInput struct {
	UserID  string
	Title   string
	Content string
	// nil means the note starts as a draft.
	IsDraft *bool
	Tags    []string
}

type NotePage struct {
	Notes      []*domain.Note
	Pagination domain.Pagination
}

func (u *NoteUsecase) Create(ctx context.Context, input CreateNoteInput) (*domain.Note, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, domain.ErrNoteTitleEmpty
	}

	isDraft := true
	if input.IsDraft != nil {
		isDraft = *input.IsDraft
	}

	created, err := u.repo.Create(ctx, &domain.Note{
		UserID:  input.UserID,
		Title:   title,
		Content: input.Content,
		IsDraft: isDraft,
		Tags:    domain.NormalizeTags(input.Tags),
	})
	if err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}
	return created, nil
}

func (u *NoteUsecase) List(ctx context.Context, userID string, page domain.PageRequest) (*NotePage, error) {
	notes, total, err := u.repo.List(ctx, repository.ListNotesInput{UserID: userID, Page: page})
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return &NotePage{Notes: notes, Pagination: domain.NewPagination(page, total)}, nil
}

func (u *NoteUsecase) GetByID(ctx context.Context, id, userID string) (*domain.Note, error) {
	n, err := u.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("get note: %w", err)
	}
	return n, nil
}

func (u *NoteUsecase) Update(ctx context.Context, id, userID string, upd domain.NoteUpdate) (*domain.Note, error) {
	if upd.Title != nil {
		title := strings.TrimSpace(*upd.Title)
		if title == "" {
			return nil, domain.ErrNoteTitleEmpty
		}
		upd.Title = &title
	}
	if upd.Tags != nil {
		tags := domain.NormalizeTags(*upd.Tags)
		upd.Tags = &tags
	}

	n, err := u.repo.Update(ctx, id, userID, upd)
	if err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}
	return n, nil
}

func (u *NoteUsecase) Delete(ctx context.Context, id, userID string) error {
	if err := u.repo.Delete(ctx, id, userID); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return nil
}

// SaveDraft marks the note as no longer a draft. Saving a saved note is a no-op
// apart from refreshing updatedAt.
func (u *NoteUsecase) SaveDraft(ctx context.Context, id, userID string) (*domain.Note, error) {
	n, err := u.repo.MarkSaved(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("save draft: %w", err)
	}
	return n, nil
}
