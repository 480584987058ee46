package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/ErlanBelekov/easydev/internal/domain"
	"github.com/ErlanBelekov/easydev/internal/repository"
)

type SnippetUsecase struct {
	repo repository.SnippetRepository
}

func NewSnippetUsecase(repo repository.SnippetRepository) *SnippetUsecase {
	return &SnippetUsecase{repo: repo}
}

type CreateSnippetInput struct {
	UserID      string
	Title       string
	Description string
	Code        string
	Language    string
	Tags        []string
}

type SnippetPage struct {
	Snippets   []*domain.Snippet
	Pagination domain.Pagination
}

func (u *SnippetUsecase) Create(ctx context.Context, input CreateSnippetInput) (*domain.Snippet, error) {
	s := &domain.Snippet{
		UserID:      input.UserID,
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Code:        input.Code,
		Language:    strings.TrimSpace(input.Language),
		Tags:        domain.NormalizeTags(input.Tags),
	}
	if s.Title == "" || s.Description == "" || strings.TrimSpace(s.Code) == "" || s.Language == "" {
		return nil, domain.ErrSnippetInvalid
	}

	created, err := u.repo.Create(ctx, s)
	if err != nil {
		return nil, fmt.Errorf("create snippet: %w", err)
	}
	return created, nil
}

func (u *SnippetUsecase) List(ctx context.Context, userID string, filter domain.SnippetFilter, page domain.PageRequest) (*SnippetPage, error) {
	filter.Language = strings.TrimSpace(filter.Language)
	filter.Tag = strings.TrimSpace(filter.Tag)
	filter.Search = strings.TrimSpace(filter.Search)

	snippets, total, err := u.repo.List(ctx, repository.ListSnippetsInput{UserID: userID, Filter: filter, Page: page})
	if err != nil {
		return nil, fmt.Errorf("list snippets: %w", err)
	}
	return &SnippetPage{Snippets: snippets, Pagination: domain.NewPagination(page, total)}, nil
}

func (u *SnippetUsecase) GetByID(ctx context.Context, id, userID string) (*domain.Snippet, error) {
	s, err := u.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("get snippet: %w", err)
	}
	return s, nil
}

// Update applies the provided fields. A provided required field may not be blank.
func (u *SnippetUsecase) Update(ctx context.Context, id, userID string, upd domain.SnippetUpdate) (*domain.Snippet, error) {
	for _, field := range []**string{&upd.Title, &upd.Description, &upd.Language} {
		if *field == nil {
			continue
		}
		v := strings.TrimSpace(**field)
		if v == "" {
			return nil, domain.ErrSnippetInvalid
		}
		*field = &v
	}
	if upd.Code != nil && strings.TrimSpace(*upd.Code) == "" {
		return nil, domain.ErrSnippetInvalid
	}
	if upd.Tags != nil {
		tags := domain.NormalizeTags(*upd.Tags)
		upd.Tags = &tags
	}

	s, err := u.repo.Update(ctx, id, userID, upd)
	if err != nil {
		return nil, fmt.Errorf("update snippet: %w", err)
	}
	return s, nil
}

func (u *SnippetUsecase) Delete(ctx context.Context, id, userID string) error {
	if err := u.repo.Delete(ctx, id, userID); err != nil {
		return fmt.Errorf("delete snippet: %w", err)
	}
	return nil
}

func (u *SnippetUsecase) Languages(ctx context.Context, userID string) ([]string, error) {
	langs, err := u.repo.DistinctLanguages(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("distinct languages: %w", err)
	}
	return langs, nil
}

func (u *SnippetUsecase) Tags(ctx context.Context, userID string) ([]string, error) {
	tags, err := u.repo.DistinctTags(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("distinct tags: %w", err)
	}
	return tags, nil
}
