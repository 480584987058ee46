package memory

import (
	"context"
	"sort"

	"github.com/ErlanBelekov/easydev/internal/domain"
	"github.com/ErlanBelekov/easydev/internal/repository"
)

type SnippetRepository struct {
	s *Store
}

func (r *SnippetRepository) Create(_ context.Context, snippet *domain.Snippet) (*domain.Snippet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.tick()
	sn := *snippet
	sn.ID = newID()
	sn.Tags = domain.NormalizeTags(snippet.Tags)
	sn.CreatedAt = now
	sn.UpdatedAt = now
	r.s.snippets[sn.ID] = &sn

	return cloneSnippet(&sn), nil
}

func (r *SnippetRepository) GetByID(_ context.Context, id, userID string) (*domain.Snippet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	sn, err := r.owned(id, userID)
	if err != nil {
		return nil, err
	}
	return cloneSnippet(sn), nil
}

func (r *SnippetRepository) List(_ context.Context, input repository.ListSnippetsInput) ([]*domain.Snippet, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var all []*domain.Snippet
	for _, sn := range r.s.snippets {
		if sn.UserID == input.UserID && matches(sn, input.Filter) {
			all = append(all, sn)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		return newestFirst(all[i].UpdatedAt, all[j].UpdatedAt, all[i].ID, all[j].ID)
	})

	window := page(all, input.Page)
	out := make([]*domain.Snippet, 0, len(window))
	for _, sn := range window {
		out = append(out, cloneSnippet(sn))
	}
	return out, len(all), nil
}

func (r *SnippetRepository) Update(_ context.Context, id, userID string, upd domain.SnippetUpdate) (*domain.Snippet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sn, err := r.owned(id, userID)
	if err != nil {
		return nil, err
	}
	if upd.Title != nil {
		sn.Title = *upd.Title
	}
	if upd.Description != nil {
		sn.Description = *upd.Description
	}
	if upd.Code != nil {
		sn.Code = *upd.Code
	}
	if upd.Language != nil {
		sn.Language = *upd.Language
	}
	if upd.Tags != nil {
		sn.Tags = domain.NormalizeTags(*upd.Tags)
	}
	sn.UpdatedAt = r.s.tick()
	return cloneSnippet(sn), nil
}

func (r *SnippetRepository) Delete(_ context.Context, id, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, err := r.owned(id, userID); err != nil {
		return err
	}
	delete(r.s.snippets, id)
	return nil
}

func (r *SnippetRepository) DistinctLanguages(_ context.Context, userID string) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	set := make(map[string]struct{})
	for _, sn := range r.s.snippets {
		if sn.UserID == userID {
			set[sn.Language] = struct{}{}
		}
	}
	return sortedKeys(set), nil
}

func (r *SnippetRepository) DistinctTags(_ context.Context, userID string) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	set := make(map[string]struct{})
	for _, sn := range r.s.snippets {
		if sn.UserID != userID {
			continue
		}
		for _, tag := range sn.Tags {
			set[tag] = struct{}{}
		}
	}
	return sortedKeys(set), nil
}

func (r *SnippetRepository) owned(id, userID string) (*domain.Snippet, error) {
	if !validID(id) {
		return nil, domain.ErrSnippetNotFound
	}
	sn, ok := r.s.snippets[id]
	if !ok || sn.UserID != userID {
		return nil, domain.ErrSnippetNotFound
	}
	return sn, nil
}

func matches(sn *domain.Snippet, f domain.SnippetFilter) bool {
	if f.Language != "" && sn.Language != f.Language {
		return false
	}
	if f.Tag != "" && !hasTag(sn.Tags, f.Tag) {
		return false
	}
	if f.Search == "" {
		return true
	}
	if containsFold(sn.Title, f.Search) || containsFold(sn.Description, f.Search) || containsFold(sn.Code, f.Search) {
		return true
	}
	for _, tag := range sn.Tags {
		if containsFold(tag, f.Search) {
			return true
		}
	}
	return false
}

func hasTag(tags []string, want string) bool {
	for _, tag := range tags {
		if tag == want {
			return true
		}
	}
	return false
}

func cloneSnippet(sn *domain.Snippet) *domain.Snippet {
	out := *sn
	out.Tags = append([]string{}, sn.Tags...)
	return &out
}
