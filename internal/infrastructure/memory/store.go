// Package memory is an in-process implementation of the repository interfaces.
// It backs local runs with DATABASE_URL=memory:// and the handler tests.
package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ErlanBelekov/easydev/internal/domain"
	"github.com/google/uuid"
)

type Store struct {
	mu       sync.RWMutex
	now      func() time.Time
	last     time.Time
	users    map[string]*domain.User
	notes    map[string]*domain.Note
	snippets map[string]*domain.Snippet
}

func NewStore() *Store {
	return &Store{
		now:      time.Now,
		users:    make(map[string]*domain.User),
		notes:    make(map[string]*domain.Note),
		snippets: make(map[string]*domain.Snippet),
	}
}

func (s *Store) Users() *UserRepository       { return &UserRepository{s: s} }
func (s *Store) Notes() *NoteRepository       { return &NoteRepository{s: s} }
func (s *Store) Snippets() *SnippetRepository { return &SnippetRepository{s: s} }
func (s *Store) Stats() *StatsRepository      { return &StatsRepository{s: s} }

// tick returns a timestamp strictly after the previous one, truncated to the
// microsecond like Postgres timestamptz. Caller holds mu.
func (s *Store) tick() time.Time {
	t := s.now().UTC().Truncate(time.Microsecond)
	if !t.After(s.last) {
		t = s.last.Add(time.Microsecond)
	}
	s.last = t
	return t
}

func newID() string {
	return uuid.NewString()
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// newestFirst orders by updatedAt DESC with id DESC as the tie-break.
func newestFirst(aUpdated, bUpdated time.Time, aID, bID string) bool {
	if !aUpdated.Equal(bUpdated) {
		return aUpdated.After(bUpdated)
	}
	return aID > bID
}

func page[T any](items []T, req domain.PageRequest) []T {
	start := req.Offset()
	if start < 0 || start >= len(items) {
		return []T{}
	}
	end := start + req.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
