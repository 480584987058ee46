package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/ErlanBelekov/easydev/internal/domain"
	"github.com/ErlanBelekov/easydev/internal/infrastructure/memory"
	"github.com/ErlanBelekov/easydev/internal/usecase"
)

func newNotes() *usecase.NoteUsecase {
	return usecase.NewNoteUsecase(memory.NewStore().Notes())
}

func ptr[T any](v T) *T { return &v }

func TestNoteCreate_Defaults(t *testing.T) {
	n, err := newNotes().Create(context.Background(), usecase.CreateNoteInput{
		UserID: "alice",
		Title:  "  Groceries  ",
		Tags:   []string{" food ", "", "food"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.Title != "Groceries" {
		t.Errorf("title = %q, want trimmed", n.Title)
	}
	if !n.IsDraft {
		t.Error("new note should default to draft")
	}
	if len(n.Tags) != 1 || n.Tags[0] != "food" {
		t.Errorf("tags = %v, want [food]", n.Tags)
	}
	if n.UserID != "alice" || n.ID == "" || n.CreatedAt.IsZero() {
		t.Errorf("server fields not set: %+v", n)
	}
}

func TestNoteCreate_BlankTitle(t *testing.T) {
	_, err := newNotes().Create(context.Background(), usecase.CreateNoteInput{UserID: "alice", Title: "   "})
	if !errors.Is(err, domain.ErrNoteTitleEmpty) {
		t.Errorf("want ErrNoteTitleEmpty, got %v", err)
	}
}

func TestNote_OtherUserSeesNotFound(t *testing.T) {
	uc := newNotes()
	ctx := context.Background()

	n, err := uc.Create(ctx, usecase.CreateNoteInput{UserID: "alice", Title: "mine"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := uc.GetByID(ctx, n.ID, "bob"); !errors.Is(err, domain.ErrNoteNotFound) {
		t.Errorf("get: want ErrNoteNotFound, got %v", err)
	}
	if _, err := uc.Update(ctx, n.ID, "bob", domain.NoteUpdate{Title: ptr("x")}); !errors.Is(err, domain.ErrNoteNotFound) {
		t.Errorf("update: want ErrNoteNotFound, got %v", err)
	}
	if _, err := uc.SaveDraft(ctx, n.ID, "bob"); !errors.Is(err, domain.ErrNoteNotFound) {
		t.Errorf("save: want ErrNoteNotFound, got %v", err)
	}
	if err := uc.Delete(ctx, n.ID, "bob"); !errors.Is(err, domain.ErrNoteNotFound) {
		t.Errorf("delete: want ErrNoteNotFound, got %v", err)
	}

	page, err := uc.List(ctx, "bob", domain.NewPageRequest(1, 10))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Notes) != 0 || page.Pagination.TotalItems != 0 {
		t.Errorf("bob sees alice's notes: %+v", page)
	}
}

func TestNoteList_TwentyFiveNotes(t *testing.T) {
	uc := newNotes()
	ctx := context.Background()
	for i := 0; i < 25; i++ {
		if _, err := uc.Create(ctx, usecase.CreateNoteInput{UserID: "alice", Title: fmt.Sprintf("n%d", i)}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	first, err := uc.List(ctx, "alice", domain.NewPageRequest(1, 10))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := domain.Pagination{CurrentPage: 1, TotalPages: 3, TotalItems: 25, HasNextPage: true, HasPrevPage: false}
	if first.Pagination != want || len(first.Notes) != 10 {
		t.Errorf("page 1 = %+v (%d notes), want %+v", first.Pagination, len(first.Notes), want)
	}

	third, err := uc.List(ctx, "alice", domain.NewPageRequest(3, 10))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(third.Notes) != 5 || third.Pagination.HasNextPage || !third.Pagination.HasPrevPage {
		t.Errorf("page 3 = %+v (%d notes)", third.Pagination, len(third.Notes))
	}
}

func TestNoteUpdate_PartialAndRefreshesTimestamp(t *testing.T) {
	uc := newNotes()
	ctx := context.Background()

	n, err := uc.Create(ctx, usecase.CreateNoteInput{UserID: "alice", Title: "t", Content: "body", Tags: []string{"a"}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := uc.Update(ctx, n.ID, "alice", domain.NoteUpdate{Content: ptr("new body")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Title != "t" || got.Content != "new body" || len(got.Tags) != 1 {
		t.Errorf("unexpected note after partial update: %+v", got)
	}
	if !got.UpdatedAt.After(n.UpdatedAt) {
		t.Errorf("updatedAt not refreshed: %v -> %v", n.UpdatedAt, got.UpdatedAt)
	}

	if _, err := uc.Update(ctx, n.ID, "alice", domain.NoteUpdate{Title: ptr("  ")}); !errors.Is(err, domain.ErrNoteTitleEmpty) {
		t.Errorf("blank title: want ErrNoteTitleEmpty, got %v", err)
	}
}

func TestNoteSaveDraft_Idempotent(t *testing.T) {
	uc := newNotes()
	ctx := context.Background()

	n, err := uc.Create(ctx, usecase.CreateNoteInput{UserID: "alice", Title: "draft"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	for i := 0; i < 2; i++ {
		saved, err := uc.SaveDraft(ctx, n.ID, "alice")
		if err != nil {
			t.Fatalf("save #%d: %v", i+1, err)
		}
		if saved.IsDraft {
			t.Errorf("save #%d: still a draft", i+1)
		}
	}
}

func TestNoteDelete_ThenGone(t *testing.T) {
	uc := newNotes()
	ctx := context.Background()

	n, err := uc.Create(ctx, usecase.CreateNoteInput{UserID: "alice", Title: "bye"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := uc.Delete(ctx, n.ID, "alice"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := uc.GetByID(ctx, n.ID, "alice"); !errors.Is(err, domain.ErrNoteNotFound) {
		t.Errorf("want ErrNoteNotFound after delete, got %v", err)
	}
}
