package domain

import (
	"errors"
	"time"
)

var (
	ErrNoteNotFound   = errors.New("note not found")
	ErrNoteTitleEmpty = errors.New("note title is required")
)

type Note struct {
	ID        string
	UserID    string
	Title     string
	Content   string
	IsDraft   bool
	Tags      []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NoteUpdate holds the fields a caller wants to change. Nil means unchanged.
type NoteUpdate struct {
	Title   *string
	Content *string
	IsDraft *bool
	Tags    *[]string
}
