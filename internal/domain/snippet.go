package domain

import (
	"errors"
	"time"
)

var (
	ErrSnippetNotFound = errors.New("snippet not found")
	ErrSnippetInvalid  = errors.New("title, description, code and language are required")
)

type Snippet struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Code        string
	Language    string
	Tags        []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SnippetUpdate holds the fields a caller wants to change. Nil means unchanged.
type SnippetUpdate struct {
	Title       *string
	Description *string
	Code        *string
	Language    *string
	Tags        *[]string
}

// SnippetFilter narrows a snippet listing. Empty fields are ignored.
type SnippetFilter struct {
	Language string
	Tag      string
	Search   string
}
