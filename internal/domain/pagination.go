package domain

import (
	"math"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	// MaxPage keeps (page-1)*limit within int for any accepted limit.
	MaxPage = math.MaxInt / MaxLimit
)

// PageRequest is a validated page/limit pair; use NewPageRequest to build one.
type PageRequest struct {
	Page  int
	Limit int
}

// NewPageRequest clamps raw values: anything below 1 falls back to the default,
// limit is capped at MaxLimit and page at MaxPage.
func NewPageRequest(page, limit int) PageRequest {
	if page < 1 {
		page = DefaultPage
	}
	if page > MaxPage {
		page = MaxPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return PageRequest{Page: page, Limit: limit}
}

func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

type Pagination struct {
	CurrentPage int
	TotalPages  int
	TotalItems  int
	HasNextPage bool
	HasPrevPage bool
}

func NewPagination(req PageRequest, total int) Pagination {
	totalPages := 0
	if total > 0 {
		totalPages = (total + req.Limit - 1) / req.Limit
	}
	return Pagination{
		CurrentPage: req.Page,
		TotalPages:  totalPages,
		TotalItems:  total,
		HasNextPage: req.Page < totalPages,
		HasPrevPage: req.Page > 1,
	}
}

// NormalizeTags trims each tag, drops empty ones and removes duplicates,
// keeping first-seen order. The result is never nil.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
