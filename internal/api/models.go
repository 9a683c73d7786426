// Package api implements the authenticated HTTP client for the snippet
// server: request building, multipart encoding for uploads, response
// decoding and failure classification.
package api

import "time"

// Visibility controls who can read a snippet.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// SnippetFile is one file belonging to a snippet. Order within a snippet
// is meaningful and preserved end to end.
type SnippetFile struct {
	Filename string `json:"filename" validate:"required,notblank"`
	Content  string `json:"content"`
	Language string `json:"language,omitempty"`
}

// Snippet is a stored unit of files plus metadata. ID is assigned by the
// server on creation and never changes.
type Snippet struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Visibility  Visibility    `json:"visibility"`
	Categories  []string      `json:"categories"`
	Files       []SnippetFile `json:"files"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// SnippetInput carries the caller-supplied fields for create and update.
// On update the Files slice replaces the server-side file set entirely.
type SnippetInput struct {
	Title       string `validate:"required,notblank"`
	Description string
	Visibility  Visibility `validate:"required,oneof=public private"`
	Categories  []string
	Files       []SnippetFile `validate:"required,min=1,dive"`
}

// Page is one page of a snippet listing. Items holds summaries in server
// order.
type Page struct {
	Items    []Snippet `json:"items"`
	Page     int       `json:"page"`
	PageSize int       `json:"page_size"`
	Total    int       `json:"total"`
}

// SortOrder selects the ordering of search results.
type SortOrder string

const (
	SortNewest    SortOrder = "newest"
	SortOldest    SortOrder = "oldest"
	SortAlphaAsc  SortOrder = "alpha-asc"
	SortAlphaDesc SortOrder = "alpha-desc"
)

// Valid reports whether s is one of the known sort orders.
func (s SortOrder) Valid() bool {
	switch s {
	case SortNewest, SortOldest, SortAlphaAsc, SortAlphaDesc:
		return true
	}
	return false
}

// SearchQuery describes a snippet search. Matching covers titles and
// descriptions; SearchCode extends it to file contents.
type SearchQuery struct {
	Text       string
	Sort       SortOrder
	SearchCode bool
}
