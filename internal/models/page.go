package models

// Page is one slice of an ordered listing.
type Page[T any] struct {
	Items   []T   `json:"items"`
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
	Total   int64 `json:"total"`
}

// PageRequest is a 1-based page number plus page size.
type PageRequest struct {
	Page    int
	PerPage int
}

const (
	DefaultPerPage = 30
	MaxPerPage     = 100
	// MaxPage keeps (Page-1)*PerPage well inside int32.
	MaxPage = 1_000_000
)

// Normalize clamps the request to sane bounds.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	if p.PerPage <= 0 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	return p
}

func (p PageRequest) Limit() int  { return p.Normalize().PerPage }
func (p PageRequest) Offset() int { n := p.Normalize(); return (n.Page - 1) * n.PerPage }
