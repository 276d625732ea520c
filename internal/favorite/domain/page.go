package domain

import "strings"

// Pagination limits
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	DefaultSortBy   = "createdAt"
)

// SortDirection is the ordering applied to the sort field
type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

// ParseSortDirection is case-insensitive; anything but "ASC" sorts descending
func ParseSortDirection(s string) SortDirection {
	if strings.EqualFold(strings.TrimSpace(s), string(SortAsc)) {
		return SortAsc
	}
	return SortDesc
}

// PageRequest is a normalized page query handed to the repository.
// SortBy is passed through as given; the repository decides whether it is valid.
type PageRequest struct {
	Page      int
	Size      int
	SortBy    string
	Direction SortDirection
}

// NewPageRequest clamps page to >= 0 and size to (0, MaxPageSize], defaulting to DefaultPageSize
func NewPageRequest(page, size int, sortBy, direction string) PageRequest {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return PageRequest{
		Page:      page,
		Size:      size,
		SortBy:    sortBy,
		Direction: ParseSortDirection(direction),
	}
}

// Offset is the number of rows skipped before this page
func (r PageRequest) Offset() int {
	return r.Page * r.Size
}

// Page is one page of favorite summaries plus navigation metadata
type Page struct {
	Content       []FavoriteSummary `json:"content"`
	PageNumber    int               `json:"pageNumber"`
	PageSize      int               `json:"pageSize"`
	TotalElements int64             `json:"totalElements"`
	TotalPages    int               `json:"totalPages"`
	First         bool              `json:"first"`
	Last          bool              `json:"last"`
	HasNext       bool              `json:"hasNext"`
	HasPrevious   bool              `json:"hasPrevious"`
}

// NewPage computes the navigation flags for content fetched with req out of total rows
func NewPage(content []FavoriteSummary, req PageRequest, total int64) Page {
	if content == nil {
		content = []FavoriteSummary{}
	}

	totalPages := 0
	if req.Size > 0 {
		totalPages = int((total + int64(req.Size) - 1) / int64(req.Size))
	}
	hasNext := req.Page+1 < totalPages

	return Page{
		Content:       content,
		PageNumber:    req.Page,
		PageSize:      req.Size,
		TotalElements: total,
		TotalPages:    totalPages,
		First:         req.Page == 0,
		Last:          !hasNext,
		HasNext:       hasNext,
		HasPrevious:   req.Page > 0,
	}
}
