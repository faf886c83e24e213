// Package dto provides Data Transfer Objects for API requests/responses.
package dto

// IDResponse returns a created entity's ID.
type IDResponse struct {
	ID string `json:"id"`
}

// SuccessResponse is a generic operation outcome.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// PageRequest contains pagination query parameters. Page numbers are
// zero-based on the wire.
type PageRequest struct {
	Page int `form:"page" binding:"min=0"`
	Size int `form:"size" binding:"min=0,max=100"`
}

// Defaults sets default pagination values.
func (p *PageRequest) Defaults() {
	if p.Size == 0 {
		p.Size = 10
	}
}

// PageEnvelope is the paginated listing contract.
type PageEnvelope[T any] struct {
	Content       []T   `json:"content"`
	PageNumber    int   `json:"pageNumber"`
	PageSize      int   `json:"pageSize"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Last          bool  `json:"last"`
}

// NewPageEnvelope wraps one page of content. Content is never null on the
// wire, an empty page serializes as [].
func NewPageEnvelope[T any](content []T, page, size int, total int64) PageEnvelope[T] {
	if content == nil {
		content = []T{}
	}
	totalPages := 0
	if size > 0 {
		totalPages = int(total) / size
		if int(total)%size > 0 {
			totalPages++
		}
	}
	return PageEnvelope[T]{
		Content:       content,
		PageNumber:    page,
		PageSize:      size,
		TotalElements: total,
		TotalPages:    totalPages,
		Last:          page >= totalPages-1,
	}
}
