package models

// uniform error payload
type ErrorResponse struct {
	Code    string                  `json:"code"`
	Message string                  `json:"message"`
	Details []ValidationErrorDetail `json:"details,omitempty"`
}

func (e *ErrorResponse) Error() string {
	return e.Message
}

// a single field error
type ValidationErrorDetail struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// APIResponse wraps successful payloads.
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Count   *int   `json:"count,omitempty"`
}

// helper to calculate pagination metadata
func CalculatePaginationMeta(page, limit, total int) (totalPages int, hasNext, hasPrev bool) {
	if limit <= 0 {
		limit = 1 // avoid division by zero
	}
	totalPages = (total + limit - 1) / limit
	hasNext = page < totalPages
	hasPrev = page > 1
	return
}

// PageResponse is the list shape for paginated endpoints.
type PageResponse[T any] struct {
	Total      int  `json:"total"`
	Items      []T  `json:"items"`
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

func NewPageResponse[T any](items []T, page, limit, total int) PageResponse[T] {
	if items == nil {
		items = []T{}
	}
	totalPages, hasNext, hasPrev := CalculatePaginationMeta(page, limit, total)
	return PageResponse[T]{
		Total:      total,
		Items:      items,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
		HasNext:    hasNext,
		HasPrev:    hasPrev,
	}
}
