package dto

// ─── Filter / Pagination ─────────────────────────────────────────────────────

// ListFilter is shared by every catalog list endpoint.
// Active: "false" = inactive only, "all" = everything, anything else = active only.
type ListFilter struct {
	Name   string `form:"name"`
	Active string `form:"active"`
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// Normalize fills zero values left by callers that skip form binding.
func (f ListFilter) Normalize() ListFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 50
	}
	return f
}

type PageMeta struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

type ActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

type IDResponse struct {
	ID string `json:"id"`
}
