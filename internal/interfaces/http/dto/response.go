package dto

// ListRequest carries pagination and ordering for list endpoints
type ListRequest struct {
	Page     int    `json:"page" binding:"omitempty,min=1"`
	PageSize int    `json:"pageSize" binding:"omitempty,min=1,max=100"`
	OrderBy  string `json:"orderBy" binding:"omitempty,max=50"`
	OrderDir string `json:"orderDir" binding:"omitempty,oneof=asc desc ASC DESC"`
}

// Normalize fills zero pagination values with defaults
func (r *ListRequest) Normalize() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.PageSize < 1 {
		r.PageSize = 50
	}
}
