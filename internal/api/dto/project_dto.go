package dto

// CreateProjectRequest payload.
type CreateProjectRequest struct {
	Name        string `json:"name"`
	Key         string `json:"key"`
	Description string `json:"description"`
	Avatar      string `json:"avatar,omitempty"`
}
