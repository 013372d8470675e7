package dto

import "github.com/pytracker/tracker-service/internal/domain"

// UserPayload is a user snapshot supplied by the presentation layer when
// assigning or reporting a ticket.
type UserPayload struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
}

// ToDomain converts the payload to a domain snapshot.
func (u *UserPayload) ToDomain() *domain.User {
	if u == nil {
		return nil
	}
	return &domain.User{ID: u.ID, Name: u.Name, Email: u.Email, Avatar: u.Avatar}
}

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	ProjectID   string                `json:"project_id"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Status      domain.TicketStatus   `json:"status"`
	Priority    domain.TicketPriority `json:"priority"`
	Assignee    *UserPayload          `json:"assignee,omitempty"`
	Reporter    UserPayload           `json:"reporter"`
	Tags        []string              `json:"tags"`
}

// UpdateTicketRequest carries partial ticket fields. Absent keys leave the
// field untouched; id, created_at, project_id and reporter are not part of
// the mutable surface and unknown keys are dropped at this boundary.
type UpdateTicketRequest struct {
	Title         *string                `json:"title"`
	Description   *string                `json:"description"`
	Status        *domain.TicketStatus   `json:"status"`
	Priority      *domain.TicketPriority `json:"priority"`
	Assignee      *UserPayload           `json:"assignee"`
	ClearAssignee bool                   `json:"clear_assignee"`
	Tags          *[]string              `json:"tags"`
}

// ToPatch converts the request to a domain patch.
func (r *UpdateTicketRequest) ToPatch() domain.TicketPatch {
	return domain.TicketPatch{
		Title:         r.Title,
		Description:   r.Description,
		Status:        r.Status,
		Priority:      r.Priority,
		Assignee:      r.Assignee.ToDomain(),
		ClearAssignee: r.ClearAssignee,
		Tags:          r.Tags,
	}
}
