package domain

import (
	"strings"
	"time"
)

// TicketStatus enumerates the kanban columns a ticket moves through. There
// is no transition guard: any status may be set to any other.
type TicketStatus string

const (
	TicketStatusTodo       TicketStatus = "TODO"
	TicketStatusInProgress TicketStatus = "IN_PROGRESS"
	TicketStatusInReview   TicketStatus = "IN_REVIEW"
	TicketStatusDone       TicketStatus = "DONE"
)

// TicketPriority enumerates urgency.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "LOW"
	TicketPriorityMedium TicketPriority = "MEDIUM"
	TicketPriorityHigh   TicketPriority = "HIGH"
	TicketPriorityUrgent TicketPriority = "URGENT"
)

// Ticket is a unit of trackable work. Assignee and Reporter are value
// snapshots taken at assignment time; a later rename of the user does not
// rewrite tickets already issued.
type Ticket struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Status      TicketStatus   `json:"status"`
	Priority    TicketPriority `json:"priority"`
	Assignee    *User          `json:"assignee,omitempty"`
	Reporter    User           `json:"reporter"`
	ProjectID   string         `json:"project_id"`
	Tags        []string       `json:"tags"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// TicketPatch carries the mutable fields of a partial update. A nil carrier
// means "leave untouched". ID, CreatedAt, ProjectID and Reporter have no
// carriers and therefore cannot be changed through an update.
type TicketPatch struct {
	Title         *string
	Description   *string
	Status        *TicketStatus
	Priority      *TicketPriority
	Assignee      *User
	ClearAssignee bool
	Tags          *[]string
}

// NormalizeTags uppercases tags and drops case-insensitive duplicates while
// preserving first-seen order.
func NormalizeTags(tags []string) []string {
	normalized := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		upper := strings.ToUpper(strings.TrimSpace(tag))
		if upper == "" {
			continue
		}
		if _, ok := seen[upper]; ok {
			continue
		}
		seen[upper] = struct{}{}
		normalized = append(normalized, upper)
	}
	return normalized
}
