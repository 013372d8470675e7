package store

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pytracker/tracker-service/internal/domain"
	apperrors "github.com/pytracker/tracker-service/pkg/util/errorutil"
)

// TicketCreateInput describes ticket creation payload. The status is taken
// as supplied; the store applies no default.
type TicketCreateInput struct {
	Title       string
	Description string
	Status      domain.TicketStatus
	Priority    domain.TicketPriority
	Assignee    *domain.User
	Reporter    domain.User
	Tags        []string
}

// TicketStore holds tickets in insertion order and owns the ID scheme.
type TicketStore interface {
	ListByProject(ctx context.Context, projectID string) ([]domain.Ticket, error)
	Get(ctx context.Context, id string) (*domain.Ticket, error)
	Create(ctx context.Context, project *domain.Project, input TicketCreateInput) (*domain.Ticket, error)
	Update(ctx context.Context, id string, patch domain.TicketPatch) (*domain.Ticket, error)
	Delete(ctx context.Context, id string) error
	Reset(ctx context.Context, seed []domain.Ticket) error
}

type ticketStore struct {
	mu      sync.Mutex
	tickets []domain.Ticket
	byID    map[string]int
	// nextSeq is the monotonic per-project ticket sequence. It is never
	// decremented, so deleting a ticket cannot cause its ID to be reissued.
	nextSeq map[string]int
}

// NewTicketStore returns an in-memory implementation.
func NewTicketStore() TicketStore {
	return &ticketStore{
		byID:    make(map[string]int),
		nextSeq: make(map[string]int),
	}
}

// ListByProject returns tickets for the project in insertion order, or all
// tickets when projectID is empty.
func (s *ticketStore) ListByProject(_ context.Context, projectID string) ([]domain.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Ticket, 0, len(s.tickets))
	for i := range s.tickets {
		if projectID != "" && s.tickets[i].ProjectID != projectID {
			continue
		}
		out = append(out, copyTicket(s.tickets[i]))
	}
	return out, nil
}

func (s *ticketStore) Get(_ context.Context, id string) (*domain.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx, ok := s.byID[id]
	if !ok {
		return nil, apperrors.NewNotFound("ticket", map[string]any{"id": id})
	}
	ticket := copyTicket(s.tickets[idx])
	return &ticket, nil
}

// Create issues the next "<key>-<seq>" ID for the project and appends the
// ticket. The sequence advance and the append happen under one lock
// acquisition, so concurrent creators cannot observe the same count.
func (s *ticketStore) Create(_ context.Context, project *domain.Project, input TicketCreateInput) (*domain.Ticket, error) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	seq := s.nextSeq[project.ID] + 1
	s.nextSeq[project.ID] = seq

	ticket := domain.Ticket{
		ID:          fmt.Sprintf("%s-%d", project.Key, seq),
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
		Assignee:    copyUserPtr(input.Assignee),
		Reporter:    input.Reporter,
		ProjectID:   project.ID,
		Tags:        domain.NormalizeTags(input.Tags),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.byID[ticket.ID] = len(s.tickets)
	s.tickets = append(s.tickets, ticket)

	snapshot := copyTicket(ticket)
	return &snapshot, nil
}

// Update shallow-merges the set carriers onto the stored ticket and always
// refreshes UpdatedAt. ID, CreatedAt, ProjectID and Reporter are untouched.
func (s *ticketStore) Update(_ context.Context, id string, patch domain.TicketPatch) (*domain.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx, ok := s.byID[id]
	if !ok {
		return nil, apperrors.NewNotFound("ticket", map[string]any{"id": id})
	}

	ticket := &s.tickets[idx]
	if patch.Title != nil {
		ticket.Title = *patch.Title
	}
	if patch.Description != nil {
		ticket.Description = *patch.Description
	}
	if patch.Status != nil {
		ticket.Status = *patch.Status
	}
	if patch.Priority != nil {
		ticket.Priority = *patch.Priority
	}
	if patch.ClearAssignee {
		ticket.Assignee = nil
	} else if patch.Assignee != nil {
		ticket.Assignee = copyUserPtr(patch.Assignee)
	}
	if patch.Tags != nil {
		ticket.Tags = domain.NormalizeTags(*patch.Tags)
	}
	ticket.UpdatedAt = time.Now()

	snapshot := copyTicket(*ticket)
	return &snapshot, nil
}

// Delete removes the ticket permanently. The project sequence is left
// alone, so the ID is never handed out again.
func (s *ticketStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx, ok := s.byID[id]
	if !ok {
		return apperrors.NewNotFound("ticket", map[string]any{"id": id})
	}

	s.tickets = append(s.tickets[:idx], s.tickets[idx+1:]...)
	delete(s.byID, id)
	for i := idx; i < len(s.tickets); i++ {
		s.byID[s.tickets[i].ID] = i
	}
	return nil
}

// Reset replaces the store contents with the given seed and installs each
// project's sequence at the highest numeric suffix seen for it.
func (s *ticketStore) Reset(_ context.Context, seed []domain.Ticket) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tickets = make([]domain.Ticket, len(seed))
	s.byID = make(map[string]int, len(seed))
	s.nextSeq = make(map[string]int)
	for i, ticket := range seed {
		s.tickets[i] = copyTicket(ticket)
		s.byID[ticket.ID] = i
		if seq, ok := parseSeq(ticket.ID); ok && seq > s.nextSeq[ticket.ProjectID] {
			s.nextSeq[ticket.ProjectID] = seq
		}
	}
	return nil
}

func parseSeq(id string) (int, bool) {
	dash := strings.LastIndexByte(id, '-')
	if dash < 0 {
		return 0, false
	}
	seq, err := strconv.Atoi(id[dash+1:])
	if err != nil {
		return 0, false
	}
	return seq, true
}

func copyTicket(t domain.Ticket) domain.Ticket {
	out := t
	out.Assignee = copyUserPtr(t.Assignee)
	out.Tags = append([]string(nil), t.Tags...)
	return out
}

func copyUserPtr(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	copied := *u
	return &copied
}
