package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/pytracker/tracker-service/internal/auth"
	"github.com/pytracker/tracker-service/internal/config"
	"github.com/pytracker/tracker-service/internal/domain"
	"github.com/pytracker/tracker-service/internal/events"
	"github.com/pytracker/tracker-service/internal/store"
	apperrors "github.com/pytracker/tracker-service/pkg/util/errorutil"
)

// TrackerService is the single entry point for the tracking domain: login
// and registration, project and ticket CRUD, and the user listing. It
// composes the three stores and enforces the cross-entity invariants
// (ticket IDs derive from the owning project's key).
//
// Every operation waits an artificial per-class delay before touching the
// stores. The delay exists so consumers exercise their pending states; it
// always elapses, and a mutation, once reached, always completes even if
// the caller has abandoned the result.
type TrackerService struct {
	users      store.UserDirectory
	projects   store.ProjectRegistry
	tickets    store.TicketStore
	verifier   auth.CredentialVerifier
	dispatcher events.Dispatcher
	latency    config.LatencyConfig
	seed       store.Seed
}

// Dependencies bundles collaborators for the tracker service.
type Dependencies struct {
	Users      store.UserDirectory
	Projects   store.ProjectRegistry
	Tickets    store.TicketStore
	Verifier   auth.CredentialVerifier
	Dispatcher events.Dispatcher
	Latency    config.LatencyConfig
	Seed       store.Seed
}

// TicketCreateInput describes ticket creation payload. Status is taken as
// supplied; the service applies no default.
type TicketCreateInput struct {
	ProjectID   string
	Title       string
	Description string
	Status      domain.TicketStatus
	Priority    domain.TicketPriority
	Assignee    *domain.User
	Reporter    domain.User
	Tags        []string
}

// NewTrackerService constructs the service.
func NewTrackerService(deps Dependencies) *TrackerService {
	return &TrackerService{
		users:      deps.Users,
		projects:   deps.Projects,
		tickets:    deps.Tickets,
		verifier:   deps.Verifier,
		dispatcher: deps.Dispatcher,
		latency:    deps.Latency,
		seed:       deps.Seed,
	}
}

// Login authenticates a user by email. Unknown emails and rejected secrets
// are indistinguishable to the caller.
func (s *TrackerService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	s.wait(s.latency.Auth())
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewInvalidCredentials()
		}
		return nil, err
	}
	if err := s.verifier.Verify(user, password); err != nil {
		if errors.Is(err, auth.ErrBadCredentials) {
			return nil, apperrors.NewInvalidCredentials()
		}
		return nil, err
	}
	return user, nil
}

// Register creates a new user account.
func (s *TrackerService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	s.wait(s.latency.Auth())
	hash, err := s.verifier.Hash(password)
	if err != nil {
		return nil, err
	}
	user, err := s.users.Register(ctx, name, email, hash)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.Event{
		Type:     events.EventUserRegistered,
		EntityID: user.ID,
		Payload:  events.UserRegisteredPayload{Email: user.Email},
	})
	return user, nil
}

// ListUsers returns all known users in insertion order.
func (s *TrackerService) ListUsers(ctx context.Context) ([]domain.User, error) {
	s.wait(s.latency.Read())
	return s.users.List(ctx)
}

// ListProjects returns all projects in insertion order.
func (s *TrackerService) ListProjects(ctx context.Context) ([]domain.Project, error) {
	s.wait(s.latency.Read())
	return s.projects.List(ctx)
}

// CreateProject registers a new project.
func (s *TrackerService) CreateProject(ctx context.Context, input store.ProjectCreateInput) (*domain.Project, error) {
	s.wait(s.latency.Write())
	project, err := s.projects.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.Event{
		Type:     events.EventProjectCreated,
		EntityID: project.ID,
		Payload:  events.ProjectCreatedPayload{Name: project.Name, Key: project.Key},
	})
	return project, nil
}

// ListTickets returns tickets for the project, or all tickets when
// projectID is empty, in insertion order.
func (s *TrackerService) ListTickets(ctx context.Context, projectID string) ([]domain.Ticket, error) {
	s.wait(s.latency.Read())
	return s.tickets.ListByProject(ctx, projectID)
}

// CreateTicket resolves the project and creates a ticket with an ID derived
// from the project key. Fails with NotFound when the project is unknown,
// leaving the store untouched.
func (s *TrackerService) CreateTicket(ctx context.Context, input TicketCreateInput) (*domain.Ticket, error) {
	s.wait(s.latency.Write())
	project, err := s.projects.FindByID(ctx, input.ProjectID)
	if err != nil {
		return nil, err
	}
	ticket, err := s.tickets.Create(ctx, project, store.TicketCreateInput{
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
		Assignee:    input.Assignee,
		Reporter:    input.Reporter,
		Tags:        input.Tags,
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.Event{
		Type:     events.EventTicketCreated,
		EntityID: ticket.ID,
		Payload: events.TicketCreatedPayload{
			ProjectID: ticket.ProjectID,
			Title:     ticket.Title,
			Status:    ticket.Status,
			Priority:  ticket.Priority,
		},
	})
	return ticket, nil
}

// UpdateTicket shallow-merges the patch onto the ticket and returns the new
// snapshot. Fails with NotFound on an unknown id.
func (s *TrackerService) UpdateTicket(ctx context.Context, id string, patch domain.TicketPatch) (*domain.Ticket, error) {
	s.wait(s.latency.Write())
	ticket, err := s.tickets.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.Event{
		Type:     events.EventTicketUpdated,
		EntityID: ticket.ID,
		Payload:  events.TicketUpdatedPayload{Status: ticket.Status, Priority: ticket.Priority},
	})
	return ticket, nil
}

// DeleteTicket removes the ticket permanently. Fails with NotFound on an
// unknown id.
func (s *TrackerService) DeleteTicket(ctx context.Context, id string) error {
	s.wait(s.latency.Write())
	ticket, err := s.tickets.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.tickets.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, events.Event{
		Type:     events.EventTicketDeleted,
		EntityID: ticket.ID,
		Payload:  events.TicketDeletedPayload{ProjectID: ticket.ProjectID},
	})
	return nil
}

// Reset reseeds all three stores with the boot dataset. Exposed for tests
// and the development-only admin endpoint; production has no lifecycle
// boundary beyond the process itself.
func (s *TrackerService) Reset(ctx context.Context) error {
	if err := s.users.Reset(ctx, s.seed.Users); err != nil {
		return err
	}
	if err := s.projects.Reset(ctx, s.seed.Projects); err != nil {
		return err
	}
	return s.tickets.Reset(ctx, s.seed.Tickets)
}

// wait blocks for the given artificial delay. It deliberately ignores the
// caller's context: the delay always resolves, and abandoning the pending
// result never prevents a dispatched write from completing.
func (s *TrackerService) wait(d time.Duration) {
	if d <= 0 {
		return
	}
	time.Sleep(d)
}

func (s *TrackerService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
