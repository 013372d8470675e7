package store

import (
	"context"
	"regexp"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pytracker/tracker-service/internal/domain"
	apperrors "github.com/pytracker/tracker-service/pkg/util/errorutil"
)

// ProjectCreateInput describes project creation payload.
type ProjectCreateInput struct {
	Name        string
	Key         string
	Description string
	Avatar      string
}

// ProjectRegistry holds projects in insertion order.
type ProjectRegistry interface {
	List(ctx context.Context) ([]domain.Project, error)
	Create(ctx context.Context, input ProjectCreateInput) (*domain.Project, error)
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	Reset(ctx context.Context, seed []domain.Project) error
}

var projectKeyPattern = regexp.MustCompile(`^[A-Z]{2,4}$`)

type projectRegistry struct {
	mu       sync.Mutex
	projects []domain.Project
	byID     map[string]int
	byKey    map[string]int
}

// NewProjectRegistry returns an in-memory implementation.
func NewProjectRegistry() ProjectRegistry {
	return &projectRegistry{
		byID:  make(map[string]int),
		byKey: make(map[string]int),
	}
}

// List returns a snapshot in insertion order.
func (r *projectRegistry) List(_ context.Context) ([]domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Project, len(r.projects))
	copy(out, r.projects)
	return out, nil
}

// Create validates the key (2-4 uppercase letters, unique across projects)
// and appends the project. Colliding keys would produce colliding ticket
// IDs, so the registry enforces uniqueness itself.
func (r *projectRegistry) Create(_ context.Context, input ProjectCreateInput) (*domain.Project, error) {
	if !projectKeyPattern.MatchString(input.Key) {
		return nil, apperrors.NewValidationError("project key must be 2-4 uppercase letters", map[string]any{"key": input.Key})
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byKey[input.Key]; exists {
		return nil, apperrors.NewConflict("project key already in use", map[string]any{"key": input.Key})
	}

	project := domain.Project{
		ID:          uuid.NewString(),
		Name:        input.Name,
		Key:         input.Key,
		Description: input.Description,
		Avatar:      input.Avatar,
		CreatedAt:   time.Now(),
	}
	r.byID[project.ID] = len(r.projects)
	r.byKey[project.Key] = len(r.projects)
	r.projects = append(r.projects, project)
	return &project, nil
}

func (r *projectRegistry) FindByID(_ context.Context, id string) (*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx, ok := r.byID[id]
	if !ok {
		return nil, apperrors.NewNotFound("project", map[string]any{"id": id})
	}
	project := r.projects[idx]
	return &project, nil
}

// Reset replaces the registry contents with the given seed.
func (r *projectRegistry) Reset(_ context.Context, seed []domain.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.projects = make([]domain.Project, len(seed))
	copy(r.projects, seed)
	r.byID = make(map[string]int, len(seed))
	r.byKey = make(map[string]int, len(seed))
	for i, project := range r.projects {
		r.byID[project.ID] = i
		r.byKey[project.Key] = i
	}
	return nil
}
