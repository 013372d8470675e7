package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pytracker/tracker-service/internal/domain"
	apperrors "github.com/pytracker/tracker-service/pkg/util/errorutil"
)

// UserDirectory holds the known users of the workspace.
type UserDirectory interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Register(ctx context.Context, name, email, passwordHash string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Reset(ctx context.Context, seed []domain.User) error
}

type userDirectory struct {
	mu      sync.Mutex
	users   []domain.User
	byEmail map[string]int
	byID    map[string]int
}

// NewUserDirectory returns an in-memory, insertion-ordered implementation.
// The directory lives for the process lifetime; there is no durability.
func NewUserDirectory() UserDirectory {
	return &userDirectory{
		byEmail: make(map[string]int),
		byID:    make(map[string]int),
	}
}

// FindByEmail matches exactly and case-sensitively.
func (d *userDirectory) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	idx, ok := d.byEmail[email]
	if !ok {
		return nil, apperrors.NewNotFound("user", map[string]any{"email": email})
	}
	user := d.users[idx]
	return &user, nil
}

func (d *userDirectory) FindByID(_ context.Context, id string) (*domain.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	idx, ok := d.byID[id]
	if !ok {
		return nil, apperrors.NewNotFound("user", map[string]any{"id": id})
	}
	user := d.users[idx]
	return &user, nil
}

// Register appends a new user with a fresh ID and an avatar derived from
// the name's initials. Duplicate emails are rejected so that FindByEmail
// stays unambiguous.
func (d *userDirectory) Register(_ context.Context, name, email, passwordHash string) (*domain.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.byEmail[email]; exists {
		return nil, apperrors.NewConflict("email already registered", map[string]any{"email": email})
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		Avatar:       domain.Initials(name),
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	d.byEmail[user.Email] = len(d.users)
	d.byID[user.ID] = len(d.users)
	d.users = append(d.users, user)
	return &user, nil
}

// List returns a snapshot in insertion order.
func (d *userDirectory) List(_ context.Context) ([]domain.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]domain.User, len(d.users))
	copy(out, d.users)
	return out, nil
}

// Reset replaces the directory contents with the given seed.
func (d *userDirectory) Reset(_ context.Context, seed []domain.User) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.users = make([]domain.User, len(seed))
	copy(d.users, seed)
	d.byEmail = make(map[string]int, len(seed))
	d.byID = make(map[string]int, len(seed))
	for i, user := range d.users {
		d.byEmail[user.Email] = i
		d.byID[user.ID] = i
	}
	return nil
}
