package store

import (
	"time"

	"github.com/pytracker/tracker-service/internal/domain"
)

// Seed is a full boot dataset for the three stores.
type Seed struct {
	Users    []domain.User
	Projects []domain.Project
	Tickets  []domain.Ticket
}

// DefaultSeed returns the fixed demo dataset the service boots with: three
// users, two projects (keys PT and MA) and five tickets spread across the
// workflow. Scenario tests assert on these exact values.
func DefaultSeed() Seed {
	users := []domain.User{
		{ID: "1", Name: "Sarah Chen", Email: "sarah@pytracker.com", Avatar: "SC", CreatedAt: date(2024, 1, 10)},
		{ID: "2", Name: "Alex Rodriguez", Email: "alex@pytracker.com", Avatar: "AR", CreatedAt: date(2024, 1, 10)},
		{ID: "3", Name: "Maya Patel", Email: "maya@pytracker.com", Avatar: "MP", CreatedAt: date(2024, 1, 10)},
	}

	projects := []domain.Project{
		{
			ID:          "1",
			Name:        "PyTracker Platform",
			Key:         "PT",
			Description: "Main project management platform",
			CreatedAt:   date(2024, 1, 15),
		},
		{
			ID:          "2",
			Name:        "Mobile App",
			Key:         "MA",
			Description: "iOS and Android mobile application",
			CreatedAt:   date(2024, 2, 1),
		},
	}

	tickets := []domain.Ticket{
		{
			ID:          "PT-1",
			Title:       "Create User Authentication System",
			Description: "Implement login, logout, and user session management",
			Status:      domain.TicketStatusInProgress,
			Priority:    domain.TicketPriorityHigh,
			Assignee:    &users[0],
			Reporter:    users[1],
			ProjectID:   "1",
			Tags:        []string{"AUTHENTICATION", "BACKEND"},
			CreatedAt:   date(2024, 1, 20),
			UpdatedAt:   date(2024, 1, 22),
		},
		{
			ID:          "PT-2",
			Title:       "Design Dashboard UI",
			Description: "Create modern and intuitive dashboard interface",
			Status:      domain.TicketStatusTodo,
			Priority:    domain.TicketPriorityMedium,
			Assignee:    &users[2],
			Reporter:    users[0],
			ProjectID:   "1",
			Tags:        []string{"UI/UX", "FRONTEND"},
			CreatedAt:   date(2024, 1, 21),
			UpdatedAt:   date(2024, 1, 21),
		},
		{
			ID:          "PT-3",
			Title:       "Setup CI/CD Pipeline",
			Description: "Configure automated testing and deployment",
			Status:      domain.TicketStatusDone,
			Priority:    domain.TicketPriorityHigh,
			Assignee:    &users[1],
			Reporter:    users[0],
			ProjectID:   "1",
			Tags:        []string{"DEVOPS", "AUTOMATION"},
			CreatedAt:   date(2024, 1, 18),
			UpdatedAt:   date(2024, 1, 25),
		},
		{
			ID:          "PT-4",
			Title:       "Email Verification Process",
			Description: "Add email verification for new user registrations",
			Status:      domain.TicketStatusInReview,
			Priority:    domain.TicketPriorityMedium,
			Assignee:    &users[0],
			Reporter:    users[2],
			ProjectID:   "1",
			Tags:        []string{"AUTHENTICATION", "EMAIL"},
			CreatedAt:   date(2024, 1, 19),
			UpdatedAt:   date(2024, 1, 24),
		},
		{
			ID:          "MA-1",
			Title:       "Mobile App Wireframes",
			Description: "Create initial wireframes for mobile application",
			Status:      domain.TicketStatusTodo,
			Priority:    domain.TicketPriorityLow,
			Assignee:    &users[2],
			Reporter:    users[1],
			ProjectID:   "2",
			Tags:        []string{"MOBILE", "DESIGN"},
			CreatedAt:   date(2024, 2, 1),
			UpdatedAt:   date(2024, 2, 1),
		},
	}

	return Seed{Users: users, Projects: projects, Tickets: tickets}
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
