package http

import (
	"bytes"
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/pytracker/tracker-service/internal/api/http/handlers"
	"github.com/pytracker/tracker-service/internal/auth"
	"github.com/pytracker/tracker-service/internal/domain"
	"github.com/pytracker/tracker-service/internal/events"
	"github.com/pytracker/tracker-service/internal/observability"
	"github.com/pytracker/tracker-service/internal/persistence"
	"github.com/pytracker/tracker-service/internal/service"
	"github.com/pytracker/tracker-service/internal/store"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	tracker := service.NewTrackerService(service.Dependencies{
		Users:      store.NewUserDirectory(),
		Projects:   store.NewProjectRegistry(),
		Tickets:    store.NewTicketStore(),
		Verifier:   auth.NewSharedSecretVerifier("password"),
		Dispatcher: events.NewDispatcher(),
		Seed:       store.DefaultSeed(),
	})
	if err := tracker.Reset(context.Background()); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	logger := zap.NewNop()
	app := fiber.New()
	RegisterMiddlewares(app, logger, observability.NewMetrics(), 0)
	RegisterRoutes(app, RouteConfig{
		Health:   handlers.NewHealthHandler("test", "test", &persistence.Postgres{}, &persistence.Redis{}),
		Auth:     handlers.NewAuthHandler(tracker, auth.NewTokenManager("test-secret", 60)),
		Users:    handlers.NewUsersHandler(tracker),
		Projects: handlers.NewProjectsHandler(tracker),
		Tickets:  handlers.NewTicketsHandler(tracker),
		Admin:    handlers.NewAdminHandler(tracker),
	})
	return app
}

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func TestRoutes_ListTicketsFiltered(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(stdhttp.MethodGet, "/tickets?project_id=1", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body struct {
		Data []domain.Ticket `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Data) != 4 {
		t.Fatalf("len(data) = %d, want 4", len(body.Data))
	}
	for _, ticket := range body.Data {
		if ticket.ProjectID != "1" {
			t.Errorf("ticket %s has project %q, want 1", ticket.ID, ticket.ProjectID)
		}
	}
}

func TestRoutes_LoginErrorEnvelope(t *testing.T) {
	app := newTestApp(t)

	payload := []byte(`{"email":"sarah@pytracker.com","password":"wrong"}`)
	req := httptest.NewRequest(stdhttp.MethodPost, "/auth/login", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != stdhttp.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}

	var envelope errorEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Error.Code != "INVALID_CREDENTIALS" {
		t.Errorf("code = %q, want INVALID_CREDENTIALS", envelope.Error.Code)
	}
}

func TestRoutes_UpdateUnknownTicket(t *testing.T) {
	app := newTestApp(t)

	payload := []byte(`{"status":"TODO"}`)
	req := httptest.NewRequest(stdhttp.MethodPatch, "/tickets/PT-99", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != stdhttp.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}

	var envelope errorEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Error.Code != "NOT_FOUND" {
		t.Errorf("code = %q, want NOT_FOUND", envelope.Error.Code)
	}
}

func TestRoutes_PanicBecomesInternalError(t *testing.T) {
	app := newTestApp(t)
	app.Get("/boom", func(*fiber.Ctx) error {
		panic("handler blew up")
	})

	resp, err := app.Test(httptest.NewRequest(stdhttp.MethodGet, "/boom", nil), -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != stdhttp.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}

	var envelope errorEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Error.Code != "INTERNAL_ERROR" {
		t.Errorf("code = %q, want INTERNAL_ERROR", envelope.Error.Code)
	}
}

func TestRoutes_CreateTicket(t *testing.T) {
	app := newTestApp(t)

	payload := []byte(`{
		"project_id": "1",
		"title": "X",
		"status": "TODO",
		"priority": "LOW",
		"reporter": {"id": "1", "name": "Sarah Chen", "email": "sarah@pytracker.com"},
		"tags": []
	}`)
	req := httptest.NewRequest(stdhttp.MethodPost, "/tickets", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != stdhttp.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}

	var body struct {
		Data domain.Ticket `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data.ID != "PT-5" {
		t.Errorf("id = %q, want PT-5", body.Data.ID)
	}
}
