package store

import (
	"context"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/pytracker/tracker-service/internal/domain"
	apperrors "github.com/pytracker/tracker-service/pkg/util/errorutil"
)

func seededTicketStore(t *testing.T) (TicketStore, Seed) {
	t.Helper()
	seed := DefaultSeed()
	ts := NewTicketStore()
	if err := ts.Reset(context.Background(), seed.Tickets); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	return ts, seed
}

func TestTicketStore_ListByProject(t *testing.T) {
	ts, _ := seededTicketStore(t)
	ctx := context.Background()

	all, err := ts.ListByProject(ctx, "")
	if err != nil {
		t.Fatalf("ListByProject: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("len(all) = %d, want 5", len(all))
	}

	pt, err := ts.ListByProject(ctx, "1")
	if err != nil {
		t.Fatalf("ListByProject(1): %v", err)
	}
	if len(pt) != 4 {
		t.Fatalf("len(pt) = %d, want 4", len(pt))
	}

	// Filtered listing is exactly the matching subset of the full listing,
	// relative order preserved.
	subset := make([]string, 0, len(all))
	for _, ticket := range all {
		if ticket.ProjectID == "1" {
			subset = append(subset, ticket.ID)
		}
	}
	filtered := make([]string, 0, len(pt))
	for _, ticket := range pt {
		filtered = append(filtered, ticket.ID)
	}
	if !reflect.DeepEqual(subset, filtered) {
		t.Errorf("filtered ids = %v, want %v", filtered, subset)
	}
}

func TestTicketStore_CreateDerivesID(t *testing.T) {
	ts, seed := seededTicketStore(t)
	ctx := context.Background()
	project := &seed.Projects[0] // id "1", key PT, 4 seeded tickets

	ticket, err := ts.Create(ctx, project, TicketCreateInput{
		Title:    "X",
		Status:   domain.TicketStatusTodo,
		Priority: domain.TicketPriorityLow,
		Reporter: seed.Users[0],
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if ticket.ID != "PT-5" {
		t.Errorf("id = %q, want PT-5", ticket.ID)
	}
	if !strings.HasPrefix(ticket.ID, project.Key+"-") {
		t.Errorf("id %q does not carry project key prefix %q", ticket.ID, project.Key)
	}
	if !ticket.CreatedAt.Equal(ticket.UpdatedAt) {
		t.Errorf("CreatedAt %v != UpdatedAt %v on fresh ticket", ticket.CreatedAt, ticket.UpdatedAt)
	}
}

func TestTicketStore_IDsNeverReusedAfterDelete(t *testing.T) {
	ts, seed := seededTicketStore(t)
	ctx := context.Background()
	project := &seed.Projects[0]

	if err := ts.Delete(ctx, "PT-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	tickets, _ := ts.ListByProject(ctx, "1")
	for _, ticket := range tickets {
		if ticket.ID == "PT-1" {
			t.Fatal("PT-1 still listed after delete")
		}
	}

	// The per-project sequence is monotonic: the freed number is not
	// reissued.
	created, err := ts.Create(ctx, project, TicketCreateInput{
		Title:    "Replacement",
		Status:   domain.TicketStatusTodo,
		Priority: domain.TicketPriorityLow,
		Reporter: seed.Users[0],
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID != "PT-5" {
		t.Errorf("id after delete = %q, want PT-5 (never PT-1)", created.ID)
	}
}

func TestTicketStore_CreateNormalizesTags(t *testing.T) {
	ts, seed := seededTicketStore(t)

	ticket, err := ts.Create(context.Background(), &seed.Projects[1], TicketCreateInput{
		Title:    "Tagged",
		Status:   domain.TicketStatusTodo,
		Priority: domain.TicketPriorityLow,
		Reporter: seed.Users[0],
		Tags:     []string{"mobile", "Design", "MOBILE"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	want := []string{"MOBILE", "DESIGN"}
	if !reflect.DeepEqual(ticket.Tags, want) {
		t.Errorf("tags = %v, want %v", ticket.Tags, want)
	}
}

func TestTicketStore_Update(t *testing.T) {
	ts, _ := seededTicketStore(t)
	ctx := context.Background()

	before, err := ts.Get(ctx, "PT-3")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if before.Status != domain.TicketStatusDone {
		t.Fatalf("seed PT-3 status = %q, want DONE", before.Status)
	}

	status := domain.TicketStatusTodo
	updated, err := ts.Update(ctx, "PT-3", domain.TicketPatch{Status: &status})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Status != domain.TicketStatusTodo {
		t.Errorf("status = %q, want TODO", updated.Status)
	}
	if updated.ID != "PT-3" {
		t.Errorf("id changed to %q", updated.ID)
	}
	if !updated.UpdatedAt.After(before.UpdatedAt) {
		t.Errorf("UpdatedAt %v not after %v", updated.UpdatedAt, before.UpdatedAt)
	}

	// Untouched fields survive the merge.
	if updated.Title != before.Title || updated.Priority != before.Priority {
		t.Errorf("unpatched fields changed: %+v", updated)
	}
	if !updated.CreatedAt.Equal(before.CreatedAt) {
		t.Errorf("CreatedAt changed from %v to %v", before.CreatedAt, updated.CreatedAt)
	}
	if updated.ProjectID != before.ProjectID || updated.Reporter.ID != before.Reporter.ID {
		t.Errorf("immutable fields changed: %+v", updated)
	}
}

func TestTicketStore_UpdateAssignee(t *testing.T) {
	ts, seed := seededTicketStore(t)
	ctx := context.Background()

	updated, err := ts.Update(ctx, "PT-2", domain.TicketPatch{Assignee: &seed.Users[1]})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Assignee == nil || updated.Assignee.ID != "2" {
		t.Fatalf("assignee = %+v, want user 2", updated.Assignee)
	}

	cleared, err := ts.Update(ctx, "PT-2", domain.TicketPatch{ClearAssignee: true})
	if err != nil {
		t.Fatalf("Update(clear): %v", err)
	}
	if cleared.Assignee != nil {
		t.Errorf("assignee = %+v, want nil after clear", cleared.Assignee)
	}
}

func TestTicketStore_UnknownIDNeverMutates(t *testing.T) {
	ts, _ := seededTicketStore(t)
	ctx := context.Background()

	title := "ghost"
	if _, err := ts.Update(ctx, "PT-99", domain.TicketPatch{Title: &title}); !apperrors.IsNotFound(err) {
		t.Errorf("Update unknown err = %v, want NotFound", err)
	}
	if err := ts.Delete(ctx, "PT-99"); !apperrors.IsNotFound(err) {
		t.Errorf("Delete unknown err = %v, want NotFound", err)
	}

	all, _ := ts.ListByProject(ctx, "")
	if len(all) != 5 {
		t.Errorf("store mutated by failed ops: len = %d, want 5", len(all))
	}
}

func TestTicketStore_SnapshotsAreDefensive(t *testing.T) {
	ts, _ := seededTicketStore(t)
	ctx := context.Background()

	list, _ := ts.ListByProject(ctx, "")
	list[0].Tags[0] = "HACKED"
	list[0].Assignee.Name = "Nobody"

	fresh, _ := ts.Get(ctx, list[0].ID)
	if fresh.Tags[0] == "HACKED" {
		t.Error("tag mutation leaked into the store")
	}
	if fresh.Assignee.Name == "Nobody" {
		t.Error("assignee mutation leaked into the store")
	}
}

func TestTicketStore_SequencePerProject(t *testing.T) {
	ts, seed := seededTicketStore(t)
	ctx := context.Background()

	// MA has one seeded ticket; the next is MA-2 regardless of PT traffic.
	ptTicket, err := ts.Create(ctx, &seed.Projects[0], TicketCreateInput{
		Title: "pt", Status: domain.TicketStatusTodo, Priority: domain.TicketPriorityLow, Reporter: seed.Users[0],
	})
	if err != nil {
		t.Fatalf("Create PT: %v", err)
	}
	maTicket, err := ts.Create(ctx, &seed.Projects[1], TicketCreateInput{
		Title: "ma", Status: domain.TicketStatusTodo, Priority: domain.TicketPriorityLow, Reporter: seed.Users[0],
	})
	if err != nil {
		t.Fatalf("Create MA: %v", err)
	}
	if ptTicket.ID != "PT-5" || maTicket.ID != "MA-2" {
		t.Errorf("ids = %q/%q, want PT-5/MA-2", ptTicket.ID, maTicket.ID)
	}
}

func TestTicketStore_ResetRestoresSeed(t *testing.T) {
	ts, seed := seededTicketStore(t)
	ctx := context.Background()

	if err := ts.Delete(ctx, "MA-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := ts.Reset(ctx, seed.Tickets); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	all, _ := ts.ListByProject(ctx, "")
	if len(all) != 5 {
		t.Fatalf("len after reset = %d, want 5", len(all))
	}
	if _, err := ts.Get(ctx, "MA-1"); err != nil {
		t.Errorf("MA-1 missing after reset: %v", err)
	}
}

func TestTicketStore_UpdateRefreshesUpdatedAtUnconditionally(t *testing.T) {
	ts, _ := seededTicketStore(t)
	ctx := context.Background()

	before, _ := ts.Get(ctx, "MA-1")
	time.Sleep(time.Millisecond)

	// Even an empty patch refreshes UpdatedAt.
	updated, err := ts.Update(ctx, "MA-1", domain.TicketPatch{})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !updated.UpdatedAt.After(before.UpdatedAt) {
		t.Errorf("UpdatedAt %v not after %v", updated.UpdatedAt, before.UpdatedAt)
	}
}
