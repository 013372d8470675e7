package store

import (
	"context"
	"reflect"
	"testing"

	apperrors "github.com/pytracker/tracker-service/pkg/util/errorutil"
)

func seededRegistry(t *testing.T) ProjectRegistry {
	t.Helper()
	reg := NewProjectRegistry()
	if err := reg.Reset(context.Background(), DefaultSeed().Projects); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	return reg
}

func TestProjectRegistry_ListOrderAndIdempotence(t *testing.T) {
	reg := seededRegistry(t)
	ctx := context.Background()

	first, err := reg.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(first) != 2 || first[0].Key != "PT" || first[1].Key != "MA" {
		t.Fatalf("seed projects = %v, want [PT MA]", first)
	}

	second, _ := reg.List(ctx)
	if !reflect.DeepEqual(first, second) {
		t.Error("two reads without writes differ")
	}
}

func TestProjectRegistry_Create(t *testing.T) {
	reg := seededRegistry(t)
	ctx := context.Background()

	project, err := reg.Create(ctx, ProjectCreateInput{
		Name:        "Data Pipeline",
		Key:         "DP",
		Description: "ETL jobs",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if project.ID == "" {
		t.Error("created project has empty id")
	}
	if project.CreatedAt.IsZero() {
		t.Error("created project has zero CreatedAt")
	}

	found, err := reg.FindByID(ctx, project.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found.Key != "DP" {
		t.Errorf("found key = %q, want DP", found.Key)
	}
}

func TestProjectRegistry_CreateValidatesKey(t *testing.T) {
	reg := seededRegistry(t)
	ctx := context.Background()

	for _, key := range []string{"", "X", "TOOLONG", "pt", "P1"} {
		if _, err := reg.Create(ctx, ProjectCreateInput{Name: "Bad", Key: key}); !apperrors.IsCode(err, "VALIDATION_FAILED") {
			t.Errorf("Create with key %q err = %v, want VALIDATION_FAILED", key, err)
		}
	}

	// Duplicate keys would mint colliding ticket IDs.
	if _, err := reg.Create(ctx, ProjectCreateInput{Name: "Clone", Key: "PT"}); !apperrors.IsCode(err, "CONFLICT") {
		t.Errorf("duplicate key err = %v, want CONFLICT", err)
	}

	projects, _ := reg.List(ctx)
	if len(projects) != 2 {
		t.Errorf("registry mutated on failed create: len = %d, want 2", len(projects))
	}
}

func TestProjectRegistry_FindByIDUnknown(t *testing.T) {
	reg := seededRegistry(t)
	if _, err := reg.FindByID(context.Background(), "999"); !apperrors.IsNotFound(err) {
		t.Errorf("unknown id err = %v, want NotFound", err)
	}
}
