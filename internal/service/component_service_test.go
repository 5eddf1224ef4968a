package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"designvault/api/internal/apperr"
	"designvault/api/internal/cache"
	"designvault/api/internal/mocks"
	"designvault/api/internal/models"
	"designvault/api/internal/service"
)

func newComponentService(components *mocks.MockComponentRepository) *service.ComponentService {
	// nil redis client: every cache call degrades to a miss
	stats := cache.NewStatsCache(nil, time.Minute)
	return service.NewComponentService(components, stats, zerolog.Nop())
}

func TestComponentCreateDefaults(t *testing.T) {
	svc := newComponentService(mocks.NewMockComponentRepository())

	created, err := svc.Create(context.Background(), designer, service.CreateComponentInput{
		Name: "PrimaryButton",
		Type: "button",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.Status != models.ComponentStatusDraft {
		t.Errorf("status = %q, want draft", created.Status)
	}
	if created.Version != "1.0.0" {
		t.Errorf("version = %q, want 1.0.0", created.Version)
	}
	if created.Examples == nil || created.Tags == nil || created.Dependencies == nil {
		t.Error("collection fields must default to empty, not nil")
	}
	if created.CreatedBy.ID != designer.ID {
		t.Errorf("createdBy = %+v", created.CreatedBy)
	}
}

func TestComponentCreateValidationAndConflict(t *testing.T) {
	svc := newComponentService(mocks.NewMockComponentRepository())

	_, err := svc.Create(context.Background(), designer, service.CreateComponentInput{Name: "NoType"})
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("missing type kind = %v, want validation", apperr.KindOf(err))
	}

	_, err = svc.Create(context.Background(), designer, service.CreateComponentInput{Name: "X", Type: "hologram"})
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("unknown type kind = %v, want validation", apperr.KindOf(err))
	}

	if _, err := svc.Create(context.Background(), designer, service.CreateComponentInput{
		Name: "PrimaryButton", Type: "button",
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	_, err = svc.Create(context.Background(), designer, service.CreateComponentInput{
		Name: "PrimaryButton", Type: "button",
	})
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Errorf("duplicate name kind = %v, want conflict", apperr.KindOf(err))
	}
}

func TestComponentUpdateCreatorOnly(t *testing.T) {
	repo := mocks.NewMockComponentRepository()
	svc := newComponentService(repo)

	created, err := svc.Create(context.Background(), designer, service.CreateComponentInput{
		Name: "Card", Type: "card", Description: "original",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// an admin who is not the creator is still denied
	desc := "hijacked"
	_, err = svc.Update(context.Background(), adminUser, created.ID, service.UpdateComponentInput{
		Description: &desc,
	})
	if apperr.KindOf(err) != apperr.KindPermission {
		t.Errorf("kind = %v, want permission (no admin override for components)", apperr.KindOf(err))
	}
	if repo.Components[created.ID].Description != "original" {
		t.Error("denied update mutated the stored component")
	}

	updated, err := svc.Update(context.Background(), designer, created.ID, service.UpdateComponentInput{
		Description: &desc,
	})
	if err != nil {
		t.Fatalf("creator update failed: %v", err)
	}
	if updated.Description != "hijacked" {
		t.Errorf("description = %q", updated.Description)
	}
}

func TestComponentUpdateReplacesNestedObjectsWholly(t *testing.T) {
	repo := mocks.NewMockComponentRepository()
	svc := newComponentService(repo)

	created, err := svc.Create(context.Background(), designer, service.CreateComponentInput{
		Name: "Input", Type: "input",
		Styles: models.ComponentStyles{CSS: ".input{}", SCSS: ".input{&:focus{}}"},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	replacement := models.ComponentStyles{CSS: ".input-v2{}"}
	updated, err := svc.Update(context.Background(), designer, created.ID, service.UpdateComponentInput{
		Styles: &replacement,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Styles.SCSS != "" {
		t.Error("nested styles must be replaced wholly, not deep-merged")
	}
	if updated.Styles.CSS != ".input-v2{}" {
		t.Errorf("css = %q", updated.Styles.CSS)
	}
}

func TestComponentDeleteCreatorOnly(t *testing.T) {
	repo := mocks.NewMockComponentRepository()
	svc := newComponentService(repo)

	created, err := svc.Create(context.Background(), designer, service.CreateComponentInput{
		Name: "Modal", Type: "modal",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := svc.Delete(context.Background(), adminUser, created.ID); apperr.KindOf(err) != apperr.KindPermission {
		t.Errorf("kind = %v, want permission", apperr.KindOf(err))
	}
	if err := svc.Delete(context.Background(), designer, created.ID); err != nil {
		t.Fatalf("creator delete failed: %v", err)
	}
	if err := svc.Delete(context.Background(), designer, created.ID); apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("second delete kind = %v, want not found", apperr.KindOf(err))
	}
}

func TestComponentListByTypeOnlyActive(t *testing.T) {
	repo := mocks.NewMockComponentRepository()
	svc := newComponentService(repo)

	if _, err := svc.Create(context.Background(), designer, service.CreateComponentInput{
		Name: "ActiveButton", Type: "button", Status: "active",
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), designer, service.CreateComponentInput{
		Name: "DraftButton", Type: "button", // defaults to draft
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), designer, service.CreateComponentInput{
		Name: "ActiveCard", Type: "card", Status: "active",
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	buttons, err := svc.ListByType(context.Background(), "button")
	if err != nil {
		t.Fatalf("ListByType failed: %v", err)
	}
	if len(buttons) != 1 || buttons[0].Name != "ActiveButton" {
		t.Errorf("buttons = %+v, want only the active button", buttons)
	}
}

func TestComponentListFiltersCombineWithSearch(t *testing.T) {
	repo := mocks.NewMockComponentRepository()
	svc := newComponentService(repo)

	if _, err := svc.Create(context.Background(), designer, service.CreateComponentInput{
		Name: "NavBar", Type: "navigation", Status: "active", Tags: []string{"header"},
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), designer, service.CreateComponentInput{
		Name: "NavDrawer", Type: "navigation", Tags: []string{"sidebar"},
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	page, err := svc.List(context.Background(), service.ListComponentsInput{
		Type:   "navigation",
		Status: "active",
		Search: "navbar",
	})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if page.Pagination.Total != 1 {
		t.Errorf("total = %d, want 1 (search ANDed with filters)", page.Pagination.Total)
	}

	tagged, err := svc.List(context.Background(), service.ListComponentsInput{
		Tags: []string{"sidebar", "nonexistent"},
	})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if tagged.Pagination.Total != 1 {
		t.Errorf("tag any-of total = %d, want 1", tagged.Pagination.Total)
	}
}

func TestComponentStats(t *testing.T) {
	repo := mocks.NewMockComponentRepository()
	svc := newComponentService(repo)

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Total != 0 || len(stats.TypeCounts) != 0 || len(stats.StatusCounts) != 0 {
		t.Errorf("empty stats = %+v", stats)
	}

	for _, in := range []service.CreateComponentInput{
		{Name: "B1", Type: "button", Status: "active"},
		{Name: "B2", Type: "button"},
		{Name: "C1", Type: "card", Status: "deprecated"},
	} {
		if _, err := svc.Create(context.Background(), designer, in); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	stats, err = svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Total != 3 {
		t.Errorf("total = %d, want 3", stats.Total)
	}
	if stats.TypeCounts["button"] != 2 || stats.TypeCounts["card"] != 1 {
		t.Errorf("typeCounts = %+v", stats.TypeCounts)
	}
	if stats.StatusCounts["active"] != 1 || stats.StatusCounts["draft"] != 1 || stats.StatusCounts["deprecated"] != 1 {
		t.Errorf("statusCounts = %+v", stats.StatusCounts)
	}
}

func TestComponentGetNotFound(t *testing.T) {
	svc := newComponentService(mocks.NewMockComponentRepository())

	// component lookups accept any id shape, unlike tokens
	_, err := svc.Get(context.Background(), "anything-goes")
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("kind = %v, want not found", apperr.KindOf(err))
	}
}
