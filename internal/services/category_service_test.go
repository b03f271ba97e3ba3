package services

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "github.com/sahaniaman/ecom-techora/internal/domain"
)

func newTestCategoryService(t *testing.T, categories *memoryCategoryRepo, products *memoryProductRepo, now time.Time) CategoryService {
	t.Helper()
	counter := 0
	svc, err := NewCategoryService(CategoryServiceDeps{
		Categories: categories,
		Products:   products,
		Clock:      func() time.Time { return now },
		IDGenerator: func() string {
			counter++
			return "cat_" + string(rune('a'+counter-1))
		},
	})
	if err != nil {
		t.Fatalf("new category service: %v", err)
	}
	return svc
}

func TestCategoryServiceEnsureDerivesSlug(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	categories := newMemoryCategoryRepo()
	svc := newTestCategoryService(t, categories, newMemoryProductRepo(), now)

	category, err := svc.Ensure(context.Background(), EnsureCategoryCommand{Name: "Home & Kitchen"})
	if err != nil {
		t.Fatalf("ensure category: %v", err)
	}
	if category.Slug != "home-kitchen" {
		t.Fatalf("expected derived slug home-kitchen, got %s", category.Slug)
	}
	if category.Status != domain.CategoryStatusActive {
		t.Fatalf("expected new category ACTIVE, got %s", category.Status)
	}

	_, err = svc.Ensure(context.Background(), EnsureCategoryCommand{Name: "home & kitchen"})
	if !errors.Is(err, ErrCategoryConflict) {
		t.Fatalf("expected conflict for duplicate slug, got %v", err)
	}

	if _, err := svc.Ensure(context.Background(), EnsureCategoryCommand{Name: "   "}); !errors.Is(err, ErrCategoryInvalidInput) {
		t.Fatalf("expected validation error for blank name, got %v", err)
	}
}

func TestCategoryServiceEnsureStoresImage(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	categories := newMemoryCategoryRepo()
	svc := newTestCategoryService(t, categories, newMemoryProductRepo(), now)

	category, err := svc.Ensure(context.Background(), EnsureCategoryCommand{
		Name:  "Audio",
		Image: " https://cdn.example.com/audio.jpg ",
	})
	if err != nil {
		t.Fatalf("ensure category: %v", err)
	}
	if category.Image != "https://cdn.example.com/audio.jpg" {
		t.Fatalf("expected trimmed image url, got %q", category.Image)
	}

	stored, err := categories.FindByID(context.Background(), category.ID)
	if err != nil {
		t.Fatalf("find category: %v", err)
	}
	if stored.Image != category.Image {
		t.Fatalf("expected image persisted, got %q", stored.Image)
	}
}

func TestCategoryServiceSeedDefaultsOnlyWhenEmpty(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	categories := newMemoryCategoryRepo()
	svc := newTestCategoryService(t, categories, newMemoryProductRepo(), now)

	seeded, err := svc.SeedDefaults(context.Background())
	if err != nil {
		t.Fatalf("seed defaults: %v", err)
	}
	if len(seeded) != len(defaultCategories) {
		t.Fatalf("expected %d seeded categories, got %d", len(defaultCategories), len(seeded))
	}

	again, err := svc.SeedDefaults(context.Background())
	if err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if len(again) != len(defaultCategories) {
		t.Fatalf("expected seeding to be a no-op on populated collection, got %d", len(again))
	}
	all, err := svc.ListAll(context.Background())
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != len(defaultCategories) {
		t.Fatalf("expected no duplicates after reseeding, got %d", len(all))
	}
}

func TestCategoryServiceDeleteAllGuardedByProducts(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	categories := newMemoryCategoryRepo()
	products := newMemoryProductRepo()
	svc := newTestCategoryService(t, categories, products, now)

	category, err := svc.Ensure(context.Background(), EnsureCategoryCommand{Name: "Books"})
	if err != nil {
		t.Fatalf("ensure category: %v", err)
	}
	if err := products.Insert(context.Background(), domain.Product{
		ID:         "p1",
		CategoryID: category.ID,
		SKU:        "BK-1",
	}); err != nil {
		t.Fatalf("seed product: %v", err)
	}

	if _, err := svc.DeleteAll(context.Background()); !errors.Is(err, ErrCategoryInUse) {
		t.Fatalf("expected delete refusal while products reference categories, got %v", err)
	}

	if err := products.Delete(context.Background(), "p1"); err != nil {
		t.Fatalf("remove product: %v", err)
	}
	count, err := svc.DeleteAll(context.Background())
	if err != nil {
		t.Fatalf("delete all: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 deleted category, got %d", count)
	}

	active := domain.CategoryStatusActive
	remaining, err := categories.List(context.Background(), &active)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("expected empty collection, got %d", len(remaining))
	}
}

func TestCategoryServiceListActiveFiltersInactive(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	categories := newMemoryCategoryRepo()
	svc := newTestCategoryService(t, categories, newMemoryProductRepo(), now)

	if err := categories.Insert(context.Background(), domain.Category{ID: "c1", Name: "Visible", Slug: "visible", Status: domain.CategoryStatusActive}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := categories.Insert(context.Background(), domain.Category{ID: "c2", Name: "Hidden", Slug: "hidden", Status: domain.CategoryStatusInactive}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	active, err := svc.ListActive(context.Background())
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 1 || active[0].ID != "c1" {
		t.Fatalf("expected only the active category, got %+v", active)
	}

	all, err := svc.ListAll(context.Background())
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected both categories, got %d", len(all))
	}
}
