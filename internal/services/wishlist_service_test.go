package services

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "github.com/sahaniaman/ecom-techora/internal/domain"
)

func newTestWishlistService(t *testing.T, users *memoryUserRepo, products *memoryProductRepo, categories *memoryCategoryRepo) WishlistService {
	t.Helper()
	catalog := newTestCatalogService(t, products, categories, nil, time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC))
	svc, err := NewWishlistService(WishlistServiceDeps{
		Users:    users,
		Products: products,
		Catalog:  catalog,
	})
	if err != nil {
		t.Fatalf("new wishlist service: %v", err)
	}
	return svc
}

func TestWishlistServiceAddIsIdempotent(t *testing.T) {
	users := newMemoryUserRepo()
	products := newMemoryProductRepo()
	categories := newMemoryCategoryRepo()
	seedCartUser(t, users, "user-1")
	seedActiveProduct(t, products, "p1", 5)
	svc := newTestWishlistService(t, users, products, categories)

	var ids []string
	for i := 0; i < 2; i++ {
		var err error
		ids, err = svc.Add(context.Background(), "user-1", "p1")
		if err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
	}
	if len(ids) != 1 || ids[0] != "p1" {
		t.Fatalf("expected idempotent add to return [p1], got %v", ids)
	}
	user, err := users.FindByID(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("find user: %v", err)
	}
	if len(user.Wishlist) != 1 {
		t.Fatalf("expected idempotent add, got %v", user.Wishlist)
	}

	if _, err := svc.Add(context.Background(), "user-1", "missing"); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected product not found, got %v", err)
	}
}

func TestWishlistServiceListSkipsMissingProducts(t *testing.T) {
	users := newMemoryUserRepo()
	products := newMemoryProductRepo()
	categories := newMemoryCategoryRepo()
	seedActiveProduct(t, products, "p1", 5)
	if err := users.Upsert(context.Background(), domain.User{
		ID:       "user-1",
		Wishlist: []string{"p1", "gone"},
	}); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	svc := newTestWishlistService(t, users, products, categories)

	listed, err := svc.List(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("list wishlist: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != "p1" {
		t.Fatalf("expected only existing product, got %+v", listed)
	}
}

func TestWishlistServiceRemove(t *testing.T) {
	users := newMemoryUserRepo()
	products := newMemoryProductRepo()
	categories := newMemoryCategoryRepo()
	seedActiveProduct(t, products, "p1", 5)
	if err := users.Upsert(context.Background(), domain.User{
		ID:       "user-1",
		Wishlist: []string{"p1"},
	}); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	svc := newTestWishlistService(t, users, products, categories)

	ids, err := svc.Remove(context.Background(), "user-1", "p1")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected empty resulting wishlist, got %v", ids)
	}
	user, err := users.FindByID(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("find user: %v", err)
	}
	if len(user.Wishlist) != 0 {
		t.Fatalf("expected empty wishlist, got %v", user.Wishlist)
	}

	if _, err := svc.Remove(context.Background(), "", "p1"); !errors.Is(err, ErrWishlistInvalidInput) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
