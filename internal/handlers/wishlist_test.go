package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/sahaniaman/ecom-techora/internal/services"
)

func newWishlistRouter(wishlist services.WishlistService) chi.Router {
	router := chi.NewRouter()
	router.Route("/wishlist", NewWishlistHandlers(nil, wishlist).Routes)
	return router
}

func TestWishlistListReturnsEmptySlice(t *testing.T) {
	wishlist := &stubWishlistService{
		listFunc: func(ctx context.Context, userID string) ([]services.CatalogProduct, error) {
			return nil, nil
		},
	}
	router := newWishlistRouter(wishlist)

	req := asUser(httptest.NewRequest(http.MethodGet, "/wishlist", nil), "user-1")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"data":[]`) {
		t.Fatalf("expected empty data array, got %s", rr.Body.String())
	}
}

func TestWishlistApplyReturnsResultingWishlist(t *testing.T) {
	added, removed := "", ""
	wishlist := &stubWishlistService{
		addFunc: func(ctx context.Context, userID, productID string) ([]string, error) {
			added = productID
			return []string{"prod_0", productID}, nil
		},
		removeFunc: func(ctx context.Context, userID, productID string) ([]string, error) {
			removed = productID
			return []string{"prod_0"}, nil
		},
	}
	router := newWishlistRouter(wishlist)

	req := asUser(httptest.NewRequest(http.MethodPost, "/wishlist", strings.NewReader(`{"productId":"prod_1","action":"ADD"}`)), "user-1")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK || added != "prod_1" {
		t.Fatalf("expected add of prod_1, got %d added=%q", rr.Code, added)
	}
	if !strings.Contains(rr.Body.String(), `"wishlist":["prod_0","prod_1"]`) {
		t.Fatalf("expected resulting wishlist in response, got %s", rr.Body.String())
	}

	req = asUser(httptest.NewRequest(http.MethodPost, "/wishlist", strings.NewReader(`{"productId":"prod_2","action":"remove"}`)), "user-1")
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK || removed != "prod_2" {
		t.Fatalf("expected removal of prod_2, got %d removed=%q", rr.Code, removed)
	}
	if !strings.Contains(rr.Body.String(), `"wishlist":["prod_0"]`) {
		t.Fatalf("expected resulting wishlist in response, got %s", rr.Body.String())
	}
}

func TestWishlistApplyEmptyLedgerRendersEmptyArray(t *testing.T) {
	wishlist := &stubWishlistService{
		removeFunc: func(ctx context.Context, userID, productID string) ([]string, error) {
			return nil, nil
		},
	}
	router := newWishlistRouter(wishlist)

	req := asUser(httptest.NewRequest(http.MethodPost, "/wishlist", strings.NewReader(`{"productId":"prod_1","action":"remove"}`)), "user-1")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"wishlist":[]`) {
		t.Fatalf("expected empty wishlist array, got %s", rr.Body.String())
	}
}

func TestWishlistApplyRejectsUnknownAction(t *testing.T) {
	router := newWishlistRouter(&stubWishlistService{})

	req := asUser(httptest.NewRequest(http.MethodPost, "/wishlist", strings.NewReader(`{"productId":"prod_1","action":"toggle"}`)), "user-1")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown action, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "toggle") {
		t.Fatalf("expected offending action in message, got %s", rr.Body.String())
	}
}

func TestWishlistRequiresIdentity(t *testing.T) {
	router := newWishlistRouter(&stubWishlistService{})

	req := httptest.NewRequest(http.MethodGet, "/wishlist", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without identity, got %d", rr.Code)
	}
}
