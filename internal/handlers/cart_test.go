package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/sahaniaman/ecom-techora/internal/platform/auth"
	"github.com/sahaniaman/ecom-techora/internal/services"
)

func newCartRouter(carts services.CartService) chi.Router {
	router := chi.NewRouter()
	router.Route("/cart", NewCartHandlers(nil, carts).Routes)
	return router
}

func asUser(req *http.Request, uid string) *http.Request {
	return req.WithContext(auth.WithIdentity(req.Context(), &auth.Identity{UID: uid}))
}

func TestCartGetRequiresIdentity(t *testing.T) {
	router := newCartRouter(&stubCartService{})

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without identity, got %d", rr.Code)
	}
}

func TestCartGetReturnsView(t *testing.T) {
	carts := &stubCartService{
		getFunc: func(ctx context.Context, userID string) (services.CartView, error) {
			if userID != "user-7" {
				t.Fatalf("expected user-7, got %q", userID)
			}
			return services.CartView{Items: []services.CartItemView{{ProductID: "prod_1", Quantity: 2}}, TotalItems: 2}, nil
		},
	}
	router := newCartRouter(carts)

	req := asUser(httptest.NewRequest(http.MethodGet, "/cart", nil), "user-7")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	payload, err := decodeEnvelope(rr.Body.Bytes())
	if err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload["success"] != true {
		t.Fatalf("expected success envelope, got %s", rr.Body.String())
	}
}

func TestCartAddPassesCommand(t *testing.T) {
	var got services.AddCartItemCommand
	carts := &stubCartService{
		addFunc: func(ctx context.Context, cmd services.AddCartItemCommand) (services.CartView, error) {
			got = cmd
			return services.CartView{TotalItems: 1}, nil
		},
	}
	router := newCartRouter(carts)

	req := asUser(httptest.NewRequest(http.MethodPost, "/cart", strings.NewReader(`{"productId":"prod_1"}`)), "user-7")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if got.UserID != "user-7" || got.ProductID != "prod_1" || got.Quantity != 0 {
		t.Fatalf("unexpected command %+v", got)
	}
}

func TestCartSetQuantityValidated(t *testing.T) {
	called := false
	carts := &stubCartService{
		setFunc: func(ctx context.Context, cmd services.SetCartQuantityCommand) (services.CartView, error) {
			called = true
			return services.CartView{}, nil
		},
	}
	router := newCartRouter(carts)

	req := asUser(httptest.NewRequest(http.MethodPut, "/cart", strings.NewReader(`{"productId":"prod_1","quantity":0}`)), "user-7")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for quantity 0, got %d", rr.Code)
	}
	if called {
		t.Fatal("service should not be called for invalid quantity")
	}

	req = asUser(httptest.NewRequest(http.MethodPut, "/cart", strings.NewReader(`{"productId":"prod_1","quantity":4}`)), "user-7")
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK || !called {
		t.Fatalf("expected 200 with service call, got %d", rr.Code)
	}
}

func TestCartDeleteRemovesOrClears(t *testing.T) {
	removed := ""
	cleared := false
	carts := &stubCartService{
		removeFunc: func(ctx context.Context, userID, productID string) (services.CartView, error) {
			removed = productID
			return services.CartView{}, nil
		},
		clearFunc: func(ctx context.Context, userID string) (services.CartView, error) {
			cleared = true
			return services.CartView{}, nil
		},
	}
	router := newCartRouter(carts)

	req := asUser(httptest.NewRequest(http.MethodDelete, "/cart?productId=prod_3", nil), "user-7")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK || removed != "prod_3" {
		t.Fatalf("expected removal of prod_3, got %d removed=%q", rr.Code, removed)
	}

	req = asUser(httptest.NewRequest(http.MethodDelete, "/cart", nil), "user-7")
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK || !cleared {
		t.Fatalf("expected clear, got %d cleared=%v", rr.Code, cleared)
	}
}

func TestCartMapsUnavailableProduct(t *testing.T) {
	carts := &stubCartService{
		addFunc: func(ctx context.Context, cmd services.AddCartItemCommand) (services.CartView, error) {
			return services.CartView{}, services.ErrCartProductUnavailable
		},
	}
	router := newCartRouter(carts)

	req := asUser(httptest.NewRequest(http.MethodPost, "/cart", strings.NewReader(`{"productId":"prod_1"}`)), "user-7")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409 for unavailable product, got %d", rr.Code)
	}
}
