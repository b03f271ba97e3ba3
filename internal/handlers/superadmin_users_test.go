package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	domain "github.com/sahaniaman/ecom-techora/internal/domain"
	"github.com/sahaniaman/ecom-techora/internal/services"
)

func newSuperadminRouter(users services.UserService) chi.Router {
	router := chi.NewRouter()
	router.Route("/superadmin", NewSuperadminUserHandlers(users).Routes)
	return router
}

func TestSuperadminListUsersEnvelope(t *testing.T) {
	users := &stubUserService{
		listFunc: func(ctx context.Context, page, limit int) (domain.Page[services.User], error) {
			if page != 2 || limit != 5 {
				t.Fatalf("expected page=2 limit=5, got page=%d limit=%d", page, limit)
			}
			return domain.Page[services.User]{
				Items: []services.User{{ID: "user-6"}},
				Page:  2, Limit: 5, Total: 6, TotalPages: 2,
			}, nil
		},
	}
	router := newSuperadminRouter(users)

	req := httptest.NewRequest(http.MethodGet, "/superadmin/users?page=2&limit=5", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	payload, err := decodeEnvelope(rr.Body.Bytes())
	if err != nil {
		t.Fatalf("decode response: %v", err)
	}
	pagination, ok := payload["pagination"].(map[string]any)
	if !ok {
		t.Fatalf("expected pagination block, got %s", rr.Body.String())
	}
	if pagination["total"] != float64(6) || pagination["totalPages"] != float64(2) {
		t.Fatalf("unexpected pagination %v", pagination)
	}
}

func TestSuperadminUpdateParsesEnums(t *testing.T) {
	var got services.UpdateUserCommand
	users := &stubUserService{
		updateFunc: func(ctx context.Context, cmd services.UpdateUserCommand) (services.User, error) {
			got = cmd
			return services.User{ID: cmd.UserID}, nil
		},
	}
	router := newSuperadminRouter(users)

	req := httptest.NewRequest(http.MethodPut, "/superadmin/users/user-3", strings.NewReader(`{"role":"admin","status":" suspended "}`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if got.UserID != "user-3" {
		t.Fatalf("expected user-3, got %q", got.UserID)
	}
	if got.Role == nil || *got.Role != domain.RoleAdmin {
		t.Fatalf("expected role ADMIN, got %v", got.Role)
	}
	if got.Status == nil || *got.Status != domain.UserStatusSuspended {
		t.Fatalf("expected status SUSPENDED, got %v", got.Status)
	}
}

func TestSuperadminGetMapsNotFound(t *testing.T) {
	users := &stubUserService{
		getFunc: func(ctx context.Context, userID string) (services.User, error) {
			return services.User{}, services.ErrUserNotFound
		},
	}
	router := newSuperadminRouter(users)

	req := httptest.NewRequest(http.MethodGet, "/superadmin/users/ghost", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestSuperadminDeleteUser(t *testing.T) {
	deleted := ""
	users := &stubUserService{
		deleteFunc: func(ctx context.Context, userID string) error {
			deleted = userID
			return nil
		},
	}
	router := newSuperadminRouter(users)

	req := httptest.NewRequest(http.MethodDelete, "/superadmin/users/user-9", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK || deleted != "user-9" {
		t.Fatalf("expected deletion of user-9, got %d deleted=%q", rr.Code, deleted)
	}
}

func TestSuperadminUpdateValidationMapping(t *testing.T) {
	users := &stubUserService{
		updateFunc: func(ctx context.Context, cmd services.UpdateUserCommand) (services.User, error) {
			return services.User{}, errors.Join(services.ErrUserInvalidInput, errors.New("unknown role WIZARD"))
		},
	}
	router := newSuperadminRouter(users)

	req := httptest.NewRequest(http.MethodPut, "/superadmin/users/user-3", strings.NewReader(`{"role":"wizard"}`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}
