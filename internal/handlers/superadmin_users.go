package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	domain "github.com/sahaniaman/ecom-techora/internal/domain"
	"github.com/sahaniaman/ecom-techora/internal/platform/httpx"
	"github.com/sahaniaman/ecom-techora/internal/services"
)

const maxUserBodySize = 8 * 1024

// SuperadminUserHandlers exposes the user management surface. Role
// enforcement is applied by the route group, not here.
type SuperadminUserHandlers struct {
	users services.UserService
}

// NewSuperadminUserHandlers constructs the superadmin user handlers.
func NewSuperadminUserHandlers(users services.UserService) *SuperadminUserHandlers {
	return &SuperadminUserHandlers{users: users}
}

// Routes wires the /superadmin endpoints onto the provided router.
func (h *SuperadminUserHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/users", h.list)
	r.Get("/users/{userID}", h.get)
	r.Put("/users/{userID}", h.update)
	r.Delete("/users/{userID}", h.delete)
}

func (h *SuperadminUserHandlers) list(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	page, err := h.users.ListUsers(ctx, parseIntParam(r, "page", 1), parseIntParam(r, "limit", 0))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writePage(w, http.StatusOK, page)
}

func (h *SuperadminUserHandlers) get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, err := h.users.GetUser(ctx, chi.URLParam(r, "userID"))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeData(w, http.StatusOK, user)
}

type updateUserRequest struct {
	Role   *string `json:"role"`
	Status *string `json:"status"`
}

func (h *SuperadminUserHandlers) update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	body, err := readLimitedBody(r, maxUserBodySize)
	if err != nil {
		writeBodyError(ctx, w, err)
		return
	}

	var req updateUserRequest
	if err := json.Unmarshal(body, &req); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "invalid JSON payload", http.StatusBadRequest))
		return
	}

	cmd := services.UpdateUserCommand{UserID: chi.URLParam(r, "userID")}
	if req.Role != nil {
		role := domain.UserRole(strings.ToUpper(strings.TrimSpace(*req.Role)))
		cmd.Role = &role
	}
	if req.Status != nil {
		status := domain.UserStatus(strings.ToUpper(strings.TrimSpace(*req.Status)))
		cmd.Status = &status
	}

	user, err := h.users.UpdateUser(ctx, cmd)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeData(w, http.StatusOK, user)
}

func (h *SuperadminUserHandlers) delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := chi.URLParam(r, "userID")
	if err := h.users.DeleteUser(ctx, userID); err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]string{"deleted": userID})
}
