package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sahaniaman/ecom-techora/internal/platform/auth"
	"github.com/sahaniaman/ecom-techora/internal/platform/httpx"
	"github.com/sahaniaman/ecom-techora/internal/services"
)

const maxWishlistBodySize = 4 * 1024

// WishlistHandlers exposes authenticated wishlist endpoints for the current user.
type WishlistHandlers struct {
	authn    *auth.Authenticator
	wishlist services.WishlistService
}

// NewWishlistHandlers constructs handlers enforcing Firebase authentication before invoking the wishlist service.
func NewWishlistHandlers(authn *auth.Authenticator, wishlist services.WishlistService) *WishlistHandlers {
	return &WishlistHandlers{authn: authn, wishlist: wishlist}
}

// Routes wires the /wishlist endpoints onto the provided router.
func (h *WishlistHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	if h.authn != nil {
		r.Use(h.authn.RequireFirebaseAuth())
	}
	r.Get("/", h.list)
	r.Post("/", h.apply)
}

func (h *WishlistHandlers) identity(w http.ResponseWriter, r *http.Request) (string, bool) {
	ctx := r.Context()
	if h.wishlist == nil {
		httpx.WriteError(ctx, w, httpx.NewError("wishlist_service_unavailable", "wishlist service is unavailable", http.StatusServiceUnavailable))
		return "", false
	}
	identity, ok := auth.IdentityFromContext(ctx)
	if !ok || identity == nil || strings.TrimSpace(identity.UID) == "" {
		httpx.WriteError(ctx, w, httpx.NewError("unauthenticated", "authentication required", http.StatusUnauthorized))
		return "", false
	}
	return identity.UID, true
}

func (h *WishlistHandlers) list(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.identity(w, r)
	if !ok {
		return
	}
	products, err := h.wishlist.List(r.Context(), uid)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	if products == nil {
		products = []services.CatalogProduct{}
	}
	writeData(w, http.StatusOK, products)
}

type wishlistRequest struct {
	ProductID string `json:"productId"`
	Action    string `json:"action"`
}

func (h *WishlistHandlers) apply(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.identity(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	body, err := readLimitedBody(r, maxWishlistBodySize)
	if err != nil {
		writeBodyError(ctx, w, err)
		return
	}
	var req wishlistRequest
	if err := json.Unmarshal(body, &req); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "invalid JSON payload", http.StatusBadRequest))
		return
	}

	var wishlist []string
	switch strings.ToLower(strings.TrimSpace(req.Action)) {
	case "add":
		wishlist, err = h.wishlist.Add(ctx, uid, req.ProductID)
	case "remove":
		wishlist, err = h.wishlist.Remove(ctx, uid, req.ProductID)
	default:
		httpx.WriteError(ctx, w, httpx.NewError("validation_failed", fmt.Sprintf("unknown action %q, expected add or remove", req.Action), http.StatusBadRequest))
		return
	}
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	if wishlist == nil {
		wishlist = []string{}
	}
	writeData(w, http.StatusOK, map[string]any{"wishlist": wishlist})
}
