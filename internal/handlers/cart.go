package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sahaniaman/ecom-techora/internal/platform/auth"
	"github.com/sahaniaman/ecom-techora/internal/platform/httpx"
	"github.com/sahaniaman/ecom-techora/internal/services"
)

const maxCartBodySize = 16 * 1024

// CartHandlers exposes authenticated cart endpoints for the current user.
type CartHandlers struct {
	authn *auth.Authenticator
	carts services.CartService
}

// NewCartHandlers constructs handlers enforcing Firebase authentication before invoking the cart service.
func NewCartHandlers(authn *auth.Authenticator, carts services.CartService) *CartHandlers {
	return &CartHandlers{authn: authn, carts: carts}
}

// Routes wires the /cart endpoints onto the provided router.
func (h *CartHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	if h.authn != nil {
		r.Use(h.authn.RequireFirebaseAuth())
	}
	r.Get("/", h.getCart)
	r.Post("/", h.addItem)
	r.Put("/", h.setQuantity)
	r.Delete("/", h.remove)
}

func (h *CartHandlers) identity(w http.ResponseWriter, r *http.Request) (string, bool) {
	ctx := r.Context()
	if h.carts == nil {
		httpx.WriteError(ctx, w, httpx.NewError("cart_service_unavailable", "cart service is unavailable", http.StatusServiceUnavailable))
		return "", false
	}
	identity, ok := auth.IdentityFromContext(ctx)
	if !ok || identity == nil || strings.TrimSpace(identity.UID) == "" {
		httpx.WriteError(ctx, w, httpx.NewError("unauthenticated", "authentication required", http.StatusUnauthorized))
		return "", false
	}
	return identity.UID, true
}

func (h *CartHandlers) getCart(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.identity(w, r)
	if !ok {
		return
	}
	cart, err := h.carts.GetCart(r.Context(), uid)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	writeData(w, http.StatusOK, cart)
}

type cartItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

func (h *CartHandlers) addItem(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.identity(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	body, err := readLimitedBody(r, maxCartBodySize)
	if err != nil {
		writeBodyError(ctx, w, err)
		return
	}
	var req cartItemRequest
	if err := json.Unmarshal(body, &req); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "invalid JSON payload", http.StatusBadRequest))
		return
	}

	cart, err := h.carts.AddItem(ctx, services.AddCartItemCommand{
		UserID:    uid,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeData(w, http.StatusOK, cart)
}

func (h *CartHandlers) setQuantity(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.identity(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	body, err := readLimitedBody(r, maxCartBodySize)
	if err != nil {
		writeBodyError(ctx, w, err)
		return
	}
	var req cartItemRequest
	if err := json.Unmarshal(body, &req); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "invalid JSON payload", http.StatusBadRequest))
		return
	}
	if req.Quantity < 1 {
		httpx.WriteError(ctx, w, httpx.NewError("validation_failed", "quantity must be at least 1", http.StatusBadRequest))
		return
	}

	cart, err := h.carts.SetQuantity(ctx, services.SetCartQuantityCommand{
		UserID:    uid,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeData(w, http.StatusOK, cart)
}

// remove deletes a single entry when productId is supplied and clears the
// whole cart otherwise.
func (h *CartHandlers) remove(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.identity(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	productID := strings.TrimSpace(r.URL.Query().Get("productId"))

	var (
		cart services.CartView
		err  error
	)
	if productID == "" {
		cart, err = h.carts.Clear(ctx, uid)
	} else {
		cart, err = h.carts.RemoveItem(ctx, uid, productID)
	}
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeData(w, http.StatusOK, cart)
}
