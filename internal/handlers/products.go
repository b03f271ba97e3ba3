package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	domain "github.com/sahaniaman/ecom-techora/internal/domain"
	"github.com/sahaniaman/ecom-techora/internal/platform/auth"
	"github.com/sahaniaman/ecom-techora/internal/platform/httpx"
	"github.com/sahaniaman/ecom-techora/internal/services"
)

const maxReviewBodySize = 16 * 1024

// ProductHandlers exposes the public catalog endpoints.
type ProductHandlers struct {
	authn         *auth.Authenticator
	catalog       services.CatalogService
	reviewLimiter rateLimiter
}

// ProductHandlersDeps bundles constructor inputs for the product handlers.
type ProductHandlersDeps struct {
	Authenticator *auth.Authenticator
	Catalog       services.CatalogService
	ReviewLimit   int
	ReviewWindow  time.Duration
	Clock         func() time.Time
}

// NewProductHandlers constructs handlers for the public product surface.
func NewProductHandlers(deps ProductHandlersDeps) *ProductHandlers {
	return &ProductHandlers{
		authn:         deps.Authenticator,
		catalog:       deps.Catalog,
		reviewLimiter: newSimpleRateLimiter(deps.ReviewLimit, deps.ReviewWindow, deps.Clock),
	}
}

// Routes wires the /products endpoints onto the provided router.
func (h *ProductHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.list)
	r.Get("/{productID}", h.get)

	review := r
	if h.authn != nil {
		review = r.With(h.authn.RequireFirebaseAuth())
	}
	review.Post("/{productID}/reviews", h.addReview)
}

func (h *ProductHandlers) list(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.catalog == nil {
		httpx.WriteError(ctx, w, httpx.NewError("catalog_unavailable", "catalog service is unavailable", http.StatusServiceUnavailable))
		return
	}

	query := domain.ProductQuery{
		Search:     strings.TrimSpace(r.URL.Query().Get("search")),
		CategoryID: strings.TrimSpace(r.URL.Query().Get("category")),
		IsFeatured: parseBoolParam(r, "isFeatured"),
		PriceMin:   firstFloatParam(r, "priceMin", "minPrice"),
		PriceMax:   firstFloatParam(r, "priceMax", "maxPrice"),
		Sort:       domain.ProductSort(strings.TrimSpace(r.URL.Query().Get("sort"))),
		Page:       parseIntParam(r, "page", 1),
		Limit:      parseIntParam(r, "limit", 0),
	}

	if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
		status := domain.ProductStatus(strings.ToUpper(raw))
		switch status {
		case domain.ProductStatusActive, domain.ProductStatusInactive, domain.ProductStatusOutOfStock:
			query.Status = &status
		default:
			httpx.WriteError(ctx, w, httpx.NewError("validation_failed", fmt.Sprintf("unknown status %q", raw), http.StatusBadRequest))
			return
		}
	}

	page, err := h.catalog.ListProducts(ctx, query)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writePage(w, http.StatusOK, page)
}

func (h *ProductHandlers) get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.catalog == nil {
		httpx.WriteError(ctx, w, httpx.NewError("catalog_unavailable", "catalog service is unavailable", http.StatusServiceUnavailable))
		return
	}

	product, err := h.catalog.GetProduct(ctx, chi.URLParam(r, "productID"))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeData(w, http.StatusOK, product)
}

type addReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (h *ProductHandlers) addReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.catalog == nil {
		httpx.WriteError(ctx, w, httpx.NewError("catalog_unavailable", "catalog service is unavailable", http.StatusServiceUnavailable))
		return
	}

	identity, ok := auth.IdentityFromContext(ctx)
	if !ok || identity == nil || strings.TrimSpace(identity.UID) == "" {
		httpx.WriteError(ctx, w, httpx.NewError("unauthenticated", "authentication required", http.StatusUnauthorized))
		return
	}

	if h.reviewLimiter != nil && !h.reviewLimiter.Allow(identity.UID) {
		httpx.WriteError(ctx, w, httpx.NewError("rate_limited", "too many reviews, slow down", http.StatusTooManyRequests))
		return
	}

	body, err := readLimitedBody(r, maxReviewBodySize)
	if err != nil {
		writeBodyError(ctx, w, err)
		return
	}

	var req addReviewRequest
	if err := json.Unmarshal(body, &req); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "invalid JSON payload", http.StatusBadRequest))
		return
	}

	product, err := h.catalog.AddReview(ctx, services.AddReviewCommand{
		ProductID: chi.URLParam(r, "productID"),
		UserID:    identity.UID,
		UserName:  identity.Email,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeData(w, http.StatusCreated, product)
}
