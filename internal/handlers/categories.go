package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sahaniaman/ecom-techora/internal/platform/httpx"
	"github.com/sahaniaman/ecom-techora/internal/services"
)

// CategoryHandlers exposes the public category listing.
type CategoryHandlers struct {
	categories services.CategoryService
}

// NewCategoryHandlers constructs handlers for the public category surface.
func NewCategoryHandlers(categories services.CategoryService) *CategoryHandlers {
	return &CategoryHandlers{categories: categories}
}

// Routes wires the /categories endpoints onto the provided router.
func (h *CategoryHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.list)
}

func (h *CategoryHandlers) list(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.categories == nil {
		httpx.WriteError(ctx, w, httpx.NewError("categories_unavailable", "category service is unavailable", http.StatusServiceUnavailable))
		return
	}

	categories, err := h.categories.ListActive(ctx)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	if categories == nil {
		categories = []services.Category{}
	}
	writeData(w, http.StatusOK, categories)
}
