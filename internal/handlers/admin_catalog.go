package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	domain "github.com/sahaniaman/ecom-techora/internal/domain"
	"github.com/sahaniaman/ecom-techora/internal/platform/httpx"
	"github.com/sahaniaman/ecom-techora/internal/services"
)

const maxAdminBodySize = 256 * 1024

// AdminCatalogHandlers exposes the admin product and category management surface.
type AdminCatalogHandlers struct {
	catalog    services.CatalogService
	categories services.CategoryService
}

// NewAdminCatalogHandlers constructs the admin catalog handlers.
func NewAdminCatalogHandlers(catalog services.CatalogService, categories services.CategoryService) *AdminCatalogHandlers {
	return &AdminCatalogHandlers{catalog: catalog, categories: categories}
}

// Routes wires the /admin endpoints onto the provided router. Role
// enforcement is applied by the route group, not here.
func (h *AdminCatalogHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/products", h.listProducts)
	r.Post("/products", h.createProduct)
	r.Put("/products", h.updateProduct)
	r.Delete("/products", h.deleteProduct)

	r.Get("/categories", h.listCategories)
	r.Post("/categories", h.createCategory)
	r.Post("/categories/init", h.seedCategories)
	r.Delete("/categories", h.deleteCategories)
}

func (h *AdminCatalogHandlers) listProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	products, err := h.catalog.ListAllProducts(ctx)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	if products == nil {
		products = []services.CatalogProduct{}
	}
	writeData(w, http.StatusOK, products)
}

type createProductRequest struct {
	Name            string            `json:"name"`
	Description     string            `json:"description"`
	BasePrice       float64           `json:"basePrice"`
	DiscountedPrice *float64          `json:"discountedPrice"`
	Brand           string            `json:"brand"`
	Category        string            `json:"category"`
	Subcategory     string            `json:"subcategory"`
	Images          []string          `json:"images"`
	Stock           int               `json:"stock"`
	ReservedStock   int               `json:"reservedStock"`
	SKU             string            `json:"sku"`
	Specifications  map[string]string `json:"specifications"`
	Tags            []string          `json:"tags"`
	Features        []string          `json:"features"`
	IsFeatured      bool              `json:"isFeatured"`
	LowStockAlert   *int              `json:"lowStockAlert"`
}

func (h *AdminCatalogHandlers) createProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	body, err := readLimitedBody(r, maxAdminBodySize)
	if err != nil {
		writeBodyError(ctx, w, err)
		return
	}

	var req createProductRequest
	if err := json.Unmarshal(body, &req); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "invalid JSON payload", http.StatusBadRequest))
		return
	}

	product, err := h.catalog.CreateProduct(ctx, services.CreateProductCommand{
		Name:            req.Name,
		Description:     req.Description,
		BasePrice:       req.BasePrice,
		DiscountedPrice: req.DiscountedPrice,
		Brand:           req.Brand,
		Category:        req.Category,
		Subcategory:     req.Subcategory,
		Images:          req.Images,
		Stock:           req.Stock,
		ReservedStock:   req.ReservedStock,
		SKU:             req.SKU,
		Specifications:  req.Specifications,
		Tags:            req.Tags,
		Features:        req.Features,
		IsFeatured:      req.IsFeatured,
		LowStockAlert:   req.LowStockAlert,
	})
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeData(w, http.StatusCreated, product)
}

func (h *AdminCatalogHandlers) updateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	body, err := readLimitedBody(r, maxAdminBodySize)
	if err != nil {
		writeBodyError(ctx, w, err)
		return
	}

	cmd, err := parseUpdateProductRequest(body)
	if err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
		return
	}

	product, err := h.catalog.UpdateProduct(ctx, cmd)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeData(w, http.StatusOK, product)
}

// parseUpdateProductRequest decodes a partial update, distinguishing absent
// fields from zero values.
func parseUpdateProductRequest(data []byte) (services.UpdateProductCommand, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return services.UpdateProductCommand{}, fmt.Errorf("invalid JSON payload: %w", err)
	}

	var cmd services.UpdateProductCommand
	if idRaw, ok := raw["productId"]; ok {
		if err := json.Unmarshal(idRaw, &cmd.ProductID); err != nil {
			return cmd, fmt.Errorf("productId must be a string")
		}
	}
	if strings.TrimSpace(cmd.ProductID) == "" {
		return cmd, fmt.Errorf("productId is required")
	}

	decode := func(key string, target any) error {
		value, ok := raw[key]
		if !ok {
			return nil
		}
		if err := json.Unmarshal(value, target); err != nil {
			return fmt.Errorf("invalid value for %s", key)
		}
		return nil
	}

	var status string
	fields := []struct {
		key    string
		target any
	}{
		{"name", &cmd.Name},
		{"description", &cmd.Description},
		{"basePrice", &cmd.BasePrice},
		{"discountedPrice", &cmd.DiscountedPrice},
		{"brand", &cmd.Brand},
		{"category", &cmd.Category},
		{"subcategory", &cmd.Subcategory},
		{"images", &cmd.Images},
		{"stock", &cmd.Stock},
		{"reservedStock", &cmd.ReservedStock},
		{"salesCount", &cmd.SalesCount},
		{"sku", &cmd.SKU},
		{"specifications", &cmd.Specifications},
		{"tags", &cmd.Tags},
		{"features", &cmd.Features},
		{"isFeatured", &cmd.IsFeatured},
		{"lowStockAlert", &cmd.LowStockAlert},
		{"status", &status},
	}
	for _, field := range fields {
		if err := decode(field.key, field.target); err != nil {
			return cmd, err
		}
	}
	if status != "" {
		parsed := domain.ProductStatus(strings.ToUpper(status))
		cmd.Status = &parsed
	}
	return cmd, nil
}

func (h *AdminCatalogHandlers) deleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	productID := strings.TrimSpace(r.URL.Query().Get("id"))
	if productID == "" {
		httpx.WriteError(ctx, w, httpx.NewError("validation_failed", "query parameter id is required", http.StatusBadRequest))
		return
	}
	if err := h.catalog.DeleteProduct(ctx, productID); err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]string{"deleted": productID})
}

func (h *AdminCatalogHandlers) listCategories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	categories, err := h.categories.ListAll(ctx)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	if categories == nil {
		categories = []services.Category{}
	}
	writeData(w, http.StatusOK, categories)
}

type createCategoryRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

func (h *AdminCatalogHandlers) createCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	body, err := readLimitedBody(r, maxAdminBodySize)
	if err != nil {
		writeBodyError(ctx, w, err)
		return
	}

	var req createCategoryRequest
	if err := json.Unmarshal(body, &req); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "invalid JSON payload", http.StatusBadRequest))
		return
	}

	category, err := h.categories.Ensure(ctx, services.EnsureCategoryCommand{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Image:       req.Image,
	})
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeData(w, http.StatusCreated, category)
}

func (h *AdminCatalogHandlers) seedCategories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	seeded, err := h.categories.SeedDefaults(ctx)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeData(w, http.StatusOK, seeded)
}

func (h *AdminCatalogHandlers) deleteCategories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	count, err := h.categories.DeleteAll(ctx)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]int{"deleted": count})
}
