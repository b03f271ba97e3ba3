package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	domain "github.com/sahaniaman/ecom-techora/internal/domain"
	"github.com/sahaniaman/ecom-techora/internal/platform/httpx"
	"github.com/sahaniaman/ecom-techora/internal/platform/observability"
	"github.com/sahaniaman/ecom-techora/internal/services"
)

var (
	errBodyTooLarge = errors.New("request body too large")
	errEmptyBody    = errors.New("request body is required")
)

// exposeInternalErrors controls whether unexpected error details are returned
// to clients. Enabled only for local and dev environments from the
// composition root; production responses stay generic.
var exposeInternalErrors bool

// ExposeInternalErrors toggles detailed internal error responses. Call once
// during startup, before the server accepts traffic.
func ExposeInternalErrors(enabled bool) {
	exposeInternalErrors = enabled
}

const defaultMaxBodySize = 32 * 1024

func readLimitedBody(r *http.Request, limit int64) ([]byte, error) {
	if r == nil || r.Body == nil {
		return nil, errEmptyBody
	}
	if limit <= 0 {
		limit = defaultMaxBodySize
	}
	reader := io.LimitReader(r.Body, limit+1)
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, errEmptyBody
	}
	if int64(len(data)) > limit {
		return nil, errBodyTooLarge
	}
	return data, nil
}

func writeJSONResponse(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeData wraps a payload in the success envelope.
func writeData(w http.ResponseWriter, status int, data any) {
	writeJSONResponse(w, status, map[string]any{
		"success": true,
		"data":    data,
	})
}

type paginationPayload struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// writePage wraps a paginated listing in the success envelope.
func writePage[T any](w http.ResponseWriter, status int, page domain.Page[T]) {
	items := page.Items
	if items == nil {
		items = []T{}
	}
	writeJSONResponse(w, status, map[string]any{
		"success": true,
		"data":    items,
		"pagination": paginationPayload{
			Page:       page.Page,
			Limit:      page.Limit,
			Total:      page.Total,
			TotalPages: page.TotalPages,
		},
	})
}

func parseIntParam(r *http.Request, name string, fallback int) int {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func parseFloatParam(r *http.Request, name string) *float64 {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &value
}

// firstFloatParam returns the first query parameter among names that parses
// as a float. Lets the price filters answer to both priceMin/priceMax and
// the older minPrice/maxPrice spellings.
func firstFloatParam(r *http.Request, names ...string) *float64 {
	for _, name := range names {
		if value := parseFloatParam(r, name); value != nil {
			return value
		}
	}
	return nil
}

func parseBoolParam(r *http.Request, name string) *bool {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &value
}

// writeServiceError maps service sentinel errors onto the error envelope.
func writeServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrCatalogInvalidInput),
		errors.Is(err, services.ErrCartInvalidInput),
		errors.Is(err, services.ErrWishlistInvalidInput),
		errors.Is(err, services.ErrCategoryInvalidInput),
		errors.Is(err, services.ErrUserInvalidInput):
		httpx.WriteError(ctx, w, httpx.NewError("validation_failed", err.Error(), http.StatusBadRequest))
	case errors.Is(err, services.ErrProductNotFound),
		errors.Is(err, services.ErrCategoryNotFound),
		errors.Is(err, services.ErrCartEntryNotFound),
		errors.Is(err, services.ErrUserNotFound):
		httpx.WriteError(ctx, w, httpx.NewError("not_found", err.Error(), http.StatusNotFound))
	case errors.Is(err, services.ErrSKUConflict),
		errors.Is(err, services.ErrCategoryConflict),
		errors.Is(err, services.ErrCategoryInUse):
		httpx.WriteError(ctx, w, httpx.NewError("conflict", err.Error(), http.StatusConflict))
	case errors.Is(err, services.ErrCartProductUnavailable):
		httpx.WriteError(ctx, w, httpx.NewError("product_unavailable", err.Error(), http.StatusConflict))
	default:
		observability.FromContext(ctx).Error("unhandled service error", zap.Error(err))
		message := "an unexpected error occurred"
		if exposeInternalErrors && err != nil {
			message = err.Error()
		}
		httpx.WriteError(ctx, w, httpx.NewError("internal_error", message, http.StatusInternalServerError))
	}
}

func writeBodyError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errBodyTooLarge):
		httpx.WriteError(ctx, w, httpx.NewError("payload_too_large", "request body exceeds allowed size", http.StatusRequestEntityTooLarge))
	default:
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
	}
}
