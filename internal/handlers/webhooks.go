package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sahaniaman/ecom-techora/internal/platform/httpx"
	"github.com/sahaniaman/ecom-techora/internal/services"
)

const maxWebhookBodySize = 64 * 1024

// WebhookHandlers ingests signed identity provider lifecycle events. HMAC
// validation is applied by the route group middleware.
type WebhookHandlers struct {
	users  services.UserService
	logger *zap.Logger
}

// NewWebhookHandlers constructs the webhook handlers.
func NewWebhookHandlers(users services.UserService, logger *zap.Logger) *WebhookHandlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebhookHandlers{users: users, logger: logger}
}

// Routes wires the /webhooks endpoints onto the provided router.
func (h *WebhookHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Post("/identity", h.identityEvent)
}

func (h *WebhookHandlers) identityEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.users == nil {
		httpx.WriteError(ctx, w, httpx.NewError("webhook_unavailable", "identity sync is unavailable", http.StatusServiceUnavailable))
		return
	}

	body, err := readLimitedBody(r, maxWebhookBodySize)
	if err != nil {
		writeBodyError(ctx, w, err)
		return
	}

	var event services.IdentityEvent
	if err := json.Unmarshal(body, &event); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "invalid JSON payload", http.StatusBadRequest))
		return
	}
	if strings.TrimSpace(event.Type) == "" || strings.TrimSpace(event.UID) == "" {
		httpx.WriteError(ctx, w, httpx.NewError("validation_failed", "type and uid are required", http.StatusBadRequest))
		return
	}

	if err := h.users.SyncIdentity(ctx, event); err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	h.logger.Info("identity webhook processed",
		zap.String("eventType", event.Type),
		zap.String("uid", event.UID))
	writeData(w, http.StatusOK, map[string]string{"processed": event.Type})
}
