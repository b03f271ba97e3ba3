package handlers

import (
	"net/http"
	"time"

	domain "github.com/sahaniaman/ecom-techora/internal/domain"
	"github.com/sahaniaman/ecom-techora/internal/services"
)

var startTime = time.Now()

// HealthHandlers serves liveness and readiness probes. The readiness probe
// consults the system service when one is configured; liveness never touches
// downstream dependencies.
type HealthHandlers struct {
	system services.SystemService
}

// NewHealthHandlers constructs health handlers. A nil system service keeps
// /readyz answering ok without probing dependencies.
func NewHealthHandlers(system services.SystemService) *HealthHandlers {
	return &HealthHandlers{system: system}
}

// Healthz answers the liveness probe.
func (h *HealthHandlers) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"uptime":    time.Since(startTime).String(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Readyz answers the readiness probe with dependency check results.
func (h *HealthHandlers) Readyz(w http.ResponseWriter, r *http.Request) {
	if h.system == nil {
		writeJSONResponse(w, http.StatusOK, map[string]any{"status": "ok"})
		return
	}

	report, err := h.system.HealthReport(r.Context())
	if err != nil {
		writeJSONResponse(w, http.StatusServiceUnavailable, map[string]any{
			"status": domain.HealthStatusError,
			"error":  err.Error(),
		})
		return
	}

	status := http.StatusOK
	if report.Status == domain.HealthStatusError {
		status = http.StatusServiceUnavailable
	}

	checks := make(map[string]any, len(report.Checks))
	for name, check := range report.Checks {
		entry := map[string]any{
			"status":    check.Status,
			"latencyMs": check.Latency.Milliseconds(),
		}
		if check.Error != "" {
			entry["error"] = check.Error
		}
		checks[name] = entry
	}

	writeJSONResponse(w, status, map[string]any{
		"status":      report.Status,
		"checks":      checks,
		"generatedAt": report.GeneratedAt.UTC().Format(time.RFC3339),
	})
}
