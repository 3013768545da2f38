package api

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/dzvoice/voice-agent/internal/api/respond"
	"github.com/dzvoice/voice-agent/internal/session"
)

// HealthCheck is the health endpoint response.
type HealthCheck struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

// HealthHandler reports service and store reachability.
type HealthHandler struct {
	store   session.Store
	respond respond.Writer
}

func NewHealthHandler(store session.Store, log zerolog.Logger) *HealthHandler {
	return &HealthHandler{store: store, respond: respond.NewWriter(log)}
}

// Check handles GET /health.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	storeStatus := "up"
	status := "healthy"
	if err := h.store.Ping(ctx); err != nil {
		storeStatus = "down"
		status = "degraded"
	}

	h.respond.JSON(w, http.StatusOK, HealthCheck{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services: map[string]string{
			"api":   "up",
			"store": storeStatus,
		},
	})
}

// Root handles GET /.
func (h *HealthHandler) Root(w http.ResponseWriter, _ *http.Request) {
	h.respond.JSON(w, http.StatusOK, map[string]string{
		"service": "voice-agent",
		"status":  "running",
	})
}
