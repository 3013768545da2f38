package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/dzvoice/voice-agent/internal/api/respond"
	"github.com/dzvoice/voice-agent/internal/model"
	"github.com/dzvoice/voice-agent/internal/orchestrator"
)

// MessageHandler is the transport shim around the orchestrator's
// process-message contract.
type MessageHandler struct {
	orch    *orchestrator.Orchestrator
	log     zerolog.Logger
	respond respond.Writer
}

func NewMessageHandler(orch *orchestrator.Orchestrator, log zerolog.Logger) *MessageHandler {
	return &MessageHandler{orch: orch, log: log, respond: respond.NewWriter(log)}
}

// ProcessText handles POST /api/v1/message/text for WhatsApp, web chat and
// SMS integrations.
func (h *MessageHandler) ProcessText(w http.ResponseWriter, r *http.Request) {
	var req model.ProcessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respond.BadRequest(w, "invalid json")
		return
	}
	if req.CustomerID == "" || req.TenantID == "" {
		h.respond.BadRequest(w, "customerId and tenantId are required")
		return
	}

	result, err := h.orch.ProcessMessage(r.Context(), req)
	if err != nil {
		if errors.Is(err, model.ErrValidation) {
			h.respond.BadRequest(w, err.Error())
			return
		}
		h.log.Error().Err(err).Msg("process message failed")
		h.respond.Internal(w, "failed to process message")
		return
	}
	h.respond.JSON(w, http.StatusOK, result)
}
