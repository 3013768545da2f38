package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/dzvoice/voice-agent/internal/api/respond"
	"github.com/dzvoice/voice-agent/internal/model"
	"github.com/dzvoice/voice-agent/internal/orchestrator"
)

// ConversationHandler exposes stored conversation state.
type ConversationHandler struct {
	orch    *orchestrator.Orchestrator
	log     zerolog.Logger
	respond respond.Writer
}

func NewConversationHandler(orch *orchestrator.Orchestrator, log zerolog.Logger) *ConversationHandler {
	return &ConversationHandler{orch: orch, log: log, respond: respond.NewWriter(log)}
}

// conversationHistoryResponse is the wire shape for conversation reads.
type conversationHistoryResponse struct {
	ConversationID string                `json:"conversationId"`
	CustomerID     string                `json:"customerId"`
	TenantID       string                `json:"tenantId"`
	Messages       []model.MessageRecord `json:"messages"`
	CreatedAt      time.Time             `json:"createdAt"`
	UpdatedAt      time.Time             `json:"updatedAt"`
}

// Get handles GET /api/v1/conversation/{tenantId}/{conversationId}.
func (h *ConversationHandler) Get(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	conversationID := vars["conversationId"]
	if conversationID == "" {
		h.respond.BadRequest(w, "conversationId required")
		return
	}

	conv, err := h.orch.GetContext(r.Context(), conversationID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			h.respond.NotFound(w, "conversation not found")
			return
		}
		h.log.Error().Err(err).Str("conversation_id", conversationID).Msg("conversation lookup failed")
		h.respond.Internal(w, "failed to load conversation")
		return
	}
	if conv.TenantID != vars["tenantId"] {
		h.respond.NotFound(w, "conversation not found")
		return
	}

	h.respond.JSON(w, http.StatusOK, conversationHistoryResponse{
		ConversationID: conv.ConversationID,
		CustomerID:     conv.CustomerID,
		TenantID:       conv.TenantID,
		Messages:       conv.ConversationHistory,
		CreatedAt:      conv.CreatedAt,
		UpdatedAt:      conv.UpdatedAt,
	})
}

// End handles DELETE /api/v1/conversation/{tenantId}/{conversationId}.
func (h *ConversationHandler) End(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	conversationID := vars["conversationId"]
	if conversationID == "" {
		h.respond.BadRequest(w, "conversationId required")
		return
	}

	if err := h.orch.EndConversation(r.Context(), conversationID); err != nil {
		h.log.Error().Err(err).Str("conversation_id", conversationID).Msg("end conversation failed")
		h.respond.Internal(w, "failed to end conversation")
		return
	}
	h.respond.JSON(w, http.StatusOK, map[string]string{
		"status":         "conversation_ended",
		"conversationId": conversationID,
	})
}
