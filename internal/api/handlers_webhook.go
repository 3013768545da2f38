package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/dzvoice/voice-agent/internal/api/respond"
	"github.com/dzvoice/voice-agent/internal/model"
	"github.com/dzvoice/voice-agent/internal/orchestrator"
)

// webhookTenantID scopes conversations arriving over the WhatsApp channel.
const webhookTenantID = "whatsapp_tenant"

// webhookProcessTimeout bounds background processing of a webhook message.
const webhookProcessTimeout = 30 * time.Second

// WebhookHandler accepts WhatsApp Business API callbacks. Messages are
// acknowledged immediately and processed in the background; delivery of the
// agent reply is the channel adapter's concern.
type WebhookHandler struct {
	orch    *orchestrator.Orchestrator
	log     zerolog.Logger
	respond respond.Writer
}

func NewWebhookHandler(orch *orchestrator.Orchestrator, log zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{orch: orch, log: log, respond: respond.NewWriter(log)}
}

// WhatsApp webhook payload, reduced to the fields we read.
type whatsAppPayload struct {
	Entry []struct {
		Changes []struct {
			Value struct {
				Messages []whatsAppMessage `json:"messages"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

type whatsAppMessage struct {
	From string `json:"from"`
	Type string `json:"type"`
	Text struct {
		Body string `json:"body"`
	} `json:"text"`
}

// WhatsApp handles POST /webhooks/whatsapp.
func (h *WebhookHandler) WhatsApp(w http.ResponseWriter, r *http.Request) {
	var payload whatsAppPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.respond.BadRequest(w, "invalid json")
		return
	}

	msg, ok := firstMessage(payload)
	if !ok {
		h.respond.JSON(w, http.StatusOK, map[string]string{"status": "no_messages"})
		return
	}
	if msg.Type != "text" {
		h.respond.JSON(w, http.StatusOK, map[string]string{"status": "unsupported_type"})
		return
	}

	go h.processText(msg.From, msg.Text.Body)

	h.respond.JSON(w, http.StatusOK, map[string]string{"status": "processing"})
}

func (h *WebhookHandler) processText(customerPhone, text string) {
	ctx, cancel := context.WithTimeout(context.Background(), webhookProcessTimeout)
	defer cancel()

	_, err := h.orch.ProcessMessage(ctx, model.ProcessRequest{
		Message:    text,
		CustomerID: customerPhone,
		TenantID:   webhookTenantID,
	})
	if err != nil {
		h.log.Error().Err(err).Str("customer_id", customerPhone).Msg("webhook message processing failed")
	}
}

func firstMessage(p whatsAppPayload) (whatsAppMessage, bool) {
	for _, entry := range p.Entry {
		for _, change := range entry.Changes {
			if len(change.Value.Messages) > 0 {
				return change.Value.Messages[0], true
			}
		}
	}
	return whatsAppMessage{}, false
}
