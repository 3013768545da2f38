package api

import (
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/dzvoice/voice-agent/internal/api/recovery"
	"github.com/dzvoice/voice-agent/internal/orchestrator"
	"github.com/dzvoice/voice-agent/internal/session"
)

// NewRouter wires HTTP routes to handlers.
func NewRouter(orch *orchestrator.Orchestrator, store session.Store, log zerolog.Logger) *mux.Router {
	root := mux.NewRouter()
	root.Use(recovery.Middleware(log))

	msg := NewMessageHandler(orch, log)
	root.HandleFunc("/api/v1/message/text", msg.ProcessText).Methods("POST")

	conv := NewConversationHandler(orch, log)
	root.HandleFunc("/api/v1/conversation/{tenantId}/{conversationId}", conv.Get).Methods("GET")
	root.HandleFunc("/api/v1/conversation/{tenantId}/{conversationId}", conv.End).Methods("DELETE")

	webhook := NewWebhookHandler(orch, log)
	root.HandleFunc("/webhooks/whatsapp", webhook.WhatsApp).Methods("POST")

	health := NewHealthHandler(store, log)
	root.HandleFunc("/health", health.Check).Methods("GET")
	root.HandleFunc("/", health.Root).Methods("GET")

	return root
}
