// Package response maps a classified intent to a response directive.
package response

import (
	"github.com/dzvoice/voice-agent/internal/model"
)

// Handler produces a directive for one intent. Handlers are pure functions
// of their inputs; context mutation belongs to the orchestrator.
type Handler func(intent model.Intent, entities map[string][]model.Entity, conv *model.ConversationContext) model.Directive

// Generator dispatches intents through an explicit handler table built once
// at construction. Toxic content bypasses the table entirely; intent types
// without a registered handler fall back to the inquiry handler.
type Generator struct {
	handlers map[model.IntentType]Handler
}

func NewGenerator() *Generator {
	g := &Generator{handlers: make(map[model.IntentType]Handler)}
	g.handlers[model.IntentInquiry] = handleInquiry
	g.handlers[model.IntentReservation] = handleReservation
	g.handlers[model.IntentComplaint] = handleComplaint
	return g
}

// Generate returns the directive for one turn.
func (g *Generator) Generate(intent model.Intent, entities map[string][]model.Entity, conv *model.ConversationContext) model.Directive {
	if intent.Type == model.IntentToxic {
		return handleToxic()
	}

	handler, ok := g.handlers[intent.Type]
	if !ok {
		handler = handleInquiry
	}
	return handler(intent, entities, conv)
}

func handleToxic() model.Directive {
	return model.Directive{
		Text:            "Please be respectful.",
		Action:          "flag_for_moderation",
		EndConversation: true,
	}
}

func handleInquiry(_ model.Intent, _ map[string][]model.Entity, _ *model.ConversationContext) model.Directive {
	return model.Directive{
		Text:          "How can I help you?",
		Action:        "provide_information",
		RequiresInput: true,
	}
}

func handleReservation(_ model.Intent, _ map[string][]model.Entity, _ *model.ConversationContext) model.Directive {
	return model.Directive{
		Text:          "When would you like to book?",
		Action:        "request_reservation_details",
		RequiresInput: true,
	}
}

func handleComplaint(_ model.Intent, _ map[string][]model.Entity, _ *model.ConversationContext) model.Directive {
	return model.Directive{
		Text:          "I'm sorry to hear that. Please provide more details.",
		Action:        "open_complaint_ticket",
		RequiresInput: true,
	}
}
