// Package intent classifies the purpose of a customer utterance.
package intent

import (
	"context"
	"strings"

	"github.com/dzvoice/voice-agent/internal/model"
)

// Classifier is the intent-classification capability. Implementations are
// interchangeable; callers must not depend on which strategy is active.
// The conversation context is part of the contract for context-aware
// variants and may be nil.
type Classifier interface {
	Classify(ctx context.Context, text string, conv *model.ConversationContext) (model.Intent, error)
}

// Fixed confidences used across strategies.
const (
	ToxicConfidence    = 0.95
	FallbackConfidence = 0.3
)

// toxicKeywords trigger the abusive-content short-circuit. Any match wins
// over every other category.
var toxicKeywords = []string{
	"stupid", "idiot", "dog", "shut up",
	"imbécile", "dégage",
	"كلب", "حمار", "احمق", "اخرس",
}

// category pairs an intent label with its lexicon. Declaration order is the
// tie-break order: the first maximal category wins.
type category struct {
	intent  model.IntentType
	lexicon []string
}

var categories = []category{
	{model.IntentReservation, []string{
		"reservation", "réservation", "book", "réserver", "rendez-vous", "نحجز", "حجز", "موعد",
	}},
	{model.IntentInquiry, []string{
		"how much", "combien", "شحال", "renseignement", "معلومات", "horaires", "opening hours",
	}},
	{model.IntentComplaint, []string{
		"complaint", "réclamation", "plainte", "disappointed", "déçu", "not working", "مشكل",
	}},
	{model.IntentTechnicalSupport, []string{
		"internet", "connexion", "modem", "wifi", "technique", "ما يخدمش",
	}},
	{model.IntentBilling, []string{
		"facture", "bill", "invoice", "paiement", "payment", "فاتورة",
	}},
	{model.IntentCancelRequest, []string{
		"cancel", "annuler", "annulation", "نلغي", "الغاء",
	}},
	{model.IntentStatusCheck, []string{
		"status", "statut", "suivi", "تتبع", "وين وصل",
	}},
}

// LexiconClassifier scores fixed per-category keyword lexicons. It is
// deterministic, never errors, and is safe for concurrent use.
type LexiconClassifier struct{}

func NewLexiconClassifier() *LexiconClassifier { return &LexiconClassifier{} }

// Classify returns the best-scoring category for the text.
//
// The toxic-keyword check runs first and is an unconditional override at a
// fixed 0.95 confidence. With zero hits everywhere the result is the
// inquiry fallback at 0.3 -- unrecognized input is not an error.
func (c *LexiconClassifier) Classify(_ context.Context, text string, _ *model.ConversationContext) (model.Intent, error) {
	lower := strings.ToLower(text)

	for _, kw := range toxicKeywords {
		if strings.Contains(lower, kw) {
			return model.Intent{Type: model.IntentToxic, Confidence: ToxicConfidence}, nil
		}
	}

	best := -1
	bestHits := 0
	for i, cat := range categories {
		hits := 0
		for _, kw := range cat.lexicon {
			if strings.Contains(lower, kw) {
				hits++
			}
		}
		if hits > bestHits {
			best = i
			bestHits = hits
		}
	}

	if best < 0 {
		return model.Intent{Type: model.IntentInquiry, Confidence: FallbackConfidence}, nil
	}

	confidence := float64(bestHits) / float64(len(categories[best].lexicon))
	if confidence > 1.0 {
		confidence = 1.0
	}
	return model.Intent{Type: categories[best].intent, Confidence: confidence}, nil
}
