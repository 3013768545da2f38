// Package language classifies the language mixture of a single utterance.
package language

import (
	"strings"
	"unicode"

	"github.com/dzvoice/voice-agent/internal/model"
)

// darijaMarkers are colloquial Algerian Arabic words that do not occur in
// Modern Standard Arabic with the same register.
var darijaMarkers = []string{
	"نحب", "نحوس", "بغيت", "واش", "كاين", "شحال", "بزاف",
}

// frenchCommon are French words common in Algerian customer-service speech.
var frenchCommon = []string{
	"internet", "connexion", "modem", "facture", "carte", "compte",
	"service", "problème", "rendez-vous", "réservation", "urgent",
}

// Detector detects the language mix of raw text. It is stateless and safe
// for concurrent use.
type Detector struct{}

func NewDetector() *Detector { return &Detector{} }

// Detect classifies text into darija/french/msa/mixed. Deterministic for
// identical input; no side effects.
//
// Priority: both lexicons hit -> mixed; darija hit or Arabic script ->
// darija; french hit -> french; otherwise msa.
func (d *Detector) Detect(text string) model.LanguageContext {
	lower := strings.ToLower(text)
	tokens := tokenize(lower)

	darijaHits := countHits(lower, darijaMarkers)
	frenchHits := countHits(lower, frenchCommon)
	arabicScript := containsArabicScript(text)

	primary := model.LanguageMSA
	switch {
	case darijaHits > 0 && frenchHits > 0:
		primary = model.LanguageMixed
	case darijaHits > 0 || arabicScript:
		primary = model.LanguageDarija
	case frenchHits > 0:
		primary = model.LanguageFrench
	}

	tokenCount := len(tokens)
	if tokenCount < 1 {
		tokenCount = 1
	}
	confidence := float64(darijaHits+frenchHits) / float64(tokenCount)
	if confidence > 1.0 {
		confidence = 1.0
	}

	return model.LanguageContext{
		Primary:        primary,
		ContainsDarija: darijaHits > 0 || arabicScript,
		ContainsFrench: frenchHits > 0,
		Confidence:     confidence,
	}
}

// countHits counts how many lexicon words occur in the text. Membership is
// substring containment, matching the marker sets which include bound
// morphemes.
func countHits(lower string, lexicon []string) int {
	n := 0
	for _, word := range lexicon {
		if strings.Contains(lower, word) {
			n++
		}
	}
	return n
}

// tokenize splits on word boundaries: runs of letters or digits are tokens.
func tokenize(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// containsArabicScript reports whether any rune falls in the Arabic Unicode
// block (U+0600..U+06FF).
func containsArabicScript(s string) bool {
	for _, r := range s {
		if r >= 0x0600 && r <= 0x06FF {
			return true
		}
	}
	return false
}
