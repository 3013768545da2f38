// Package entity locates structured facts (dates, times, phone numbers,
// emails) within free text.
package entity

import (
	"regexp"

	"github.com/dzvoice/voice-agent/internal/model"
)

// Fixed match confidence for regex-located entities.
const matchConfidence = 0.8

// Entity type tags.
const (
	TypePhone = "phone"
	TypeDate  = "date"
	TypeTime  = "time"
	TypeEmail = "email"
)

type pattern struct {
	entityType string
	re         *regexp.Regexp
}

// patterns scan independently; a span may be claimed by more than one type
// when patterns overlap (e.g. a time-shaped substring inside a longer
// match). This is documented behavior, not deduplicated.
var patterns = []pattern{
	{TypePhone, regexp.MustCompile(`0[567]\d{8}`)},
	{TypeDate, regexp.MustCompile(`\d{1,2}[-/]\d{1,2}[-/]\d{2,4}`)},
	{TypeTime, regexp.MustCompile(`\d{1,2}[:.]\d{2}`)},
	{TypeEmail, regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)},
}

// Extractor runs the fixed regex scans. Stateless and safe for concurrent use.
type Extractor struct{}

func NewExtractor() *Extractor { return &Extractor{} }

// Extract returns entities grouped by type. Types without a match are absent
// from the map, never an empty list. The intent argument is part of the
// contract for intent-conditioned extraction; the current patterns ignore it.
func (e *Extractor) Extract(text string, _ model.Intent) map[string][]model.Entity {
	entities := make(map[string][]model.Entity)
	for _, p := range patterns {
		for _, m := range p.re.FindAllString(text, -1) {
			entities[p.entityType] = append(entities[p.entityType], model.Entity{
				Type:       p.entityType,
				Value:      m,
				RawText:    m,
				Confidence: matchConfidence,
			})
		}
	}
	return entities
}
