package model

import "time"

// Language labels the dominant language mix of a single utterance.
type Language string

const (
	LanguageDarija Language = "darija"
	LanguageFrench Language = "french"
	LanguageMSA    Language = "msa"
	LanguageMixed  Language = "mixed"
)

// IntentType labels the classified purpose of a customer utterance.
type IntentType string

const (
	IntentReservation      IntentType = "reservation"
	IntentInquiry          IntentType = "inquiry"
	IntentComplaint        IntentType = "complaint"
	IntentTechnicalSupport IntentType = "technical_support"
	IntentBilling          IntentType = "billing"
	IntentCancelRequest    IntentType = "cancel_request"
	IntentStatusCheck      IntentType = "status_check"
	IntentToxic            IntentType = "toxic"
)

// IntentTypes lists every intent label in declaration order. The lexicon
// classifier breaks score ties by this order, and the zero-shot classifier
// submits it as the candidate label set.
var IntentTypes = []IntentType{
	IntentReservation,
	IntentInquiry,
	IntentComplaint,
	IntentTechnicalSupport,
	IntentBilling,
	IntentCancelRequest,
	IntentStatusCheck,
	IntentToxic,
}

// LanguageContext describes the language mixture of one message. It is
// derived fresh per turn, never accumulated across turns.
type LanguageContext struct {
	Primary        Language `json:"primary"`
	ContainsDarija bool     `json:"containsDarija"`
	ContainsFrench bool     `json:"containsFrench"`
	Confidence     float64  `json:"confidence"`
}

// Intent is the classification result for one utterance. Immutable once
// produced; appended to the conversation's intent history.
type Intent struct {
	Type       IntentType        `json:"type"`
	Confidence float64           `json:"confidence"`
	Parameters map[string]string `json:"parameters,omitempty"`
}

// Entity is a structured fact located within free text.
type Entity struct {
	Type       string  `json:"type"`
	Value      string  `json:"value"`
	RawText    string  `json:"rawText"`
	Confidence float64 `json:"confidence"`
}

// MessageRecord is one role-tagged entry in the conversation history.
type MessageRecord struct {
	Role    string `json:"role"`
	Message string `json:"message"`
}

const (
	RoleCustomer = "customer"
	RoleAgent    = "agent"
)

// Sentinel transcriptions emitted by the upstream speech-to-text boundary.
// Both are valid input text and flow through the pipeline like any message.
const (
	TranscriptNoSpeech = "[No speech detected]"
	TranscriptEmpty    = "[Empty transcription]"
)

// ConversationContext is the aggregate root for one conversation. The
// conversation ID is assigned exactly once and is the sole session-store
// key; every per-turn mutation is read-modify-write against it.
type ConversationContext struct {
	ConversationID      string              `json:"conversationId"`
	TenantID            string              `json:"tenantId"`
	CustomerID          string              `json:"customerId"`
	LanguageContext     LanguageContext     `json:"languageContext"`
	IntentHistory       []Intent            `json:"intentHistory"`
	Entities            map[string][]Entity `json:"entities"`
	PendingReservation  map[string]string   `json:"pendingReservation,omitempty"`
	ConversationHistory []MessageRecord     `json:"conversationHistory"`
	Metadata            map[string]string   `json:"metadata,omitempty"`
	CreatedAt           time.Time           `json:"createdAt"`
	UpdatedAt           time.Time           `json:"updatedAt"`
}

// Directive is the response instruction produced for one turn. EndConversation
// is advisory to the caller; the pipeline does not enforce a terminal state.
type Directive struct {
	Text            string `json:"text"`
	Action          string `json:"action"`
	RequiresInput   bool   `json:"requiresInput,omitempty"`
	EndConversation bool   `json:"endConversation,omitempty"`
}

// ProcessRequest carries one inbound customer message.
type ProcessRequest struct {
	Message        string `json:"message"`
	CustomerID     string `json:"customerId"`
	TenantID       string `json:"tenantId"`
	ConversationID string `json:"conversationId,omitempty"`
}

// ProcessResult is the unified per-turn result returned to the transport layer.
type ProcessResult struct {
	ConversationID   string              `json:"conversationId"`
	Response         string              `json:"response"`
	Intent           IntentType          `json:"intent"`
	IntentConfidence float64             `json:"intentConfidence"`
	Language         Language            `json:"language"`
	Entities         map[string][]Entity `json:"entities"`
	Actions          string              `json:"actions,omitempty"`
	RequiresInput    bool                `json:"requiresInput"`
	EndConversation  bool                `json:"endConversation,omitempty"`
	Metadata         map[string]any      `json:"metadata"`
}
