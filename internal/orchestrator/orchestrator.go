// Package orchestrator sequences the per-turn pipeline and owns the
// conversation-context lifecycle.
package orchestrator

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dzvoice/voice-agent/internal/entity"
	"github.com/dzvoice/voice-agent/internal/intent"
	"github.com/dzvoice/voice-agent/internal/language"
	"github.com/dzvoice/voice-agent/internal/model"
	"github.com/dzvoice/voice-agent/internal/response"
	"github.com/dzvoice/voice-agent/internal/session"
	"github.com/dzvoice/voice-agent/internal/speech"
	"github.com/dzvoice/voice-agent/internal/tenant"
)

// synthesisTimeout bounds the fire-and-forget synthesis call, which runs
// detached from the request context.
const synthesisTimeout = 30 * time.Second

// Orchestrator composes the classification stages over a shared session
// store. The stages themselves are stateless; the conversation context keyed
// by conversation ID is the one shared mutable resource, serialized per ID.
type Orchestrator struct {
	detector  *language.Detector
	lexicon   intent.Classifier
	zeroShot  intent.Classifier
	extractor *entity.Extractor
	generator *response.Generator
	store     session.Store
	tenants   *tenant.Registry
	synth     speech.Synthesizer
	locks     *keyedLocks
	log       zerolog.Logger

	now   func() time.Time
	newID func() string
}

// New creates an orchestrator. zeroShot may be nil when no inference
// endpoint is configured; tenants opting into the zeroshot strategy then
// fall back to the lexicon classifier. synth may be nil to disable the
// synthesis boundary.
func New(store session.Store, tenants *tenant.Registry, zeroShot intent.Classifier, synth speech.Synthesizer, log zerolog.Logger) *Orchestrator {
	if synth == nil {
		synth = speech.NoopSynthesizer{}
	}
	return &Orchestrator{
		detector:  language.NewDetector(),
		lexicon:   intent.NewLexiconClassifier(),
		zeroShot:  zeroShot,
		extractor: entity.NewExtractor(),
		generator: response.NewGenerator(),
		store:     store,
		tenants:   tenants,
		synth:     synth,
		locks:     newKeyedLocks(),
		log:       log,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// ProcessMessage runs one turn: resolve context, detect language, classify
// intent, extract entities, generate the directive, record both history
// entries, persist with a refreshed TTL, and return the unified result.
//
// Persistence happens only after the full directive is computed; a caller
// disconnect mid-turn leaves no partial write.
func (o *Orchestrator) ProcessMessage(ctx context.Context, req model.ProcessRequest) (*model.ProcessResult, error) {
	if req.CustomerID == "" || req.TenantID == "" {
		return nil, model.ErrValidation
	}

	tenantCfg := o.tenants.Get(ctx, req.TenantID)

	// Turns against the same stored conversation must be strictly ordered;
	// other conversations proceed independently. A fresh conversation gets
	// an id nothing else can hold yet, so it needs no lock.
	if req.ConversationID != "" {
		unlock := o.locks.lock(req.ConversationID)
		defer unlock()
	}

	conv := o.resolveContext(ctx, req)
	conversationID := conv.ConversationID

	langCtx := o.detector.Detect(req.Message)
	conv.LanguageContext = langCtx

	result := o.classify(ctx, tenantCfg, req.Message, conv)
	conv.IntentHistory = append(conv.IntentHistory, result)

	extracted := o.extractor.Extract(req.Message, result)
	if conv.Entities == nil {
		conv.Entities = make(map[string][]model.Entity)
	}
	for entityType, list := range extracted {
		conv.Entities[entityType] = list
	}

	directive := o.generator.Generate(result, extracted, conv)

	conv.ConversationHistory = append(conv.ConversationHistory,
		model.MessageRecord{Role: model.RoleCustomer, Message: req.Message},
		model.MessageRecord{Role: model.RoleAgent, Message: directive.Text},
	)
	conv.UpdatedAt = o.now()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := o.store.Set(ctx, conversationID, conv); err != nil {
		// Fail open: the turn completes on the ephemeral context and the
		// fault is recorded for observability.
		o.log.Warn().Err(err).
			Str("conversation_id", conversationID).
			Msg("session store write failed; continuing without persistence")
	}

	o.synthesizeAsync(conversationID, directive.Text)

	return &model.ProcessResult{
		ConversationID:   conversationID,
		Response:         directive.Text,
		Intent:           result.Type,
		IntentConfidence: result.Confidence,
		Language:         langCtx.Primary,
		Entities:         extracted,
		Actions:          directive.Action,
		RequiresInput:    directive.RequiresInput,
		EndConversation:  directive.EndConversation,
		Metadata: map[string]any{
			"timestamp":      o.now().UTC().Format(time.RFC3339),
			"toxic_detected": result.Type == model.IntentToxic,
		},
	}, nil
}

// GetContext loads a stored conversation context.
func (o *Orchestrator) GetContext(ctx context.Context, conversationID string) (*model.ConversationContext, error) {
	conv, err := o.store.Get(ctx, conversationID)
	if errors.Is(err, session.ErrNotFound) {
		return nil, model.ErrNotFound
	}
	return conv, err
}

// EndConversation removes the stored context immediately. Store expiry is
// the normal deletion path; this exists for administrative teardown.
func (o *Orchestrator) EndConversation(ctx context.Context, conversationID string) error {
	return o.store.Delete(ctx, conversationID)
}

// resolveContext loads the context for the supplied id or synthesizes a new
// one. A supplied id that no longer resolves never resurrects its old store
// key: any new context gets a freshly generated id, so callers cannot choose
// their own keys and an expired conversation restarts from scratch. A store
// failure degrades to an ephemeral in-memory context for this turn rather
// than aborting the request.
func (o *Orchestrator) resolveContext(ctx context.Context, req model.ProcessRequest) *model.ConversationContext {
	if req.ConversationID != "" {
		conv, err := o.store.Get(ctx, req.ConversationID)
		if err == nil {
			return conv
		}
		if !errors.Is(err, session.ErrNotFound) {
			o.log.Warn().Err(err).
				Str("conversation_id", req.ConversationID).
				Msg("session store read failed; using ephemeral context")
		}
	}

	now := o.now()
	return &model.ConversationContext{
		ConversationID:  o.newID(),
		TenantID:        req.TenantID,
		CustomerID:      req.CustomerID,
		LanguageContext: model.LanguageContext{Primary: model.LanguageDarija},
		Entities:        make(map[string][]model.Entity),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// classify runs the tenant's active strategy. Classifier failure is
// recoverable: the turn proceeds with the low-confidence default intent.
func (o *Orchestrator) classify(ctx context.Context, cfg *tenant.Config, text string, conv *model.ConversationContext) model.Intent {
	classifier := o.lexicon
	if cfg.ClassifierStrategy == tenant.StrategyZeroShot && o.zeroShot != nil {
		classifier = o.zeroShot
	}

	result, err := classifier.Classify(ctx, text, conv)
	if err != nil {
		o.log.Warn().Err(err).
			Str("tenant_id", cfg.TenantID).
			Str("strategy", cfg.ClassifierStrategy).
			Msg("intent classification failed; falling back to default intent")
		return model.Intent{Type: model.IntentInquiry, Confidence: intent.FallbackConfidence}
	}
	return result
}

// synthesizeAsync hands the response text to the synthesis boundary without
// blocking or failing the turn.
func (o *Orchestrator) synthesizeAsync(conversationID, text string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), synthesisTimeout)
		defer cancel()
		if _, err := o.synth.Synthesize(ctx, text); err != nil {
			o.log.Warn().Err(err).
				Str("conversation_id", conversationID).
				Msg("speech synthesis failed")
		}
	}()
}
