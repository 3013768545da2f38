// Package agentservice boots the agent HTTP service.
package agentservice

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/dzvoice/voice-agent/internal/api"
	"github.com/dzvoice/voice-agent/internal/config"
	"github.com/dzvoice/voice-agent/internal/intent"
	"github.com/dzvoice/voice-agent/internal/logger"
	"github.com/dzvoice/voice-agent/internal/orchestrator"
	"github.com/dzvoice/voice-agent/internal/session"
	"github.com/dzvoice/voice-agent/internal/speech"
	"github.com/dzvoice/voice-agent/internal/tenant"
)

// Run starts the agent service HTTP server and blocks until shutdown or error.
func Run() error {
	log := logger.New("agent-service")

	cfg, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}

	log.Info().
		Int("http_port", cfg.HTTPPort).
		Str("classifier_strategy", cfg.ClassifierStrategy).
		Dur("session_ttl", cfg.SessionTTL).
		Msg("Agent service starting")

	// Cancellable root context bound to SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := newSessionStore(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("Session store unavailable")
		return err
	}
	defer func() { _ = store.Close() }()

	orch := buildOrchestrator(cfg, store, log)
	router := api.NewRouter(orch, store, log)

	server := &http.Server{
		Addr:         cfg.GetHTTPAddr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Err(err).Msg("Server forced to shutdown")
			return err
		}
		log.Info().Msg("Server exited")
		return nil
	case err := <-errCh:
		log.Error().Err(err).Msg("HTTP server failed")
		return err
	}
}

// newSessionStore selects the redis driver, or the in-memory driver when no
// redis address is configured.
func newSessionStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (session.Store, error) {
	if cfg.RedisAddr == "" {
		log.Warn().Msg("No redis address configured; sessions are process-local")
		return session.NewMemoryStore(cfg.SessionTTL), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return session.NewRedisStore(client, cfg.SessionTTL), nil
}

func buildOrchestrator(cfg *config.Config, store session.Store, log zerolog.Logger) *orchestrator.Orchestrator {
	var zeroShot intent.Classifier
	if cfg.ZeroShotURL != "" {
		zeroShot = intent.NewZeroShotClassifier(cfg.ZeroShotURL, cfg.ZeroShotModel, cfg.ZeroShotTimeout)
	}

	var synth speech.Synthesizer
	if cfg.SynthesisURL != "" {
		synth = speech.NewHTTPSynthesizer(cfg.SynthesisURL, cfg.SynthesisTimeout)
	}

	registry := tenant.NewRegistry(defaultTenantLoader(cfg))
	return orchestrator.New(store, registry, zeroShot, synth, log)
}

// defaultTenantLoader applies the service-level classifier strategy to every
// tenant. A database-backed loader slots in here once tenant onboarding
// exists.
func defaultTenantLoader(cfg *config.Config) tenant.Loader {
	return func(_ context.Context, tenantID string) (*tenant.Config, error) {
		tc := tenant.DefaultConfig(tenantID)
		tc.ClassifierStrategy = cfg.ClassifierStrategy
		return tc, nil
	}
}
