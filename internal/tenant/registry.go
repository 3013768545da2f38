// Package tenant holds per-tenant configuration with lazy loading.
package tenant

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Strategy names for intent classification. Exactly one strategy is active
// per tenant.
const (
	StrategyLexicon  = "lexicon"
	StrategyZeroShot = "zeroshot"
)

// Config is the business configuration scoped to one tenant.
type Config struct {
	TenantID           string `json:"tenantId"`
	BusinessName       string `json:"businessName"`
	BusinessType       string `json:"businessType"`
	LanguagePreference string `json:"languagePreference"`
	ClassifierStrategy string `json:"classifierStrategy"`
}

// Loader fetches a tenant config from its source of truth. Returning an
// error makes the registry fall back to defaults; an unknown tenant is
// never surfaced as an error to callers.
type Loader func(ctx context.Context, tenantID string) (*Config, error)

// Registry is a read-mostly cache of tenant configs, populated at most once
// per tenant ID with a single in-flight load per missing tenant.
type Registry struct {
	mu      sync.RWMutex
	configs map[string]*Config
	group   singleflight.Group
	loader  Loader
}

// NewRegistry creates a registry. A nil loader means every tenant gets the
// default config.
func NewRegistry(loader Loader) *Registry {
	return &Registry{
		configs: make(map[string]*Config),
		loader:  loader,
	}
}

// Get returns the config for the tenant, loading and caching it on first
// use. Concurrent requests for the same missing tenant share one load.
func (r *Registry) Get(ctx context.Context, tenantID string) *Config {
	r.mu.RLock()
	cfg, ok := r.configs[tenantID]
	r.mu.RUnlock()
	if ok {
		return cfg
	}

	v, _, _ := r.group.Do(tenantID, func() (any, error) {
		// Re-check under the flight: another call may have populated it.
		r.mu.RLock()
		cached, ok := r.configs[tenantID]
		r.mu.RUnlock()
		if ok {
			return cached, nil
		}

		loaded := r.load(ctx, tenantID)
		r.mu.Lock()
		r.configs[tenantID] = loaded
		r.mu.Unlock()
		return loaded, nil
	})
	return v.(*Config)
}

func (r *Registry) load(ctx context.Context, tenantID string) *Config {
	if r.loader != nil {
		if cfg, err := r.loader(ctx, tenantID); err == nil && cfg != nil {
			if cfg.ClassifierStrategy == "" {
				cfg.ClassifierStrategy = StrategyLexicon
			}
			return cfg
		}
	}
	return DefaultConfig(tenantID)
}

// DefaultConfig is the configuration lazily initialized for unknown tenants.
func DefaultConfig(tenantID string) *Config {
	return &Config{
		TenantID:           tenantID,
		BusinessName:       "Demo Business",
		BusinessType:       "service",
		LanguagePreference: "darija",
		ClassifierStrategy: StrategyLexicon,
	}
}
