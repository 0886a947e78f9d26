package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/riskfuse/riskfuse/internal/intel"
	"github.com/riskfuse/riskfuse/internal/providers"
	"github.com/riskfuse/riskfuse/internal/store"
)

const (
	defaultPerCallTimeoutSeconds = 8
	defaultOverallTimeoutSeconds = 15
	defaultOutboundRPS           = 10
)

// RuntimeConfig consolidates viper/env-driven settings for the aggregation
// pipeline shared by the analyze and serve commands.
type RuntimeConfig struct {
	PerCallTimeout time.Duration
	OverallTimeout time.Duration
	OutboundRPS    int
	CachePath      string // sqlite file; empty selects the in-memory store
	Providers      ProviderConfig
}

// ProviderConfig carries per-provider credentials, endpoints and cache TTLs.
type ProviderConfig struct {
	Breach       ProviderSettings
	Verification ProviderSettings
	Reputation   ProviderSettings
	ThreatScore  ProviderSettings
	AuthRecords  ProviderSettings
	Advisory     ProviderSettings
}

type ProviderSettings struct {
	APIKey  string
	BaseURL string
	TTL     time.Duration
}

func loadRuntimeConfig() RuntimeConfig {
	cfg := RuntimeConfig{
		PerCallTimeout: secondsOrDefault("timeouts.per_call", defaultPerCallTimeoutSeconds),
		OverallTimeout: secondsOrDefault("timeouts.overall", defaultOverallTimeoutSeconds),
		OutboundRPS:    intOrDefault("transport.rate_limit", defaultOutboundRPS),
		CachePath:      viper.GetString("cache.path"),
	}
	cfg.Providers.Breach = providerSettings("breach")
	cfg.Providers.Verification = providerSettings("verification")
	cfg.Providers.Reputation = providerSettings("reputation")
	cfg.Providers.ThreatScore = providerSettings("threatscore")
	cfg.Providers.AuthRecords = providerSettings("authrecords")
	cfg.Providers.Advisory = providerSettings("advisory")
	return cfg
}

func providerSettings(name string) ProviderSettings {
	return ProviderSettings{
		APIKey:  viper.GetString("providers." + name + ".api_key"),
		BaseURL: viper.GetString("providers." + name + ".base_url"),
		TTL:     viper.GetDuration("providers." + name + ".ttl"),
	}
}

func secondsOrDefault(key string, fallback int) time.Duration {
	if v := viper.GetInt(key); v > 0 {
		return time.Duration(v) * time.Second
	}
	return time.Duration(fallback) * time.Second
}

func intOrDefault(key string, fallback int) int {
	if v := viper.GetInt(key); v > 0 {
		return v
	}
	return fallback
}

// buildAnalyzer wires transport, cache, providers, coordinator and scorer
// into one Analyzer according to the runtime configuration.
func buildAnalyzer(cfg RuntimeConfig, log *zap.Logger) (*intel.Analyzer, error) {
	transport := intel.NewHTTPTransport(cfg.PerCallTimeout, cfg.OutboundRPS)

	var backing intel.Store
	if cfg.CachePath != "" {
		sqliteStore, err := store.OpenSQLite(cfg.CachePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open cache store: %w", err)
		}
		backing = sqliteStore
	} else {
		backing = intel.NewMemoryStore()
	}
	cache := intel.NewCache(backing)

	registry := intel.NewRegistry()
	for _, p := range []intel.Provider{
		&providers.Breach{
			Transport: transport,
			BaseURL:   cfg.Providers.Breach.BaseURL,
			APIKey:    cfg.Providers.Breach.APIKey,
			CacheTTL:  cfg.Providers.Breach.TTL,
		},
		&providers.Reputation{
			Transport: transport,
			BaseURL:   cfg.Providers.Reputation.BaseURL,
			APIKey:    cfg.Providers.Reputation.APIKey,
			CacheTTL:  cfg.Providers.Reputation.TTL,
		},
		&providers.Verification{
			Transport: transport,
			BaseURL:   cfg.Providers.Verification.BaseURL,
			APIKey:    cfg.Providers.Verification.APIKey,
			CacheTTL:  cfg.Providers.Verification.TTL,
		},
		&providers.AuthRecords{
			Transport: transport,
			BaseURL:   cfg.Providers.AuthRecords.BaseURL,
			CacheTTL:  cfg.Providers.AuthRecords.TTL,
		},
		&providers.ThreatScore{
			Transport: transport,
			BaseURL:   cfg.Providers.ThreatScore.BaseURL,
			APIKey:    cfg.Providers.ThreatScore.APIKey,
			CacheTTL:  cfg.Providers.ThreatScore.TTL,
		},
		&providers.Advisory{
			Transport: transport,
			BaseURL:   cfg.Providers.Advisory.BaseURL,
			CacheTTL:  cfg.Providers.Advisory.TTL,
		},
	} {
		registry.Register(intel.Cached(p, cache))
	}

	coordinator := &intel.Coordinator{
		PerCallTimeout: cfg.PerCallTimeout,
		OverallTimeout: cfg.OverallTimeout,
	}
	scorer := intel.NewScorer(intel.DefaultFactors())

	return intel.NewAnalyzer(registry, coordinator, scorer, log), nil
}
