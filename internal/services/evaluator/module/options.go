package module

import (
	"time"

	"verdian/internal/core/delegate"
	"verdian/internal/platform/config"
)

// Options holds configuration settings for the evaluator module
type Options struct {
	GenerationTimeout time.Duration
	CatalogURL        string
	CatalogTimeout    time.Duration
	CatalogRetries    int
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	return Options{
		GenerationTimeout: cfg.MayDuration("GEMINI_TIMEOUT", delegate.DefaultTimeout),
		CatalogURL:        cfg.MayURL("RESOURCE_SERVER_URL", "http://localhost:3001"),
		CatalogTimeout:    cfg.MayDuration("RESOURCE_SERVER_TIMEOUT", 10*time.Second),
		CatalogRetries:    cfg.MayInt("RESOURCE_SERVER_RETRIES", 2),
	}
}
