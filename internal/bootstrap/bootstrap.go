// Package bootstrap holds the process wiring shared by the service binaries:
// env loading, logger setup, the optional generation client and the HTTP server
package bootstrap

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"verdian/internal/adapters/llm/gemini"
	"verdian/internal/core/delegate"
	"verdian/internal/modkit"
	"verdian/internal/platform/logger"
	phttp "verdian/internal/platform/net/http"
	"verdian/internal/platform/net/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
)

// Init loads .env when present and configures the process logger for service
func Init(service string) modkit.Deps {
	// a missing .env is the normal case outside local dev
	envErr := godotenv.Load()

	opt := logger.FromEnv()
	if opt.Service == "" {
		opt.Service = service
	}
	logger.Init(opt)
	if envErr != nil && !os.IsNotExist(envErr) {
		logger.Get().Warn().Err(envErr).Msg(".env could not be loaded")
	}
	return modkit.DepsFromEnv()
}

// Generator returns the Gemini client when GEMINI_API_KEY is set, nil otherwise.
// Absence of the key is a normal state and only logs a warning
func Generator(ctx context.Context, deps modkit.Deps) delegate.Generator {
	cfg := deps.Cfg.Prefix("GEMINI_")
	key, ok := cfg.Secret("API_KEY")
	if !ok {
		deps.Log.Warn().Msg("GEMINI_API_KEY not set; answers come from heuristics only")
		return nil
	}
	timeout := cfg.MayDuration("TIMEOUT", delegate.DefaultTimeout)
	c, err := gemini.New(ctx, gemini.Config{
		APIKey:      key,
		Model:       cfg.MayString("MODEL", gemini.DefaultModel),
		BaseURL:     cfg.MayString("BASE_URL", ""),
		Temperature: 0.2,
		HTTPClient:  &http.Client{Timeout: timeout + 5*time.Second},
	})
	if err != nil {
		deps.Log.Error().Err(err).Msg("gemini client init failed; answers come from heuristics only")
		return nil
	}
	deps.Log.Info().Str("model", c.Model()).Dur("timeout", timeout).Msg("gemini enabled")
	return c
}

// ServerOptions reads the listener and middleware settings shared by every binary
func ServerOptions(deps modkit.Deps, defPort string) (phttp.ServerOptions, middleware.Options) {
	cfg := deps.Cfg
	return phttp.ServerOptions{
			Addr:          cfg.MustPort("PORT", defPort),
			ShutdownGrace: cfg.MayDuration("HTTP_SHUTDOWN_GRACE", 10*time.Second),
		}, middleware.Options{
			CORS: middleware.CORSOptions{AllowedOrigins: cfg.MayCSV("HTTP_CORS_ORIGINS", []string{"*"})},
			Slow: cfg.MayDuration("HTTP_SLOW", 2*time.Second),
		}
}

// NewServer builds the server with the default middleware stack and every module mounted
func NewServer(deps modkit.Deps, so phttp.ServerOptions, mo middleware.Options, mods ...modkit.Module) *phttp.Server {
	srv := phttp.NewServer(so, func(m *chi.Mux) {
		m.Use(middleware.Defaults(mo)...)
	})
	modkit.MountAll(deps, srv.Router(), mods...)
	return srv
}

// Serve runs srv until SIGINT or SIGTERM, then shuts down gracefully
func Serve(srv *phttp.Server) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Run(ctx)
}
