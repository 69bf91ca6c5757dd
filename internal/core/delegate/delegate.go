// Package delegate runs one constrained JSON generation call and turns the reply
// into a typed candidate. Any failure yields an error the caller recovers from
// by serving its local answer
package delegate

import (
	"context"
	"errors"
	"strings"
	"time"

	"verdian/internal/core/reply"
	perr "verdian/internal/platform/errors"
	"verdian/internal/platform/logger"
	"verdian/internal/platform/metrics"
)

// DefaultTimeout bounds a single generation call
const DefaultTimeout = 30 * time.Second

// PromptMaxChars is how much of a document is quoted into a prompt
const PromptMaxChars = 8000

// Op labels every error Run returns
const Op = "delegate.run"

// GenerateRequest is one call to the generation service
type GenerateRequest struct {
	Prompt string
	Schema Schema
}

// Generator is the port to the generation service; it returns the raw reply text
type Generator interface {
	GenerateJSON(ctx context.Context, req GenerateRequest) (string, error)
}

// Sanitizer turns a decoded reply into a candidate or rejects it
type Sanitizer[T any] func(reply.Reply) (T, error)

// Options configures a Delegate
type Options struct {
	// Service labels metrics and logs
	Service   string
	Timeout   time.Duration
	Generator Generator
}

// Delegate calls the generator and sanitizes its reply into T
type Delegate[T any] struct {
	service  string
	timeout  time.Duration
	gen      Generator
	sanitize Sanitizer[T]
	now      func() time.Time
}

// New builds a Delegate. A nil Generator means no credential is configured and
// every Run reports UpstreamUnavailable without a call
func New[T any](o Options, sanitize Sanitizer[T]) *Delegate[T] {
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	return &Delegate[T]{
		service:  o.Service,
		timeout:  o.Timeout,
		gen:      o.Generator,
		sanitize: sanitize,
		now:      time.Now,
	}
}

// Enabled reports whether a generator is configured
func (d *Delegate[T]) Enabled() bool { return d != nil && d.gen != nil }

// Run performs the call under the delegate timeout and returns the sanitized
// candidate. Errors carry UpstreamUnavailable or InvalidUpstreamField codes
func (d *Delegate[T]) Run(ctx context.Context, prompt string, schema Schema) (T, error) {
	var zero T
	log := logger.C(ctx).With().Str("component", "delegate").Str("service", d.service).Logger()

	fail := func(outcome string, err error, msg string) (T, error) {
		err = perr.WithOp(err, Op)
		d.count(outcome)
		evt := log.Warn().Str("outcome", outcome).Str("code", perr.CodeOf(err).String())
		if e, ok := perr.As(err); ok {
			evt = evt.Str("op", e.Op())
		}
		evt.AnErr("cause", perr.Root(err)).Msg(msg)
		return zero, err
	}

	if !d.Enabled() {
		return fail(metrics.OutcomeDisabled, perr.Upstreamf("generation disabled: no credential"),
			"GEMINI_API_KEY not set; using heuristic fallback")
	}

	cctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	start := d.now()
	text, err := d.gen.GenerateJSON(cctx, GenerateRequest{Prompt: prompt, Schema: schema})
	metrics.LLMCallDuration.WithLabelValues(d.service).Observe(d.now().Sub(start).Seconds())
	if err != nil {
		outcome := metrics.OutcomeFailed
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(cctx.Err(), context.DeadlineExceeded) {
			outcome = metrics.OutcomeTimeout
		}
		return fail(outcome, perr.Wrapf(err, perr.ErrorCodeUpstreamUnavailable, "generation call failed"),
			"generation call failed")
	}
	log.Info().Int("chars", len(text)).Msg("generation response received")

	if strings.TrimSpace(text) == "" {
		return fail(metrics.OutcomeEmpty, perr.Upstreamf("empty reply"), "generation reply empty")
	}

	rep, err := reply.Parse(text)
	if err != nil {
		return fail(metrics.OutcomeUnparseable, err, "generation reply unparseable")
	}

	out, err := d.sanitize(rep)
	if err != nil {
		if perr.CodeOf(err) == perr.ErrorCodeUnknown {
			err = perr.Wrap(err, perr.ErrorCodeInvalidUpstreamField, "reply rejected")
		}
		return fail(metrics.OutcomeRejected, err, "generation reply rejected")
	}

	d.count(metrics.OutcomeAccepted)
	return out, nil
}

func (d *Delegate[T]) count(outcome string) {
	metrics.LLMCalls.WithLabelValues(d.service, outcome).Inc()
}
