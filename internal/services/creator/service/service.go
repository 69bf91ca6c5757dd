// Package service implements the creator assist flow
package service

import (
	"context"
	"time"

	"verdian/internal/core/delegate"
	"verdian/internal/core/guard"
	"verdian/internal/core/heuristic"
	"verdian/internal/core/reply"
	perr "verdian/internal/platform/errors"
	"verdian/internal/platform/logger"
	"verdian/internal/platform/metrics"
	pstrings "verdian/internal/platform/strings"
	dom "verdian/internal/services/creator/domain"
)

// Name labels logs and metrics
const Name = "creator"

// Config for the creator service
type Config struct {
	Generator delegate.Generator
	Timeout   time.Duration
}

// Service implements domain.AssistantPort
type Service struct {
	timeout time.Duration
	gen     delegate.Generator
}

// New constructs the service. A nil Generator runs heuristics only
func New(cfg Config) *Service {
	return &Service{timeout: cfg.Timeout, gen: cfg.Generator}
}

// GenerationEnabled reports whether a generator is configured
func (s *Service) GenerationEnabled() bool { return s.gen != nil }

// Assist suggests a title, summary, keywords and price for a draft. Oversized
// input is the only error; generation problems fall back to the heuristics
func (s *Service) Assist(ctx context.Context, in dom.AssistInput) (dom.AssistResult, error) {
	if err := guard.CheckMarkdown(in.Markdown); err != nil {
		metrics.PayloadRejected.WithLabelValues(Name).Inc()
		logger.C(ctx).Warn().Int("bytes", len(in.Markdown)).Msg("markdown over limit")
		return dom.AssistResult{}, err
	}

	excerpt := heuristic.Excerpt(in.Markdown, heuristic.DefaultExcerptChars)
	baseline := dom.AssistResult{
		Title:                   in.Title,
		Summary:                 excerpt,
		Keywords:                heuristic.Keywords(in.Markdown, heuristic.DefaultMaxKeywords),
		SuggestedPriceUSDCCents: heuristic.Price(in.Markdown),
	}

	// the sanitizer closes over the request so blank fields can fall back
	llm := delegate.New(delegate.Options{Service: Name, Timeout: s.timeout, Generator: s.gen},
		func(r reply.Reply) (dom.AssistResult, error) { return sanitize(r, in.Title, excerpt) })

	cand, err := llm.Run(ctx, assistPrompt(in.Title, in.Markdown), assistSchema)
	if err != nil {
		metrics.Results.WithLabelValues(Name, metrics.SourceHeuristic).Inc()
		logger.C(ctx).Info().Str("code", perr.CodeOf(err).String()).Msg("serving heuristic assist")
		return baseline, nil
	}
	metrics.Results.WithLabelValues(Name, metrics.SourceLLM).Inc()
	return cand, nil
}

// sanitize accepts a reply only when price, keywords, title and summary are all
// usable; blank title and summary take the request title and local excerpt
func sanitize(r reply.Reply, title, excerpt string) (dom.AssistResult, error) {
	price, err := r.Price(fieldPrice, fieldPriceFallback)
	if err != nil {
		return dom.AssistResult{}, err
	}
	kws := r.Keywords(fieldKeywords, heuristic.DefaultMaxKeywords)
	if len(kws) == 0 {
		return dom.AssistResult{}, perr.InvalidFieldf(fieldKeywords, "keywords empty after sanitation")
	}
	out := dom.AssistResult{
		Title:                   pstrings.FirstNonBlank(r.String(fieldTitle), title),
		Summary:                 pstrings.FirstNonBlank(r.String(fieldSummary), excerpt),
		Keywords:                kws,
		SuggestedPriceUSDCCents: price,
	}
	if out.Title == "" {
		return dom.AssistResult{}, perr.InvalidFieldf(fieldTitle, "title empty")
	}
	if out.Summary == "" {
		return dom.AssistResult{}, perr.InvalidFieldf(fieldSummary, "summary empty")
	}
	return out, nil
}
