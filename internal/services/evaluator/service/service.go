// Package service implements evaluation and topic matching
package service

import (
	"context"
	"strings"
	"time"

	"verdian/internal/core/delegate"
	"verdian/internal/core/guard"
	"verdian/internal/core/heuristic"
	"verdian/internal/core/reply"
	perr "verdian/internal/platform/errors"
	"verdian/internal/platform/logger"
	"verdian/internal/platform/metrics"
	dom "verdian/internal/services/evaluator/domain"
)

// Name labels logs and metrics
const Name = "evaluator"

// Config for the evaluator service
type Config struct {
	Generator delegate.Generator
	Timeout   time.Duration
	Catalog   dom.CatalogPort
}

// Service implements domain.EvaluatorPort
type Service struct {
	llm     *delegate.Delegate[dom.EvaluateResult]
	catalog dom.CatalogPort
}

// New constructs the service. A nil Generator runs heuristics only
func New(cfg Config) *Service {
	return &Service{
		llm: delegate.New(delegate.Options{
			Service:   Name,
			Timeout:   cfg.Timeout,
			Generator: cfg.Generator,
		}, sanitize),
		catalog: cfg.Catalog,
	}
}

// GenerationEnabled reports whether a generator is configured
func (s *Service) GenerationEnabled() bool { return s.llm.Enabled() }

// Evaluate prices and tags a document. Oversized input is the only error;
// generation problems fall back to the heuristic baseline
func (s *Service) Evaluate(ctx context.Context, in dom.EvaluateInput) (dom.EvaluateResult, error) {
	if err := guard.CheckMarkdown(in.Markdown); err != nil {
		metrics.PayloadRejected.WithLabelValues(Name).Inc()
		logger.C(ctx).Warn().Int("bytes", len(in.Markdown)).Msg("markdown over limit")
		return dom.EvaluateResult{}, err
	}

	baseline := dom.EvaluateResult{
		PriceUSDCCents: heuristic.Price(in.Markdown),
		Keywords:       heuristic.Keywords(in.Markdown, heuristic.DefaultMaxKeywords),
	}

	cand, err := s.llm.Run(ctx, evaluatePrompt(in.Title, in.Markdown), evaluateSchema)
	if err != nil {
		metrics.Results.WithLabelValues(Name, metrics.SourceHeuristic).Inc()
		logger.C(ctx).Info().Str("code", perr.CodeOf(err).String()).Msg("serving heuristic evaluation")
		return baseline, nil
	}
	metrics.Results.WithLabelValues(Name, metrics.SourceLLM).Inc()
	cand.Gemini = true
	return cand, nil
}

// sanitize accepts a reply only with a usable price and at least one keyword
func sanitize(r reply.Reply) (dom.EvaluateResult, error) {
	price, err := r.Price(fieldPrice, fieldPriceFallback)
	if err != nil {
		return dom.EvaluateResult{}, err
	}
	kws := r.Keywords(fieldKeywords, heuristic.DefaultMaxKeywords)
	if len(kws) == 0 {
		return dom.EvaluateResult{}, perr.InvalidFieldf(fieldKeywords, "keywords empty after sanitation")
	}
	return dom.EvaluateResult{PriceUSDCCents: price, Keywords: kws}, nil
}

// MatchTopic returns the catalog entry sharing the most keywords with the topic.
// The first entry wins ties, so a catalog with no overlap at all still answers
// with its first entry
func (s *Service) MatchTopic(ctx context.Context, in dom.MatchTopicInput) (dom.MatchTopicResult, error) {
	if s.catalog == nil {
		return dom.MatchTopicResult{}, perr.BadGatewayf("catalog not configured")
	}
	entries, err := s.catalog.Entries(ctx)
	if err != nil {
		logger.C(ctx).Error().Err(err).Msg("catalog fetch failed")
		return dom.MatchTopicResult{}, err
	}

	hash, ok := bestMatch(heuristic.Keywords(in.Topic, heuristic.DefaultMaxKeywords), entries)
	if !ok {
		return dom.MatchTopicResult{}, perr.NotFoundf("no matching content found")
	}
	return dom.MatchTopicResult{BestMatchHash: hash}, nil
}

func bestMatch(topic []string, entries []dom.CatalogEntry) (string, bool) {
	want := make(map[string]struct{}, len(topic))
	for _, k := range topic {
		want[k] = struct{}{}
	}

	bestScore, bestHash, found := -1, "", false
	for _, e := range entries {
		seen := map[string]struct{}{}
		for _, k := range e.Keywords {
			k = strings.ToLower(k)
			if _, ok := want[k]; ok {
				seen[k] = struct{}{}
			}
		}
		if len(seen) > bestScore {
			bestScore, bestHash, found = len(seen), e.Hash, true
		}
	}
	return bestHash, found
}
