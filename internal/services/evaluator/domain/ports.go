package domain

import "context"

// EvaluatorPort is what the transport layer calls
type EvaluatorPort interface {
	Evaluate(ctx context.Context, in EvaluateInput) (EvaluateResult, error)
	MatchTopic(ctx context.Context, in MatchTopicInput) (MatchTopicResult, error)
	GenerationEnabled() bool
}

// CatalogPort lists the published documents
type CatalogPort interface {
	Entries(ctx context.Context) ([]CatalogEntry, error)
}
