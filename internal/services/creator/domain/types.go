// Package domain defines the types and ports of the creator service
package domain

import "context"

// AssistInput is the body of POST /assist
type AssistInput struct {
	Title    string `json:"title" validate:"required"`
	Markdown string `json:"markdown" validate:"required"`
}

// AssistResult is the metadata suggested for a draft
type AssistResult struct {
	Title                   string   `json:"title"`
	Summary                 string   `json:"summary"`
	Keywords                []string `json:"keywords"`
	SuggestedPriceUSDCCents int      `json:"suggested_price_usdc_cents"`
}

// AssistantPort is what the transport layer calls
type AssistantPort interface {
	Assist(ctx context.Context, in AssistInput) (AssistResult, error)
	GenerationEnabled() bool
}
