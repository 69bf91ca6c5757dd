// Package domain defines the types and ports of the evaluator service
package domain

// EvaluateInput is the body of POST /evaluate
type EvaluateInput struct {
	Title    string `json:"title" validate:"required"`
	Markdown string `json:"markdown" validate:"required"`
}

// EvaluateResult is the priced keyword set for a document
type EvaluateResult struct {
	PriceUSDCCents int      `json:"price_usdc_cents"`
	Keywords       []string `json:"keywords"`
	// Gemini is true when the answer came from the generation service
	Gemini bool `json:"gemini"`
}

// MatchTopicInput is the body of POST /match_topic
type MatchTopicInput struct {
	Topic string `json:"topic" validate:"required"`
}

// MatchTopicResult names the catalog entry that best matches a topic
type MatchTopicResult struct {
	BestMatchHash string `json:"best_match_hash"`
}

// CatalogEntry is one published document in the resource server index
type CatalogEntry struct {
	Hash     string
	Keywords []string
}
