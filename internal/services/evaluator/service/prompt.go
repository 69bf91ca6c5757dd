package service

import (
	"fmt"

	"verdian/internal/core/delegate"
	pstrings "verdian/internal/platform/strings"
)

const (
	fieldPrice         = "price_usdc_cents"
	fieldKeywords      = "keywords"
	fieldPriceFallback = "suggested_price_usdc_cents"
)

var evaluateSchema = delegate.Schema{
	Fields: []delegate.Field{
		{Name: fieldPrice, Kind: delegate.KindInteger, Description: "price in USDC cents, 100 to 500"},
		{Name: fieldKeywords, Kind: delegate.KindStringList, Description: "up to 10 short lowercase keywords"},
	},
	Required: []string{fieldPrice, fieldKeywords},
}

func evaluatePrompt(title, markdown string) string {
	return fmt.Sprintf(
		"Evaluate the markdown article and return JSON with price_usdc_cents (int, 100-500) "+
			"and keywords (up to 10 short lowercase strings).\n\n"+
			"Title: %s\n\nMarkdown (truncated):\n%s",
		title, pstrings.Prefix(markdown, delegate.PromptMaxChars),
	)
}
