package service

import (
	"fmt"

	"verdian/internal/core/delegate"
	pstrings "verdian/internal/platform/strings"
)

const (
	fieldTitle         = "title"
	fieldSummary       = "summary"
	fieldKeywords      = "keywords"
	fieldPrice         = "suggested_price_usdc_cents"
	fieldPriceFallback = "price_usdc_cents"
)

var assistSchema = delegate.Schema{
	Fields: []delegate.Field{
		{Name: fieldTitle, Kind: delegate.KindString},
		{Name: fieldSummary, Kind: delegate.KindString},
		{Name: fieldKeywords, Kind: delegate.KindStringList, Description: "up to 10 short lowercase keywords"},
		{Name: fieldPrice, Kind: delegate.KindInteger, Description: "price in USDC cents, 100 to 500"},
	},
	Required: []string{fieldTitle, fieldSummary, fieldKeywords, fieldPrice},
}

func assistPrompt(title, markdown string) string {
	return fmt.Sprintf(
		"Assist the content creator. Return JSON with fields: title (string), summary (string), "+
			"keywords (up to 10 short lowercase strings), and suggested_price_usdc_cents (int 100..500).\n\n"+
			"Original Title: %s\n\nMarkdown (truncated if very long):\n%s",
		title, pstrings.Prefix(markdown, delegate.PromptMaxChars),
	)
}
