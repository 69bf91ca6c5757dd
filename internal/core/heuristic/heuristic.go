// Package heuristic computes the local, deterministic answers used whenever
// the generation service is unavailable: keywords, a price and an excerpt
package heuristic

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Price bounds in USDC cents
const (
	MinPriceCents = 100
	MaxPriceCents = 500
)

const (
	// DefaultMaxKeywords caps keyword lists unless the caller asks otherwise
	DefaultMaxKeywords = 10
	// DefaultExcerptChars is the excerpt window in characters
	DefaultExcerptChars = 400

	wordsPerTier      = 250
	centsPerTier      = 100
	diversityBonus    = 100
	diversityMinRatio = 0.6
)

var stopwords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "if": {},
	"then": {}, "else": {}, "for": {}, "to": {}, "of": {}, "in": {}, "on": {},
	"at": {}, "by": {}, "with": {}, "about": {}, "as": {}, "is": {}, "are": {},
	"was": {}, "were": {}, "be": {}, "been": {}, "being": {}, "it": {}, "this": {},
	"that": {}, "these": {}, "those": {}, "i": {}, "you": {}, "he": {}, "she": {},
	"they": {}, "we": {}, "my": {}, "your": {}, "their": {}, "our": {}, "from": {},
}

// IsStopword reports whether w is filtered out of keyword extraction
func IsStopword(w string) bool {
	_, ok := stopwords[w]
	return ok
}

// Tokenize lowercases text and returns its maximal runs of ASCII letters and digits.
// Every other byte separates tokens
func Tokenize(text string) []string {
	text = strings.ToLower(text)
	var out []string
	start := -1
	for i := 0; i < len(text); i++ {
		if isWordByte(text[i]) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			out = append(out, text[start:i])
			start = -1
		}
	}
	if start >= 0 {
		out = append(out, text[start:])
	}
	return out
}

func isWordByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9')
}

// Keywords ranks non-stopword tokens longer than two characters by descending
// frequency, ties broken by ascending lexical order. max <= 0 means DefaultMaxKeywords
func Keywords(markdown string, max int) []string {
	if max <= 0 {
		max = DefaultMaxKeywords
	}
	counts := map[string]int{}
	for _, w := range Tokenize(markdown) {
		if len(w) <= 2 || IsStopword(w) {
			continue
		}
		counts[w]++
	}
	if len(counts) == 0 {
		return []string{}
	}

	ranked := make([]string, 0, len(counts))
	for w := range counts {
		ranked = append(ranked, w)
	}
	sort.Slice(ranked, func(i, j int) bool {
		ci, cj := counts[ranked[i]], counts[ranked[j]]
		if ci != cj {
			return ci > cj
		}
		return ranked[i] < ranked[j]
	})
	if len(ranked) > max {
		ranked = ranked[:max]
	}
	return ranked
}

// ClampPrice bounds cents to [MinPriceCents, MaxPriceCents]
func ClampPrice(cents int) int {
	switch {
	case cents < MinPriceCents:
		return MinPriceCents
	case cents > MaxPriceCents:
		return MaxPriceCents
	default:
		return cents
	}
}

// Price is one tier per full 250 tokens on top of the base, plus a bonus when
// more than 60% of the tokens are distinct, clamped to the price bounds
func Price(markdown string) int {
	words := Tokenize(markdown)
	if len(words) == 0 {
		return MinPriceCents
	}
	unique := make(map[string]struct{}, len(words))
	for _, w := range words {
		unique[w] = struct{}{}
	}
	cents := MinPriceCents + (len(words)/wordsPerTier)*centsPerTier
	if float64(len(unique))/float64(len(words)) > diversityMinRatio {
		cents += diversityBonus
	}
	return ClampPrice(cents)
}

// Excerpt trims text and, when it is longer than max characters, cuts it back to
// the last whitespace inside the window so no word is split. A window without
// any whitespace is returned as is. max <= 0 means DefaultExcerptChars
func Excerpt(text string, max int) string {
	if max <= 0 {
		max = DefaultExcerptChars
	}
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) <= max {
		return text
	}

	// byte offset of the rune just past the window
	cut, n := 0, 0
	for i := range text {
		if n == max {
			cut = i
			break
		}
		n++
	}
	window := text[:cut]
	next, _ := utf8.DecodeRuneInString(text[cut:])
	if unicode.IsSpace(next) {
		return strings.TrimRightFunc(window, unicode.IsSpace)
	}

	last := strings.LastIndexFunc(window, unicode.IsSpace)
	if last < 0 {
		return window
	}
	return strings.TrimRightFunc(window[:last], unicode.IsSpace)
}
