package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"verdian/internal/core/delegate"
	"verdian/internal/core/guard"
	"verdian/internal/core/heuristic"
	perr "verdian/internal/platform/errors"
	dom "verdian/internal/services/evaluator/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGen struct {
	reply  string
	err    error
	calls  int
	prompt string
}

func (f *fakeGen) GenerateJSON(_ context.Context, req delegate.GenerateRequest) (string, error) {
	f.calls++
	f.prompt = req.Prompt
	return f.reply, f.err
}

type fakeCatalog struct {
	entries []dom.CatalogEntry
	err     error
}

func (f fakeCatalog) Entries(context.Context) ([]dom.CatalogEntry, error) { return f.entries, f.err }

const doc = "Go concurrency patterns: goroutines, channels and select. Channels carry values between goroutines."

func TestEvaluate_NoGeneratorMatchesHeuristics(t *testing.T) {
	s := New(Config{})
	assert.False(t, s.GenerationEnabled())

	got, err := s.Evaluate(context.Background(), dom.EvaluateInput{Title: "Go", Markdown: doc})
	require.NoError(t, err)
	assert.Equal(t, dom.EvaluateResult{
		PriceUSDCCents: heuristic.Price(doc),
		Keywords:       heuristic.Keywords(doc, 10),
	}, got)
}

func TestEvaluate_UsesGeneratorReply(t *testing.T) {
	gen := &fakeGen{reply: `{"price_usdc_cents": 420, "keywords": ["Go", "Channels", "go", ""]}`}
	s := New(Config{Generator: gen})
	assert.True(t, s.GenerationEnabled())

	got, err := s.Evaluate(context.Background(), dom.EvaluateInput{Title: "Patterns", Markdown: doc})
	require.NoError(t, err)
	assert.Equal(t, dom.EvaluateResult{PriceUSDCCents: 420, Keywords: []string{"go", "channels"}, Gemini: true}, got)

	assert.Contains(t, gen.prompt, "Title: Patterns")
	assert.Contains(t, gen.prompt, doc)
}

func TestEvaluate_AcceptsSuggestedPriceKey(t *testing.T) {
	s := New(Config{Generator: &fakeGen{reply: `{"suggested_price_usdc_cents": "9000", "keywords": ["x"]}`}})
	got, err := s.Evaluate(context.Background(), dom.EvaluateInput{Title: "t", Markdown: doc})
	require.NoError(t, err)
	assert.Equal(t, 500, got.PriceUSDCCents)
	assert.True(t, got.Gemini)
}

func TestEvaluate_FallsBackOnBadReplies(t *testing.T) {
	baseline := dom.EvaluateResult{PriceUSDCCents: heuristic.Price(doc), Keywords: heuristic.Keywords(doc, 10)}
	for name, gen := range map[string]*fakeGen{
		"call error":     {err: errors.New("503 from upstream")},
		"empty":          {reply: ""},
		"prose":          {reply: "sorry, no"},
		"no keywords":    {reply: `{"price_usdc_cents": 300, "keywords": []}`},
		"keywords blank": {reply: `{"price_usdc_cents": 300, "keywords": ["  ", 3]}`},
		"no price":       {reply: `{"keywords": ["go"]}`},
		"price is text":  {reply: `{"price_usdc_cents": "cheap", "keywords": ["go"]}`},
	} {
		t.Run(name, func(t *testing.T) {
			got, err := New(Config{Generator: gen}).Evaluate(context.Background(), dom.EvaluateInput{Title: "t", Markdown: doc})
			require.NoError(t, err)
			assert.Equal(t, baseline, got)
			assert.Equal(t, 1, gen.calls)
		})
	}
}

func TestEvaluate_PromptTruncatesMarkdown(t *testing.T) {
	gen := &fakeGen{reply: `{}`}
	md := strings.Repeat("x", delegate.PromptMaxChars) + "TAIL"
	_, err := New(Config{Generator: gen}).Evaluate(context.Background(), dom.EvaluateInput{Title: "t", Markdown: md})
	require.NoError(t, err)
	assert.NotContains(t, gen.prompt, "TAIL")
}

func TestEvaluate_TooLargeSkipsAllWork(t *testing.T) {
	gen := &fakeGen{reply: `{"price_usdc_cents": 300, "keywords": ["go"]}`}
	_, err := New(Config{Generator: gen}).Evaluate(context.Background(), dom.EvaluateInput{
		Title:    "t",
		Markdown: strings.Repeat("a", guard.MaxMarkdownBytes+1),
	})
	require.Error(t, err)
	assert.True(t, perr.IsCode(err, perr.ErrorCodePayloadTooLarge))
	assert.Zero(t, gen.calls)
}

func TestMatchTopic(t *testing.T) {
	catalog := fakeCatalog{entries: []dom.CatalogEntry{
		{Hash: "a", Keywords: []string{"cooking", "pasta"}},
		{Hash: "b", Keywords: []string{"Golang", "Channels", "goroutines"}},
		{Hash: "c", Keywords: []string{"channels", "goroutines"}},
	}}
	s := New(Config{Catalog: catalog})

	got, err := s.MatchTopic(context.Background(), dom.MatchTopicInput{Topic: "golang channels and goroutines"})
	require.NoError(t, err)
	assert.Equal(t, "b", got.BestMatchHash)

	// ties keep the earliest entry
	got, err = s.MatchTopic(context.Background(), dom.MatchTopicInput{Topic: "goroutines"})
	require.NoError(t, err)
	assert.Equal(t, "b", got.BestMatchHash)

	// no overlap at all still answers with the first entry
	got, err = s.MatchTopic(context.Background(), dom.MatchTopicInput{Topic: "astronomy"})
	require.NoError(t, err)
	assert.Equal(t, "a", got.BestMatchHash)
}

func TestMatchTopic_DuplicateCatalogKeywordsCountOnce(t *testing.T) {
	s := New(Config{Catalog: fakeCatalog{entries: []dom.CatalogEntry{
		{Hash: "dup", Keywords: []string{"rust", "Rust", "RUST"}},
		{Hash: "two", Keywords: []string{"rust", "cargo"}},
	}}})
	got, err := s.MatchTopic(context.Background(), dom.MatchTopicInput{Topic: "rust cargo"})
	require.NoError(t, err)
	assert.Equal(t, "two", got.BestMatchHash)
}

func TestMatchTopic_Errors(t *testing.T) {
	_, err := New(Config{Catalog: fakeCatalog{}}).MatchTopic(context.Background(), dom.MatchTopicInput{Topic: "x"})
	assert.True(t, perr.IsCode(err, perr.ErrorCodeNotFound))

	_, err = New(Config{Catalog: fakeCatalog{err: perr.BadGatewayf("down")}}).MatchTopic(context.Background(), dom.MatchTopicInput{Topic: "x"})
	assert.True(t, perr.IsCode(err, perr.ErrorCodeBadGateway))

	_, err = New(Config{}).MatchTopic(context.Background(), dom.MatchTopicInput{Topic: "x"})
	assert.True(t, perr.IsCode(err, perr.ErrorCodeBadGateway))
}
