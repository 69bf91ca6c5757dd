// Package gemini implements the generation port on top of the Gemini API
package gemini

import (
	"context"
	"net/http"
	"strings"

	"verdian/internal/core/delegate"
	perr "verdian/internal/platform/errors"

	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured
const DefaultModel = "gemini-2.5-pro"

// Config configures the client
type Config struct {
	APIKey string
	Model  string
	// BaseURL overrides the API endpoint, mostly for tests and proxies
	BaseURL     string
	Temperature float32
	HTTPClient  *http.Client
}

// Client calls generateContent with a JSON response schema
type Client struct {
	models *genai.Models
	model  string
	temp   float32
}

// New builds a client. An empty APIKey is an error; callers decide whether to
// run without generation instead
func New(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, perr.Upstreamf("gemini: api key missing")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	cc := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.HTTPClient,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	gc, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUpstreamUnavailable, "gemini: new client")
	}
	return &Client{models: gc.Models, model: cfg.Model, temp: cfg.Temperature}, nil
}

// Model returns the configured model name
func (c *Client) Model() string { return c.model }

// GenerateJSON asks for an application/json reply shaped by req.Schema and
// returns the concatenated text parts of the first candidate
func (c *Client) GenerateJSON(ctx context.Context, req delegate.GenerateRequest) (string, error) {
	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(req.Prompt), &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(c.temp),
		ResponseMIMEType: "application/json",
		ResponseSchema:   ToSchema(req.Schema),
	})
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeUpstreamUnavailable, "gemini: generate content")
	}
	return firstCandidateText(resp)
}

func firstCandidateText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return "", perr.Upstreamf("gemini: no candidates")
	}
	content := resp.Candidates[0].Content
	if content == nil {
		return "", perr.Upstreamf("gemini: candidate has no content")
	}
	var b strings.Builder
	for _, p := range content.Parts {
		if p != nil && !p.Thought {
			b.WriteString(p.Text)
		}
	}
	return b.String(), nil
}

// ToSchema converts a provider-neutral schema to the Gemini object schema
func ToSchema(s delegate.Schema) *genai.Schema {
	props := make(map[string]*genai.Schema, len(s.Fields))
	order := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		props[f.Name] = fieldSchema(f)
		order = append(order, f.Name)
	}
	return &genai.Schema{
		Type:             genai.TypeObject,
		Properties:       props,
		PropertyOrdering: order,
		Required:         append([]string(nil), s.Required...),
	}
}

func fieldSchema(f delegate.Field) *genai.Schema {
	switch f.Kind {
	case delegate.KindInteger:
		return &genai.Schema{Type: genai.TypeInteger, Description: f.Description}
	case delegate.KindStringList:
		return &genai.Schema{
			Type:        genai.TypeArray,
			Description: f.Description,
			Items:       &genai.Schema{Type: genai.TypeString},
		}
	default:
		return &genai.Schema{Type: genai.TypeString, Description: f.Description}
	}
}
