package gemini

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"verdian/internal/core/delegate"
	perr "verdian/internal/platform/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

var schema = delegate.Schema{
	Fields: []delegate.Field{
		{Name: "title", Kind: delegate.KindString, Description: "title"},
		{Name: "keywords", Kind: delegate.KindStringList},
		{Name: "price", Kind: delegate.KindInteger},
	},
	Required: []string{"title", "keywords", "price"},
}

type fakeAPI struct {
	mu     sync.Mutex
	paths  []string
	bodies []map[string]any
	status int
	reply  string
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	var body map[string]any
	_ = json.Unmarshal(raw, &body)
	f.mu.Lock()
	f.paths = append(f.paths, r.URL.Path)
	f.bodies = append(f.bodies, body)
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if f.status != 0 {
		w.WriteHeader(f.status)
	}
	_, _ = io.WriteString(w, f.reply)
}

func newClient(t *testing.T, api *fakeAPI) *Client {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)
	c, err := New(context.Background(), Config{
		APIKey:     "test-key",
		Model:      "gemini-test",
		BaseURL:    srv.URL + "/",
		HTTPClient: srv.Client(),
	})
	require.NoError(t, err)
	return c
}

func TestNew_RequiresKey(t *testing.T) {
	_, err := New(context.Background(), Config{APIKey: "  "})
	require.Error(t, err)
	assert.True(t, perr.IsCode(err, perr.ErrorCodeUpstreamUnavailable))
}

func TestNew_DefaultModel(t *testing.T) {
	c, err := New(context.Background(), Config{APIKey: "k", BaseURL: "http://127.0.0.1:1/"})
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, c.Model())
}

func TestGenerateJSON_ConcatenatesParts(t *testing.T) {
	api := &fakeAPI{reply: `{"candidates":[{"content":{"role":"model","parts":[{"text":"{\"title\":"},{"text":"\"Hi\"}"}]}}]}`}
	c := newClient(t, api)

	got, err := c.GenerateJSON(context.Background(), delegate.GenerateRequest{Prompt: "hello prompt", Schema: schema})
	require.NoError(t, err)
	assert.Equal(t, `{"title":"Hi"}`, got)

	require.Len(t, api.paths, 1)
	assert.True(t, strings.HasSuffix(api.paths[0], "models/gemini-test:generateContent"), api.paths[0])

	gc, ok := api.bodies[0]["generationConfig"].(map[string]any)
	require.True(t, ok, "generationConfig missing: %v", api.bodies[0])
	assert.Equal(t, "application/json", gc["responseMimeType"])
	assert.Contains(t, string(mustJSON(t, api.bodies[0]["contents"])), "hello prompt")
}

func TestGenerateJSON_NoCandidates(t *testing.T) {
	c := newClient(t, &fakeAPI{reply: `{"candidates":[]}`})
	_, err := c.GenerateJSON(context.Background(), delegate.GenerateRequest{Prompt: "p", Schema: schema})
	require.Error(t, err)
	assert.True(t, perr.IsCode(err, perr.ErrorCodeUpstreamUnavailable))
}

func TestGenerateJSON_HTTPError(t *testing.T) {
	c := newClient(t, &fakeAPI{status: http.StatusInternalServerError, reply: `{"error":{"code":500,"message":"boom","status":"INTERNAL"}}`})
	_, err := c.GenerateJSON(context.Background(), delegate.GenerateRequest{Prompt: "p", Schema: schema})
	require.Error(t, err)
	assert.True(t, perr.IsCode(err, perr.ErrorCodeUpstreamUnavailable))
}

func TestToSchema(t *testing.T) {
	s := ToSchema(schema)
	assert.Equal(t, genai.TypeObject, s.Type)
	assert.Equal(t, []string{"title", "keywords", "price"}, s.PropertyOrdering)
	assert.Equal(t, []string{"title", "keywords", "price"}, s.Required)
	assert.Equal(t, genai.TypeString, s.Properties["title"].Type)
	assert.Equal(t, genai.TypeInteger, s.Properties["price"].Type)
	require.NotNil(t, s.Properties["keywords"].Items)
	assert.Equal(t, genai.TypeArray, s.Properties["keywords"].Type)
	assert.Equal(t, genai.TypeString, s.Properties["keywords"].Items.Type)
}

func TestFirstCandidateText_SkipsThoughts(t *testing.T) {
	got, err := firstCandidateText(&genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
		Content: &genai.Content{Parts: []*genai.Part{{Text: "thinking", Thought: true}, {Text: "{}"}}},
	}}})
	require.NoError(t, err)
	assert.Equal(t, "{}", got)

	_, err = firstCandidateText(&genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}})
	assert.Error(t, err)
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}
