// Package reply decodes and sanitizes the JSON object a generation call returns.
// Every accessor is strict: a value it cannot make sense of is an error, and the
// caller discards the whole reply
package reply

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"

	"verdian/internal/core/heuristic"
	"verdian/internal/core/normalize"
	perr "verdian/internal/platform/errors"
)

var errNotNumeric = errors.New("not a number")

// Reply is a decoded top-level JSON object. Numbers stay json.Number
type Reply map[string]any

// Clean strips code fences and any prose around the outermost JSON object
func Clean(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		text = text[start : end+1]
	}
	return text
}

// Parse decodes text into a Reply. Empty text and anything that is not a JSON
// object are UpstreamUnavailable errors
func Parse(text string) (Reply, error) {
	text = Clean(text)
	if text == "" {
		return nil, perr.Upstreamf("empty reply")
	}
	dec := json.NewDecoder(bytes.NewReader([]byte(text)))
	dec.UseNumber()

	var out map[string]any
	if err := dec.Decode(&out); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUpstreamUnavailable, "unparseable reply")
	}
	if out == nil {
		return nil, perr.Upstreamf("reply is not an object")
	}
	if dec.More() {
		return nil, perr.Upstreamf("trailing data after reply object")
	}
	return Reply(out), nil
}

// String returns the trimmed string at key, empty when missing or not a string
func (r Reply) String(key string) string {
	s, _ := r[key].(string)
	return strings.TrimSpace(s)
}

// Price reads the first of keys that is present and not null and coerces it to
// whole cents clamped to the price bounds. Numbers are truncated toward zero,
// numeric strings are accepted, anything else is an InvalidUpstreamField error
func (r Reply) Price(keys ...string) (int, error) {
	for _, k := range keys {
		v, ok := r[k]
		if !ok || v == nil {
			continue
		}
		cents, err := coerceCents(v)
		if err != nil {
			return 0, perr.InvalidFieldf(k, "%s: %v", k, err)
		}
		return heuristic.ClampPrice(cents), nil
	}
	field := ""
	if len(keys) > 0 {
		field = keys[0]
	}
	return 0, perr.InvalidFieldf(field, "price missing")
}

func coerceCents(v any) (int, error) {
	switch x := v.(type) {
	case json.Number:
		return parseNumber(string(x))
	case float64:
		return truncate(x)
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, errNotNumeric
		}
		return parseNumber(s)
	default:
		return 0, errNotNumeric
	}
}

func parseNumber(s string) (int, error) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return saturate(n), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errNotNumeric
	}
	return truncate(f)
}

func truncate(f float64) (int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errNotNumeric
	}
	f = math.Trunc(f)
	switch {
	case f > math.MaxInt32:
		return math.MaxInt32, nil
	case f < math.MinInt32:
		return math.MinInt32, nil
	}
	return int(f), nil
}

func saturate(n int64) int {
	switch {
	case n > math.MaxInt32:
		return math.MaxInt32
	case n < math.MinInt32:
		return math.MinInt32
	}
	return int(n)
}

// Keywords returns the normalized, deduplicated strings of the array at key,
// capped at max. A missing key or a non-array value yields an empty list;
// non-string entries are skipped
func (r Reply) Keywords(key string, max int) []string {
	arr, _ := r[key].([]any)
	strs := make([]string, 0, len(arr))
	for _, v := range arr {
		if s, ok := v.(string); ok {
			strs = append(strs, s)
		}
	}
	return normalize.Labels(strs, max)
}
