// Package normalize folds free-form labels (keywords coming back from the model)
// into the form they are compared and deduplicated in: trimmed and lowercased.
// Inner spacing and code points are otherwise left alone
package normalize

import (
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// cases.Caser is stateful and not safe for concurrent use
var lowerPool = sync.Pool{
	New: func() any {
		c := cases.Lower(language.Und)
		return &c
	},
}

// Label returns s trimmed and lowercased, empty when only whitespace remains
func Label(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	c := lowerPool.Get().(*cases.Caser)
	out := c.String(s)
	lowerPool.Put(c)
	return out
}

// Labels normalizes each entry, drops empties and duplicates keeping first
// occurrence order, and stops after max entries when max > 0
func Labels(in []string, max int) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		if max > 0 && len(out) >= max {
			break
		}
		l := Label(s)
		if l == "" {
			continue
		}
		if _, dup := seen[l]; dup {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}
