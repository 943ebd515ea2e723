// Package sanitize cleans user-authored text (comments, debate
// descriptions) before it is stored. The policy is allowlist-based: a
// handful of inline formatting tags survive and everything else is
// stripped, including script, style, iframes and on* event attributes.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer applies a fixed bluemonday policy. It is safe for concurrent
// use.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// New builds the site policy: basic inline formatting plus line breaks,
// nothing that can execute or load remote content.
func New() *Sanitizer {
	p := bluemonday.NewPolicy()
	p.AllowElements("b", "i", "em", "strong", "br", "p")
	return &Sanitizer{policy: p}
}

// Clean sanitizes and trims the given text. Same input always yields the
// same output.
func (s *Sanitizer) Clean(raw string) string {
	return strings.TrimSpace(s.policy.Sanitize(raw))
}
