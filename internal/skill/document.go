package skill

import (
	"strings"
	"unicode"
)

// Document is one skill reference entry: structured metadata describing a
// tool plus the free-text guidance body. The body is never indexed.
type Document struct {
	ID                string
	Path              string
	Name              string
	Description       string
	TriggerTerms      []string
	Tags              []string
	Category          string
	CompatibilityNote string
	Body              string
}

// Categories recognised by the SharpSkill corpus. The field stays a plain
// string so unknown categories pass through untouched.
var Categories = []string{
	"development",
	"devops",
	"ai",
	"analytics",
	"enterprise",
	"design",
	"database",
}

// Slug derives a document ID from its name: lowercase kebab-case with
// every non-alphanumeric run collapsed to a single dash.
func Slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
