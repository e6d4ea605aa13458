package match

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// minTermLen is the shortest token kept by default. Shorter tokens
// survive only when listed as trigger terms (domain abbreviations).
const minTermLen = 2

// folder strips diacritics so "résumé" and "resume" normalize to the
// same term sequence.
var folder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Tokenizer normalizes free text into an ordered sequence of comparable
// terms. Normalization is deterministic and pure; duplicate tokens are
// kept because frequency matters for scoring.
type Tokenizer struct {
	keepShort map[string]struct{}
}

// NewTokenizer returns a tokenizer that additionally keeps the given
// short terms, which would otherwise fall below the length cutoff.
func NewTokenizer(keepShort []string) *Tokenizer {
	t := &Tokenizer{keepShort: make(map[string]struct{}, len(keepShort))}
	for _, s := range keepShort {
		t.keepShort[s] = struct{}{}
	}
	return t
}

// Tokenize lowercases, folds and splits text on non-alphanumeric
// boundaries, dropping tokens below the length cutoff unless allowlisted.
func (t *Tokenizer) Tokenize(text string) []string {
	raw := splitTerms(Normalize(text))
	out := make([]string, 0, len(raw))
	for _, tok := range raw {
		if len([]rune(tok)) < minTermLen {
			if _, ok := t.keepShort[tok]; !ok {
				continue
			}
		}
		out = append(out, tok)
	}
	return out
}

// Normalize lowercases text and strips diacritics. Both index and query
// sides go through this single step so later upgrades (stemming, typo
// tolerance) stay behind the tokenizer contract.
func Normalize(text string) string {
	folded, _, err := transform.String(folder, text)
	if err != nil {
		folded = text
	}
	return strings.ToLower(folded)
}

// splitTerms cuts normalized text on every non-alphanumeric rune.
func splitTerms(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// normalizePhrase canonicalizes a multi-word trigger phrase to its
// space-joined term form, e.g. "Edge-Computing " -> "edge computing".
func normalizePhrase(s string) string {
	return strings.Join(splitTerms(Normalize(s)), " ")
}
