package skill

import "strings"

// Generated SKILL.md files rarely carry a dedicated triggers: key. The
// author-supplied trigger phrases live in prose instead: the description
// ends with "Use when (user) asks to ..." and the body has a
// "## When to Use" bullet list. Inference recovers those phrases so
// trigger weighting works on such corpora; an explicit triggers: or
// keywords: key always wins.

// descriptionMarkers are matched case-insensitively. Longer variants
// come first so "user asks to" is not swallowed by a shorter prefix.
var descriptionMarkers = []string{
	"use when user asks to",
	"use when asked to",
	"use this skill when asked to",
}

func inferTriggerTerms(description, body string) []string {
	var out []string
	seen := make(map[string]struct{})
	add := func(phrase string) {
		phrase = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(phrase), "."))
		if phrase == "" {
			return
		}
		key := strings.ToLower(phrase)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		out = append(out, phrase)
	}

	for _, p := range descriptionTriggers(description) {
		add(p)
	}
	for _, p := range whenToUseBullets(body) {
		add(p)
	}
	return out
}

// descriptionTriggers pulls the phrase list out of a description of the
// form "... Use when user asks to: a, b, or c." The list runs to the
// next period.
func descriptionTriggers(description string) []string {
	lower := strings.ToLower(description)
	idx := -1
	var marker string
	for _, m := range descriptionMarkers {
		if i := strings.Index(lower, m); i >= 0 {
			idx, marker = i, m
			break
		}
	}
	if idx < 0 {
		return nil
	}

	rest := description[idx+len(marker):]
	rest = strings.TrimLeft(rest, ": ")
	if dot := strings.Index(rest, "."); dot >= 0 {
		rest = rest[:dot]
	}
	return splitPhrases(rest)
}

// splitPhrases cuts a comma-separated enumeration, dropping the "or"/
// "and" that introduces the final item.
func splitPhrases(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		for _, conj := range []string{"or ", "and "} {
			if strings.HasPrefix(p, conj) {
				p = strings.TrimSpace(strings.TrimPrefix(p, conj))
				break
			}
		}
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// whenToUseBullets collects the bullet items under a "## When to Use"
// heading, up to the next heading. Non-bullet lines (the "Use this
// skill when asked to:" intro) are skipped.
func whenToUseBullets(body string) []string {
	var out []string
	inSection := false
	for _, ln := range strings.Split(body, "\n") {
		ln = strings.TrimSpace(ln)
		if strings.HasPrefix(ln, "#") {
			if inSection {
				break
			}
			heading := strings.ToLower(strings.TrimLeft(ln, "# "))
			inSection = strings.Contains(heading, "when to use")
			continue
		}
		if !inSection {
			continue
		}
		if strings.HasPrefix(ln, "- ") || strings.HasPrefix(ln, "* ") {
			out = append(out, strings.TrimSpace(ln[2:]))
		}
	}
	return out
}
