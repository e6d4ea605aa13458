package match

import (
	"sort"
	"strings"
)

// Query is a raw user request plus its tokenized term sequence.
type Query struct {
	Raw   string
	Terms []string
}

// NewQuery tokenizes raw text with the index's tokenizer. Returns
// ErrEmptyQuery for blank or whitespace-only input; callers handle that
// locally rather than treating it as a system fault.
func (idx *Index) NewQuery(raw string) (Query, error) {
	if strings.TrimSpace(raw) == "" {
		return Query{}, ErrEmptyQuery
	}
	return Query{Raw: raw, Terms: idx.tokenizer.Tokenize(raw)}, nil
}

// DocScore is the running raw score for one document plus the terms and
// phrases that contributed to it.
type DocScore struct {
	Score        float64
	MatchedTerms []string
}

// Score evaluates a query against the index: every posting of every query
// term adds its weight to that document's score, and each distinct
// trigger phrase contained verbatim (case-insensitive) in the raw query
// adds the phrase bonus once. Documents with no overlap are absent from
// the result entirely — score is undefined, not zero, which is what lets
// a caller tell "no match" from "weak match".
func Score(idx *Index, q Query) map[string]*DocScore {
	scores := make(map[string]*DocScore)
	bump := func(docID string, weight float64, matched string) {
		ds := scores[docID]
		if ds == nil {
			ds = &DocScore{}
			scores[docID] = ds
		}
		ds.Score += weight
		ds.MatchedTerms = appendDistinct(ds.MatchedTerms, matched)
	}

	// Query term frequency matters: a term repeated in the query adds
	// its postings once per occurrence.
	for _, term := range q.Terms {
		for _, p := range idx.postings[term] {
			bump(p.DocID, p.Weight, term)
		}
	}

	if len(idx.phrases) > 0 {
		haystack := " " + normalizePhrase(q.Raw) + " "
		for phrase, docIDs := range idx.phrases {
			if !strings.Contains(haystack, " "+phrase+" ") {
				continue
			}
			for _, id := range docIDs {
				bump(id, idx.weights.PhraseBonus, phrase)
			}
		}
	}

	for _, ds := range scores {
		sort.Strings(ds.MatchedTerms)
	}
	return scores
}

func appendDistinct(terms []string, t string) []string {
	for _, have := range terms {
		if have == t {
			return terms
		}
	}
	return append(terms, t)
}
