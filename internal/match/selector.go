package match

import "sort"

// Result is one ranked hit.
type Result struct {
	DocID        string
	Name         string
	Score        float64
	MatchedTerms []string
}

// RankedList is an ordered sequence of results: score descending, ties
// broken by document name ascending, then by ID ascending.
type RankedList []Result

// Select applies thresholding, ordering and truncation to raw matcher
// output. Any strictly positive score qualifies unless minScore raises
// the bar; topK <= 0 returns every qualifying match (skill corpora are
// small). No qualifying document yields an empty list, never an error.
func Select(idx *Index, scores map[string]*DocScore, topK int, minScore float64) RankedList {
	out := make(RankedList, 0, len(scores))
	for id, ds := range scores {
		if ds.Score <= 0 || ds.Score < minScore {
			continue
		}
		name := id
		if d, ok := idx.Document(id); ok {
			name = d.Name
		}
		out = append(out, Result{
			DocID:        id,
			Name:         name,
			Score:        ds.Score,
			MatchedTerms: ds.MatchedTerms,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].DocID < out[j].DocID
	})

	if topK > 0 && len(out) > topK {
		out = out[:topK]
	}
	return out
}
