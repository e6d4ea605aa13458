package match

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/sharpskill/skillmatch/internal/skill"
)

// Field identifies which document field a posting came from.
type Field string

const (
	FieldName        Field = "name"
	FieldTriggerTerm Field = "triggerTerm"
	FieldTag         Field = "tag"
	FieldDescription Field = "description"
)

// Weights are the tunable scoring parameters. Field weights reflect
// decreasing intentional-match signal: an author-supplied trigger term is
// a stronger relevance hint than a word that happens to appear in the
// description.
type Weights struct {
	TriggerTerm float64 `yaml:"trigger_term" json:"trigger_term"`
	Name        float64 `yaml:"name" json:"name"`
	Tag         float64 `yaml:"tag" json:"tag"`
	Description float64 `yaml:"description" json:"description"`
	PhraseBonus float64 `yaml:"phrase_bonus" json:"phrase_bonus"`
}

// DefaultWeights returns the default scoring parameters. TriggerTerm is
// kept far enough above Description that a sole trigger-term hit outranks
// a description-only match at comparable term frequency.
func DefaultWeights() Weights {
	return Weights{
		TriggerTerm: 5,
		Name:        3,
		Tag:         2,
		Description: 1,
		PhraseBonus: 2.5,
	}
}

func (w Weights) forField(f Field) float64 {
	switch f {
	case FieldTriggerTerm:
		return w.TriggerTerm
	case FieldName:
		return w.Name
	case FieldTag:
		return w.Tag
	default:
		return w.Description
	}
}

// Posting records that a term appears in one field of one document, with
// the weight fixed at build time (field base weight × in-field term
// frequency).
type Posting struct {
	DocID  string
	Field  Field
	Weight float64
}

// Index is an immutable inverted index over a document batch. A rebuild
// produces a new Index value; nothing mutates an Index after Build
// returns, so concurrent readers need no coordination.
type Index struct {
	postings  map[string][]Posting
	docs      map[string]skill.Document
	phrases   map[string][]string
	tokenizer *Tokenizer
	weights   Weights
}

// Build tokenizes every document's indexed fields (name, trigger terms,
// tags, description — never the body) and constructs the inverted index.
// The batch is rejected atomically with a *skill.ValidationError on
// duplicate IDs or missing required fields. A document whose fields blow
// up during tokenization is skipped with a warning; the rest still build.
func Build(docs []skill.Document, w Weights) (*Index, error) {
	if err := skill.ValidateBatch(docs); err != nil {
		return nil, fmt.Errorf("cannot build index: %w", err)
	}

	idx := &Index{
		postings: make(map[string][]Posting),
		docs:     make(map[string]skill.Document, len(docs)),
		phrases:  make(map[string][]string),
		weights:  w,
	}

	// Short trigger tokens (e.g. "r", "k8" style abbreviations) must
	// survive tokenization, so the allowlist is collected corpus-wide
	// before any field is tokenized.
	idx.tokenizer = NewTokenizer(shortTriggerTokens(docs))

	for _, d := range docs {
		if err := idx.addDocument(d); err != nil {
			logrus.WithField("id", d.ID).WithError(err).Warn("skipping unindexable document")
		}
	}
	return idx, nil
}

// addDocument indexes one document, recovering from any panic in field
// tokenization so a single bad document cannot sink the batch. All
// tokenization happens before the first write, so a failed document
// leaves no partial postings behind.
func (idx *Index) addDocument(d skill.Document) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("tokenization failed: %v", r)
		}
	}()

	nameToks := idx.tokenizer.Tokenize(d.Name)
	descToks := idx.tokenizer.Tokenize(d.Description)
	var tagToks [][]string
	for _, tag := range d.Tags {
		tagToks = append(tagToks, idx.tokenizer.Tokenize(tag))
	}
	var (
		triggerTokens []string
		phrases       []string
	)
	for _, trig := range d.TriggerTerms {
		toks := idx.tokenizer.Tokenize(trig)
		triggerTokens = append(triggerTokens, toks...)
		if len(toks) > 1 {
			phrases = append(phrases, normalizePhrase(trig))
		}
	}

	idx.docs[d.ID] = d
	idx.addField(d.ID, FieldName, nameToks)
	idx.addField(d.ID, FieldDescription, descToks)
	for _, toks := range tagToks {
		idx.addField(d.ID, FieldTag, toks)
	}
	idx.addField(d.ID, FieldTriggerTerm, triggerTokens)
	for _, p := range phrases {
		idx.addPhrase(p, d.ID)
	}
	return nil
}

// addField merges one field's token sequence into the postings, one entry
// per distinct term weighted by in-field frequency.
func (idx *Index) addField(docID string, f Field, tokens []string) {
	if len(tokens) == 0 {
		return
	}
	tf := make(map[string]int, len(tokens))
	for _, t := range tokens {
		tf[t]++
	}
	base := idx.weights.forField(f)
	for term, n := range tf {
		idx.postings[term] = append(idx.postings[term], Posting{
			DocID:  docID,
			Field:  f,
			Weight: base * float64(n),
		})
	}
}

func (idx *Index) addPhrase(phrase, docID string) {
	if phrase == "" {
		return
	}
	for _, id := range idx.phrases[phrase] {
		if id == docID {
			return
		}
	}
	idx.phrases[phrase] = append(idx.phrases[phrase], docID)
}

// Postings returns the posting list for a term, or nil.
func (idx *Index) Postings(term string) []Posting {
	return idx.postings[term]
}

// Document returns the stored document for an ID.
func (idx *Index) Document(id string) (skill.Document, bool) {
	d, ok := idx.docs[id]
	return d, ok
}

// Documents returns the indexed document set.
func (idx *Index) Documents() []skill.Document {
	out := make([]skill.Document, 0, len(idx.docs))
	for _, d := range idx.docs {
		out = append(out, d)
	}
	return out
}

// Len reports how many documents the index covers.
func (idx *Index) Len() int { return len(idx.docs) }

// Terms reports how many distinct terms have postings.
func (idx *Index) Terms() int { return len(idx.postings) }

// Tokenizer returns the tokenizer built for this index, including its
// short trigger-term allowlist. Queries must use the same normalization
// as the documents they match against.
func (idx *Index) Tokenizer() *Tokenizer { return idx.tokenizer }

// shortTriggerTokens collects trigger-term tokens that fall below the
// default length cutoff across the whole batch.
func shortTriggerTokens(docs []skill.Document) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, d := range docs {
		for _, trig := range d.TriggerTerms {
			for _, tok := range splitTerms(Normalize(trig)) {
				if len([]rune(tok)) >= minTermLen {
					continue
				}
				if _, ok := seen[tok]; ok {
					continue
				}
				seen[tok] = struct{}{}
				out = append(out, tok)
			}
		}
	}
	return out
}

// String summarizes the index for debug output.
func (idx *Index) String() string {
	return fmt.Sprintf("index{docs=%d terms=%d phrases=%d}", len(idx.docs), len(idx.postings), len(idx.phrases))
}
