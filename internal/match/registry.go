package match

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/sharpskill/skillmatch/internal/skill"
)

// Snapshot is one immutable generation of the index. Readers hold a
// reference to a specific snapshot, not to "the current index", so an
// in-flight search is unaffected by a concurrent reload.
type Snapshot struct {
	Index      *Index
	Generation uint64
	BuildID    string
	BuiltAt    time.Time
}

// Registry owns the document set and its derived index. It is the sole
// mutable-state boundary: a reload builds a fresh index fully off to the
// side and then performs a single atomic pointer swap, so the read path
// never takes a lock.
type Registry struct {
	weights Weights

	mu      sync.Mutex // serializes writers only
	current atomic.Pointer[Snapshot]
}

// SearchOptions tune one search call. Zero values mean "all qualifying
// matches" and "any positive score".
type SearchOptions struct {
	TopK     int
	MinScore float64
}

// NewRegistry returns a registry serving an empty corpus at generation
// zero. Searches against it return empty lists, never an error.
func NewRegistry(w Weights) *Registry {
	r := &Registry{weights: w}
	idx, _ := Build(nil, w)
	r.current.Store(&Snapshot{
		Index:   idx,
		BuildID: uuid.NewString(),
		BuiltAt: time.Now().UTC(),
	})
	return r
}

// Load validates and indexes a document batch, then swaps it in as the
// next generation. On failure the previously published snapshot keeps
// serving: a bad reload never leaves the registry without a usable index.
// An empty batch is legal and produces an index with zero postings.
func (r *Registry) Load(docs []skill.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx, err := Build(docs, r.weights)
	if err != nil {
		return err
	}

	prev := r.current.Load()
	next := &Snapshot{
		Index:      idx,
		Generation: prev.Generation + 1,
		BuildID:    uuid.NewString(),
		BuiltAt:    time.Now().UTC(),
	}
	r.current.Store(next)

	logrus.WithFields(logrus.Fields{
		"generation": next.Generation,
		"build_id":   next.BuildID,
		"documents":  idx.Len(),
		"terms":      idx.Terms(),
	}).Debug("index generation published")
	return nil
}

// Snapshot returns the current generation without blocking.
func (r *Registry) Snapshot() *Snapshot {
	return r.current.Load()
}

// Generation returns the current generation number, for observability.
func (r *Registry) Generation() uint64 {
	return r.current.Load().Generation
}

// Search runs tokenize, score and select against the current snapshot.
func (r *Registry) Search(text string, opts SearchOptions) (RankedList, error) {
	return r.Snapshot().Search(text, opts)
}

// Search runs tokenize, score and select against this specific snapshot.
// A caller holding a snapshot is unaffected by concurrent reloads.
func (s *Snapshot) Search(text string, opts SearchOptions) (RankedList, error) {
	q, err := s.Index.NewQuery(text)
	if err != nil {
		return nil, fmt.Errorf("cannot search: %w", err)
	}
	scores := Score(s.Index, q)
	return Select(s.Index, scores, opts.TopK, opts.MinScore), nil
}
