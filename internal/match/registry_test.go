package match

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sharpskill/skillmatch/internal/skill"
)

func TestRegistry_EmptyCorpus(t *testing.T) {
	reg := NewRegistry(DefaultWeights())

	results, err := reg.Search("anything at all", SearchOptions{})
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Equal(t, uint64(0), reg.Generation())

	require.NoError(t, reg.Load(nil))
	results, err = reg.Search("still nothing", SearchOptions{})
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Equal(t, uint64(1), reg.Generation())
}

func TestRegistry_EmptyQuery(t *testing.T) {
	reg := NewRegistry(DefaultWeights())
	require.NoError(t, reg.Load(testDocs()))

	_, err := reg.Search("   ", SearchOptions{})
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestRegistry_GenerationAdvances(t *testing.T) {
	reg := NewRegistry(DefaultWeights())
	require.NoError(t, reg.Load(testDocs()))
	require.Equal(t, uint64(1), reg.Generation())
	require.NoError(t, reg.Load(testDocs()))
	require.Equal(t, uint64(2), reg.Generation())
}

func TestRegistry_FailedReloadKeepsServing(t *testing.T) {
	reg := NewRegistry(DefaultWeights())
	require.NoError(t, reg.Load(testDocs()))
	gen := reg.Generation()

	bad := append(testDocs(), skill.Document{ID: "husky", Name: "husky2", Description: "clash"})
	err := reg.Load(bad)
	var verr *skill.ValidationError
	require.ErrorAs(t, err, &verr)

	// The prior generation still answers queries.
	assert.Equal(t, gen, reg.Generation())
	results, err := reg.Search("git hooks", SearchOptions{})
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "husky", results[0].DocID)
}

func TestRegistry_SnapshotSurvivesReload(t *testing.T) {
	reg := NewRegistry(DefaultWeights())
	require.NoError(t, reg.Load(testDocs()))

	snap := reg.Snapshot()
	require.NoError(t, reg.Load(nil))

	// The held snapshot still serves its original document set even
	// though the current generation is empty.
	results, err := snap.Search("git hooks", SearchOptions{})
	require.NoError(t, err)
	assert.NotEmpty(t, results)

	current, err := reg.Search("git hooks", SearchOptions{})
	require.NoError(t, err)
	assert.Empty(t, current)
}

func TestRegistry_ConcurrentSearchDuringReload(t *testing.T) {
	reg := NewRegistry(DefaultWeights())
	require.NoError(t, reg.Load(testDocs()))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				results, err := reg.Search("run end to end tests in ci", SearchOptions{})
				assert.NoError(t, err)
				// A snapshot is either a full corpus or an empty one,
				// never a partial state.
				if len(results) > 0 {
					assert.Equal(t, "cypress", results[0].DocID)
				}
			}
		}()
	}
	for i := 0; i < 20; i++ {
		if i%2 == 0 {
			require.NoError(t, reg.Load(testDocs()))
		} else {
			require.NoError(t, reg.Load(nil))
		}
	}
	wg.Wait()
}

func TestRegistry_SpecificScenarios(t *testing.T) {
	reg := NewRegistry(DefaultWeights())
	require.NoError(t, reg.Load(testDocs()))

	t.Run("pre-commit request ranks husky first", func(t *testing.T) {
		results, err := reg.Search("set up a pre-commit hook to run linters", SearchOptions{})
		require.NoError(t, err)
		require.NotEmpty(t, results)
		assert.Equal(t, "husky", results[0].DocID)
		for _, r := range results[1:] {
			assert.Less(t, r.Score, results[0].Score)
		}
	})

	t.Run("e2e request ranks cypress above husky", func(t *testing.T) {
		results, err := reg.Search("run end to end tests in ci", SearchOptions{})
		require.NoError(t, err)
		require.NotEmpty(t, results)
		assert.Equal(t, "cypress", results[0].DocID)
	})

	t.Run("nonsense query returns empty list", func(t *testing.T) {
		results, err := reg.Search("xyz123 nonsense gibberish", SearchOptions{})
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}

func TestRegistry_BuildIDsDiffer(t *testing.T) {
	reg := NewRegistry(DefaultWeights())
	require.NoError(t, reg.Load(testDocs()))
	first := reg.Snapshot().BuildID
	require.NoError(t, reg.Load(testDocs()))
	second := reg.Snapshot().BuildID
	assert.NotEqual(t, first, second)
	assert.NotEmpty(t, first)
}

func BenchmarkRegistrySearch(b *testing.B) {
	docs := make([]skill.Document, 0, 100)
	for i := 0; i < 100; i++ {
		docs = append(docs, skill.Document{
			ID:           fmt.Sprintf("tool-%03d", i),
			Name:         fmt.Sprintf("tool-%03d", i),
			Description:  "Manage deployments and run checks in ci pipelines.",
			TriggerTerms: []string{fmt.Sprintf("tool %d", i), "continuous deployment"},
		})
	}
	reg := NewRegistry(DefaultWeights())
	if err := reg.Load(docs); err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := reg.Search("run deployment checks in ci", SearchOptions{}); err != nil {
			b.Fatal(err)
		}
	}
}
