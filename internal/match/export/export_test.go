package export

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sharpskill/skillmatch/internal/match"
	"github.com/sharpskill/skillmatch/internal/skill"
)

func builtSnapshot(t *testing.T) (*match.Snapshot, match.Weights) {
	t.Helper()
	w := match.DefaultWeights()
	reg := match.NewRegistry(w)
	require.NoError(t, reg.Load([]skill.Document{
		{ID: "husky", Name: "husky", Description: "Manage git hooks.", TriggerTerms: []string{"git hooks"}, Category: "devops"},
		{ID: "cypress", Name: "cypress", Description: "Browser testing.", Tags: []string{"testing"}},
	}))
	return reg.Snapshot(), w
}

func TestWriteLoad_RoundTrip(t *testing.T) {
	snap, w := builtSnapshot(t)
	dir := t.TempDir()

	require.NoError(t, Write(dir, snap, w))

	m, entries, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, m.SnapshotVersion)
	assert.Equal(t, snap.Generation, m.Generation)
	assert.Equal(t, snap.BuildID, m.BuildID)
	assert.Equal(t, 2, m.DocumentCount)
	assert.Equal(t, w, m.Weights)

	require.Len(t, entries, 2)
	// skills.jsonl is sorted by ID.
	assert.Equal(t, "cypress", entries[0].ID)
	assert.Equal(t, "husky", entries[1].ID)
	assert.Equal(t, []string{"git hooks"}, entries[1].TriggerTerms)
	assert.Equal(t, "devops", entries[1].Category)
}

func TestWrite_NilSnapshot(t *testing.T) {
	err := Write(t.TempDir(), nil, match.DefaultWeights())
	assert.Error(t, err)
}

func TestInstall_SwapsAtomically(t *testing.T) {
	snap, w := builtSnapshot(t)
	base := t.TempDir()
	src := filepath.Join(base, "staging")
	dest := filepath.Join(base, "snapshot")

	require.NoError(t, Write(src, snap, w))
	require.NoError(t, Install(src, dest, time.Second))

	_, entries, err := Load(dest)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	// A second install replaces the previous snapshot and leaves no
	// backup directory behind.
	src2 := filepath.Join(base, "staging2")
	require.NoError(t, Write(src2, snap, w))
	require.NoError(t, Install(src2, dest, time.Second))

	_, err = os.Stat(dest + ".bak")
	assert.True(t, os.IsNotExist(err))
}

func TestLoad_MissingManifest(t *testing.T) {
	_, _, err := Load(t.TempDir())
	assert.Error(t, err)
}
