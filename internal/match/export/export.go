// Package export writes a snapshot of a built index to disk for
// observability. The index itself is a derived, in-memory artifact; the
// exported manifest and skills.jsonl let operators see what a given
// generation was built from without holding the process open.
package export

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/sharpskill/skillmatch/internal/match"
)

// Manifest describes one exported snapshot.
type Manifest struct {
	SnapshotVersion int           `json:"snapshot_version"`
	CreatedAt       string        `json:"created_at"`
	BuildID         string        `json:"build_id"`
	Generation      uint64        `json:"generation"`
	DocumentCount   int           `json:"document_count"`
	TermCount       int           `json:"term_count"`
	Weights         match.Weights `json:"weights"`
	SkillsFile      string        `json:"skills_file"`
}

// Entry is one document row in skills.jsonl.
type Entry struct {
	ID            string   `json:"id"`
	Path          string   `json:"path,omitempty"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	TriggerTerms  []string `json:"trigger_terms,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	Category      string   `json:"category,omitempty"`
	Compatibility string   `json:"compatibility,omitempty"`
}

// Write writes manifest.json and skills.jsonl for snap into dir.
func Write(dir string, snap *match.Snapshot, w match.Weights) error {
	if snap == nil || snap.Index == nil {
		return fmt.Errorf("no snapshot to write")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create snapshot dir %s: %w", dir, err)
	}

	manifest := Manifest{
		SnapshotVersion: 1,
		CreatedAt:       time.Now().UTC().Format(time.RFC3339),
		BuildID:         snap.BuildID,
		Generation:      snap.Generation,
		DocumentCount:   snap.Index.Len(),
		TermCount:       snap.Index.Terms(),
		Weights:         w,
		SkillsFile:      "skills.jsonl",
	}

	mb, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "manifest.json"), mb, 0o644); err != nil {
		return fmt.Errorf("cannot write manifest: %w", err)
	}

	docs := snap.Index.Documents()
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })

	sf, err := os.Create(filepath.Join(dir, manifest.SkillsFile))
	if err != nil {
		return fmt.Errorf("cannot create skills file: %w", err)
	}
	bw := bufio.NewWriter(sf)
	for _, d := range docs {
		line, err := json.Marshal(Entry{
			ID:            d.ID,
			Path:          d.Path,
			Name:          d.Name,
			Description:   d.Description,
			TriggerTerms:  d.TriggerTerms,
			Tags:          d.Tags,
			Category:      d.Category,
			Compatibility: d.CompatibilityNote,
		})
		if err != nil {
			_ = sf.Close()
			return err
		}
		if _, err := bw.Write(line); err != nil {
			_ = sf.Close()
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			_ = sf.Close()
			return err
		}
	}
	if err := bw.Flush(); err != nil {
		_ = sf.Close()
		return err
	}
	return sf.Close()
}

// Load reads an exported snapshot back for inspection.
func Load(dir string) (Manifest, []Entry, error) {
	var m Manifest
	b, err := os.ReadFile(filepath.Join(dir, "manifest.json"))
	if err != nil {
		return m, nil, fmt.Errorf("cannot read manifest in %s: %w", dir, err)
	}
	if err := json.Unmarshal(b, &m); err != nil {
		return m, nil, fmt.Errorf("invalid manifest JSON in %s: %w", dir, err)
	}
	if m.SkillsFile == "" {
		m.SkillsFile = "skills.jsonl"
	}

	f, err := os.Open(filepath.Join(dir, m.SkillsFile))
	if err != nil {
		return m, nil, fmt.Errorf("cannot open skills file: %w", err)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var e Entry
		if err := json.Unmarshal(line, &e); err != nil {
			return m, nil, fmt.Errorf("invalid skills JSONL: %w", err)
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return m, nil, fmt.Errorf("cannot read skills file: %w", err)
	}
	return m, entries, nil
}
