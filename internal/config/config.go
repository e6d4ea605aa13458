package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sharpskill/skillmatch/internal/match"
)

// SearchSettings holds the tunable scoring parameters. The numeric
// weights are configuration, not constants: corpora differ in how
// carefully trigger terms are curated.
type SearchSettings struct {
	Weights  match.Weights `yaml:"weights"`
	MinScore float64       `yaml:"min_score,omitempty"`
	TopK     int           `yaml:"top_k,omitempty"`
}

// Config is the in-memory representation of ~/.skillmatch/skillmatch.yaml.
type Config struct {
	RepoPath string         `yaml:"repo_path"`
	Search   SearchSettings `yaml:"search"`
}

// Dir returns the absolute path to ~/.skillmatch/.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".skillmatch"), nil
}

// Path returns the absolute path to ~/.skillmatch/skillmatch.yaml.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "skillmatch.yaml"), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(p string) (string, error) {
	if !strings.HasPrefix(p, "~") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand ~: %w", err)
	}
	return filepath.Join(home, p[1:]), nil
}

// DefaultConfig returns the config written on first skillmatch init.
func DefaultConfig() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return &Config{
		RepoPath: filepath.Join(home, ".skillmatch", "repo"),
		Search: SearchSettings{
			Weights: match.DefaultWeights(),
		},
	}, nil
}

// weightsFile is the on-disk form of the scoring weights. Pointer
// fields distinguish "unset" from an explicit zero, so an operator can
// disable a field outright (e.g. description: 0) while unset fields
// still fall back to the defaults.
type weightsFile struct {
	TriggerTerm *float64 `yaml:"trigger_term"`
	Name        *float64 `yaml:"name"`
	Tag         *float64 `yaml:"tag"`
	Description *float64 `yaml:"description"`
	PhraseBonus *float64 `yaml:"phrase_bonus"`
}

func (w weightsFile) resolve() match.Weights {
	out := match.DefaultWeights()
	if w.TriggerTerm != nil {
		out.TriggerTerm = *w.TriggerTerm
	}
	if w.Name != nil {
		out.Name = *w.Name
	}
	if w.Tag != nil {
		out.Tag = *w.Tag
	}
	if w.Description != nil {
		out.Description = *w.Description
	}
	if w.PhraseBonus != nil {
		out.PhraseBonus = *w.PhraseBonus
	}
	return out
}

type configFile struct {
	RepoPath string `yaml:"repo_path"`
	Search   struct {
		Weights  weightsFile `yaml:"weights"`
		MinScore float64     `yaml:"min_score"`
		TopK     int         `yaml:"top_k"`
	} `yaml:"search"`
}

// Load reads and parses ~/.skillmatch/skillmatch.yaml. Weights absent
// from the file fall back to the defaults so a hand-edited config can
// override just one parameter; an explicit zero is kept.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read config %s: %w", path, err)
	}
	var raw configFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
	}
	cfg := Config{
		RepoPath: raw.RepoPath,
		Search: SearchSettings{
			Weights:  raw.Search.Weights.resolve(),
			MinScore: raw.Search.MinScore,
			TopK:     raw.Search.TopK,
		},
	}
	cfg.RepoPath, err = ExpandPath(cfg.RepoPath)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save marshals cfg and writes it to ~/.skillmatch/skillmatch.yaml.
func Save(cfg *Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("cannot marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cannot write config %s: %w", path, err)
	}
	return nil
}
