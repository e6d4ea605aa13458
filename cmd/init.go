package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sharpskill/skillmatch/internal/config"
)

// exampleSkill is written into the repo on first init so a fresh install
// has something to search.
const exampleSkill = `---
name: example
description: "Placeholder skill showing the SKILL.md layout. Use when user asks to: see an example skill, understand the frontmatter format."
triggers:
  - example skill
  - skill format
metadata:
  category: development
  tags: [example]
---

# Example

Replace this with real guidance for a tool.
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Bootstrap the skillmatch config and skill repository",
	Long: `Initialize skillmatch at ~/.skillmatch/.

Writes skillmatch.yaml with default scoring weights and creates the
skill repository skeleton at ~/.skillmatch/repo/skills/.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(_ *cobra.Command, _ []string) error {
	dir, err := config.Dir()
	if err != nil {
		return err
	}
	cfgPath, err := config.Path()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create %s: %w", dir, err)
	}
	printOK("", fmt.Sprintf("Skillmatch directory ready: %s", dir))

	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		cfg, err := config.DefaultConfig()
		if err != nil {
			return err
		}
		if err := config.Save(cfg); err != nil {
			return err
		}
		printOK("", fmt.Sprintf("Config written: %s", cfgPath))
	} else {
		printSkip("", fmt.Sprintf("Config already exists: %s", cfgPath))
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	skillsDir := filepath.Join(cfg.RepoPath, "skills")
	if err := os.MkdirAll(skillsDir, 0o755); err != nil {
		return fmt.Errorf("cannot create skills directory %s: %w", skillsDir, err)
	}

	examplePath := filepath.Join(skillsDir, "example", "SKILL.md")
	if _, err := os.Stat(examplePath); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(examplePath), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(examplePath, []byte(exampleSkill), 0o644); err != nil {
			return fmt.Errorf("cannot write example skill: %w", err)
		}
		printOK("", fmt.Sprintf("Example skill written: %s", examplePath))
	} else {
		printSkip("", "Skill repository already populated")
	}

	printInfo("", "Drop SKILL.md documents under "+skillsDir+" and run 'skillmatch search <query>'")
	return nil
}
