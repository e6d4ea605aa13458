package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sharpskill/skillmatch/internal/config"
	"github.com/sharpskill/skillmatch/internal/skill"
)

// bodyPreviewLines caps how much of the guidance body inspect prints.
const bodyPreviewLines = 12

var inspectCmd = &cobra.Command{
	Use:   "inspect <skill-id>",
	Short: "Show the metadata and guidance of one skill document",
	Long: `Display a formatted summary of a skill document: description,
trigger terms, tags, category, compatibility note and a body preview.

Example:
  skillmatch inspect husky`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(_ *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cannot load config: %w\nRun 'skillmatch init' first.", err)
	}

	docs, err := skill.Discover(cfg.RepoPath)
	if err != nil {
		return err
	}

	id := args[0]
	for _, d := range docs {
		if d.ID == id || d.Name == id {
			printDocument(d)
			return nil
		}
	}
	return fmt.Errorf("skill %q not found under %s", id, cfg.RepoPath)
}

func printDocument(d skill.Document) {
	fmt.Printf("\n=== %s ===\n", d.Name)
	fmt.Printf("  ID:          %s\n", d.ID)
	if d.Path != "" {
		fmt.Printf("  Path:        %s\n", d.Path)
	}
	if d.Category != "" {
		fmt.Printf("  Category:    %s\n", d.Category)
	}
	fmt.Printf("  Description: %s\n", d.Description)
	if len(d.TriggerTerms) > 0 {
		fmt.Printf("  Triggers:    %s\n", strings.Join(d.TriggerTerms, ", "))
	}
	if len(d.Tags) > 0 {
		fmt.Printf("  Tags:        %s\n", strings.Join(d.Tags, ", "))
	}
	if d.CompatibilityNote != "" {
		fmt.Printf("  Compat:      %s\n", d.CompatibilityNote)
	}

	body := strings.TrimSpace(d.Body)
	if body == "" {
		return
	}
	fmt.Println()
	lines := strings.Split(body, "\n")
	for i, ln := range lines {
		if i >= bodyPreviewLines {
			fmt.Printf("  … (%d more lines)\n", len(lines)-i)
			break
		}
		fmt.Printf("  %s\n", ln)
	}
}
