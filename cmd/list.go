package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sharpskill/skillmatch/internal/config"
	"github.com/sharpskill/skillmatch/internal/skill"
)

var flagListCategory string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the skill documents in the corpus",
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&flagListCategory, "category", "", "Only list skills in this category")
	rootCmd.AddCommand(listCmd)
}

func runList(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cannot load config: %w\nRun 'skillmatch init' first.", err)
	}

	docs, err := skill.Discover(cfg.RepoPath)
	if err != nil {
		return err
	}

	grouped := make(map[string][]skill.Document)
	for _, d := range docs {
		if flagListCategory != "" && d.Category != flagListCategory {
			continue
		}
		cat := d.Category
		if cat == "" {
			cat = "(uncategorized)"
		}
		grouped[cat] = append(grouped[cat], d)
	}

	if len(grouped) == 0 {
		printInfo("", fmt.Sprintf("no skills found under %s", cfg.RepoPath))
		return nil
	}

	cats := make([]string, 0, len(grouped))
	for c := range grouped {
		cats = append(cats, c)
	}
	sort.Strings(cats)

	for _, cat := range cats {
		items := grouped[cat]
		sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })

		fmt.Printf("\n%s (%d):\n", cat, len(items))
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, d := range items {
			fmt.Fprintf(w, "  %s\t%s\n", d.ID, strings.TrimSpace(d.Description))
		}
		_ = w.Flush()
	}
	return nil
}
