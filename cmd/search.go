package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sharpskill/skillmatch/internal/config"
	"github.com/sharpskill/skillmatch/internal/match"
)

var (
	flagSearchK        int
	flagSearchMinScore float64
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Rank skill documents by relevance to a request",
	Args:  cobra.ArbitraryArgs,
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().IntVar(&flagSearchK, "k", 0, "Number of results to show (0 = all qualifying)")
	searchCmd.Flags().Float64Var(&flagSearchMinScore, "min-score", 0, "Minimum score to include (0 = any positive score)")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cannot load config: %w\nRun 'skillmatch init' first.", err)
	}

	query := strings.Join(args, " ")

	reg, err := loadRegistry(cfg)
	if err != nil {
		return err
	}

	opts := match.SearchOptions{TopK: flagSearchK, MinScore: flagSearchMinScore}
	if !cmd.Flags().Changed("k") && cfg.Search.TopK > 0 {
		opts.TopK = cfg.Search.TopK
	}
	if !cmd.Flags().Changed("min-score") && cfg.Search.MinScore > 0 {
		opts.MinScore = cfg.Search.MinScore
	}

	results, err := reg.Search(query, opts)
	if err != nil {
		if errors.Is(err, match.ErrEmptyQuery) {
			printErr("", "empty query — tell skillmatch what you want to do, e.g. 'skillmatch search set up git hooks'")
			return err
		}
		return err
	}

	printSearchResults(reg.Snapshot(), query, results)
	return nil
}

func printSearchResults(snap *match.Snapshot, query string, results match.RankedList) {
	fmt.Printf("\nskillmatch search %q\n\n", query)
	fmt.Printf("Results (%d found):\n", len(results))
	if len(results) == 0 {
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for i, r := range results {
		fmt.Fprintf(w, "  %d.\t[%.2f]\t%s\t(%s)\n", i+1, r.Score, r.Name, strings.Join(r.MatchedTerms, ", "))
		if d, ok := snap.Index.Document(r.DocID); ok {
			fmt.Fprintf(w, "  - %s\n", strings.TrimSpace(d.Description))
		}
	}
	_ = w.Flush()
}
