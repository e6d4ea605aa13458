package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sharpskill/skillmatch/internal/config"
	"github.com/sharpskill/skillmatch/internal/match"
	"github.com/sharpskill/skillmatch/internal/skill"
)

var flagVerbose bool

var rootCmd = &cobra.Command{
	Use:          "skillmatch",
	Short:        "Skillmatch — match user requests to SharpSkill skill documents",
	SilenceUsage: true, // don't print usage on operational errors
	Long: `Skillmatch decides which skill documents from a SharpSkill corpus are
relevant to a free-text request, ranked by a deterministic lexical score.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logrus.SetOutput(os.Stderr)
		if flagVerbose {
			logrus.SetLevel(logrus.DebugLevel)
		} else {
			logrus.SetLevel(logrus.WarnLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")
}

// Execute is called by main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadRegistry discovers the corpus at cfg.RepoPath and builds a fresh
// registry from it.
func loadRegistry(cfg *config.Config) (*match.Registry, error) {
	docs, err := skill.Discover(cfg.RepoPath)
	if err != nil {
		return nil, err
	}
	reg := match.NewRegistry(cfg.Search.Weights)
	if err := reg.Load(docs); err != nil {
		return nil, err
	}
	return reg, nil
}
