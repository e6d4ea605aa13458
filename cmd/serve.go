package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/sharpskill/skillmatch/internal/config"
	"github.com/sharpskill/skillmatch/internal/mcp"
	"github.com/sharpskill/skillmatch/internal/skill"
	"github.com/sharpskill/skillmatch/internal/watch"
)

var flagServeWatch bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the matcher to assistants over MCP (stdio)",
	Long: `Run an MCP server exposing search_skills and list_skills tools so an
AI assistant can ask which skill documents fit a user request.

With --watch, the skills directory is observed and the registry reloads
automatically when documents change; searches in flight keep their index
generation.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&flagServeWatch, "watch", false, "Reload the registry when the corpus changes on disk")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cannot load config: %w\nRun 'skillmatch init' first.", err)
	}

	reg, err := loadRegistry(cfg)
	if err != nil {
		return err
	}

	server, err := mcp.NewServer(reg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(ctx)
	})

	if flagServeWatch {
		reload := func() error {
			docs, err := skill.Discover(cfg.RepoPath)
			if err != nil {
				return err
			}
			return reg.Load(docs)
		}
		w, err := watch.New(filepath.Join(cfg.RepoPath, "skills"), reload)
		if err != nil {
			return err
		}
		g.Go(func() error {
			err := w.Run(ctx)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		})
	}

	return g.Wait()
}
