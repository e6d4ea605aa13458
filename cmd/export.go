package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/sharpskill/skillmatch/internal/config"
	"github.com/sharpskill/skillmatch/internal/match/export"
)

var flagExportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a snapshot of the current index build to disk",
	Long: `Build the index from the corpus and export its manifest and document
list (manifest.json + skills.jsonl) for inspection. The snapshot is
written aside and swapped into place atomically; the index itself stays
an in-memory artifact and is rebuilt from the corpus on every run.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&flagExportOut, "out", "", "Output directory (default ~/.skillmatch/snapshot)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cannot load config: %w\nRun 'skillmatch init' first.", err)
	}

	reg, err := loadRegistry(cfg)
	if err != nil {
		return err
	}
	snap := reg.Snapshot()
	if snap.Index.Len() == 0 {
		printWarn("", "corpus is empty — exporting an empty snapshot")
	}

	outDir := flagExportOut
	if outDir == "" {
		dir, err := config.Dir()
		if err != nil {
			return err
		}
		outDir = filepath.Join(dir, "snapshot")
	}

	tmpBase := filepath.Dir(outDir)
	if err := os.MkdirAll(tmpBase, 0o755); err != nil {
		return fmt.Errorf("cannot create %s: %w", tmpBase, err)
	}
	tmpDir, err := os.MkdirTemp(tmpBase, "snapshot-*")
	if err != nil {
		return fmt.Errorf("cannot create temp snapshot dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	if err := export.Write(tmpDir, snap, cfg.Search.Weights); err != nil {
		return fmt.Errorf("snapshot write failed: %w", err)
	}
	if err := export.Install(tmpDir, outDir, 10*time.Second); err != nil {
		return fmt.Errorf("cannot install snapshot: %w", err)
	}

	printOK("", fmt.Sprintf("snapshot written: %s (generation %d, %d documents)",
		outDir, snap.Generation, snap.Index.Len()))
	return nil
}
