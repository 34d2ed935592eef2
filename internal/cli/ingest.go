package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"reco/config"
	"reco/internal/adapter/fs"
	"reco/internal/adapter/store"
	"reco/internal/usecase"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [path]",
	Short: "Ingest a MovieLens dataset",
	Long: `Ingest MovieLens movies and ratings files from the specified directory.
Ratings are aggregated per movie and the catalog is stored in
.reco/catalog.db within the target directory.

Examples:
  reco ingest .                # Ingest current directory
  reco ingest /data/ml-1m      # Ingest a specific dataset directory`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	path := GetDataDir()
	if len(args) > 0 {
		var err error
		path, err = filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("invalid path: %w", err)
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("path does not exist: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", path)
	}

	cfg := GetConfig()

	if err := config.EnsureRecoDir(path); err != nil {
		return fmt.Errorf("failed to create .reco directory: %w", err)
	}

	dbPath := config.CatalogDBPath(path)
	st, err := store.NewBoltStore(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open catalog store: %w", err)
	}
	defer st.Close()

	migrationResult, err := st.CheckMigration(cfg)
	if err != nil {
		return fmt.Errorf("failed to check migration: %w", err)
	}

	if migrationResult.NeedsRebuild {
		fmt.Printf("Catalog rebuild required: %s\n", migrationResult.Reason)
		fmt.Println("Clearing existing catalog...")
		if err := st.Clear(); err != nil {
			return fmt.Errorf("failed to clear catalog: %w", err)
		}
	}

	walker := fs.NewWalker(cfg.Ingest.Includes, cfg.Ingest.Excludes)
	ingestUC := usecase.NewIngestUseCase(st, walker)

	fmt.Printf("Scanning %s...\n", path)

	var bar *progressbar.ProgressBar
	var barMu sync.Mutex
	var initialized bool

	progressCallback := func(processed, total int, currentFile string) {
		barMu.Lock()
		defer barMu.Unlock()

		if !initialized {
			bar = progressbar.NewOptions(total,
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowBytes(false),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("[cyan]Ingesting[reset]"),
				progressbar.OptionSetTheme(progressbar.Theme{
					Saucer:        "[green]=[reset]",
					SaucerHead:    "[green]>[reset]",
					SaucerPadding: " ",
					BarStart:      "[",
					BarEnd:        "]",
				}),
				progressbar.OptionOnCompletion(func() {
					fmt.Println()
				}),
			)
			initialized = true
		}

		bar.Set(processed)
		bar.Describe(fmt.Sprintf("[cyan]Ingesting[reset] %s", filepath.Base(currentFile)))
	}

	result, err := ingestUC.Ingest(path, progressCallback)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	// Record schema info after a successful ingest.
	if err := st.Migrate(cfg); err != nil {
		return fmt.Errorf("failed to update schema info: %w", err)
	}

	fmt.Printf("\nIngest complete:\n")
	fmt.Printf("  Files scanned:     %d\n", result.FilesScanned)
	fmt.Printf("  Movies loaded:     %d\n", result.MoviesLoaded)
	fmt.Printf("  Ratings aggregated: %d\n", result.RatingsLoaded)
	if result.RatingsSkipped > 0 {
		fmt.Printf("  Ratings skipped:   %d (unknown movies)\n", result.RatingsSkipped)
	}

	if len(result.Warnings) > 0 {
		fmt.Printf("\nWarnings:\n")
		for _, w := range result.Warnings {
			fmt.Printf("  - %s\n", w)
		}
	}

	fmt.Printf("\nCatalog stored at: %s\n", dbPath)
	return nil
}
