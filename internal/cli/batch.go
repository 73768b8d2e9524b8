package cli

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"freq/config"
	"freq/internal/adapter/fs"
	"freq/internal/adapter/store"
	"freq/internal/domain"
	"freq/internal/port"
	"freq/internal/usecase"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	batchOutDir    string
	batchJobs      int
	batchModes     []int
	batchForce     bool
	batchNoHistory bool
)

var batchCmd = &cobra.Command{
	Use:   "batch [dir]",
	Short: "Count every sample input under every mode",
	Long: `Run the counter once per (mode, input) pair for all files under dir that
match the batch include globs. Failing inputs are reported and the pass
continues. Inputs whose bytes, config and report are unchanged since the
last recorded run are skipped.

Examples:
  freq batch                      # Current directory, modes from config
  freq batch data --out results   # Write reports under results/
  freq batch --modes 2 --force    # Two-grams only, recount everything`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().StringVarP(&batchOutDir, "out", "o", "", "output directory (default from config, relative to dir)")
	batchCmd.Flags().IntVarP(&batchJobs, "jobs", "j", 0, "concurrent invocations (default from config)")
	batchCmd.Flags().IntSliceVar(&batchModes, "modes", nil, "modes to run, e.g. 1,2 (default from config)")
	batchCmd.Flags().BoolVar(&batchForce, "force", false, "recount inputs even when unchanged")
	batchCmd.Flags().BoolVar(&batchNoHistory, "no-history", false, "do not read or record run history")
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	logger := GetLogger()

	path := GetRootDir()
	if len(args) > 0 {
		var err error
		path, err = filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("invalid path: %w", err)
		}
	}

	modes, err := resolveModes(cfg)
	if err != nil {
		return err
	}

	outDir := cfg.Batch.OutputDir
	if batchOutDir != "" {
		outDir = batchOutDir
	}
	if !filepath.IsAbs(outDir) {
		outDir = filepath.Join(path, outDir)
	}

	jobs := cfg.Batch.Jobs
	if batchJobs > 0 {
		jobs = batchJobs
	}

	walker := fs.NewWalker(cfg.Batch.Includes, cfg.Batch.Excludes)
	inputs, err := usecase.Preflight(usecase.PreflightOptions{
		Root:       path,
		OutputDir:  outDir,
		RequireGit: cfg.Batch.RequireGit,
	}, walker)
	if err != nil {
		return err
	}

	var history port.RunStore
	if cfg.History.Enabled && !batchNoHistory {
		st, err := openHistory(path, cfg, logger)
		if err != nil {
			return err
		}
		defer st.Close()
		history = st
	}

	counter, err := newCounter(cfg, logger)
	if err != nil {
		return err
	}

	batchUC := usecase.NewBatchUseCase(counter, history, usecase.BatchOptions{
		Modes:        modes,
		OutputDir:    outDir,
		InputSuffix:  cfg.Batch.InputSuffix,
		OutputSuffix: cfg.Batch.OutputSuffix,
		Jobs:         jobs,
		Force:        batchForce,
		ConfigHash:   store.ComputeConfigHash(cfg),
	}, logger)

	fmt.Printf("Counting %d files x %d modes from %s...\n", len(inputs), len(modes), path)

	var bar *progressbar.ProgressBar
	var barMu sync.Mutex
	var startTime time.Time
	var initialized bool

	progressCallback := func(processed, total int, currentFile string) {
		barMu.Lock()
		defer barMu.Unlock()

		if !initialized {
			startTime = time.Now()
			bar = progressbar.NewOptions(total,
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowBytes(false),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("[cyan]Counting[reset]"),
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

		if processed > 0 {
			elapsed := time.Since(startTime)
			rate := float64(processed) / elapsed.Seconds()
			remaining := total - processed
			if rate > 0 {
				eta := time.Duration(float64(remaining)/rate) * time.Second
				bar.Describe(fmt.Sprintf("[cyan]Counting[reset] ETA: %s", formatDuration(eta)))
			}
		}
	}

	result, err := batchUC.Run(cmd.Context(), inputs, progressCallback)
	if err != nil {
		return fmt.Errorf("batch aborted: %w", err)
	}

	fmt.Printf("\nBatch complete:\n")
	fmt.Printf("  Runs:       %d\n", len(result.Outcomes))
	fmt.Printf("  Written:    %d\n", result.Succeeded)
	fmt.Printf("  Skipped:    %d (unchanged)\n", result.Skipped)
	fmt.Printf("  Failed:     %d\n", result.Failed)
	fmt.Printf("\nReports stored in: %s\n", outDir)

	if result.Failed > 0 {
		fmt.Printf("\nFailures:\n")
		for _, o := range result.Outcomes {
			if o.Err != nil {
				fmt.Printf("  - [%s] %v\n", o.Mode, o.Err)
			}
		}
		return &usecase.BatchFailedError{Failed: result.Failed, Total: len(result.Outcomes)}
	}

	return nil
}

func resolveModes(cfg *config.Config) ([]domain.Mode, error) {
	raw := cfg.Batch.Modes
	if len(batchModes) > 0 {
		raw = batchModes
	}

	modes := make([]domain.Mode, 0, len(raw))
	seen := make(map[domain.Mode]bool, len(raw))
	for _, m := range raw {
		mode := domain.Mode(m)
		if !mode.Valid() {
			return nil, &domain.Error{Kind: domain.InvalidMode, Path: fmt.Sprint(m), Err: fmt.Errorf("mode must be 1 (word) or 2 (twogram)")}
		}
		// Both runs would write the same reports.
		if seen[mode] {
			return nil, &domain.Error{Kind: domain.InvalidMode, Path: fmt.Sprint(m), Err: fmt.Errorf("mode given more than once")}
		}
		seen[mode] = true
		modes = append(modes, mode)
	}
	return modes, nil
}

// openHistory opens the run history and drops stale latest pointers when
// the counting configuration changed.
func openHistory(root string, cfg *config.Config, logger *zap.Logger) (*store.BoltStore, error) {
	if err := config.EnsureFreqDir(root); err != nil {
		return nil, fmt.Errorf("failed to create .freq directory: %w", err)
	}

	st, err := store.NewBoltStore(config.HistoryDBPath(root))
	if err != nil {
		return nil, fmt.Errorf("failed to open run history: %w", err)
	}

	migration, err := st.CheckMigration(cfg)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("failed to check migration: %w", err)
	}

	if migration.NeedsInvalidate {
		fmt.Printf("Recounting all inputs: %s\n", migration.Reason)
		if err := st.ForgetLatest(); err != nil {
			st.Close()
			return nil, fmt.Errorf("failed to reset run history: %w", err)
		}
	}
	if migration.NeedsMigration || migration.NeedsInvalidate {
		logger.Debug("Updating history schema", zap.String("reason", migration.Reason))
		if err := st.Migrate(cfg); err != nil {
			st.Close()
			return nil, fmt.Errorf("migration failed: %w", err)
		}
	}

	return st, nil
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return "<1s"
	}
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm%ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh%dm", h, m)
}
