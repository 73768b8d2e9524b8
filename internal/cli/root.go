package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"freq/config"
	"freq/internal/logging"
	"freq/internal/usecase"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgFile  string
	cfg      *config.Config
	rootDir  string
	logLevel string
	logger   *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "freq <mode> <input> <output>",
	Short: "Word and two-gram frequency counter",
	Long: `freq counts word (mode 1) or two-gram (mode 2) frequencies in a UTF-8
text file and writes a deterministic report, one "<token>\t<count>" line per
entry, ordered by count descending and then token.

Example usage:
  freq 1 data/word_01.in.txt out/word_01.out.txt     # Word frequencies
  freq 2 data/word_01.in.txt out/word_01.out.txt -v  # Two-grams, echo to stdout
  freq batch data                                     # Every sample, both modes
  freq history                                        # Recent batch runs`,
	Args:          cobra.ExactArgs(3),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if rootDir == "" {
			rootDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(rootDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if logLevel != "" {
			cfg.Logging.Level = logLevel
		}
		logger, err = logging.New(cfg.Logging.Level)
		if err != nil {
			return err
		}

		return nil
	},
	RunE: runCount,
}

// Execute runs the CLI and exits with the status mapped from the error.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if logger != nil {
		_ = logger.Sync()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "freq: %v\n", err)
		os.Exit(usecase.ExitCode(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./freq.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "d", "", "root directory (default is current directory)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (default from config)")
}

func GetConfig() *config.Config {
	return cfg
}

func GetRootDir() string {
	return rootDir
}

func GetLogger() *zap.Logger {
	return logging.OrNop(logger)
}
