package cli

import (
	"io"
	"os"

	"freq/config"
	"freq/internal/adapter/analyzer"
	"freq/internal/adapter/report"
	"freq/internal/domain"
	"freq/internal/usecase"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var countVerbose bool

func init() {
	rootCmd.Flags().BoolVarP(&countVerbose, "verbose", "v", false, "mirror the report to stdout")
}

// newCounter wires the tokenizer and report writer from config.
func newCounter(cfg *config.Config, logger *zap.Logger) (*usecase.CountUseCase, error) {
	format, err := report.ParseFormat(cfg.Report.Format)
	if err != nil {
		return nil, err
	}

	tokenizer, err := analyzer.NewTokenizer(analyzer.Options{
		Lowercase:       cfg.Count.Lowercase,
		Apostrophes:     cfg.Count.Apostrophes,
		NormalizeNFC:    cfg.Count.Normalize,
		RemoveStopwords: cfg.Count.RemoveStopwords,
		StopwordsLang:   cfg.Count.StopwordsLang,
	})
	if err != nil {
		return nil, err
	}
	return usecase.NewCountUseCase(tokenizer, report.NewWriter(format), logger), nil
}

func runCount(cmd *cobra.Command, args []string) error {
	mode, err := domain.ParseMode(args[0])
	if err != nil {
		return err
	}

	counter, err := newCounter(GetConfig(), GetLogger())
	if err != nil {
		return err
	}

	var mirror io.Writer
	if countVerbose {
		mirror = os.Stdout
	}

	_, err = counter.Run(cmd.Context(), usecase.CountRequest{
		Mode:       mode,
		InputPath:  args[1],
		OutputPath: args[2],
		Mirror:     mirror,
	})
	return err
}
