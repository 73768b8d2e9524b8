package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"freq/internal/adapter/analyzer"
	"freq/internal/domain"
	"freq/internal/logging"
	"freq/internal/port"
	"go.uber.org/zap"
)

// CountUseCase is the frequency counter: one input file in, one report out.
type CountUseCase struct {
	tokenizer port.Tokenizer
	writer    port.ReportWriter
	logger    *zap.Logger
}

// NewCountUseCase creates a new count use case.
func NewCountUseCase(tokenizer port.Tokenizer, writer port.ReportWriter, logger *zap.Logger) *CountUseCase {
	return &CountUseCase{
		tokenizer: tokenizer,
		writer:    writer,
		logger:    logging.OrNop(logger),
	}
}

// CountRequest names one invocation.
type CountRequest struct {
	Mode       domain.Mode
	InputPath  string
	OutputPath string

	// Mirror, if set, receives a copy of the report after it is written.
	Mirror io.Writer
}

// CountResult describes a written report.
type CountResult struct {
	Mode      domain.Mode
	Input     string
	Output    string
	Total     int
	Unique    int
	Checksum  string
	InputHash string
	Duration  time.Duration
}

// Count tokenizes r under mode into a fresh table.
func (u *CountUseCase) Count(ctx context.Context, mode domain.Mode, r io.Reader) (*domain.FrequencyTable, error) {
	if !mode.Valid() {
		return nil, &domain.Error{Kind: domain.InvalidMode, Err: fmt.Errorf("mode %d is not 1 (word) or 2 (twogram)", int(mode))}
	}

	table := domain.NewFrequencyTable()

	var emit func(string)
	switch mode {
	case domain.ModeTwoGram:
		grams := analyzer.NewTwoGrammer(func(g domain.TwoGram) {
			table.Add(g.String())
		})
		emit = grams.Push
	default:
		emit = table.Add
	}

	if err := u.tokenizer.Scan(ctx, r, emit); err != nil {
		return nil, err
	}
	return table, nil
}

// Run reads req.InputPath, counts tokens and atomically writes the report to
// req.OutputPath. Nothing is written at OutputPath when Run fails.
func (u *CountUseCase) Run(ctx context.Context, req CountRequest) (*CountResult, error) {
	start := time.Now()

	if !req.Mode.Valid() {
		return nil, &domain.Error{Kind: domain.InvalidMode, Path: req.InputPath, Err: fmt.Errorf("mode %d is not 1 (word) or 2 (twogram)", int(req.Mode))}
	}

	f, err := openInput(req.InputPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	hasher := sha256.New()
	table, err := u.Count(ctx, req.Mode, io.TeeReader(f, hasher))
	if err != nil {
		return nil, classifyReadError(req.InputPath, err)
	}

	checksum, err := u.writer.WriteFile(req.OutputPath, table)
	if err != nil {
		return nil, err
	}

	if req.Mirror != nil {
		if err := u.writer.Write(req.Mirror, table); err != nil {
			u.logger.Warn("Failed to mirror report", zap.Error(err))
		}
	}

	result := &CountResult{
		Mode:      req.Mode,
		Input:     req.InputPath,
		Output:    req.OutputPath,
		Total:     table.Total(),
		Unique:    table.Len(),
		Checksum:  checksum,
		InputHash: hex.EncodeToString(hasher.Sum(nil)),
		Duration:  time.Since(start),
	}

	u.logger.Debug("Report written",
		zap.Stringer("mode", req.Mode),
		zap.String("input", req.InputPath),
		zap.String("output", req.OutputPath),
		zap.Int("total", result.Total),
		zap.Int("unique", result.Unique),
		zap.Duration("took", result.Duration))

	return result, nil
}

func openInput(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &domain.Error{Kind: domain.InputNotFound, Path: path, Err: unwrapPathError(err)}
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, &domain.Error{Kind: domain.InputNotFound, Path: path, Err: unwrapPathError(err)}
	}
	if info.IsDir() {
		f.Close()
		return nil, &domain.Error{Kind: domain.InputNotFound, Path: path, Err: errors.New("is a directory")}
	}

	return f, nil
}

// classifyReadError attaches the input path to tokenizer failures. Context
// errors pass through; any other read failure means the input is unreadable.
func classifyReadError(path string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var de *domain.Error
	if errors.As(err, &de) {
		if de.Path == "" {
			return &domain.Error{Kind: de.Kind, Path: path, Err: de.Err}
		}
		return de
	}

	return &domain.Error{Kind: domain.InputNotFound, Path: path, Err: unwrapPathError(err)}
}

// unwrapPathError drops the op and path from *os.PathError so the
// diagnostic names the path only once.
func unwrapPathError(err error) error {
	var pe *os.PathError
	if errors.As(err, &pe) {
		return pe.Err
	}
	return err
}

// HashFile returns the hex SHA-256 of the file at path.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
