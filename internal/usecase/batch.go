package usecase

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"freq/internal/adapter/fs"
	"freq/internal/domain"
	"freq/internal/logging"
	"freq/internal/port"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// BatchOptions configures a batch pass.
type BatchOptions struct {
	Modes        []domain.Mode
	OutputDir    string
	InputSuffix  string
	OutputSuffix string
	Jobs         int
	Force        bool
	ConfigHash   string
}

// BatchUseCase runs the counter for every (mode, input) pair.
type BatchUseCase struct {
	counter *CountUseCase
	history port.RunStore
	opts    BatchOptions
	logger  *zap.Logger
}

// NewBatchUseCase creates a batch driver. history may be nil.
func NewBatchUseCase(counter *CountUseCase, history port.RunStore, opts BatchOptions, logger *zap.Logger) *BatchUseCase {
	if opts.Jobs < 1 {
		opts.Jobs = 1
	}
	if len(opts.Modes) == 0 {
		opts.Modes = []domain.Mode{domain.ModeWord, domain.ModeTwoGram}
	}
	return &BatchUseCase{
		counter: counter,
		history: history,
		opts:    opts,
		logger:  logging.OrNop(logger),
	}
}

// BatchOutcome is the result of one invocation in the batch.
type BatchOutcome struct {
	Mode    domain.Mode
	Input   string
	Output  string
	Skipped bool
	Result  *CountResult
	Err     error
}

// BatchResult contains the results of a batch pass.
type BatchResult struct {
	Outcomes  []BatchOutcome
	Succeeded int
	Failed    int
	Skipped   int
}

// ProgressFunc is called after each invocation finishes.
type ProgressFunc func(done, total int, current string)

// Run counts every input under every configured mode. A failing invocation
// is recorded and the pass continues; only cancellation aborts it.
// Outcomes are ordered mode first, then input, as given.
func (u *BatchUseCase) Run(ctx context.Context, inputs []port.FileInfo, progress ProgressFunc) (*BatchResult, error) {
	type job struct {
		mode   domain.Mode
		input  string
		output string
		clash  error
	}

	var jobs []job
	claimed := make(map[string]string)
	for _, mode := range u.opts.Modes {
		for _, in := range inputs {
			rel := in.Rel
			if rel == "" {
				rel = filepath.Base(in.Path)
			}
			j := job{
				mode:   mode,
				input:  in.Path,
				output: fs.OutputPath(u.opts.OutputDir, rel, mode, u.opts.InputSuffix, u.opts.OutputSuffix),
			}
			// The first job to claim a report path owns it.
			if owner, ok := claimed[j.output]; ok {
				j.clash = &domain.Error{
					Kind: domain.OutputWriteFailed,
					Path: j.output,
					Err:  fmt.Errorf("report already produced from %s", owner),
				}
			} else {
				claimed[j.output] = j.input
			}
			jobs = append(jobs, j)
		}
	}

	outcomes := make([]BatchOutcome, len(jobs))

	var mu sync.Mutex
	done := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(u.opts.Jobs)

	for i, j := range jobs {
		i, j := i, j
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			var outcome BatchOutcome
			if j.clash != nil {
				outcome = BatchOutcome{Mode: j.mode, Input: j.input, Output: j.output, Err: j.clash}
				u.logger.Warn("Report path collision", zap.String("input", j.input), zap.Error(j.clash))
			} else {
				outcome = u.runOne(gctx, j.mode, j.input, j.output)
			}
			outcomes[i] = outcome
			if isContextErr(outcome.Err) {
				return outcome.Err
			}

			mu.Lock()
			done++
			if progress != nil {
				progress(done, len(jobs), j.input)
			}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &BatchResult{Outcomes: outcomes}
	for _, o := range outcomes {
		switch {
		case o.Err != nil:
			result.Failed++
		case o.Skipped:
			result.Skipped++
		default:
			result.Succeeded++
		}
	}

	u.logger.Info("Batch finished",
		zap.Int("runs", len(outcomes)),
		zap.Int("succeeded", result.Succeeded),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", result.Failed))

	return result, nil
}

func (u *BatchUseCase) runOne(ctx context.Context, mode domain.Mode, input, output string) BatchOutcome {
	outcome := BatchOutcome{Mode: mode, Input: input, Output: output}

	if u.unchanged(mode, input, output) {
		u.logger.Debug("Skipping unchanged input", zap.Stringer("mode", mode), zap.String("input", input))
		outcome.Skipped = true
		return outcome
	}

	started := time.Now()
	res, err := u.counter.Run(ctx, CountRequest{Mode: mode, InputPath: input, OutputPath: output})
	if isContextErr(err) {
		outcome.Err = err
		return outcome
	}

	outcome.Result = res
	outcome.Err = err
	if err != nil {
		u.logger.Warn("Count failed", zap.Stringer("mode", mode), zap.String("input", input), zap.Error(err))
	}

	u.record(mode, input, output, started, res, err)
	return outcome
}

// unchanged reports whether the latest recorded run for (mode, input) is
// still valid: same input bytes, same config, and the report untouched.
func (u *BatchUseCase) unchanged(mode domain.Mode, input, output string) bool {
	if u.history == nil || u.opts.Force {
		return false
	}

	rec, ok, err := u.history.Latest(mode, input)
	if err != nil {
		u.logger.Warn("Failed to read run history", zap.Error(err))
		return false
	}
	if !ok || !rec.Succeeded() || rec.Output != output || rec.ConfigHash != u.opts.ConfigHash {
		return false
	}

	inHash, err := HashFile(input)
	if err != nil || inHash != rec.InputHash {
		return false
	}
	outHash, err := HashFile(output)
	return err == nil && outHash == rec.Checksum
}

func (u *BatchUseCase) record(mode domain.Mode, input, output string, started time.Time, res *CountResult, runErr error) {
	if u.history == nil {
		return
	}

	rec := &domain.RunRecord{
		Mode:       mode,
		Input:      input,
		Output:     output,
		ConfigHash: u.opts.ConfigHash,
		StartedAt:  started,
		Duration:   time.Since(started),
	}
	if res != nil {
		rec.InputHash = res.InputHash
		rec.Checksum = res.Checksum
		rec.Total = res.Total
		rec.Unique = res.Unique
	}
	if runErr != nil {
		rec.Error = runErr.Error()
		rec.ExitCode = ExitCode(runErr)
	}

	if err := u.history.PutRun(rec); err != nil {
		u.logger.Warn("Failed to record run", zap.String("input", input), zap.Error(err))
	}
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
