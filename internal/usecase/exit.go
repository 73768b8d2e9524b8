package usecase

import (
	"errors"
	"fmt"

	"freq/internal/domain"
)

// ExitFailedRuns is returned when a batch finished with failed invocations.
const ExitFailedRuns = 4

// BatchFailedError reports how many batch invocations failed.
type BatchFailedError struct {
	Failed int
	Total  int
}

func (e *BatchFailedError) Error() string {
	return fmt.Sprintf("%d of %d runs failed", e.Failed, e.Total)
}

// ExitCode maps err to a process exit status: 0 for nil, the domain code
// for counting failures, the preflight code for environment checks, and 1
// for anything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var de *domain.Error
	if errors.As(err, &de) {
		return de.ExitCode()
	}
	var pe *PreflightError
	if errors.As(err, &pe) {
		return pe.ExitCode()
	}
	var be *BatchFailedError
	if errors.As(err, &be) {
		return ExitFailedRuns
	}
	return 1
}
