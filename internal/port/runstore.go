package port

import "freq/internal/domain"

// RunStore keeps the history of batch runs.
type RunStore interface {
	PutRun(rec *domain.RunRecord) error

	Latest(mode domain.Mode, input string) (domain.RunRecord, bool, error)

	ListRuns(limit int) ([]domain.RunRecord, error)
}
