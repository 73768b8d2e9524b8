package domain

import "time"

// RunRecord is the history entry for one counting invocation made by the
// batch driver.
type RunRecord struct {
	ID         string        `json:"id"`
	Mode       Mode          `json:"mode"`
	Input      string        `json:"input"`
	Output     string        `json:"output"`
	InputHash  string        `json:"input_hash"`
	ConfigHash string        `json:"config_hash"`
	Checksum   string        `json:"checksum,omitempty"`
	Total      int           `json:"total"`
	Unique     int           `json:"unique"`
	Error      string        `json:"error,omitempty"`
	ExitCode   int           `json:"exit_code"`
	StartedAt  time.Time     `json:"started_at"`
	Duration   time.Duration `json:"duration"`
}

// Succeeded reports whether the run produced its report.
func (r RunRecord) Succeeded() bool {
	return r.Error == ""
}
