package port

import (
	"io"

	"freq/internal/domain"
)

// ReportWriter serializes a frequency table.
type ReportWriter interface {
	Write(w io.Writer, table *domain.FrequencyTable) error

	Render(table *domain.FrequencyTable) []byte

	// WriteFile replaces path atomically and returns the report checksum.
	WriteFile(path string, table *domain.FrequencyTable) (string, error)
}
