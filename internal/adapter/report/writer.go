package report

import (
	"bufio"
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	"freq/internal/domain"
)

// Format selects the report layout.
type Format string

const (
	// FormatTSV writes one "<token>\t<count>" line per entry.
	FormatTSV Format = "tsv"
	// FormatTable writes the totals header followed by right-aligned counts.
	FormatTable Format = "table"
)

// ParseFormat validates a format name from config.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatTSV, "":
		return FormatTSV, nil
	case FormatTable:
		return FormatTable, nil
	default:
		return "", fmt.Errorf("unknown report format %q (want tsv or table)", s)
	}
}

// Writer serializes frequency tables.
type Writer struct {
	format Format
}

// NewWriter creates a Writer for the given format.
func NewWriter(format Format) *Writer {
	if format == "" {
		format = FormatTSV
	}
	return &Writer{format: format}
}

// Write renders table to out in sorted order.
func (w *Writer) Write(out io.Writer, table *domain.FrequencyTable) error {
	bw := bufio.NewWriter(out)
	freqs := table.Sorted()

	switch w.format {
	case FormatTable:
		fmt.Fprintf(bw, "%6d total items\n", table.Total())
		fmt.Fprintf(bw, "%6d unique items\n\n", table.Len())
		for _, f := range freqs {
			fmt.Fprintf(bw, "%6d %s\n", f.Count, f.Token)
		}
	default:
		for _, f := range freqs {
			fmt.Fprintf(bw, "%s\t%d\n", f.Token, f.Count)
		}
	}

	return bw.Flush()
}

// Render returns the serialized report.
func (w *Writer) Render(table *domain.FrequencyTable) []byte {
	var buf bytes.Buffer
	// bytes.Buffer writes do not fail.
	_ = w.Write(&buf, table)
	return buf.Bytes()
}

// WriteFile atomically replaces path with the rendered report and returns
// the hex SHA-256 of the bytes written.
func (w *Writer) WriteFile(path string, table *domain.FrequencyTable) (string, error) {
	data := w.Render(table)
	if err := AtomicWriteFile(path, data, 0644); err != nil {
		return "", &domain.Error{Kind: domain.OutputWriteFailed, Path: path, Err: err}
	}
	return Checksum(data), nil
}

// Checksum returns the hex SHA-256 of data.
func Checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
