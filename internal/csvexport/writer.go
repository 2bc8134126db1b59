// Package csvexport writes a processed batch as CSV for download.
package csvexport

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"

	"champdoc/internal/domain"
	"champdoc/internal/render"
)

// BOM is the UTF-8 byte order mark, written first for Excel compatibility
// on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row.
var columns = []string{
	"Document Name",
	"Status",
	"Document Type",
	"Valid",
	"Pages",
	"File Size (bytes)",
	"Missing Codes",
	"Invalid Codes",
	"Notes",
	"Error",
	"Processed At",
}

// Writer wraps csv.Writer for exporting session entries as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteSession converts each entry of a session to a CSV row and writes it,
// preserving upload order.
func (w *Writer) WriteSession(s *domain.Session) error {
	for i := range s.Entries {
		row := entryToRow(&s.Entries[i])
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// entryToRow converts a single session entry to a string slice. Failed
// entries carry their error message and leave the analysis columns empty.
func entryToRow(e *domain.SessionEntry) []string {
	row := make([]string, len(columns))

	row[0] = e.FileName
	row[1] = string(e.Status)
	row[2] = string(domain.DocumentTypeUnknown)
	row[4] = strconv.Itoa(e.PageCount)
	row[5] = strconv.FormatInt(e.FileSize, 10)
	row[9] = e.Error
	row[10] = e.ProcessedAt.Format(time.RFC3339)

	if e.Result == nil {
		return row
	}

	r := e.Result
	row[2] = render.TypeLabel(r.DocumentType)
	row[3] = strconv.FormatBool(!r.HasIssues)
	row[6] = strings.Join(r.MissingCodes, "; ")

	invalid := make([]string, 0, len(r.InvalidCodes))
	for _, c := range r.InvalidCodes {
		if c.Reason != "" {
			invalid = append(invalid, c.Code+" ("+c.Reason+")")
		} else {
			invalid = append(invalid, c.Code)
		}
	}
	row[7] = strings.Join(invalid, "; ")
	row[8] = r.Notes

	return row
}
