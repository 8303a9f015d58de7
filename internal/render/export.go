package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/usestring/recall-stream/pkg/types"
)

// ErrExportNotImplemented is returned for every export request.
var ErrExportNotImplemented = errors.New("export is not implemented")

// ExportFormat is a requested export file type.
type ExportFormat string

// Offered export formats.
const (
	ExportPDF  ExportFormat = "pdf"
	ExportCSV  ExportFormat = "csv"
	ExportXLSX ExportFormat = "xlsx"
)

// ParseExportFormat accepts pdf, csv or xlsx in any case.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch f := ExportFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case ExportPDF, ExportCSV, ExportXLSX:
		return f, nil
	default:
		return "", fmt.Errorf("unknown export format %q (valid: pdf, csv, xlsx)", s)
	}
}

// Export would write snap in format f. Conversion is not implemented; the
// backend's own CSV download link is the supported export path.
func Export(w io.Writer, snap types.Snapshot, f ExportFormat) error {
	return fmt.Errorf("exporting %s: %w", f, ErrExportNotImplemented)
}
