// ingest/errors.go
package ingest

import "fmt"

// FormatError means the file's header row matched no known export format.
// Fatal for the whole file; reported before any row is processed.
type FormatError struct {
	Missing string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("unrecognized file format: missing required column %q", e.Missing)
}

// RowError records a single row that failed coercion. Recoverable: the
// row is dropped and parsing continues.
type RowError struct {
	Line   int // 1-based, header is line 1
	Reason string
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Line, e.Reason)
}
