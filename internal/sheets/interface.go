// Package sheets is the port to the spreadsheet holding tournaments and
// brackets. Implementations return a tab as a rectangular (possibly ragged)
// array of strings; the ingest layer owns all interpretation.
package sheets

import "errors"

var (
	// ErrTabNotFound means the spreadsheet exists but has no tab with the
	// requested name.
	ErrTabNotFound = errors.New("tab not found")
	// ErrSheetNotFound means the spreadsheet itself could not be located.
	ErrSheetNotFound = errors.New("spreadsheet not found")
)

// Source reads raw rows from a spreadsheet tab. Transport failures are
// returned as ordinary wrapped errors, distinct from the two sentinels above.
type Source interface {
	GetRows(spreadsheetID, tab string) ([][]string, error)
}
