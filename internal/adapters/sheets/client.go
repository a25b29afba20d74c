package sheets

import (
	"context"
	"errors"
)

// Adapter errors. Sync treats all of these as fatal: no partial writes are
// attempted once the source cannot be read reliably.
var (
	ErrAuth              = errors.New("spreadsheet authentication failed")
	ErrWorksheetNotFound = errors.New("worksheet not found")
)

// Client is the port the roster sync reads from and writes back to.
// Row and column coordinates are 1-based, matching spreadsheet conventions;
// row 1 is the header row.
type Client interface {
	// Rows returns every row of the sheet, header first. An empty sheet
	// returns an empty slice, not an error.
	Rows(ctx context.Context) ([][]string, error)

	// UpdateCell writes value into the given 1-based cell.
	UpdateCell(ctx context.Context, row, col int, value string) error

	// AppendHeaderColumn adds a new column header to row 1 and returns its
	// 1-based column index.
	AppendHeaderColumn(ctx context.Context, name string) (int, error)
}
