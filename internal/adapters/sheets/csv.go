package sheets

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// FileClient implements Client over a local CSV file, so a roster sync can
// run without spreadsheet credentials. Cell updates are held in memory until
// Flush writes the file back.
type FileClient struct {
	path  string
	rows  [][]string
	dirty bool
}

// NewFileClient reads the CSV at path into memory.
func NewFileClient(path string) (*FileClient, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open roster CSV: %w", err)
	}
	defer f.Close()

	c, err := NewFileClientFromReader(f)
	if err != nil {
		return nil, err
	}
	c.path = path
	return c, nil
}

// NewFileClientFromReader builds an in-memory client from a CSV stream.
// Used for uploaded rosters; Flush is a no-op without a backing path.
func NewFileClientFromReader(r io.Reader) (*FileClient, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse roster CSV: %w", err)
	}
	return &FileClient{rows: rows}, nil
}

// Rows returns all rows, header first.
func (c *FileClient) Rows(_ context.Context) ([][]string, error) {
	return c.rows, nil
}

// UpdateCell sets a 1-based cell, growing rows and columns as needed.
func (c *FileClient) UpdateCell(_ context.Context, row, col int, value string) error {
	if row < 1 || col < 1 {
		return fmt.Errorf("invalid cell coordinates %d,%d", row, col)
	}
	for len(c.rows) < row {
		c.rows = append(c.rows, nil)
	}
	r := c.rows[row-1]
	for len(r) < col {
		r = append(r, "")
	}
	r[col-1] = value
	c.rows[row-1] = r
	c.dirty = true
	return nil
}

// AppendHeaderColumn adds a header cell to row 1.
func (c *FileClient) AppendHeaderColumn(ctx context.Context, name string) (int, error) {
	col := 1
	if len(c.rows) > 0 {
		col = len(c.rows[0]) + 1
	}
	if err := c.UpdateCell(ctx, 1, col, name); err != nil {
		return 0, err
	}
	return col, nil
}

// Flush writes accumulated updates back to the source file. Rows are padded
// to the header width so the CSV stays rectangular.
func (c *FileClient) Flush() error {
	if c.path == "" || !c.dirty {
		return nil
	}

	width := 0
	for _, r := range c.rows {
		if len(r) > width {
			width = len(r)
		}
	}
	out := make([][]string, len(c.rows))
	for i, r := range c.rows {
		padded := make([]string, width)
		copy(padded, r)
		out[i] = padded
	}

	f, err := os.Create(c.path)
	if err != nil {
		return fmt.Errorf("failed to rewrite roster CSV: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(out); err != nil {
		return fmt.Errorf("failed to write roster CSV: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush roster CSV: %w", err)
	}
	c.dirty = false
	return nil
}
