package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// GoogleClient implements Client against the Google Sheets API using a
// service account credentials file. The sheet must be shared with the
// service account's email address.
type GoogleClient struct {
	svc           *gsheets.Service
	spreadsheetID string
	worksheet     string
}

// NewGoogleClient authenticates and opens the given worksheet.
// PRE: credentialsPath points at a service account JSON file; sheetRef is a
// spreadsheet URL or bare spreadsheet ID
// POST: Returns a client bound to the named worksheet, or the first worksheet
// when name is empty
func NewGoogleClient(ctx context.Context, credentialsPath, sheetRef, worksheet string) (*GoogleClient, error) {
	svc, err := gsheets.NewService(ctx,
		option.WithCredentialsFile(credentialsPath),
		option.WithScopes(gsheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuth, err)
	}

	id := ExtractSpreadsheetID(sheetRef)
	meta, err := svc.Spreadsheets.Get(id).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet %q: %w", sheetRef, err)
	}
	if len(meta.Sheets) == 0 {
		return nil, fmt.Errorf("%w: spreadsheet %q has no worksheets", ErrWorksheetNotFound, sheetRef)
	}

	if worksheet == "" {
		worksheet = meta.Sheets[0].Properties.Title
	} else {
		found := false
		for _, s := range meta.Sheets {
			if s.Properties.Title == worksheet {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: %q", ErrWorksheetNotFound, worksheet)
		}
	}

	slog.Info("sheets_opened", "spreadsheet_id", id, "worksheet", worksheet)
	return &GoogleClient{svc: svc, spreadsheetID: id, worksheet: worksheet}, nil
}

// Rows returns all values of the worksheet as strings, header row first.
func (c *GoogleClient) Rows(ctx context.Context) ([][]string, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, c.worksheet).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read worksheet %q: %w", c.worksheet, err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, 0, len(raw))
		for _, cell := range raw {
			row = append(row, fmt.Sprint(cell))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// UpdateCell writes a single cell using RAW input (no formula parsing).
func (c *GoogleClient) UpdateCell(ctx context.Context, row, col int, value string) error {
	ref := fmt.Sprintf("%s!%s%d", c.worksheet, columnLetter(col), row)
	vr := &gsheets.ValueRange{Values: [][]interface{}{{value}}}
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, ref, vr).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to update cell %s: %w", ref, err)
	}
	return nil
}

// AppendHeaderColumn writes a new header after the last populated one.
func (c *GoogleClient) AppendHeaderColumn(ctx context.Context, name string) (int, error) {
	rows, err := c.Rows(ctx)
	if err != nil {
		return 0, err
	}
	col := 1
	if len(rows) > 0 {
		col = len(rows[0]) + 1
	}
	if err := c.UpdateCell(ctx, 1, col, name); err != nil {
		return 0, err
	}
	slog.Info("sheets_column_added", "name", name, "column", col)
	return col, nil
}

// ExtractSpreadsheetID pulls the spreadsheet ID out of a full Sheets URL
// (…/spreadsheets/d/<ID>/edit) or returns the input unchanged when it is
// already a bare ID.
func ExtractSpreadsheetID(ref string) string {
	const marker = "/d/"
	i := strings.Index(ref, marker)
	if i < 0 {
		return ref
	}
	rest := ref[i+len(marker):]
	if j := strings.IndexAny(rest, "/?#"); j >= 0 {
		rest = rest[:j]
	}
	return rest
}

// columnLetter converts a 1-based column index to A1 notation (1 -> A,
// 27 -> AA).
func columnLetter(col int) string {
	var b []byte
	for col > 0 {
		col--
		b = append([]byte{byte('A' + col%26)}, b...)
		col /= 26
	}
	return string(b)
}
