package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"workshoppass/internal/adapters/sheets"
	"workshoppass/internal/adapters/storage/roster"
	"workshoppass/internal/domain/slug"
	"workshoppass/internal/domain/student"
)

// Spreadsheet column contract. Header matching is case-insensitive but the
// canonical names are written when columns have to be added.
const (
	ColumnName    = "Name"
	ColumnSlug    = "Slug"
	ColumnPassURL = "Pass URL"
)

// Per-row sync outcomes.
const (
	RowUpdated     = "updated"
	RowWouldUpdate = "would_update"
	RowUnchanged   = "unchanged"
)

// SyncRosterInput carries sync options.
// PRE: BaseURL is non-empty; WorkshopColumn optionally names the passthrough
// topic column (e.g. "AI BOOTCAMP").
// POST: Slug and Pass URL cells are written back for every named row; writes
// are skipped entirely when DryRun=true.
// INVARIANT: Rows with a blank Name are skipped, never failed.
type SyncRosterInput struct {
	BaseURL        string
	WorkshopColumn string
	DryRun         bool
}

// SyncRosterDeps holds external dependencies for the sync orchestrator.
type SyncRosterDeps struct {
	Sheet       sheets.Client
	RosterStore roster.Store  // optional: nil skips persistence
	GenerateID  func() string // optional: defaults to uuid.NewString
}

// SyncRosterRow describes the outcome for a single sheet row.
type SyncRosterRow struct {
	Row     int // 1-based sheet row
	Name    string
	Slug    string
	PassURL string
	Status  string
}

// SyncRosterResult holds aggregate counts and the computed roster.
type SyncRosterResult struct {
	Processed int
	Updated   int
	DryRun    bool
	Rows      []SyncRosterRow
	Records   []student.Record
}

// SyncRosterValidationError reports a missing column or bad input, with
// enough detail to identify the offender.
type SyncRosterValidationError struct {
	Message string
}

func (e *SyncRosterValidationError) Error() string { return e.Message }

// ExecuteSyncRoster reads the sheet, derives a slug and pass URL per row,
// and writes changed cells back.
// PRE: deps.Sheet is an opened sheet; header row is row 1
// POST: Only cells whose value actually changes are written; DryRun writes
// nothing, including missing headers; the full computed roster is returned
// for export regardless of DryRun
// INVARIANT: Slug derivation is total, so per-row processing never fails;
// any error returned is a sheet access failure and aborts the run
func ExecuteSyncRoster(ctx context.Context, input SyncRosterInput, deps SyncRosterDeps) (SyncRosterResult, error) {
	if strings.TrimSpace(input.BaseURL) == "" {
		return SyncRosterResult{}, &SyncRosterValidationError{Message: "base URL is required"}
	}
	genID := deps.GenerateID
	if genID == nil {
		genID = uuid.NewString
	}

	rows, err := deps.Sheet.Rows(ctx)
	if err != nil {
		return SyncRosterResult{}, err
	}
	if len(rows) == 0 {
		slog.Info("sync_roster_empty_sheet")
		return SyncRosterResult{DryRun: input.DryRun}, nil
	}

	header := rows[0]
	colIdx := make(map[string]int, len(header))
	for i, h := range header {
		colIdx[strings.ToLower(strings.TrimSpace(h))] = i + 1
	}
	findCol := func(name string) int { return colIdx[strings.ToLower(name)] }

	nameCol := findCol(ColumnName)
	if nameCol == 0 {
		return SyncRosterResult{}, &SyncRosterValidationError{
			Message: fmt.Sprintf("required column %q not found in sheet", ColumnName),
		}
	}
	workshopCol := 0
	if input.WorkshopColumn != "" {
		workshopCol = findCol(input.WorkshopColumn)
	}

	// Missing output columns are appended, except in dry-run where the
	// sheet must come through untouched; virtual indexes past the header
	// keep the comparison logic uniform.
	slugCol := findCol(ColumnSlug)
	passURLCol := findCol(ColumnPassURL)
	nextCol := len(header) + 1
	for _, missing := range []struct {
		name string
		col  *int
	}{
		{ColumnSlug, &slugCol},
		{ColumnPassURL, &passURLCol},
	} {
		if *missing.col != 0 {
			continue
		}
		if input.DryRun {
			*missing.col = nextCol
			nextCol++
			continue
		}
		col, err := deps.Sheet.AppendHeaderColumn(ctx, missing.name)
		if err != nil {
			return SyncRosterResult{}, fmt.Errorf("failed to add column %q: %w", missing.name, err)
		}
		*missing.col = col
		nextCol = col + 1
	}

	cell := func(row []string, col int) string {
		if col >= 1 && col <= len(row) {
			return strings.TrimSpace(row[col-1])
		}
		return ""
	}

	result := SyncRosterResult{DryRun: input.DryRun}
	baseURL := strings.TrimSuffix(input.BaseURL, "/")

	for i, row := range rows[1:] {
		sheetRow := i + 2
		name := cell(row, nameCol)
		if name == "" {
			continue
		}

		s := slug.Derive(name)
		passURL := baseURL + "/pass/" + s
		changed := cell(row, slugCol) != s || cell(row, passURLCol) != passURL

		status := RowUnchanged
		if changed {
			status = RowWouldUpdate
			if !input.DryRun {
				if cell(row, slugCol) != s {
					if err := deps.Sheet.UpdateCell(ctx, sheetRow, slugCol, s); err != nil {
						return SyncRosterResult{}, fmt.Errorf("failed to write slug for row %d: %w", sheetRow, err)
					}
				}
				if cell(row, passURLCol) != passURL {
					if err := deps.Sheet.UpdateCell(ctx, sheetRow, passURLCol, passURL); err != nil {
						return SyncRosterResult{}, fmt.Errorf("failed to write pass URL for row %d: %w", sheetRow, err)
					}
				}
				status = RowUpdated
				result.Updated++
			}
		}

		rec := student.Record{
			ID:       genID(),
			Name:     name,
			Slug:     s,
			Workshop: cell(row, workshopCol),
			PassURL:  passURL,
		}
		if deps.RosterStore != nil && !input.DryRun {
			if err := deps.RosterStore.Save(ctx, rec); err != nil {
				return SyncRosterResult{}, fmt.Errorf("failed to persist record for row %d: %w", sheetRow, err)
			}
		}

		result.Processed++
		result.Rows = append(result.Rows, SyncRosterRow{
			Row: sheetRow, Name: name, Slug: s, PassURL: passURL, Status: status,
		})
		result.Records = append(result.Records, rec)
	}

	slog.Info("sync_roster_done",
		"processed", result.Processed,
		"updated", result.Updated,
		"dry_run", input.DryRun,
	)
	return result, nil
}
