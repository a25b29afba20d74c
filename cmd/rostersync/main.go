package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"workshoppass/internal/adapters/sheets"
	rosterStore "workshoppass/internal/adapters/storage/roster"
	"workshoppass/internal/application/orchestrators"
)

var (
	flagSheet       string
	flagWorksheet   string
	flagCredentials string
	flagCSV         string
	flagBaseURL     string
	flagWorkshopCol string
	flagDryRun      bool
	flagExportJSON  string
)

var rootCmd = &cobra.Command{
	Use:   "rostersync",
	Short: "Fill slug and pass URL columns on a workshop roster",
	Long: `rostersync reads a roster (a Google Sheet or a CSV export), derives a
URL-safe slug for every attendee name, writes the slug and pass URL back into
the roster, and optionally exports the records as JSON.

With --dry-run the roster is left untouched and the changes that would be
made are reported instead.`,
	SilenceUsage: true,
	RunE:         runSync,
}

func init() {
	rootCmd.Flags().StringVar(&flagSheet, "sheet", "", "Google Sheet URL or spreadsheet ID")
	rootCmd.Flags().StringVar(&flagWorksheet, "worksheet", "", "worksheet title (default: first sheet)")
	rootCmd.Flags().StringVar(&flagCredentials, "credentials", "credentials.json", "service account credentials file")
	rootCmd.Flags().StringVar(&flagCSV, "csv", "", "sync a local CSV export instead of a Google Sheet")
	rootCmd.Flags().StringVar(&flagBaseURL, "base-url", "", "base URL for minted pass links (required)")
	rootCmd.Flags().StringVar(&flagWorkshopCol, "workshop-column", "", "column holding the workshop name")
	rootCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "report changes without writing anything")
	rootCmd.Flags().StringVar(&flagExportJSON, "export-json", "", "write synced records to this JSON file")
	rootCmd.MarkFlagRequired("base-url")
}

func runSync(cmd *cobra.Command, args []string) error {
	if flagSheet == "" && flagCSV == "" {
		return errors.New("either --sheet or --csv is required")
	}
	if flagSheet != "" && flagCSV != "" {
		return errors.New("--sheet and --csv are mutually exclusive")
	}

	ctx := cmd.Context()

	var client sheets.Client
	var fileClient *sheets.FileClient
	if flagCSV != "" {
		fc, err := sheets.NewFileClient(flagCSV)
		if err != nil {
			return fmt.Errorf("open roster CSV: %w", err)
		}
		client = fc
		fileClient = fc
	} else {
		gc, err := sheets.NewGoogleClient(ctx, flagCredentials, flagSheet, flagWorksheet)
		if err != nil {
			return fmt.Errorf("open roster sheet: %w", err)
		}
		client = gc
	}

	result, err := orchestrators.ExecuteSyncRoster(ctx,
		orchestrators.SyncRosterInput{
			BaseURL:        flagBaseURL,
			WorkshopColumn: flagWorkshopCol,
			DryRun:         flagDryRun,
		},
		orchestrators.SyncRosterDeps{Sheet: client})
	if err != nil {
		return err
	}

	// CSV updates stay in memory until flushed
	if fileClient != nil && !flagDryRun {
		if err := fileClient.Flush(); err != nil {
			return fmt.Errorf("write roster CSV: %w", err)
		}
	}

	for _, row := range result.Rows {
		switch row.Status {
		case orchestrators.RowUpdated:
			fmt.Printf("row %d: %s -> %s (%s)\n", row.Row, row.Name, row.Slug, row.PassURL)
		case orchestrators.RowWouldUpdate:
			fmt.Printf("row %d: %s -> %s (%s) [dry run]\n", row.Row, row.Name, row.Slug, row.PassURL)
		}
	}
	if result.DryRun {
		fmt.Printf("dry run: %d rows processed, %d would change\n", result.Processed, result.Updated)
	} else {
		fmt.Printf("%d rows processed, %d updated\n", result.Processed, result.Updated)
	}

	if flagExportJSON != "" && !flagDryRun {
		f, err := os.Create(flagExportJSON)
		if err != nil {
			return fmt.Errorf("create JSON export: %w", err)
		}
		defer f.Close()
		if err := rosterStore.WriteJSON(f, result.Records); err != nil {
			return fmt.Errorf("write JSON export: %w", err)
		}
		slog.Info("roster_exported", "path", flagExportJSON, "records", len(result.Records))
	}

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
