package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/laprovidence/livestock/internal/config"
	"github.com/laprovidence/livestock/internal/domain/models"
)

const snapshotRange = "Snapshots!A:H"

// Exporter defines the spreadsheet export operations supported by the Google
// Sheets adapter.
type Exporter interface {
	AppendSnapshot(ctx context.Context, snapshot models.HerdSnapshot) error
}

// GoogleSheetExporter implements Exporter using the official Google Sheets API.
type GoogleSheetExporter struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetExporter builds a Google Sheets backed exporter instance.
func NewGoogleSheetExporter(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (Exporter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetExporter{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// AppendSnapshot appends one row per daily herd snapshot.
func (e *GoogleSheetExporter) AppendSnapshot(ctx context.Context, snapshot models.HerdSnapshot) error {
	row := []interface{}{
		snapshot.Date.Format("2006-01-02"),
		snapshot.Population.TotalActive,
		snapshot.Population.Males,
		snapshot.Population.Females,
		snapshot.Population.Sold,
		snapshot.Finances.TotalRevenue,
		snapshot.Finances.TotalExpense,
		snapshot.Finances.Net,
	}

	payload := &sheetsapi.ValueRange{Values: [][]interface{}{row}}

	call := e.service.Spreadsheets.Values.Append(e.spreadsheetID, snapshotRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append snapshot row into range %s: %w", snapshotRange, err)
	}

	e.logger.Debug("snapshot row appended to sheet", zap.String("range", snapshotRange))
	return nil
}
