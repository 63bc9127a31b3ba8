package sheets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// GoogleSource reads tabs through the Google Sheets API. This is the
// production backend.
type GoogleSource struct {
	svc *sheets.Service
}

var _ Source = (*GoogleSource)(nil)

// NewGoogleSource builds a read-only Sheets client from a service-account
// credentials file.
func NewGoogleSource(ctx context.Context, credentialsFile string) (*GoogleSource, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsReadonlyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &GoogleSource{svc: svc}, nil
}

// GetRows fetches one tab of the spreadsheet as strings.
func (g *GoogleSource) GetRows(spreadsheetID, tab string) ([][]string, error) {
	log.Debug("Fetching sheet tab", "spreadsheetID", spreadsheetID, "tab", tab)
	resp, err := g.svc.Spreadsheets.Values.Get(spreadsheetID, tab).Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			switch {
			case apiErr.Code == 404:
				return nil, fmt.Errorf("spreadsheet %s: %w", spreadsheetID, ErrSheetNotFound)
			case apiErr.Code == 400 && strings.Contains(apiErr.Message, "Unable to parse range"):
				// The API reports an unknown tab as an unparseable range.
				return nil, fmt.Errorf("tab %s: %w", tab, ErrTabNotFound)
			}
		}
		return nil, fmt.Errorf("failed to fetch tab %s: %w", tab, err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, rawRow := range resp.Values {
		row := make([]string, len(rawRow))
		for c, v := range rawRow {
			row[c] = fmt.Sprint(v)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
