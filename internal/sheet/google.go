package sheet

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// GoogleSheets reads and updates one spreadsheet through the Sheets v4 API.
// The service is created lazily on first use.
type GoogleSheets struct {
	spreadsheetID   string
	credentialsFile string
	clientOpts      []option.ClientOption

	mu  sync.Mutex
	svc *sheets.Service
}

// NewGoogleSheets returns a reader for spreadsheetID authenticated with the
// service-account key at credentialsFile. Extra client options are appended.
func NewGoogleSheets(spreadsheetID, credentialsFile string, opts ...option.ClientOption) *GoogleSheets {
	return &GoogleSheets{
		spreadsheetID:   spreadsheetID,
		credentialsFile: credentialsFile,
		clientOpts:      opts,
	}
}

func (g *GoogleSheets) init(ctx context.Context) (*sheets.Service, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.svc != nil {
		return g.svc, nil
	}

	opts := []option.ClientOption{option.WithScopes(sheets.SpreadsheetsScope)}
	if g.credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(g.credentialsFile))
	}
	opts = append(opts, g.clientOpts...)

	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	g.svc = svc
	return svc, nil
}

// Ping checks that the spreadsheet is reachable.
func (g *GoogleSheets) Ping(ctx context.Context) error {
	svc, err := g.init(ctx)
	if err != nil {
		return err
	}
	_, err = svc.Spreadsheets.Get(g.spreadsheetID).Fields("spreadsheetId").Context(ctx).Do()
	return err
}

// Categories returns every tab in sheet order with its header row.
func (g *GoogleSheets) Categories(ctx context.Context) ([]Tab, error) {
	svc, err := g.init(ctx)
	if err != nil {
		return nil, err
	}

	meta, err := svc.Spreadsheets.Get(g.spreadsheetID).
		Fields("sheets.properties(title,gridProperties.rowCount)").
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read spreadsheet metadata: %w", err)
	}

	tabs := make([]Tab, 0, len(meta.Sheets))
	for _, s := range meta.Sheets {
		if s.Properties == nil {
			continue
		}
		tab := Tab{Title: s.Properties.Title}
		if s.Properties.GridProperties != nil {
			tab.RowCount = int(s.Properties.GridProperties.RowCount)
		}

		resp, err := svc.Spreadsheets.Values.Get(g.spreadsheetID, HeaderRange(tab.Title)).Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("read header row of %q: %w", tab.Title, err)
		}
		if len(resp.Values) > 0 {
			tab.Headers = cellsToStrings(resp.Values[0])
		}

		slog.Debug("read sheet tab", "tab", tab.Title, "rows", tab.RowCount, "columns", len(tab.Headers))
		tabs = append(tabs, tab)
	}
	return tabs, nil
}

// Rows returns data rows 2 through rowCount of a tab. Trailing empty cells
// are omitted by the API, so rows may be shorter than the header.
func (g *GoogleSheets) Rows(ctx context.Context, title string, rowCount int) ([][]string, error) {
	if rowCount < 2 {
		return nil, nil
	}

	svc, err := g.init(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := svc.Spreadsheets.Values.Get(g.spreadsheetID, DataRange(title, rowCount)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read rows of %q: %w", title, err)
	}

	rows := make([][]string, len(resp.Values))
	for i, r := range resp.Values {
		rows[i] = cellsToStrings(r)
	}
	return rows, nil
}

// UpdateCell writes a raw value to one cell; column is 0-based, row 1-based.
func (g *GoogleSheets) UpdateCell(ctx context.Context, title string, column, row int, value string) error {
	svc, err := g.init(ctx)
	if err != nil {
		return err
	}

	vr := &sheets.ValueRange{Values: [][]interface{}{{value}}}
	_, err = svc.Spreadsheets.Values.Update(g.spreadsheetID, CellRange(title, column, row), vr).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("update %s: %w", CellRange(title, column, row), err)
	}
	return nil
}
