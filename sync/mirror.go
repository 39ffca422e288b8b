// ABOUTME: Mirror abstraction over the spreadsheet store
// ABOUTME: Implements range clear/write and sheet management against the Sheets API
package sync

import (
	"context"
	"fmt"

	"google.golang.org/api/sheets/v4"
)

// Mirror is the range-based surface the reconciler needs from the external
// store: list tabs, add tabs, clear a range, write rows, and cosmetically
// format headers.
type Mirror interface {
	SheetTitles(ctx context.Context) ([]string, error)
	AddSheets(ctx context.Context, titles []string) error
	Clear(ctx context.Context, readRange string) error
	Write(ctx context.Context, startCell string, values [][]string) error
	FormatHeaders(ctx context.Context, titles []string) error
}

type sheetsMirror struct {
	svc           *sheets.Service
	spreadsheetID string
}

// NewSheetsMirror wraps a Sheets service as a Mirror for one spreadsheet.
func NewSheetsMirror(svc *sheets.Service, spreadsheetID string) Mirror {
	return &sheetsMirror{svc: svc, spreadsheetID: spreadsheetID}
}

func (m *sheetsMirror) SheetTitles(ctx context.Context) ([]string, error) {
	spreadsheet, err := m.svc.Spreadsheets.Get(m.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get spreadsheet: %w", err)
	}
	var titles []string
	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil {
			titles = append(titles, sheet.Properties.Title)
		}
	}
	return titles, nil
}

func (m *sheetsMirror) AddSheets(ctx context.Context, titles []string) error {
	if len(titles) == 0 {
		return nil
	}
	var requests []*sheets.Request
	for _, title := range titles {
		requests = append(requests, &sheets.Request{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: title},
			},
		})
	}
	_, err := m.svc.Spreadsheets.BatchUpdate(m.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to add sheets: %w", err)
	}
	return nil
}

func (m *sheetsMirror) Clear(ctx context.Context, readRange string) error {
	_, err := m.svc.Spreadsheets.Values.Clear(m.spreadsheetID, readRange, &sheets.ClearValuesRequest{}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to clear %s: %w", readRange, err)
	}
	return nil
}

func (m *sheetsMirror) Write(ctx context.Context, startCell string, values [][]string) error {
	converted := make([][]interface{}, len(values))
	for i, row := range values {
		cells := make([]interface{}, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		converted[i] = cells
	}

	_, err := m.svc.Spreadsheets.Values.Update(m.spreadsheetID, startCell, &sheets.ValueRange{
		Values: converted,
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", startCell, err)
	}
	return nil
}

// FormatHeaders bolds and colors the first row of each named sheet.
func (m *sheetsMirror) FormatHeaders(ctx context.Context, titles []string) error {
	spreadsheet, err := m.svc.Spreadsheets.Get(m.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to get spreadsheet: %w", err)
	}

	wanted := make(map[string]bool, len(titles))
	for _, t := range titles {
		wanted[t] = true
	}

	var requests []*sheets.Request
	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties == nil || !wanted[sheet.Properties.Title] {
			continue
		}
		requests = append(requests, &sheets.Request{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:       sheet.Properties.SheetId,
					StartRowIndex: 0,
					EndRowIndex:   1,
				},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						TextFormat: &sheets.TextFormat{Bold: true},
						BackgroundColor: &sheets.Color{
							Red:   0.106,
							Green: 0.176,
							Blue:  0.431,
						},
						HorizontalAlignment: "CENTER",
					},
				},
				Fields: "userEnteredFormat(textFormat,backgroundColor,horizontalAlignment)",
			},
		})
	}
	if len(requests) == 0 {
		return nil
	}

	_, err = m.svc.Spreadsheets.BatchUpdate(m.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to format headers: %w", err)
	}
	return nil
}
