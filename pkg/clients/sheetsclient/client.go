// Package sheetsclient wraps the Google Sheets API calls the signup store
// needs: full-tab reads, appends, in-place row updates, and row deletion.
package sheetsclient

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/samuelmholley1/ukiahumc-signups/pkg/utils"
)

// Client wraps the Google Sheets API client.
type Client struct {
	service *sheets.Service
}

// NewClient creates a Sheets client authenticated with a service account
// credentials file.
func NewClient(ctx context.Context, credentialsFile string) (*Client, error) {
	ts, err := utils.TokenSource(ctx, credentialsFile, "", utils.ScopeSheets)
	if err != nil {
		return nil, fmt.Errorf("failed to build token source: %w", err)
	}

	service, err := sheets.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Client{service: service}, nil
}

// Service returns the underlying sheets service for direct API access.
func (c *Client) Service() *sheets.Service {
	return c.service
}

// GetValues reads all values from a spreadsheet range.
func (c *Client) GetValues(spreadsheetID, sheetRange string) ([][]interface{}, error) {
	resp, err := c.service.Spreadsheets.Values.Get(spreadsheetID, sheetRange).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get values: %w", err)
	}

	return resp.Values, nil
}

// AppendRow appends a single row to the end of a sheet.
func (c *Client) AppendRow(spreadsheetID, sheetRange string, row []interface{}) error {
	valueRange := &sheets.ValueRange{
		Values: [][]interface{}{row},
	}

	_, err := c.service.Spreadsheets.Values.Append(spreadsheetID, sheetRange, valueRange).
		ValueInputOption("RAW").
		Do()
	if err != nil {
		return fmt.Errorf("failed to append row: %w", err)
	}

	return nil
}

// UpdateRow overwrites one row of a sheet. rowNumber is 1-based, as in the
// sheet UI.
func (c *Client) UpdateRow(spreadsheetID, tab string, rowNumber int, row []interface{}) error {
	writeRange := fmt.Sprintf("%s!A%d", tab, rowNumber)
	valueRange := &sheets.ValueRange{
		Values: [][]interface{}{row},
	}

	_, err := c.service.Spreadsheets.Values.Update(spreadsheetID, writeRange, valueRange).
		ValueInputOption("RAW").
		Do()
	if err != nil {
		return fmt.Errorf("failed to update row %d: %w", rowNumber, err)
	}

	return nil
}

// DeleteRow removes one row from a sheet. rowNumber is 1-based.
func (c *Client) DeleteRow(spreadsheetID, tab string, rowNumber int) error {
	sheetID, err := c.sheetID(spreadsheetID, tab)
	if err != nil {
		return err
	}

	req := &sheets.Request{
		DeleteDimension: &sheets.DeleteDimensionRequest{
			Range: &sheets.DimensionRange{
				SheetId:    sheetID,
				Dimension:  "ROWS",
				StartIndex: int64(rowNumber - 1),
				EndIndex:   int64(rowNumber),
			},
		},
	}

	batchUpdateRequest := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{req},
	}

	if _, err := c.service.Spreadsheets.BatchUpdate(spreadsheetID, batchUpdateRequest).Do(); err != nil {
		return fmt.Errorf("failed to delete row %d: %w", rowNumber, err)
	}

	return nil
}

// CreateSheet creates a new sheet/tab in the spreadsheet.
func (c *Client) CreateSheet(spreadsheetID, sheetTitle string) (int64, error) {
	req := &sheets.Request{
		AddSheet: &sheets.AddSheetRequest{
			Properties: &sheets.SheetProperties{
				Title: sheetTitle,
			},
		},
	}

	batchUpdateRequest := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{req},
	}

	resp, err := c.service.Spreadsheets.BatchUpdate(spreadsheetID, batchUpdateRequest).Do()
	if err != nil {
		return 0, fmt.Errorf("failed to create sheet: %w", err)
	}

	if len(resp.Replies) == 0 || resp.Replies[0].AddSheet == nil {
		return 0, fmt.Errorf("unexpected response from create sheet")
	}

	return resp.Replies[0].AddSheet.Properties.SheetId, nil
}

// sheetID resolves a tab title to its numeric sheet id.
func (c *Client) sheetID(spreadsheetID, tab string) (int64, error) {
	spreadsheet, err := c.service.Spreadsheets.Get(spreadsheetID).Do()
	if err != nil {
		return 0, fmt.Errorf("failed to get spreadsheet metadata: %w", err)
	}

	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties.Title == tab {
			return sheet.Properties.SheetId, nil
		}
	}

	return 0, fmt.Errorf("tab %q not found in spreadsheet", tab)
}
