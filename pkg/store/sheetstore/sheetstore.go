// Package sheetstore implements the signup store on a Google Sheets
// spreadsheet: one tab per signup type, a header row naming the fields, one
// signup per data row. The header row drives the column mapping so tabs can
// carry extra columns without breaking reads.
package sheetstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/samuelmholley1/ukiahumc-signups/pkg/store"
)

// idColumn holds the record's primary key in each tab.
const idColumn = "id"

// Columns is the canonical header row written when a tab is initialized.
var Columns = []string{
	idColumn,
	store.FieldServiceDate,
	store.FieldDisplayDate,
	store.FieldName,
	store.FieldEmail,
	store.FieldPhone,
	store.FieldRole,
	store.FieldNotes,
	store.FieldAttendanceStatus,
	store.FieldSubmittedAt,
}

// SheetsClient is the slice of sheetsclient.Client the store uses.
type SheetsClient interface {
	GetValues(spreadsheetID, sheetRange string) ([][]interface{}, error)
	AppendRow(spreadsheetID, sheetRange string, row []interface{}) error
	UpdateRow(spreadsheetID, tab string, rowNumber int, row []interface{}) error
	DeleteRow(spreadsheetID, tab string, rowNumber int) error
}

// Store is the Google Sheets implementation of store.SignupStore.
type Store struct {
	client        SheetsClient
	spreadsheetID string
	tabs          map[store.SignupType]string
}

// New creates a store over one spreadsheet. tabs maps each signup type to
// its tab title.
func New(client SheetsClient, spreadsheetID string, tabs map[store.SignupType]string) *Store {
	return &Store{
		client:        client,
		spreadsheetID: spreadsheetID,
		tabs:          tabs,
	}
}

func (s *Store) tab(signupType store.SignupType) (string, error) {
	tab, ok := s.tabs[signupType]
	if !ok {
		return "", fmt.Errorf("no tab configured for signup type %q", signupType)
	}
	return tab, nil
}

// Create appends a new record and returns its generated id.
func (s *Store) Create(ctx context.Context, signupType store.SignupType, fields map[string]string) (string, error) {
	tab, err := s.tab(signupType)
	if err != nil {
		return "", err
	}

	headers, _, err := s.readTab(tab)
	if err != nil {
		return "", err
	}

	recordID := uuid.New().String()

	row := make([]interface{}, len(headers))
	for i, header := range headers {
		if header == idColumn {
			row[i] = recordID
			continue
		}
		row[i] = fields[header]
	}

	if err := s.client.AppendRow(s.spreadsheetID, tab, row); err != nil {
		return "", fmt.Errorf("failed to create record in %s: %w", tab, err)
	}

	return recordID, nil
}

// List returns every record in the signup type's tab.
func (s *Store) List(ctx context.Context, signupType store.SignupType) ([]store.Record, error) {
	tab, err := s.tab(signupType)
	if err != nil {
		return nil, err
	}

	headers, rows, err := s.readTab(tab)
	if err != nil {
		return nil, err
	}

	records := make([]store.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, recordFromRow(headers, row))
	}

	return records, nil
}

// Find returns the record with the given id, or store.ErrNotFound.
func (s *Store) Find(ctx context.Context, signupType store.SignupType, recordID string) (store.Record, error) {
	record, _, err := s.locate(signupType, recordID)
	return record, err
}

// Update merges fields into the existing record and rewrites its row.
func (s *Store) Update(ctx context.Context, signupType store.SignupType, recordID string, fields map[string]string) error {
	tab, err := s.tab(signupType)
	if err != nil {
		return err
	}

	record, rowNumber, err := s.locate(signupType, recordID)
	if err != nil {
		return err
	}

	for name, value := range fields {
		record.Fields[name] = value
	}

	headers, _, err := s.readTab(tab)
	if err != nil {
		return err
	}

	row := make([]interface{}, len(headers))
	for i, header := range headers {
		if header == idColumn {
			row[i] = record.ID
			continue
		}
		row[i] = record.Fields[header]
	}

	if err := s.client.UpdateRow(s.spreadsheetID, tab, rowNumber, row); err != nil {
		return fmt.Errorf("failed to update record %s: %w", recordID, err)
	}

	return nil
}

// Delete removes the record's row, or returns store.ErrNotFound.
func (s *Store) Delete(ctx context.Context, signupType store.SignupType, recordID string) error {
	tab, err := s.tab(signupType)
	if err != nil {
		return err
	}

	_, rowNumber, err := s.locate(signupType, recordID)
	if err != nil {
		return err
	}

	if err := s.client.DeleteRow(s.spreadsheetID, tab, rowNumber); err != nil {
		return fmt.Errorf("failed to delete record %s: %w", recordID, err)
	}

	return nil
}

// readTab fetches a tab and splits it into the header row and data rows.
func (s *Store) readTab(tab string) ([]string, [][]interface{}, error) {
	values, err := s.client.GetValues(s.spreadsheetID, tab)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read tab %s: %w", tab, err)
	}

	if len(values) == 0 {
		return nil, nil, fmt.Errorf("tab %s has no header row", tab)
	}

	headers := make([]string, len(values[0]))
	for i, cell := range values[0] {
		if header, ok := cell.(string); ok {
			headers[i] = header
		}
	}

	return headers, values[1:], nil
}

// locate finds a record and its 1-based sheet row number.
func (s *Store) locate(signupType store.SignupType, recordID string) (store.Record, int, error) {
	tab, err := s.tab(signupType)
	if err != nil {
		return store.Record{}, 0, err
	}

	headers, rows, err := s.readTab(tab)
	if err != nil {
		return store.Record{}, 0, err
	}

	for i, row := range rows {
		record := recordFromRow(headers, row)
		if record.ID == recordID {
			// Row 1 is the header, so data row i lives at sheet row i+2.
			return record, i + 2, nil
		}
	}

	return store.Record{}, 0, store.ErrNotFound
}

// recordFromRow maps one data row onto a Record using the header row.
func recordFromRow(headers []string, row []interface{}) store.Record {
	record := store.Record{Fields: make(map[string]string)}

	for i, header := range headers {
		if header == "" || i >= len(row) {
			continue
		}
		value, ok := row[i].(string)
		if !ok {
			value = fmt.Sprintf("%v", row[i])
		}
		if header == idColumn {
			record.ID = value
			continue
		}
		record.Fields[header] = value
	}

	return record
}
