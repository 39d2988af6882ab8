package sheetstore

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samuelmholley1/ukiahumc-signups/pkg/store"
)

// fakeSheets keeps tab contents in memory and mutates them the way the
// Sheets API would.
type fakeSheets struct {
	tabs   map[string][][]interface{}
	getErr error
}

func (f *fakeSheets) GetValues(spreadsheetID, sheetRange string) ([][]interface{}, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	values, ok := f.tabs[sheetRange]
	if !ok {
		return nil, fmt.Errorf("no tab %s", sheetRange)
	}
	return values, nil
}

func (f *fakeSheets) AppendRow(spreadsheetID, sheetRange string, row []interface{}) error {
	f.tabs[sheetRange] = append(f.tabs[sheetRange], row)
	return nil
}

func (f *fakeSheets) UpdateRow(spreadsheetID, tab string, rowNumber int, row []interface{}) error {
	f.tabs[tab][rowNumber-1] = row
	return nil
}

func (f *fakeSheets) DeleteRow(spreadsheetID, tab string, rowNumber int) error {
	values := f.tabs[tab]
	f.tabs[tab] = append(values[:rowNumber-1], values[rowNumber:]...)
	return nil
}

func headerRow() []interface{} {
	row := make([]interface{}, len(Columns))
	for i, c := range Columns {
		row[i] = c
	}
	return row
}

func newTestStore() (*Store, *fakeSheets) {
	sheets := &fakeSheets{
		tabs: map[string][][]interface{}{
			"Liturgists": {headerRow()},
		},
	}
	s := New(sheets, "sheet-1", map[store.SignupType]string{
		store.Liturgist: "Liturgists",
	})
	return s, sheets
}

func TestCreateAndList(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	id, err := s.Create(ctx, store.Liturgist, map[string]string{
		store.FieldServiceDate: "2025-12-07",
		store.FieldName:        "Pat Jones",
		store.FieldEmail:       "pat@example.com",
		store.FieldRole:        "liturgist",
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	records, err := s.List(ctx, store.Liturgist)
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, id, records[0].ID)
	assert.Equal(t, "2025-12-07", records[0].Field(store.FieldServiceDate))
	assert.Equal(t, "Pat Jones", records[0].Field(store.FieldName))
}

func TestFind_NotFound(t *testing.T) {
	s, _ := newTestStore()

	_, err := s.Find(context.Background(), store.Liturgist, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdate_MergesFields(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	id, err := s.Create(ctx, store.Liturgist, map[string]string{
		store.FieldServiceDate: "2025-12-07",
		store.FieldName:        "Pat Jones",
		store.FieldRole:        "volunteer2",
	})
	require.NoError(t, err)

	err = s.Update(ctx, store.Liturgist, id, map[string]string{
		store.FieldRole: "volunteer1",
	})
	require.NoError(t, err)

	record, err := s.Find(ctx, store.Liturgist, id)
	require.NoError(t, err)
	assert.Equal(t, "volunteer1", record.Field(store.FieldRole))
	// Untouched fields survive the merge.
	assert.Equal(t, "Pat Jones", record.Field(store.FieldName))
}

func TestDelete(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	id, err := s.Create(ctx, store.Liturgist, map[string]string{
		store.FieldServiceDate: "2025-12-07",
		store.FieldRole:        "liturgist",
	})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, store.Liturgist, id))

	_, err = s.Find(ctx, store.Liturgist, id)
	assert.ErrorIs(t, err, store.ErrNotFound)

	// Deleting again reports not found; the coordinator treats that as
	// idempotent success.
	err = s.Delete(ctx, store.Liturgist, id)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDelete_RowIndexing(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		id, err := s.Create(ctx, store.Liturgist, map[string]string{
			store.FieldServiceDate: fmt.Sprintf("2025-12-%02d", 7*(i+1)),
		})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	// Deleting the middle record leaves the others intact.
	require.NoError(t, s.Delete(ctx, store.Liturgist, ids[1]))

	records, err := s.List(ctx, store.Liturgist)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, ids[0], records[0].ID)
	assert.Equal(t, ids[2], records[1].ID)
}

func TestUnconfiguredType(t *testing.T) {
	s, _ := newTestStore()

	_, err := s.List(context.Background(), store.Food)
	assert.Error(t, err)
}

func TestList_ExtraColumnsTolerated(t *testing.T) {
	sheets := &fakeSheets{
		tabs: map[string][][]interface{}{
			"Liturgists": {
				{"id", "serviceDate", "role", "name", "legacyColumn"},
				{"rec-1", "2025-12-07", "Liturgist", "Pat Jones", "ignored"},
			},
		},
	}
	s := New(sheets, "sheet-1", map[store.SignupType]string{store.Liturgist: "Liturgists"})

	records, err := s.List(context.Background(), store.Liturgist)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "rec-1", records[0].ID)
	assert.Equal(t, "Liturgist", records[0].Field(store.FieldRole))
	assert.Equal(t, "ignored", records[0].Field("legacyColumn"))
}
