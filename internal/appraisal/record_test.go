package appraisal

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/cisglee/uppraisal/internal/workbook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIdentifier(t *testing.T) {
	tests := []struct {
		raw     string
		want    int64
		wantErr bool
	}{
		{raw: "123", want: 123},
		{raw: " 123 ", want: 123},
		{raw: "123.0", want: 123},
		{raw: "1e3", want: 1000},
		{raw: "123.5", wantErr: true},
		{raw: "0", wantErr: true},
		{raw: "-4", wantErr: true},
		{raw: "", wantErr: true},
		{raw: "abc", wantErr: true},
		{raw: "NaN", wantErr: true},
		{raw: "1e30", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseIdentifier(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseIdentifier(%q) = %d, want error", tt.raw, got)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseIdentifier(%q) = %d, %v, want %d", tt.raw, got, err, tt.want)
			}
		})
	}
}

func TestRecordsFromRows(t *testing.T) {
	rows := [][]string{
		{"1", "A", "hi"},
		{"", "", ""},
		{"2.0", " 7.5 ", "bye"},
		{"3"},
	}

	records, err := RecordsFromRows(rows, 2)
	require.NoError(t, err)
	assert.Equal(t, []Record{
		{Identifier: 1, Grade: "A", Comment: "hi"},
		{Identifier: 2, Grade: "7.5", Comment: "bye"},
		{Identifier: 3},
	}, records)
}

func TestRecordsFromRowsInvalidIdentifier(t *testing.T) {
	_, err := RecordsFromRows([][]string{{"1", "A", ""}, {"x", "B", ""}}, 2)

	var idErr *InvalidIdentifierError
	require.True(t, errors.As(err, &idErr))
	assert.Equal(t, 3, idErr.Row)
	assert.Equal(t, "x", idErr.Value)
}

func TestLoadRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.xlsx")
	require.NoError(t, workbook.Write(path, workbook.Sheet{
		Name:    "Grades",
		Headers: []string{"Name", "SIS_User_ID", "Grade", "Submission_Comment"},
		Rows: [][]any{
			{"Ada", 1001, 8, "<b>great</b>"},
			{"Bob", "1002", "6.5", ""},
		},
	}))

	records, err := LoadRecords(path, "Grades", Columns{})
	require.NoError(t, err)
	assert.Equal(t, []Record{
		{Identifier: 1001, Grade: "8", Comment: "<b>great</b>"},
		{Identifier: 1002, Grade: "6.5"},
	}, records)
}

func TestLoadRecordsPrefersUserID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.xlsx")
	require.NoError(t, workbook.Write(path, workbook.Sheet{
		Headers: []string{"sis_user_id", "user_id", "grade", "submission_comment"},
		Rows:    [][]any{{"S1", 42, "A", "ok"}},
	}))

	records, err := LoadRecords(path, "Sheet1", Columns{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int64(42), records[0].Identifier)
}

func TestLoadRecordsMissingColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.xlsx")
	require.NoError(t, workbook.Write(path, workbook.Sheet{
		Headers: []string{"user_id", "grade"},
		Rows:    [][]any{{1, "A"}},
	}))

	_, err := LoadRecords(path, "Sheet1", Columns{})
	var missing *workbook.MissingColumnError
	require.True(t, errors.As(err, &missing), "got %v", err)
	assert.Equal(t, []string{"submission_comment"}, missing.Columns)

	_, err = LoadRecords(path, "Sheet1", Columns{Identifier: []string{"student"}})
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{"student"}, missing.Columns)
}
