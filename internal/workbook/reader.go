// Package workbook reads and writes the spreadsheets uppraisal exchanges with
// its users.
//
// Reading resolves columns by header name: a caller either includes a list of
// columns (returned in the order asked for) or excludes some (the rest are
// returned in sheet order). Header matching trims whitespace and ignores case
// unless CaseSensitive is set. Cell values are read raw so numeric grades keep
// the precision they were stored with.
package workbook

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadOptions controls which sheet and columns Read returns.
type ReadOptions struct {
	// Sheet selects the worksheet by name. When empty, SheetIndex is used.
	Sheet string

	// SheetIndex selects the worksheet by its 0-based position.
	SheetIndex int

	Include []string
	Exclude []string

	// HasHeaders marks the first row as a header row.
	HasHeaders bool

	// ReturnHeaders fills Table.Headers. Requires HasHeaders.
	ReturnHeaders bool

	CaseSensitive        bool
	IgnoreMissingHeaders bool
}

// Validate rejects option combinations that cannot be honored.
func (o ReadOptions) Validate() error {
	filtered := len(o.Include) > 0 || len(o.Exclude) > 0
	switch {
	case filtered && !o.HasHeaders:
		return &ConfigurationError{Msg: "cannot include or exclude columns by name when there are no headers"}
	case len(o.Include) > 0 && len(o.Exclude) > 0:
		return &ConfigurationError{Msg: "cannot include and exclude columns simultaneously"}
	case o.ReturnHeaders && !o.HasHeaders:
		return &ConfigurationError{Msg: "cannot return headers when there are no headers"}
	case o.SheetIndex < 0:
		return &ConfigurationError{Msg: fmt.Sprintf("sheet index cannot be negative, got %d", o.SheetIndex)}
	}
	return nil
}

// Table is the rectangular result of Read. Every row has one cell per
// selected column; cells missing in the sheet are empty strings.
type Table struct {
	Sheet   string
	Headers []string
	Rows    [][]string

	// FirstRow is the 1-based sheet row of Rows[0].
	FirstRow int
}

// Read loads one worksheet of the workbook at path.
func Read(path string, opts ReadOptions) (*Table, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer f.Close()

	sheet, err := resolveSheet(f, opts.Sheet, opts.SheetIndex)
	if err != nil {
		return nil, err
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q of %s: %w", sheet, path, err)
	}

	table := &Table{Sheet: sheet, FirstRow: 1}

	var header []string
	if opts.HasHeaders {
		if len(rows) > 0 {
			header = rows[0]
			rows = rows[1:]
		}
		table.FirstRow = 2
	}

	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}
	if opts.HasHeaders {
		width = max(width, len(header))
	}

	columns, names, err := selectColumns(header, width, opts)
	if err != nil {
		var missing *MissingColumnError
		if errors.As(err, &missing) {
			missing.Sheet = sheet
		}
		return nil, err
	}
	if opts.ReturnHeaders {
		table.Headers = names
	}

	table.Rows = make([][]string, 0, len(rows))
	for _, row := range rows {
		out := make([]string, len(columns))
		for i, col := range columns {
			if col >= 0 && col < len(row) {
				out[i] = row[col]
			}
		}
		table.Rows = append(table.Rows, out)
	}

	return table, nil
}

// ReadHeaders returns the trimmed first row of a worksheet.
func ReadHeaders(path, sheet string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer f.Close()

	name, err := resolveSheet(f, sheet, 0)
	if err != nil {
		return nil, err
	}

	rows, err := f.Rows(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q of %s: %w", name, path, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Error()
	}
	cols, err := rows.Columns(excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}
	for i := range cols {
		cols[i] = strings.TrimSpace(cols[i])
	}
	return cols, nil
}

func resolveSheet(f *excelize.File, name string, index int) (string, error) {
	sheets := f.GetSheetList()
	if name != "" {
		if !slices.Contains(sheets, name) {
			return "", fmt.Errorf("worksheet %q not found, available: %s", name, strings.Join(sheets, ", "))
		}
		return name, nil
	}
	if index >= len(sheets) {
		return "", fmt.Errorf("worksheet index %d out of range, workbook has %d sheets", index, len(sheets))
	}
	return sheets[index], nil
}

// selectColumns maps output positions to sheet column indexes. A -1 index is
// a requested column that does not exist and is left empty.
func selectColumns(header []string, width int, opts ReadOptions) ([]int, []string, error) {
	norm := func(s string) string {
		s = strings.TrimSpace(s)
		if !opts.CaseSensitive {
			s = strings.ToLower(s)
		}
		return s
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		key := norm(h)
		if _, seen := index[key]; !seen {
			index[key] = i
		}
	}

	var columns []int
	var names []string
	var missing []string

	switch {
	case len(opts.Include) > 0:
		for _, name := range opts.Include {
			col, ok := index[norm(name)]
			if !ok {
				missing = append(missing, name)
				col = -1
			}
			columns = append(columns, col)
			names = append(names, name)
		}

	case len(opts.Exclude) > 0:
		excluded := make(map[string]bool, len(opts.Exclude))
		for _, name := range opts.Exclude {
			excluded[norm(name)] = true
			if _, ok := index[norm(name)]; !ok {
				missing = append(missing, name)
			}
		}
		for i := range width {
			var h string
			if i < len(header) {
				h = header[i]
			}
			if excluded[norm(h)] {
				continue
			}
			columns = append(columns, i)
			names = append(names, strings.TrimSpace(h))
		}

	default:
		for i := range width {
			columns = append(columns, i)
			if i < len(header) {
				names = append(names, strings.TrimSpace(header[i]))
			} else {
				names = append(names, "")
			}
		}
	}

	if len(missing) > 0 && !opts.IgnoreMissingHeaders {
		return nil, nil, &MissingColumnError{Columns: missing}
	}
	return columns, names, nil
}
