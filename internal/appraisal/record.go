package appraisal

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cisglee/uppraisal/internal/config"
	"github.com/cisglee/uppraisal/internal/logging"
	"github.com/cisglee/uppraisal/internal/workbook"
)

// Record is one grade and comment for one LMS user.
type Record struct {
	Identifier int64  `json:"identifier"`
	Grade      string `json:"grade"`
	Comment    string `json:"comment"`
}

// Columns names the workbook headers records are read from. Identifier lists
// candidate headers; the first one present in the sheet is used.
type Columns struct {
	Identifier []string
	Grade      string
	Comment    string
}

// DefaultColumns returns the standard header names.
func DefaultColumns() Columns {
	return Columns{
		Identifier: config.DefaultIDHeaders(),
		Grade:      config.DefaultGradeHeader,
		Comment:    config.DefaultCommentHeader,
	}
}

func (c Columns) withDefaults() Columns {
	def := DefaultColumns()
	if len(c.Identifier) == 0 {
		c.Identifier = def.Identifier
	}
	if c.Grade == "" {
		c.Grade = def.Grade
	}
	if c.Comment == "" {
		c.Comment = def.Comment
	}
	return c
}

// ParseIdentifier coerces a cell value such as "123" or "123.0" to a
// positive integer.
func ParseIdentifier(raw string) (int64, error) {
	s := strings.TrimSpace(raw)

	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || f != math.Trunc(f) || f > math.MaxInt64 || f < math.MinInt64 {
			return 0, fmt.Errorf("%q is not an integer", raw)
		}
		id = int64(f)
	}
	if id <= 0 {
		return 0, fmt.Errorf("%d is not positive", id)
	}
	return id, nil
}

// RecordsFromRows builds records from identifier, grade, comment rows.
// firstRow is the sheet row of rows[0] and is used in error messages. Rows
// whose three cells are all blank are skipped.
func RecordsFromRows(rows [][]string, firstRow int) ([]Record, error) {
	records := make([]Record, 0, len(rows))
	for i, row := range rows {
		var cells [3]string
		copy(cells[:], row)

		if strings.TrimSpace(cells[0]+cells[1]+cells[2]) == "" {
			continue
		}

		id, err := ParseIdentifier(cells[0])
		if err != nil {
			return nil, &InvalidIdentifierError{Row: firstRow + i, Value: cells[0]}
		}
		records = append(records, Record{
			Identifier: id,
			Grade:      strings.TrimSpace(cells[1]),
			Comment:    cells[2],
		})
	}
	return records, nil
}

// LoadRecords reads the records of one worksheet. The identifier column is the
// first of cols.Identifier found in the header row; grade and comment columns
// must be present.
func LoadRecords(path, sheet string, cols Columns) ([]Record, error) {
	cols = cols.withDefaults()

	headers, err := workbook.ReadHeaders(path, sheet)
	if err != nil {
		return nil, err
	}

	idHeader := resolveHeader(headers, cols.Identifier)
	if idHeader == "" {
		return nil, &workbook.MissingColumnError{Sheet: sheet, Columns: cols.Identifier}
	}
	logging.Debug("Using identifier column %q", idHeader)

	table, err := workbook.Read(path, workbook.ReadOptions{
		Sheet:      sheet,
		HasHeaders: true,
		Include:    []string{idHeader, cols.Grade, cols.Comment},
	})
	if err != nil {
		return nil, err
	}

	return RecordsFromRows(table.Rows, table.FirstRow)
}

func resolveHeader(headers, candidates []string) string {
	for _, want := range candidates {
		for _, h := range headers {
			if strings.EqualFold(strings.TrimSpace(h), strings.TrimSpace(want)) {
				return want
			}
		}
	}
	return ""
}
