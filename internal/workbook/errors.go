package workbook

import (
	"fmt"
	"strings"
)

// ConfigurationError reports an invalid combination of read options. It is
// returned before the workbook is opened.
type ConfigurationError struct {
	Msg string
}

func (e *ConfigurationError) Error() string {
	return "invalid workbook options: " + e.Msg
}

// MissingColumnError reports requested header names that are not present in
// the header row of a worksheet.
type MissingColumnError struct {
	Sheet   string
	Columns []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("the following columns could not be found in sheet %q: %s",
		e.Sheet, strings.Join(e.Columns, ", "))
}
