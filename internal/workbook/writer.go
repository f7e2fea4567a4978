package workbook

import (
	"fmt"

	"github.com/cisglee/uppraisal/internal/validate"
	"github.com/xuri/excelize/v2"
)

// Sheet is one worksheet to write: a bold header row followed by Rows.
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]any
}

// Write creates a workbook at path with one worksheet per sheet, replacing any
// existing file. Unnamed sheets are called Sheet1..n by position.
func Write(path string, sheets ...Sheet) error {
	if len(sheets) == 0 {
		return &ConfigurationError{Msg: "no sheets to write"}
	}

	names := make([]string, len(sheets))
	seen := make(map[string]bool, len(sheets))
	for i, s := range sheets {
		name := s.Name
		if name == "" {
			name = fmt.Sprintf("Sheet%d", i+1)
		}
		if err := validate.SheetNameFormat(name); err != nil {
			return &ConfigurationError{Msg: err.Error()}
		}
		if seen[name] {
			return &ConfigurationError{Msg: fmt.Sprintf("duplicate sheet name %q", name)}
		}
		seen[name] = true
		names[i] = name
	}

	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for i, s := range sheets {
		name := names[i]
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return err
		}

		if err := writeSheet(f, name, s, bold); err != nil {
			return fmt.Errorf("failed to write sheet %q: %w", name, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

func writeSheet(f *excelize.File, name string, s Sheet, headerStyle int) error {
	row := 1
	if len(s.Headers) > 0 {
		for i, h := range s.Headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			if err := f.SetCellValue(name, cell, h); err != nil {
				return err
			}
		}
		last, _ := excelize.CoordinatesToCellName(len(s.Headers), row)
		if err := f.SetCellStyle(name, "A1", last, headerStyle); err != nil {
			return err
		}
		row++
	}

	for _, values := range s.Rows {
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			if err := f.SetCellValue(name, cell, v); err != nil {
				return err
			}
		}
		row++
	}
	return nil
}
