package validate

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// maxSheetNameLength is the worksheet name limit enforced by spreadsheet applications
const maxSheetNameLength = 31

// SheetNameFormat validates a worksheet name. Names must be non-empty, at most
// 31 characters, must not contain any of : \ / ? * [ ] and must not start or
// end with an apostrophe.
func SheetNameFormat(name string) error {
	if name == "" {
		return fmt.Errorf("worksheet name cannot be empty")
	}

	if utf8.RuneCountInString(name) > maxSheetNameLength {
		return fmt.Errorf("worksheet name '%s' is longer than %d characters", name, maxSheetNameLength)
	}

	if strings.ContainsAny(name, `:\/?*[]`) {
		return fmt.Errorf("worksheet name '%s' cannot contain any of : \\ / ? * [ ]", name)
	}

	if strings.HasPrefix(name, "'") || strings.HasSuffix(name, "'") {
		return fmt.Errorf("worksheet name '%s' cannot start or end with an apostrophe", name)
	}

	return nil
}
