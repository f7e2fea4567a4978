package appraisal

import (
	"strconv"

	"github.com/cisglee/uppraisal/internal/lms"
	"github.com/cisglee/uppraisal/internal/logging"
)

func comment(raw string, htmlFormat bool) (string, error) {
	if !htmlFormat {
		return raw, nil
	}
	return StripHTML(raw)
}

// BuildGradeData builds the update_grades payload of one batch. An identifier
// that occurs more than once keeps the last record's grade and comment unless
// rejectDuplicates is set, in which case a *DuplicateIdentifierError naming
// batch (1-based) is returned.
func BuildGradeData(batch int, records []Record, htmlFormat, rejectDuplicates bool) (lms.GradeData, error) {
	data := make(lms.GradeData, len(records))
	for _, r := range records {
		key := strconv.FormatInt(r.Identifier, 10)
		if _, dup := data[key]; dup {
			if rejectDuplicates {
				return nil, &DuplicateIdentifierError{Batch: batch, Identifier: r.Identifier}
			}
			logging.Warn("Batch %d: identifier %d occurs more than once, keeping the last record", batch, r.Identifier)
		}

		text, err := comment(r.Comment, htmlFormat)
		if err != nil {
			return nil, err
		}
		data[key] = lms.GradeEntry{
			PostedGrade: r.Grade,
			TextComment: text,
		}
	}
	return data, nil
}

// BuildSubmissionUpdate builds the single submission payload of one record.
func BuildSubmissionUpdate(r Record, htmlFormat bool) (lms.SubmissionUpdate, error) {
	text, err := comment(r.Comment, htmlFormat)
	if err != nil {
		return lms.SubmissionUpdate{}, err
	}
	return lms.SubmissionUpdate{
		Comment:    lms.SubmissionComment{TextComment: text},
		Submission: lms.SubmissionGrade{PostedGrade: r.Grade},
	}, nil
}

// checkIdentifiers rejects records whose identifier was never coerced.
func checkIdentifiers(records []Record) error {
	for i, r := range records {
		if r.Identifier <= 0 {
			return &InvalidIdentifierError{Row: i + 1, Value: strconv.FormatInt(r.Identifier, 10)}
		}
	}
	return nil
}
