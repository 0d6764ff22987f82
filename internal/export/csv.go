// Package export renders question sets and progress into the external
// formats: the generated-set CSV, the printable paper set, and the
// wrong-answer (WAR) report.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"peprep/internal/generate"
)

// csvHeader is the fixed column contract of the generated-set CSV.
var csvHeader = []string{
	"ID", "Domain", "Question",
	"Option A", "Option B", "Option C", "Option D",
	"Correct Answer", "Explanation",
}

// WriteCSV emits one row per generated question, options formatted as
// "<value> <unit>" and the correct answer as its letter.
func WriteCSV(w io.Writer, set []*generate.Generated) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, q := range set {
		row := []string{fmt.Sprint(q.Seq), q.Domain, q.Prompt}
		row = append(row, q.OptionStrings()...)
		row = append(row, q.CorrectLetter(), q.Explanation())
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write question %d: %w", q.Seq, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
