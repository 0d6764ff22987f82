package export

import (
	"fmt"
	"io"
	"strings"
)

const warSeparator = "----------------------------------------"

// MissedQuestion is one resolved entry of the detailed wrong-answer report.
// Correct holds the answer letters as display text, e.g. "A, C".
type MissedQuestion struct {
	ID      string
	Text    string
	Correct string
}

// WriteWrongAnswerReport renders the detailed WAR report: one block per
// missed question with its id, prompt, and correct letters.
func WriteWrongAnswerReport(w io.Writer, missed []MissedQuestion) error {
	if len(missed) == 0 {
		_, err := fmt.Fprintln(w, "No missed questions.")
		return err
	}

	var b strings.Builder
	for _, q := range missed {
		fmt.Fprintf(&b, "ID: %s\n", q.ID)
		fmt.Fprintf(&b, "Q: %s\n", q.Text)
		fmt.Fprintf(&b, "Correct Answer: %s\n", q.Correct)
		fmt.Fprintln(&b, warSeparator)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteWrongIDs renders the all-time list of ever-missed question ids.
func WriteWrongIDs(w io.Writer, ids []string) error {
	if len(ids) == 0 {
		_, err := fmt.Fprintln(w, "No missed questions on record.")
		return err
	}
	for _, id := range ids {
		if _, err := fmt.Fprintln(w, id); err != nil {
			return err
		}
	}
	return nil
}
