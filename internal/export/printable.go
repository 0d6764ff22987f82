package export

import (
	"fmt"
	"io"

	"peprep/internal/question"
)

// WritePrintable renders a paper exam set: numbered questions with lettered
// options, a page break, then the answer-key table. setID stamps the sheet
// so printed sets can be told apart.
func WritePrintable(w io.Writer, qs []*question.Question, setID int) error {
	var err error
	p := func(format string, args ...any) {
		if err == nil {
			_, err = fmt.Fprintf(w, format, args...)
		}
	}

	p("PE Exam Set\n")
	p("Generated ID: %d\n\n", setID)

	for i, q := range qs {
		p("%d. %s\n", i+1, q.Text)
		for j, opt := range q.Options {
			p("    %s. %s\n", question.Letter(j), opt)
		}
		p("\n")
	}

	// Form feed keeps the answer key on its own page.
	p("\f")
	p("Answer Key\n\n")
	p("%-6s %s\n", "Q#", "Ans")
	for i, q := range qs {
		p("%-6d %s\n", i+1, q.CorrectLetters())
	}

	return err
}
