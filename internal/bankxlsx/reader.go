// Package bankxlsx imports question banks from spreadsheets. Layout:
// header row skipped, column A holds the prompt (optionally ending in an
// "(id)" token), columns B onward hold options, and a bold cell font marks
// an option correct.
package bankxlsx

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"peprep/internal/question"
)

// ErrNoBank signals that a workbook contained no usable question rows.
var ErrNoBank = errors.New("workbook holds no usable questions")

// Load reads every worksheet of the file at path into question records.
// Rows that fail validation (empty prompt, zero options, zero correct
// options) are dropped silently; that is the defined filtering rule, not an
// error. The returned slice is complete or the whole load fails — a partial
// bank is never produced.
func Load(path string) ([]*question.Question, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	return load(f)
}

// LoadReader is Load over an already-open stream.
func LoadReader(r io.Reader) ([]*question.Question, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	return load(f)
}

func load(f *excelize.File) ([]*question.Question, error) {
	var questions []*question.Question
	ids := make(map[string]bool)

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
		}

		for rowIdx, row := range rows {
			if rowIdx == 0 {
				continue // header
			}
			if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
				continue
			}
			text := row[0]

			id, ok := question.ExtractID(text)
			if !ok {
				id = question.SynthesizeID(rowIdx + 1)
			}
			if ids[id] {
				return nil, fmt.Errorf("sheet %q row %d: duplicate question id %q", sheet, rowIdx+1, id)
			}

			var opts []string
			correct := question.NewIndexSet()
			for colIdx := 1; colIdx < len(row); colIdx++ {
				if strings.TrimSpace(row[colIdx]) == "" {
					continue
				}
				opts = append(opts, row[colIdx])

				bold, err := cellBold(f, sheet, colIdx+1, rowIdx+1)
				if err != nil {
					return nil, fmt.Errorf("sheet %q row %d: %w", sheet, rowIdx+1, err)
				}
				if bold {
					correct[len(opts)-1] = true
				}
			}

			// Filtering rule: no options or no marked answer drops the row.
			if len(opts) == 0 || len(correct) == 0 {
				continue
			}

			q := &question.Question{
				ID:      id,
				Text:    text,
				Options: opts,
				Correct: correct,
			}
			q.ResetResponse()
			if err := q.Validate(); err != nil {
				continue
			}
			ids[id] = true
			questions = append(questions, q)
		}
	}

	if len(questions) == 0 {
		return nil, ErrNoBank
	}
	return questions, nil
}

// cellBold reports whether the cell at (col, row), 1-based, carries a bold
// font attribute.
func cellBold(f *excelize.File, sheet string, col, row int) (bool, error) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return false, fmt.Errorf("cell name: %w", err)
	}
	styleID, err := f.GetCellStyle(sheet, cell)
	if err != nil {
		return false, fmt.Errorf("cell style %s: %w", cell, err)
	}
	if styleID == 0 {
		return false, nil
	}
	style, err := f.GetStyle(styleID)
	if err != nil {
		return false, fmt.Errorf("style %d: %w", styleID, err)
	}
	return style != nil && style.Font != nil && style.Font.Bold, nil
}
