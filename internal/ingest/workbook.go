package ingest

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"english-placement/internal/domain"
	"english-placement/internal/placement"

	"github.com/xuri/excelize/v2"
)

// headerScanRows bounds the search for the header row at the top of a sheet.
const headerScanRows = 25

// ErrNoHeader is returned when no sheet of the workbook carries the question header.
var ErrNoHeader = errors.New("no sheet contains the question header row")

// RowIssue is a problem found on a single spreadsheet row.
type RowIssue struct {
	Sheet   string `json:"sheet"`
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ParsedQuestion is a question read from a workbook row.
type ParsedQuestion struct {
	Sheet    string
	Row      int
	Question *domain.Question
}

// Workbook is the outcome of parsing a question workbook.
type Workbook struct {
	Sheets    []string
	TotalRows int
	Questions []ParsedQuestion
	Errors    []RowIssue
	Warnings  []RowIssue
}

// columns holds the zero-based positions of the recognised headers. -1 means absent.
type columns struct {
	headerRow   int
	question    int
	correct     int
	distractors []int
	quick3      int
	level6      int
}

// Parse reads every question row of the workbook. When sheet is non-empty only
// that sheet is read; otherwise every sheet with a recognisable header is.
func Parse(r io.Reader, sheet string) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open excel: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if sheet != "" {
		if !slices.Contains(sheets, sheet) {
			return nil, fmt.Errorf("sheet %q not found", sheet)
		}
		sheets = []string{sheet}
	}

	wb := &Workbook{}
	for _, name := range sheets {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", name, err)
		}
		cols, ok := findColumns(rows)
		if !ok {
			continue
		}
		wb.Sheets = append(wb.Sheets, name)
		wb.parseSheet(name, rows, cols)
	}
	if len(wb.Sheets) == 0 {
		return nil, ErrNoHeader
	}
	return wb, nil
}

func (wb *Workbook) parseSheet(name string, rows [][]string, cols columns) {
	for i := cols.headerRow + 1; i < len(rows); i++ {
		row := rows[i]
		rowNum := i + 1

		prompt := cellAt(row, cols.question)
		answer := cellAt(row, cols.correct)
		distractors := make([]string, 0, len(cols.distractors))
		for _, c := range cols.distractors {
			distractors = append(distractors, cellAt(row, c))
		}

		if prompt == "" && answer == "" && allEmpty(distractors) {
			continue
		}
		// Header echoes appear when sheets are pasted together.
		if isQuestionHeader(prompt) && isCorrectHeader(answer) {
			continue
		}
		wb.TotalRows++

		q := domain.NewQuestion(prompt, answer, dedupeDistractors(answer, distractors),
			cellAt(row, cols.quick3), strings.ToUpper(cellAt(row, cols.level6)))
		if err := q.Validate(); err != nil {
			wb.Errors = append(wb.Errors, RowIssue{Sheet: name, Row: rowNum, Message: issueMessage(err)})
			continue
		}
		wb.Warnings = append(wb.Warnings, labelWarnings(name, rowNum, q)...)
		wb.Questions = append(wb.Questions, ParsedQuestion{Sheet: name, Row: rowNum, Question: q})
	}
}

func labelWarnings(sheet string, row int, q *domain.Question) []RowIssue {
	var out []RowIssue
	if q.Quick3Label == "" && q.CEFRLabel == "" {
		return append(out, RowIssue{Sheet: sheet, Row: row, Message: "no level labels; question will never be sampled"})
	}
	if q.Quick3Label != "" {
		if _, ok := placement.NormalizeQuick3(q.Quick3Label); !ok {
			out = append(out, RowIssue{Sheet: sheet, Row: row, Message: fmt.Sprintf("unrecognised quick 3 level %q", q.Quick3Label)})
		}
	}
	if q.CEFRLabel != "" {
		if _, ok := placement.NormalizeCEFR(q.CEFRLabel); !ok {
			out = append(out, RowIssue{Sheet: sheet, Row: row, Message: fmt.Sprintf("unrecognised CEFR level %q", q.CEFRLabel)})
		}
	}
	return out
}

func issueMessage(err error) string {
	var de *domain.DomainError
	if errors.As(err, &de) {
		return de.Message
	}
	return err.Error()
}

// findColumns locates the header row: Question, Correct Response, Distractor 1
// and Distractor 2 in consecutive cells, optionally followed by Distractor 3.
func findColumns(rows [][]string) (columns, bool) {
	for r := 0; r < len(rows) && r < headerScanRows; r++ {
		header := rows[r]
		for c := 0; c+3 < len(header); c++ {
			if !isQuestionHeader(header[c]) || !isCorrectHeader(header[c+1]) ||
				!isDistractorHeader(header[c+2], 1) || !isDistractorHeader(header[c+3], 2) {
				continue
			}
			cols := columns{
				headerRow:   r,
				question:    c,
				correct:     c + 1,
				distractors: []int{c + 2, c + 3},
				quick3:      -1,
				level6:      -1,
			}
			if c+4 < len(header) && isDistractorHeader(header[c+4], 3) {
				cols.distractors = append(cols.distractors, c+4)
			}
			for j, h := range header {
				switch {
				case cols.quick3 < 0 && isQuick3Header(h):
					cols.quick3 = j
				case cols.level6 < 0 && isLevel6Header(h):
					cols.level6 = j
				}
			}
			return cols, true
		}
	}
	return columns{}, false
}

func headerText(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func isQuestionHeader(s string) bool { return headerText(s) == "question" }

func isCorrectHeader(s string) bool {
	h := headerText(s)
	return h == "correct response" || h == "correct" || h == "answer"
}

func isDistractorHeader(s string, n int) bool {
	h := headerText(s)
	return h == fmt.Sprintf("distractor %d", n) || h == fmt.Sprintf("distractor%d", n)
}

func isQuick3Header(s string) bool {
	h := headerText(s)
	return strings.HasPrefix(h, "quick 3") || strings.HasPrefix(h, "quick3") || strings.Contains(h, "difficulty")
}

func isLevel6Header(s string) bool {
	h := headerText(s)
	return strings.HasPrefix(h, "detailed 6") || strings.Contains(h, "6 levels") || h == "level"
}

// cellAt returns the trimmed cell value; spreadsheet placeholders count as empty.
func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	v := strings.TrimSpace(row[col])
	switch strings.ToLower(v) {
	case "nan", "none":
		return ""
	}
	return v
}

func allEmpty(values []string) bool {
	for _, v := range values {
		if v != "" {
			return false
		}
	}
	return true
}

// dedupeDistractors drops blanks, repeats and copies of the answer, comparing case-insensitively.
func dedupeDistractors(answer string, distractors []string) []string {
	seen := map[string]struct{}{strings.ToLower(answer): {}}
	out := make([]string, 0, len(distractors))
	for _, d := range distractors {
		if d == "" {
			continue
		}
		key := strings.ToLower(d)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, d)
	}
	return out
}
