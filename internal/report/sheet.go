package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// sheetWriter wraps one sheet of a workbook and remembers the first write
// error, so the builders can lay cells out without per-call error plumbing.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	err   error
}

func newSheet(f *excelize.File, name string) (*sheetWriter, error) {
	if _, err := f.NewSheet(name); err != nil {
		return nil, fmt.Errorf("create sheet %q: %w", name, err)
	}
	return &sheetWriter{f: f, sheet: name}, nil
}

func (w *sheetWriter) keep(err error) {
	if w.err == nil && err != nil {
		w.err = fmt.Errorf("sheet %q: %w", w.sheet, err)
	}
}

// Err returns the first error recorded by any write on this sheet.
func (w *sheetWriter) Err() error { return w.err }

func (w *sheetWriter) set(col, row int, v any) {
	w.keep(w.f.SetCellValue(w.sheet, cellRef(col, row), v))
}

// setStyled writes a value and styles its cell in one step.
func (w *sheetWriter) setStyled(col, row int, v any, styleID int) {
	w.set(col, row, v)
	w.style(col, row, col, row, styleID)
}

func (w *sheetWriter) style(c1, r1, c2, r2, styleID int) {
	w.keep(w.f.SetCellStyle(w.sheet, cellRef(c1, r1), cellRef(c2, r2), styleID))
}

func (w *sheetWriter) merge(c1, r1, c2, r2 int) {
	w.keep(w.f.MergeCell(w.sheet, cellRef(c1, r1), cellRef(c2, r2)))
}

func (w *sheetWriter) colWidth(from, to int, width float64) {
	w.keep(w.f.SetColWidth(w.sheet, colName(from), colName(to), width))
}

func (w *sheetWriter) rowHeight(row int, height float64) {
	w.keep(w.f.SetRowHeight(w.sheet, row, height))
}

func (w *sheetWriter) hyperlink(col, row int, url string) {
	w.keep(w.f.SetCellHyperLink(w.sheet, cellRef(col, row), url, "External"))
}
