// Package grid provides the workbook abstraction the timetable pipeline
// operates on: an ordered collection of named 2-D text grids. Cells are
// 1-indexed and row 1 is reserved for headers by convention.
package grid

import (
	"github.com/xuri/excelize/v2"
)

type cellKey struct {
	Row int
	Col int
}

// Sheet is a single in-memory text grid.
type Sheet struct {
	Name   string
	cells  map[cellKey]string
	maxRow int
	maxCol int
}

// NewSheet creates an empty named sheet.
func NewSheet(name string) *Sheet {
	return &Sheet{Name: name, cells: make(map[cellKey]string)}
}

// Cell returns the text at (row, col), or "" when the cell is empty.
func (s *Sheet) Cell(row, col int) string {
	return s.cells[cellKey{Row: row, Col: col}]
}

// SetCell writes text at (row, col). Writing "" clears the cell but keeps
// the tracked extent.
func (s *Sheet) SetCell(row, col int, text string) {
	s.cells[cellKey{Row: row, Col: col}] = text
	if row > s.maxRow {
		s.maxRow = row
	}
	if col > s.maxCol {
		s.maxCol = col
	}
}

// MaxRow reports the highest row index ever written.
func (s *Sheet) MaxRow() int { return s.maxRow }

// MaxCol reports the highest column index ever written.
func (s *Sheet) MaxCol() int { return s.maxCol }

// ClearRows blanks columns 1..width of every populated row from startRow
// down, stopping at the first row whose first column is already empty.
func (s *Sheet) ClearRows(startRow, width int) {
	for row := startRow; s.Cell(row, 1) != ""; row++ {
		for col := 1; col <= width; col++ {
			s.SetCell(row, col, "")
		}
	}
}

// Workbook is an ordered set of named sheets.
type Workbook struct {
	order  []string
	sheets map[string]*Sheet
}

// NewWorkbook creates an empty workbook.
func NewWorkbook() *Workbook {
	return &Workbook{sheets: make(map[string]*Sheet)}
}

// Sheet looks up a sheet by name.
func (w *Workbook) Sheet(name string) (*Sheet, bool) {
	s, ok := w.sheets[name]
	return s, ok
}

// Ensure returns the named sheet, creating and appending it when missing.
func (w *Workbook) Ensure(name string) *Sheet {
	if s, ok := w.sheets[name]; ok {
		return s
	}
	s := NewSheet(name)
	w.sheets[name] = s
	w.order = append(w.order, name)
	return s
}

// Remove deletes a sheet if present.
func (w *Workbook) Remove(name string) {
	if _, ok := w.sheets[name]; !ok {
		return
	}
	delete(w.sheets, name)
	for i, n := range w.order {
		if n == name {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
}

// SheetNames returns sheet names in workbook order.
func (w *Workbook) SheetNames() []string {
	names := make([]string, len(w.order))
	copy(names, w.order)
	return names
}

// CellName renders 1-indexed coordinates as a spreadsheet reference ("B3"),
// used in warning messages so a human can find the offending cell.
func CellName(col, row int) string {
	ref, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return ""
	}
	return ref
}
