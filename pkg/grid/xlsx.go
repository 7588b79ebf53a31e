package grid

import (
	"github.com/xuri/excelize/v2"

	appErrors "github.com/noah-isme/twig/pkg/errors"
)

// Open reads an entire .xlsx workbook into memory. Formatting and formulas
// are not preserved; the pipeline only consumes cell text.
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrWorkbook.Code, appErrors.ErrWorkbook.Exit, "failed to open workbook "+path)
	}
	defer f.Close()

	wb := NewWorkbook()
	for _, name := range f.GetSheetList() {
		sheet := wb.Ensure(name)
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrWorkbook.Code, appErrors.ErrWorkbook.Exit, "failed to read sheet "+name)
		}
		for r, row := range rows {
			for c, value := range row {
				if value == "" {
					continue
				}
				sheet.SetCell(r+1, c+1, value)
			}
		}
	}
	return wb, nil
}

// Save writes the workbook to path in one shot. The file is assembled fully
// in memory first so a failing run never leaves a half-updated workbook on
// disk.
func Save(wb *Workbook, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	names := wb.SheetNames()
	for i, name := range names {
		if i == 0 {
			// excelize seeds new files with "Sheet1".
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return appErrors.Wrap(err, appErrors.ErrWorkbook.Code, appErrors.ErrWorkbook.Exit, "failed to name sheet "+name)
			}
		} else {
			if _, err := f.NewSheet(name); err != nil {
				return appErrors.Wrap(err, appErrors.ErrWorkbook.Code, appErrors.ErrWorkbook.Exit, "failed to create sheet "+name)
			}
		}

		sheet, _ := wb.Sheet(name)
		for row := 1; row <= sheet.MaxRow(); row++ {
			for col := 1; col <= sheet.MaxCol(); col++ {
				value := sheet.Cell(row, col)
				if value == "" {
					continue
				}
				ref, err := excelize.CoordinatesToCellName(col, row)
				if err != nil {
					return appErrors.Wrap(err, appErrors.ErrWorkbook.Code, appErrors.ErrWorkbook.Exit, "invalid cell coordinates")
				}
				if err := f.SetCellStr(name, ref, value); err != nil {
					return appErrors.Wrap(err, appErrors.ErrWorkbook.Code, appErrors.ErrWorkbook.Exit, "failed to write cell "+ref)
				}
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return appErrors.Wrap(err, appErrors.ErrWorkbook.Code, appErrors.ErrWorkbook.Exit, "failed to save workbook "+path)
	}
	return nil
}
