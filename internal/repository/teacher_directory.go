// Package repository loads reference data consumed by the timetable
// services from the workbook.
package repository

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/twig/internal/models"
	"github.com/noah-isme/twig/pkg/errors"
	"github.com/noah-isme/twig/pkg/grid"
)

// Well-known header names on the teacher-metadata sheet. Only SHORTNAME is
// mandatory; the rest fall through to the Extra map when absent.
const (
	colShortName = "SHORTNAME"
	colName      = "NAME"
	colGender    = "GENDER"
	colPost      = "POST"
	colInCharge  = "INCHARGE"
)

// TeacherDirectory holds teacher metadata keyed by short code, preserving
// sheet row order for display.
type TeacherDirectory struct {
	records map[string]models.TeacherRecord
	order   []string
}

// Get looks up a teacher record by short code.
func (d *TeacherDirectory) Get(code string) (models.TeacherRecord, bool) {
	r, ok := d.records[code]
	return r, ok
}

// Codes returns known short codes in sheet order.
func (d *TeacherDirectory) Codes() []string {
	codes := make([]string, len(d.order))
	copy(codes, d.order)
	return codes
}

// Len reports the number of loaded records.
func (d *TeacherDirectory) Len() int { return len(d.records) }

// InChargeOf returns the teacher record in charge of the given class.
func (d *TeacherDirectory) InChargeOf(className string) (models.TeacherRecord, bool) {
	for _, code := range d.order {
		r := d.records[code]
		if r.InCharge != "" && r.InCharge == className {
			return r, true
		}
	}
	return models.TeacherRecord{}, false
}

// SortedTeachers orders schedule teacher codes for output: codes known to
// the directory first, in directory order, then schedule-only codes sorted
// and appended.
func (d *TeacherDirectory) SortedTeachers(scheduleCodes []string) []string {
	inSchedule := make(map[string]bool, len(scheduleCodes))
	for _, code := range scheduleCodes {
		inSchedule[code] = true
	}

	var result []string
	known := make(map[string]bool)
	for _, code := range d.order {
		if inSchedule[code] {
			result = append(result, code)
			known[code] = true
		}
	}

	var extras []string
	for _, code := range scheduleCodes {
		if !known[code] {
			extras = append(extras, code)
			known[code] = true
		}
	}
	sort.Strings(extras)

	return append(result, extras...)
}

// LoadTeacherDirectory reads the teacher-metadata sheet. Row 1 defines field
// names (scan stops at the first blank column); data rows are read until the
// key column is blank. Keys starting with "#" are skipped. A duplicate key
// is a fatal data-integrity error: silently overwriting would lose a row.
func LoadTeacherDirectory(sheet *grid.Sheet, logger *zap.Logger) (*TeacherDirectory, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var headers []string
	for col := 1; ; col++ {
		value := strings.TrimSpace(sheet.Cell(1, col))
		if value == "" {
			break
		}
		headers = append(headers, strings.ToUpper(value))
	}

	keyIdx := -1
	for i, h := range headers {
		if h == colShortName {
			keyIdx = i
			break
		}
	}
	if keyIdx < 0 {
		return nil, errors.Clone(errors.ErrColumnNotFound, "SHORTNAME column not found in sheet "+sheet.Name)
	}

	dir := &TeacherDirectory{records: make(map[string]models.TeacherRecord)}
	for row := 2; ; row++ {
		code := strings.TrimSpace(sheet.Cell(row, keyIdx+1))
		if code == "" {
			break
		}
		if strings.HasPrefix(code, "#") {
			continue
		}
		if _, exists := dir.records[code]; exists {
			return nil, errors.Clone(errors.ErrDuplicateTeacher, "duplicate teacher short code "+code)
		}

		fields := make(map[string]string, len(headers))
		for i, header := range headers {
			fields[header] = strings.TrimSpace(sheet.Cell(row, i+1))
		}

		record := models.TeacherRecord{
			ShortName: code,
			Name:      fields[colName],
			Gender:    fields[colGender],
			Post:      fields[colPost],
			InCharge:  fields[colInCharge],
			Extra:     make(map[string]string),
		}
		for header, value := range fields {
			switch header {
			case colShortName, colName, colGender, colPost, colInCharge:
			default:
				record.Extra[header] = value
			}
		}

		dir.records[code] = record
		dir.order = append(dir.order, code)
	}

	logger.Debug("teacher directory loaded", zap.Int("teachers", dir.Len()))
	return dir, nil
}
