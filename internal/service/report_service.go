package service

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/twig/internal/models"
	"github.com/noah-isme/twig/pkg/config"
	"github.com/noah-isme/twig/pkg/errors"
	"github.com/noah-isme/twig/pkg/export"
	"github.com/noah-isme/twig/pkg/grid"
)

// ReportService derives the vacant-period and free-teacher reports. Vacant
// periods come from the daywise column of the teacherwise sheet (the
// serialized form round-trips exactly); free teachers come from the
// in-memory schedule.
type ReportService struct {
	opts   config.Options
	logger *zap.Logger
}

// NewReportService wires the report generator.
func NewReportService(opts config.Options, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{opts: opts, logger: logger}
}

type vacantRow struct {
	Teacher string
	Vacant  map[int]int
}

// vacantRows re-derives vacant periods per teacher per day from the
// teacherwise sheet: max periods minus the taught-period count.
func (s *ReportService) vacantRows(wb *grid.Workbook) ([]vacantRow, error) {
	sheet, ok := wb.Sheet(s.opts.Sheets.Teacherwise)
	if !ok {
		return nil, errors.Clone(errors.ErrSheetNotFound, "sheet "+s.opts.Sheets.Teacherwise+" not found")
	}

	daywiseCol := s.opts.MaxPeriods + 3
	var rows []vacantRow

	for row := 2; strings.TrimSpace(sheet.Cell(row, 1)) != ""; row++ {
		daywise := sheet.Cell(row, daywiseCol)
		if strings.TrimSpace(daywise) == "" {
			continue
		}

		counts := models.ParseDaywise(daywise)
		vacant := make(map[int]int, models.WeekDays)
		for d := 1; d <= models.WeekDays; d++ {
			vacant[d] = s.opts.MaxPeriods - counts[d]
		}
		rows = append(rows, vacantRow{Teacher: sheet.Cell(row, 1), Vacant: vacant})
	}

	return rows, nil
}

// WriteVacant fills the vacant sheet: one row per teacher, one column per
// weekday.
func (s *ReportService) WriteVacant(wb *grid.Workbook) error {
	rows, err := s.vacantRows(wb)
	if err != nil {
		return err
	}

	sheet := wb.Ensure(s.opts.Sheets.Vacant)
	sheet.ClearRows(2, models.WeekDays+1)

	sheet.SetCell(1, 1, "Teacher")
	for d := 1; d <= models.WeekDays; d++ {
		sheet.SetCell(1, d+1, strconv.Itoa(d))
	}

	for i, r := range rows {
		row := i + 2
		sheet.SetCell(row, 1, r.Teacher)
		for d := 1; d <= models.WeekDays; d++ {
			sheet.SetCell(row, d+1, strconv.Itoa(r.Vacant[d]))
		}
	}

	s.logger.Info("vacant sheet written",
		zap.String("sheet", sheet.Name),
		zap.Int("teachers", len(rows)))
	return nil
}

// freeCell renders the free-teacher list for one (day, period): teachers
// with no entry then, ordered by how many free periods they have that day
// (most free first, ties by code).
func freeCell(schedule models.Schedule, busy map[string]map[int]map[int]bool, day, period, maxPeriods int) string {
	type freeTeacher struct {
		Code string
		Free int
	}

	var free []freeTeacher
	for _, code := range schedule.Teachers() {
		periods := busy[code][day]
		if periods[period] {
			continue
		}
		free = append(free, freeTeacher{Code: code, Free: maxPeriods - len(periods)})
	}

	sort.SliceStable(free, func(i, j int) bool {
		if free[i].Free != free[j].Free {
			return free[i].Free > free[j].Free
		}
		return free[i].Code < free[j].Code
	})

	parts := make([]string, len(free))
	for i, t := range free {
		parts[i] = fmt.Sprintf("%s:%d", t.Code, t.Free)
	}
	return strings.Join(parts, ", ")
}

// WriteFreeTeachers fills the adjustment-helper sheet: a day-by-period
// matrix of free teachers.
func (s *ReportService) WriteFreeTeachers(wb *grid.Workbook, schedule models.Schedule) {
	sheet := wb.Ensure(s.opts.Sheets.FreeTeachers)
	sheet.ClearRows(2, s.opts.MaxPeriods+1)

	sheet.SetCell(1, 1, "Day/Period")
	for p := 1; p <= s.opts.MaxPeriods; p++ {
		sheet.SetCell(1, p+1, fmt.Sprintf("Period %d", p))
	}

	busy := schedule.BusyPeriods()
	for d := 1; d <= models.WeekDays; d++ {
		sheet.SetCell(d+1, 1, fmt.Sprintf("Day %d", d))
		for p := 1; p <= s.opts.MaxPeriods; p++ {
			sheet.SetCell(d+1, p+1, freeCell(schedule, busy, d, p, s.opts.MaxPeriods))
		}
	}

	s.logger.Info("free teachers sheet written", zap.String("sheet", sheet.Name))
}

// VacantDataset renders the vacant report for CSV/PDF export.
func (s *ReportService) VacantDataset(wb *grid.Workbook) (export.Dataset, error) {
	rows, err := s.vacantRows(wb)
	if err != nil {
		return export.Dataset{}, err
	}

	headers := []string{"Teacher"}
	for d := 1; d <= models.WeekDays; d++ {
		headers = append(headers, "Day "+strconv.Itoa(d))
	}

	data := export.Dataset{Headers: headers}
	for _, r := range rows {
		record := map[string]string{"Teacher": r.Teacher}
		for d := 1; d <= models.WeekDays; d++ {
			record["Day "+strconv.Itoa(d)] = strconv.Itoa(r.Vacant[d])
		}
		data.Rows = append(data.Rows, record)
	}
	return data, nil
}

// FreeTeachersDataset renders the free-teacher matrix for CSV/PDF export.
func (s *ReportService) FreeTeachersDataset(schedule models.Schedule) export.Dataset {
	headers := []string{"Day/Period"}
	for p := 1; p <= s.opts.MaxPeriods; p++ {
		headers = append(headers, fmt.Sprintf("Period %d", p))
	}

	busy := schedule.BusyPeriods()
	data := export.Dataset{Headers: headers}
	for d := 1; d <= models.WeekDays; d++ {
		record := map[string]string{"Day/Period": fmt.Sprintf("Day %d", d)}
		for p := 1; p <= s.opts.MaxPeriods; p++ {
			record[fmt.Sprintf("Period %d", p)] = freeCell(schedule, busy, d, p, s.opts.MaxPeriods)
		}
		data.Rows = append(data.Rows, record)
	}
	return data
}
