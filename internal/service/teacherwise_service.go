package service

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/twig/internal/models"
	"github.com/noah-isme/twig/internal/repository"
	"github.com/noah-isme/twig/pkg/config"
	"github.com/noah-isme/twig/pkg/grid"
)

// TeacherwiseService serializes the teacher-indexed schedule into the
// teacherwise sheet. Clash detection later re-parses this serialized form,
// so the cell format here is the contract for the teacher-grid grammar.
type TeacherwiseService struct {
	opts   config.Options
	logger *zap.Logger
}

// NewTeacherwiseService wires the writer.
func NewTeacherwiseService(opts config.Options, logger *zap.Logger) *TeacherwiseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeacherwiseService{opts: opts, logger: logger}
}

// Write replaces the teacherwise sheet content from the schedule. Teachers
// known to the directory come first in directory order; schedule-only codes
// follow sorted. Returns the number of teacher rows written.
func (s *TeacherwiseService) Write(wb *grid.Workbook, schedule models.Schedule, dir *repository.TeacherDirectory) int {
	sheet := wb.Ensure(s.opts.Sheets.Teacherwise)

	totalCol := s.opts.MaxPeriods + 2
	daywiseCol := s.opts.MaxPeriods + 3

	sheet.ClearRows(2, daywiseCol)

	sheet.SetCell(1, 1, "Name")
	for p := 1; p <= s.opts.MaxPeriods; p++ {
		sheet.SetCell(1, p+1, fmt.Sprintf("Period %d", p))
	}
	sheet.SetCell(1, totalCol, "Periods")
	sheet.SetCell(1, daywiseCol, "Periods Daywise")

	teachers := schedule.Teachers()
	if dir != nil {
		teachers = dir.SortedTeachers(teachers)
	}

	row := 2
	for _, code := range teachers {
		sheet.SetCell(row, 1, s.label(code, dir))

		entries := make([]models.Entry, len(schedule[code]))
		copy(entries, schedule[code])
		sort.SliceStable(entries, func(i, j int) bool {
			if entries[i].Days != entries[j].Days {
				return entries[i].Days < entries[j].Days
			}
			return entries[i].Period < entries[j].Period
		})

		for _, entry := range entries {
			col := entry.Period + 1
			line := fmt.Sprintf("%s (%s) %s", entry.ClassName, entry.Days, entry.Subject)
			if existing := sheet.Cell(row, col); existing != "" {
				line = existing + s.opts.Separator + line
			}
			sheet.SetCell(row, col, line)
		}

		sheet.SetCell(row, totalCol, strconv.Itoa(schedule.CountPeriods(code)))
		sheet.SetCell(row, daywiseCol, models.FormatDaywise(schedule.CountPeriodsDaywise(code)))
		row++
	}

	if !s.opts.KeepTimestamp {
		sheet.SetCell(row, 2, "Last updated on "+time.Now().Format(time.ANSIC))
	}

	s.logger.Info("teacherwise sheet written",
		zap.String("sheet", sheet.Name),
		zap.Int("teachers", len(teachers)))
	return len(teachers)
}

func (s *TeacherwiseService) label(code string, dir *repository.TeacherDirectory) string {
	if dir != nil {
		if record, ok := dir.Get(code); ok {
			return record.Label(s.opts.ExpandFullNames)
		}
	}
	return strings.TrimSpace(code)
}
