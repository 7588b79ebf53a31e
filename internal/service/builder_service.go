package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/twig/internal/grammar"
	"github.com/noah-isme/twig/internal/models"
	"github.com/noah-isme/twig/pkg/config"
	"github.com/noah-isme/twig/pkg/days"
	"github.com/noah-isme/twig/pkg/grid"
)

// ClassRow identifies one class row of the classwise sheet.
type ClassRow struct {
	Name  string
	Alias string
	Row   int
}

// BuildResult is the outcome of one classwise pass: the teacher-indexed
// schedule, the classes encountered, per-class subject totals and the number
// of recoverable warnings.
type BuildResult struct {
	Schedule    models.Schedule
	Classes     []ClassRow
	ClassTotals map[string]map[string]int
	Warnings    int
}

// BuilderService reads the classwise grid and produces the teacher-indexed
// schedule. Format problems are warnings, never fatal: the run continues and
// the count is surfaced in the exit status.
type BuilderService struct {
	opts   config.Options
	logger *zap.Logger
}

// NewBuilderService wires the builder.
func NewBuilderService(opts config.Options, logger *zap.Logger) *BuilderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BuilderService{opts: opts, logger: logger}
}

// Build walks class rows top to bottom until the first blank class cell.
// Rows whose class name starts with "#" are skipped entirely. As a side
// effect the per-class subject summary is written into the column after the
// last period, and the timestamp row is refreshed unless configured off.
func (s *BuilderService) Build(sheet *grid.Sheet) *BuildResult {
	result := &BuildResult{
		Schedule:    make(models.Schedule),
		ClassTotals: make(map[string]map[string]int),
	}

	summaryCol := s.opts.MaxPeriods + 2

	row := 2
	for ; ; row++ {
		rawName := strings.TrimSpace(sheet.Cell(row, 1))
		if rawName == "" {
			break
		}
		if strings.HasPrefix(rawName, "#") {
			continue
		}

		name, alias := grammar.SplitClassName(rawName)
		result.Classes = append(result.Classes, ClassRow{Name: name, Alias: alias, Row: row})

		totals := make(map[string]int)
		daysSeen := make(map[int]bool)

		for col := 2; col <= s.opts.MaxPeriods+1; col++ {
			result.Warnings += s.processCell(sheet, row, col, name, totals, daysSeen, result.Schedule)
		}

		if missing := missingDays(daysSeen); len(missing) > 0 {
			s.logger.Warn("class row does not cover the full week",
				zap.String("class", name),
				zap.Int("row", row),
				zap.Ints("missing_days", missing))
			result.Warnings++
		}

		result.ClassTotals[name] = totals
		sheet.SetCell(row, summaryCol, summarize(totals))
	}

	if !s.opts.KeepTimestamp {
		sheet.SetCell(row, 2, "Last updated on "+time.Now().Format(time.ANSIC))
	}

	return result
}

// processCell parses one period cell of a class row and returns the number
// of warnings it produced.
func (s *BuilderService) processCell(sheet *grid.Sheet, row, col int, className string,
	totals map[string]int, daysSeen map[int]bool, schedule models.Schedule) int {

	content := sheet.Cell(row, col)
	if strings.TrimSpace(content) == "" {
		s.logger.Warn("empty period cell",
			zap.String("cell", grid.CellName(col, row)),
			zap.String("class", className))
		return 1
	}
	if grammar.IsCellDisabled(content) {
		s.logger.Warn("cell disabled with ##",
			zap.String("cell", grid.CellName(col, row)),
			zap.String("class", className))
		return 1
	}

	warnings := 0
	period := col - 1

	for _, line := range strings.Split(content, s.opts.Separator) {
		line = strings.TrimSpace(line)
		if grammar.IsComment(line) {
			continue
		}

		parsed, ok := grammar.ParseClassLine(line)
		if !ok {
			s.logger.Warn("cell line has a formatting issue",
				zap.String("cell", grid.CellName(col, row)),
				zap.String("line", line))
			warnings++
			continue
		}

		for _, d := range days.Expand(parsed.Days) {
			daysSeen[d] = true
		}
		totals[parsed.Subject] += days.Count(parsed.Days)

		schedule.Add(models.Entry{
			Period:    period,
			ClassName: className,
			Days:      parsed.Days,
			Subject:   parsed.Subject,
			Teacher:   parsed.Teacher,
		})
	}

	return warnings
}

// summarize renders the per-class subject totals string written next to the
// class row: "ENG: 6, MATH: 6, TOTAL: 12".
func summarize(totals map[string]int) string {
	subjects := make([]string, 0, len(totals))
	for subject := range totals {
		subjects = append(subjects, subject)
	}
	sort.Strings(subjects)

	total := 0
	parts := make([]string, 0, len(subjects)+1)
	for _, subject := range subjects {
		parts = append(parts, fmt.Sprintf("%s: %d", subject, totals[subject]))
		total += totals[subject]
	}
	parts = append(parts, fmt.Sprintf("TOTAL: %d", total))
	return strings.Join(parts, ", ")
}

func missingDays(seen map[int]bool) []int {
	var missing []int
	for d := 1; d <= models.WeekDays; d++ {
		if !seen[d] {
			missing = append(missing, d)
		}
	}
	return missing
}
