package service

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/twig/internal/grammar"
	"github.com/noah-isme/twig/internal/models"
	"github.com/noah-isme/twig/internal/repository"
	"github.com/noah-isme/twig/pkg/config"
	"github.com/noah-isme/twig/pkg/days"
	"github.com/noah-isme/twig/pkg/errors"
	"github.com/noah-isme/twig/pkg/grid"
)

var weekdayNames = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// ClasswiseService produces the printable per-class sheets: one sheet per
// class row, stamped from a shared master template, with each weekday row
// listing "SUBJECT (TEACHER)" per period.
type ClasswiseService struct {
	opts   config.Options
	logger *zap.Logger
}

// NewClasswiseService wires the generator.
func NewClasswiseService(opts config.Options, logger *zap.Logger) *ClasswiseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClasswiseService{opts: opts, logger: logger}
}

// Generate fills the output workbook with one sheet per class. An existing
// master sheet in the output is reused so layout tweaks survive regeneration;
// only the school name is refreshed. Returns the recoverable warning count.
func (s *ClasswiseService) Generate(in, out *grid.Workbook, dir *repository.TeacherDirectory) (int, error) {
	input, ok := in.Sheet(s.opts.Sheets.Classwise)
	if !ok {
		return 0, errors.Clone(errors.ErrSheetNotFound, "sheet "+s.opts.Sheets.Classwise+" not found")
	}

	master := s.ensureMaster(out)

	warnings := 0
	row := 2
	for ; ; row++ {
		rawName := strings.TrimSpace(input.Cell(row, 1))
		if rawName == "" {
			break
		}
		if strings.HasPrefix(rawName, "#") {
			continue
		}

		name, alias := grammar.SplitClassName(rawName)
		sheet := s.freshClassSheet(out, master, name)

		display := name
		if alias != "" {
			display = name + " (" + alias + ")"
		}
		sheet.SetCell(2, 1, "Class: "+display)
		sheet.SetCell(2, 5, s.inChargeLabel(name, dir))

		warnings += s.fillClassSheet(input, sheet, row, name)
	}

	s.copyTimestamp(input, out, row)

	s.logger.Info("classwise sheets generated",
		zap.Int("sheets", len(out.SheetNames())-1),
		zap.Int("warnings", warnings))
	return warnings, nil
}

// ensureMaster creates the template sheet on first use: school name banner,
// period numbers on row 3 and weekday labels down the first column.
func (s *ClasswiseService) ensureMaster(out *grid.Workbook) *grid.Sheet {
	name := s.opts.Sheets.Master
	if master, ok := out.Sheet(name); ok {
		master.SetCell(1, 1, s.opts.SchoolName)
		return master
	}

	master := out.Ensure(name)
	master.SetCell(1, 1, s.opts.SchoolName)
	for p := 1; p <= s.opts.MaxPeriods; p++ {
		master.SetCell(3, p+1, strconv.Itoa(p))
	}
	for d, label := range weekdayNames {
		master.SetCell(d+4, 1, label)
	}
	return master
}

// freshClassSheet replaces any stale sheet for the class with a copy of the
// master template.
func (s *ClasswiseService) freshClassSheet(out *grid.Workbook, master *grid.Sheet, name string) *grid.Sheet {
	out.Remove(name)
	sheet := out.Ensure(name)
	for row := 1; row <= master.MaxRow(); row++ {
		for col := 1; col <= master.MaxCol(); col++ {
			if value := master.Cell(row, col); value != "" {
				sheet.SetCell(row, col, value)
			}
		}
	}
	return sheet
}

func (s *ClasswiseService) inChargeLabel(className string, dir *repository.TeacherDirectory) string {
	if dir != nil {
		if record, ok := dir.InChargeOf(className); ok {
			return "Class In-charge: " + record.InChargeTitle() + " " + record.Name
		}
	}
	return "Class In-charge:" + strings.Repeat("_", 25)
}

// fillClassSheet distributes one class row of the source grid across the
// weekday rows of its sheet and returns the warning count.
func (s *ClasswiseService) fillClassSheet(input, sheet *grid.Sheet, row int, className string) int {
	warnings := 0

	for col := 2; col <= s.opts.MaxPeriods+1; col++ {
		content := input.Cell(row, col)
		if strings.TrimSpace(content) == "" {
			s.logger.Warn("empty period cell",
				zap.String("cell", grid.CellName(col, row)),
				zap.String("class", className))
			warnings++
			continue
		}
		if grammar.IsCellDisabled(content) {
			continue
		}

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

			text := parsed.Subject + " (" + parsed.Teacher + ")"
			for _, d := range days.Expand(parsed.Days) {
				target := d + 3
				if existing := sheet.Cell(target, col); existing != "" {
					sheet.SetCell(target, col, existing+s.opts.Separator+text)
				} else {
					sheet.SetCell(target, col, text)
				}
			}
		}
	}

	return warnings
}

// copyTimestamp carries the source sheet's timestamp row onto every class
// sheet so printouts show when the grid was last regenerated.
func (s *ClasswiseService) copyTimestamp(input *grid.Sheet, out *grid.Workbook, afterRow int) {
	timestamp := input.Cell(afterRow, 2)
	if strings.TrimSpace(timestamp) == "" {
		return
	}

	stampRow := models.WeekDays + 4
	for _, name := range out.SheetNames() {
		if name == s.opts.Sheets.Master {
			continue
		}
		if sheet, ok := out.Sheet(name); ok {
			sheet.SetCell(stampRow, 2, timestamp)
		}
	}
}
