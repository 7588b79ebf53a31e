package service

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/twig/internal/grammar"
	"github.com/noah-isme/twig/pkg/config"
	"github.com/noah-isme/twig/pkg/errors"
	"github.com/noah-isme/twig/pkg/grid"
)

// DiffResult lists what changed between two revisions of the class grid.
type DiffResult struct {
	ChangedCells     []string
	AffectedTeachers []string
}

// DiffService compares two revisions of the class grid cell by cell. Every
// teacher referenced by either version of a changed cell counts as affected;
// that overshoots occasionally but never misses anyone.
type DiffService struct {
	opts   config.Options
	logger *zap.Logger
}

// NewDiffService wires the comparator.
func NewDiffService(opts config.Options, logger *zap.Logger) *DiffService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DiffService{opts: opts, logger: logger}
}

// Compare walks class rows of the base grid and reports cells whose content
// differs in the current grid, together with the affected teachers.
func (s *DiffService) Compare(base, current *grid.Workbook) (*DiffResult, error) {
	baseSheet, ok := base.Sheet(s.opts.Sheets.Classwise)
	if !ok {
		return nil, errors.Clone(errors.ErrSheetNotFound, "sheet "+s.opts.Sheets.Classwise+" not found in base workbook")
	}
	currentSheet, ok := current.Sheet(s.opts.Sheets.Classwise)
	if !ok {
		return nil, errors.Clone(errors.ErrSheetNotFound, "sheet "+s.opts.Sheets.Classwise+" not found in current workbook")
	}

	result := &DiffResult{}
	affected := make(map[string]bool)

	for row := 2; strings.TrimSpace(baseSheet.Cell(row, 1)) != ""; row++ {
		for col := 1; col <= s.opts.MaxPeriods+1; col++ {
			if baseSheet.Cell(row, col) == currentSheet.Cell(row, col) {
				continue
			}

			cell := grid.CellName(col, row)
			result.ChangedCells = append(result.ChangedCells, cell)

			for _, code := range s.teachersInCell(baseSheet, row, col) {
				affected[code] = true
			}
			for _, code := range s.teachersInCell(currentSheet, row, col) {
				affected[code] = true
			}
		}
	}

	for code := range affected {
		result.AffectedTeachers = append(result.AffectedTeachers, code)
	}
	sort.Strings(result.AffectedTeachers)

	s.logger.Info("grid comparison done",
		zap.Int("changed_cells", len(result.ChangedCells)),
		zap.Int("affected_teachers", len(result.AffectedTeachers)))
	return result, nil
}

func (s *DiffService) teachersInCell(sheet *grid.Sheet, row, col int) []string {
	var teachers []string
	for _, line := range strings.Split(sheet.Cell(row, col), s.opts.Separator) {
		line = strings.TrimSpace(line)
		if grammar.IsComment(line) {
			continue
		}
		parsed, ok := grammar.ParseClassLine(line)
		if !ok {
			s.logger.Warn("cell line has a formatting issue",
				zap.String("cell", grid.CellName(col, row)),
				zap.String("line", line))
			continue
		}
		teachers = append(teachers, parsed.Teacher)
	}
	return teachers
}
