package service

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/twig/internal/grammar"
	"github.com/noah-isme/twig/pkg/config"
	"github.com/noah-isme/twig/pkg/days"
	"github.com/noah-isme/twig/pkg/grid"
)

// ClashService finds day/period collisions in the teacherwise sheet.
//
// It deliberately re-parses the serialized sheet text instead of reading the
// in-memory schedule: the sheet may have been edited by hand since it was
// generated, and clashes must be detectable in whatever is actually there.
type ClashService struct {
	opts   config.Options
	logger *zap.Logger
}

// NewClashService wires the detector.
func NewClashService(opts config.Options, logger *zap.Logger) *ClashService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClashService{opts: opts, logger: logger}
}

// DetectAndAnnotate scans every teacher/period cell and returns the total
// number of clash days found. Offending cells are prefixed with the clash
// marker unless suppression is configured. Marker lines from earlier runs
// are skipped on re-parse, so repeated detection reports the same total.
func (s *ClashService) DetectAndAnnotate(sheet *grid.Sheet) int {
	total := 0

	for row := 2; strings.TrimSpace(sheet.Cell(row, 1)) != ""; row++ {
		teacher := strings.TrimSpace(sheet.Cell(row, 1))

		for col := 2; col <= s.opts.MaxPeriods+1; col++ {
			content := sheet.Cell(row, col)
			if strings.TrimSpace(content) == "" {
				continue
			}

			clashDays := s.cellClashDays(content, row, col)
			if len(clashDays) == 0 {
				continue
			}
			total += len(clashDays)

			if s.opts.SuppressClashMarks {
				s.logger.Info("clash detected",
					zap.String("cell", grid.CellName(col, row)),
					zap.String("teacher", teacher),
					zap.Ints("days", clashDays))
				continue
			}
			if !strings.HasPrefix(content, grammar.ClashMark) {
				sheet.SetCell(row, col, grammar.ClashMark+formatDayList(clashDays)+":"+s.opts.Separator+content)
			}
		}
	}

	return total
}

// cellClashDays buckets each parsed line's class-number/subject token per
// day. A day whose bucket holds more than one distinct token is a clash:
// two sections of the same class number taking the same subject reduce to
// one token and do not clash, anything else does.
func (s *ClashService) cellClashDays(content string, row, col int) []int {
	tokensByDay := make(map[int]map[string]bool)

	for _, line := range strings.Split(content, s.opts.Separator) {
		line = strings.TrimSpace(line)
		if line == "" || grammar.IsClashMark(line) {
			continue
		}

		parsed, ok := grammar.ParseTeacherLine(line)
		if !ok {
			s.logger.Warn("teacherwise line has a formatting issue",
				zap.String("cell", grid.CellName(col, row)),
				zap.String("line", line))
			continue
		}

		token := grammar.ClassNumber(parsed.ClassName) + "-" + parsed.Subject
		for _, d := range days.Expand(parsed.Days) {
			if tokensByDay[d] == nil {
				tokensByDay[d] = make(map[string]bool)
			}
			tokensByDay[d][token] = true
		}
	}

	var clashDays []int
	for d, tokens := range tokensByDay {
		if len(tokens) > 1 {
			clashDays = append(clashDays, d)
		}
	}
	sort.Ints(clashDays)
	return clashDays
}

func formatDayList(daysList []int) string {
	parts := make([]string, len(daysList))
	for i, d := range daysList {
		parts[i] = strconv.Itoa(d)
	}
	return fmt.Sprintf("[%s]", strings.Join(parts, ", "))
}
