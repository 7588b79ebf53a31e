package models

import (
	"sort"

	"github.com/noah-isme/twig/pkg/days"
)

// WeekDays is the number of working days in the school week (Mon..Sat).
const WeekDays = 6

// Entry is one assignment unit parsed from a classwise cell line: the given
// class takes the subject from the teacher at the given period on the listed
// days. Days keeps the raw compact form from the source cell.
type Entry struct {
	Period    int
	ClassName string
	Days      string
	Subject   string
	Teacher   string
}

// ExpandedDays returns the entry's day list in expanded form.
func (e Entry) ExpandedDays() []int {
	return days.Expand(e.Days)
}

// Schedule is the teacher-indexed timetable: teacher code to the entries
// assigned to that teacher, in classwise encounter order. It is built once
// per run and treated as read-only by downstream consumers.
type Schedule map[string][]Entry

// Add appends an entry under its teacher code.
func (s Schedule) Add(e Entry) {
	s[e.Teacher] = append(s[e.Teacher], e)
}

// Teachers returns all teacher codes present, sorted.
func (s Schedule) Teachers() []string {
	codes := make([]string, 0, len(s))
	for code := range s {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// CountPeriods reports the total weekly periods for a teacher. Entries are
// grouped by period and the expanded days are unioned within each group, so
// overlapping lines never double-count a (period, day) pair.
func (s Schedule) CountPeriods(teacher string) int {
	periodDays := make(map[int]map[int]bool)
	for _, entry := range s[teacher] {
		set := periodDays[entry.Period]
		if set == nil {
			set = make(map[int]bool)
			periodDays[entry.Period] = set
		}
		for _, d := range entry.ExpandedDays() {
			set[d] = true
		}
	}

	total := 0
	for _, set := range periodDays {
		total += len(set)
	}
	return total
}

// CountPeriodsDaywise reports, for each weekday 1..6, the number of distinct
// periods at which the teacher has any entry. Days without entries map to 0.
func (s Schedule) CountPeriodsDaywise(teacher string) map[int]int {
	dayPeriods := make(map[int]map[int]bool)
	for _, entry := range s[teacher] {
		for _, d := range entry.ExpandedDays() {
			if dayPeriods[d] == nil {
				dayPeriods[d] = make(map[int]bool)
			}
			dayPeriods[d][entry.Period] = true
		}
	}

	counts := make(map[int]int, WeekDays)
	for d := 1; d <= WeekDays; d++ {
		counts[d] = len(dayPeriods[d])
	}
	return counts
}

// BusyPeriods builds the teacher -> day -> occupied-period lookup used by
// the free-teacher report.
func (s Schedule) BusyPeriods() map[string]map[int]map[int]bool {
	busy := make(map[string]map[int]map[int]bool, len(s))
	for teacher, entries := range s {
		busy[teacher] = make(map[int]map[int]bool)
		for _, entry := range entries {
			for _, d := range entry.ExpandedDays() {
				if busy[teacher][d] == nil {
					busy[teacher][d] = make(map[int]bool)
				}
				busy[teacher][d][entry.Period] = true
			}
		}
	}
	return busy
}
