package models

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// FormatDaywise renders per-day period counts as the compact display string
// stored in the teacherwise sheet, e.g. "1: 4, 2: 5, 3: 6, 4: 6, 5: 5, 6: 4".
func FormatDaywise(counts map[int]int) string {
	daysList := make([]int, 0, len(counts))
	for d := range counts {
		daysList = append(daysList, d)
	}
	sort.Ints(daysList)

	parts := make([]string, 0, len(daysList))
	for _, d := range daysList {
		parts = append(parts, fmt.Sprintf("%d: %d", d, counts[d]))
	}
	return strings.Join(parts, ", ")
}

// ParseDaywise inverts FormatDaywise. Malformed items are skipped so a
// hand-edited cell degrades to partial data rather than failing the run.
func ParseDaywise(text string) map[int]int {
	counts := make(map[int]int)
	for _, item := range strings.Split(text, ",") {
		parts := strings.SplitN(item, ":", 2)
		if len(parts) != 2 {
			continue
		}
		day, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
		count, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err1 != nil || err2 != nil {
			continue
		}
		counts[day] = count
	}
	return counts
}
