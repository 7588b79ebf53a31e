// Package days implements the compact day-range notation used throughout
// the timetable sheets: "1-3, 5" denotes Monday to Wednesday plus Friday
// (1=Mon .. 6=Sat).
package days

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Expand parses a compact day-range string into individual days.
// "1-2, 4-6" becomes [1 2 4 5 6]. Reversed ranges are corrected ("6-4" is
// the same as "4-6") and non-numeric groups are skipped.
func Expand(text string) []int {
	var result []int
	for _, group := range strings.Split(text, ",") {
		group = strings.TrimSpace(group)
		if group == "" {
			continue
		}
		if strings.Contains(group, "-") {
			parts := strings.SplitN(group, "-", 2)
			start, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
			end, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
			if err1 != nil || err2 != nil {
				continue
			}
			if end < start {
				start, end = end, start
			}
			for d := start; d <= end; d++ {
				result = append(result, d)
			}
			continue
		}
		d, err := strconv.Atoi(group)
		if err != nil {
			continue
		}
		result = append(result, d)
	}
	return result
}

// Compress renders a day list in canonical compact form: sorted, deduped,
// maximal runs joined by ", ". [1 2 3 5 6] becomes "1-3, 5-6".
func Compress(daysList []int) string {
	if len(daysList) == 0 {
		return ""
	}

	uniq := make([]int, 0, len(daysList))
	seen := make(map[int]bool, len(daysList))
	for _, d := range daysList {
		if !seen[d] {
			seen[d] = true
			uniq = append(uniq, d)
		}
	}
	sort.Ints(uniq)

	var runs []string
	start, prev := uniq[0], uniq[0]
	flush := func() {
		if start == prev {
			runs = append(runs, strconv.Itoa(start))
		} else {
			runs = append(runs, fmt.Sprintf("%d-%d", start, prev))
		}
	}
	for _, d := range uniq[1:] {
		if d == prev+1 {
			prev = d
			continue
		}
		flush()
		start, prev = d, d
	}
	flush()

	return strings.Join(runs, ", ")
}

// Count reports the number of distinct days in a compact day-range string.
func Count(text string) int {
	seen := make(map[int]bool)
	for _, d := range Expand(text) {
		seen[d] = true
	}
	return len(seen)
}
