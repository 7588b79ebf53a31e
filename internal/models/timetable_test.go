package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScheduleTeachersSorted(t *testing.T) {
	s := make(Schedule)
	s.Add(Entry{Teacher: "CD"})
	s.Add(Entry{Teacher: "AB"})
	s.Add(Entry{Teacher: "AB"})

	require.Equal(t, []string{"AB", "CD"}, s.Teachers())
}

func TestCountPeriodsDeduplicatesDayPeriodPairs(t *testing.T) {
	s := make(Schedule)
	// overlapping day lists within the same period count once
	s.Add(Entry{Teacher: "AB", Period: 1, Days: "1-3"})
	s.Add(Entry{Teacher: "AB", Period: 1, Days: "2-4"})
	s.Add(Entry{Teacher: "AB", Period: 2, Days: "1"})

	require.Equal(t, 5, s.CountPeriods("AB"))
}

func TestCountPeriodsDaywiseCoversAllDays(t *testing.T) {
	s := make(Schedule)
	s.Add(Entry{Teacher: "AB", Period: 1, Days: "1-2"})
	s.Add(Entry{Teacher: "AB", Period: 2, Days: "1"})

	counts := s.CountPeriodsDaywise("AB")
	require.Equal(t, map[int]int{1: 2, 2: 1, 3: 0, 4: 0, 5: 0, 6: 0}, counts)
}

func TestBusyPeriods(t *testing.T) {
	s := make(Schedule)
	s.Add(Entry{Teacher: "AB", Period: 3, Days: "5-6"})

	busy := s.BusyPeriods()
	require.True(t, busy["AB"][5][3])
	require.True(t, busy["AB"][6][3])
	require.False(t, busy["AB"][4][3])
}

func TestDaywiseRoundTrip(t *testing.T) {
	counts := map[int]int{1: 4, 2: 5, 3: 6, 4: 6, 5: 5, 6: 4}

	text := FormatDaywise(counts)
	require.Equal(t, "1: 4, 2: 5, 3: 6, 4: 6, 5: 5, 6: 4", text)
	require.Equal(t, counts, ParseDaywise(text))
}

func TestParseDaywiseSkipsMalformedItems(t *testing.T) {
	counts := ParseDaywise("1: 4, garbage, 3: two, 6: 1")
	require.Equal(t, map[int]int{1: 4, 6: 1}, counts)
}

func TestTeacherRecordLabel(t *testing.T) {
	r := TeacherRecord{ShortName: "AB", Name: "Amrik Bhullar"}

	require.Equal(t, "AB", r.Label(false))
	require.Equal(t, "Amrik Bhullar, AB", r.Label(true))
	require.Equal(t, "XY", TeacherRecord{ShortName: "XY"}.Label(true))
}

func TestTeacherRecordInChargeTitle(t *testing.T) {
	require.Equal(t, "Ms", TeacherRecord{Gender: "f"}.InChargeTitle())
	require.Equal(t, "Ms", TeacherRecord{Gender: "F"}.InChargeTitle())
	require.Equal(t, "Mr", TeacherRecord{Gender: "m"}.InChargeTitle())
	require.Equal(t, "Mr", TeacherRecord{}.InChargeTitle())
}
