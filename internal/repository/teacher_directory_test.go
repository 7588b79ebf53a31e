package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/twig/pkg/errors"
	"github.com/noah-isme/twig/pkg/grid"
)

func teacherSheet(rows [][]string) *grid.Sheet {
	s := grid.NewSheet("TEACHERS")
	for r, row := range rows {
		for c, value := range row {
			s.SetCell(r+1, c+1, value)
		}
	}
	return s
}

func TestLoadTeacherDirectory(t *testing.T) {
	sheet := teacherSheet([][]string{
		{"NUMBER", "SHORTNAME", "NAME", "POST", "GENDER", "INCHARGE", "MOBILE"},
		{"1", "SK", "S KUMAR", "Lect", "m", "10A", "9000000001"},
		{"2", "AR", "A RANI", "Master", "f", "", "9000000002"},
		{"3", "#OLD", "LEFT SCHOOL", "", "", "", ""},
		{"4", "RK", "R KAUR", "Lect", "f", "9B", ""},
	})

	dir, err := LoadTeacherDirectory(sheet, zap.NewNop())
	require.NoError(t, err)
	require.Equal(t, 3, dir.Len())
	require.Equal(t, []string{"SK", "AR", "RK"}, dir.Codes())

	sk, ok := dir.Get("SK")
	require.True(t, ok)
	require.Equal(t, "S KUMAR", sk.Name)
	require.Equal(t, "10A", sk.InCharge)
	require.Equal(t, "9000000001", sk.Extra["MOBILE"])

	_, ok = dir.Get("#OLD")
	require.False(t, ok)

	incharge, ok := dir.InChargeOf("9B")
	require.True(t, ok)
	require.Equal(t, "RK", incharge.ShortName)
	require.Equal(t, "Ms", incharge.InChargeTitle())

	_, ok = dir.InChargeOf("12C")
	require.False(t, ok)
}

func TestLoadTeacherDirectoryMissingShortName(t *testing.T) {
	sheet := teacherSheet([][]string{
		{"NUMBER", "NAME"},
		{"1", "S KUMAR"},
	})

	dir, err := LoadTeacherDirectory(sheet, zap.NewNop())
	require.Nil(t, dir)
	require.ErrorContains(t, err, "SHORTNAME")
	require.Equal(t, appErrors.ErrColumnNotFound.Code, appErrors.FromError(err).Code)
}

func TestLoadTeacherDirectoryDuplicateKey(t *testing.T) {
	sheet := teacherSheet([][]string{
		{"SHORTNAME", "NAME"},
		{"SK", "S KUMAR"},
		{"SK", "S KAUR"},
	})

	dir, err := LoadTeacherDirectory(sheet, zap.NewNop())
	require.Nil(t, dir)
	require.Equal(t, appErrors.ErrDuplicateTeacher.Code, appErrors.FromError(err).Code)
}

func TestSortedTeachers(t *testing.T) {
	sheet := teacherSheet([][]string{
		{"SHORTNAME"},
		{"SK"},
		{"AR"},
		{"RK"},
	})
	dir, err := LoadTeacherDirectory(sheet, zap.NewNop())
	require.NoError(t, err)

	// Directory order first for known codes, schedule-only codes sorted last.
	got := dir.SortedTeachers([]string{"ZZ", "RK", "SK", "BB"})
	require.Equal(t, []string{"SK", "RK", "BB", "ZZ"}, got)

	// Directory teachers with no schedule entries are omitted.
	got = dir.SortedTeachers([]string{"AR"})
	require.Equal(t, []string{"AR"}, got)
}
