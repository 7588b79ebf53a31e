package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/twig/internal/repository"
	appErrors "github.com/noah-isme/twig/pkg/errors"
	"github.com/noah-isme/twig/pkg/grid"
)

func classwiseInput() *grid.Workbook {
	wb := grid.NewWorkbook()
	sheet := wb.Ensure("CLASSWISE")
	sheet.SetCell(2, 1, "10A")
	sheet.SetCell(2, 2, "ENG (1-2) AB")
	sheet.SetCell(2, 3, "MATH (1-2) CD")
	sheet.SetCell(3, 2, "Last updated on Mon Jan  2 15:04:05 2023")
	return wb
}

func inChargeDirectory(t *testing.T) *repository.TeacherDirectory {
	t.Helper()

	teachers := grid.NewSheet("TEACHERS")
	teachers.SetCell(1, 1, "SHORTNAME")
	teachers.SetCell(1, 2, "NAME")
	teachers.SetCell(1, 3, "GENDER")
	teachers.SetCell(1, 4, "INCHARGE")
	teachers.SetCell(2, 1, "AB")
	teachers.SetCell(2, 2, "Amrik Bhullar")
	teachers.SetCell(2, 3, "f")
	teachers.SetCell(2, 4, "10A")

	dir, err := repository.LoadTeacherDirectory(teachers, nil)
	require.NoError(t, err)
	return dir
}

func TestClasswiseGeneratesMasterAndClassSheets(t *testing.T) {
	opts := testOptions()
	opts.SchoolName = "GSSS TESTVILLE"

	out := grid.NewWorkbook()
	warnings, err := NewClasswiseService(opts, nil).Generate(classwiseInput(), out, inChargeDirectory(t))
	require.NoError(t, err)
	require.Zero(t, warnings)

	master, ok := out.Sheet("MASTER")
	require.True(t, ok)
	require.Equal(t, "GSSS TESTVILLE", master.Cell(1, 1))
	require.Equal(t, "1", master.Cell(3, 2))
	require.Equal(t, "2", master.Cell(3, 3))
	require.Equal(t, "Mon", master.Cell(4, 1))
	require.Equal(t, "Sat", master.Cell(9, 1))

	sheet, ok := out.Sheet("10A")
	require.True(t, ok)
	require.Equal(t, "Class: 10A", sheet.Cell(2, 1))
	require.Equal(t, "Class In-charge: Ms Amrik Bhullar", sheet.Cell(2, 5))

	// template carried over
	require.Equal(t, "GSSS TESTVILLE", sheet.Cell(1, 1))
	require.Equal(t, "Mon", sheet.Cell(4, 1))

	// ENG on days 1-2 in period 1, MATH in period 2
	require.Equal(t, "ENG (AB)", sheet.Cell(4, 2))
	require.Equal(t, "ENG (AB)", sheet.Cell(5, 2))
	require.Equal(t, "MATH (CD)", sheet.Cell(4, 3))
	require.Empty(t, sheet.Cell(6, 2))

	require.Equal(t, "Last updated on Mon Jan  2 15:04:05 2023", sheet.Cell(10, 2))
}

func TestClasswiseUnknownInChargeLeavesBlank(t *testing.T) {
	out := grid.NewWorkbook()
	_, err := NewClasswiseService(testOptions(), nil).Generate(classwiseInput(), out, nil)
	require.NoError(t, err)

	sheet, _ := out.Sheet("10A")
	require.True(t, strings.HasPrefix(sheet.Cell(2, 5), "Class In-charge:_"))
}

func TestClasswiseAccumulatesSharedDayCell(t *testing.T) {
	in := grid.NewWorkbook()
	sheet := in.Ensure("CLASSWISE")
	sheet.SetCell(2, 1, "10A")
	sheet.SetCell(2, 2, "ENG (1-3) AB\nSCI (1-3) EF")
	sheet.SetCell(2, 3, "MATH (1-6) CD")

	out := grid.NewWorkbook()
	_, err := NewClasswiseService(testOptions(), nil).Generate(in, out, nil)
	require.NoError(t, err)

	class, _ := out.Sheet("10A")
	require.Equal(t, "ENG (AB)\nSCI (EF)", class.Cell(4, 2))
}

func TestClasswiseRequiresInputSheet(t *testing.T) {
	_, err := NewClasswiseService(testOptions(), nil).Generate(grid.NewWorkbook(), grid.NewWorkbook(), nil)

	require.Error(t, err)
	require.Equal(t, appErrors.ErrSheetNotFound.Code, appErrors.FromError(err).Code)
}

func TestClasswiseRegenerationReplacesStaleSheet(t *testing.T) {
	out := grid.NewWorkbook()
	stale := out.Ensure("10A")
	stale.SetCell(4, 2, "HIST (ZZ)")

	_, err := NewClasswiseService(testOptions(), nil).Generate(classwiseInput(), out, nil)
	require.NoError(t, err)

	sheet, _ := out.Sheet("10A")
	require.Equal(t, "ENG (AB)", sheet.Cell(4, 2))
}
