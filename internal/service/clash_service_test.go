package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/twig/pkg/grid"
)

func TestClashDetectedAndAnnotated(t *testing.T) {
	sheet := grid.NewSheet("TEACHERWISE")
	sheet.SetCell(2, 1, "AB")
	sheet.SetCell(2, 2, "10A (1-3) MATH\n9B (2-4) ENG")

	total := NewClashService(testOptions(), nil).DetectAndAnnotate(sheet)

	require.Equal(t, 2, total)
	require.Equal(t, "**CLASH** [2, 3]:\n10A (1-3) MATH\n9B (2-4) ENG", sheet.Cell(2, 2))
}

func TestClashSameClassNumberIsNotAClash(t *testing.T) {
	// two sections of class 10 taking the same subject together
	sheet := grid.NewSheet("TEACHERWISE")
	sheet.SetCell(2, 1, "AB")
	sheet.SetCell(2, 2, "10A (1-3) MATH\n10B (1-3) MATH")

	total := NewClashService(testOptions(), nil).DetectAndAnnotate(sheet)

	require.Zero(t, total)
	require.Equal(t, "10A (1-3) MATH\n10B (1-3) MATH", sheet.Cell(2, 2))
}

func TestClashDifferentSubjectSameClassNumberClashes(t *testing.T) {
	sheet := grid.NewSheet("TEACHERWISE")
	sheet.SetCell(2, 1, "AB")
	sheet.SetCell(2, 2, "10A (1) MATH\n10B (1) SCI")

	total := NewClashService(testOptions(), nil).DetectAndAnnotate(sheet)

	require.Equal(t, 1, total)
	require.Equal(t, "**CLASH** [1]:\n10A (1) MATH\n10B (1) SCI", sheet.Cell(2, 2))
}

func TestClashDetectionIsRepeatable(t *testing.T) {
	sheet := grid.NewSheet("TEACHERWISE")
	sheet.SetCell(2, 1, "AB")
	sheet.SetCell(2, 2, "10A (1-3) MATH\n9B (2-4) ENG")

	svc := NewClashService(testOptions(), nil)
	first := svc.DetectAndAnnotate(sheet)
	annotated := sheet.Cell(2, 2)
	second := svc.DetectAndAnnotate(sheet)

	require.Equal(t, first, second)
	require.Equal(t, annotated, sheet.Cell(2, 2))
}

func TestClashMarksSuppressed(t *testing.T) {
	opts := testOptions()
	opts.SuppressClashMarks = true

	sheet := grid.NewSheet("TEACHERWISE")
	sheet.SetCell(2, 1, "AB")
	sheet.SetCell(2, 2, "10A (1-3) MATH\n9B (2-4) ENG")

	total := NewClashService(opts, nil).DetectAndAnnotate(sheet)

	require.Equal(t, 2, total)
	require.Equal(t, "10A (1-3) MATH\n9B (2-4) ENG", sheet.Cell(2, 2))
}

func TestClashIgnoresUnparsableLines(t *testing.T) {
	sheet := grid.NewSheet("TEACHERWISE")
	sheet.SetCell(2, 1, "AB")
	sheet.SetCell(2, 2, "scribbled note\n10A (1-3) MATH")

	total := NewClashService(testOptions(), nil).DetectAndAnnotate(sheet)

	require.Zero(t, total)
}
