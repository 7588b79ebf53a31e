package grammar

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseClassLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want ClassAssignment
		ok   bool
	}{
		{"plain", "MATH (1-3) SK", ClassAssignment{"MATH", "1-3", "SK"}, true},
		{"lowercase uppercased", "math (1-3) sk", ClassAssignment{"MATH", "1-3", "SK"}, true},
		{"multi word subject", "ROT HIS (2, 4-5) AS", ClassAssignment{"ROT HIS", "2, 4-5", "AS"}, true},
		{"dotted subject", "P.E. (1-6) RK", ClassAssignment{"P.E.", "1-6", "RK"}, true},
		{"surrounding whitespace", "  ENG (4-6) AR  ", ClassAssignment{"ENG", "4-6", "AR"}, true},
		{"missing teacher", "MATH (1-3)", ClassAssignment{}, false},
		{"day out of range", "MATH (1-7) SK", ClassAssignment{}, false},
		{"no days", "MATH SK", ClassAssignment{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseClassLine(tt.line)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				require.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseTeacherLine(t *testing.T) {
	got, ok := ParseTeacherLine("10A (1-2, 4) MATH")
	require.True(t, ok)
	require.Equal(t, TeacherAssignment{ClassName: "10A", Days: "1-2, 4", Subject: "MATH"}, got)

	got, ok = ParseTeacherLine("11B (6) ROT HIS")
	require.True(t, ok)
	require.Equal(t, TeacherAssignment{ClassName: "11B", Days: "6", Subject: "ROT HIS"}, got)

	_, ok = ParseTeacherLine("not a timetable line")
	require.False(t, ok)
}

func TestComments(t *testing.T) {
	require.True(t, IsComment(""))
	require.True(t, IsComment("   "))
	require.True(t, IsComment("# disabled line"))
	require.False(t, IsComment("MATH (1-3) SK"))

	require.True(t, IsCellDisabled("## whole cell off"))
	require.False(t, IsCellDisabled("# just one line"))
}

func TestClashMark(t *testing.T) {
	require.True(t, IsClashMark("**CLASH** [2]:"))
	require.False(t, IsClashMark("10A (1-2) MATH"))
}

func TestClassNumber(t *testing.T) {
	require.Equal(t, "10", ClassNumber("10A"))
	require.Equal(t, "9", ClassNumber("9B"))
	// No trailing section letter: name is already a class number.
	require.Equal(t, "10", ClassNumber("10"))
	require.Equal(t, "", ClassNumber(""))
}

func TestSplitClassName(t *testing.T) {
	name, alias := SplitClassName("10A@Science")
	require.Equal(t, "10A", name)
	require.Equal(t, "Science", alias)

	name, alias = SplitClassName("10A")
	require.Equal(t, "10A", name)
	require.Equal(t, "", alias)
}
