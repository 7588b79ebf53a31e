package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	opts, err := Load()
	require.NoError(t, err)

	require.Equal(t, "\n", opts.Separator)
	require.Equal(t, 8, opts.MaxPeriods)
	require.False(t, opts.ExpandFullNames)
	require.Equal(t, "CLASSWISE", opts.Sheets.Classwise)
	require.Equal(t, "TEACHERWISE", opts.Sheets.Teacherwise)
	require.Equal(t, "info", opts.Log.Level)
	require.Equal(t, "console", opts.Log.Format)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("TWIG_MAX_PERIODS", "6")
	t.Setenv("TWIG_SEPARATOR", ";")
	t.Setenv("TWIG_SHEET_CLASSWISE", "GRID")

	opts, err := Load()
	require.NoError(t, err)

	require.Equal(t, 6, opts.MaxPeriods)
	require.Equal(t, ";", opts.Separator)
	require.Equal(t, "GRID", opts.Sheets.Classwise)
}

func TestLoadUnescapesNewlineSeparator(t *testing.T) {
	t.Setenv("TWIG_SEPARATOR", `\n`)

	opts, err := Load()
	require.NoError(t, err)
	require.Equal(t, "\n", opts.Separator)
}

func TestValidateRejectsBadOptions(t *testing.T) {
	opts := &Options{Separator: "\n", MaxPeriods: 0}
	require.Error(t, Validate(opts))

	opts.MaxPeriods = 13
	require.Error(t, Validate(opts))
}
