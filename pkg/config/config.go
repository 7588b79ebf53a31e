package config

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	appErrors "github.com/noah-isme/twig/pkg/errors"
)

// SheetNames holds the conventional sheet names inside the workbook.
type SheetNames struct {
	Classwise    string `validate:"required"`
	Teacherwise  string `validate:"required"`
	Teachers     string `validate:"required"`
	Vacant       string `validate:"required"`
	FreeTeachers string `validate:"required"`
	Master       string `validate:"required"`
}

// LogConfig controls logger construction.
type LogConfig struct {
	Level  string
	Format string
}

// Options is the resolved configuration bag consumed by all services.
// It is built once at startup and passed by value; there is no ambient
// global state.
type Options struct {
	Separator          string `validate:"required"`
	MaxPeriods         int    `validate:"min=1,max=12"`
	ExpandFullNames    bool
	SuppressClashMarks bool
	KeepTimestamp      bool
	SchoolName         string

	Sheets SheetNames
	Log    LogConfig
}

// Load resolves Options from the environment (and an optional .env file),
// applying defaults and validating the result.
func Load() (*Options, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.SetEnvPrefix("TWIG")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// a missing .env file is fine, everything has defaults
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Exit, "failed to read configuration")
		}
	}

	opts := &Options{
		Separator:          unescapeSeparator(v.GetString("SEPARATOR")),
		MaxPeriods:         v.GetInt("MAX_PERIODS"),
		ExpandFullNames:    v.GetBool("EXPAND_FULL_NAMES"),
		SuppressClashMarks: v.GetBool("SUPPRESS_CLASH_MARKS"),
		KeepTimestamp:      v.GetBool("KEEP_TIMESTAMP"),
		SchoolName:         v.GetString("SCHOOL_NAME"),
		Sheets: SheetNames{
			Classwise:    v.GetString("SHEET_CLASSWISE"),
			Teacherwise:  v.GetString("SHEET_TEACHERWISE"),
			Teachers:     v.GetString("SHEET_TEACHERS"),
			Vacant:       v.GetString("SHEET_VACANT"),
			FreeTeachers: v.GetString("SHEET_FREE_TEACHERS"),
			Master:       v.GetString("SHEET_MASTER"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}

	if err := Validate(opts); err != nil {
		return nil, err
	}

	return opts, nil
}

// Validate checks an Options value against its constraints.
func Validate(opts *Options) error {
	if err := validator.New().Struct(opts); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Exit, "invalid configuration")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SEPARATOR", "\n")
	v.SetDefault("MAX_PERIODS", 8)
	v.SetDefault("EXPAND_FULL_NAMES", false)
	v.SetDefault("SUPPRESS_CLASH_MARKS", false)
	v.SetDefault("KEEP_TIMESTAMP", false)
	v.SetDefault("SCHOOL_NAME", "")

	v.SetDefault("SHEET_CLASSWISE", "CLASSWISE")
	v.SetDefault("SHEET_TEACHERWISE", "TEACHERWISE")
	v.SetDefault("SHEET_TEACHERS", "TEACHERS")
	v.SetDefault("SHEET_VACANT", "VACANT")
	v.SetDefault("SHEET_FREE_TEACHERS", "FREE_TEACHERS")
	v.SetDefault("SHEET_MASTER", "MASTER")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
}

// unescapeSeparator allows passing the newline separator through
// environments and flags that cannot carry a literal newline.
func unescapeSeparator(raw string) string {
	if raw == `\n` {
		return "\n"
	}
	return raw
}
