package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noah-isme/twig/internal/repository"
	"github.com/noah-isme/twig/internal/service"
	"github.com/noah-isme/twig/pkg/config"
	appErrors "github.com/noah-isme/twig/pkg/errors"
	"github.com/noah-isme/twig/pkg/export"
	"github.com/noah-isme/twig/pkg/grid"
)

var version = "dev"

// codeWarnings marks a run that finished but logged recoverable warnings.
// The process exits 1 so scripted callers notice, without a fatal message.
const codeWarnings = "WARNINGS"

func warningsErr(count int) error {
	return appErrors.New(codeWarnings, 1, fmt.Sprintf("completed with %d warnings", count))
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "twig",
		Short:         "Timetable manipulation utility",
		Long:          "Generates teacherwise (or classwise) timetables from a classwise timetable workbook.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}

	flags := root.PersistentFlags()
	flags.StringP("separator", "s", `\n`, "line separator inside cells")
	flags.BoolP("keepstamp", "k", false, "keep the timestamp intact")
	flags.Int("max-periods", 0, "periods per day (overrides configuration)")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("log-format", "", "log format (console, json)")

	root.AddCommand(
		newTeacherwiseCmd(),
		newClasswiseCmd(),
		newVacantCmd(),
		newFreeCmd(),
		newDiffCmd(),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("twig version %s\n", version)
		},
	}
}

type flagOverrides struct {
	cmd *cobra.Command
}

// apply folds changed CLI flags over the environment configuration. Flags
// always win over the environment.
func (o flagOverrides) apply(opts *config.Options) {
	flags := o.cmd.Flags()

	if flags.Changed("separator") {
		sep, _ := flags.GetString("separator")
		if sep == `\n` {
			sep = "\n"
		}
		opts.Separator = sep
	}
	if flags.Changed("keepstamp") {
		opts.KeepTimestamp, _ = flags.GetBool("keepstamp")
	}
	if flags.Changed("max-periods") {
		opts.MaxPeriods, _ = flags.GetInt("max-periods")
	}
	if flags.Changed("fullname") {
		opts.ExpandFullNames, _ = flags.GetBool("fullname")
	}
	if flags.Changed("nomarks") {
		opts.SuppressClashMarks, _ = flags.GetBool("nomarks")
	}
	if flags.Changed("log-level") {
		opts.Log.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-format") {
		opts.Log.Format, _ = flags.GetString("log-format")
	}
}

// loadDirectory reads the teacher-metadata sheet when present. A workbook
// without one still processes; labels fall back to short codes.
func loadDirectory(a *app, wb *grid.Workbook) (*repository.TeacherDirectory, error) {
	sheet, ok := wb.Sheet(a.opts.Sheets.Teachers)
	if !ok {
		a.logger.Info("teacher sheet not found, using short codes only",
			zap.String("sheet", a.opts.Sheets.Teachers))
		return nil, nil
	}
	return repository.LoadTeacherDirectory(sheet, a.logger)
}

func newTeacherwiseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "teacherwise INFILE",
		Short: "Generate the teacherwise timetable",
		Long: "Reads the classwise sheet, rewrites the teacherwise sheet with clash " +
			"annotations and refreshes the vacant and free-teacher sheets, saving " +
			"the workbook in place.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(flagOverrides{cmd: cmd})
			if err != nil {
				return err
			}
			defer a.close()
			return runTeacherwise(a, args[0])
		},
	}
	cmd.Flags().BoolP("fullname", "f", false, "replace short names with full names")
	cmd.Flags().Bool("nomarks", false, "report clashes without annotating cells")
	return cmd
}

func runTeacherwise(a *app, infile string) error {
	wb, err := grid.Open(infile)
	if err != nil {
		return err
	}

	input, ok := wb.Sheet(a.opts.Sheets.Classwise)
	if !ok {
		return appErrors.Clone(appErrors.ErrSheetNotFound, "sheet "+a.opts.Sheets.Classwise+" not found in "+infile)
	}

	dir, err := loadDirectory(a, wb)
	if err != nil {
		return err
	}

	result := service.NewBuilderService(a.opts, a.logger).Build(input)
	service.NewTeacherwiseService(a.opts, a.logger).Write(wb, result.Schedule, dir)

	clashes := 0
	if sheet, ok := wb.Sheet(a.opts.Sheets.Teacherwise); ok {
		clashes = service.NewClashService(a.opts, a.logger).DetectAndAnnotate(sheet)
	}

	reports := service.NewReportService(a.opts, a.logger)
	if err := reports.WriteVacant(wb); err != nil {
		return err
	}
	reports.WriteFreeTeachers(wb, result.Schedule)

	if err := grid.Save(wb, infile); err != nil {
		return err
	}

	fmt.Printf("Teacherwise timetable saved to %s sheet of '%s'.\n", a.opts.Sheets.Teacherwise, infile)
	fmt.Printf("Clashes: %d\n", clashes)
	fmt.Printf("Warnings: %d\n", result.Warnings)
	if result.Warnings > 0 {
		return warningsErr(result.Warnings)
	}
	return nil
}

func newClasswiseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classwise INFILE OUTFILE",
		Short: "Generate printable per-class sheets",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(flagOverrides{cmd: cmd})
			if err != nil {
				return err
			}
			defer a.close()
			return runClasswise(a, args[0], args[1])
		},
	}
}

func runClasswise(a *app, infile, outfile string) error {
	in, err := grid.Open(infile)
	if err != nil {
		return err
	}

	// reuse an existing output workbook so a tweaked master survives
	out, err := grid.Open(outfile)
	if err != nil {
		if _, statErr := os.Stat(outfile); statErr == nil {
			return err
		}
		out = grid.NewWorkbook()
	}

	dir, err := loadDirectory(a, in)
	if err != nil {
		return err
	}

	warnings, err := service.NewClasswiseService(a.opts, a.logger).Generate(in, out, dir)
	if err != nil {
		return err
	}

	if err := grid.Save(out, outfile); err != nil {
		return err
	}

	fmt.Printf("Classwise timetables saved to '%s'.\n", outfile)
	if warnings > 0 {
		fmt.Printf("Warnings: %d\n", warnings)
		return warningsErr(warnings)
	}
	return nil
}

func newVacantCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vacant INFILE",
		Short: "Show vacant periods for all teachers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(flagOverrides{cmd: cmd})
			if err != nil {
				return err
			}
			defer a.close()

			csvPath, _ := cmd.Flags().GetString("csv")
			pdfPath, _ := cmd.Flags().GetString("pdf")
			return runVacant(a, args[0], csvPath, pdfPath)
		},
	}
	cmd.Flags().String("csv", "", "also export the report as CSV to this path")
	cmd.Flags().String("pdf", "", "also export the report as PDF to this path")
	return cmd
}

func runVacant(a *app, infile, csvPath, pdfPath string) error {
	wb, err := grid.Open(infile)
	if err != nil {
		return err
	}

	reports := service.NewReportService(a.opts, a.logger)
	if err := reports.WriteVacant(wb); err != nil {
		return err
	}

	if err := grid.Save(wb, infile); err != nil {
		return err
	}
	fmt.Printf("Vacant periods sheet saved to '%s'.\n", infile)

	if csvPath == "" && pdfPath == "" {
		return nil
	}
	data, err := reports.VacantDataset(wb)
	if err != nil {
		return err
	}
	return exportDataset(data, "Vacant Periods", csvPath, pdfPath)
}

func newFreeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "free INFILE",
		Short: "Show free teachers for every day and period",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(flagOverrides{cmd: cmd})
			if err != nil {
				return err
			}
			defer a.close()

			csvPath, _ := cmd.Flags().GetString("csv")
			pdfPath, _ := cmd.Flags().GetString("pdf")
			return runFree(a, args[0], csvPath, pdfPath)
		},
	}
	cmd.Flags().String("csv", "", "also export the report as CSV to this path")
	cmd.Flags().String("pdf", "", "also export the report as PDF to this path")
	return cmd
}

func runFree(a *app, infile, csvPath, pdfPath string) error {
	wb, err := grid.Open(infile)
	if err != nil {
		return err
	}

	input, ok := wb.Sheet(a.opts.Sheets.Classwise)
	if !ok {
		return appErrors.Clone(appErrors.ErrSheetNotFound, "sheet "+a.opts.Sheets.Classwise+" not found in "+infile)
	}

	result := service.NewBuilderService(a.opts, a.logger).Build(input)

	reports := service.NewReportService(a.opts, a.logger)
	reports.WriteFreeTeachers(wb, result.Schedule)

	if err := grid.Save(wb, infile); err != nil {
		return err
	}
	fmt.Printf("Free teachers sheet saved to '%s'.\n", infile)

	if csvPath != "" || pdfPath != "" {
		if err := exportDataset(reports.FreeTeachersDataset(result.Schedule), "Free Teachers", csvPath, pdfPath); err != nil {
			return err
		}
	}
	if result.Warnings > 0 {
		return warningsErr(result.Warnings)
	}
	return nil
}

func newDiffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff BASE CURRENT",
		Short: "Compare two timetables",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(flagOverrides{cmd: cmd})
			if err != nil {
				return err
			}
			defer a.close()
			return runDiff(a, args[0], args[1])
		},
	}
}

func runDiff(a *app, basePath, currentPath string) error {
	base, err := grid.Open(basePath)
	if err != nil {
		return err
	}
	current, err := grid.Open(currentPath)
	if err != nil {
		return err
	}

	fmt.Printf("Comparing '%s' with '%s' ...\n", basePath, currentPath)
	result, err := service.NewDiffService(a.opts, a.logger).Compare(base, current)
	if err != nil {
		return err
	}

	if len(result.ChangedCells) == 0 {
		fmt.Println("No differences found.")
		return nil
	}
	fmt.Printf("Differences found in cells: %s\n", strings.Join(result.ChangedCells, ", "))
	fmt.Printf("Likely affected teachers are: %s.\n", strings.Join(result.AffectedTeachers, ", "))
	return nil
}

// exportDataset writes the optional CSV and PDF renditions of a report.
func exportDataset(data export.Dataset, title, csvPath, pdfPath string) error {
	if csvPath != "" {
		body, err := export.NewCSVExporter().Render(data)
		if err != nil {
			return err
		}
		if err := os.WriteFile(csvPath, body, 0o644); err != nil {
			return appErrors.Wrap(err, appErrors.ErrWorkbook.Code, appErrors.ErrWorkbook.Exit, "failed to write "+csvPath)
		}
		fmt.Printf("CSV report written to '%s'.\n", csvPath)
	}
	if pdfPath != "" {
		body, err := export.NewPDFExporter().Render(data, title)
		if err != nil {
			return err
		}
		if err := os.WriteFile(pdfPath, body, 0o644); err != nil {
			return appErrors.Wrap(err, appErrors.ErrWorkbook.Code, appErrors.ErrWorkbook.Exit, "failed to write "+pdfPath)
		}
		fmt.Printf("PDF report written to '%s'.\n", pdfPath)
	}
	return nil
}
