package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rbarros/studytrack/internal/calendar"
	"github.com/rbarros/studytrack/internal/report"
	"github.com/rbarros/studytrack/internal/review"
	"github.com/rbarros/studytrack/internal/statistics"
	"github.com/rbarros/studytrack/internal/study"
)

func newReportCommand() *cobra.Command {
	var track, from, to, outputDir, templatePath string
	var generatePDF bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write the backlog and progress report as markdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			trackID, err := resolveTrack(cfg, track)
			if err != nil {
				return err
			}
			fromDate, toDate, err := parseDateRange(from, to)
			if err != nil {
				return err
			}
			if outputDir == "" {
				outputDir = cfg.Outputs.ReportDirectory
			}

			db, err := openDatabase(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			service := review.NewService(study.NewDBRecordRepository(db))
			state, err := service.LoadState(ctx, trackID)
			if err != nil {
				return fmt.Errorf("service.LoadState(%s) > %w", trackID, err)
			}

			today := calendar.Today()
			data := report.Data{
				Track:          trackID,
				GeneratedOn:    today,
				Classification: state.Classify(trackID, review.Filters{}, today),
				Summary:        statistics.Build(state.Records(), trackID, fromDate, toDate),
			}

			paths, err := report.NewWriter(outputDir, templatePath).Generate(data, generatePDF)
			if err != nil {
				return fmt.Errorf("generate report: %w", err)
			}
			for _, path := range paths {
				fmt.Printf("Report written to: %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&track, "track", "", "exam track (defaults to study.default_track)")
	cmd.Flags().StringVar(&from, "from", "", "progress start date, YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "progress end date, YYYY-MM-DD")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "directory for reports (defaults to outputs.report_directory)")
	cmd.Flags().StringVar(&templatePath, "template", "", "custom markdown template path")
	cmd.Flags().BoolVar(&generatePDF, "pdf", false, "also convert the report to PDF")

	return cmd
}
