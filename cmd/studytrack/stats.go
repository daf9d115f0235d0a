package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rbarros/studytrack/internal/calendar"
	"github.com/rbarros/studytrack/internal/cli"
	"github.com/rbarros/studytrack/internal/statistics"
	"github.com/rbarros/studytrack/internal/study"
)

func parseDateRange(from, to string) (calendar.Date, calendar.Date, error) {
	today := calendar.Today()

	fromDate := today.AddDays(-30)
	if from != "" {
		parsed, err := calendar.Parse(from)
		if err != nil {
			return calendar.Date{}, calendar.Date{}, fmt.Errorf("invalid --from: %w", err)
		}
		fromDate = parsed
	}

	toDate := today
	if to != "" {
		parsed, err := calendar.Parse(to)
		if err != nil {
			return calendar.Date{}, calendar.Date{}, fmt.Errorf("invalid --to: %w", err)
		}
		toDate = parsed
	}

	if toDate.Before(fromDate) {
		return calendar.Date{}, calendar.Date{}, fmt.Errorf("--to (%s) is before --from (%s)", toDate, fromDate)
	}
	return fromDate, toDate, nil
}

func newStatsCommand() *cobra.Command {
	var track, from, to string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show study statistics, last 30 days by default",
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

			db, err := openDatabase(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			records, err := study.NewDBRecordRepository(db).FindActiveByTrack(ctx, trackID)
			if err != nil {
				return fmt.Errorf("load records: %w", err)
			}

			cli.RenderStatistics(os.Stdout, statistics.Build(records, trackID, fromDate, toDate))
			return nil
		},
	}

	cmd.Flags().StringVar(&track, "track", "", "exam track (defaults to study.default_track)")
	cmd.Flags().StringVar(&from, "from", "", "start date, YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "end date, YYYY-MM-DD")

	return cmd
}
