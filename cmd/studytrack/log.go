package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rbarros/studytrack/internal/calendar"
	"github.com/rbarros/studytrack/internal/review"
	"github.com/rbarros/studytrack/internal/study"
)

func newLogCommand() *cobra.Command {
	var track, subject, topic, date, category, timeSpent, notes string
	var total, correct, relevance int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Record a study session or mock exam",
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
			if subject == "" || topic == "" {
				return fmt.Errorf("--subject and --topic are required")
			}

			studyDate := calendar.Today()
			if date != "" {
				studyDate, err = calendar.Parse(date)
				if err != nil {
					return fmt.Errorf("invalid --date: %w", err)
				}
			}

			recordCategory := study.Category(category)
			switch recordCategory {
			case study.CategoryStudy, study.CategoryMockExam:
			default:
				return fmt.Errorf("invalid --category %q: use %q or %q", category, study.CategoryStudy, study.CategoryMockExam)
			}

			minutes, err := review.ParseMinutes(timeSpent)
			if err != nil {
				return err
			}
			if correct > total {
				return fmt.Errorf("--correct (%d) cannot exceed --total (%d)", correct, total)
			}

			record := study.Record{
				OwnerID:      cfg.Study.OwnerID,
				TrackID:      trackID,
				Subject:      subject,
				Topic:        topic,
				StudyDate:    studyDate,
				Category:     recordCategory,
				CorrectCount: correct,
				TotalCount:   total,
				MinutesSpent: minutes,
				Relevance:    relevance,
				Notes:        notes,
			}
			record.Difficulty = study.DifficultyForAccuracy(record.Accuracy())

			db, err := openDatabase(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			if err := study.NewDBRecordRepository(db).Create(ctx, &record); err != nil {
				return fmt.Errorf("create study record: %w", err)
			}

			fmt.Printf("Recorded %s / %s on %s (id %d)\n", record.Subject, record.Topic, record.StudyDate, record.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&track, "track", "", "exam track (defaults to study.default_track)")
	cmd.Flags().StringVar(&subject, "subject", "", "subject studied")
	cmd.Flags().StringVar(&topic, "topic", "", "topic studied")
	cmd.Flags().StringVar(&date, "date", "", "study date, YYYY-MM-DD (defaults to today)")
	cmd.Flags().StringVar(&category, "category", string(study.CategoryStudy), "record category: study or mock_exam")
	cmd.Flags().StringVar(&timeSpent, "time", "", "time spent, HH:MM or minutes")
	cmd.Flags().IntVar(&total, "total", 0, "questions answered")
	cmd.Flags().IntVar(&correct, "correct", 0, "questions correct")
	cmd.Flags().IntVar(&relevance, "relevance", 0, "exam relevance score")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")

	return cmd
}
