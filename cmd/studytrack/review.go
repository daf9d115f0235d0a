package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rbarros/studytrack/internal/cli"
	"github.com/rbarros/studytrack/internal/review"
	"github.com/rbarros/studytrack/internal/study"
)

func newReviewCommand() *cobra.Command {
	reviewCmd := &cobra.Command{
		Use:   "review",
		Short: "List and run pending reviews",
	}

	reviewCmd.AddCommand(newReviewListCommand())
	reviewCmd.AddCommand(newReviewStartCommand())

	return reviewCmd
}

func reviewFilterFlags(cmd *cobra.Command, track, subject, topic *string, minRelevance *int) {
	cmd.Flags().StringVar(track, "track", "", "exam track (defaults to study.default_track)")
	cmd.Flags().StringVar(subject, "subject", "", "only this subject")
	cmd.Flags().StringVar(topic, "topic", "", "topics containing this text")
	cmd.Flags().IntVar(minRelevance, "min-relevance", 0, "minimum relevance score")
}

func newReviewListCommand() *cobra.Command {
	var track, subject, topic string
	var minRelevance int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the overdue and due-today backlog",
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

			db, err := openDatabase(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			service := review.NewService(study.NewDBRecordRepository(db))
			classification, err := service.PendingReviews(ctx, trackID, review.Filters{
				Subject:      subject,
				Topic:        topic,
				MinRelevance: minRelevance,
			})
			if err != nil {
				return fmt.Errorf("service.PendingReviews(%s) > %w", trackID, err)
			}

			cli.RenderBacklog(os.Stdout, classification)
			return nil
		},
	}
	reviewFilterFlags(cmd, &track, &subject, &topic, &minRelevance)

	return cmd
}

func newReviewStartCommand() *cobra.Command {
	var track, subject, topic string
	var minRelevance int

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Work through due reviews interactively",
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

			db, err := openDatabase(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			service := review.NewService(study.NewDBRecordRepository(db))
			session, err := cli.NewReviewSessionCLI(ctx, service, trackID, review.Filters{
				Subject:      subject,
				Topic:        topic,
				MinRelevance: minRelevance,
			})
			if err != nil {
				return fmt.Errorf("cli.NewReviewSessionCLI(%s) > %w", trackID, err)
			}

			if session.Remaining() == 0 {
				fmt.Println("Nothing due right now.")
				return nil
			}
			return session.Run(ctx)
		},
	}
	reviewFilterFlags(cmd, &track, &subject, &topic, &minRelevance)

	return cmd
}
