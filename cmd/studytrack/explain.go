package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rbarros/studytrack/internal/cli"
	"github.com/rbarros/studytrack/internal/inference"
	"github.com/rbarros/studytrack/internal/inference/openai"
	"github.com/rbarros/studytrack/internal/study"
)

func newExplainCommand() *cobra.Command {
	var track string

	cmd := &cobra.Command{
		Use:   "explain <subject> <topic>",
		Short: "Ask the AI tutor for a focused refresher on a topic",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			subject, topic := args[0], args[1]

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			trackID, err := resolveTrack(cfg, track)
			if err != nil {
				return err
			}
			if cfg.OpenAI.APIKey == "" {
				return fmt.Errorf("OPENAI_API_KEY is not set")
			}

			request := inference.ExplainTopicRequest{
				Subject:   subject,
				Topic:     topic,
				ExamTrack: trackID,
			}

			// Recent low-accuracy records add context. A missing database
			// must not block the explanation.
			db, err := openDatabase(ctx, cfg)
			if err == nil {
				defer func() { _ = db.Close() }()
				records, findErr := study.NewDBRecordRepository(db).FindActiveByTrack(ctx, trackID)
				if findErr == nil {
					request.RecentMistakes = collectMistakes(records, subject)
				}
			}

			client := openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, inference.DefaultMaxRetryAttempts)
			defer func() { _ = client.Close() }()

			return cli.NewTopicExplainer(client, os.Stdout).Explain(ctx, request)
		},
	}

	cmd.Flags().StringVar(&track, "track", "", "exam track (defaults to study.default_track)")

	return cmd
}

func collectMistakes(records []study.Record, subject string) []inference.Mistake {
	var mistakes []inference.Mistake
	for _, rec := range records {
		if rec.Subject != subject || rec.TotalCount == 0 {
			continue
		}
		accuracy := rec.Accuracy()
		if accuracy >= 0.8 {
			continue
		}
		mistakes = append(mistakes, inference.Mistake{
			Topic:            rec.Topic,
			Accuracy:         accuracy,
			QuestionsTotal:   rec.TotalCount,
			QuestionsCorrect: rec.CorrectCount,
		})
	}
	return mistakes
}
