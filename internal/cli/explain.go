package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/rbarros/studytrack/internal/inference"
)

// TopicExplainer asks the inference client for a topic refresher and
// renders it as a terminal report.
type TopicExplainer struct {
	client inference.Client
	writer io.Writer
	bold   *color.Color
}

// NewTopicExplainer creates a TopicExplainer writing to writer.
func NewTopicExplainer(client inference.Client, writer io.Writer) *TopicExplainer {
	return &TopicExplainer{
		client: client,
		writer: writer,
		bold:   color.New(color.Bold),
	}
}

// Explain fetches and prints a refresher for the requested topic.
func (e *TopicExplainer) Explain(ctx context.Context, request inference.ExplainTopicRequest) error {
	response, err := e.client.ExplainTopic(ctx, request)
	if err != nil {
		return fmt.Errorf("client.ExplainTopic(%s, %s) > %w", request.Subject, request.Topic, err)
	}

	_, _ = e.bold.Fprintf(e.writer, "%s / %s\n\n", request.Subject, request.Topic)
	_, _ = fmt.Fprintln(e.writer, response.Summary)
	if len(response.KeyPoints) > 0 {
		_, _ = e.bold.Fprintln(e.writer, "\nKey points")
		for _, point := range response.KeyPoints {
			_, _ = fmt.Fprintf(e.writer, "  - %s\n", point)
		}
	}
	if len(response.CommonTraps) > 0 {
		_, _ = e.bold.Fprintln(e.writer, "\nCommon traps")
		for _, trap := range response.CommonTraps {
			_, _ = fmt.Fprintf(e.writer, "  - %s\n", trap)
		}
	}
	if response.StudyAdvice != "" {
		_, _ = e.bold.Fprintln(e.writer, "\nHow to review")
		_, _ = fmt.Fprintln(e.writer, response.StudyAdvice)
	}
	return nil
}
