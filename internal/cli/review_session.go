// Package cli implements the interactive terminal surfaces: the review
// session loop and the backlog listing.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/rbarros/studytrack/internal/calendar"
	"github.com/rbarros/studytrack/internal/review"
)

var errEnd = errors.New("end")

// ReviewSessionCLI walks the learner through the due reviews of a track,
// one record at a time.
type ReviewSessionCLI struct {
	service *review.Service
	track   string

	state *review.State
	queue []review.Pending

	stdinReader  *bufio.Reader
	stdoutWriter io.Writer
	bold         *color.Color
	italic       *color.Color
}

// NewReviewSessionCLI loads the track's backlog and prepares a session over
// every overdue and due-today item, most urgent first.
func NewReviewSessionCLI(ctx context.Context, service *review.Service, track string, filters review.Filters) (*ReviewSessionCLI, error) {
	state, err := service.LoadState(ctx, track)
	if err != nil {
		return nil, fmt.Errorf("service.LoadState(%s) > %w", track, err)
	}

	classification := state.Classify(track, filters, calendar.Today())
	queue := make([]review.Pending, 0, classification.Total())
	queue = append(queue, classification.Overdue...)
	queue = append(queue, classification.DueToday...)

	return &ReviewSessionCLI{
		service:      service,
		track:        track,
		state:        state,
		queue:        queue,
		stdinReader:  bufio.NewReader(os.Stdin),
		stdoutWriter: os.Stdout,
		bold:         color.New(color.Bold),
		italic:       color.New(color.Italic),
	}, nil
}

// Remaining returns the number of reviews left in the session.
func (cli *ReviewSessionCLI) Remaining() int {
	return len(cli.queue)
}

// Run drives the session loop until the queue empties or the user quits.
func (cli *ReviewSessionCLI) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	errCh := make(chan error)
	go func() {
		defer close(errCh)

	LOOP:
		for {
			select {
			case <-ctx.Done():
				break LOOP
			default:
			}

			if err := cli.Session(ctx); err != nil {
				if errors.Is(err, errEnd) {
					break
				}
				errCh <- err
				break
			}
		}
	}()
	select {
	case <-ctx.Done():
		fmt.Fprintln(cli.stdoutWriter, "Received interrupt signal, exiting...")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("error: %w", err)
		}
	}
	return nil
}

// Session handles one pending review: show it, collect the outcome, and run
// the completion transaction.
func (cli *ReviewSessionCLI) Session(ctx context.Context) error {
	if len(cli.queue) == 0 {
		fmt.Fprintln(cli.stdoutWriter, "No more reviews due. Well done!")
		return errEnd
	}
	pending := cli.queue[0]

	fmt.Fprintf(cli.stdoutWriter, "\n[%d left] ", len(cli.queue))
	_, _ = cli.bold.Fprintf(cli.stdoutWriter, "%s / %s", pending.Record.Subject, pending.Record.Topic)
	fmt.Fprintf(cli.stdoutWriter, " (stage %s, %s)\n", pending.Stage, describeOverdue(pending.DaysOverdue))

	answer, err := cli.prompt("Review now? [Y]es / [s]kip / [q]uit: ")
	if err != nil {
		return err
	}
	switch strings.ToLower(answer) {
	case "q", "quit":
		return errEnd
	case "s", "skip":
		cli.queue = cli.queue[1:]
		return nil
	}

	outcome, err := cli.readOutcome()
	if err != nil {
		if errors.Is(err, review.ErrInvalidTimeSpent) {
			color.Red("%v", err)
			return nil
		}
		return err
	}

	result, err := cli.service.CompleteReview(ctx, cli.state, pending.Record.ID, outcome)
	if err != nil {
		return fmt.Errorf("service.CompleteReview(%d) > %w", pending.Record.ID, err)
	}
	cli.queue = cli.queue[1:]

	fmt.Fprint(cli.stdoutWriter, "✅ ")
	color.Green("Stage %s done for %s", pending.Stage, cli.bold.Sprint(pending.Record.Topic))
	if result.Accelerated {
		color.Green("High accuracy: later stages were marked done as well")
	}
	if result.AuditErr != nil {
		color.Yellow("Review saved, but the audit record failed: %v", result.AuditErr)
	}

	return nil
}

func (cli *ReviewSessionCLI) readOutcome() (review.Outcome, error) {
	timeSpent, err := cli.prompt("Time spent (HH:MM or minutes, empty for none): ")
	if err != nil {
		return review.Outcome{}, err
	}
	total, err := cli.promptInt("Questions answered: ")
	if err != nil {
		return review.Outcome{}, err
	}
	correct, err := cli.promptInt("Questions correct: ")
	if err != nil {
		return review.Outcome{}, err
	}

	return review.NewOutcome(timeSpent, correct, total, calendar.Today())
}

func (cli *ReviewSessionCLI) prompt(label string) (string, error) {
	_, _ = cli.italic.Fprint(cli.stdoutWriter, label)
	line, err := cli.stdinReader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("error reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func (cli *ReviewSessionCLI) promptInt(label string) (int, error) {
	line, err := cli.prompt(label)
	if err != nil {
		return 0, err
	}
	if line == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		return 0, fmt.Errorf("expected a number, got %q", line)
	}
	return n, nil
}

func describeOverdue(days int) string {
	switch {
	case days == 0:
		return "due today"
	case days == 1:
		return "1 day overdue"
	default:
		return fmt.Sprintf("%d days overdue", days)
	}
}
