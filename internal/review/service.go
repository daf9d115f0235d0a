package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/rbarros/studytrack/internal/calendar"
	"github.com/rbarros/studytrack/internal/study"
)

var (
	// ErrRecordNotFound reports a completion attempt against a record that is
	// not part of the loaded scheduler state.
	ErrRecordNotFound = errors.New("record not in scheduler state")

	// ErrAlreadyComplete reports a completion attempt against a record whose
	// stages are all done.
	ErrAlreadyComplete = errors.New("record has already completed every stage")
)

// Service orchestrates the scheduler over the persistent record store.
// Classification stays pure; only the completion transaction writes.
type Service struct {
	records study.RecordRepository
	now     func() calendar.Date
}

// NewService creates a Service backed by the given repository.
func NewService(records study.RecordRepository) *Service {
	return &Service{
		records: records,
		now:     calendar.Today,
	}
}

// LoadState fetches a fresh snapshot of a track's records. Every scheduling
// pass starts from a fresh read; the scheduler performs no caching of its
// own.
func (s *Service) LoadState(ctx context.Context, trackID string) (*State, error) {
	records, err := s.records.FindActiveByTrack(ctx, trackID)
	if err != nil {
		return nil, fmt.Errorf("records.FindActiveByTrack(%s) > %w", trackID, err)
	}
	return NewState(records), nil
}

// PendingReviews classifies a track's records into overdue and due-today
// partitions for the current day.
func (s *Service) PendingReviews(ctx context.Context, trackID string, f Filters) (Classification, error) {
	state, err := s.LoadState(ctx, trackID)
	if err != nil {
		return Classification{}, err
	}
	return state.Classify(trackID, f, s.now()), nil
}

// CompletionResult reports what a completion transaction did. AuditErr is
// set when the stage update succeeded but the audit insertion failed; the
// completion itself stands in that case.
type CompletionResult struct {
	Updated     study.Record
	Audit       *study.Record
	Accelerated bool
	AuditErr    error
}

// CompleteReview finalizes the outstanding stage of one record: it validates
// the outcome, applies the flag update to the state optimistically, persists
// it, and inserts the audit record.
//
// Persistence failures on the flag update roll the state back to the
// pre-transaction record, so local and remote truth never diverge silently.
// Persistence failures on the audit insertion are surfaced through
// CompletionResult.AuditErr without undoing the stage completion.
func (s *Service) CompleteReview(ctx context.Context, state *State, recordID int64, o Outcome) (CompletionResult, error) {
	original, ok := state.Get(recordID)
	if !ok {
		return CompletionResult{}, fmt.Errorf("record %d: %w", recordID, ErrRecordNotFound)
	}

	pending, ok := Resolve(original, s.now())
	if !ok {
		return CompletionResult{}, fmt.Errorf("record %d: %w", recordID, ErrAlreadyComplete)
	}

	if o.ReviewDate.IsZero() {
		o.ReviewDate = s.now()
	}

	completion, err := Complete(pending, o)
	if err != nil {
		return CompletionResult{}, err
	}

	// Tentative local apply before the write so the caller's view reflects
	// completion immediately.
	state.Apply(completion.Updated)

	if err := s.records.Update(ctx, &completion.Updated); err != nil {
		// Compensating transition: restore the pre-transaction record.
		state.Apply(original)
		return CompletionResult{}, fmt.Errorf("records.Update(%d) > %w", recordID, err)
	}

	result := CompletionResult{
		Updated:     completion.Updated,
		Audit:       completion.Audit,
		Accelerated: completion.Accelerated,
	}

	if completion.Audit != nil {
		if err := s.records.Create(ctx, completion.Audit); err != nil {
			result.AuditErr = fmt.Errorf("records.Create(audit) > %w", err)
		} else {
			state.Apply(*completion.Audit)
		}
	}

	return result, nil
}
