package review

import (
	"fmt"

	"github.com/rbarros/studytrack/internal/study"
)

// AccelerationThreshold is the accuracy above which completing an early
// stage also clears later short-interval stages. A learner demonstrating
// mastery at the 24h checkpoint skips straight past 7d and 15d; the 30d
// stage is never auto-completed.
const AccelerationThreshold = 0.85

// Completion is the result of applying a review outcome to a pending item.
type Completion struct {
	// Updated is the record with its new stage flags.
	Updated study.Record

	// Audit is the synthesized performance-history record, or nil when the
	// outcome reported neither time nor questions. Audit records carry all
	// four stage flags pre-set so they never become schedulable.
	Audit *study.Record

	// Accelerated reports whether later stages were cleared ahead of
	// schedule.
	Accelerated bool
}

// Complete finalizes the outstanding stage of a pending item. It is a pure
// computation: the caller owns applying the updated record and persisting
// the audit record. The outcome is validated first; on rejection nothing is
// computed and the original record is untouched.
func Complete(p Pending, o Outcome) (Completion, error) {
	if err := o.Validate(); err != nil {
		return Completion{}, err
	}
	if p.Stage == study.StageComplete {
		return Completion{}, fmt.Errorf("record %d has no outstanding stage", p.Record.ID)
	}

	accuracy := o.Accuracy()

	updated := p.Record
	updated.StageFlags = updated.StageFlags.WithStageDone(p.Stage)

	accelerated := false
	if accuracy > AccelerationThreshold {
		switch p.Stage {
		case study.Stage24h:
			accelerated = !updated.Stage07d || !updated.Stage15d
			updated.Stage07d = true
			updated.Stage15d = true
		case study.Stage07d:
			accelerated = !updated.Stage15d
			updated.Stage15d = true
		}
	}

	completion := Completion{Updated: updated, Accelerated: accelerated}

	if o.MinutesSpent > 0 || o.QuestionsTotal > 0 {
		audit := buildAuditRecord(p, o, accuracy, accelerated)
		completion.Audit = &audit
	}

	return completion, nil
}

// buildAuditRecord synthesizes the performance-history entry for a completed
// review: same track, subject and topic as the original, dated on the review
// day, never itself schedulable.
func buildAuditRecord(p Pending, o Outcome, accuracy float64, accelerated bool) study.Record {
	notes := fmt.Sprintf("Reinforcement review (%s) of %q", p.Stage, p.Record.Topic)
	if accelerated {
		notes += "; later stages accelerated on high accuracy"
	}

	return study.Record{
		OwnerID:      p.Record.OwnerID,
		TrackID:      p.Record.TrackID,
		Subject:      p.Record.Subject,
		Topic:        p.Record.Topic,
		StudyDate:    o.ReviewDate,
		Category:     study.CategoryReview,
		CorrectCount: o.QuestionsCorrect,
		TotalCount:   o.QuestionsTotal,
		MinutesSpent: o.MinutesSpent,
		Relevance:    p.Record.Relevance,
		Difficulty:   study.DifficultyForAccuracy(accuracy),
		Notes:        notes,
		StageFlags:   study.AllStagesDone(),
	}
}
