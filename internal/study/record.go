// Package study provides the study-record domain model and its repository.
package study

import (
	"time"

	"github.com/rbarros/studytrack/internal/calendar"
)

// Category is the kind of study session a record describes.
type Category string

const (
	// CategoryStudy is a regular content-study session.
	CategoryStudy Category = "study"
	// CategoryReview is a reinforcement review session, including the audit
	// records synthesized when a review is completed.
	CategoryReview Category = "review"
	// CategoryMockExam is a full-length mock exam. Mock exams are never
	// candidates for reinforcement scheduling.
	CategoryMockExam Category = "mock_exam"
)

// Difficulty is the perceived difficulty label attached to a session.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// DifficultyForAccuracy returns the auto-computed difficulty label for a
// review outcome: 80% and up is easy, below 60% is hard, medium otherwise.
func DifficultyForAccuracy(accuracy float64) Difficulty {
	switch {
	case accuracy >= 0.8:
		return DifficultyEasy
	case accuracy < 0.6:
		return DifficultyHard
	default:
		return DifficultyMedium
	}
}

// StageFlags records which reinforcement reviews have been completed for a
// record. The flags are ordered in elapsed time (24h before 7d before 15d
// before 30d) but are not forced to be set contiguously: completing an early
// stage with high accuracy may set later flags ahead of schedule.
type StageFlags struct {
	Stage24h bool `db:"stage_24h" yaml:"stage_24h" json:"stage24h"`
	Stage07d bool `db:"stage_07d" yaml:"stage_07d" json:"stage07d"`
	Stage15d bool `db:"stage_15d" yaml:"stage_15d" json:"stage15d"`
	Stage30d bool `db:"stage_30d" yaml:"stage_30d" json:"stage30d"`
}

// AllSet reports whether every reinforcement stage has been completed.
func (f StageFlags) AllSet() bool {
	return f.Stage24h && f.Stage07d && f.Stage15d && f.Stage30d
}

// AllStagesDone returns flags with every stage marked complete. Audit records
// are created with these so they never become schedulable themselves.
func AllStagesDone() StageFlags {
	return StageFlags{Stage24h: true, Stage07d: true, Stage15d: true, Stage30d: true}
}

// Record represents one logged study session. Records are owned by the
// persistent store; the scheduler reads them and requests flag updates.
type Record struct {
	ID      int64  `db:"id" yaml:"id" json:"id"`
	OwnerID string `db:"owner_id" yaml:"owner_id" json:"ownerId"`
	TrackID string `db:"track_id" yaml:"track_id" json:"trackId"`

	Subject string `db:"subject" yaml:"subject" json:"subject"`
	Topic   string `db:"topic" yaml:"topic" json:"topic"`

	StudyDate calendar.Date `db:"study_date" yaml:"study_date" json:"studyDate"`
	Category  Category      `db:"category" yaml:"category" json:"category"`

	CorrectCount int        `db:"correct_count" yaml:"correct_count" json:"correctCount"`
	TotalCount   int        `db:"total_count" yaml:"total_count" json:"totalCount"`
	MinutesSpent int        `db:"minutes_spent" yaml:"minutes_spent" json:"minutesSpent"`
	Relevance    int        `db:"relevance" yaml:"relevance" json:"relevance"`
	Difficulty   Difficulty `db:"difficulty" yaml:"difficulty" json:"difficulty"`
	Notes        string     `db:"notes" yaml:"notes,omitempty" json:"notes,omitempty"`

	StageFlags `yaml:",inline"`

	CreatedAt time.Time `db:"created_at" yaml:"created_at,omitempty" json:"-"`
	UpdatedAt time.Time `db:"updated_at" yaml:"updated_at,omitempty" json:"-"`
}

// Accuracy returns the fraction of questions answered correctly, or 0 when
// no questions were answered.
func (r Record) Accuracy() float64 {
	if r.TotalCount == 0 {
		return 0
	}
	return float64(r.CorrectCount) / float64(r.TotalCount)
}

// Schedulable reports whether the record can ever enter review scheduling.
// Mock exams and fully reviewed records are permanently out.
func (r Record) Schedulable() bool {
	return r.Category != CategoryMockExam && !r.StageFlags.AllSet()
}
