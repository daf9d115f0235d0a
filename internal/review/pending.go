// Package review implements the spaced-repetition review scheduler: stage
// resolution, due-date classification, filtering and sorting of pending work,
// and the completion transaction that advances a record through its
// reinforcement stages.
package review

import (
	"github.com/rbarros/studytrack/internal/calendar"
	"github.com/rbarros/studytrack/internal/study"
)

// Pending is a read-only projection of a study record whose next
// reinforcement stage is still outstanding. It is recomputed on every
// scheduling pass and never persisted.
type Pending struct {
	Record study.Record `json:"record"`

	// Stage is the first incomplete stage in fixed order.
	Stage study.Stage `json:"stage"`

	// DaysOverdue is the signed whole-day distance past the stage's target
	// date. Zero means due today, negative means not yet due.
	DaysOverdue int `json:"daysOverdue"`

	// TargetDate is the calendar day on which the stage becomes due.
	TargetDate calendar.Date `json:"targetDate"`
}

// Resolve determines the outstanding reinforcement stage for a record.
// It returns false when every stage has been completed. Callers are expected
// to have excluded mock exams already; Resolve itself only looks at flags.
func Resolve(rec study.Record, today calendar.Date) (Pending, bool) {
	stage := rec.StageFlags.NextOutstanding()
	if stage == study.StageComplete {
		return Pending{}, false
	}

	horizon := stage.HorizonDays()
	return Pending{
		Record:      rec,
		Stage:       stage,
		DaysOverdue: today.DaysSince(rec.StudyDate) - horizon,
		TargetDate:  rec.StudyDate.AddDays(horizon),
	}, true
}

// Due reports whether the pending stage's target date has been reached.
func (p Pending) Due() bool {
	return p.DaysOverdue >= 0
}
