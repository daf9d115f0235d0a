package review

import (
	"sort"
	"strings"

	"github.com/rbarros/studytrack/internal/calendar"
	"github.com/rbarros/studytrack/internal/study"
)

// Filters narrows the classified candidate set. The zero value matches
// everything: empty Subject means all subjects, empty Topic disables the
// substring match, and MinRelevance at or below 1 accepts every record.
type Filters struct {
	Subject      string
	Topic        string
	MinRelevance int
}

// Match reports whether a record passes all three filters.
func (f Filters) Match(rec study.Record) bool {
	if f.Subject != "" && rec.Subject != f.Subject {
		return false
	}
	if f.Topic != "" && !strings.Contains(strings.ToLower(rec.Topic), strings.ToLower(f.Topic)) {
		return false
	}
	if f.MinRelevance > 0 && rec.Relevance < f.MinRelevance {
		return false
	}
	return true
}

// Classification is the scheduler's sole output to presentation: the due
// work split by urgency, an aggregate count of upcoming reviews, and the
// distinct subjects available for filtering.
type Classification struct {
	Overdue       []Pending `json:"overdue"`
	DueToday      []Pending `json:"dueToday"`
	UpcomingCount int       `json:"upcomingCount"`
	Subjects      []string  `json:"subjects"`
}

// Total returns the number of actionable (due or overdue) items.
func (c Classification) Total() int {
	return len(c.Overdue) + len(c.DueToday)
}

// Classify sweeps all records of a track and produces the pending-review
// classification for the given day. Mock exams, fully reviewed records and
// records from other tracks are discarded. Subjects are collected before the
// user filters are applied so a subject filter never empties its own
// selector.
func Classify(records []study.Record, trackID string, f Filters, today calendar.Date) Classification {
	var c Classification
	subjects := make(map[string]struct{})

	for _, rec := range records {
		if rec.TrackID != trackID || !rec.Schedulable() {
			continue
		}

		p, ok := Resolve(rec, today)
		if !ok {
			continue
		}

		if rec.Subject != "" {
			subjects[rec.Subject] = struct{}{}
		}

		if !f.Match(rec) {
			continue
		}

		switch {
		case p.DaysOverdue > 0:
			c.Overdue = append(c.Overdue, p)
		case p.DaysOverdue == 0:
			c.DueToday = append(c.DueToday, p)
		default:
			c.UpcomingCount++
		}
	}

	sortPending(c.Overdue)
	sortPending(c.DueToday)

	c.Subjects = make([]string, 0, len(subjects))
	for s := range subjects {
		c.Subjects = append(c.Subjects, s)
	}
	sort.Strings(c.Subjects)

	return c
}

// sortPending orders a partition by urgency first and importance second:
// descending days overdue, then descending relevance. The sort is stable so
// equal items keep their record order.
func sortPending(items []Pending) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].DaysOverdue != items[j].DaysOverdue {
			return items[i].DaysOverdue > items[j].DaysOverdue
		}
		return items[i].Record.Relevance > items[j].Record.Relevance
	})
}
