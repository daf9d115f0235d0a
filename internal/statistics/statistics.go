// Package statistics aggregates study activity for progress reporting.
package statistics

import (
	"sort"

	"github.com/rbarros/studytrack/internal/calendar"
	"github.com/rbarros/studytrack/internal/study"
)

// SubjectSummary aggregates activity for a single subject.
type SubjectSummary struct {
	Subject          string `json:"subject" yaml:"subject"`
	Records          int    `json:"records" yaml:"records"`
	MinutesSpent     int    `json:"minutesSpent" yaml:"minutes_spent"`
	QuestionsTotal   int    `json:"questionsTotal" yaml:"questions_total"`
	QuestionsCorrect int    `json:"questionsCorrect" yaml:"questions_correct"`
	StagesDone       int    `json:"stagesDone" yaml:"stages_done"`
	StagesTotal      int    `json:"stagesTotal" yaml:"stages_total"`
}

// Accuracy returns the fraction of correct answers, or 0 without questions.
func (s SubjectSummary) Accuracy() float64 {
	if s.QuestionsTotal == 0 {
		return 0
	}
	return float64(s.QuestionsCorrect) / float64(s.QuestionsTotal)
}

// Summary aggregates activity for one track over a date range.
type Summary struct {
	From          calendar.Date    `json:"from" yaml:"from"`
	To            calendar.Date    `json:"to" yaml:"to"`
	Subjects      []SubjectSummary `json:"subjects" yaml:"subjects"`
	TotalRecords  int              `json:"totalRecords" yaml:"total_records"`
	TotalMinutes  int              `json:"totalMinutes" yaml:"total_minutes"`
	MockExams     int              `json:"mockExams" yaml:"mock_exams"`
	FullyReviewed int              `json:"fullyReviewed" yaml:"fully_reviewed"`
}

// Build aggregates the records of trackID whose study date falls within
// [from, to]. Mock exams count toward time totals but not review progress.
func Build(records []study.Record, trackID string, from, to calendar.Date) Summary {
	summary := Summary{From: from, To: to}
	bySubject := map[string]*SubjectSummary{}

	for _, rec := range records {
		if rec.TrackID != trackID {
			continue
		}
		if rec.StudyDate.Before(from) || rec.StudyDate.After(to) {
			continue
		}

		summary.TotalRecords++
		summary.TotalMinutes += rec.MinutesSpent

		sub, ok := bySubject[rec.Subject]
		if !ok {
			sub = &SubjectSummary{Subject: rec.Subject}
			bySubject[rec.Subject] = sub
		}
		sub.Records++
		sub.MinutesSpent += rec.MinutesSpent
		sub.QuestionsTotal += rec.TotalCount
		sub.QuestionsCorrect += rec.CorrectCount

		if rec.Category == study.CategoryMockExam {
			summary.MockExams++
			continue
		}

		for _, set := range []bool{rec.Stage24h, rec.Stage07d, rec.Stage15d, rec.Stage30d} {
			if set {
				sub.StagesDone++
			}
		}
		sub.StagesTotal += 4
		if rec.AllSet() {
			summary.FullyReviewed++
		}
	}

	for _, sub := range bySubject {
		summary.Subjects = append(summary.Subjects, *sub)
	}
	sort.Slice(summary.Subjects, func(i, j int) bool {
		return summary.Subjects[i].Subject < summary.Subjects[j].Subject
	})
	return summary
}
