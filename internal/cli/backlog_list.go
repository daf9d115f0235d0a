package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/rbarros/studytrack/internal/review"
	"github.com/rbarros/studytrack/internal/statistics"
)

// RenderBacklog prints the pending-review classification as a table.
func RenderBacklog(w io.Writer, c review.Classification) {
	if c.Total() == 0 {
		fmt.Fprintln(w, "Nothing due. Upcoming reviews:", c.UpcomingCount)
		return
	}

	fmt.Fprintf(w, "%-4s  %-12s  %-20s  %-28s  %-6s  %-10s  %s\n",
		"ID", "Overdue", "Subject", "Topic", "Stage", "Target", "Relevance")
	fmt.Fprintf(w, "%-4s  %-12s  %-20s  %-28s  %-6s  %-10s  %s\n",
		"--", "-------", "-------", "-----", "-----", "------", "---------")

	printRow := func(p review.Pending, overdueLabel string) {
		fmt.Fprintf(w, "%-4d  %-12s  %-20s  %-28s  %-6s  %-10s  %d\n",
			p.Record.ID,
			overdueLabel,
			truncate(p.Record.Subject, 20),
			truncate(p.Record.Topic, 28),
			p.Stage.String(),
			p.TargetDate.String(),
			p.Record.Relevance,
		)
	}

	for _, p := range c.Overdue {
		printRow(p, color.RedString("%d days", p.DaysOverdue))
	}
	for _, p := range c.DueToday {
		printRow(p, color.YellowString("today"))
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Overdue: %d  Due today: %d  Upcoming: %d\n",
		len(c.Overdue), len(c.DueToday), c.UpcomingCount)
	if len(c.Subjects) > 0 {
		fmt.Fprintf(w, "Subjects: %s\n", strings.Join(c.Subjects, ", "))
	}
}

// RenderStatistics prints the per-subject study summary as a table.
func RenderStatistics(w io.Writer, s statistics.Summary) {
	fmt.Fprintln(w, "Study Statistics Report")
	fmt.Fprintln(w, "=======================")
	fmt.Fprintf(w, "Period: %s to %s\n\n", s.From, s.To)

	if s.TotalRecords == 0 {
		fmt.Fprintln(w, "No study records found for the specified period.")
		return
	}

	fmt.Fprintf(w, "%-20s  %-8s  %-8s  %-9s  %s\n", "Subject", "Records", "Minutes", "Accuracy", "Stages")
	fmt.Fprintf(w, "%-20s  %-8s  %-8s  %-9s  %s\n", "-------", "-------", "-------", "--------", "------")
	for _, sub := range s.Subjects {
		fmt.Fprintf(w, "%-20s  %-8d  %-8d  %-9s  %d/%d\n",
			truncate(sub.Subject, 20),
			sub.Records,
			sub.MinutesSpent,
			fmt.Sprintf("%.0f%%", sub.Accuracy()*100),
			sub.StagesDone,
			sub.StagesTotal,
		)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-20s  %-8d  %-8d  mock exams: %d  fully reviewed: %d\n",
		"Totals:", s.TotalRecords, s.TotalMinutes, s.MockExams, s.FullyReviewed)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
