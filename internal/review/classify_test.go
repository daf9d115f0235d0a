package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rbarros/studytrack/internal/calendar"
	"github.com/rbarros/studytrack/internal/study"
)

const testTrack = "enare-2026"

func testRecord(id int64, subject, topic, studyDate string, relevance int) study.Record {
	return study.Record{
		ID:        id,
		TrackID:   testTrack,
		Subject:   subject,
		Topic:     topic,
		StudyDate: calendar.MustParse(studyDate),
		Category:  study.CategoryStudy,
		Relevance: relevance,
	}
}

func TestClassify_partitions(t *testing.T) {
	today := calendar.MustParse("2025-06-20")

	records := []study.Record{
		// 24h stage, 4 days overdue.
		testRecord(1, "Cardiology", "Heart failure", "2025-06-15", 8),
		// 24h stage, due exactly today.
		testRecord(2, "Nephrology", "AKI staging", "2025-06-19", 6),
		// 24h stage, due tomorrow: upcoming only.
		testRecord(3, "Pneumology", "Asthma", "2025-06-20", 9),
	}

	c := Classify(records, testTrack, Filters{}, today)

	require.Len(t, c.Overdue, 1)
	assert.Equal(t, int64(1), c.Overdue[0].Record.ID)
	assert.Equal(t, 4, c.Overdue[0].DaysOverdue)

	require.Len(t, c.DueToday, 1)
	assert.Equal(t, int64(2), c.DueToday[0].Record.ID)
	assert.Equal(t, 0, c.DueToday[0].DaysOverdue)

	assert.Equal(t, 1, c.UpcomingCount)
	assert.Equal(t, []string{"Cardiology", "Nephrology", "Pneumology"}, c.Subjects)
	assert.Equal(t, 2, c.Total())
}

func TestClassify_exclusions(t *testing.T) {
	today := calendar.MustParse("2025-06-20")

	mockExam := testRecord(1, "Mixed", "Full mock", "2025-05-01", 10)
	mockExam.Category = study.CategoryMockExam

	fullyReviewed := testRecord(2, "Cardiology", "Arrhythmia", "2025-05-01", 10)
	fullyReviewed.StageFlags = study.AllStagesDone()

	otherTrack := testRecord(3, "Surgery", "Appendicitis", "2025-05-01", 10)
	otherTrack.TrackID = "usmle-step1"

	auditRecord := testRecord(4, "Cardiology", "Heart failure", "2025-06-01", 8)
	auditRecord.Category = study.CategoryReview
	auditRecord.StageFlags = study.AllStagesDone()

	c := Classify([]study.Record{mockExam, fullyReviewed, otherTrack, auditRecord}, testTrack, Filters{}, today)

	assert.Empty(t, c.Overdue)
	assert.Empty(t, c.DueToday)
	assert.Zero(t, c.UpcomingCount)
	assert.Empty(t, c.Subjects)
}

func TestClassify_filters(t *testing.T) {
	today := calendar.MustParse("2025-06-20")

	records := []study.Record{
		testRecord(1, "Cardiology", "Heart Failure management", "2025-06-10", 9),
		testRecord(2, "Cardiology", "Arrhythmia", "2025-06-10", 4),
		testRecord(3, "Nephrology", "Glomerulonephritis", "2025-06-10", 7),
	}

	tests := []struct {
		name    string
		filters Filters
		wantIDs []int64
	}{
		{
			name:    "no filters match everything",
			filters: Filters{},
			wantIDs: []int64{1, 3, 2},
		},
		{
			name:    "subject equality",
			filters: Filters{Subject: "Nephrology"},
			wantIDs: []int64{3},
		},
		{
			name:    "topic substring is case-insensitive",
			filters: Filters{Topic: "heart failure"},
			wantIDs: []int64{1},
		},
		{
			name:    "minimum relevance",
			filters: Filters{MinRelevance: 7},
			wantIDs: []int64{1, 3},
		},
		{
			name:    "combined filters",
			filters: Filters{Subject: "Cardiology", MinRelevance: 5},
			wantIDs: []int64{1},
		},
		{
			name:    "min relevance of one is a no-op",
			filters: Filters{MinRelevance: 1},
			wantIDs: []int64{1, 3, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Classify(records, testTrack, tt.filters, today)

			var gotIDs []int64
			for _, p := range c.Overdue {
				gotIDs = append(gotIDs, p.Record.ID)
			}
			assert.Equal(t, tt.wantIDs, gotIDs)

			// Subjects are collected before the user filters run, so a
			// subject filter never empties its own selector.
			assert.Equal(t, []string{"Cardiology", "Nephrology"}, c.Subjects)
		})
	}
}

// Within a partition: more overdue sorts first, and relevance breaks ties.
func TestClassify_sortOrder(t *testing.T) {
	today := calendar.MustParse("2025-06-20")

	records := []study.Record{
		testRecord(1, "A", "low relevance, very overdue", "2025-06-10", 2),
		testRecord(2, "B", "high relevance, slightly overdue", "2025-06-17", 10),
		testRecord(3, "C", "high relevance, very overdue", "2025-06-10", 9),
		testRecord(4, "D", "mid relevance, very overdue", "2025-06-10", 5),
	}

	c := Classify(records, testTrack, Filters{}, today)
	require.Len(t, c.Overdue, 4)

	var gotIDs []int64
	for _, p := range c.Overdue {
		gotIDs = append(gotIDs, p.Record.ID)
	}
	assert.Equal(t, []int64{3, 4, 1, 2}, gotIDs)

	// The ordering property holds pairwise across the whole partition.
	for i := 0; i < len(c.Overdue)-1; i++ {
		a, b := c.Overdue[i], c.Overdue[i+1]
		if a.DaysOverdue == b.DaysOverdue {
			assert.GreaterOrEqual(t, a.Record.Relevance, b.Record.Relevance)
		} else {
			assert.Greater(t, a.DaysOverdue, b.DaysOverdue)
		}
	}
}
