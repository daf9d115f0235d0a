package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rbarros/studytrack/internal/calendar"
	"github.com/rbarros/studytrack/internal/study"
)

func TestResolve(t *testing.T) {
	today := calendar.MustParse("2025-06-20")

	tests := []struct {
		name            string
		studyDate       string
		flags           study.StageFlags
		wantStage       study.Stage
		wantDaysOverdue int
		wantTargetDate  string
		wantNone        bool
	}{
		{
			name:            "fresh record resolves to 24h stage",
			studyDate:       "2025-06-18",
			flags:           study.StageFlags{},
			wantStage:       study.Stage24h,
			wantDaysOverdue: 1,
			wantTargetDate:  "2025-06-19",
		},
		{
			name:            "studied today, 24h stage due tomorrow",
			studyDate:       "2025-06-20",
			flags:           study.StageFlags{},
			wantStage:       study.Stage24h,
			wantDaysOverdue: -1,
			wantTargetDate:  "2025-06-21",
		},
		{
			name:            "24h done, 7d stage outstanding",
			studyDate:       "2025-06-10",
			flags:           study.StageFlags{Stage24h: true},
			wantStage:       study.Stage07d,
			wantDaysOverdue: 3,
			wantTargetDate:  "2025-06-17",
		},
		{
			name:            "7d stage due exactly today",
			studyDate:       "2025-06-13",
			flags:           study.StageFlags{Stage24h: true},
			wantStage:       study.Stage07d,
			wantDaysOverdue: 0,
			wantTargetDate:  "2025-06-20",
		},
		{
			// Acceleration left a gap: 15d is already true but 7d is not.
			// The first false flag still wins.
			name:            "non-contiguous flags resolve to first gap",
			studyDate:       "2025-06-01",
			flags:           study.StageFlags{Stage24h: true, Stage15d: true},
			wantStage:       study.Stage07d,
			wantDaysOverdue: 12,
			wantTargetDate:  "2025-06-08",
		},
		{
			name:            "30d stage not yet due",
			studyDate:       "2025-06-01",
			flags:           study.StageFlags{Stage24h: true, Stage07d: true, Stage15d: true},
			wantStage:       study.Stage30d,
			wantDaysOverdue: -11,
			wantTargetDate:  "2025-07-01",
		},
		{
			name:      "fully reviewed record resolves to none",
			studyDate: "2025-01-01",
			flags:     study.AllStagesDone(),
			wantNone:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := study.Record{
				ID:         1,
				StudyDate:  calendar.MustParse(tt.studyDate),
				StageFlags: tt.flags,
			}

			p, ok := Resolve(rec, today)
			if tt.wantNone {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.wantStage, p.Stage)
			assert.Equal(t, tt.wantDaysOverdue, p.DaysOverdue)
			assert.Equal(t, tt.wantTargetDate, p.TargetDate.String())
		})
	}
}

// For a record with study date D and no flags set, daysOverdue for the 24h
// stage equals dayDifference(today, D) - 1.
func TestResolve_overdueFormula(t *testing.T) {
	studyDate := calendar.MustParse("2025-06-10")
	rec := study.Record{StudyDate: studyDate}

	for offset := 0; offset <= 40; offset++ {
		today := studyDate.AddDays(offset)
		p, ok := Resolve(rec, today)
		require.True(t, ok)
		assert.Equal(t, today.DaysSince(studyDate)-1, p.DaysOverdue)
		assert.Equal(t, offset > 1, p.DaysOverdue > 0, "offset %d", offset)
	}
}

func TestPending_Due(t *testing.T) {
	assert.True(t, Pending{DaysOverdue: 0}.Due())
	assert.True(t, Pending{DaysOverdue: 5}.Due())
	assert.False(t, Pending{DaysOverdue: -1}.Due())
}
