package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rbarros/studytrack/internal/calendar"
)

func TestParseMinutes(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{name: "hours and minutes", input: "01:30", want: 90},
		{name: "single digit hour", input: "2:05", want: 125},
		{name: "zero", input: "00:00", want: 0},
		{name: "empty means no time reported", input: "", want: 0},
		{name: "surrounding whitespace", input: " 01:30 ", want: 90},
		{name: "no colon, two digits are minutes", input: "45", want: 45},
		{name: "no colon, last two digits are minutes", input: "130", want: 90},
		{name: "no colon, four digits", input: "1005", want: 605},
		{name: "single digit is minutes", input: "5", want: 5},
		{name: "minutes component 60 or more rejected", input: "99:99", wantErr: true},
		{name: "minutes 60 rejected", input: "01:60", wantErr: true},
		{name: "no colon minutes overflow rejected", input: "75", wantErr: true},
		{name: "no colon embedded minutes overflow rejected", input: "170", wantErr: true},
		{name: "letters rejected", input: "abc", wantErr: true},
		{name: "sign prefix rejected", input: "+1:30", wantErr: true},
		{name: "double colon rejected", input: "1:30:00", wantErr: true},
		{name: "missing minutes rejected", input: "1:", wantErr: true},
		{name: "missing hours rejected", input: ":30", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMinutes(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidTimeSpent)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOutcome_Validate(t *testing.T) {
	tests := []struct {
		name    string
		outcome Outcome
		wantErr bool
	}{
		{
			name:    "valid outcome",
			outcome: Outcome{MinutesSpent: 30, QuestionsTotal: 10, QuestionsCorrect: 8},
		},
		{
			name:    "zero questions allowed",
			outcome: Outcome{MinutesSpent: 30},
		},
		{
			name:    "correct equals total",
			outcome: Outcome{QuestionsTotal: 10, QuestionsCorrect: 10},
		},
		{
			name:    "correct above total rejected",
			outcome: Outcome{QuestionsTotal: 5, QuestionsCorrect: 8},
			wantErr: true,
		},
		{
			name:    "negative correct rejected",
			outcome: Outcome{QuestionsTotal: 5, QuestionsCorrect: -1},
			wantErr: true,
		},
		{
			name:    "negative minutes rejected",
			outcome: Outcome{MinutesSpent: -10},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.outcome.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestOutcome_Validate_readableMessage(t *testing.T) {
	err := Outcome{QuestionsTotal: 5, QuestionsCorrect: 8}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "questions correct")
}

func TestNewOutcome(t *testing.T) {
	date := calendar.MustParse("2025-06-20")

	o, err := NewOutcome("1:30", 8, 10, date)
	require.NoError(t, err)
	assert.Equal(t, 90, o.MinutesSpent)
	assert.Equal(t, 8, o.QuestionsCorrect)
	assert.Equal(t, 10, o.QuestionsTotal)
	assert.Equal(t, date, o.ReviewDate)

	_, err = NewOutcome("99:99", 8, 10, date)
	assert.ErrorIs(t, err, ErrInvalidTimeSpent)

	_, err = NewOutcome("1:30", 8, 5, date)
	assert.Error(t, err)
}

func TestOutcome_Accuracy(t *testing.T) {
	assert.InDelta(t, 0.9, Outcome{QuestionsCorrect: 9, QuestionsTotal: 10}.Accuracy(), 0.0001)
	assert.Zero(t, Outcome{}.Accuracy())
}
