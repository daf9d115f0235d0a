package calendar

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Date
		wantErr bool
	}{
		{
			name:  "plain date",
			input: "2025-03-01",
			want:  New(2025, time.March, 1),
		},
		{
			name:  "leap day",
			input: "2024-02-29",
			want:  New(2024, time.February, 29),
		},
		{
			name:    "timestamp rejected",
			input:   "2025-03-01T00:00:00Z",
			wantErr: true,
		},
		{
			name:    "slash separators rejected",
			input:   "2025/03/01",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %s, want %s", got, tt.want)
		})
	}
}

// Parsing must never shift the day for users west of UTC. The parsed day
// components have to match the input string exactly.
func TestParse_noTimeZoneDrift(t *testing.T) {
	d := MustParse("2025-01-01")
	assert.Equal(t, "2025-01-01", d.String())
	assert.Equal(t, 2025, d.Time().Year())
	assert.Equal(t, time.January, d.Time().Month())
	assert.Equal(t, 1, d.Time().Day())
}

func TestDate_DaysSince(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{name: "same day", a: "2025-06-10", b: "2025-06-10", want: 0},
		{name: "next day", a: "2025-06-11", b: "2025-06-10", want: 1},
		{name: "negative when earlier", a: "2025-06-09", b: "2025-06-10", want: -1},
		{name: "across month boundary", a: "2025-07-02", b: "2025-06-25", want: 7},
		{name: "across year boundary", a: "2025-01-03", b: "2024-12-30", want: 4},
		{name: "across leap day", a: "2024-03-01", b: "2024-02-28", want: 2},
		{name: "thirty days", a: "2025-02-14", b: "2025-01-15", want: 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MustParse(tt.a).DaysSince(MustParse(tt.b))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDate_AddDays(t *testing.T) {
	d := MustParse("2025-01-30")
	assert.Equal(t, "2025-02-06", d.AddDays(7).String())
	assert.Equal(t, "2025-01-23", d.AddDays(-7).String())
	assert.Equal(t, "2025-03-01", d.AddDays(30).String())
}

func TestDate_yamlRoundTrip(t *testing.T) {
	type doc struct {
		StudyDate Date `yaml:"study_date"`
	}

	var parsed doc
	require.NoError(t, yaml.Unmarshal([]byte("study_date: 2025-04-15\n"), &parsed))
	assert.Equal(t, "2025-04-15", parsed.StudyDate.String())

	out, err := yaml.Marshal(parsed)
	require.NoError(t, err)
	assert.Equal(t, "study_date: \"2025-04-15\"\n", string(out))
}

func TestDate_jsonRoundTrip(t *testing.T) {
	type doc struct {
		TargetDate Date `json:"target_date"`
	}

	var parsed doc
	require.NoError(t, json.Unmarshal([]byte(`{"target_date":"2025-04-15"}`), &parsed))
	assert.Equal(t, "2025-04-15", parsed.TargetDate.String())

	out, err := json.Marshal(parsed)
	require.NoError(t, err)
	assert.JSONEq(t, `{"target_date":"2025-04-15"}`, string(out))
}

func TestDate_Scan(t *testing.T) {
	tests := []struct {
		name    string
		src     interface{}
		want    string
		wantErr bool
	}{
		{name: "string", src: "2025-05-01", want: "2025-05-01"},
		{name: "bytes", src: []byte("2025-05-02"), want: "2025-05-02"},
		{name: "time", src: time.Date(2025, 5, 3, 14, 30, 0, 0, time.Local), want: "2025-05-03"},
		{name: "nil becomes zero", src: nil, want: "0001-01-01"},
		{name: "unsupported type", src: 42, wantErr: true},
		{name: "malformed string", src: "not-a-date", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			err := d.Scan(tt.src)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.String())
		})
	}
}
