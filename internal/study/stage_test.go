package study

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStageFlags_NextOutstanding(t *testing.T) {
	tests := []struct {
		name  string
		flags StageFlags
		want  Stage
	}{
		{
			name:  "no flags set",
			flags: StageFlags{},
			want:  Stage24h,
		},
		{
			name:  "first flag set",
			flags: StageFlags{Stage24h: true},
			want:  Stage07d,
		},
		{
			name:  "first three set",
			flags: StageFlags{Stage24h: true, Stage07d: true, Stage15d: true},
			want:  Stage30d,
		},
		{
			name:  "all set",
			flags: AllStagesDone(),
			want:  StageComplete,
		},
		{
			// Acceleration can leave gaps. Resolution order stays fixed: the
			// first false flag wins even when a later flag is already true.
			name:  "non-contiguous flags resolve to first gap",
			flags: StageFlags{Stage24h: true, Stage07d: false, Stage15d: true, Stage30d: false},
			want:  Stage07d,
		},
		{
			name:  "only last flag set",
			flags: StageFlags{Stage30d: true},
			want:  Stage24h,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.flags.NextOutstanding())
		})
	}
}

func TestStage_HorizonDays(t *testing.T) {
	assert.Equal(t, 1, Stage24h.HorizonDays())
	assert.Equal(t, 7, Stage07d.HorizonDays())
	assert.Equal(t, 15, Stage15d.HorizonDays())
	assert.Equal(t, 30, Stage30d.HorizonDays())
	assert.Equal(t, 0, StageComplete.HorizonDays())
}

func TestStage_String(t *testing.T) {
	assert.Equal(t, "24h", Stage24h.String())
	assert.Equal(t, "7d", Stage07d.String())
	assert.Equal(t, "15d", Stage15d.String())
	assert.Equal(t, "30d", Stage30d.String())
	assert.Equal(t, "complete", StageComplete.String())
}

func TestStageFlags_WithStageDone(t *testing.T) {
	flags := StageFlags{}

	flags = flags.WithStageDone(Stage07d)
	assert.Equal(t, StageFlags{Stage07d: true}, flags)

	// Marking an already complete stage is a no-op.
	flags = flags.WithStageDone(Stage07d)
	assert.Equal(t, StageFlags{Stage07d: true}, flags)

	// StageComplete is not a flag and changes nothing.
	flags = flags.WithStageDone(StageComplete)
	assert.Equal(t, StageFlags{Stage07d: true}, flags)
}

func TestStageFlags_AllSet(t *testing.T) {
	assert.False(t, StageFlags{}.AllSet())
	assert.False(t, StageFlags{Stage24h: true, Stage07d: true, Stage15d: true}.AllSet())
	assert.True(t, AllStagesDone().AllSet())
}
