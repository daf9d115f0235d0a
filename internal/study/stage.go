package study

// Stage identifies one of the four fixed reinforcement checkpoints, or the
// terminal Complete state once all four have been done. The order of the
// constants is the resolution order: the next outstanding stage is always the
// first incomplete one, even when later flags were set early by acceleration.
type Stage int

const (
	Stage24h Stage = iota
	Stage07d
	Stage15d
	Stage30d
	StageComplete
)

// stageHorizons maps each stage to its horizon in whole days after the
// original study date.
var stageHorizons = [...]int{
	Stage24h: 1,
	Stage07d: 7,
	Stage15d: 15,
	Stage30d: 30,
}

// HorizonDays returns the stage's horizon in whole days. StageComplete has
// no horizon and returns 0.
func (s Stage) HorizonDays() int {
	if s < Stage24h || s >= StageComplete {
		return 0
	}
	return stageHorizons[s]
}

func (s Stage) String() string {
	switch s {
	case Stage24h:
		return "24h"
	case Stage07d:
		return "7d"
	case Stage15d:
		return "15d"
	case Stage30d:
		return "30d"
	case StageComplete:
		return "complete"
	}
	return "unknown"
}

// NextOutstanding returns the first incomplete stage in fixed order, or
// StageComplete when every flag is set. Flags may be non-contiguous after
// acceleration; resolution order is fixed regardless.
func (f StageFlags) NextOutstanding() Stage {
	switch {
	case !f.Stage24h:
		return Stage24h
	case !f.Stage07d:
		return Stage07d
	case !f.Stage15d:
		return Stage15d
	case !f.Stage30d:
		return Stage30d
	}
	return StageComplete
}

// WithStageDone returns a copy of the flags with the given stage marked
// complete.
func (f StageFlags) WithStageDone(s Stage) StageFlags {
	switch s {
	case Stage24h:
		f.Stage24h = true
	case Stage07d:
		f.Stage07d = true
	case Stage15d:
		f.Stage15d = true
	case Stage30d:
		f.Stage30d = true
	}
	return f
}
