package review

import (
	"github.com/rbarros/studytrack/internal/calendar"
	"github.com/rbarros/studytrack/internal/study"
)

// State is a caller-owned, in-memory snapshot of the record set the
// scheduler operates on. The scheduler never keeps ambient record state of
// its own: classification is a pure function of a State, and the completion
// transaction mutates one through explicit Apply calls so the caller can see
// (and undo) every change.
type State struct {
	records []study.Record
}

// NewState creates a snapshot from the given records. The slice is copied;
// later changes to the argument do not leak in.
func NewState(records []study.Record) *State {
	s := &State{records: make([]study.Record, len(records))}
	copy(s.records, records)
	return s
}

// Records returns the current snapshot contents.
func (s *State) Records() []study.Record {
	return s.records
}

// Get returns the record with the given id.
func (s *State) Get(id int64) (study.Record, bool) {
	for _, rec := range s.records {
		if rec.ID == id {
			return rec, true
		}
	}
	return study.Record{}, false
}

// Apply replaces the stored record with the same ID. Unknown IDs are
// appended, which covers newly created audit records.
func (s *State) Apply(rec study.Record) {
	for i := range s.records {
		if s.records[i].ID == rec.ID {
			s.records[i] = rec
			return
		}
	}
	s.records = append(s.records, rec)
}

// Classify runs the candidate classifier over the snapshot.
func (s *State) Classify(trackID string, f Filters, today calendar.Date) Classification {
	return Classify(s.records, trackID, f, today)
}
