// Package game models the persistent view of the player's roster.
package game

import (
	"sync/atomic"
	"time"
)

const (
	// NumEchelons is the number of roster slots the game exposes.
	NumEchelons = 10
	// MembersPerEchelon is the fixed squad capacity of one echelon.
	MembersPerEchelon = 5
)

// Assignment is a logistics mission in progress: an immutable reference to a
// catalog entry plus the absolute wall-clock time it completes.
type Assignment struct {
	Support *LogisticsSupport
	ETA     time.Time
}

// Member is one unit slot inside an echelon. A zero RepairETA means the
// unit is not under repair.
type Member struct {
	Number    int
	RepairETA time.Time
}

// UnderRepair reports whether the member is still repairing at the given time.
func (m *Member) UnderRepair(now time.Time) bool {
	return m.RepairETA.After(now)
}

// Echelon is one roster slot. The status reader's two pipelines write
// disjoint fields of this struct concurrently: the logistics pipeline only
// ever touches Logistics, the repair pipeline only ever touches the
// Members' RepairETA. Any new writer that breaks that separation must add
// its own synchronization.
type Echelon struct {
	Number    int
	Members   [MembersPerEchelon]Member
	Logistics *Assignment
}

// State is the process-lifetime aggregate of everything known about the
// roster. It is created once and mutated in place by status update passes.
type State struct {
	echelons       []*Echelon
	requiresUpdate atomic.Bool
}

// NewState creates a roster with every echelon idle and the freshness flag
// set, so the first update pass runs unconditionally.
func NewState() *State {
	s := &State{echelons: make([]*Echelon, NumEchelons)}
	for i := range s.echelons {
		e := &Echelon{Number: i + 1}
		for j := range e.Members {
			e.Members[j].Number = j + 1
		}
		s.echelons[i] = e
	}
	s.requiresUpdate.Store(true)
	return s
}

// Echelon returns the 1-based numbered echelon, or nil if the number is
// outside the roster.
func (s *State) Echelon(number int) *Echelon {
	if number < 1 || number > len(s.echelons) {
		return nil
	}
	return s.echelons[number-1]
}

// Echelons returns the full ordered roster.
func (s *State) Echelons() []*Echelon {
	return s.echelons
}

// RequiresUpdate reports whether the in-memory roster may be stale and a
// resynchronization pass is needed.
func (s *State) RequiresUpdate() bool {
	return s.requiresUpdate.Load()
}

// SetRequiresUpdate sets the freshness flag.
func (s *State) SetRequiresUpdate(v bool) {
	s.requiresUpdate.Store(v)
}
