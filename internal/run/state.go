// Package run holds the mutable state of a single run together with the
// activity and thought records that read and change it.
package run

import (
	"github.com/vovakirdan/compulsive-charlie/internal/emotion"
)

// Platform is an activity placed in the world at a height.
type Platform struct {
	Activity *Activity
	Y        int
}

// Raise moves the platform up by n.
func (p *Platform) Raise(n int) {
	p.Y += n
}

// State is the per-run record. It is owned by the run controller and only
// mutated from the update loop.
type State struct {
	Energy    int
	EnergyCap int
	Combo     int
	MaxCombo  int
	Height    int
	TimeSteps int
	BedTime   int
	Emotions  emotion.State

	History []*Platform // visited platforms, append-only
	Spawned []*Platform // platforms currently on offer

	SchedulePoints int
	Done           bool

	// Rhythm stats for the recap
	Hits     int
	Misses   int
	AutoHits int
	Deflects int
}

// NewState creates the state for a fresh run.
func NewState(initialEnergy, energyCap int, emotions emotion.State, bedTime int) *State {
	s := &State{
		EnergyCap: energyCap,
		BedTime:   bedTime,
		Emotions:  emotions,
	}
	s.IncreaseEnergy(initialEnergy)
	return s
}

// IncreaseEnergy adds n energy, clamped into [0, EnergyCap].
// Negative n drains energy.
func (s *State) IncreaseEnergy(n int) {
	s.Energy += n
	if s.Energy < 0 {
		s.Energy = 0
	}
	if s.EnergyCap > 0 && s.Energy > s.EnergyCap {
		s.Energy = s.EnergyCap
	}
}

// IncreaseCombo extends the current streak.
func (s *State) IncreaseCombo() {
	s.Combo++
	if s.Combo > s.MaxCombo {
		s.MaxCombo = s.Combo
	}
}

// BreakCombo ends the current streak after a miss.
func (s *State) BreakCombo() {
	s.Combo = 0
}

// ResetCombo clears the streak at the start of a new activity.
func (s *State) ResetCombo() {
	s.Combo = 0
}

// TimeSinceLast returns how many time steps ago the activity was last
// visited (0 means it is the current one). If it was never visited the
// length of the history is returned.
func (s *State) TimeSinceLast(a *Activity) int {
	for i := len(s.History) - 1; i >= 0; i-- {
		if s.History[i].Activity.Is(a) {
			return len(s.History) - 1 - i
		}
	}
	return len(s.History)
}

// CurrentActivityPlatform returns the platform the player is on, or nil.
func (s *State) CurrentActivityPlatform() *Platform {
	if len(s.History) == 0 {
		return nil
	}
	return s.History[len(s.History)-1]
}

// CurrentActivity returns the activity of the current platform, or nil.
func (s *State) CurrentActivity() *Activity {
	if p := s.CurrentActivityPlatform(); p != nil {
		return p.Activity
	}
	return nil
}

// CurrentY returns the height of the current platform (0 before the first).
func (s *State) CurrentY() int {
	if p := s.CurrentActivityPlatform(); p != nil {
		return p.Y
	}
	return 0
}

// SpawnedActivities returns the activities of the offered platforms.
func (s *State) SpawnedActivities() []*Activity {
	out := make([]*Activity, 0, len(s.Spawned))
	for _, p := range s.Spawned {
		if p.Activity != nil {
			out = append(out, p.Activity)
		}
	}
	return out
}

// ClearSpawned drops every offered platform except the one advanced to.
func (s *State) ClearSpawned(except *Platform) {
	clear(s.Spawned)
	s.Spawned = s.Spawned[:0]
	if except != nil {
		s.Spawned = append(s.Spawned, except)
	}
}
