package run

import (
	"github.com/vovakirdan/compulsive-charlie/internal/emotion"
)

// Profile is the content pool and starting conditions for runs.
type Profile struct {
	InitialEnergy   int
	EnergyCap       int
	BedTime         int
	InitialEmotions emotion.State

	Activities []*Activity
	Thoughts   []*Thought

	// Schedule maps a time step to the activity expected at that step.
	Schedule map[int]string
}

// NewState creates the starting state of a run for this profile.
func (p *Profile) NewState() *State {
	return NewState(p.InitialEnergy, p.EnergyCap, p.InitialEmotions, p.BedTime)
}

// ScheduleAt returns the activity scheduled for step, or nil.
func (p *Profile) ScheduleAt(step int) *Activity {
	name, ok := p.Schedule[step]
	if !ok {
		return nil
	}
	return p.ActivityByName(name)
}

// ActivityByName finds an activity in the pool.
func (p *Profile) ActivityByName(name string) *Activity {
	for _, a := range p.Activities {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// ThoughtByName finds a thought in the pool.
func (p *Profile) ThoughtByName(name string) *Thought {
	for _, t := range p.Thoughts {
		if t.Name == name {
			return t
		}
	}
	return nil
}
