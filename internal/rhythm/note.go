// Package rhythm turns an activity's song into timed notes and resolves
// player input against them.
package rhythm

import (
	"math"

	"github.com/vovakirdan/compulsive-charlie/internal/emotion"
)

// Outcome is the terminal state of a note.
type Outcome int

const (
	Pending Outcome = iota
	Hit
	Miss
	Deflect
	AutoHit
)

func (o Outcome) String() string {
	switch o {
	case Pending:
		return "pending"
	case Hit:
		return "hit"
	case Miss:
		return "miss"
	case Deflect:
		return "deflect"
	case AutoHit:
		return "auto-hit"
	default:
		return "unknown"
	}
}

// Input is one tick of edge-triggered direction presses.
type Input struct {
	Up, Down, Left, Right bool
}

// Any reports whether any direction was pressed.
func (in Input) Any() bool {
	return in.Up || in.Down || in.Left || in.Right
}

// Matches reports whether the press set includes the key for t.
// Up plays energy notes, Down anxiety, Left despair, Right frustration.
func (in Input) Matches(t emotion.Type) bool {
	switch t {
	case emotion.None:
		return in.Up
	case emotion.Anxiety:
		return in.Down
	case emotion.Despair:
		return in.Left
	case emotion.Frustration:
		return in.Right
	default:
		return false
	}
}

// Note is a live note. Positions are relative to the hit area; Y is fixed
// at spawn and X shrinks to 0 at the arrival time.
type Note struct {
	ID      int
	Type    emotion.Type
	Clip    string
	Spawn   float64
	Arrival float64
	StartX  float64
	Y       float64

	outcome Outcome
}

func newNote(id int, spec SpawnSpec, travelDist, travelTime, angleOffset float64) *Note {
	rad := (float64(spec.Angle) - angleOffset) * math.Pi / 180
	return &Note{
		ID:      id,
		Type:    spec.Type,
		Clip:    spec.Clip,
		Spawn:   spec.SpawnTime,
		Arrival: spec.SpawnTime + travelTime,
		StartX:  travelDist * math.Cos(rad),
		Y:       travelDist * math.Sin(rad),
	}
}

// X returns the horizontal distance to the hit area at time t.
func (n *Note) X(t, travelTime float64) float64 {
	return max(0, n.StartX*(n.Arrival-t)/travelTime)
}

// Resolved reports whether the note reached a terminal state.
func (n *Note) Resolved() bool {
	return n.outcome != Pending
}

// Outcome returns how the note was resolved.
func (n *Note) Outcome() Outcome {
	return n.outcome
}

// resolve moves the note into o. It returns false if the note was already
// resolved, leaving the first outcome in place.
func (n *Note) resolve(o Outcome) bool {
	if n.Resolved() || o == Pending {
		return false
	}
	n.outcome = o
	return true
}

// NoteView is the presentation snapshot of a note.
type NoteView struct {
	ID      int
	Type    emotion.Type
	Clip    string
	X, Y    float64
	Arrival float64
	Outcome Outcome
}

func (n *Note) view(t, travelTime float64) NoteView {
	return NoteView{
		ID:      n.ID,
		Type:    n.Type,
		Clip:    n.Clip,
		X:       n.X(t, travelTime),
		Y:       n.Y,
		Arrival: n.Arrival,
		Outcome: n.outcome,
	}
}
