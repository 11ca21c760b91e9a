// Package emotion tracks the three emotion magnitudes of a run and derives
// the values other systems read from them (dominant emotion, extremeness,
// platform raise amount).
package emotion

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Type identifies an emotion. None doubles as the "energy" tag for notes.
type Type int

const (
	None Type = iota
	Anxiety
	Frustration
	Despair
)

// Types lists the real emotions in tie-break order.
var Types = []Type{Anxiety, Frustration, Despair}

// String returns the lowercase name of the emotion.
func (t Type) String() string {
	switch t {
	case None:
		return "none"
	case Anxiety:
		return "anxiety"
	case Frustration:
		return "frustration"
	case Despair:
		return "despair"
	default:
		return fmt.Sprintf("emotion(%d)", int(t))
	}
}

// Valid reports whether t is one of the declared types.
func (t Type) Valid() bool {
	return t >= None && t <= Despair
}

// ParseType converts a name ("anxiety", "none", ...) to a Type.
// The empty string parses as None.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "energy":
		return None, nil
	case "anxiety":
		return Anxiety, nil
	case "frustration":
		return Frustration, nil
	case "despair":
		return Despair, nil
	}
	return None, fmt.Errorf("emotion: unknown type %q", s)
}

// MarshalYAML encodes the type by name.
func (t Type) MarshalYAML() (any, error) {
	return t.String(), nil
}

// UnmarshalYAML decodes a type from its name.
func (t *Type) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseType(value.Value)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MaxMagnitude caps every emotion. It matches the scale the rhythm scheduler
// samples note tags against, so a maxed emotion always wins its draw.
const MaxMagnitude = 60

// Extremeness band width: every full band above the first adds one unit of
// weight.
const extremenessBand = 10

// maxExtremeness is the weight of any magnitude at or above 40.
const maxExtremeness = 4

// State holds the three emotion magnitudes of a run.
type State struct {
	Anxiety     int `yaml:"anxiety"`
	Frustration int `yaml:"frustration"`
	Despair     int `yaml:"despair"`
}

// New creates a State with the given magnitudes, clamped into range.
func New(anxiety, frustration, despair int) State {
	var s State
	s.Add(Anxiety, anxiety)
	s.Add(Frustration, frustration)
	s.Add(Despair, despair)
	return s
}

// Get returns the magnitude of t. None has magnitude 0.
func (s State) Get(t Type) int {
	switch t {
	case Anxiety:
		return s.Anxiety
	case Frustration:
		return s.Frustration
	case Despair:
		return s.Despair
	default:
		return 0
	}
}

func (s *State) ref(t Type) *int {
	switch t {
	case Anxiety:
		return &s.Anxiety
	case Frustration:
		return &s.Frustration
	case Despair:
		return &s.Despair
	default:
		return nil
	}
}

// Add changes the magnitude of t by amount, clamped into [0, MaxMagnitude].
func (s *State) Add(t Type, amount int) {
	v := s.ref(t)
	if v == nil {
		return
	}
	*v = clamp(*v+amount, 0, MaxMagnitude)
}

// AddState adds every component of other.
func (s *State) AddState(other State) {
	s.Add(Anxiety, other.Anxiety)
	s.Add(Frustration, other.Frustration)
	s.Add(Despair, other.Despair)
}

// Total returns the sum of all magnitudes.
func (s State) Total() int {
	return s.Anxiety + s.Frustration + s.Despair
}

// MaxValue returns the largest magnitude.
func (s State) MaxValue() int {
	return s.Get(s.Dominant())
}

// Dominant returns the emotion with the greatest magnitude.
// Ties resolve anxiety > frustration > despair; None when all are zero.
func (s State) Dominant() Type {
	best, bestVal := None, 0
	for _, t := range Types {
		if v := s.Get(t); v > bestVal {
			best, bestVal = t, v
		}
	}
	return best
}

// Extremeness maps the magnitude of t to a small availability weight:
// 0-9 → 0, 10-19 → 1, 20-29 → 2, 30-39 → 3, 40+ → 4.
func (s State) Extremeness(t Type) int {
	return min(s.Get(t)/extremenessBand, maxExtremeness)
}

// RaiseAmount is the height the current platform is raised by before a
// jump. Heavier emotional load makes upward jumps harder.
func (s State) RaiseAmount() int {
	return s.MaxValue() / extremenessBand
}

// Equilibrate moves every magnitude halfway toward the zero baseline.
func (s *State) Equilibrate() {
	s.Anxiety /= 2
	s.Frustration /= 2
	s.Despair /= 2
}

// String formats the state for logs and HUDs.
func (s State) String() string {
	return fmt.Sprintf("A%d F%d D%d", s.Anxiety, s.Frustration, s.Despair)
}

func clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
