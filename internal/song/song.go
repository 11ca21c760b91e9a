// Package song holds the note pattern data an activity plays: individual
// note specs, measures of notes, and songs assembled from numbered measures.
package song

import (
	"errors"
	"fmt"
	"slices"

	"github.com/vovakirdan/compulsive-charlie/internal/emotion"
)

// MeasureSize is the number of ticks in one measure.
const MeasureSize = 16

// DefaultInstrument is used when a note spec does not name one.
const DefaultInstrument = "wood_block"

// NoteSpec describes one note of a pattern. Timing is in tempo ticks,
// Angle in degrees above the hit line. Notes without a Fixed type get their
// tag from the scheduler.
type NoteSpec struct {
	Timing     int          `yaml:"timing"`
	Pitch      string       `yaml:"pitch"`
	Instrument string       `yaml:"instrument"`
	Angle      int          `yaml:"angle"`
	Type       emotion.Type `yaml:"type"`
	Fixed      bool         `yaml:"fixed"`
}

// Note creates a wood block note spec with an unspecified type.
func Note(timing int, pitch string, angle int) NoteSpec {
	return NoteSpec{
		Timing:     timing,
		Pitch:      pitch,
		Instrument: DefaultInstrument,
		Angle:      angle,
		Type:       emotion.None,
	}
}

// WithType returns a copy of the note with its tag fixed to t.
func (n NoteSpec) WithType(t emotion.Type) NoteSpec {
	n.Type = t
	n.Fixed = true
	return n
}

// Unspecified reports whether the scheduler should choose the tag.
func (n NoteSpec) Unspecified() bool {
	return !n.Fixed && n.Type == emotion.None
}

// WithInstrument returns a copy of the note played on instrument.
func (n NoteSpec) WithInstrument(instrument string) NoteSpec {
	n.Instrument = instrument
	return n
}

// Clip returns the audio clip reference for the note ("instrument/pitch").
func (n NoteSpec) Clip() string {
	instrument := n.Instrument
	if instrument == "" {
		instrument = DefaultInstrument
	}
	return instrument + "/" + n.Pitch
}

// Measure is an ordered group of notes with timings relative to the
// measure start.
type Measure struct {
	Notes []NoteSpec
}

// NewMeasure creates a measure from notes.
func NewMeasure(notes ...NoteSpec) Measure {
	return Measure{Notes: notes}
}

// AddMeasure appends all notes of other, keeping their timings.
func (m *Measure) AddMeasure(other Measure) {
	m.Notes = append(m.Notes, other.Notes...)
}

// Copy returns an independent copy of the measure.
func (m Measure) Copy() Measure {
	return Measure{Notes: slices.Clone(m.Notes)}
}

// ReplaceAllPitches returns a copy with every pitch set to pitch.
func (m Measure) ReplaceAllPitches(pitch string) Measure {
	out := m.Copy()
	for i := range out.Notes {
		out.Notes[i].Pitch = pitch
	}
	return out
}

// Part places a measure at a measure index inside a song.
type Part struct {
	Measure Measure
	Index   int
}

// Song is a flat list of notes with absolute timings.
type Song struct {
	Notes []NoteSpec
}

// New assembles a song from measures placed at measure indices.
func New(parts ...Part) Song {
	var s Song
	for _, p := range parts {
		s.AddMeasure(p.Measure, p.Index)
	}
	return s
}

// AddMeasure appends the notes of m offset by index*MeasureSize ticks.
func (s *Song) AddMeasure(m Measure, index int) {
	offset := index * MeasureSize
	for _, n := range m.Notes {
		n.Timing += offset
		s.Notes = append(s.Notes, n)
	}
}

// Length returns the largest note timing, or 0 for an empty song.
func (s Song) Length() int {
	length := 0
	for _, n := range s.Notes {
		length = max(length, n.Timing)
	}
	return length
}

// Sorted returns the notes ordered by timing. Notes sharing a tick keep
// their relative order.
func (s Song) Sorted() []NoteSpec {
	notes := slices.Clone(s.Notes)
	slices.SortStableFunc(notes, func(a, b NoteSpec) int {
		return a.Timing - b.Timing
	})
	return notes
}

// Validate reports configuration defects in the song's notes.
func (s Song) Validate() error {
	var errs []error
	for i, n := range s.Notes {
		if n.Timing < 0 {
			errs = append(errs, fmt.Errorf("note %d: negative timing %d", i, n.Timing))
		}
		if !n.Type.Valid() {
			errs = append(errs, fmt.Errorf("note %d: invalid type %d", i, int(n.Type)))
		}
		if n.Pitch == "" {
			errs = append(errs, fmt.Errorf("note %d: empty pitch", i))
		}
	}
	return errors.Join(errs...)
}
