package rhythm

import (
	"math/rand"
	"slices"

	"github.com/vovakirdan/compulsive-charlie/internal/config"
	"github.com/vovakirdan/compulsive-charlie/internal/emotion"
	"github.com/vovakirdan/compulsive-charlie/internal/run"
	"github.com/vovakirdan/compulsive-charlie/internal/song"
)

// SpawnSpec is a queued note waiting for its spawn time.
type SpawnSpec struct {
	SpawnTime float64
	Type      emotion.Type
	Clip      string
	Angle     int
}

// firstPattern replaces the song of the very first activity of a run.
var firstPattern = []song.NoteSpec{
	song.Note(0, "C", 0),
	song.Note(3, "C", 0),
}

// Scheduler converts songs into spawn queues.
type Scheduler struct {
	cfg config.RhythmConfig
	rng *rand.Rand
}

// NewScheduler creates a scheduler drawing note tags from rng.
func NewScheduler(cfg config.RhythmConfig, rng *rand.Rand) *Scheduler {
	return &Scheduler{cfg: cfg, rng: rng}
}

// LoadSong builds the spawn queue for a, ordered by spawn time.
// Untyped notes are tagged from the run's emotions, except the easiest
// note of the pattern. With plainNotes every note becomes an energy note.
func (s *Scheduler) LoadSong(a *run.Activity, st *run.State, plainNotes bool) []SpawnSpec {
	pattern := a.Song.Sorted()
	if st.TimeSteps == 0 {
		pattern = slices.Clone(firstPattern)
	}
	if len(pattern) == 0 {
		return nil
	}

	// Earliest, then lowest
	easiest := 0
	for i, n := range pattern {
		e := pattern[easiest]
		if n.Timing < e.Timing || (n.Timing == e.Timing && n.Angle < e.Angle) {
			easiest = i
		}
	}

	queue := make([]SpawnSpec, 0, len(pattern))
	for i, n := range pattern {
		t := n.Type
		if i != easiest && n.Unspecified() {
			t = s.tag(st.Emotions)
		}
		if plainNotes {
			t = emotion.None
		}
		queue = append(queue, SpawnSpec{
			SpawnTime: float64(n.Timing) * s.cfg.TempoIncrement,
			Type:      t,
			Clip:      n.Clip(),
			Angle:     n.Angle,
		})
	}
	return queue
}

// tag picks a note type. The dominant emotion gets the first draw against
// its magnitude, then each configured emotion draws in turn.
func (s *Scheduler) tag(e emotion.State) emotion.Type {
	if s.rng.Intn(s.cfg.TagScale) < e.MaxValue() {
		return e.Dominant()
	}
	for _, t := range s.cfg.TagDraws {
		if s.rng.Intn(s.cfg.TagScale) < e.Get(t) {
			return t
		}
	}
	return emotion.None
}
