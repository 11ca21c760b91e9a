package rhythm

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/compulsive-charlie/internal/config"
	"github.com/vovakirdan/compulsive-charlie/internal/emotion"
	"github.com/vovakirdan/compulsive-charlie/internal/run"
	"github.com/vovakirdan/compulsive-charlie/internal/song"
)

func TestFirstActivityPattern(t *testing.T) {
	cfg := config.DefaultRhythmConfig()
	s := NewScheduler(cfg, rand.New(rand.NewSource(1)))
	st := run.NewState(5, 20, emotion.State{}, 12)

	a := &run.Activity{Song: song.New(song.Part{Measure: song.NewMeasure(
		song.Note(1, "E", 4), song.Note(5, "E", 4), song.Note(9, "E", 4),
	)})}

	q := s.LoadSong(a, st, false)
	if len(q) != 2 {
		t.Fatalf("expected the two-note pattern, got %d notes", len(q))
	}
	if q[0].SpawnTime != 0 || math.Abs(q[1].SpawnTime-3*cfg.TempoIncrement) > 1e-9 {
		t.Errorf("spawn times = %v, %v", q[0].SpawnTime, q[1].SpawnTime)
	}

	st.TimeSteps = 1
	if got := len(s.LoadSong(a, st, false)); got != 3 {
		t.Errorf("later activities use their song, got %d notes", got)
	}
}

func TestLoadSongOrderAndTiming(t *testing.T) {
	cfg := config.DefaultRhythmConfig()
	s := NewScheduler(cfg, rand.New(rand.NewSource(1)))
	st := run.NewState(5, 20, emotion.State{}, 12)
	st.TimeSteps = 3

	a := &run.Activity{Song: song.Song{Notes: []song.NoteSpec{
		song.Note(8, "C", 0), song.Note(2, "D", 0), song.Note(4, "E", 0),
	}}}
	q := s.LoadSong(a, st, false)

	want := []float64{2, 4, 8}
	for i, w := range want {
		if math.Abs(q[i].SpawnTime-w*cfg.TempoIncrement) > 1e-9 {
			t.Errorf("note %d spawn = %v, expected %v", i, q[i].SpawnTime, w*cfg.TempoIncrement)
		}
	}
	if q[0].Clip != "wood_block/D" {
		t.Errorf("first clip = %q", q[0].Clip)
	}
}

func TestTagging(t *testing.T) {
	notes := []song.NoteSpec{
		song.Note(4, "C", 2),
		song.Note(0, "C", 6),
		song.Note(0, "C", 0), // easiest: earliest, then lowest
		song.Note(8, "C", 0).WithType(emotion.Despair),
		song.Note(12, "C", 0).WithType(emotion.None),
	}
	a := &run.Activity{Song: song.Song{Notes: notes}}

	tests := []struct {
		name     string
		emotions emotion.State
		plain    bool
		want     []emotion.Type
	}{
		{
			"calm run stays energy",
			emotion.State{},
			false,
			[]emotion.Type{emotion.None, emotion.None, emotion.None, emotion.Despair, emotion.None},
		},
		{
			"saturated dominant tags every free note",
			emotion.New(60, 0, 0),
			false,
			[]emotion.Type{emotion.Anxiety, emotion.None, emotion.Anxiety, emotion.Despair, emotion.None},
		},
		{
			"plain notes override everything",
			emotion.New(60, 0, 0),
			true,
			[]emotion.Type{emotion.None, emotion.None, emotion.None, emotion.None, emotion.None},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			st := run.NewState(5, 20, tc.emotions, 12)
			st.TimeSteps = 2
			s := NewScheduler(config.DefaultRhythmConfig(), rand.New(rand.NewSource(7)))

			q := s.LoadSong(a, st, tc.plain)
			if len(q) != len(tc.want) {
				t.Fatalf("got %d notes", len(q))
			}
			for i, w := range tc.want {
				if q[i].Type != w {
					t.Errorf("note %d (angle %d) type = %v, expected %v", i, q[i].Angle, q[i].Type, w)
				}
			}
		})
	}
}

func TestTagDistribution(t *testing.T) {
	cfg := config.DefaultRhythmConfig()
	s := NewScheduler(cfg, rand.New(rand.NewSource(11)))
	e := emotion.New(30, 10, 0)

	counts := map[emotion.Type]int{}
	for range 6000 {
		counts[s.tag(e)]++
	}
	if counts[emotion.Despair] != 0 {
		t.Errorf("despair at zero should never be drawn, got %d", counts[emotion.Despair])
	}
	if counts[emotion.Anxiety] <= counts[emotion.Frustration] {
		t.Errorf("dominant anxiety should outnumber frustration: %v", counts)
	}
	if counts[emotion.None] == 0 {
		t.Error("some notes should stay energy notes")
	}
}

func TestBeamLeveling(t *testing.T) {
	cfg := config.DefaultRhythmConfig().Beam

	high := newBeam(cfg)
	for range 100 {
		high.update(cfg, 20, 0.1)
	}
	if high.AngleOffset != cfg.MaxAngleOffset {
		t.Errorf("angle offset = %v, expected cap %v", high.AngleOffset, cfg.MaxAngleOffset)
	}
	if high.Width <= cfg.MinWidth {
		t.Errorf("width = %v should grow toward the energy width", high.Width)
	}

	low := Beam{Width: 3, AngleOffset: 5}
	for range 100 {
		low.update(cfg, 0, 0.1)
	}
	if low.AngleOffset != 0 {
		t.Errorf("angle offset = %v, expected decay to 0", low.AngleOffset)
	}
	if low.Width < cfg.MinWidth {
		t.Errorf("width = %v fell under the minimum", low.Width)
	}
}

func TestBeamGeometry(t *testing.T) {
	b := Beam{Width: 2}

	tests := []struct {
		y        float64
		inside   bool
		touching bool
	}{
		{0, true, true},
		{1.0, true, true},
		{1.3, false, true},
		{-1.5, false, true},
		{1.6, false, false},
	}
	for _, tc := range tests {
		if got := b.Inside(tc.y); got != tc.inside {
			t.Errorf("Inside(%v) = %v", tc.y, got)
		}
		if got := b.Touching(tc.y, 0.5); got != tc.touching {
			t.Errorf("Touching(%v) = %v", tc.y, got)
		}
	}
}
