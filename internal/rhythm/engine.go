package rhythm

import (
	"math/rand"

	"github.com/vovakirdan/compulsive-charlie/internal/config"
	"github.com/vovakirdan/compulsive-charlie/internal/emotion"
	"github.com/vovakirdan/compulsive-charlie/internal/run"
)

// Listener receives presentation events. Either field may be nil.
type Listener struct {
	OnSpawn   func(n NoteView)
	OnResolve func(n NoteView, o Outcome)
}

// Tutorials observes the engine. While Active returns true the engine is
// frozen.
type Tutorials interface {
	Active() bool
	// SuppressEmotionNotes reports whether notes of the early activities
	// should all be energy notes.
	SuppressEmotionNotes() bool
	// NoteVisible is called each tick the first live note is close to the
	// hit area.
	NoteVisible()
	// EmotionNoteVisible is called each tick the first live note is an
	// emotion note inside the beam.
	EmotionNoteVisible()
}

// Engine runs the rhythm game of the current activity. It is driven from a
// single update loop and mutates the run state directly.
type Engine struct {
	cfg   config.RhythmConfig
	state *run.State
	sched *Scheduler

	listener  Listener
	tutorials Tutorials

	activity *run.Activity
	time     float64
	lateEnd  float64
	beam     Beam
	queue    []SpawnSpec
	notes    []*Note
	effects  effectQueue
	nextID   int
}

// NewEngine creates an idle engine for st.
func NewEngine(cfg config.RhythmConfig, st *run.State, rng *rand.Rand) *Engine {
	return &Engine{
		cfg:   cfg,
		state: st,
		sched: NewScheduler(cfg, rng),
		beam:  newBeam(cfg.Beam),
	}
}

// SetListener installs presentation callbacks.
func (e *Engine) SetListener(l Listener) {
	e.listener = l
}

// SetTutorials installs the tutorial observer. Nil disables tutorials.
func (e *Engine) SetTutorials(t Tutorials) {
	e.tutorials = t
}

// Start abandons any running activity and loads the song of a.
func (e *Engine) Start(a *run.Activity) {
	e.Stop()
	e.activity = a
	e.time = 0
	e.lateEnd = 0
	e.beam.AngleOffset = 0
	e.state.ResetCombo()

	plain := len(e.state.History) < 2 && e.tutorials != nil && e.tutorials.SuppressEmotionNotes()
	e.queue = e.sched.LoadSong(a, e.state, plain)
}

// Stop abandons the current activity. Queued spawns, live notes and
// pending hit effects are dropped.
func (e *Engine) Stop() {
	e.activity = nil
	e.queue = nil
	clear(e.notes)
	e.notes = e.notes[:0]
	e.effects.cancel()
}

// Running reports whether an activity is loaded.
func (e *Engine) Running() bool {
	return e.activity != nil
}

// Finished reports whether the current song has played out completely.
func (e *Engine) Finished() bool {
	return e.activity != nil && len(e.queue) == 0 && len(e.notes) == 0 && e.effects.size() == 0
}

// Activity returns the activity being played, or nil.
func (e *Engine) Activity() *run.Activity { return e.activity }

// Time returns the rhythm clock in seconds since Start.
func (e *Engine) Time() float64 { return e.time }

// Beam returns the current beam.
func (e *Engine) Beam() Beam { return e.beam }

// Notes returns snapshots of the live notes in arrival order.
func (e *Engine) Notes() []NoteView {
	out := make([]NoteView, len(e.notes))
	for i, n := range e.notes {
		out[i] = n.view(e.time, e.cfg.TravelTime)
	}
	return out
}

// Update advances the engine by dt seconds with the presses of this tick.
func (e *Engine) Update(dt float64, in Input) {
	if e.activity == nil {
		return
	}
	if e.tutorials != nil && e.tutorials.Active() {
		return
	}

	e.time += dt
	e.beam.update(e.cfg.Beam, e.state.Energy, dt)
	e.resolveEdges()
	e.spawnDue()
	e.resolveNearest(in)
	e.compact()
	e.effects.runDue(e.time)
	e.notifyTutorials()
}

// resolveEdges force-resolves notes sitting on the beam boundary. Notes
// below the hit line are auto-hit, the rest bounce off.
func (e *Engine) resolveEdges() {
	for _, n := range e.notes {
		if n.Resolved() || e.beam.Inside(n.Y) || !e.beam.Touching(n.Y, e.cfg.NoteRadius) {
			continue
		}
		if n.Y < 0 {
			e.finish(n, AutoHit)
		} else {
			e.finish(n, Deflect)
		}
	}
}

func (e *Engine) spawnDue() {
	for len(e.queue) > 0 && e.time >= e.queue[0].SpawnTime {
		e.nextID++
		n := newNote(e.nextID, e.queue[0], e.cfg.TravelDist, e.cfg.TravelTime, e.beam.AngleOffset)
		e.queue = e.queue[1:]
		e.notes = append(e.notes, n)
		if e.listener.OnSpawn != nil {
			e.listener.OnSpawn(n.view(e.time, e.cfg.TravelTime))
		}
	}
}

// nearest returns the earliest pending note and every pending note that
// arrives within GroupEpsilon of it.
func (e *Engine) nearest() []*Note {
	var group []*Note
	for _, n := range e.notes {
		if n.Resolved() {
			continue
		}
		if len(group) == 0 || n.Arrival-group[0].Arrival < e.cfg.GroupEpsilon {
			group = append(group, n)
		}
	}
	return group
}

func (e *Engine) resolveNearest(in Input) {
	group := e.nearest()
	if len(group) == 0 {
		return
	}
	arrival := group[0].Arrival

	// Too late: the whole group is missed and stray late presses are
	// forgiven for a while
	if e.time > arrival+e.cfg.HitWindowLate {
		e.missAll(group)
		e.lateEnd = e.time + e.cfg.LateHitPeriod
		return
	}
	if !in.Any() {
		return
	}

	// Inside the window a press that matches no note misses the whole
	// group, unless it falls in the forgiving period after a late miss
	if e.time > arrival-e.cfg.HitWindowEarly {
		matched := false
		for _, n := range group {
			if in.Matches(n.Type) {
				e.finish(n, Hit)
				matched = true
			}
		}
		if !matched && e.time > e.lateEnd {
			e.missAll(group)
		}
		return
	}

	// Early presses are only punished close to the arrival
	if e.time > e.lateEnd && e.time > arrival-e.cfg.EarlyHitPeriod {
		e.missAll(group)
	}
}

func (e *Engine) missAll(group []*Note) {
	for _, n := range group {
		e.finish(n, Miss)
	}
}

// finish resolves n and applies the outcome to the run. Repeated calls on
// a resolved note do nothing.
func (e *Engine) finish(n *Note, o Outcome) {
	if !n.resolve(o) {
		return
	}
	st := e.state
	switch o {
	case Hit:
		st.Hits++
		st.IncreaseCombo()
		t := n.Type
		// Credit lands when the note would have reached the hit line
		e.effects.schedule(max(e.time, n.Arrival), func() {
			st.IncreaseEnergy(1)
			if t != emotion.None {
				st.Emotions.Add(t, -1)
			}
		})
	case AutoHit:
		st.AutoHits++
		st.IncreaseCombo()
	case Miss:
		st.Misses++
		st.BreakCombo()
		if n.Type != emotion.None {
			st.Emotions.Add(n.Type, 1)
		}
	case Deflect:
		st.Deflects++
	}
	if e.listener.OnResolve != nil {
		e.listener.OnResolve(n.view(e.time, e.cfg.TravelTime), o)
	}
}

// compact drops resolved notes.
func (e *Engine) compact() {
	live := e.notes[:0]
	for _, n := range e.notes {
		if !n.Resolved() {
			live = append(live, n)
		}
	}
	clear(e.notes[len(live):])
	e.notes = live
}

func (e *Engine) notifyTutorials() {
	if e.tutorials == nil || len(e.notes) == 0 {
		return
	}
	first := e.notes[0]
	if first.X(e.time, e.cfg.TravelTime) < e.cfg.TutorialVisibleDist {
		e.tutorials.NoteVisible()
	}
	if first.Type != emotion.None && e.beam.Inside(first.Y) {
		e.tutorials.EmotionNoteVisible()
	}
}
