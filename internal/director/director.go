// Package director sequences a run: rhythm on the current platform, the
// jump pad, the thought menu and the jump to the next platform.
package director

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/compulsive-charlie/internal/config"
	"github.com/vovakirdan/compulsive-charlie/internal/content"
	"github.com/vovakirdan/compulsive-charlie/internal/rhythm"
	"github.com/vovakirdan/compulsive-charlie/internal/run"
	"github.com/vovakirdan/compulsive-charlie/internal/selection"
	"github.com/vovakirdan/compulsive-charlie/internal/tutorial"
)

var (
	// ErrUnreachable is returned when the jump power does not cover the
	// height of the chosen platform.
	ErrUnreachable = errors.New("director: platform out of reach")
	// ErrNotReady is returned when an operation is called in the wrong phase.
	ErrNotReady = errors.New("director: not ready")
	// ErrNotOffered is returned for platforms or thoughts that are not on offer.
	ErrNotOffered = errors.New("director: not on offer")
)

// Phase is the step of the run loop the player is in.
type Phase int

const (
	PhaseRhythm Phase = iota
	PhaseJumpPad
	PhaseThoughts
	PhaseJump
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseRhythm:
		return "rhythm"
	case PhaseJumpPad:
		return "jump-pad"
	case PhaseThoughts:
		return "thoughts"
	case PhaseJump:
		return "jump"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Director owns the run state and drives the selector, the rhythm engine
// and the tutorials. All methods must be called from one goroutine.
type Director struct {
	cfg     config.Config
	profile *run.Profile
	state   *run.State
	sel     *selection.Selector
	engine  *rhythm.Engine
	tutor   *tutorial.Manager
	logger  *log.Logger

	phase   Phase
	offered []*run.Thought
	thought *run.Thought
}

// New prepares a run for profile. A nil logger discards output.
func New(cfg config.Config, profile *run.Profile, rng *rand.Rand, logger *log.Logger) (*Director, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	fallbackDefault := profile.ActivityByName(content.FallbackDefault)
	fallbackBreakdown := profile.ActivityByName(content.FallbackBreakdown)
	filler := profile.ThoughtByName(content.FillerThought)
	if fallbackDefault == nil || fallbackBreakdown == nil || filler == nil {
		return nil, fmt.Errorf("director: profile lacks fallback content")
	}
	if profile.ActivityByName(content.FirstActivity) == nil {
		return nil, fmt.Errorf("director: profile lacks first activity %q", content.FirstActivity)
	}

	st := profile.NewState()
	d := &Director{
		cfg:     cfg,
		profile: profile,
		state:   st,
		sel:     selection.New(rng, fallbackDefault, fallbackBreakdown, filler),
		engine:  rhythm.NewEngine(cfg.Rhythm, st, rng),
		tutor:   tutorial.New(cfg.ShowTutorial, nil),
		logger:  logger,
	}
	d.engine.SetTutorials(d.tutor)
	return d, nil
}

// Start places the player on the first platform.
func (d *Director) Start() {
	first := &run.Platform{Activity: d.profile.ActivityByName(content.FirstActivity)}
	d.logger.Info("run started", "energy", d.state.Energy, "emotions", d.state.Emotions)
	d.AdvanceTimeStep(first)
}

// AdvanceTimeStep lands the player on p: the step counter moves, the
// activity takes effect and its rhythm starts.
func (d *Director) AdvanceTimeStep(p *run.Platform) {
	st := d.state
	st.TimeSteps++
	st.History = append(st.History, p)
	st.Height = p.Y

	if len(st.History) == 1 {
		st.TimeSteps = 0
	} else {
		st.ClearSpawned(p)
		p.Activity.Effect(st)
		if p.Activity.Is(d.profile.ScheduleAt(st.TimeSteps)) {
			st.SchedulePoints++
			d.logger.Debug("on schedule", "step", st.TimeSteps, "activity", p.Activity.Name)
		}
	}

	d.offered = nil
	d.phase = PhaseRhythm
	d.engine.Start(p.Activity)
	d.logger.Info("arrived", "step", st.TimeSteps, "activity", p.Activity.Name,
		"y", p.Y, "emotions", st.Emotions, "energy", st.Energy)
}

// EnterJumpPad ends the rhythm of the current platform and spawns the next
// offers. It reports whether the run is over instead.
func (d *Director) EnterJumpPad() bool {
	st := d.state
	d.tutor.Activate(tutorial.UI)
	d.engine.Stop()

	if st.Done {
		d.phase = PhaseEnded
		d.logger.Info("run ended", "steps", st.TimeSteps, "score", d.Score())
		return true
	}

	cur := st.CurrentActivityPlatform()
	raise := st.Emotions.RaiseAmount()
	cur.Raise(raise)

	scheduled := d.profile.ScheduleAt(st.TimeSteps + 1)
	picked := d.sel.SelectActivities(st, d.profile.Activities, scheduled, d.thought.Repeat(1))
	for _, a := range picked {
		st.Spawned = append(st.Spawned, &run.Platform{Activity: a, Y: a.PlatformHeight(st)})
	}
	d.thought = nil
	d.phase = PhaseJumpPad
	d.logger.Debug("jump pad", "raise", raise, "offers", len(picked))
	return false
}

// PreJump offers thoughts. It may be called again to reopen the menu.
func (d *Director) PreJump() []*run.Thought {
	if d.phase != PhaseJumpPad && d.phase != PhaseThoughts {
		return nil
	}
	d.offered = d.sel.SelectThoughts(d.state, d.profile.Thoughts)
	d.phase = PhaseThoughts
	d.tutor.Activate(tutorial.Thought)
	return d.offered
}

// SelectThought applies an offered thought. It stays active for the jump
// and shapes the offers of the next jump pad.
func (d *Director) SelectThought(t *run.Thought) error {
	if d.phase != PhaseThoughts {
		return ErrNotReady
	}
	if !slices.Contains(d.offered, t) {
		return ErrNotOffered
	}
	t.Effect(d.state)
	d.thought = t
	d.logger.Debug("thought", "name", t.Name, "energy", d.state.Energy)
	return nil
}

// PostThoughtSelect moves on to choosing the platform to jump to.
func (d *Director) PostThoughtSelect() {
	if d.phase == PhaseThoughts || d.phase == PhaseJumpPad {
		d.phase = PhaseJump
	}
}

// JumpPower is how many units up the player can jump right now.
func (d *Director) JumpPower() float64 {
	return d.power(d.state.Energy, d.thought)
}

// PowerWith is the jump power the player would have after taking t from
// the thought menu; nil means jumping without a thought. Only the energy
// cost and the jump modifier are taken into account.
func (d *Director) PowerWith(t *run.Thought) float64 {
	energy := d.state.Energy
	if t != nil {
		energy = max(0, energy-t.EnergyCost)
	}
	return d.power(energy, t)
}

func (d *Director) power(energy int, t *run.Thought) float64 {
	return t.JumpBonus(d.cfg.Jump.Base + float64(energy)*d.cfg.Jump.PerEnergy)
}

// Reachable reports whether p can be jumped to. Breakdowns can always be
// reached by dropping down.
func (d *Director) Reachable(p *run.Platform) bool {
	return d.ReachableWith(p, d.JumpPower())
}

// ReachableWith reports whether p can be reached with the given power.
func (d *Director) ReachableWith(p *run.Platform, power float64) bool {
	if p.Activity != nil && p.Activity.Breakdown {
		return true
	}
	return float64(p.Y-d.state.CurrentY()) <= power
}

// Jump lands on one of the offered platforms.
func (d *Director) Jump(p *run.Platform) error {
	if d.phase != PhaseJump {
		return ErrNotReady
	}
	if !slices.Contains(d.Platforms(), p) {
		return ErrNotOffered
	}
	if !d.Reachable(p) {
		return fmt.Errorf("%w: %s needs %d, power %.1f", ErrUnreachable,
			p.Activity.Name, p.Y-d.state.CurrentY(), d.JumpPower())
	}
	d.AdvanceTimeStep(p)
	return nil
}

// Update advances the rhythm by dt. When the song has played out the
// player walks onto the jump pad.
func (d *Director) Update(dt float64, in rhythm.Input) {
	if d.phase != PhaseRhythm {
		return
	}
	d.engine.Update(dt, in)
	if d.engine.Finished() {
		d.EnterJumpPad()
	}
}

// Platforms returns the offered platforms, excluding the current one.
func (d *Director) Platforms() []*run.Platform {
	cur := d.state.CurrentActivityPlatform()
	var out []*run.Platform
	for _, p := range d.state.Spawned {
		if p != cur {
			out = append(out, p)
		}
	}
	return out
}

// Offered returns the thoughts of the open menu.
func (d *Director) Offered() []*run.Thought { return d.offered }

// ActiveThought returns the thought selected for the coming jump, or nil.
func (d *Director) ActiveThought() *run.Thought { return d.thought }

// State exposes the run state for rendering.
func (d *Director) State() *run.State { return d.state }

// Engine exposes the rhythm engine for rendering and listeners.
func (d *Director) Engine() *rhythm.Engine { return d.engine }

// Tutorials exposes the tutorial manager.
func (d *Director) Tutorials() *tutorial.Manager { return d.tutor }

// Phase returns the current phase.
func (d *Director) Phase() Phase { return d.phase }

// Profile returns the content pool of the run.
func (d *Director) Profile() *run.Profile { return d.profile }
