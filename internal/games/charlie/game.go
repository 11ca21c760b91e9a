// Package charlie implements the Compulsive Charlie run as a registry game:
// rhythm on the current platform, a thought before each jump and a choice
// of the next platform until Charlie goes to bed.
package charlie

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/compulsive-charlie/internal/config"
	"github.com/vovakirdan/compulsive-charlie/internal/content"
	"github.com/vovakirdan/compulsive-charlie/internal/core"
	"github.com/vovakirdan/compulsive-charlie/internal/director"
	"github.com/vovakirdan/compulsive-charlie/internal/registry"
	"github.com/vovakirdan/compulsive-charlie/internal/rhythm"
	"github.com/vovakirdan/compulsive-charlie/internal/run"
)

// ID is the registry name of the game.
const ID = "charlie"

// flashTicks is how long hit feedback and messages stay on screen.
const flashTicks = 30

func init() {
	registry.Register(ID, func() registry.Game { return New() })
}

// Phase is the screen the player is on.
type Phase int

const (
	PhaseRhythm Phase = iota
	PhaseThoughtMenu
	PhasePlatformSelect
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseRhythm:
		return "rhythm"
	case PhaseThoughtMenu:
		return "thought-menu"
	case PhasePlatformSelect:
		return "platform-select"
	case PhaseGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// Game wraps a director and maps platform input onto it.
type Game struct {
	settings config.Config
	logger   *log.Logger
	config   core.RuntimeConfig

	dir    *director.Director
	err    error
	paused bool
	cursor int
	ticks  int

	flash      rhythm.Outcome
	flashTimer int
	message    string
	msgTimer   int
}

// New creates a game with the built-in configuration.
func New() *Game {
	return &Game{
		settings: config.DefaultConfig(),
		logger:   log.New(io.Discard),
	}
}

// NewWithConfig creates a game with loaded settings. The profile is checked
// up front so content errors surface before the first Reset.
func NewWithConfig(settings config.Config, logger *log.Logger) (*Game, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("charlie: %w", err)
	}
	if _, err := content.NewProfile(settings.Profile); err != nil {
		return nil, fmt.Errorf("charlie: %w", err)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Game{settings: settings, logger: logger}, nil
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Compulsive Charlie"
}

// Reset starts a new run seeded from cfg.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.config = cfg
	g.paused = false
	g.cursor = 0
	g.ticks = 0
	g.flashTimer = 0
	g.msgTimer = 0
	g.dir = nil

	profile, err := content.NewProfile(g.settings.Profile)
	if err != nil {
		g.err = err
		return
	}
	d, err := director.New(g.settings, profile, rand.New(rand.NewSource(cfg.Seed)), g.logger)
	if err != nil {
		g.err = err
		return
	}
	g.err = nil
	g.dir = d
	d.Engine().SetListener(rhythm.Listener{
		OnResolve: func(_ rhythm.NoteView, o rhythm.Outcome) {
			g.flash = o
			g.flashTimer = flashTicks
		},
	})
	d.Start()
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.dir == nil || g.Phase() == PhaseGameOver {
		return core.StepResult{State: g.State()}
	}

	g.countdown()
	g.handleCheats(in)

	tut := g.dir.Tutorials()
	if tut.Active() {
		switch {
		case in.Has(core.ActionSkip):
			tut.Skip()
		case in.Has(core.ActionBack):
			tut.Back()
		case in.Has(core.ActionConfirm):
			tut.Dismiss()
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}
	g.ticks++

	switch g.dir.Phase() {
	case director.PhaseRhythm:
		g.dir.Update(g.config.Dt(), rhythmInput(in))
	case director.PhaseJumpPad:
		// The thought menu waits until the jump pad tutorial is closed
		g.dir.PreJump()
		g.cursor = 0
	case director.PhaseThoughts:
		g.stepThoughtMenu(in)
	case director.PhaseJump:
		g.stepPlatformSelect(in)
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) countdown() {
	if g.flashTimer > 0 {
		g.flashTimer--
	}
	if g.msgTimer > 0 {
		g.msgTimer--
	}
}

func (g *Game) handleCheats(in core.InputFrame) {
	if in.Has(core.ActionCheatCombo) {
		g.dir.CheatCombo()
	}
	if in.Has(core.ActionCheatCalm) {
		g.dir.CheatEquilibrate()
	}
	if in.Has(core.ActionCheatEnd) {
		g.dir.EndRun()
	}
}

func rhythmInput(in core.InputFrame) rhythm.Input {
	return rhythm.Input{
		Up:    in.Has(core.ActionUp),
		Down:  in.Has(core.ActionDown),
		Left:  in.Has(core.ActionLeft),
		Right: in.Has(core.ActionRight),
	}
}

// stepThoughtMenu moves through the offered thoughts. The entry after the
// last thought jumps without one.
func (g *Game) stepThoughtMenu(in core.InputFrame) {
	offered := g.dir.Offered()
	g.cursor = moveCursor(g.cursor, len(offered)+1, in)
	if !in.Has(core.ActionConfirm) {
		return
	}
	if g.cursor < len(offered) {
		if err := g.dir.SelectThought(offered[g.cursor]); err != nil {
			g.logger.Error("select thought", "err", err)
			return
		}
	}
	g.dir.PostThoughtSelect()
	g.cursor = g.firstReachable()
}

func (g *Game) stepPlatformSelect(in core.InputFrame) {
	platforms := g.Platforms()
	if len(platforms) == 0 {
		return
	}
	g.cursor = moveCursor(g.cursor, len(platforms), in)
	if !in.Has(core.ActionConfirm) {
		return
	}
	err := g.dir.Jump(platforms[g.cursor])
	switch {
	case errors.Is(err, director.ErrUnreachable):
		g.say("Too high to reach")
	case err != nil:
		g.logger.Error("jump", "err", err)
	default:
		g.cursor = 0
	}
}

func moveCursor(cursor, n int, in core.InputFrame) int {
	if n == 0 {
		return 0
	}
	if in.Has(core.ActionUp) {
		cursor--
	}
	if in.Has(core.ActionDown) {
		cursor++
	}
	return core.Clamp(cursor, 0, n-1)
}

func (g *Game) firstReachable() int {
	for i, p := range g.Platforms() {
		if g.dir.Reachable(p) {
			return i
		}
	}
	return 0
}

func (g *Game) say(msg string) {
	g.message = msg
	g.msgTimer = flashTicks * 2
}

// Platforms returns the offered platforms, highest first.
func (g *Game) Platforms() []*run.Platform {
	if g.dir == nil {
		return nil
	}
	ps := g.dir.Platforms()
	sort.SliceStable(ps, func(i, j int) bool { return ps[i].Y > ps[j].Y })
	return ps
}

// Phase maps the director phase onto the screen shown.
func (g *Game) Phase() Phase {
	if g.dir == nil {
		return PhaseGameOver
	}
	switch g.dir.Phase() {
	case director.PhaseThoughts:
		return PhaseThoughtMenu
	case director.PhaseJump:
		return PhasePlatformSelect
	case director.PhaseEnded:
		return PhaseGameOver
	default:
		return PhaseRhythm
	}
}

// Cursor returns the highlighted menu entry.
func (g *Game) Cursor() int { return g.cursor }

// Director exposes the run for tools and tests.
func (g *Game) Director() *director.Director { return g.dir }

// Err returns the error that kept the last Reset from starting a run.
func (g *Game) Err() error { return g.err }

// Ticks returns the number of simulated ticks of this run.
func (g *Game) Ticks() int { return g.ticks }

// Recap summarizes the current run.
func (g *Game) Recap() director.Recap {
	if g.dir == nil {
		return director.Recap{}
	}
	return g.dir.Recap()
}

// State returns score and run status.
func (g *Game) State() core.GameState {
	if g.dir == nil {
		return core.GameState{GameOver: true}
	}
	return core.GameState{
		Score:    g.dir.Score(),
		GameOver: g.dir.Phase() == director.PhaseEnded,
		Paused:   g.paused,
	}
}
