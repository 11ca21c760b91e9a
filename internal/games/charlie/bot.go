package charlie

import (
	"math/rand"

	"github.com/vovakirdan/compulsive-charlie/internal/content"
	"github.com/vovakirdan/compulsive-charlie/internal/core"
	"github.com/vovakirdan/compulsive-charlie/internal/rhythm"
	"github.com/vovakirdan/compulsive-charlie/internal/run"
)

// Bot plays the game through the same input frames a player produces.
// Accuracy is the chance of pressing the right key for a note group.
type Bot struct {
	Accuracy float64

	rng     *rand.Rand
	decided int // ID of the first note of the last group judged
	fumble  bool
}

// NewBot creates a bot with its own random source.
func NewBot(seed int64, accuracy float64) *Bot {
	return &Bot{Accuracy: accuracy, rng: rand.New(rand.NewSource(seed))}
}

// Next returns the input for the coming tick of g.
func (b *Bot) Next(g *Game) core.InputFrame {
	in := core.NewInputFrame()
	if g.dir == nil || g.Phase() == PhaseGameOver {
		return in
	}
	if g.dir.Tutorials().Active() {
		in.Set(core.ActionConfirm)
		return in
	}

	switch g.Phase() {
	case PhaseRhythm:
		b.play(g, &in)
	case PhaseThoughtMenu:
		b.steer(g.cursor, b.pickThought(g), &in)
	case PhasePlatformSelect:
		b.steer(g.cursor, b.pickPlatform(g), &in)
	}
	return in
}

func (b *Bot) play(g *Game, in *core.InputFrame) {
	notes := g.dir.Engine().Notes()
	if len(notes) == 0 {
		return
	}
	rc := g.settings.Rhythm
	next := g.dir.Engine().Time() + g.config.Dt()

	first := notes[0]
	if next < first.Arrival || next > first.Arrival+rc.HitWindowLate {
		return
	}
	if first.ID != b.decided {
		b.decided = first.ID
		b.fumble = b.rng.Float64() >= b.Accuracy
	}
	if b.fumble {
		return
	}

	for _, n := range notes {
		if n.Arrival-first.Arrival >= rc.GroupEpsilon {
			break
		}
		press(n, in)
	}
}

var noteKeys = []struct {
	action core.Action
	input  rhythm.Input
}{
	{core.ActionUp, rhythm.Input{Up: true}},
	{core.ActionDown, rhythm.Input{Down: true}},
	{core.ActionLeft, rhythm.Input{Left: true}},
	{core.ActionRight, rhythm.Input{Right: true}},
}

func press(n rhythm.NoteView, in *core.InputFrame) {
	for _, k := range noteKeys {
		if k.input.Matches(n.Type) {
			in.Set(k.action)
			return
		}
	}
}

// pickThought takes the first affordable thought that keeps every platform
// in reach that a plain jump would reach. Otherwise it just jumps.
func (b *Bot) pickThought(g *Game) int {
	offered := g.dir.Offered()
	energy := g.dir.State().Energy
	for i, t := range offered {
		if t.EnergyCost > energy || t.Name == content.FillerThought {
			continue
		}
		if b.keepsReach(g, g.dir.PowerWith(t)) {
			return i
		}
	}
	return len(offered)
}

func (b *Bot) keepsReach(g *Game, power float64) bool {
	plain := g.dir.PowerWith(nil)
	for _, p := range g.Platforms() {
		if g.dir.ReachableWith(p, plain) && !g.dir.ReachableWith(p, power) {
			return false
		}
	}
	return true
}

// pickPlatform prefers the scheduled activity, then going to bed once it is
// offered, then the highest reachable platform.
func (b *Bot) pickPlatform(g *Game) int {
	platforms := g.Platforms()
	st := g.dir.State()
	scheduled := g.dir.Profile().ScheduleAt(st.TimeSteps + 1)

	best := -1
	for i, p := range platforms {
		if !g.dir.Reachable(p) {
			continue
		}
		switch {
		case scheduled != nil && p.Activity.Is(scheduled):
			return i
		case p.Activity.Name == content.GoToBed:
			best = i
		case best < 0 || better(p, platforms[best]):
			best = i
		}
	}
	return max(best, 0)
}

func better(p, than *run.Platform) bool {
	if than.Activity.Name == content.GoToBed {
		return false
	}
	return p.Y > than.Y
}

// steer moves the cursor one entry per tick toward target and confirms
// once it is there.
func (b *Bot) steer(cursor, target int, in *core.InputFrame) {
	switch {
	case cursor < target:
		in.Set(core.ActionDown)
	case cursor > target:
		in.Set(core.ActionUp)
	default:
		in.Set(core.ActionConfirm)
	}
}
