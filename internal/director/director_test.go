package director

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/vovakirdan/compulsive-charlie/internal/config"
	"github.com/vovakirdan/compulsive-charlie/internal/content"
	"github.com/vovakirdan/compulsive-charlie/internal/rhythm"
	"github.com/vovakirdan/compulsive-charlie/internal/run"
)

func newDirector(t *testing.T, tutorials bool) *Director {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.ShowTutorial = tutorials
	d, err := New(cfg, content.MustProfile(), rand.New(rand.NewSource(5)), nil)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	d.Start()
	return d
}

func playOut(d *Director) {
	for i := 0; i < 5000 && d.Phase() == PhaseRhythm; i++ {
		d.Update(1.0/60, rhythm.Input{})
	}
}

func platformFor(d *Director, name string) *run.Platform {
	for _, p := range d.Platforms() {
		if p.Activity.Name == name {
			return p
		}
	}
	return nil
}

func TestStart(t *testing.T) {
	d := newDirector(t, false)
	st := d.State()

	if len(st.History) != 1 || st.CurrentActivity().Name != content.SleepIn {
		t.Fatalf("first platform should be %s", content.SleepIn)
	}
	if st.TimeSteps != 0 {
		t.Errorf("time steps = %d, expected 0", st.TimeSteps)
	}
	if d.Phase() != PhaseRhythm || !d.Engine().Running() {
		t.Errorf("phase = %v, expected rhythm", d.Phase())
	}
}

func TestRhythmEndsAtJumpPad(t *testing.T) {
	d := newDirector(t, false)
	playOut(d)

	if d.Phase() != PhaseJumpPad {
		t.Fatalf("phase = %v, expected jump pad", d.Phase())
	}
	if d.State().Misses != 2 {
		t.Errorf("misses = %d, expected the two onboarding notes", d.State().Misses)
	}

	breakdowns := 0
	for _, p := range d.Platforms() {
		if p.Activity.Breakdown {
			breakdowns++
		}
	}
	if breakdowns != 1 {
		t.Errorf("expected one breakdown platform, got %d", breakdowns)
	}
}

func TestJumpSequence(t *testing.T) {
	d := newDirector(t, false)
	d.EnterJumpPad()

	if err := d.Jump(d.Platforms()[0]); !errors.Is(err, ErrNotReady) {
		t.Errorf("jump before the thought menu: err = %v", err)
	}

	thoughts := d.PreJump()
	if len(thoughts) == 0 {
		t.Fatal("expected at least one thought")
	}
	if err := d.SelectThought(&run.Thought{Name: "Stranger"}); !errors.Is(err, ErrNotOffered) {
		t.Errorf("foreign thought: err = %v", err)
	}
	if err := d.SelectThought(thoughts[0]); err != nil {
		t.Fatalf("SelectThought() failed: %v", err)
	}
	d.PostThoughtSelect()

	target := platformFor(d, content.Meditation)
	if target == nil {
		t.Fatal("breakdown platform not offered")
	}
	if err := d.Jump(target); err != nil {
		t.Fatalf("Jump() to a breakdown failed: %v", err)
	}

	st := d.State()
	if st.TimeSteps != 1 || len(st.History) != 2 {
		t.Errorf("steps = %d, history = %d", st.TimeSteps, len(st.History))
	}
	if len(st.Spawned) != 1 || st.Spawned[0] != target {
		t.Error("other platforms should be cleared")
	}
	if st.Height != target.Y {
		t.Errorf("height = %d, expected %d", st.Height, target.Y)
	}
	if d.Phase() != PhaseRhythm {
		t.Errorf("phase = %v, expected rhythm", d.Phase())
	}
}

func TestSchedulePoints(t *testing.T) {
	d := newDirector(t, false)

	// Step 1
	d.EnterJumpPad()
	d.PostThoughtSelect()
	if err := d.Jump(platformFor(d, content.Meditation)); err != nil {
		t.Fatal(err)
	}

	// Step 2 is class
	d.EnterJumpPad()
	class := platformFor(d, content.Class)
	if class == nil {
		t.Fatal("scheduled class not offered")
	}
	d.PostThoughtSelect()
	if err := d.Jump(class); err != nil {
		t.Fatalf("Jump() to class failed: %v", err)
	}
	if d.State().SchedulePoints != 1 {
		t.Errorf("schedule points = %d, expected 1", d.State().SchedulePoints)
	}
	if d.Recap().Score < 100 {
		t.Errorf("score = %d should include schedule points", d.Recap().Score)
	}
}

func TestUnreachable(t *testing.T) {
	d := newDirector(t, false)
	d.EnterJumpPad()
	d.PostThoughtSelect()

	st := d.State()
	st.Energy = 0
	high := &run.Platform{Activity: &run.Activity{Name: "Roof", Unlocked: true}, Y: st.CurrentY() + 10}
	st.Spawned = append(st.Spawned, high)

	if d.Reachable(high) {
		t.Error("platform ten up should be out of reach without energy")
	}
	if err := d.Jump(high); !errors.Is(err, ErrUnreachable) {
		t.Errorf("err = %v, expected ErrUnreachable", err)
	}
	if err := d.Jump(&run.Platform{Activity: high.Activity}); !errors.Is(err, ErrNotOffered) {
		t.Errorf("err = %v, expected ErrNotOffered", err)
	}
}

func TestJumpPower(t *testing.T) {
	d := newDirector(t, false)
	d.State().Energy = 4

	if got := d.JumpPower(); got != 3 {
		t.Errorf("JumpPower() = %v, expected 3", got)
	}

	d.EnterJumpPad()
	d.offered = []*run.Thought{{Name: "Boost", JumpModifier: func(p float64) float64 { return p + 4 }}}
	d.phase = PhaseThoughts
	if err := d.SelectThought(d.offered[0]); err != nil {
		t.Fatal(err)
	}
	if got := d.JumpPower(); got != 7 {
		t.Errorf("JumpPower() with thought = %v, expected 7", got)
	}
}

func TestPowerWith(t *testing.T) {
	d := newDirector(t, false)
	d.State().Energy = 4
	d.EnterJumpPad()

	tests := []struct {
		name    string
		thought *run.Thought
		want    float64
	}{
		{"no thought", nil, 3},
		{"cost only", &run.Thought{Name: "Pricey", EnergyCost: 2}, 2},
		{"cost above energy", &run.Thought{Name: "Broke", EnergyCost: 9}, 1},
		{"boost", &run.Thought{Name: "Boost", EnergyCost: 2, JumpModifier: func(p float64) float64 { return p + 4 }}, 6},
		{"cap", &run.Thought{Name: "Cap", JumpModifier: func(p float64) float64 { return min(p, 0) }}, 0},
	}
	for _, tc := range tests {
		if got := d.PowerWith(tc.thought); got != tc.want {
			t.Errorf("%s: PowerWith() = %v, expected %v", tc.name, got, tc.want)
		}
	}
	if d.State().Energy != 4 {
		t.Error("PowerWith should not spend energy")
	}

	st := d.State()
	up := &run.Platform{Activity: &run.Activity{Name: "Up", Unlocked: true}, Y: st.CurrentY() + 1}
	down := &run.Platform{Activity: &run.Activity{Name: "Down", Breakdown: true}, Y: st.CurrentY() + 5}
	if d.ReachableWith(up, 0) || !d.ReachableWith(up, 1) {
		t.Error("a platform one up needs a power of one")
	}
	if !d.ReachableWith(down, 0) {
		t.Error("breakdowns are always reachable")
	}
}

func TestRaiseAtJumpPad(t *testing.T) {
	d := newDirector(t, false)
	st := d.State()
	st.Emotions.Anxiety = 35

	d.EnterJumpPad()
	if st.CurrentY() != 3 {
		t.Errorf("current platform y = %d, expected raise of 3", st.CurrentY())
	}
}

func TestDoneEndsRun(t *testing.T) {
	d := newDirector(t, false)
	d.State().Done = true

	if !d.EnterJumpPad() {
		t.Fatal("EnterJumpPad() should report the end")
	}
	if d.Phase() != PhaseEnded || d.Engine().Running() {
		t.Errorf("phase = %v after end", d.Phase())
	}
	if d.PreJump() != nil {
		t.Error("no thoughts after the end")
	}
}

func TestTutorialsAtJumpPad(t *testing.T) {
	d := newDirector(t, true)
	d.EnterJumpPad()
	if !d.Tutorials().Active() {
		t.Error("UI tutorial should open on the first jump pad")
	}
}

func TestCheats(t *testing.T) {
	d := newDirector(t, false)
	st := d.State()
	st.Emotions.Frustration = 20

	d.CheatCombo()
	d.CheatEquilibrate()
	if st.Combo != 1 || st.Emotions.Frustration != 10 {
		t.Errorf("combo = %d, frustration = %d", st.Combo, st.Emotions.Frustration)
	}

	d.EndRun()
	r := d.Recap()
	if !r.Done || d.Phase() != PhaseEnded {
		t.Error("EndRun should finish the run")
	}
	if len(r.Activities) != 1 || r.Activities[0] != content.SleepIn {
		t.Errorf("recap activities = %v", r.Activities)
	}
}
