package charlie

import (
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/compulsive-charlie/internal/config"
	"github.com/vovakirdan/compulsive-charlie/internal/content"
	"github.com/vovakirdan/compulsive-charlie/internal/core"
	"github.com/vovakirdan/compulsive-charlie/internal/director"
	"github.com/vovakirdan/compulsive-charlie/internal/registry"
	"github.com/vovakirdan/compulsive-charlie/internal/run"
	"github.com/vovakirdan/compulsive-charlie/internal/tutorial"
)

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed}
}

func newGame(t *testing.T, tutorials bool) *Game {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.ShowTutorial = tutorials
	g, err := NewWithConfig(cfg, nil)
	if err != nil {
		t.Fatalf("NewWithConfig() failed: %v", err)
	}
	g.Reset(testRuntime(7))
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// untilPhase steps with no input until the game reaches p.
func untilPhase(t *testing.T, g *Game, p Phase) {
	t.Helper()
	for i := 0; i < 5000; i++ {
		if g.Phase() == p {
			return
		}
		g.Step(core.NewInputFrame())
	}
	t.Fatalf("phase %v not reached, stuck at %v", p, g.Phase())
}

func TestRegistered(t *testing.T) {
	if !registry.Exists(ID) {
		t.Fatalf("game %q not registered", ID)
	}
	g, err := registry.Create(ID)
	if err != nil {
		t.Fatal(err)
	}
	if g.Title() != "Compulsive Charlie" {
		t.Errorf("Title() = %q", g.Title())
	}
}

func TestReset(t *testing.T) {
	g := newGame(t, false)

	if g.Phase() != PhaseRhythm {
		t.Errorf("phase = %v, expected rhythm", g.Phase())
	}
	if st := g.State(); st.GameOver || st.Score != 0 {
		t.Errorf("fresh state = %+v", st)
	}
	r := g.Recap()
	if len(r.Activities) != 1 || r.Activities[0] != content.SleepIn {
		t.Errorf("activities = %v", r.Activities)
	}

	for i := 0; i < 100; i++ {
		g.Step(frame(core.ActionUp))
	}
	g.Reset(testRuntime(7))
	if g.Ticks() != 0 || g.Director().Engine().Time() != 0 {
		t.Error("Reset should start a new run")
	}
}

func TestInvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Profile.Schedule = map[int]string{3: "Skydiving"}

	if _, err := NewWithConfig(cfg, nil); err == nil {
		t.Error("unknown scheduled activity should be rejected")
	}
}

func TestDeterminism(t *testing.T) {
	play := func() (director.Recap, int) {
		g := newGame(t, true)
		bot := NewBot(99, 0.8)
		for i := 0; i < 6000 && !g.State().GameOver; i++ {
			g.Step(bot.Next(g))
		}
		return g.Recap(), g.Ticks()
	}

	r1, t1 := play()
	r2, t2 := play()
	if !reflect.DeepEqual(r1, r2) || t1 != t2 {
		t.Errorf("runs differ:\n%+v\n%+v", r1, r2)
	}
	if r1.Steps == 0 {
		t.Error("bot should have left the first platform")
	}
}

func TestBotPlays(t *testing.T) {
	g := newGame(t, true)
	bot := NewBot(1, 1)
	for i := 0; i < 20000 && !g.State().GameOver; i++ {
		g.Step(bot.Next(g))
	}

	r := g.Recap()
	if r.Hits == 0 {
		t.Error("a perfect bot should hit notes")
	}
	if r.Steps < 3 {
		t.Errorf("steps = %d, expected the bot to keep jumping", r.Steps)
	}
	if g.Director().Tutorials().Active() {
		t.Error("bot should click through tutorials")
	}
}

func TestBotKeepsSchedule(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		g := newGame(t, false)
		g.Reset(testRuntime(seed))
		bot := NewBot(seed, 1)
		for i := 0; i < 20000 && g.Recap().Steps < 2 && !g.State().GameOver; i++ {
			g.Step(bot.Next(g))
		}

		r := g.Recap()
		if len(r.Activities) < 3 || r.Activities[2] != content.Class {
			t.Errorf("seed %d: day went %v, expected %s at step 2", seed, r.Activities, content.Class)
		}
		if r.SchedulePoints < 1 {
			t.Errorf("seed %d: schedule points = %d", seed, r.SchedulePoints)
		}
	}
}

func TestThoughtMenuAndJump(t *testing.T) {
	g := newGame(t, false)
	untilPhase(t, g, PhaseThoughtMenu)

	offered := g.Director().Offered()
	g.Step(frame(core.ActionDown))
	if g.Cursor() != 1 {
		t.Errorf("cursor = %d after down", g.Cursor())
	}
	g.Step(frame(core.ActionUp))
	g.Step(frame(core.ActionUp))
	if g.Cursor() != 0 {
		t.Errorf("cursor = %d, expected clamp at 0", g.Cursor())
	}

	for g.Cursor() < len(offered) {
		g.Step(frame(core.ActionDown))
	}
	g.Step(frame(core.ActionConfirm))
	if g.Phase() != PhasePlatformSelect {
		t.Fatalf("phase = %v, expected platform select", g.Phase())
	}
	if g.Director().ActiveThought() != nil {
		t.Error("Just jump should not select a thought")
	}

	target := -1
	for i, p := range g.Platforms() {
		if p.Activity.Name == content.Meditation {
			target = i
		}
	}
	if target < 0 {
		t.Fatal("breakdown platform not offered")
	}
	for g.Cursor() != target {
		if g.Cursor() < target {
			g.Step(frame(core.ActionDown))
		} else {
			g.Step(frame(core.ActionUp))
		}
	}
	g.Step(frame(core.ActionConfirm))

	if g.Phase() != PhaseRhythm {
		t.Errorf("phase = %v, expected rhythm after the jump", g.Phase())
	}
	if r := g.Recap(); r.Steps != 1 || r.Activities[1] != content.Meditation {
		t.Errorf("recap = %+v", r)
	}
}

func TestPlatformsSortedHighestFirst(t *testing.T) {
	g := newGame(t, false)
	untilPhase(t, g, PhaseThoughtMenu)

	ps := g.Platforms()
	for i := 1; i < len(ps); i++ {
		if ps[i].Y > ps[i-1].Y {
			t.Errorf("platform %d (y=%d) above platform %d (y=%d)", i, ps[i].Y, i-1, ps[i-1].Y)
		}
	}
}

func TestUnreachablePlatform(t *testing.T) {
	g := newGame(t, false)
	untilPhase(t, g, PhaseThoughtMenu)
	g.Director().PostThoughtSelect()

	st := g.Director().State()
	high := &run.Platform{
		Activity: &run.Activity{Name: "Roof", Unlocked: true},
		Y:        st.CurrentY() + 50,
	}
	st.Spawned = append(st.Spawned, high)
	g.cursor = 0

	g.Step(frame(core.ActionConfirm))
	if g.Phase() != PhasePlatformSelect {
		t.Errorf("phase = %v, the jump should have failed", g.Phase())
	}
	if g.msgTimer == 0 || !strings.Contains(g.message, "reach") {
		t.Errorf("message = %q", g.message)
	}
}

func TestTutorialTakesInputFirst(t *testing.T) {
	g := newGame(t, true)
	tut := g.Director().Tutorials()
	if !tut.Activate(tutorial.UI) {
		t.Fatal("UI tutorial should activate")
	}

	before := g.Director().Engine().Time()
	g.Step(frame(core.ActionUp))
	if g.Director().Engine().Time() != before {
		t.Error("rhythm should be frozen while a tutorial is open")
	}

	g.Step(frame(core.ActionConfirm))
	if _, _, idx, _ := tut.Page(); idx != 1 {
		t.Errorf("page = %d after confirm, expected 1", idx)
	}
	g.Step(frame(core.ActionBack))
	if _, _, idx, _ := tut.Page(); idx != 0 {
		t.Errorf("page = %d after back, expected 0", idx)
	}
	g.Step(frame(core.ActionSkip))
	if tut.Active() || tut.Enabled() {
		t.Error("skip should close tutorials for the run")
	}
}

func TestPause(t *testing.T) {
	g := newGame(t, false)
	g.Step(core.NewInputFrame())

	g.Step(frame(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("game should be paused")
	}
	before := g.Director().Engine().Time()
	for i := 0; i < 10; i++ {
		g.Step(core.NewInputFrame())
	}
	if g.Director().Engine().Time() != before {
		t.Error("time should not pass while paused")
	}

	g.Step(frame(core.ActionPause))
	if g.State().Paused {
		t.Error("second pause should resume")
	}
}

func TestCheats(t *testing.T) {
	g := newGame(t, false)
	g.Director().State().Emotions.Despair = 30

	g.Step(frame(core.ActionCheatCombo, core.ActionCheatCalm))
	st := g.Director().State()
	if st.Combo != 1 || st.Emotions.Despair != 15 {
		t.Errorf("combo = %d, despair = %d", st.Combo, st.Emotions.Despair)
	}

	g.Step(frame(core.ActionCheatEnd))
	if !g.State().GameOver || g.Phase() != PhaseGameOver {
		t.Error("end cheat should finish the run")
	}
	ticks := g.Ticks()
	g.Step(frame(core.ActionUp))
	if g.Ticks() != ticks {
		t.Error("no ticks after game over")
	}
}

func TestRender(t *testing.T) {
	g := newGame(t, false)
	for i := 0; i < 90; i++ {
		g.Step(core.NewInputFrame())
	}

	s := core.NewScreen(80, 24)
	g.Render(s)
	out := s.String()
	for _, want := range []string{"Step 0", "Energy", "Anxiety", content.SleepIn, "@"} {
		if !strings.Contains(out, want) {
			t.Errorf("rhythm view lacks %q", want)
		}
	}

	g.Step(frame(core.ActionCheatEnd))
	g.Render(s)
	if !strings.Contains(s.String(), "GOOD NIGHT") {
		t.Error("game over panel missing")
	}

	small := core.NewScreen(20, 5)
	g.Render(small)
	if !strings.Contains(small.String(), "too small") {
		t.Error("small screens should show a notice")
	}
}

func TestRenderMenus(t *testing.T) {
	g := newGame(t, false)
	untilPhase(t, g, PhaseThoughtMenu)

	s := core.NewScreen(80, 24)
	g.Render(s)
	if !strings.Contains(s.String(), "Just jump") {
		t.Error("thought menu missing")
	}

	g.Director().PostThoughtSelect()
	g.Render(s)
	if !strings.Contains(s.String(), "Jump power") || !strings.Contains(s.String(), content.Meditation) {
		t.Error("platform menu missing")
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  []string
	}{
		{"", 10, nil},
		{"one two three", 20, []string{"one two three"}},
		{"one two three", 7, []string{"one two", "three"}},
		{"unbreakable", 4, []string{"unbreakable"}},
		{"  spaced   out  ", 20, []string{"spaced out"}},
	}

	for _, tc := range tests {
		if got := wrap(tc.text, tc.width); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("wrap(%q, %d) = %q, expected %q", tc.text, tc.width, got, tc.want)
		}
	}
}
