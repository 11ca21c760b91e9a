package selection

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/vovakirdan/compulsive-charlie/internal/content"
	"github.com/vovakirdan/compulsive-charlie/internal/emotion"
	"github.com/vovakirdan/compulsive-charlie/internal/run"
)

func act(name string, rating int) *run.Activity {
	return &run.Activity{Name: name, Unlocked: true, Rating: rating}
}

func newSelector(seed int64, p *run.Profile) *Selector {
	return New(
		rand.New(rand.NewSource(seed)),
		p.ActivityByName(content.FallbackDefault),
		p.ActivityByName(content.FallbackBreakdown),
		p.ThoughtByName(content.FillerThought),
	)
}

func names(as []*run.Activity) []string {
	out := make([]string, len(as))
	for i, a := range as {
		out[i] = a.Name
	}
	return out
}

func TestSelectActivitiesInvariants(t *testing.T) {
	p := content.MustProfile()

	for seed := int64(1); seed <= 200; seed++ {
		rng := rand.New(rand.NewSource(seed))
		sel := newSelector(seed, p)

		st := p.NewState()
		st.Emotions = emotion.New(rng.Intn(40), rng.Intn(40), rng.Intn(40))
		st.TimeSteps = rng.Intn(14)
		cur := &run.Platform{Activity: p.Activities[rng.Intn(len(p.Activities))]}
		cur.Raise(st.Emotions.RaiseAmount())
		st.History = append(st.History, cur)
		st.Spawned = []*run.Platform{cur}

		scheduled := p.ScheduleAt(st.TimeSteps + 1)
		offered := sel.SelectActivities(st, p.Activities, scheduled, 1)

		if len(offered) == 0 {
			t.Fatalf("seed %d: empty offer", seed)
		}
		if scheduled != nil && offered[0] != scheduled {
			t.Errorf("seed %d: scheduled %s not first in %v", seed, scheduled.Name, names(offered))
		}

		breakdowns, defaults := 0, 0
		for _, a := range offered {
			if a.Breakdown {
				breakdowns++
			}
			if a.IsDefault(st) {
				defaults++
			}
		}
		if breakdowns != 1 || !offered[len(offered)-1].Breakdown {
			t.Errorf("seed %d: expected one trailing breakdown, got %v", seed, names(offered))
		}
		if defaults == 0 {
			t.Errorf("seed %d: no default in %v", seed, names(offered))
		}

		normal := offered[:len(offered)-1]
		for i := range normal {
			for j := i + 1; j < len(normal); j++ {
				d := normal[i].HeightRating(st) - normal[j].HeightRating(st)
				if abs(d) < MinPlatformHeightDiff {
					t.Errorf("seed %d: %s and %s crowd each other", seed, normal[i].Name, normal[j].Name)
				}
			}
		}
	}
}

func TestSelectActivitiesFallbackDefault(t *testing.T) {
	p := content.MustProfile()
	st := p.NewState()
	sel := newSelector(1, p)

	got := sel.SelectActivities(st, []*run.Activity{act("High", 2)}, nil, 1)
	want := []string{"High", content.DoNothing, content.Meditation}
	if !slices.Equal(names(got), want) {
		t.Errorf("SelectActivities() = %v, expected %v", names(got), want)
	}
}

func TestSelectActivitiesDefaultEvictsCrowded(t *testing.T) {
	p := content.MustProfile()
	st := p.NewState()
	sel := newSelector(1, p)

	// Level with the current platform: not a default, and within three of
	// the fallback default
	got := sel.SelectActivities(st, []*run.Activity{act("Level", 0)}, nil, 1)
	want := []string{content.DoNothing, content.Meditation}
	if !slices.Equal(names(got), want) {
		t.Errorf("SelectActivities() = %v, expected %v", names(got), want)
	}
}

func TestSelectActivitiesLowersFallbackBelowScheduled(t *testing.T) {
	p := content.MustProfile()
	class := p.ActivityByName(content.Class)

	for seed := int64(1); seed <= 20; seed++ {
		st := p.NewState()
		st.Emotions = emotion.New(10, 0, 0)
		st.TimeSteps = 1
		cur := &run.Platform{Activity: p.ActivityByName(content.Chores)}
		cur.Raise(st.Emotions.RaiseAmount())
		st.History = append(st.History, cur)
		st.Spawned = []*run.Platform{cur}

		got := newSelector(seed, p).SelectActivities(st, p.Activities, class, 1)
		want := []string{content.Class, content.DoNothing, content.Meditation}
		if !slices.Equal(names(got), want) {
			t.Fatalf("seed %d: SelectActivities() = %v, expected %v", seed, names(got), want)
		}

		def := got[1]
		if !def.IsDefault(st) {
			t.Errorf("seed %d: %s is no longer a default", seed, def.Name)
		}
		if d := class.HeightRating(st) - def.HeightRating(st); d < MinPlatformHeightDiff {
			t.Errorf("seed %d: %s sits %d below %s", seed, def.Name, d, class.Name)
		}
		if def.HeightRating(st) != -2 {
			t.Errorf("seed %d: rating = %d, expected -2", seed, def.HeightRating(st))
		}
	}

	// The shared profile entry is left alone
	st := p.NewState()
	st.Emotions = emotion.New(10, 0, 0)
	if r := p.ActivityByName(content.DoNothing).HeightRating(st); r != -1 {
		t.Errorf("profile %s rating = %d, expected -1", content.DoNothing, r)
	}
}

func TestSelectActivitiesKeepsScheduled(t *testing.T) {
	p := content.MustProfile()
	st := p.NewState()
	sel := newSelector(3, p)

	sched := act("Scheduled", 0)
	got := sel.SelectActivities(st, []*run.Activity{act("Level", 1)}, sched, 1)
	if got[0] != sched {
		t.Fatalf("scheduled activity not first: %v", names(got))
	}
	if slices.Contains(names(got), "Level") {
		t.Error("crowded activity should be rejected")
	}
}

func TestSelectActivitiesSeparation(t *testing.T) {
	p := content.MustProfile()
	pool := []*run.Activity{act("A", -2), act("B", -1), act("C", 0), act("D", 1), act("E", 3), act("F", 6)}

	for seed := int64(1); seed <= 50; seed++ {
		sel := newSelector(seed, p)
		st := p.NewState()
		got := sel.SelectActivities(st, pool, nil, 1)
		normal := got[:len(got)-1]
		for i := range normal {
			for j := i + 1; j < len(normal); j++ {
				if abs(normal[i].HeightRating(st)-normal[j].HeightRating(st)) < MinPlatformHeightDiff {
					t.Fatalf("seed %d: crowded offer %v", seed, names(got))
				}
			}
		}
	}
}

func TestSelectActivitiesRepeatFactor(t *testing.T) {
	p := content.MustProfile()
	walk := act("Walk", 3)
	pool := []*run.Activity{walk, act("Low", -2)}

	for seed := int64(1); seed <= 30; seed++ {
		st := p.NewState()
		st.History = append(st.History, &run.Platform{Activity: walk})
		sel := newSelector(seed, p)

		got := sel.SelectActivities(st, pool, nil, 0)
		if slices.Contains(got, walk) {
			t.Fatalf("seed %d: repeat factor 0 should suppress the current activity", seed)
		}
	}
}

func TestSelectActivitiesDeterministic(t *testing.T) {
	p := content.MustProfile()
	st := p.NewState()
	st.TimeSteps = 3

	a := newSelector(42, p).SelectActivities(st, p.Activities, p.ScheduleAt(4), 1)
	b := newSelector(42, p).SelectActivities(st, p.Activities, p.ScheduleAt(4), 1)
	if !slices.Equal(names(a), names(b)) {
		t.Errorf("same seed gave %v and %v", names(a), names(b))
	}
}

func TestSelectThoughtsFiller(t *testing.T) {
	p := content.MustProfile()
	st := p.NewState()
	st.Emotions = emotion.New(0, 0, 0)

	got := newSelector(1, p).SelectThoughts(st, p.Thoughts)
	if len(got) != 1 || got[0].Name != content.Nothing {
		t.Errorf("expected the filler thought, got %d thoughts", len(got))
	}
}

func TestSelectThoughtsDistinct(t *testing.T) {
	p := content.MustProfile()
	pool := []*run.Thought{
		{Name: "A", Unlocked: true, CustomAvailability: func(*run.State) int { return 5 }},
		{Name: "B", Unlocked: true, CustomAvailability: func(*run.State) int { return 1 }},
		{Name: "C", Unlocked: true, CustomAvailability: func(*run.State) int { return 2 }},
		{Name: "D", Unlocked: true, CustomAvailability: func(*run.State) int { return 1 }},
		{Name: "Locked", CustomAvailability: func(*run.State) int { return 9 }},
	}

	for seed := int64(1); seed <= 50; seed++ {
		st := p.NewState()
		got := newSelector(seed, p).SelectThoughts(st, pool)
		if len(got) != MaxThoughts {
			t.Fatalf("seed %d: expected %d thoughts, got %d", seed, MaxThoughts, len(got))
		}
		seen := map[string]bool{}
		for _, th := range got {
			if seen[th.Name] {
				t.Fatalf("seed %d: %s offered twice", seed, th.Name)
			}
			if th.Name == "Locked" {
				t.Fatalf("seed %d: locked thought offered", seed)
			}
			seen[th.Name] = true
		}
	}
}

func TestSelectThoughtsAssociated(t *testing.T) {
	p := content.MustProfile()
	pool := []*run.Thought{
		{Name: "Only", Unlocked: true, CustomAvailability: func(*run.State) int { return 1 }},
	}
	st := p.NewState()
	st.History = append(st.History, &run.Platform{Activity: &run.Activity{
		Name:               "Walk",
		AssociatedThoughts: []string{"Only", "Missing"},
	}})

	got := newSelector(1, p).SelectThoughts(st, pool)
	if len(got) != 1 || got[0].Name != "Only" {
		t.Errorf("expected only the associated thought once, got %d", len(got))
	}
}
