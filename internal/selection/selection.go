// Package selection decides which activities and thoughts are offered at
// each decision point of a run.
package selection

import (
	"math/rand"
	"slices"

	"github.com/vovakirdan/compulsive-charlie/internal/run"
)

// Defaults for a Selector.
const (
	// MinPlatformHeightDiff is the minimum rating gap between two offered
	// platforms.
	MinPlatformHeightDiff = 3
	// MaxThoughts is how many distinct thoughts are offered at most.
	MaxThoughts = 3
)

// Selector picks offers from a content pool. It never fails: when the pool
// cannot satisfy an invariant the designated fallbacks are used.
type Selector struct {
	MinSeparation int
	MaxThoughts   int

	FallbackDefault   *run.Activity
	FallbackBreakdown *run.Activity
	Filler            *run.Thought

	rng *rand.Rand
}

// New creates a selector drawing from rng.
func New(rng *rand.Rand, fallbackDefault, fallbackBreakdown *run.Activity, filler *run.Thought) *Selector {
	return &Selector{
		MinSeparation:     MinPlatformHeightDiff,
		MaxThoughts:       MaxThoughts,
		FallbackDefault:   fallbackDefault,
		FallbackBreakdown: fallbackBreakdown,
		Filler:            filler,
		rng:               rng,
	}
}

// SelectActivities returns the activities to spawn next. scheduled may be
// nil. repeat scales the weight of the activity the player is on (1 keeps
// it unchanged).
//
// The result holds the scheduled activity first when there is one, at
// least one default among itself and the other spawned platforms, and
// exactly one breakdown as its last element.
func (sel *Selector) SelectActivities(st *run.State, pool []*run.Activity, scheduled *run.Activity, repeat float64) []*run.Activity {
	current := st.CurrentActivity()

	// One entry per unit of availability
	var candidates []*run.Activity
	for _, a := range pool {
		w := a.Availability(st)
		if current != nil && a.Is(current) {
			w = sel.scale(w, repeat)
		}
		for range w {
			candidates = append(candidates, a)
		}
	}
	sel.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	if scheduled != nil {
		candidates = slices.Insert(candidates, 0, scheduled)
	}

	spawned := sel.otherSpawned(st)
	var offered []*run.Activity
	for _, a := range candidates {
		if a.Breakdown || sel.crowded(st, a, offered, spawned) {
			continue
		}
		offered = append(offered, a)
	}

	if !hasDefault(st, offered) && !hasDefault(st, spawned) {
		offered = sel.addDefault(st, offered, candidates, scheduled)
	}

	breakdown := sel.FallbackBreakdown
	if i := slices.IndexFunc(candidates, func(a *run.Activity) bool { return a.Breakdown }); i >= 0 {
		breakdown = candidates[i]
	}
	if breakdown != nil {
		offered = append(offered, breakdown)
	}
	return offered
}

// otherSpawned lists spawned activities except the platform stood on.
func (sel *Selector) otherSpawned(st *run.State) []*run.Activity {
	cur := st.CurrentActivityPlatform()
	var out []*run.Activity
	for _, p := range st.Spawned {
		if p == cur || p.Activity == nil {
			continue
		}
		out = append(out, p.Activity)
	}
	return out
}

func (sel *Selector) crowded(st *run.State, a *run.Activity, groups ...[]*run.Activity) bool {
	h := a.HeightRating(st)
	for _, g := range groups {
		for _, o := range g {
			if o.Is(a) || abs(o.HeightRating(st)-h) < sel.MinSeparation {
				return true
			}
		}
	}
	return false
}

// addDefault injects a default activity. The first default candidate that
// does not crowd the scheduled activity wins, then the fallback. A fallback
// that would crowd the scheduled activity is pinned below it. Accepted
// non-scheduled activities too close to the default are dropped.
func (sel *Selector) addDefault(st *run.State, offered, candidates []*run.Activity, scheduled *run.Activity) []*run.Activity {
	var def *run.Activity
	for _, a := range candidates {
		if a.Breakdown || !a.IsDefault(st) {
			continue
		}
		if scheduled != nil && a != scheduled && sel.crowded(st, a, []*run.Activity{scheduled}) {
			continue
		}
		def = a
		break
	}
	if def == nil {
		def = sel.FallbackDefault
	}
	if def == nil {
		return offered
	}
	if scheduled != nil && !def.Is(scheduled) && sel.crowded(st, def, []*run.Activity{scheduled}) {
		def = def.WithRating(min(def.HeightRating(st), scheduled.HeightRating(st)-sel.MinSeparation))
	}

	h := def.HeightRating(st)
	kept := offered[:0]
	for _, a := range offered {
		if a == scheduled || abs(a.HeightRating(st)-h) >= sel.MinSeparation {
			kept = append(kept, a)
		}
	}
	return append(kept, def)
}

func hasDefault(st *run.State, as []*run.Activity) bool {
	return slices.ContainsFunc(as, func(a *run.Activity) bool { return a.IsDefault(st) })
}

// scale multiplies a weight by factor. The fractional part becomes the
// chance of one extra entry.
func (sel *Selector) scale(w int, factor float64) int {
	if factor == 1 || w == 0 {
		return w
	}
	x := max(0, float64(w)*factor)
	n := int(x)
	if sel.rng.Float64() < x-float64(n) {
		n++
	}
	return n
}

// SelectThoughts returns up to MaxThoughts distinct thoughts. Thoughts
// associated with the current activity get their availability counted
// twice. When nothing is available the filler thought is offered alone.
func (sel *Selector) SelectThoughts(st *run.State, pool []*run.Thought) []*run.Thought {
	var candidates []*run.Thought
	for _, t := range pool {
		for range t.Availability(st) {
			candidates = append(candidates, t)
		}
	}
	if cur := st.CurrentActivity(); cur != nil {
		for _, name := range cur.AssociatedThoughts {
			i := slices.IndexFunc(pool, func(t *run.Thought) bool { return t.Name == name })
			if i < 0 {
				continue
			}
			for range pool[i].Availability(st) {
				candidates = append(candidates, pool[i])
			}
		}
	}

	if len(candidates) == 0 {
		if sel.Filler == nil {
			return nil
		}
		return []*run.Thought{sel.Filler}
	}

	var offered []*run.Thought
	for len(offered) < sel.MaxThoughts && len(candidates) > 0 {
		t := candidates[sel.rng.Intn(len(candidates))]
		offered = append(offered, t)
		candidates = slices.DeleteFunc(candidates, func(c *run.Thought) bool { return c == t })
	}
	return offered
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
