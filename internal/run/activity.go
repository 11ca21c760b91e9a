package run

import (
	"github.com/vovakirdan/compulsive-charlie/internal/emotion"
	"github.com/vovakirdan/compulsive-charlie/internal/song"
)

// Platform height thresholds, relative to the current platform.
const (
	// DefaultPlatformHeightDiff: any normal activity at or below this is a
	// "default" (safe) option.
	DefaultPlatformHeightDiff = -2
	// BreakdownPlatformHeightDiff is the fixed height of breakdown activities
	// and the floor for everything else.
	BreakdownPlatformHeightDiff = -4
)

// Activity is a content record. The hooks replace per-activity subclasses;
// a nil hook falls back to the standard behavior.
type Activity struct {
	Name        string
	Description string
	Info        string

	Breakdown     bool
	Unlocked      bool
	Rating        int
	EmotionEffect emotion.State

	// AssociatedThoughts names thoughts that are more likely to be offered
	// right after this activity.
	AssociatedThoughts []string

	Song song.Song

	// CustomAvailability returns the weight of the activity when it is
	// unlocked and not too low. Nil means 1.
	CustomAvailability func(s *State) int
	// HeightOverride replaces the configured rating for normal activities.
	HeightOverride func(a *Activity, s *State) int
	// CustomEffect replaces the emotion effect applied on arrival.
	CustomEffect func(a *Activity, s *State)
}

// Is reports whether a and other are the same activity.
func (a *Activity) Is(other *Activity) bool {
	if a == nil || other == nil {
		return a == other
	}
	return a == other || a.Name == other.Name
}

// Availability returns the selection weight of the activity for the run.
func (a *Activity) Availability(s *State) int {
	if !a.Unlocked {
		return 0
	}
	// Normal activities at or below breakdown height would look like
	// breakdowns
	if a.heightDiff(s) <= BreakdownPlatformHeightDiff && !a.Breakdown {
		return 0
	}
	if a.CustomAvailability == nil {
		return 1
	}
	return max(0, a.CustomAvailability(s))
}

// HeightRating is the raw height change of the activity's platform relative
// to the previous one. Breakdown activities always use the breakdown diff.
func (a *Activity) HeightRating(s *State) int {
	if a.Breakdown {
		return BreakdownPlatformHeightDiff
	}
	if a.HeightOverride != nil {
		return a.HeightOverride(a, s)
	}
	return a.Rating
}

// WithRating returns a copy of a pinned to rating r. The copy keeps the
// name, so it still counts as the same activity.
func (a *Activity) WithRating(r int) *Activity {
	c := *a
	c.HeightOverride = nil
	c.Rating = r
	return &c
}

// PlatformHeight is the absolute height of the platform if spawned now.
func (a *Activity) PlatformHeight(s *State) int {
	return s.Height + a.HeightRating(s)
}

// IsDefault reports whether the activity is a safe option: a normal
// activity whose platform sits at or below the default diff from the
// current platform.
func (a *Activity) IsDefault(s *State) bool {
	return !a.Breakdown && a.heightDiff(s) <= DefaultPlatformHeightDiff
}

func (a *Activity) heightDiff(s *State) int {
	return a.PlatformHeight(s) - s.CurrentY()
}

// Effect applies the activity's arrival effect to the run.
func (a *Activity) Effect(s *State) {
	if a.CustomEffect != nil {
		a.CustomEffect(a, s)
		return
	}
	s.Emotions.AddState(a.EmotionEffect)
}
