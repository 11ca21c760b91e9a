package content

import (
	"errors"
	"fmt"
	"maps"

	"github.com/vovakirdan/compulsive-charlie/internal/config"
	"github.com/vovakirdan/compulsive-charlie/internal/run"
)

// FirstActivity is the platform every run starts on.
const FirstActivity = SleepIn

// Fallbacks used by the selector when nothing else qualifies.
const (
	FallbackDefault   = DoNothing
	FallbackBreakdown = Meditation
	FillerThought     = Nothing
)

// NewProfile builds the built-in content pool and applies the overrides of
// cfg. Any defect in the content (unknown names, bad songs) is returned so
// it surfaces at load time rather than mid-run.
func NewProfile(cfg config.ProfileConfig) (*run.Profile, error) {
	p := &run.Profile{
		InitialEnergy:   cfg.InitialEnergy,
		EnergyCap:       cfg.EnergyCap,
		BedTime:         cfg.BedTime,
		InitialEmotions: cfg.InitialEmotions,
		Activities:      activities(),
		Thoughts:        thoughts(),
		Schedule:        maps.Clone(cfg.Schedule),
	}
	if p.Schedule == nil {
		p.Schedule = make(map[int]string)
	}

	var errs []error
	for name, unlocked := range cfg.Unlocks {
		if a := p.ActivityByName(name); a != nil {
			a.Unlocked = unlocked
			continue
		}
		if t := p.ThoughtByName(name); t != nil {
			t.Unlocked = unlocked
			continue
		}
		errs = append(errs, fmt.Errorf("unlocks: unknown activity or thought %q", name))
	}
	for name, rating := range cfg.Ratings {
		a := p.ActivityByName(name)
		if a == nil {
			errs = append(errs, fmt.Errorf("ratings: unknown activity %q", name))
			continue
		}
		a.Rating = rating
	}
	for step, name := range p.Schedule {
		if p.ActivityByName(name) == nil {
			errs = append(errs, fmt.Errorf("schedule: step %d names unknown activity %q", step, name))
		}
	}
	for _, name := range []string{FirstActivity, FallbackDefault, FallbackBreakdown} {
		if p.ActivityByName(name) == nil {
			errs = append(errs, fmt.Errorf("missing required activity %q", name))
		}
	}
	if fb := p.ActivityByName(FallbackBreakdown); fb != nil && !fb.Breakdown {
		errs = append(errs, fmt.Errorf("fallback breakdown %q is not a breakdown", FallbackBreakdown))
	}
	if p.ThoughtByName(FillerThought) == nil {
		errs = append(errs, fmt.Errorf("missing filler thought %q", FillerThought))
	}
	for _, a := range p.Activities {
		if err := a.Song.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("activity %q song: %w", a.Name, err))
		}
		for _, name := range a.AssociatedThoughts {
			if p.ThoughtByName(name) == nil {
				errs = append(errs, fmt.Errorf("activity %q: unknown associated thought %q", a.Name, name))
			}
		}
	}

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("content: %w", err)
	}
	return p, nil
}

// MustProfile is NewProfile with the default profile config, panicking on
// error. For tests and tools.
func MustProfile() *run.Profile {
	p, err := NewProfile(config.DefaultProfileConfig())
	if err != nil {
		panic(err)
	}
	return p
}
