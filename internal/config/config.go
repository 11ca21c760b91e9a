// Package config provides YAML-based configuration loading and difficulty
// presets for the rhythm engine, jumping and the run profile.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/compulsive-charlie/internal/emotion"
)

// Config contains all tunables of a run.
type Config struct {
	Rhythm       RhythmConfig  `yaml:"rhythm"`
	Jump         JumpConfig    `yaml:"jump"`
	Profile      ProfileConfig `yaml:"profile"`
	ShowTutorial bool          `yaml:"show_tutorial"`
}

// RhythmConfig defines timing windows and beam behavior (seconds, world units).
type RhythmConfig struct {
	HitWindowLate  float64 `yaml:"hit_window_late"`  // How late a press still hits
	HitWindowEarly float64 `yaml:"hit_window_early"` // How early a press already hits
	TravelDist     float64 `yaml:"travel_dist"`      // Spawn distance from the hit area
	TravelTime     float64 `yaml:"travel_time"`      // Time a note takes to reach the hit area
	TempoIncrement float64 `yaml:"tempo_increment"`  // Seconds per pattern tick
	EarlyHitPeriod float64 `yaml:"early_hit_period"` // Presses earlier than this are ignored
	LateHitPeriod  float64 `yaml:"late_hit_period"`  // Late presses after a miss are ignored for this long
	GroupEpsilon   float64 `yaml:"group_epsilon"`    // Notes closer than this arrive together
	NoteRadius     float64 `yaml:"note_radius"`

	Beam BeamConfig `yaml:"beam"`

	// TagScale is the range emotion magnitudes are sampled against when
	// tagging notes.
	TagScale int `yaml:"tag_scale"`
	// TagDraws lists the emotions drawn in order after the dominant draw.
	TagDraws []emotion.Type `yaml:"tag_draws"`

	// TutorialVisibleDist is how close to the hit area a note must be before
	// the rhythm tutorial fires.
	TutorialVisibleDist float64 `yaml:"tutorial_visible_dist"`
}

// BeamConfig defines how the beam width follows energy and levels the
// pattern angle up or down.
type BeamConfig struct {
	WidthFactor      float64 `yaml:"width_factor"` // Width per point of energy
	MinWidth         float64 `yaml:"min_width"`
	EquilibriumWidth float64 `yaml:"equilibrium_width"`
	LevelUpRate      float64 `yaml:"level_up_rate"`
	LevelDownRate    float64 `yaml:"level_down_rate"`
	MaxAngleOffset   float64 `yaml:"max_angle_offset"` // Degrees
	Lerp             float64 `yaml:"lerp"`             // Per-tick smoothing toward the target width
}

// JumpConfig defines jump power.
type JumpConfig struct {
	Base      float64 `yaml:"base"`
	PerEnergy float64 `yaml:"per_energy"`
}

// ProfileConfig defines the starting conditions and schedule of a run.
type ProfileConfig struct {
	InitialEnergy   int            `yaml:"initial_energy"`
	EnergyCap       int            `yaml:"energy_cap"`
	BedTime         int            `yaml:"bed_time"`
	InitialEmotions emotion.State  `yaml:"initial_emotions"`
	Schedule        map[int]string `yaml:"schedule"`

	// Unlocks overrides the unlock flag of activities and thoughts by name.
	Unlocks map[string]bool `yaml:"unlocks"`
	// Ratings overrides activity height ratings by name.
	Ratings map[string]int `yaml:"ratings"`
}

// Validate reports values that would break the rhythm engine or a run.
func (c Config) Validate() error {
	var errs []error
	r := c.Rhythm
	if r.TravelTime <= 0 {
		errs = append(errs, fmt.Errorf("rhythm.travel_time must be positive, got %v", r.TravelTime))
	}
	if r.TempoIncrement <= 0 {
		errs = append(errs, fmt.Errorf("rhythm.tempo_increment must be positive, got %v", r.TempoIncrement))
	}
	if r.HitWindowLate < 0 || r.HitWindowEarly < 0 {
		errs = append(errs, errors.New("rhythm hit windows must not be negative"))
	}
	if r.EarlyHitPeriod < r.HitWindowEarly {
		errs = append(errs, errors.New("rhythm.early_hit_period must cover hit_window_early"))
	}
	if r.TagScale <= 0 {
		errs = append(errs, fmt.Errorf("rhythm.tag_scale must be positive, got %d", r.TagScale))
	}
	for _, t := range r.TagDraws {
		if t == emotion.None || !t.Valid() {
			errs = append(errs, fmt.Errorf("rhythm.tag_draws: invalid emotion %v", t))
		}
	}
	if r.Beam.MinWidth <= 0 || r.Beam.EquilibriumWidth < r.Beam.MinWidth {
		errs = append(errs, errors.New("rhythm.beam: need 0 < min_width <= equilibrium_width"))
	}
	if r.Beam.Lerp <= 0 || r.Beam.Lerp > 1 {
		errs = append(errs, fmt.Errorf("rhythm.beam.lerp must be in (0, 1], got %v", r.Beam.Lerp))
	}
	if c.Profile.EnergyCap <= 0 {
		errs = append(errs, fmt.Errorf("profile.energy_cap must be positive, got %d", c.Profile.EnergyCap))
	}
	if c.Profile.InitialEnergy < 0 || c.Profile.InitialEnergy > c.Profile.EnergyCap {
		errs = append(errs, fmt.Errorf("profile.initial_energy %d outside [0, %d]", c.Profile.InitialEnergy, c.Profile.EnergyCap))
	}
	return errors.Join(errs...)
}
