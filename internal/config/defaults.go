package config

import (
	_ "embed"

	"github.com/vovakirdan/compulsive-charlie/internal/emotion"
)

//go:embed defaults/charlie.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Rhythm:       DefaultRhythmConfig(),
		Jump:         JumpConfig{Base: 1, PerEnergy: 0.5},
		Profile:      DefaultProfileConfig(),
		ShowTutorial: true,
	}
}

// DefaultRhythmConfig returns the standard timing windows.
func DefaultRhythmConfig() RhythmConfig {
	const (
		hitWindowLate  = 0.1
		tempoIncrement = 0.2
	)
	return RhythmConfig{
		HitWindowLate:  hitWindowLate,
		HitWindowEarly: 0.05,
		TravelDist:     16,
		TravelTime:     1.5,
		TempoIncrement: tempoIncrement,
		EarlyHitPeriod: tempoIncrement,
		LateHitPeriod:  hitWindowLate + tempoIncrement/2,
		GroupEpsilon:   0.01,
		NoteRadius:     0.5,
		Beam: BeamConfig{
			WidthFactor:      0.5,
			MinWidth:         1,
			EquilibriumWidth: 4,
			LevelUpRate:      0.5,
			LevelDownRate:    1,
			MaxAngleOffset:   20,
			Lerp:             0.01,
		},
		TagScale:            60,
		TagDraws:            []emotion.Type{emotion.Anxiety, emotion.Frustration, emotion.Despair},
		TutorialVisibleDist: 5,
	}
}

// DefaultProfileConfig returns the starting profile of a new player.
func DefaultProfileConfig() ProfileConfig {
	return ProfileConfig{
		InitialEnergy:   5,
		EnergyCap:       20,
		BedTime:         12,
		InitialEmotions: emotion.New(4, 2, 2),
		Schedule: map[int]string{
			2:  "Class",
			4:  "Balanced Meal",
			6:  "Class",
			9:  "Balanced Meal",
			12: "Go To Bed",
		},
	}
}

// DefaultYAML returns the embedded default YAML document.
func DefaultYAML() []byte {
	return defaultYAML
}
