package config

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value to a preset. Unknown or empty values
// map to normal.
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return DifficultyNormal
	}
}

// windowScale returns the multiplier applied to the hit windows.
func windowScale(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 1.6
	case DifficultyHard:
		return 0.7
	default:
		return 1.0
	}
}

// ApplyRhythmPreset modifies the rhythm config based on a difficulty preset.
// Fixed keeps the windows and freezes the beam level (no angle drift).
func ApplyRhythmPreset(cfg *RhythmConfig, preset DifficultyPreset) {
	scale := windowScale(preset)
	cfg.HitWindowLate *= scale
	cfg.HitWindowEarly *= scale
	cfg.LateHitPeriod = cfg.HitWindowLate + cfg.TempoIncrement/2
	if cfg.EarlyHitPeriod < cfg.HitWindowEarly {
		cfg.EarlyHitPeriod = cfg.HitWindowEarly
	}

	switch preset {
	case DifficultyEasy:
		cfg.Beam.LevelUpRate *= 0.5
		cfg.Beam.WidthFactor *= 1.25
	case DifficultyHard:
		cfg.Beam.LevelUpRate *= 1.5
		cfg.Beam.LevelDownRate *= 0.5
	case DifficultyFixed:
		cfg.Beam.LevelUpRate = 0
		cfg.Beam.LevelDownRate = 0
	}
}
