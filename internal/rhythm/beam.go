package rhythm

import (
	"math"

	"github.com/vovakirdan/compulsive-charlie/internal/config"
)

// beamEpsilon widens the inside test so notes on the edge count as inside.
const beamEpsilon = 0.01

// Beam is the window around the hit line in which notes stay live. Its
// width follows energy; while it stays wide the pattern tilts up.
type Beam struct {
	Width       float64
	AngleOffset float64 // degrees
}

func newBeam(cfg config.BeamConfig) Beam {
	return Beam{Width: cfg.MinWidth}
}

// update moves the beam one tick toward the width for energy.
func (b *Beam) update(cfg config.BeamConfig, energy int, dt float64) {
	target := float64(energy) * cfg.WidthFactor
	if target < cfg.EquilibriumWidth {
		delta := cfg.EquilibriumWidth - target
		b.AngleOffset = max(0, b.AngleOffset-delta*cfg.LevelDownRate*dt)
		target = max(target, cfg.MinWidth)
	}
	if target > cfg.EquilibriumWidth {
		delta := target - cfg.EquilibriumWidth
		b.AngleOffset = min(cfg.MaxAngleOffset, b.AngleOffset+delta*cfg.LevelUpRate*dt)
	}
	b.Width += (target - b.Width) * cfg.Lerp
}

// Inside reports whether a note at height y is within the beam.
func (b Beam) Inside(y float64) bool {
	return math.Abs(y) <= (b.Width+beamEpsilon)/2
}

// Touching reports whether a note of radius r at height y overlaps the
// beam edge or interior.
func (b Beam) Touching(y, r float64) bool {
	return math.Abs(y)-b.Width/2 <= r
}
