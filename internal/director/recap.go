package director

import (
	"github.com/vovakirdan/compulsive-charlie/internal/emotion"
)

// Recap summarizes a run for the end screen and the score table.
type Recap struct {
	Score          int
	Steps          int
	SchedulePoints int
	MaxCombo       int
	Hits           int
	Misses         int
	AutoHits       int
	Deflects       int
	Height         int
	Energy         int
	Emotions       emotion.State
	Activities     []string
	Done           bool
}

// Score rates the run: keeping to the schedule dominates, rhythm play
// breaks ties.
func (d *Director) Score() int {
	st := d.state
	return st.SchedulePoints*100 + st.Hits + st.MaxCombo
}

// Recap returns the summary of the run so far.
func (d *Director) Recap() Recap {
	st := d.state
	names := make([]string, 0, len(st.History))
	for _, p := range st.History {
		names = append(names, p.Activity.Name)
	}
	return Recap{
		Score:          d.Score(),
		Steps:          st.TimeSteps,
		SchedulePoints: st.SchedulePoints,
		MaxCombo:       st.MaxCombo,
		Hits:           st.Hits,
		Misses:         st.Misses,
		AutoHits:       st.AutoHits,
		Deflects:       st.Deflects,
		Height:         st.Height,
		Energy:         st.Energy,
		Emotions:       st.Emotions,
		Activities:     names,
		Done:           st.Done,
	}
}

// Debug shortcuts.

// CheatCombo bumps the combo.
func (d *Director) CheatCombo() {
	d.state.IncreaseCombo()
	d.logger.Warn("cheat", "combo", d.state.Combo)
}

// CheatEquilibrate calms every emotion.
func (d *Director) CheatEquilibrate() {
	d.state.Emotions.Equilibrate()
	d.logger.Warn("cheat", "emotions", d.state.Emotions)
}

// EndRun marks the run done and ends it at once.
func (d *Director) EndRun() {
	d.state.Done = true
	d.engine.Stop()
	d.phase = PhaseEnded
	d.logger.Info("run ended early", "steps", d.state.TimeSteps, "score", d.Score())
}
