package run

// Thought is a coping mechanism offered between activities. It costs energy
// and may change the state or modify the next jump.
type Thought struct {
	Name        string
	Description string
	Info        string
	Unlocked    bool
	EnergyCost  int

	CustomAvailability func(s *State) int
	CustomEffect       func(s *State)
	// JumpModifier changes jump power while the thought is active.
	JumpModifier func(power float64) float64
	// RepeatModifier changes how likely the last activity is offered again.
	RepeatModifier func(prob float64) float64
}

// Availability returns the selection weight of the thought.
func (t *Thought) Availability(s *State) int {
	if !t.Unlocked {
		return 0
	}
	if t.CustomAvailability == nil {
		return 0
	}
	return max(0, t.CustomAvailability(s))
}

// Effect drains the energy cost and applies the thought-specific effect.
func (t *Thought) Effect(s *State) {
	s.Energy = max(0, s.Energy-t.EnergyCost)
	if t.CustomEffect != nil {
		t.CustomEffect(s)
	}
}

// JumpBonus returns the modified jump power. Nil thoughts have no impact.
func (t *Thought) JumpBonus(power float64) float64 {
	if t == nil || t.JumpModifier == nil {
		return power
	}
	return t.JumpModifier(power)
}

// Repeat returns the modified repeat probability.
func (t *Thought) Repeat(prob float64) float64 {
	if t == nil || t.RepeatModifier == nil {
		return prob
	}
	return t.RepeatModifier(prob)
}
