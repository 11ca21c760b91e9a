package content

import (
	"github.com/vovakirdan/compulsive-charlie/internal/emotion"
	"github.com/vovakirdan/compulsive-charlie/internal/run"
)

// Thought names.
const (
	DealWithIt           = "Deal With It"
	EverythingIsOnMySide = "Everything Is On My Side"
	ImScrewed            = "I'm Screwed"
	UhOh                 = "Uh Oh"
	WhyyyMeee            = "Whyyy Meee!"
	Whatever             = "Whatever"
	Nothing              = "Nothing"
)

// Magnitude bands used by the emotion-gated thoughts.
const (
	highEmotion = 20
	lowEmotion  = 10
)

func addJump(bonus float64) func(float64) float64 {
	return func(p float64) float64 { return p + bonus }
}

func capJump(limit float64) func(float64) float64 {
	return func(p float64) float64 { return min(p, limit) }
}

func relieve(t emotion.Type, n int) func(*run.State) {
	return func(s *run.State) { s.Emotions.Add(t, -n) }
}

// highThought is offered while t is at least highEmotion.
func highThought(t emotion.Type) func(*run.State) int {
	return func(s *run.State) int {
		if s.Emotions.Get(t) >= highEmotion {
			return 1
		}
		return 0
	}
}

// lowThought is offered while t dominates but is still below lowEmotion.
func lowThought(t emotion.Type) func(*run.State) int {
	return func(s *run.State) int {
		v := s.Emotions.Get(t)
		if s.Emotions.Dominant() == t && v > 0 && v < lowEmotion {
			return 1
		}
		return 0
	}
}

func inBand(t emotion.Type, lo, hi int) func(*run.State) int {
	return func(s *run.State) int {
		v := s.Emotions.Get(t)
		if v >= lo && v <= hi {
			return 1
		}
		return 0
	}
}

// thoughts builds a fresh thought table. The last entry is the filler.
func thoughts() []*run.Thought {
	return []*run.Thought{
		{
			Name:        DealWithIt,
			Description: "A wholesome approach to overcome frustration",
			Unlocked:    true,
			EnergyCost:  6,
			CustomAvailability: func(s *run.State) int {
				return s.Emotions.Extremeness(emotion.Frustration)
			},
			CustomEffect: relieve(emotion.Frustration, 5),
			JumpModifier: addJump(4),
		},
		{
			Name:        EverythingIsOnMySide,
			Description: "Empowering, but might lose touch with negative feelings",
			EnergyCost:  8,
			CustomAvailability: func(s *run.State) int {
				return s.Emotions.Extremeness(emotion.Frustration)
			},
			JumpModifier: addJump(8),
		},
		{
			Name:               ImScrewed,
			Description:        "It's falling apart",
			Unlocked:           true,
			CustomAvailability: lowThought(emotion.Anxiety),
			JumpModifier:       capJump(0),
		},
		{
			Name:               UhOh,
			Description:        "Yikes",
			Unlocked:           true,
			EnergyCost:         4,
			CustomAvailability: inBand(emotion.Anxiety, 10, 20),
			JumpModifier:       addJump(3),
		},
		{
			Name:               WhyyyMeee,
			Description:        "Preserve the light",
			Unlocked:           true,
			EnergyCost:         4,
			CustomAvailability: highThought(emotion.Despair),
			CustomEffect:       relieve(emotion.Despair, 10),
			JumpModifier:       capJump(1),
		},
		{
			Name:        Whatever,
			Description: "Not gonna let it get to me",
			Unlocked:    true,
			EnergyCost:  3,
			CustomAvailability: func(s *run.State) int {
				if s.Emotions.Dominant() != emotion.Frustration {
					return 0
				}
				return inBand(emotion.Frustration, 5, 15)(s)
			},
			CustomEffect: relieve(emotion.Frustration, 3),
			JumpModifier: addJump(1),
			// Shrug it off and move on
			RepeatModifier: func(p float64) float64 { return p / 2 },
		},
		{
			Name:        Nothing,
			Description: "clear mind",
			Unlocked:    true,
		},
	}
}
