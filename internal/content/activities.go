// Package content defines the built-in activities, thoughts and songs.
// Each record is plain data plus the few hooks that make it behave
// differently from the defaults in package run.
package content

import (
	"github.com/vovakirdan/compulsive-charlie/internal/emotion"
	"github.com/vovakirdan/compulsive-charlie/internal/run"
)

// Activity names.
const (
	SleepIn      = "Sleep In"
	Walk         = "Walk"
	Chores       = "Chores"
	BalancedMeal = "Balanced Meal"
	Binge        = "Binge"
	Class        = "Class"
	DoNothing    = "Do Nothing"
	Eating       = "Eating"
	VideoGames   = "Video Games"
	GoToBed      = "Go To Bed"
	Meditation   = "Meditation"
)

// bedAvailableAfter is the time step after which going to bed is offered.
const bedAvailableAfter = 9

// hungerGrace is how many steps without food pass before bingeing tempts.
const hungerGrace = 3

func onlyWhenScheduled(*run.State) int { return 0 }

func dominantIs(t emotion.Type) func(*run.State) int {
	return func(s *run.State) int {
		if s.Emotions.Dominant() == t {
			return 1
		}
		return 0
	}
}

// activities builds a fresh activity table. Cross-references (binge reads
// the balanced meal) are wired after construction.
func activities() []*run.Activity {
	sleepIn := &run.Activity{
		Name:               SleepIn,
		Description:        "five more minutes",
		Unlocked:           true,
		Song:               defaultSong(),
		CustomAvailability: onlyWhenScheduled,
	}

	walk := &run.Activity{
		Name:               Walk,
		Description:        "go on a walk",
		Unlocked:           true,
		AssociatedThoughts: []string{"Deal With It"},
		Song:               defaultSong(),
	}

	chores := &run.Activity{
		Name:          Chores,
		Description:   "less mess",
		Unlocked:      true,
		EmotionEffect: emotion.New(1, 3, 1),
		Song:          defaultSong(),
	}

	meal := &run.Activity{
		Name:               BalancedMeal,
		Description:        "fruits and veggies",
		Unlocked:           true,
		Rating:             3,
		EmotionEffect:      emotion.New(6, 6, 0),
		Song:               defaultSong(),
		CustomAvailability: onlyWhenScheduled,
	}

	binge := &run.Activity{
		Name:               Binge,
		Description:        "fill the hole with food",
		Unlocked:           true,
		Rating:             -1,
		EmotionEffect:      emotion.New(0, 0, 8),
		AssociatedThoughts: []string{"Whyyy Meee!"},
		Song:               bingeSong(),
	}
	binge.CustomAvailability = func(s *run.State) int {
		// Tempting whenever a meal is due
		if meal.Availability(s) > 0 {
			return 3
		}
		// or when one was skipped
		sinceEat := min(s.TimeSinceLast(binge), s.TimeSinceLast(meal))
		return max(0, sinceEat-hungerGrace)
	}

	class := &run.Activity{
		Name:               Class,
		Description:        "I'm in school?",
		Unlocked:           true,
		Rating:             1,
		EmotionEffect:      emotion.New(6, 6, 6),
		AssociatedThoughts: []string{"Uh Oh"},
		Song:               classSong(),
		CustomAvailability: onlyWhenScheduled,
	}

	doNothing := &run.Activity{
		Name:               DoNothing,
		Description:        "wait - actually nothing?",
		Unlocked:           true,
		Song:               nothingSong(),
		CustomAvailability: onlyWhenScheduled,
		// Always lands exactly on the default diff from the raised platform
		HeightOverride: func(_ *run.Activity, s *run.State) int {
			return s.Emotions.RaiseAmount() + run.DefaultPlatformHeightDiff
		},
	}

	eating := &run.Activity{
		Name:               Eating,
		Description:        "it comes naturally",
		Unlocked:           true,
		Song:               defaultSong(),
		CustomAvailability: dominantIs(emotion.Despair),
	}

	videoGames := &run.Activity{
		Name:               VideoGames,
		Description:        "...",
		Unlocked:           true,
		Rating:             -1,
		EmotionEffect:      emotion.New(0, 4, 0),
		AssociatedThoughts: []string{"Whatever"},
		Song:               defaultSong(),
		CustomAvailability: dominantIs(emotion.Frustration),
		CustomEffect: func(_ *run.Activity, s *run.State) {
			s.Emotions.Add(emotion.Despair, 1)
		},
	}

	goToBed := &run.Activity{
		Name:        GoToBed,
		Description: "it's all over",
		Unlocked:    true,
		Song:        bedSong(),
		CustomAvailability: func(s *run.State) int {
			if s.TimeSteps > bedAvailableAfter {
				return 1
			}
			return 0
		},
		// Easier to go to bed the later it is
		HeightOverride: func(a *run.Activity, s *run.State) int {
			lateness := max(0, s.TimeSteps-s.BedTime)
			return a.Rating - lateness
		},
		CustomEffect: func(_ *run.Activity, s *run.State) {
			s.Done = true
		},
	}

	meditation := &run.Activity{
		Name:               Meditation,
		Description:        "breathe",
		Unlocked:           true,
		Breakdown:          true,
		Song:               breathSong(),
		CustomAvailability: onlyWhenScheduled,
		CustomEffect: func(_ *run.Activity, s *run.State) {
			s.Emotions.Equilibrate()
		},
	}

	return []*run.Activity{
		sleepIn, walk, chores, meal, binge, class, doNothing,
		eating, videoGames, goToBed, meditation,
	}
}
