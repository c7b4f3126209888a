package core

import (
	"errors"
	"fmt"
	"strings"
)

// Transition is a daily light change animals react to.
type Transition string

const (
	Sunrise Transition = "sunrise"
	Sunset  Transition = "sunset"
)

// ErrInvalidTransition is returned for transitions other than sunrise and sunset.
var ErrInvalidTransition = errors.New("invalid transition")

// ParseTransition accepts "sunrise" or "sunset" in any case.
func ParseTransition(s string) (Transition, error) {
	switch Transition(strings.ToLower(strings.TrimSpace(s))) {
	case Sunrise:
		return Sunrise, nil
	case Sunset:
		return Sunset, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTransition, s)
	}
}

// Activity is an animal's reaction to a transition.
type Activity string

const (
	WakesUp      Activity = "wakes up"
	GoesToSleep  Activity = "goes to sleep"
	AlwaysActive Activity = "always active"
)

// ActivityFor maps an activity pattern to its reaction. Cathemeral and
// unrecognised patterns are always active.
func ActivityFor(pattern ActivityPattern, transition Transition) Activity {
	switch pattern {
	case ActivityDiurnal:
		if transition == Sunrise {
			return WakesUp
		}
		return GoesToSleep
	case ActivityNocturnal:
		if transition == Sunrise {
			return GoesToSleep
		}
		return WakesUp
	default:
		return AlwaysActive
	}
}

// ActivityResult is the reaction of one animal to a transition.
type ActivityResult struct {
	AnimalID   string     `json:"animal_id"`
	AnimalName string     `json:"animal_name"`
	Transition Transition `json:"transition"`
	Activity   Activity   `json:"activity"`
}

// Message renders the result as a sentence.
func (r ActivityResult) Message() string {
	return fmt.Sprintf("At %s, %s %s.", r.Transition, r.AnimalName, r.Activity)
}

// ResolveActivity returns how animal reacts to transition.
func ResolveActivity(animal Animal, transition Transition) ActivityResult {
	return ActivityResult{
		AnimalID:   animal.ID,
		AnimalName: animal.Name,
		Transition: transition,
		Activity:   ActivityFor(animal.ActivityPattern, transition),
	}
}

// AnimalRef identifies an animal in grouped results.
type AnimalRef struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Species string `json:"species"`
}

func refOf(a Animal) AnimalRef {
	return AnimalRef{ID: a.ID, Name: a.Name, Species: a.Species}
}

// DayCycle partitions animals by their reaction to one transition. Every
// animal appears in exactly one group.
type DayCycle struct {
	Transition   Transition  `json:"transition"`
	WakingUp     []AnimalRef `json:"waking_up"`
	GoingToSleep []AnimalRef `json:"going_to_sleep"`
	AlwaysActive []AnimalRef `json:"always_active"`
}

// PartitionActivity groups animals by ActivityFor, preserving input order.
func PartitionActivity(animals []Animal, transition Transition) DayCycle {
	cycle := DayCycle{
		Transition:   transition,
		WakingUp:     []AnimalRef{},
		GoingToSleep: []AnimalRef{},
		AlwaysActive: []AnimalRef{},
	}
	for _, a := range animals {
		switch ActivityFor(a.ActivityPattern, transition) {
		case WakesUp:
			cycle.WakingUp = append(cycle.WakingUp, refOf(a))
		case GoesToSleep:
			cycle.GoingToSleep = append(cycle.GoingToSleep, refOf(a))
		default:
			cycle.AlwaysActive = append(cycle.AlwaysActive, refOf(a))
		}
	}
	return cycle
}

// ZooAnimals flattens a zoo's residents in enclosure order.
func ZooAnimals(g ZooGraph) []Animal {
	var out []Animal
	for _, e := range g.Enclosures {
		out = append(out, e.Animals...)
	}
	return out
}
