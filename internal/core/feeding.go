package core

import (
	"fmt"
	"strings"
)

// FoodSource records which rule produced a feeding result.
type FoodSource string

const (
	// SourceLivePrey means another resident of the same enclosure matched the prey hint.
	SourceLivePrey FoodSource = "live_prey"
	// SourcePreyHint means the prey text is used as-is.
	SourcePreyHint FoodSource = "prey_hint"
	SourceDiet     FoodSource = "diet"
)

// FeedingResult describes what one animal eats.
type FeedingResult struct {
	AnimalID   string     `json:"animal_id"`
	AnimalName string     `json:"animal_name"`
	Species    string     `json:"species"`
	Food       string     `json:"food"`
	Source     FoodSource `json:"source"`
	PreyID     string     `json:"prey_id,omitempty"`
}

// Message renders the result as a sentence.
func (r FeedingResult) Message() string {
	return fmt.Sprintf("%s eats %s.", r.AnimalName, r.Food)
}

// EnclosureFeeding groups feeding results for one enclosure.
type EnclosureFeeding struct {
	EnclosureID   string          `json:"enclosure_id"`
	EnclosureName string          `json:"enclosure_name"`
	Animals       []FeedingResult `json:"animals"`
}

var dietFood = map[DietaryClass]string{
	DietHerbivore:   "plants",
	DietCarnivore:   "meat",
	DietOmnivore:    "plants and meat",
	DietInsectivore: "insects",
	DietPiscivore:   "fish",
}

// DietFood returns the generic food label for a dietary class.
func DietFood(class DietaryClass) string {
	if food, ok := dietFood[class]; ok {
		return food
	}
	return "unknown food"
}

func preyMatches(prey string, target Animal) bool {
	prey = strings.TrimSpace(prey)
	if prey == "" {
		return false
	}
	return prey == strings.TrimSpace(target.Name) || prey == strings.TrimSpace(target.Species)
}

// ResolveFeeding determines an animal's food. A live resident of the same
// enclosure matching the prey hint by name or species wins, then the prey
// text itself, then the dietary class default. residents is the animal's
// enclosure population and is ignored for unassigned animals.
func ResolveFeeding(animal Animal, residents []Animal) FeedingResult {
	result := FeedingResult{
		AnimalID:   animal.ID,
		AnimalName: animal.Name,
		Species:    animal.Species,
	}
	prey := strings.TrimSpace(animal.Prey)
	if prey != "" && animal.EnclosureID != nil {
		for _, other := range residents {
			if other.ID == animal.ID {
				continue
			}
			if preyMatches(prey, other) {
				result.Food = fmt.Sprintf("%s (%s)", other.Species, other.Name)
				result.Source = SourceLivePrey
				result.PreyID = other.ID
				return result
			}
		}
	}
	if prey != "" {
		result.Food = prey
		result.Source = SourcePreyHint
		return result
	}
	result.Food = DietFood(animal.DietaryClass)
	result.Source = SourceDiet
	return result
}

// FeedEnclosure resolves feeding for every resident against the enclosure's
// loaded population.
func FeedEnclosure(g EnclosureGraph) EnclosureFeeding {
	out := EnclosureFeeding{
		EnclosureID:   g.Enclosure.ID,
		EnclosureName: g.Enclosure.Name,
		Animals:       make([]FeedingResult, 0, len(g.Animals)),
	}
	for _, animal := range g.Animals {
		out.Animals = append(out.Animals, ResolveFeeding(animal, g.Animals))
	}
	return out
}

// FeedZoo resolves feeding for every enclosure of a zoo.
func FeedZoo(g ZooGraph) []EnclosureFeeding {
	out := make([]EnclosureFeeding, 0, len(g.Enclosures))
	for _, enclosure := range g.Enclosures {
		out = append(out, FeedEnclosure(enclosure))
	}
	return out
}
