package core

import (
	"fmt"
	"strings"
)

// FindingStatus marks a finding as passing, failing, or purely informational.
type FindingStatus string

const (
	StatusSatisfied    FindingStatus = "satisfied"
	StatusNotSatisfied FindingStatus = "not_satisfied"
	StatusInfo         FindingStatus = "info"
)

// Check identifiers. Reports list findings in a fixed order per subject.
const (
	CheckName              = "name"
	CheckSpecies           = "species"
	CheckSpaceRequirement  = "space_requirement"
	CheckCategory          = "category"
	CheckEnclosure         = "enclosure"
	CheckEnclosureRoom     = "enclosure_room"
	CheckEnclosureSecurity = "enclosure_security"
	CheckSize              = "size"
	CheckEnclosureSpace    = "enclosure_space"
	CheckResidentCount     = "resident_count"
	CheckEnclosureCount    = "enclosure_count"
	CheckAnimalCount       = "animal_count"
	CheckPredatorPrey      = "predator_prey"
)

// Finding is a single statement about whether a rule holds for an entity.
type Finding struct {
	Check    string        `json:"check"`
	Status   FindingStatus `json:"status"`
	Message  string        `json:"message"`
	Entity   EntityType    `json:"entity"`
	EntityID string        `json:"entity_id"`
}

// ConstraintReport is the ordered list of findings for one subject.
type ConstraintReport struct {
	Entity   EntityType `json:"entity"`
	EntityID string     `json:"entity_id"`
	Name     string     `json:"name"`
	Findings []Finding  `json:"findings"`
}

// Narrative renders the findings as display lines in evaluation order.
func (r ConstraintReport) Narrative() []string {
	out := make([]string, 0, len(r.Findings))
	for _, f := range r.Findings {
		out = append(out, f.Message)
	}
	return out
}

// Split separates passing and failing findings. Informational findings are
// omitted.
func (r ConstraintReport) Split() (satisfied, notSatisfied []string) {
	satisfied, notSatisfied = []string{}, []string{}
	for _, f := range r.Findings {
		switch f.Status {
		case StatusSatisfied:
			satisfied = append(satisfied, f.Message)
		case StatusNotSatisfied:
			notSatisfied = append(notSatisfied, f.Message)
		}
	}
	return satisfied, notSatisfied
}

// Satisfied reports whether no finding failed.
func (r ConstraintReport) Satisfied() bool {
	for _, f := range r.Findings {
		if f.Status == StatusNotSatisfied {
			return false
		}
	}
	return true
}

// Find returns the first finding for check.
func (r ConstraintReport) Find(check string) (Finding, bool) {
	for _, f := range r.Findings {
		if f.Check == check {
			return f, true
		}
	}
	return Finding{}, false
}

type findingBuilder struct {
	entity EntityType
	id     string
	out    []Finding
}

func (b *findingBuilder) verdict(check string, ok bool, pass, fail string) {
	status := StatusSatisfied
	msg := pass
	if !ok {
		status = StatusNotSatisfied
		msg = fail
	}
	b.out = append(b.out, Finding{Check: check, Status: status, Message: msg, Entity: b.entity, EntityID: b.id})
}

func (b *findingBuilder) info(check, msg string) {
	b.out = append(b.out, Finding{Check: check, Status: StatusInfo, Message: msg, Entity: b.entity, EntityID: b.id})
}

func (b *findingBuilder) add(f ...Finding) {
	b.out = append(b.out, f...)
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// EvaluateAnimal checks an animal's data completeness and its fit with the
// enclosure it is assigned to.
func EvaluateAnimal(g AnimalGraph) ConstraintReport {
	a := g.Animal
	b := findingBuilder{entity: EntityAnimal, id: a.ID}
	b.verdict(CheckName, !blank(a.Name), "Name is filled in.", "Name is missing.")
	b.verdict(CheckSpecies, !blank(a.Species), "Species is filled in.", "Species is missing.")
	b.verdict(CheckSpaceRequirement, a.SpaceRequirement > 0,
		"Space requirement is valid.", "Space requirement must be greater than zero.")
	switch {
	case a.CategoryID == nil:
		b.verdict(CheckCategory, false, "", "Category is missing.")
	case g.Category == nil:
		b.verdict(CheckCategory, false, "", "Category reference is missing.")
	default:
		b.verdict(CheckCategory, true, "Category is assigned.", "")
	}

	switch {
	case a.EnclosureID == nil:
		b.verdict(CheckEnclosure, false, "", "Enclosure is not assigned.")
	case g.Enclosure == nil:
		b.verdict(CheckEnclosure, false, "", "Enclosure reference is missing.")
	default:
		e := *g.Enclosure
		b.verdict(CheckEnclosure, true, fmt.Sprintf("Assigned to enclosure %s.", e.Name), "")
		b.verdict(CheckEnclosureRoom, a.SpaceRequirement <= e.Size,
			"Enough room in the enclosure.",
			fmt.Sprintf("Not enough room in the enclosure (%s needed, %s available).", formatSpace(a.SpaceRequirement), formatSpace(e.Size)))
		b.verdict(CheckEnclosureSecurity, e.SecurityLevel.Covers(a.SecurityRequirement),
			"Security level is sufficient.",
			fmt.Sprintf("Security level is insufficient (%s required, %s provided).", a.SecurityRequirement, e.SecurityLevel))
	}
	return ConstraintReport{Entity: EntityAnimal, EntityID: a.ID, Name: a.Name, Findings: b.out}
}

// EvaluateEnclosure checks an enclosure and the combined demands of its residents.
func EvaluateEnclosure(g EnclosureGraph) ConstraintReport {
	e := g.Enclosure
	b := findingBuilder{entity: EntityEnclosure, id: e.ID}
	b.verdict(CheckName, !blank(e.Name), "Name is filled in.", "Name is missing.")
	b.verdict(CheckSize, e.Size > 0, "Size is valid.", "Size must be greater than zero.")
	b.add(enclosureCapacityFindings(g)...)
	b.info(CheckResidentCount, fmt.Sprintf("There are %d animals.", len(g.Animals)))
	return ConstraintReport{Entity: EntityEnclosure, EntityID: e.ID, Name: e.Name, Findings: b.out}
}

// EvaluateZoo checks the zoo and applies the enclosure space and security
// checks to each of its enclosures in order.
func EvaluateZoo(g ZooGraph) ConstraintReport {
	z := g.Zoo
	b := findingBuilder{entity: EntityZoo, id: z.ID}
	b.verdict(CheckName, !blank(z.Name), "Name is filled in.", "Name is missing.")
	b.info(CheckEnclosureCount, fmt.Sprintf("Number of enclosures: %d", len(g.Enclosures)))
	b.info(CheckAnimalCount, fmt.Sprintf("Number of animals: %d", g.AnimalCount()))
	for _, enclosure := range g.Enclosures {
		b.add(enclosureCapacityFindings(enclosure)...)
	}
	return ConstraintReport{Entity: EntityZoo, EntityID: z.ID, Name: z.Name, Findings: b.out}
}

// enclosureCapacityFindings yields the space and security findings shared by
// the enclosure and zoo reports. Findings are attributed to the enclosure.
func enclosureCapacityFindings(g EnclosureGraph) []Finding {
	e := g.Enclosure
	b := findingBuilder{entity: EntityEnclosure, id: e.ID}
	used := TotalSpaceRequirement(g.Animals)
	b.verdict(CheckEnclosureSpace, used <= e.Size,
		fmt.Sprintf("Enclosure %s has enough space (%s of %s used).", e.Name, formatSpace(used), formatSpace(e.Size)),
		fmt.Sprintf("Enclosure %s does not have enough space (%s of %s used).", e.Name, formatSpace(used), formatSpace(e.Size)))
	required := HighestSecurityRequirement(g.Animals)
	b.verdict(CheckEnclosureSecurity, e.SecurityLevel.Covers(required),
		fmt.Sprintf("Enclosure %s security level is sufficient (%s required, %s provided).", e.Name, required, e.SecurityLevel),
		fmt.Sprintf("Enclosure %s security level is too low (%s required, %s provided).", e.Name, required, e.SecurityLevel))
	return b.out
}

// TotalSpaceRequirement sums the space consumed by animals.
func TotalSpaceRequirement(animals []Animal) float64 {
	var total float64
	for _, a := range animals {
		total += a.SpaceRequirement
	}
	return total
}

// HighestSecurityRequirement returns the strictest requirement among animals,
// floored at Low.
func HighestSecurityRequirement(animals []Animal) SecurityLevel {
	highest := SecurityLow
	for _, a := range animals {
		if a.SecurityRequirement.Rank() > highest.Rank() {
			highest = a.SecurityRequirement
		}
	}
	return highest
}

func formatSpace(v float64) string {
	return fmt.Sprintf("%g", v)
}

// AnimalConstraintsResult is the structured placement check for one animal.
type AnimalConstraintsResult struct {
	AnimalID     string   `json:"animal_id"`
	AnimalName   string   `json:"animal_name"`
	Satisfied    []string `json:"satisfied"`
	NotSatisfied []string `json:"not_satisfied"`
}

// AllSatisfied reports whether no check failed.
func (r AnimalConstraintsResult) AllSatisfied() bool {
	return len(r.NotSatisfied) == 0
}

// PlacementReport runs the placement checks for an animal: assignment,
// security, total enclosure space over all current residents, and
// predator/prey conflicts. Missing assignment or relation stops evaluation.
func PlacementReport(g AnimalGraph) ConstraintReport {
	a := g.Animal
	b := findingBuilder{entity: EntityAnimal, id: a.ID}
	report := func() ConstraintReport {
		return ConstraintReport{Entity: EntityAnimal, EntityID: a.ID, Name: a.Name, Findings: b.out}
	}
	if a.EnclosureID == nil {
		b.verdict(CheckEnclosure, false, "", "Animal is not assigned to an enclosure.")
		return report()
	}
	if g.Enclosure == nil {
		b.verdict(CheckEnclosure, false, "", "Enclosure reference is missing.")
		return report()
	}
	e := *g.Enclosure
	b.verdict(CheckEnclosureSecurity, e.SecurityLevel.Covers(a.SecurityRequirement),
		"Enclosure security level is sufficient.",
		"Enclosure security level is NOT sufficient for this animal.")
	b.verdict(CheckEnclosureSpace, TotalSpaceRequirement(g.Residents) <= e.Size,
		"Enclosure has enough total space for assigned animals.",
		"Enclosure does NOT have enough total space for assigned animals.")
	predator, found := FindPredator(a, g.Residents)
	b.verdict(CheckPredatorPrey, !found,
		"No predator/prey conflict detected in this enclosure.",
		fmt.Sprintf("Predator/prey conflict: %s might eat this animal.", predator.Name))
	return report()
}

// CheckAnimalConstraints returns the placement check split into satisfied and
// not-satisfied messages.
func CheckAnimalConstraints(g AnimalGraph) AnimalConstraintsResult {
	satisfied, notSatisfied := PlacementReport(g).Split()
	return AnimalConstraintsResult{
		AnimalID:     g.Animal.ID,
		AnimalName:   g.Animal.Name,
		Satisfied:    satisfied,
		NotSatisfied: notSatisfied,
	}
}

// FindPredator returns the first other resident whose prey names the animal
// by name or species.
func FindPredator(animal Animal, residents []Animal) (Animal, bool) {
	for _, other := range residents {
		if other.ID == animal.ID {
			continue
		}
		if preyMatches(other.Prey, animal) {
			return other, true
		}
	}
	return Animal{}, false
}
