package domain

import (
	"fmt"
	"strings"
)

// SecurityLevel is the ordered scale shared by Enclosure.SecurityLevel and
// Animal.SecurityRequirement.
type SecurityLevel string

const (
	SecurityLow    SecurityLevel = "Low"
	SecurityMedium SecurityLevel = "Medium"
	SecurityHigh   SecurityLevel = "High"
)

// SecurityLevels lists the scale from lowest to highest.
var SecurityLevels = []SecurityLevel{SecurityLow, SecurityMedium, SecurityHigh}

// Rank orders security levels: Low=1, Medium=2, High=3. Unknown values rank 0.
func (l SecurityLevel) Rank() int {
	switch l {
	case SecurityLow:
		return 1
	case SecurityMedium:
		return 2
	case SecurityHigh:
		return 3
	default:
		return 0
	}
}

// Covers reports whether an enclosure at level l satisfies requirement req.
func (l SecurityLevel) Covers(req SecurityLevel) bool {
	return l.Rank() >= req.Rank()
}

// OrLow returns l, or SecurityLow when no level is set. Low is the floor of
// the scale, so an unset level never ranks below it.
func (l SecurityLevel) OrLow() SecurityLevel {
	if l == "" {
		return SecurityLow
	}
	return l
}

// ParseSecurityLevel resolves a level name case-insensitively.
func ParseSecurityLevel(s string) (SecurityLevel, error) {
	return parseEnum("security level", s, SecurityLevels)
}

// DietaryClass categorises what an animal eats absent explicit prey data.
type DietaryClass string

const (
	DietHerbivore   DietaryClass = "Herbivore"
	DietCarnivore   DietaryClass = "Carnivore"
	DietOmnivore    DietaryClass = "Omnivore"
	DietInsectivore DietaryClass = "Insectivore"
	DietPiscivore   DietaryClass = "Piscivore"
)

var DietaryClasses = []DietaryClass{DietHerbivore, DietCarnivore, DietOmnivore, DietInsectivore, DietPiscivore}

func ParseDietaryClass(s string) (DietaryClass, error) {
	return parseEnum("dietary class", s, DietaryClasses)
}

// ActivityPattern describes when an animal is awake.
type ActivityPattern string

const (
	ActivityDiurnal   ActivityPattern = "Diurnal"
	ActivityNocturnal ActivityPattern = "Nocturnal"
	// ActivityCathemeral animals are active around the clock.
	ActivityCathemeral ActivityPattern = "Cathemeral"
)

var ActivityPatterns = []ActivityPattern{ActivityDiurnal, ActivityNocturnal, ActivityCathemeral}

func ParseActivityPattern(s string) (ActivityPattern, error) {
	return parseEnum("activity pattern", s, ActivityPatterns)
}

// AnimalSize is a coarse body-size class.
type AnimalSize string

const (
	SizeSmall  AnimalSize = "Small"
	SizeMedium AnimalSize = "Medium"
	SizeLarge  AnimalSize = "Large"
)

var AnimalSizes = []AnimalSize{SizeSmall, SizeMedium, SizeLarge}

func ParseAnimalSize(s string) (AnimalSize, error) {
	return parseEnum("animal size", s, AnimalSizes)
}

// Climate of an enclosure.
type Climate string

const (
	ClimateTropical  Climate = "Tropical"
	ClimateTemperate Climate = "Temperate"
	ClimateArctic    Climate = "Arctic"
	ClimateDesert    Climate = "Desert"
)

var Climates = []Climate{ClimateTropical, ClimateTemperate, ClimateArctic, ClimateDesert}

func ParseClimate(s string) (Climate, error) {
	return parseEnum("climate", s, Climates)
}

// HabitatType of an enclosure.
type HabitatType string

const (
	HabitatForest    HabitatType = "Forest"
	HabitatSavanna   HabitatType = "Savanna"
	HabitatJungle    HabitatType = "Jungle"
	HabitatDesert    HabitatType = "Desert"
	HabitatMountain  HabitatType = "Mountain"
	HabitatWater     HabitatType = "Water"
	HabitatGrassland HabitatType = "Grassland"
	HabitatAquatic   HabitatType = "Aquatic"
)

var HabitatTypes = []HabitatType{
	HabitatForest,
	HabitatSavanna,
	HabitatJungle,
	HabitatDesert,
	HabitatMountain,
	HabitatWater,
	HabitatGrassland,
	HabitatAquatic,
}

func ParseHabitatType(s string) (HabitatType, error) {
	return parseEnum("habitat type", s, HabitatTypes)
}

func parseEnum[T ~string](label, raw string, values []T) (T, error) {
	want := strings.TrimSpace(raw)
	for _, v := range values {
		if strings.EqualFold(string(v), want) {
			return v, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("unknown %s %q", label, raw)
}
