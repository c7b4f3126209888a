// Package seed loads zoo fixtures written in YAML. Relations are expressed
// by name: animals reference their category by name and are nested under
// their enclosure, which is nested under its zoo.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"zoocore/internal/core"
)

//go:embed city_zoo.yaml
var defaultFixture []byte

// Fixture is the YAML document shape.
type Fixture struct {
	Categories []CategorySpec `yaml:"categories"`
	Zoos       []ZooSpec      `yaml:"zoos"`
	// Enclosures without a zoo.
	Enclosures []EnclosureSpec `yaml:"enclosures"`
	// Animals without an enclosure.
	Animals []AnimalSpec `yaml:"animals"`
}

type CategorySpec struct {
	Name string `yaml:"name"`
}

type ZooSpec struct {
	Name       string          `yaml:"name"`
	Enclosures []EnclosureSpec `yaml:"enclosures"`
}

type EnclosureSpec struct {
	Name          string       `yaml:"name"`
	Size          float64      `yaml:"size"`
	Climate       string       `yaml:"climate"`
	HabitatType   string       `yaml:"habitat_type"`
	SecurityLevel string       `yaml:"security_level"`
	Animals       []AnimalSpec `yaml:"animals"`
}

type AnimalSpec struct {
	Name                string  `yaml:"name"`
	Species             string  `yaml:"species"`
	Size                string  `yaml:"size"`
	DietaryClass        string  `yaml:"dietary_class"`
	ActivityPattern     string  `yaml:"activity_pattern"`
	SecurityRequirement string  `yaml:"security_requirement"`
	SpaceRequirement    float64 `yaml:"space_requirement"`
	Prey                string  `yaml:"prey"`
	Category            string  `yaml:"category"`
}

// Summary reports what a load created.
type Summary struct {
	Skipped    bool `json:"skipped"`
	Zoos       int  `json:"zoos"`
	Enclosures int  `json:"enclosures"`
	Animals    int  `json:"animals"`
	Categories int  `json:"categories"`
}

// ErrUnknownCategory is returned when an animal names a category the
// fixture does not declare.
var ErrUnknownCategory = errors.New("seed: unknown category")

// Parse decodes a fixture. Unknown fields are rejected.
func Parse(r io.Reader) (Fixture, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var fx Fixture
	if err := dec.Decode(&fx); err != nil {
		if errors.Is(err, io.EOF) {
			return Fixture{}, nil
		}
		return Fixture{}, fmt.Errorf("decode fixture: %w", err)
	}
	return fx, nil
}

// Default returns the embedded City Zoo fixture.
func Default() (Fixture, error) {
	return Parse(bytes.NewReader(defaultFixture))
}

// ReadFile parses the fixture at path, or the default fixture when path is
// empty.
func ReadFile(path string) (Fixture, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("open fixture: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Parse(f)
}

// Load imports fx through svc in a single transaction. It does nothing when
// the store already holds any record.
func Load(ctx context.Context, svc *core.Service, fx Fixture) (Summary, error) {
	var summary Summary
	_, err := svc.Import(ctx, func(tx core.Transaction) error {
		summary = Summary{}
		view := tx.Snapshot()
		if len(view.ListZoos()) > 0 || len(view.ListEnclosures()) > 0 ||
			len(view.ListAnimals()) > 0 || len(view.ListCategories()) > 0 {
			summary.Skipped = true
			return nil
		}
		l := loader{tx: tx, categories: make(map[string]string), summary: &summary}
		return l.load(fx)
	})
	if err != nil {
		return Summary{}, err
	}
	return summary, nil
}

type loader struct {
	tx         core.Transaction
	categories map[string]string
	summary    *Summary
}

func (l *loader) load(fx Fixture) error {
	for _, spec := range fx.Categories {
		category, err := l.tx.CreateCategory(core.Category{Name: spec.Name})
		if err != nil {
			return fmt.Errorf("category %q: %w", spec.Name, err)
		}
		l.categories[spec.Name] = category.ID
		l.summary.Categories++
	}
	for _, spec := range fx.Zoos {
		zoo, err := l.tx.CreateZoo(core.Zoo{Name: spec.Name})
		if err != nil {
			return fmt.Errorf("zoo %q: %w", spec.Name, err)
		}
		l.summary.Zoos++
		for _, enclosure := range spec.Enclosures {
			if err := l.enclosure(enclosure, &zoo.ID); err != nil {
				return fmt.Errorf("zoo %q: %w", spec.Name, err)
			}
		}
	}
	for _, enclosure := range fx.Enclosures {
		if err := l.enclosure(enclosure, nil); err != nil {
			return err
		}
	}
	for _, animal := range fx.Animals {
		if err := l.animal(animal, nil); err != nil {
			return err
		}
	}
	return nil
}

func (l *loader) enclosure(spec EnclosureSpec, zooID *string) error {
	climate, err := optional(spec.Climate, core.ParseClimate)
	if err != nil {
		return fmt.Errorf("enclosure %q: %w", spec.Name, err)
	}
	habitat, err := optional(spec.HabitatType, core.ParseHabitatType)
	if err != nil {
		return fmt.Errorf("enclosure %q: %w", spec.Name, err)
	}
	security, err := optional(spec.SecurityLevel, core.ParseSecurityLevel)
	if err != nil {
		return fmt.Errorf("enclosure %q: %w", spec.Name, err)
	}
	enclosure, err := l.tx.CreateEnclosure(core.Enclosure{
		Name:          spec.Name,
		Size:          spec.Size,
		Climate:       climate,
		HabitatType:   habitat,
		SecurityLevel: security.OrLow(),
		ZooID:         zooID,
	})
	if err != nil {
		return fmt.Errorf("enclosure %q: %w", spec.Name, err)
	}
	l.summary.Enclosures++
	for _, animal := range spec.Animals {
		if err := l.animal(animal, &enclosure.ID); err != nil {
			return fmt.Errorf("enclosure %q: %w", spec.Name, err)
		}
	}
	return nil
}

func (l *loader) animal(spec AnimalSpec, enclosureID *string) error {
	animal := core.Animal{
		Name:             spec.Name,
		Species:          spec.Species,
		SpaceRequirement: spec.SpaceRequirement,
		Prey:             spec.Prey,
		EnclosureID:      enclosureID,
	}
	var err error
	if animal.Size, err = optional(spec.Size, core.ParseAnimalSize); err != nil {
		return fmt.Errorf("animal %q: %w", spec.Name, err)
	}
	if animal.DietaryClass, err = optional(spec.DietaryClass, core.ParseDietaryClass); err != nil {
		return fmt.Errorf("animal %q: %w", spec.Name, err)
	}
	if animal.ActivityPattern, err = optional(spec.ActivityPattern, core.ParseActivityPattern); err != nil {
		return fmt.Errorf("animal %q: %w", spec.Name, err)
	}
	if animal.SecurityRequirement, err = optional(spec.SecurityRequirement, core.ParseSecurityLevel); err != nil {
		return fmt.Errorf("animal %q: %w", spec.Name, err)
	}
	animal.SecurityRequirement = animal.SecurityRequirement.OrLow()
	if spec.Category != "" {
		id, ok := l.categories[spec.Category]
		if !ok {
			return fmt.Errorf("animal %q: %w %q", spec.Name, ErrUnknownCategory, spec.Category)
		}
		animal.CategoryID = &id
	}
	if _, err := l.tx.CreateAnimal(animal); err != nil {
		return fmt.Errorf("animal %q: %w", spec.Name, err)
	}
	l.summary.Animals++
	return nil
}

func optional[T ~string](raw string, parse func(string) (T, error)) (T, error) {
	if raw == "" {
		var zero T
		return zero, nil
	}
	return parse(raw)
}
