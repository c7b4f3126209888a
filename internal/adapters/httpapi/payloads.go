package httpapi

import (
	"strings"

	"zoocore/internal/core"
)

type zooRequest struct {
	Name string `json:"name"`
}

func (req zooRequest) apply(z *core.Zoo) error {
	z.Name = strings.TrimSpace(req.Name)
	return nil
}

type categoryRequest struct {
	Name string `json:"name"`
}

func (req categoryRequest) apply(c *core.Category) error {
	c.Name = strings.TrimSpace(req.Name)
	return nil
}

type enclosureRequest struct {
	Name          string  `json:"name"`
	Size          float64 `json:"size"`
	Climate       string  `json:"climate"`
	HabitatType   string  `json:"habitat_type"`
	SecurityLevel string  `json:"security_level"`
	ZooID         *string `json:"zoo_id"`
}

func (req enclosureRequest) apply(e *core.Enclosure) error {
	if req.Size < 0 {
		return badRequest("size must not be negative")
	}
	climate, err := parseOptional(req.Climate, core.ParseClimate)
	if err != nil {
		return err
	}
	habitat, err := parseOptional(req.HabitatType, core.ParseHabitatType)
	if err != nil {
		return err
	}
	security, err := parseOptional(req.SecurityLevel, core.ParseSecurityLevel)
	if err != nil {
		return err
	}
	e.Name = strings.TrimSpace(req.Name)
	e.Size = req.Size
	e.Climate = climate
	e.HabitatType = habitat
	e.SecurityLevel = security.OrLow()
	e.ZooID = nonEmpty(req.ZooID)
	return nil
}

type animalRequest struct {
	Name                string  `json:"name"`
	Species             string  `json:"species"`
	Size                string  `json:"size"`
	DietaryClass        string  `json:"dietary_class"`
	ActivityPattern     string  `json:"activity_pattern"`
	SecurityRequirement string  `json:"security_requirement"`
	SpaceRequirement    float64 `json:"space_requirement"`
	Prey                string  `json:"prey"`
	CategoryID          *string `json:"category_id"`
	EnclosureID         *string `json:"enclosure_id"`
}

func (req animalRequest) apply(a *core.Animal) error {
	if req.SpaceRequirement < 0 {
		return badRequest("space_requirement must not be negative")
	}
	size, err := parseOptional(req.Size, core.ParseAnimalSize)
	if err != nil {
		return err
	}
	diet, err := parseOptional(req.DietaryClass, core.ParseDietaryClass)
	if err != nil {
		return err
	}
	activity, err := parseOptional(req.ActivityPattern, core.ParseActivityPattern)
	if err != nil {
		return err
	}
	security, err := parseOptional(req.SecurityRequirement, core.ParseSecurityLevel)
	if err != nil {
		return err
	}
	a.Name = strings.TrimSpace(req.Name)
	a.Species = strings.TrimSpace(req.Species)
	a.Size = size
	a.DietaryClass = diet
	a.ActivityPattern = activity
	a.SecurityRequirement = security.OrLow()
	a.SpaceRequirement = req.SpaceRequirement
	a.Prey = strings.TrimSpace(req.Prey)
	a.CategoryID = nonEmpty(req.CategoryID)
	a.EnclosureID = nonEmpty(req.EnclosureID)
	return nil
}

type assignRequest struct {
	EnclosureID string `json:"enclosure_id"`
}

func parseOptional[T ~string](raw string, parse func(string) (T, error)) (T, error) {
	var zero T
	if strings.TrimSpace(raw) == "" {
		return zero, nil
	}
	v, err := parse(raw)
	if err != nil {
		return zero, badRequestError{err: err}
	}
	return v, nil
}

func nonEmpty(id *string) *string {
	if id == nil || strings.TrimSpace(*id) == "" {
		return nil
	}
	v := strings.TrimSpace(*id)
	return &v
}
