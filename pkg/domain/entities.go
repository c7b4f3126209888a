// Package domain defines the persistent zoo entities, value types, and
// rule evaluation primitives used by zoocore.
package domain

import (
	"fmt"
	"time"
)

// EntityType identifies the type of record stored in the core domain.
type EntityType string

// Supported entity type identifiers used in Change records and persistence buckets.
const (
	// EntityZoo identifies a zoo record.
	EntityZoo EntityType = "zoo"
	// EntityEnclosure identifies an enclosure record.
	EntityEnclosure EntityType = "enclosure"
	// EntityAnimal identifies an individual animal record.
	EntityAnimal   EntityType = "animal"
	EntityCategory EntityType = "category"
)

// Severity captures rule outcomes.
type Severity string

// Rule evaluation severities determine commit behavior and logging.
const (
	// SeverityBlock blocks transaction commit.
	SeverityBlock Severity = "block"
	// SeverityWarn logs a warning but allows commit.
	SeverityWarn Severity = "warn"
	SeverityLog  Severity = "log"
)

// Base contains common fields for all domain records.
type Base struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Zoo groups enclosures under a single name.
type Zoo struct {
	Base
	Name string `json:"name"`
}

// Enclosure houses animals. Size is the space capacity in the same units as
// Animal.SpaceRequirement.
type Enclosure struct {
	Base
	Name          string        `json:"name"`
	Size          float64       `json:"size"`
	Climate       Climate       `json:"climate"`
	HabitatType   HabitatType   `json:"habitat_type"`
	SecurityLevel SecurityLevel `json:"security_level"`
	ZooID         *string       `json:"zoo_id"`
}

// Animal represents an individual animal tracked by the system.
type Animal struct {
	Base
	Name                string          `json:"name"`
	Species             string          `json:"species"`
	Size                AnimalSize      `json:"size"`
	DietaryClass        DietaryClass    `json:"dietary_class"`
	ActivityPattern     ActivityPattern `json:"activity_pattern"`
	SecurityRequirement SecurityLevel   `json:"security_requirement"`
	SpaceRequirement    float64         `json:"space_requirement"`
	// Prey names an animal (by name or species) or a food this animal eats.
	Prey        string  `json:"prey,omitempty"`
	CategoryID  *string `json:"category_id"`
	EnclosureID *string `json:"enclosure_id"`
}

// Category classifies animals.
type Category struct {
	Base
	Name string `json:"name"`
}

// Change describes a mutation applied to an entity during a transaction.
type Change struct {
	Entity EntityType
	Action Action
	Before any
	After  any
}

// Action indicates the type of modification performed.
type Action string

// Change actions enumerate supported CRUD operations captured in audit trail.
const (
	// ActionCreate indicates an entity was created.
	ActionCreate Action = "create"
	// ActionUpdate indicates an entity was updated.
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Violation reports a failed rule evaluation.
type Violation struct {
	Rule     string     `json:"rule"`
	Severity Severity   `json:"severity"`
	Message  string     `json:"message"`
	Entity   EntityType `json:"entity"`
	EntityID string     `json:"entity_id"`
}

// Result aggregates violations from the rules engine.
type Result struct {
	Violations []Violation `json:"violations,omitempty"`
}

// Merge appends violations from another result.
func (r *Result) Merge(other Result) {
	if len(other.Violations) == 0 {
		return
	}
	r.Violations = append(r.Violations, other.Violations...)
}

// HasBlocking returns true if the result contains blocking violations.
func (r Result) HasBlocking() bool {
	for _, v := range r.Violations {
		if v.Severity == SeverityBlock {
			return true
		}
	}
	return false
}

// RuleViolationError is returned when blocking violations are present.
type RuleViolationError struct {
	Result Result
}

func (e RuleViolationError) Error() string {
	for _, v := range e.Result.Violations {
		if v.Severity == SeverityBlock {
			return fmt.Sprintf("transaction blocked by rule %s: %s", v.Rule, v.Message)
		}
	}
	return "transaction blocked by rules"
}
