package core

import "zoocore/pkg/domain"

type (
	EntityType         = domain.EntityType
	Severity           = domain.Severity
	Base               = domain.Base
	Zoo                = domain.Zoo
	Enclosure          = domain.Enclosure
	Animal             = domain.Animal
	Category           = domain.Category
	SecurityLevel      = domain.SecurityLevel
	DietaryClass       = domain.DietaryClass
	ActivityPattern    = domain.ActivityPattern
	AnimalSize         = domain.AnimalSize
	Climate            = domain.Climate
	HabitatType        = domain.HabitatType
	Change             = domain.Change
	Action             = domain.Action
	Violation          = domain.Violation
	Result             = domain.Result
	RuleViolationError = domain.RuleViolationError
	RuleView           = domain.RuleView
	Rule               = domain.Rule
	RulesEngine        = domain.RulesEngine
	Transaction        = domain.Transaction
	TransactionView    = domain.TransactionView
	PersistentStore    = domain.PersistentStore
)

// ErrNotFound is returned when a requested record does not exist.
type ErrNotFound = domain.ErrNotFound

const (
	EntityZoo       = domain.EntityZoo
	EntityEnclosure = domain.EntityEnclosure
	EntityAnimal    = domain.EntityAnimal
	EntityCategory  = domain.EntityCategory
)

const (
	SeverityBlock = domain.SeverityBlock
	SeverityWarn  = domain.SeverityWarn
	SeverityLog   = domain.SeverityLog
)

const (
	ActionCreate = domain.ActionCreate
	ActionUpdate = domain.ActionUpdate
	ActionDelete = domain.ActionDelete
)

// NewRulesEngine constructs an empty engine.
func NewRulesEngine() *RulesEngine {
	return domain.NewRulesEngine()
}

const (
	SecurityLow    = domain.SecurityLow
	SecurityMedium = domain.SecurityMedium
	SecurityHigh   = domain.SecurityHigh
)

const (
	DietHerbivore   = domain.DietHerbivore
	DietCarnivore   = domain.DietCarnivore
	DietOmnivore    = domain.DietOmnivore
	DietInsectivore = domain.DietInsectivore
	DietPiscivore   = domain.DietPiscivore
)

const (
	ActivityDiurnal    = domain.ActivityDiurnal
	ActivityNocturnal  = domain.ActivityNocturnal
	ActivityCathemeral = domain.ActivityCathemeral
)

// Enum parsers accept the canonical names case-insensitively.
var (
	ParseSecurityLevel   = domain.ParseSecurityLevel
	ParseDietaryClass    = domain.ParseDietaryClass
	ParseActivityPattern = domain.ParseActivityPattern
	ParseAnimalSize      = domain.ParseAnimalSize
	ParseClimate         = domain.ParseClimate
	ParseHabitatType     = domain.ParseHabitatType
)
