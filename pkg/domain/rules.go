package domain

import (
	"context"
	"fmt"
)

// RuleView provides read-only access to domain entities for rule evaluation.
type RuleView interface {
	ListZoos() []Zoo
	ListEnclosures() []Enclosure
	ListAnimals() []Animal
	ListCategories() []Category
	FindZoo(id string) (Zoo, bool)
	FindEnclosure(id string) (Enclosure, bool)
	FindAnimal(id string) (Animal, bool)
	FindCategory(id string) (Category, bool)
}

// Rule inspects the pending state of a transaction and reports violations.
type Rule interface {
	Name() string
	Evaluate(ctx context.Context, view RuleView, changes []Change) (Result, error)
}

// RulesEngine holds the rules evaluated against every transaction.
type RulesEngine struct {
	rules []Rule
}

func NewRulesEngine() *RulesEngine {
	return &RulesEngine{}
}

func (e *RulesEngine) Register(rule Rule) {
	e.rules = append(e.rules, rule)
}

// Rules returns the registered rules in evaluation order.
func (e *RulesEngine) Rules() []Rule {
	return append([]Rule(nil), e.rules...)
}

// Evaluate runs the rules in registration order and merges their
// violations. The first rule error aborts evaluation.
func (e *RulesEngine) Evaluate(ctx context.Context, view RuleView, changes []Change) (Result, error) {
	var combined Result
	for _, rule := range e.rules {
		res, err := rule.Evaluate(ctx, view, changes)
		if err != nil {
			return Result{}, fmt.Errorf("rule %s: %w", rule.Name(), err)
		}
		combined.Merge(res)
	}
	return combined, nil
}
