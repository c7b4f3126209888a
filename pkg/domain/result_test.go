package domain

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestRuleViolationErrorNamesBlockingRule(t *testing.T) {
	var result Result
	result.Merge(Result{Violations: []Violation{{Rule: "enclosure_capacity", Severity: SeverityWarn, Message: "tight"}}})
	if result.HasBlocking() {
		t.Fatalf("warn must not block")
	}
	result.Merge(Result{})
	result.Merge(Result{Violations: []Violation{{Rule: "quarantine", Severity: SeverityBlock, Message: "closed"}}})
	if !result.HasBlocking() || len(result.Violations) != 2 {
		t.Fatalf("unexpected merge result: %+v", result)
	}
	err := RuleViolationError{Result: result}
	if got := err.Error(); got != "transaction blocked by rule quarantine: closed" {
		t.Fatalf("unexpected error text %q", got)
	}
	if got := (RuleViolationError{}).Error(); got != "transaction blocked by rules" {
		t.Fatalf("unexpected fallback text %q", got)
	}
}

func TestRulesEngineEvaluatesInOrder(t *testing.T) {
	engine := NewRulesEngine()
	engine.Register(staticRule{"first"})
	engine.Register(staticRule{"second"})
	res, err := engine.Evaluate(context.Background(), emptyView{}, nil)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(res.Violations) != 2 || res.Violations[0].Rule != "first" || res.Violations[1].Rule != "second" {
		t.Fatalf("unexpected violations: %+v", res.Violations)
	}
	rules := engine.Rules()
	rules[0] = nil
	if engine.Rules()[0] == nil {
		t.Fatalf("Rules must return a copy")
	}
}

func TestRulesEngineWrapsRuleError(t *testing.T) {
	engine := NewRulesEngine()
	engine.Register(staticRule{"ok"})
	engine.Register(errorRule{})
	_, err := engine.Evaluate(context.Background(), emptyView{}, nil)
	if !errors.Is(err, errBoom) || !strings.Contains(err.Error(), "rule broken") {
		t.Fatalf("expected wrapped rule error, got %v", err)
	}
}

func TestSecurityLevelCovers(t *testing.T) {
	cases := []struct {
		level, req SecurityLevel
		want       bool
	}{
		{SecurityHigh, SecurityLow, true},
		{SecurityMedium, SecurityMedium, true},
		{SecurityMedium, SecurityHigh, false},
		{SecurityLow, "", true},
		{"", SecurityLow, false},
	}
	for _, tc := range cases {
		if got := tc.level.Covers(tc.req); got != tc.want {
			t.Fatalf("%q covers %q: got %v", tc.level, tc.req, got)
		}
	}
}

func TestSecurityLevelOrLow(t *testing.T) {
	if got := SecurityLevel("").OrLow(); got != SecurityLow {
		t.Fatalf("unset level must default to Low, got %q", got)
	}
	if got := SecurityHigh.OrLow(); got != SecurityHigh {
		t.Fatalf("set level must be kept, got %q", got)
	}
}

func TestParseEnumsIgnoreCase(t *testing.T) {
	if v, err := ParseSecurityLevel(" high "); err != nil || v != SecurityHigh {
		t.Fatalf("security: %v %v", v, err)
	}
	if v, err := ParseHabitatType("grassland"); err != nil || v != HabitatGrassland {
		t.Fatalf("habitat: %v %v", v, err)
	}
	if _, err := ParseDietaryClass("fruitarian"); err == nil || !strings.Contains(err.Error(), "dietary class") {
		t.Fatalf("expected unknown dietary class error, got %v", err)
	}
}

var errBoom = errors.New("boom")

type staticRule struct{ name string }

func (r staticRule) Name() string { return r.name }

func (r staticRule) Evaluate(context.Context, RuleView, []Change) (Result, error) {
	return Result{Violations: []Violation{{Rule: r.name, Severity: SeverityWarn}}}, nil
}

type errorRule struct{}

func (errorRule) Name() string { return "broken" }

func (errorRule) Evaluate(context.Context, RuleView, []Change) (Result, error) {
	return Result{}, errBoom
}

type emptyView struct{}

func (emptyView) ListZoos() []Zoo                        { return nil }
func (emptyView) ListEnclosures() []Enclosure            { return nil }
func (emptyView) ListAnimals() []Animal                  { return nil }
func (emptyView) ListCategories() []Category             { return nil }
func (emptyView) FindZoo(string) (Zoo, bool)             { return Zoo{}, false }
func (emptyView) FindEnclosure(string) (Enclosure, bool) { return Enclosure{}, false }
func (emptyView) FindAnimal(string) (Animal, bool)       { return Animal{}, false }
func (emptyView) FindCategory(string) (Category, bool)   { return Category{}, false }
