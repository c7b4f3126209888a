package core

import (
	"context"
	"strings"
	"testing"
)

func TestDefaultRulesEngineRegistersPolicies(t *testing.T) {
	engine := NewDefaultRulesEngine()
	var names []string
	for _, rule := range engine.Rules() {
		names = append(names, rule.Name())
	}
	if !equalStrings(names, []string{"enclosure_capacity", "enclosure_security"}) {
		t.Fatalf("unexpected rules: %v", names)
	}
}

func TestEnclosureRulesWarnWithoutBlocking(t *testing.T) {
	svc := NewInMemoryService(NewDefaultRulesEngine())
	ctx := context.Background()
	pen, _, err := svc.CreateEnclosure(ctx, Enclosure{Name: "Pen", Size: 100, SecurityLevel: SecurityLow})
	if err != nil {
		t.Fatalf("create enclosure: %v", err)
	}
	animal, res, err := svc.CreateAnimal(ctx, Animal{
		Name: "Bruno", Species: "Bear", SpaceRequirement: 150,
		SecurityRequirement: SecurityHigh, EnclosureID: &pen.ID,
	})
	if err != nil {
		t.Fatalf("warnings must not block: %v", err)
	}
	if animal.ID == "" {
		t.Fatalf("expected animal committed")
	}
	if res.HasBlocking() || len(res.Violations) != 2 {
		t.Fatalf("expected two warnings, got %+v", res.Violations)
	}
	var sawCapacity, sawSecurity bool
	for _, v := range res.Violations {
		if v.Severity != SeverityWarn {
			t.Fatalf("expected warn severity, got %+v", v)
		}
		switch v.Rule {
		case "enclosure_capacity":
			sawCapacity = strings.Contains(v.Message, "150/100")
		case "enclosure_security":
			sawSecurity = v.EntityID == animal.ID
		}
	}
	if !sawCapacity || !sawSecurity {
		t.Fatalf("missing expected violations: %+v", res.Violations)
	}
}

func TestEnclosureRulesIgnoreUntouchedEnclosures(t *testing.T) {
	svc := NewInMemoryService(NewDefaultRulesEngine())
	ctx := context.Background()
	pen, _, _ := svc.CreateEnclosure(ctx, Enclosure{Name: "Pen", Size: 1, SecurityLevel: SecurityLow})
	if _, _, err := svc.CreateAnimal(ctx, Animal{Name: "Big", SpaceRequirement: 10, EnclosureID: &pen.ID}); err != nil {
		t.Fatalf("create animal: %v", err)
	}
	_, res, err := svc.CreateCategory(ctx, Category{Name: "Reptiles"})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	if len(res.Violations) != 0 {
		t.Fatalf("unrelated writes must not re-report enclosure warnings: %+v", res.Violations)
	}
}
