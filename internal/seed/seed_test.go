package seed

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"zoocore/internal/core"
)

func TestDefaultFixtureLoadsCityZoo(t *testing.T) {
	ctx := context.Background()
	svc := core.NewInMemoryService(core.NewDefaultRulesEngine())
	fx, err := Default()
	if err != nil {
		t.Fatalf("default fixture: %v", err)
	}
	summary, err := Load(ctx, svc, fx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := Summary{Zoos: 1, Enclosures: 2, Animals: 3, Categories: 2}
	if summary != want {
		t.Fatalf("unexpected summary %+v", summary)
	}

	animals, _ := svc.ListAnimals(ctx, core.AnimalFilter{Search: "Leo"})
	if len(animals) != 1 || animals[0].SecurityRequirement != core.SecurityHigh || animals[0].EnclosureID == nil {
		t.Fatalf("unexpected lion %+v", animals)
	}
	savanna, err := svc.GetEnclosure(ctx, *animals[0].EnclosureID)
	if err != nil || savanna.Name != "Savanna Enclosure" || savanna.ZooID == nil {
		t.Fatalf("unexpected enclosure %+v %v", savanna, err)
	}
	report, err := svc.EnclosureConstraints(ctx, savanna.ID)
	if err != nil {
		t.Fatalf("constraints: %v", err)
	}
	if f, _ := report.Find(core.CheckEnclosureSecurity); f.Status != core.StatusNotSatisfied {
		t.Fatalf("seeded savanna must fail security, got %+v", f)
	}
}

func TestLoadSkipsWhenDataExists(t *testing.T) {
	ctx := context.Background()
	svc := core.NewInMemoryService(nil)
	if _, _, err := svc.CreateCategory(ctx, core.Category{Name: "Reptiles"}); err != nil {
		t.Fatalf("create category: %v", err)
	}
	fx, _ := Default()
	summary, err := Load(ctx, svc, fx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !summary.Skipped || summary.Animals != 0 {
		t.Fatalf("expected skip, got %+v", summary)
	}
	zoos, _ := svc.ListZoos(ctx, core.ZooFilter{})
	if len(zoos) != 0 {
		t.Fatalf("skipped load must not create zoos")
	}
}

func TestLoadIsAtomic(t *testing.T) {
	ctx := context.Background()
	svc := core.NewInMemoryService(nil)
	fx, err := Parse(strings.NewReader(`
zoos:
  - name: Half Zoo
    enclosures:
      - name: Pen
        size: 10
        animals:
          - name: Ghost
            category: Spirits
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := Load(ctx, svc, fx); !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("expected unknown category, got %v", err)
	}
	zoos, _ := svc.ListZoos(ctx, core.ZooFilter{})
	if len(zoos) != 0 {
		t.Fatalf("failed load must not leave a partial zoo: %+v", zoos)
	}
}

func TestParseRejectsBadInput(t *testing.T) {
	if _, err := Parse(strings.NewReader("zoos:\n  - nme: typo\n")); err == nil {
		t.Fatalf("expected unknown field error")
	}
	fx, err := Parse(strings.NewReader(""))
	if err != nil || len(fx.Zoos) != 0 {
		t.Fatalf("empty document should parse to an empty fixture: %+v %v", fx, err)
	}

	bad, _ := Parse(strings.NewReader("enclosures:\n  - name: Pen\n    climate: Lunar\n"))
	if _, err := Load(context.Background(), core.NewInMemoryService(nil), bad); err == nil || !strings.Contains(err.Error(), "unknown climate") {
		t.Fatalf("expected enum error, got %v", err)
	}
}

func TestLoadDefaultsUnsetSecurityToLow(t *testing.T) {
	ctx := context.Background()
	svc := core.NewInMemoryService(core.NewDefaultRulesEngine())
	fx, err := Parse(strings.NewReader("enclosures:\n  - name: Pond\n    size: 100\n    animals:\n      - name: Quack\n        species: Duck\n        space_requirement: 5\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := Load(ctx, svc, fx); err != nil {
		t.Fatalf("load: %v", err)
	}
	enclosures, _ := svc.ListEnclosures(ctx, core.EnclosureFilter{})
	animals, _ := svc.ListAnimals(ctx, core.AnimalFilter{})
	if len(enclosures) != 1 || enclosures[0].SecurityLevel != core.SecurityLow {
		t.Fatalf("expected Low enclosure, got %+v", enclosures)
	}
	if len(animals) != 1 || animals[0].SecurityRequirement != core.SecurityLow {
		t.Fatalf("expected Low requirement, got %+v", animals)
	}
	report, err := svc.EnclosureConstraints(ctx, enclosures[0].ID)
	if err != nil {
		t.Fatalf("constraints: %v", err)
	}
	if f, _ := report.Find(core.CheckEnclosureSecurity); f.Status != core.StatusSatisfied {
		t.Fatalf("Low enclosure with a Low resident must pass security, got %+v", f)
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zoo.yaml")
	if err := os.WriteFile(path, []byte("animals:\n  - name: Stray\n    species: Cat\n    activity_pattern: nocturnal\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	fx, err := ReadFile(path)
	if err != nil || len(fx.Animals) != 1 {
		t.Fatalf("read file: %+v %v", fx, err)
	}
	summary, err := Load(context.Background(), core.NewInMemoryService(nil), fx)
	if err != nil || summary.Animals != 1 {
		t.Fatalf("load: %+v %v", summary, err)
	}
	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected missing file error")
	}
	if fx, err := ReadFile(""); err != nil || len(fx.Zoos) != 1 {
		t.Fatalf("empty path should read the default fixture: %v", err)
	}
}
