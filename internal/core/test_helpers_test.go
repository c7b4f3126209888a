package core

import (
	"context"
	"testing"
)

func strPtr(v string) *string { return &v }

// cityZoo seeds the reference data set and returns the ids by name.
type cityZoo struct {
	svc     *Service
	zoo     Zoo
	savanna Enclosure
	arctic  Enclosure
	mammals Category
	birds   Category
	leo     Animal
	zara    Animal
	pingu   Animal
}

func seedCityZoo(t *testing.T, opts ...Option) cityZoo {
	t.Helper()
	ctx := context.Background()
	svc := NewInMemoryService(NewDefaultRulesEngine(), opts...)
	var fx cityZoo
	fx.svc = svc
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	var err error
	fx.mammals, _, err = svc.CreateCategory(ctx, Category{Name: "Mammals"})
	must(err)
	fx.birds, _, err = svc.CreateCategory(ctx, Category{Name: "Birds"})
	must(err)
	fx.zoo, _, err = svc.CreateZoo(ctx, Zoo{Name: "City Zoo"})
	must(err)
	fx.savanna, _, err = svc.CreateEnclosure(ctx, Enclosure{
		Name: "Savanna Enclosure", Size: 5000, Climate: "Tropical", HabitatType: "Grassland",
		SecurityLevel: SecurityMedium, ZooID: &fx.zoo.ID,
	})
	must(err)
	fx.arctic, _, err = svc.CreateEnclosure(ctx, Enclosure{
		Name: "Arctic Enclosure", Size: 3000, Climate: "Arctic", HabitatType: "Desert",
		SecurityLevel: SecurityHigh, ZooID: &fx.zoo.ID,
	})
	must(err)
	fx.leo, _, err = svc.CreateAnimal(ctx, Animal{
		Name: "Leo", Species: "Lion", Size: "Large", DietaryClass: DietCarnivore,
		ActivityPattern: ActivityDiurnal, SecurityRequirement: SecurityHigh, SpaceRequirement: 500,
		Prey: "Zebra", CategoryID: &fx.mammals.ID, EnclosureID: &fx.savanna.ID,
	})
	must(err)
	fx.zara, _, err = svc.CreateAnimal(ctx, Animal{
		Name: "Zara", Species: "Zebra", Size: "Medium", DietaryClass: DietHerbivore,
		ActivityPattern: ActivityDiurnal, SecurityRequirement: SecurityLow, SpaceRequirement: 300,
		CategoryID: &fx.mammals.ID, EnclosureID: &fx.savanna.ID,
	})
	must(err)
	fx.pingu, _, err = svc.CreateAnimal(ctx, Animal{
		Name: "Pingu", Species: "Penguin", Size: "Small", DietaryClass: DietCarnivore,
		ActivityPattern: ActivityDiurnal, SecurityRequirement: SecurityLow, SpaceRequirement: 50,
		Prey: "Fish", CategoryID: &fx.birds.ID, EnclosureID: &fx.arctic.ID,
	})
	must(err)
	return fx
}

func checks(r ConstraintReport) []string {
	out := make([]string, 0, len(r.Findings))
	for _, f := range r.Findings {
		out = append(out, f.Check)
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
