package core

import (
	"context"
	"testing"
)

func TestHerbivoreWithoutPreyEatsPlants(t *testing.T) {
	enclosure := strPtr("e")
	residents := []Animal{
		{Base: Base{ID: "lion"}, Name: "Leo", Species: "Lion", EnclosureID: enclosure},
		{Base: Base{ID: "zebra"}, Name: "Zara", Species: "Zebra", EnclosureID: enclosure},
	}
	cases := []Animal{
		{Base: Base{ID: "h1"}, Name: "Unassigned", DietaryClass: DietHerbivore},
		{Base: Base{ID: "h2"}, Name: "Assigned", DietaryClass: DietHerbivore, EnclosureID: enclosure},
	}
	for _, animal := range cases {
		got := ResolveFeeding(animal, residents)
		if got.Food != "plants" || got.Source != SourceDiet {
			t.Fatalf("%s: expected plants from diet, got %+v", animal.Name, got)
		}
	}
}

func TestDietDefaults(t *testing.T) {
	cases := map[DietaryClass]string{
		DietHerbivore:   "plants",
		DietCarnivore:   "meat",
		DietOmnivore:    "plants and meat",
		DietInsectivore: "insects",
		DietPiscivore:   "fish",
		"Fungivore":     "unknown food",
	}
	for class, want := range cases {
		if got := DietFood(class); got != want {
			t.Fatalf("%s: expected %q, got %q", class, want, got)
		}
	}
}

func TestLivePreyMatchBeatsHint(t *testing.T) {
	enclosure := strPtr("e")
	lion := Animal{Base: Base{ID: "lion"}, Name: "Leo", Species: "Lion", DietaryClass: DietCarnivore, Prey: "Zebra", EnclosureID: enclosure}
	zebra := Animal{Base: Base{ID: "zebra"}, Name: "Zara", Species: "Zebra", EnclosureID: enclosure}
	got := ResolveFeeding(lion, []Animal{lion, zebra})
	if got.Food != "Zebra (Zara)" || got.Source != SourceLivePrey || got.PreyID != "zebra" {
		t.Fatalf("expected live prey match, got %+v", got)
	}
	if got.Message() != "Leo eats Zebra (Zara)." {
		t.Fatalf("unexpected message %q", got.Message())
	}

	byName := lion
	byName.Prey = "Zara"
	if got := ResolveFeeding(byName, []Animal{lion, zebra}); got.Source != SourceLivePrey {
		t.Fatalf("expected match by name, got %+v", got)
	}
}

func TestPreyHintWithoutMatch(t *testing.T) {
	penguin := Animal{Base: Base{ID: "p"}, Name: "Pingu", Species: "Penguin", DietaryClass: DietCarnivore, Prey: "Fish", EnclosureID: strPtr("e")}
	got := ResolveFeeding(penguin, []Animal{penguin})
	if got.Food != "Fish" || got.Source != SourcePreyHint {
		t.Fatalf("expected prey hint, got %+v", got)
	}

	herbivore := Animal{Name: "Odd", DietaryClass: DietHerbivore, Prey: "Clover"}
	if got := ResolveFeeding(herbivore, nil); got.Food != "Clover" {
		t.Fatalf("prey text applies to any diet class, got %+v", got)
	}
}

func TestPreyNeverMatchesSelfOrOtherEnclosureForUnassigned(t *testing.T) {
	cannibal := Animal{Base: Base{ID: "c"}, Name: "Cain", Species: "Pike", Prey: "Pike", EnclosureID: strPtr("e")}
	if got := ResolveFeeding(cannibal, []Animal{cannibal}); got.Source != SourcePreyHint {
		t.Fatalf("an animal must not match itself, got %+v", got)
	}
	loose := Animal{Base: Base{ID: "l"}, Name: "Loose", Prey: "Zebra"}
	zebra := Animal{Base: Base{ID: "z"}, Name: "Zara", Species: "Zebra"}
	if got := ResolveFeeding(loose, []Animal{zebra}); got.Source != SourcePreyHint {
		t.Fatalf("unassigned animals never match live prey, got %+v", got)
	}
}

func TestFeedZooUsesNameMatchEverywhere(t *testing.T) {
	fx := seedCityZoo(t)
	feeding, err := fx.svc.ZooFeeding(context.Background(), fx.zoo.ID)
	if err != nil {
		t.Fatalf("zoo feeding: %v", err)
	}
	if len(feeding) != 2 || feeding[0].EnclosureName != "Savanna Enclosure" {
		t.Fatalf("unexpected enclosures: %+v", feeding)
	}
	savanna := feeding[0].Animals
	if savanna[0].Food != "Zebra (Zara)" || savanna[1].Food != "plants" {
		t.Fatalf("unexpected savanna feeding: %+v", savanna)
	}
	if arctic := feeding[1].Animals; arctic[0].Food != "Fish" {
		t.Fatalf("unexpected arctic feeding: %+v", arctic)
	}

	single, err := fx.svc.AnimalFeeding(context.Background(), fx.leo.ID)
	if err != nil {
		t.Fatalf("animal feeding: %v", err)
	}
	if single != savanna[0] {
		t.Fatalf("batch and single resolution must agree: %+v vs %+v", single, savanna[0])
	}
}
