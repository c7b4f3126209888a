package core

import (
	"context"
	"errors"
	"testing"
)

func TestActivityFor(t *testing.T) {
	cases := []struct {
		pattern    ActivityPattern
		transition Transition
		want       Activity
	}{
		{ActivityCathemeral, Sunrise, AlwaysActive},
		{ActivityCathemeral, Sunset, AlwaysActive},
		{ActivityDiurnal, Sunrise, WakesUp},
		{ActivityDiurnal, Sunset, GoesToSleep},
		{ActivityNocturnal, Sunrise, GoesToSleep},
		{ActivityNocturnal, Sunset, WakesUp},
		{"Crepuscular", Sunrise, AlwaysActive},
		{"", Sunset, AlwaysActive},
	}
	for _, tc := range cases {
		if got := ActivityFor(tc.pattern, tc.transition); got != tc.want {
			t.Fatalf("%q at %s: expected %q, got %q", tc.pattern, tc.transition, tc.want, got)
		}
	}
}

func TestParseTransition(t *testing.T) {
	if tr, err := ParseTransition(" SunRise "); err != nil || tr != Sunrise {
		t.Fatalf("expected sunrise, got %q %v", tr, err)
	}
	if tr, err := ParseTransition("sunset"); err != nil || tr != Sunset {
		t.Fatalf("expected sunset, got %q %v", tr, err)
	}
	if _, err := ParseTransition("noon"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}
}

func TestPartitionActivityIsDisjointAndOrdered(t *testing.T) {
	animals := []Animal{
		{Base: Base{ID: "1"}, Name: "Owl", ActivityPattern: ActivityNocturnal},
		{Base: Base{ID: "2"}, Name: "Lion", ActivityPattern: ActivityDiurnal},
		{Base: Base{ID: "3"}, Name: "Cat", ActivityPattern: ActivityCathemeral},
		{Base: Base{ID: "4"}, Name: "Bat", ActivityPattern: ActivityNocturnal},
	}
	cycle := PartitionActivity(animals, Sunset)
	if len(cycle.WakingUp) != 2 || cycle.WakingUp[0].Name != "Owl" || cycle.WakingUp[1].Name != "Bat" {
		t.Fatalf("unexpected waking up group: %+v", cycle.WakingUp)
	}
	if len(cycle.GoingToSleep) != 1 || cycle.GoingToSleep[0].Name != "Lion" {
		t.Fatalf("unexpected going to sleep group: %+v", cycle.GoingToSleep)
	}
	if len(cycle.AlwaysActive) != 1 || cycle.AlwaysActive[0].Name != "Cat" {
		t.Fatalf("unexpected always active group: %+v", cycle.AlwaysActive)
	}
	empty := PartitionActivity(nil, Sunrise)
	if empty.WakingUp == nil || empty.GoingToSleep == nil || empty.AlwaysActive == nil {
		t.Fatalf("groups must be empty slices, not nil")
	}
}

func TestServiceActivity(t *testing.T) {
	fx := seedCityZoo(t)
	ctx := context.Background()
	res, err := fx.svc.AnimalActivity(ctx, fx.leo.ID, Sunrise)
	if err != nil {
		t.Fatalf("animal activity: %v", err)
	}
	if res.Activity != WakesUp || res.Message() != "At sunrise, Leo wakes up." {
		t.Fatalf("unexpected activity: %+v", res)
	}
	cycle, err := fx.svc.ZooDayCycle(ctx, fx.zoo.ID, Sunset)
	if err != nil {
		t.Fatalf("zoo day cycle: %v", err)
	}
	if len(cycle.GoingToSleep) != 3 {
		t.Fatalf("expected every diurnal animal going to sleep, got %+v", cycle)
	}
	var nf ErrNotFound
	if _, err := fx.svc.EnclosureDayCycle(ctx, "missing", Sunrise); !errors.As(err, &nf) {
		t.Fatalf("expected not found, got %v", err)
	}
}
