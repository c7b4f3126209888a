package suncalc

import (
	"testing"
	"time"

	"zoocore/internal/core"
)

func amsterdam(t *testing.T) *SunCalc {
	t.Helper()
	return NewSunCalc(52.37, 4.89, time.UTC)
}

func TestGetSunEventTimesOrdersEvents(t *testing.T) {
	sc := amsterdam(t)
	date := time.Date(2025, 6, 21, 10, 0, 0, 0, time.UTC)
	times, err := sc.GetSunEventTimes(date)
	if err != nil {
		t.Fatalf("sun events: %v", err)
	}
	if !times.Sunrise.Before(times.Sunset) {
		t.Fatalf("sunrise %s must precede sunset %s", times.Sunrise, times.Sunset)
	}
	if times.Sunrise.Day() != 21 || times.Sunset.Day() != 21 {
		t.Fatalf("events must fall on the requested date: %+v", times)
	}
	if times.Sunrise.Hour() < 2 || times.Sunrise.Hour() > 5 {
		t.Fatalf("unexpected midsummer sunrise %s", times.Sunrise)
	}

	again, err := sc.GetSunEventTimes(date.Add(6 * time.Hour))
	if err != nil || again != times {
		t.Fatalf("expected cached times for the same date, got %+v %v", again, err)
	}
	if len(sc.cache) != 1 {
		t.Fatalf("expected one cache entry, got %d", len(sc.cache))
	}
}

func TestLastTransition(t *testing.T) {
	sc := amsterdam(t)
	cases := []struct {
		name string
		at   time.Time
		want core.Transition
		day  int
	}{
		{"midday", time.Date(2025, 6, 21, 12, 0, 0, 0, time.UTC), core.Sunrise, 21},
		{"late evening", time.Date(2025, 6, 21, 22, 30, 0, 0, time.UTC), core.Sunset, 21},
		{"small hours", time.Date(2025, 6, 21, 1, 0, 0, 0, time.UTC), core.Sunset, 20},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, when, err := sc.LastTransition(tc.at)
			if err != nil {
				t.Fatalf("last transition: %v", err)
			}
			if got != tc.want || when.Day() != tc.day {
				t.Fatalf("got %s at %s, want %s on day %d", got, when, tc.want, tc.day)
			}
			if when.After(tc.at) {
				t.Fatalf("transition %s lies after %s", when, tc.at)
			}
		})
	}
}

func TestNilLocationDefaultsToUTC(t *testing.T) {
	sc := NewSunCalc(0, 0, nil)
	if sc.Location() != time.UTC {
		t.Fatalf("nil location must default to UTC")
	}
}
