// Package suncalc computes sunrise and sunset for a fixed location and maps
// a point in time to the day/night transition that most recently occurred.
package suncalc

import (
	"fmt"
	"sync"
	"time"

	"github.com/sj14/astral/pkg/astral"

	"zoocore/internal/core"
)

// SunEventTimes holds the sun event times for one date in the calculator's
// location.
type SunEventTimes struct {
	Sunrise time.Time `json:"sunrise"`
	Sunset  time.Time `json:"sunset"`
}

type cacheEntry struct {
	times SunEventTimes
}

// SunCalc caches sun event times per date.
type SunCalc struct {
	cache    map[string]cacheEntry
	lock     sync.RWMutex
	observer astral.Observer
	location *time.Location
}

// NewSunCalc creates a calculator for the given coordinates. A nil location
// means UTC.
func NewSunCalc(latitude, longitude float64, location *time.Location) *SunCalc {
	if location == nil {
		location = time.UTC
	}
	return &SunCalc{
		cache:    make(map[string]cacheEntry),
		observer: astral.Observer{Latitude: latitude, Longitude: longitude},
		location: location,
	}
}

// Location returns the time zone results are reported in.
func (sc *SunCalc) Location() *time.Location { return sc.location }

// GetSunEventTimes returns the sun event times for the calendar date of
// date in the calculator's location.
func (sc *SunCalc) GetSunEventTimes(date time.Time) (SunEventTimes, error) {
	local := date.In(sc.location)
	dateKey := local.Format(time.DateOnly)

	sc.lock.RLock()
	entry, exists := sc.cache[dateKey]
	sc.lock.RUnlock()
	if exists {
		return entry.times, nil
	}

	times, err := sc.calculate(local)
	if err != nil {
		return SunEventTimes{}, err
	}

	sc.lock.Lock()
	sc.cache[dateKey] = cacheEntry{times: times}
	sc.lock.Unlock()
	return times, nil
}

func (sc *SunCalc) calculate(local time.Time) (SunEventTimes, error) {
	day := time.Date(local.Year(), local.Month(), local.Day(), 12, 0, 0, 0, time.UTC)
	sunrise, err := astral.Sunrise(sc.observer, day)
	if err != nil {
		return SunEventTimes{}, fmt.Errorf("calculate sunrise for %s: %w", day.Format(time.DateOnly), err)
	}
	sunset, err := astral.Sunset(sc.observer, day)
	if err != nil {
		return SunEventTimes{}, fmt.Errorf("calculate sunset for %s: %w", day.Format(time.DateOnly), err)
	}
	return SunEventTimes{Sunrise: sunrise.In(sc.location), Sunset: sunset.In(sc.location)}, nil
}

// LastTransition returns the transition in effect at `at` and when it
// happened. Before today's sunrise the previous day's sunset applies.
func (sc *SunCalc) LastTransition(at time.Time) (core.Transition, time.Time, error) {
	today, err := sc.GetSunEventTimes(at)
	if err != nil {
		return "", time.Time{}, err
	}
	switch {
	case !at.Before(today.Sunset):
		return core.Sunset, today.Sunset, nil
	case !at.Before(today.Sunrise):
		return core.Sunrise, today.Sunrise, nil
	}
	yesterday, err := sc.GetSunEventTimes(at.In(sc.location).AddDate(0, 0, -1))
	if err != nil {
		return "", time.Time{}, err
	}
	return core.Sunset, yesterday.Sunset, nil
}
