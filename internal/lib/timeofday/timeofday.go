// Package timeofday maps wall-clock time to the day/night routing
// preference used when scoring candidate routes.
package timeofday

import (
	"fmt"
	"time"
)

const (
	dayStartHour   = 6  // inclusive
	nightStartHour = 18 // inclusive
)

// PreferenceKind is the routing bias derived from the time of day.
type PreferenceKind string

const (
	PreferFastest PreferenceKind = "fastest"
	PreferSafest  PreferenceKind = "safest"
)

// Preference is the day/night classification and the routing bias it implies.
type Preference struct {
	IsDay      bool           `json:"isDay"`
	Preference PreferenceKind `json:"preference"`
	Reason     string         `json:"reason"`
}

// Status is the human-readable clock state sharing the same day/night
// boundary, used by the dashboard's clock widget.
type Status struct {
	TimeString string `json:"timeString"`
	Period     string `json:"period"`
	// NextChangeMinutes counts down to the next day/night transition.
	NextChangeMinutes int `json:"nextChangeMinutes"`
}

// Engine resolves the current preference. The clock is injectable so tests
// can pin the time; a nil clock uses time.Now.
type Engine struct {
	clock func() time.Time
}

// NewEngine creates an Engine backed by the system clock.
func NewEngine() *Engine {
	return &Engine{clock: time.Now}
}

// NewEngineWithClock creates an Engine with a fixed or fake clock.
func NewEngineWithClock(clock func() time.Time) *Engine {
	if clock == nil {
		clock = time.Now
	}
	return &Engine{clock: clock}
}

// Current returns the preference for the engine's current time.
func (e *Engine) Current() Preference {
	return PreferenceAt(e.clock())
}

// CurrentStatus returns the clock status for the engine's current time.
func (e *Engine) CurrentStatus() Status {
	return StatusAt(e.clock())
}

// PreferenceAt classifies a specific instant. Hours [6,18) are day and favor
// the fastest route; hour 18 itself already counts as night. The asymmetric
// closed-open interval matches the dashboard's behavior and is deliberate.
func PreferenceAt(now time.Time) Preference {
	hour := now.Hour()
	if hour >= dayStartHour && hour < nightStartHour {
		return Preference{
			IsDay:      true,
			Preference: PreferFastest,
			Reason:     "daytime: favoring the fastest route",
		}
	}
	return Preference{
		IsDay:      false,
		Preference: PreferSafest,
		Reason:     "nighttime: favoring highways and safer roads",
	}
}

// StatusAt builds the presentational clock state for a specific instant,
// including the countdown to the next day/night transition.
func StatusAt(now time.Time) Status {
	pref := PreferenceAt(now)

	period := "night"
	nextBoundaryHour := dayStartHour
	if pref.IsDay {
		period = "day"
		nextBoundaryHour = nightStartHour
	}

	next := time.Date(now.Year(), now.Month(), now.Day(), nextBoundaryHour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}

	return Status{
		TimeString:        now.Format("15:04"),
		Period:            period,
		NextChangeMinutes: int(next.Sub(now).Minutes()),
	}
}

// String renders the preference for logs.
func (p Preference) String() string {
	return fmt.Sprintf("%s (day=%t)", p.Preference, p.IsDay)
}
