package timeofday

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, minute int) time.Time {
	return time.Date(2024, time.March, 14, hour, minute, 0, 0, time.UTC)
}

func TestPreferenceAt_Boundaries(t *testing.T) {
	tests := []struct {
		hour   int
		isDay  bool
		prefer PreferenceKind
	}{
		{0, false, PreferSafest},
		{5, false, PreferSafest},
		{6, true, PreferFastest}, // day starts at 6 inclusive
		{12, true, PreferFastest},
		{17, true, PreferFastest},
		{18, false, PreferSafest}, // night starts at 18 inclusive
		{23, false, PreferSafest},
	}

	for _, tc := range tests {
		pref := PreferenceAt(at(tc.hour, 0))
		assert.Equal(t, tc.isDay, pref.IsDay, "hour %d", tc.hour)
		assert.Equal(t, tc.prefer, pref.Preference, "hour %d", tc.hour)
		assert.NotEmpty(t, pref.Reason)
	}
}

func TestEngine_FixedClock(t *testing.T) {
	engine := NewEngineWithClock(func() time.Time { return at(22, 30) })

	pref := engine.Current()
	assert.False(t, pref.IsDay)
	assert.Equal(t, PreferSafest, pref.Preference)
}

func TestStatusAt_DaytimeCountdown(t *testing.T) {
	status := StatusAt(at(15, 30))

	assert.Equal(t, "15:30", status.TimeString)
	assert.Equal(t, "day", status.Period)
	assert.Equal(t, 150, status.NextChangeMinutes)
}

func TestStatusAt_LateNightCountsToMorning(t *testing.T) {
	status := StatusAt(at(23, 0))

	assert.Equal(t, "night", status.Period)
	// 23:00 to 06:00 the next morning
	assert.Equal(t, 420, status.NextChangeMinutes)
}

func TestStatusAt_EarlyMorning(t *testing.T) {
	status := StatusAt(at(4, 15))

	assert.Equal(t, "night", status.Period)
	assert.Equal(t, 105, status.NextChangeMinutes)
}

func TestStatus_MarshalsMinutes(t *testing.T) {
	out, err := json.Marshal(StatusAt(at(15, 30)))
	require.NoError(t, err)

	assert.JSONEq(t, `{"timeString":"15:30","period":"day","nextChangeMinutes":150}`, string(out))
}

func TestStatusAt_ConsistentWithPreference(t *testing.T) {
	for hour := 0; hour < 24; hour++ {
		pref := PreferenceAt(at(hour, 0))
		status := StatusAt(at(hour, 0))

		if pref.IsDay {
			assert.Equal(t, "day", status.Period, "hour %d", hour)
		} else {
			assert.Equal(t, "night", status.Period, "hour %d", hour)
		}
	}
}
