package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_JSONRoundTrip(t *testing.T) {
	d := NewDate(2024, time.February, 29)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-02-29"`, string(data))

	var back Date
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, d, back)
}

func TestDate_UnmarshalRejectsBadFormat(t *testing.T) {
	var d Date
	assert.Error(t, json.Unmarshal([]byte(`"29/02/2024"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`"2024-13-01"`), &d))
}

func TestDate_UnmarshalNullYieldsZero(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`null`), &d))
	assert.True(t, d.IsZero())
}

func TestDate_DaysSince(t *testing.T) {
	a := NewDate(2024, time.January, 1)
	b := NewDate(2024, time.January, 5)

	assert.Equal(t, 4, b.DaysSince(a))
	assert.Equal(t, -4, a.DaysSince(b))
	assert.Equal(t, 0, a.DaysSince(a))

	// Across the leap day.
	feb := NewDate(2024, time.February, 28)
	mar := NewDate(2024, time.March, 1)
	assert.Equal(t, 2, mar.DaysSince(feb))
}

func TestDateTime_JSONRoundTrip(t *testing.T) {
	dt, err := ParseDateTime("2024-06-15T14:30:05")
	require.NoError(t, err)

	data, err := json.Marshal(dt)
	require.NoError(t, err)
	assert.Equal(t, `"2024-06-15T14:30:05"`, string(data))

	var back DateTime
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, dt, back)
}

func TestNow_SecondResolution(t *testing.T) {
	assert.Zero(t, Now().Nanosecond(), "timestamps are stored at second resolution")
}
