package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSON(t *testing.T) {
	d := NewDate(2024, time.March, 9)

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `"2024-03-09"`, string(b))

	var back Date
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, d.String(), back.String())

	assert.Error(t, json.Unmarshal([]byte(`"09/03/2024"`), &back))
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2024, 12, 31, 0, 0, 0, 0, time.Local)))
	assert.Equal(t, "2024-12-31", d.String())

	require.NoError(t, d.Scan([]byte("2025-01-02T00:00:00Z")))
	assert.Equal(t, "2025-01-02", d.String())

	assert.Error(t, d.Scan(42))
}

func TestTimeOfDay(t *testing.T) {
	tod, err := ParseTimeOfDay("09:05")
	require.NoError(t, err)
	assert.Equal(t, "09:05", tod.String())

	tod, err = ParseTimeOfDay("17:30:00")
	require.NoError(t, err)
	assert.Equal(t, 17*60+30, tod.Minutes())

	_, err = ParseTimeOfDay("9am")
	assert.Error(t, err)

	var scanned TimeOfDay
	require.NoError(t, scanned.Scan(time.Date(0, 1, 1, 8, 15, 0, 0, time.UTC)))
	assert.Equal(t, "08:15", scanned.String())

	v, err := scanned.Value()
	require.NoError(t, err)
	assert.Equal(t, "08:15:00", v)

	assert.True(t, TimeOfDay{Hour: 8}.Before(TimeOfDay{Hour: 9}))
}

func TestWeekday(t *testing.T) {
	assert.True(t, Sunday.Valid())
	assert.False(t, Weekday("Caturday").Valid())
}
