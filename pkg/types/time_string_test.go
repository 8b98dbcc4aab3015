package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeString_Validate(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "valid", value: "12:00"},
		{name: "midnight", value: "00:00"},
		{name: "end of day", value: "23:59"},
		{name: "no leading zero", value: "9:00", wantErr: true},
		{name: "hour overflow", value: "24:00", wantErr: true},
		{name: "garbage", value: "noon", wantErr: true},
		{name: "empty", value: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTimeStringFromString(tt.value)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts := TimeString("11:30")

	next, err := ts.AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, TimeString("12:15"), next)
	assert.True(t, ts.IsBefore(next))
	assert.True(t, next.IsAfter(ts))

	_, err = TimeString("23:30").AddMinutes(30)
	assert.ErrorIs(t, err, ErrTimeOverflow)
}

func TestNewTimeString(t *testing.T) {
	now := time.Date(2025, 12, 12, 9, 5, 42, 0, time.UTC)
	assert.Equal(t, TimeString("09:05"), NewTimeString(now))
}

func TestDateString_Validate(t *testing.T) {
	d, err := NewDateStringFromString("2025-12-12")
	require.NoError(t, err)

	parsed, err := d.Time()
	require.NoError(t, err)
	assert.Equal(t, time.December, parsed.Month())

	_, err = NewDateStringFromString("2025-13-01")
	assert.ErrorIs(t, err, ErrInvalidDateString)

	_, err = NewDateStringFromString("12.12.2025")
	assert.ErrorIs(t, err, ErrInvalidDateString)
}
