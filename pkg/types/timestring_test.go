package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeString(t *testing.T) {
	ts := NewTimeString(time.Date(2026, 9, 4, 14, 5, 33, 0, time.UTC))
	assert.Equal(t, "14:05", ts.String())
}

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid morning", input: "09:00"},
		{name: "valid midnight", input: "00:00"},
		{name: "valid end of day", input: "23:59"},
		{name: "missing minutes", input: "09", wantErr: true},
		{name: "out of range hour", input: "24:00", wantErr: true},
		{name: "out of range minute", input: "10:61", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "morning", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, ts.String())
		})
	}
}

func TestTimeStringComparisons(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("09:01"))
	assert.False(t, TimeString("09:00").IsBefore("09:00"))
	assert.True(t, TimeString("14:30").IsAfter("14:29"))
	assert.False(t, TimeString("14:30").IsAfter("14:30"))
}

func TestTimeStringAddMinutes(t *testing.T) {
	ts, err := TimeString("10:45").AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("11:15"), ts)

	_, err = TimeString("bad").AddMinutes(30)
	require.Error(t, err)
}

func TestTimeStringMinutes(t *testing.T) {
	m, err := TimeString("02:30").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 150, m)
}

func TestTimeStringJSON(t *testing.T) {
	data, err := json.Marshal(TimeString("16:15"))
	require.NoError(t, err)
	assert.Equal(t, `"16:15"`, string(data))

	var ts TimeString
	require.NoError(t, json.Unmarshal([]byte(`"08:05"`), &ts))
	assert.Equal(t, TimeString("08:05"), ts)

	require.Error(t, json.Unmarshal([]byte(`"8am"`), &ts))
}
