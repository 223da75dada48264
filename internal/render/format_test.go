package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDate(t *testing.T) {
	tests := []struct {
		name string
		ms   int64
		want string
	}{
		{"new year in beijing", 1704067200000, "2024-01-01"},
		{"utc evening rolls over", 1704038400000, "2024-01-01"},
		{"epoch", 0, "1970-01-01"},
		{"negative but valid", -1, "1970-01-01"},
		{"out of range", 8_640_000_000_000_001, datePlaceholder},
		{"past year 9999", 253402300800000, datePlaceholder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDate(tt.ms))
		})
	}
}

func TestFormatTime(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
	}{
		{0, "00:00:00"},
		{61, "00:01:01"},
		{3661, "01:01:01"},
		{90061, "25:01:01"},
	}

	for _, tt := range tests {
		got, err := FormatTime(tt.seconds)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := FormatTime(-1)
	assert.ErrorIs(t, err, ErrNegativeDuration)
}
