package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLocation(t *testing.T) {
	require.Equal(t, "Asia/Tokyo", Location.String())

	_, offset := Now().Zone()
	require.Equal(t, 9*60*60, offset)
}

func TestStamp(t *testing.T) {
	testCases := []struct {
		input    time.Time
		expected string
	}{
		{
			input:    time.Date(2025, time.April, 1, 9, 30, 0, 0, Location),
			expected: "20250401-093000",
		},
		{
			// UTC midnight is 9 AM in the portal's timezone
			input:    time.Date(2025, time.December, 31, 0, 0, 5, 0, time.UTC),
			expected: "20251231-090005",
		},
	}

	for _, test := range testCases {
		require.Equal(t, test.expected, Stamp(test.input))
	}
}
