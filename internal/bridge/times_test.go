package bridge

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEventTime(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected time.Time
		ok       bool
	}{
		{
			name:     "rfc3339",
			input:    "2024-01-01T10:00:00Z",
			expected: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
			ok:       true,
		},
		{
			name:     "rfc3339 with offset",
			input:    "2024-01-01T12:00:00+02:00",
			expected: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
			ok:       true,
		},
		{
			name:     "rfc3339 with millis",
			input:    "2024-01-01T10:00:00.500Z",
			expected: time.Date(2024, 1, 1, 10, 0, 0, 500000000, time.UTC),
			ok:       true,
		},
		{
			name:     "no zone",
			input:    "2024-01-01T10:00:00",
			expected: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
			ok:       true,
		},
		{
			name:     "epoch milliseconds",
			input:    float64(1704103200000),
			expected: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
			ok:       true,
		},
		{name: "garbage string", input: "next tuesday"},
		{name: "empty string", input: ""},
		{name: "nil", input: nil},
		{name: "negative number", input: float64(-5)},
		{name: "wrong type", input: []any{"2024-01-01"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseEventTime(tt.input)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, tt.expected.Equal(got), "expected %v, got %v", tt.expected, got)
			}
		})
	}
}
