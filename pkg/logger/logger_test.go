//go:build !integration

package logger

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMatchPattern(t *testing.T) {
	tests := []struct {
		name      string
		namespace string
		pattern   string
		expected  bool
	}{
		{
			name:      "wildcard matches everything",
			namespace: "validator:structure",
			pattern:   "*",
			expected:  true,
		},
		{
			name:      "exact match",
			namespace: "cli:validate",
			pattern:   "cli:validate",
			expected:  true,
		},
		{
			name:      "prefix wildcard",
			namespace: "validator:content",
			pattern:   "validator:*",
			expected:  true,
		},
		{
			name:      "suffix wildcard",
			namespace: "cli:validate",
			pattern:   "*:validate",
			expected:  true,
		},
		{
			name:      "middle wildcard",
			namespace: "validator:deps:pinning",
			pattern:   "validator:*:pinning",
			expected:  true,
		},
		{
			name:      "no match",
			namespace: "reporter:json",
			pattern:   "validator:*",
			expected:  false,
		},
		{
			name:      "empty pattern",
			namespace: "cli:validate",
			pattern:   "",
			expected:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, matchPattern(tt.namespace, tt.pattern))
		})
	}
}

func TestFormatDiff(t *testing.T) {
	tests := []struct {
		name     string
		d        time.Duration
		expected string
	}{
		{name: "sub-millisecond", d: 500 * time.Microsecond, expected: "0ms"},
		{name: "milliseconds", d: 42 * time.Millisecond, expected: "42ms"},
		{name: "seconds", d: 3 * time.Second, expected: "3s"},
		{name: "minutes", d: 2 * time.Minute, expected: "2m"},
		{name: "hours", d: 90 * time.Minute, expected: "1h"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatDiff(tt.d))
		})
	}
}

func TestNewDisabledByDefault(t *testing.T) {
	if os.Getenv("DEBUG") != "" {
		t.Skip("DEBUG is set in the environment")
	}
	log := New("test:namespace")
	assert.False(t, log.Enabled())
}
