package format

import (
	"testing"
	"time"
)

// TestFormatExecutionDuration verifies duration formatting.
func TestFormatExecutionDuration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		d        time.Duration
		expected string
	}{
		{500 * time.Nanosecond, "0\u00b5s"},
		{10 * time.Microsecond, "10\u00b5s"},
		{10 * time.Millisecond, "10ms"},
		{2 * time.Second, "2s"},
	}

	for _, tt := range tests {
		got := FormatExecutionDuration(tt.d)
		if got != tt.expected {
			t.Errorf("FormatExecutionDuration(%v) = %s; want %s", tt.d, got, tt.expected)
		}
	}
}

// TestFormatNumberString verifies thousand separator formatting.
func TestFormatNumberString(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"1", "1"},
		{"12", "12"},
		{"123", "123"},
		{"1234", "1,234"},
		{"123456", "123,456"},
		{"1234567", "1,234,567"},
		{"-1234", "-1,234"},
		{"9999999800000001", "9,999,999,800,000,001"},
	}

	for _, tt := range tests {
		got := FormatNumberString(tt.input)
		if got != tt.expected {
			t.Errorf("FormatNumberString(%q) = %q; want %q", tt.input, got, tt.expected)
		}
	}
}

// TestFormatBytes verifies the unit switch points for byte counts.
func TestFormatBytes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		n        uint64
		expected string
	}{
		{"zero", 0, "0 B"},
		{"bytes", 512, "512 B"},
		{"exactly one kilobyte stays in bytes", 1024, "1024 B"},
		{"just over one kilobyte", 1536, "1.50 KB"},
		{"exactly one megabyte stays in kilobytes", 1024 * 1024, "1024.00 KB"},
		{"megabytes", 3 * 1024 * 1024, "3.00 MB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := FormatBytes(tt.n); got != tt.expected {
				t.Errorf("FormatBytes(%d) = %q, want %q", tt.n, got, tt.expected)
			}
		})
	}
}
