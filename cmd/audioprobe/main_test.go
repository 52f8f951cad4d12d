package main

import "testing"

func TestTitleKey(t *testing.T) {
	tests := []struct {
		key      string
		expected string
	}{
		{"file_size", "File Size"},
		{"duration", "Duration"},
		{"sample_rate", "Sample Rate"},
		{"bitrate", "Bitrate"},
		{"channels", "Channels"},
	}

	for _, tt := range tests {
		if got := titleKey(tt.key); got != tt.expected {
			t.Errorf("titleKey(%q) = %q, expected %q", tt.key, got, tt.expected)
		}
	}
}
