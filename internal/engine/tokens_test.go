package engine

import "testing"

func TestEstimateTokens(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"a", 1},
		{"abc", 1},
		{"abcd", 1},
		{"abcdefgh", 2},
		{"hello world", 2}, // 11 runes
	}
	for _, tt := range tests {
		if got := EstimateTokens(tt.text); got != tt.want {
			t.Errorf("EstimateTokens(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}

func TestCountWords(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"   ", 0},
		{"one", 1},
		{"one two  three", 3},
		{"line\nbreaks\tcount", 3},
	}
	for _, tt := range tests {
		if got := CountWords(tt.text); got != tt.want {
			t.Errorf("CountWords(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}

func TestSavingsPercent(t *testing.T) {
	tests := []struct {
		orig, comp int
		want       float64
	}{
		{100, 50, 50.0},
		{0, 10, 0},   // zero original: no division
		{0, 0, 0},
		{15, 11, 26.7}, // rounds to one decimal
		{10, 20, -100.0},
		{3, 3, 0},
	}
	for _, tt := range tests {
		if got := SavingsPercent(tt.orig, tt.comp); got != tt.want {
			t.Errorf("SavingsPercent(%d, %d) = %v, want %v", tt.orig, tt.comp, got, tt.want)
		}
	}
}
