package span

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Introduction", "Introduction"},
		{"trims", "  Introduction  ", "Introduction"},
		{"collapses runs", "Chapter \t\n One", "Chapter One"},
		{"empty", "", ""},
		{"whitespace only", " \t ", ""},
		{"ligature", "eﬃcient", "efficient"},
		{"fullwidth digits", "１２３", "123"},
		{"nbsp collapsed", "a b", "a b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"  Chapter 1  ", "eﬃcient reading", "第1章 はじめに"}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}
