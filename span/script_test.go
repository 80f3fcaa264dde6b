package span

import "testing"

func TestNonASCIIRatio(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"ascii", "Introduction", 0},
		{"empty", "", 0},
		{"all cjk", "第1章", 2.0 / 3.0},
		{"mixed", "abcé", 0.25},
		{"whitespace ignored", "a é", 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NonASCIIRatio(tt.text)
			if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("NonASCIIRatio(%q) = %f, want %f", tt.text, got, tt.want)
			}
		})
	}
}

func TestIsTitleCase(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"simple", "Introduction", true},
		{"multi word", "Related Work", true},
		{"lowercase word", "Related work", false},
		{"numbered heading", "1. Introduction", true},
		{"leading digits only", "123 456", false},
		{"cjk has no case", "第1章 はじめに", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTitleCase(tt.text); got != tt.want {
				t.Errorf("IsTitleCase(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestIsAllCaps(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"all caps", "BACKGROUND", true},
		{"mixed", "Background", false},
		{"caps with digits", "SECTION 12", true},
		{"too few cased", "OK", false},
		{"mostly caps", "ABCDEFGHIJKLMNOPQRSTUVWXYZa", true},
		{"cjk uncased", "第1章", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAllCaps(tt.text); got != tt.want {
				t.Errorf("IsAllCaps(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
