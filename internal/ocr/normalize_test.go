package ocr

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"crlf", "line one\r\nline two\r", "line one\nline two"},
		{"tabs", "a\t\tb", "a b"},
		{"multi space", "Total      15.50", "Total 15.50"},
		{"blank run collapses", "a\n\n\n\n\nb", "a\n\nb"},
		{"trailing spaces", "Total 15.50   \nThanks", "Total 15.50\nThanks"},
		{"surrounding whitespace", "  \n Total \n ", "Total"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q): got %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestBoxNoiseStrip(t *testing.T) {
	in := "HEADER\n-----\ncontent\n___\n"
	got := Normalize(reBoxNoise.ReplaceAllString(in, ""))
	want := "HEADER\n\ncontent"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestHeuristicConfidence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float32
	}{
		{"empty", "", 0.2},
		{"date only", "visited 2024", 0.4},
		{"currency only", "price in USD", 0.35},
		{"amount only", "cost 15.50", 0.35},
		{"date currency amount", "2024 total $15.50", 0.7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := heuristicConfidence(tt.in)
			if diff := got - tt.want; diff > 1e-6 || diff < -1e-6 {
				t.Errorf("heuristicConfidence(%q): got %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
