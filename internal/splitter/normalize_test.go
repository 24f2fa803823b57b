package splitter

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		// Concatenation artifacts seen in real extractions.
		{"single letter connector", "OnceUponaTime", "Once Upon a Time"},
		{"into prefix", "IntoAdulthood", "Into Adulthood"},
		{"compound connector", "CarolOfTheBells", "Carol of the Bells"},
		{"plain camel", "MyFirstMisadventure", "My First Misadventure"},
		{"leading single capital", "ANewFamily", "A New Family"},
		{"lowercase compound", "CaroloftheBells", "Carol of the Bells"},
		{"of my compound", "SongOfMyPeople", "Song of my People"},
		{"already spaced", "The Long Winter", "The Long Winter"},
		{"single word", "Prologue", "Prologue"},
		{"extra whitespace", "  The   Long  Winter ", "The Long Winter"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if got != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{"OnceUponaTime", "IntoAdulthood", "CarolOfTheBells", "The Long Winter"}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize(Normalize(%q)) = %q, want %q", in, twice, once)
		}
	}
}

func TestFold(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Once Upon a Time", "once upon a time"},
		{"  The   Long\nWinter ", "the long winter"},
		{"PROLOGUE", "prologue"},
	}

	for _, tt := range tests {
		if got := fold(tt.input); got != tt.expected {
			t.Errorf("fold(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
