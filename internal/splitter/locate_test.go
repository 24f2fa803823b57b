package splitter

import (
	"strings"
	"testing"
)

const locateProse = "the snow fell quietly over the town and nobody stirred for hours.\n"

func TestLocateExact(t *testing.T) {
	toc := "Contents\n1 TheBeginning 5\n"
	text := toc + "\n1\nThe Beginning\n" + locateProse

	entry := newTocEntry("1", "TheBeginning")
	lc, ok := Locate(entry, text, len(toc), Options{})
	if !ok {
		t.Fatal("Locate returned no match")
	}
	if lc.Strategy != MatchExact {
		t.Errorf("strategy = %q, want %q", lc.Strategy, MatchExact)
	}
	if lc.Score != 1.0 {
		t.Errorf("score = %v, want 1.0", lc.Score)
	}
	want := strings.Index(text, "1\nThe Beginning")
	if lc.BodyPosition != want {
		t.Errorf("position = %d, want %d", lc.BodyPosition, want)
	}
}

func TestLocateNormalized(t *testing.T) {
	toc := "Contents\n1 TheBeginning 5\n"
	text := toc + "\n1\nTheBeginning\n" + locateProse

	entry := newTocEntry("1", "TheBeginning")
	lc, ok := Locate(entry, text, len(toc), Options{})
	if !ok {
		t.Fatal("Locate returned no match")
	}
	if lc.Strategy != MatchNormalized {
		t.Errorf("strategy = %q, want %q", lc.Strategy, MatchNormalized)
	}
}

func TestLocateFlexibleWhitespace(t *testing.T) {
	toc := "Contents\n1 TheBeginning 5\n"
	text := toc + "\n1\nThe\nBeginning\n" + locateProse

	entry := newTocEntry("1", "TheBeginning")
	lc, ok := Locate(entry, text, len(toc), Options{})
	if !ok {
		t.Fatal("Locate returned no match")
	}
	if lc.Strategy != MatchFlexible {
		t.Errorf("strategy = %q, want %q", lc.Strategy, MatchFlexible)
	}
}

func TestLocateRejectsPageHeaders(t *testing.T) {
	// Running headers repeat the section name in caps. Only the mixed-case
	// occurrence is the real section start.
	toc := "Contents\nPrologue\n"
	var b strings.Builder
	b.WriteString(toc)
	for i := 0; i < 4; i++ {
		b.WriteString("\nPROLOGUE\n")
		b.WriteString(locateProse)
	}
	b.WriteString("\nPrologue\n")
	b.WriteString(locateProse)
	text := b.String()

	entry := newTocEntry("", "Prologue")
	lc, ok := Locate(entry, text, len(toc), Options{})
	if !ok {
		t.Fatal("Locate returned no match")
	}
	want := strings.LastIndex(text, "Prologue")
	if lc.BodyPosition != want {
		t.Errorf("position = %d, want %d (matched a header occurrence)", lc.BodyPosition, want)
	}
}

func TestLocateSkipsTocRegion(t *testing.T) {
	// The title appears in the TOC listing itself; only a position at or
	// after searchStart is acceptable.
	toc := "Contents\nEpilogue\n"
	text := toc + locateProse + "\nEpilogue\n" + locateProse

	entry := newTocEntry("", "Epilogue")
	lc, ok := Locate(entry, text, len(toc), Options{})
	if !ok {
		t.Fatal("Locate returned no match")
	}
	if lc.BodyPosition < len(toc) {
		t.Errorf("position = %d inside TOC region (searchStart %d)", lc.BodyPosition, len(toc))
	}
}

func TestLocateFuzzy(t *testing.T) {
	// OCR mangled the body heading; no structural strategy can match it.
	text := strings.Repeat("z", 30) + "The Lonq Winter" + "\n" + locateProse

	entry := newTocEntry("3", "The Long Winter")
	lc, ok := Locate(entry, text, 0, Options{})
	if !ok {
		t.Fatal("Locate returned no match")
	}
	if lc.Strategy != MatchFuzzy {
		t.Errorf("strategy = %q, want %q", lc.Strategy, MatchFuzzy)
	}
	if lc.BodyPosition != 30 {
		t.Errorf("position = %d, want 30", lc.BodyPosition)
	}
	if lc.Score < DefaultSimilarityThreshold || lc.Score >= 1.0 {
		t.Errorf("score = %v, want in [%v, 1.0)", lc.Score, DefaultSimilarityThreshold)
	}
}

func TestLocateNotFound(t *testing.T) {
	text := strings.Repeat("z", 200)
	entry := newTocEntry("7", "The Long Winter")
	if _, ok := Locate(entry, text, 0, Options{}); ok {
		t.Error("Locate matched in text that does not contain the title")
	}
}

func TestCamelVariants(t *testing.T) {
	got := camelVariants("TheLongWinter", "The Long Winter")
	want := []string{"TheLongWinter"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("variant %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestUppercaseDominated(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"PROLOGUE", true},
		{"Prologue", false},
		{"THE LONG WINTER", true},
		{"The Long Winter", false},
		{"", false},
		{"1234", false},
	}
	for _, tt := range tests {
		if got := uppercaseDominated(tt.input, DefaultHeaderUppercaseRatio); got != tt.expected {
			t.Errorf("uppercaseDominated(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestSimilarityRatio(t *testing.T) {
	tests := []struct {
		a, b     string
		expected float64
	}{
		{"abc", "abc", 1.0},
		{"abc", "abd", 1.0 - 1.0/3.0},
		{"", "", 1.0},
		{"abc", "", 0.0},
	}
	for _, tt := range tests {
		if got := similarityRatio(tt.a, tt.b); got != tt.expected {
			t.Errorf("similarityRatio(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.expected)
		}
	}
}
