package splitter

import (
	"strings"
	"testing"
)

func TestExtractToc(t *testing.T) {
	text := strings.Join([]string{
		"The Long Winter",
		"by A. Writer",
		"",
		"Contents",
		"",
		"Prologue",
		"1 OnceUponaTime 3",
		"2 MyFirstMisadventure 17",
		"3 CarolOfTheBells 41",
		"Epilogue",
		"",
		"The body begins here.",
	}, "\n")

	entries, tocEnd := ExtractToc(text, Options{})
	if len(entries) != 5 {
		t.Fatalf("got %d entries, want 5", len(entries))
	}

	want := []struct {
		ordinal string
		title   string
	}{
		{"", "Prologue"},
		{"1", "Once Upon a Time"},
		{"2", "My First Misadventure"},
		{"3", "Carol of the Bells"},
		{"", "Epilogue"},
	}
	for i, w := range want {
		if entries[i].Ordinal != w.ordinal || entries[i].Title != w.title {
			t.Errorf("entry %d = (%q, %q), want (%q, %q)",
				i, entries[i].Ordinal, entries[i].Title, w.ordinal, w.title)
		}
	}

	// tocEnd must cover the whole listing so body searches skip it.
	lastLine := strings.Index(text, "Epilogue")
	if tocEnd < lastLine+len("Epilogue") {
		t.Errorf("tocEnd = %d, want >= %d (end of last entry)", tocEnd, lastLine+len("Epilogue"))
	}
	if tocEnd > len(text) {
		t.Errorf("tocEnd = %d beyond text length %d", tocEnd, len(text))
	}
}

func TestExtractTocNoAnchor(t *testing.T) {
	text := "Prologue\n\nIt was a dark and stormy night. " + strings.Repeat("More prose. ", 50)
	entries, tocEnd := ExtractToc(text, Options{})
	if entries != nil {
		t.Errorf("got %d entries without an anchor, want none", len(entries))
	}
	if tocEnd != 0 {
		t.Errorf("tocEnd = %d, want 0", tocEnd)
	}
}

func TestExtractTocAnchorOutsideWindow(t *testing.T) {
	// The anchor sits beyond the prefix window, so it must not be found.
	text := strings.Repeat("filler text ", 300) + "\nContents\n1 OnceUponaTime 3\n"
	entries, _ := ExtractToc(text, Options{TocWindow: 100})
	if entries != nil {
		t.Errorf("got %d entries with anchor outside window, want none", len(entries))
	}
}

func TestExtractTocSkipsArtifacts(t *testing.T) {
	text := strings.Join([]string{
		"Contents",
		"47",
		"IV",
		"1 TheBeginning 5",
		"lowercase line",
		"2 TheMiddle 31",
	}, "\n")

	entries, _ := ExtractToc(text, Options{})
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Title != "The Beginning" || entries[1].Title != "The Middle" {
		t.Errorf("got titles %q, %q", entries[0].Title, entries[1].Title)
	}
}

func TestExtractTocDuplicateOrdinals(t *testing.T) {
	// Some extractions render the TOC twice. First occurrence wins.
	text := strings.Join([]string{
		"Contents",
		"1 TheBeginning 5",
		"2 TheMiddle 31",
		"1 TheBeginning 5",
		"2 TheMiddle 31",
	}, "\n")

	entries, _ := ExtractToc(text, Options{})
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
}

func TestExtractTocStopsAtEndMarker(t *testing.T) {
	text := strings.Join([]string{
		"Contents",
		"1 TheBeginning 5",
		"Acknowledgments",
		"2 PhantomEntry 99",
	}, "\n")

	entries, _ := ExtractToc(text, Options{})
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].Ordinal != "1" {
		t.Errorf("entry ordinal = %q, want %q", entries[0].Ordinal, "1")
	}
}

func TestExtractTocRomanOrdinals(t *testing.T) {
	text := strings.Join([]string{
		"Contents",
		"I TheGathering 3",
		"II TheStorm 45",
	}, "\n")

	entries, _ := ExtractToc(text, Options{})
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Ordinal != "I" || entries[1].Ordinal != "II" {
		t.Errorf("ordinals = %q, %q, want I, II", entries[0].Ordinal, entries[1].Ordinal)
	}
}
