package splitter

import (
	"regexp"
	"strings"
)

// TOC extraction scans a bounded prefix of the document for a table of
// contents and parses candidate chapter lines. Scanning is bounded both to
// avoid walking the whole book and to avoid false matches deep in the
// body.

var (
	// tocAnchorRe finds the TOC heading. "table of contents" is matched by
	// its "contents" suffix.
	tocAnchorRe = regexp.MustCompile(`(?i)contents`)

	// tocNumberedRe matches "3 TheLongWinter 47" style lines: ordinal,
	// title, optional trailing page number.
	tocNumberedRe = regexp.MustCompile(`^(\d+)\s+([A-Z][a-zA-Z][a-zA-Z '’-]*?)\s*\d*$`)

	// tocRomanRe matches part/chapter lines with roman-numeral ordinals.
	tocRomanRe = regexp.MustCompile(`^([IVXLCDM]+)\s+([A-Z][a-zA-Z][a-zA-Z '’-]*?)\s*\d*$`)

	// tocSpecialRe matches named special sections with no ordinal.
	tocSpecialRe = regexp.MustCompile(`(?i)^(Prologue|Epilogue|Preface|Introduction|Foreword|Afterword)\s*\d*$`)

	// Pure digits or pure roman numerals are page-number artifacts, not
	// entries.
	pureDigitsRe = regexp.MustCompile(`^\d+$`)
	pureRomanRe  = regexp.MustCompile(`^[IVXLCDM]+$`)
)

// tocEndMarkers end the line scan early when body front matter begins.
var tocEndMarkers = []string{
	"about the author",
	"acknowledgments",
	"acknowledgements",
	"copyright",
}

// ExtractToc parses TOC entries from text. It returns the entries and the
// absolute offset where the TOC block ends; body searches must start at or
// after that offset so the TOC's own listing is never matched as a chapter
// start. When no TOC anchor is found it returns (nil, 0) — a normal
// degraded-input condition, not an error.
func ExtractToc(text string, opts Options) ([]TocEntry, int) {
	opts = opts.withDefaults()

	window := opts.TocWindow
	if window > len(text) {
		window = len(text)
	}
	loc := tocAnchorRe.FindStringIndex(text[:window])
	if loc == nil {
		return nil, 0
	}
	anchor := loc[0]

	scanEnd := anchor + opts.TocScanWindow
	if scanEnd > len(text) {
		scanEnd = len(text)
	}

	var entries []TocEntry
	seenOrdinals := make(map[string]bool)
	seenSpecials := make(map[string]bool)
	tocEnd := loc[1]

	offset := anchor
	for _, rawLine := range strings.Split(text[anchor:scanEnd], "\n") {
		lineStart := offset
		offset += len(rawLine) + 1

		line := strings.TrimSpace(rawLine)
		if line == "" {
			continue
		}

		lower := strings.ToLower(line)
		stop := false
		for _, marker := range tocEndMarkers {
			if strings.HasPrefix(lower, marker) {
				stop = true
				break
			}
		}
		if stop {
			break
		}

		entry, ok := classifyTocLine(line)
		if !ok {
			continue
		}

		// Duplicate TOC renderings repeat ordinals; first occurrence wins.
		if entry.Ordinal != "" {
			if seenOrdinals[entry.Ordinal] {
				continue
			}
			seenOrdinals[entry.Ordinal] = true
		} else {
			if seenSpecials[entry.NormalizedTitle] {
				continue
			}
			seenSpecials[entry.NormalizedTitle] = true
		}

		entries = append(entries, entry)
		tocEnd = lineStart + len(rawLine)
	}

	if len(entries) == 0 {
		return nil, 0
	}
	return entries, tocEnd
}

// classifyTocLine runs a line through the ordered entry patterns.
func classifyTocLine(line string) (TocEntry, bool) {
	// Page-number artifacts first: a bare "47" or "IV" line is never an
	// entry even though the roman pattern's title group would reject it
	// anyway.
	if pureDigitsRe.MatchString(line) || pureRomanRe.MatchString(line) {
		return TocEntry{}, false
	}

	if m := tocNumberedRe.FindStringSubmatch(line); m != nil {
		return newTocEntry(m[1], m[2]), true
	}
	if m := tocRomanRe.FindStringSubmatch(line); m != nil {
		return newTocEntry(m[1], m[2]), true
	}
	if m := tocSpecialRe.FindStringSubmatch(line); m != nil {
		return newTocEntry("", m[1]), true
	}
	return TocEntry{}, false
}

func newTocEntry(ordinal, rawTitle string) TocEntry {
	title := Normalize(rawTitle)
	return TocEntry{
		Ordinal:         ordinal,
		RawTitle:        rawTitle,
		Title:           title,
		NormalizedTitle: fold(title),
	}
}
