package splitter

import (
	"regexp"
	"sort"
	"strings"
)

// Regex-only fallback scanner, used when no TOC is found (or when TOC
// matching located nothing). It runs a pattern cascade over the whole
// text for recognizable chapter markers. Distinct from TOC-driven
// matching: no reconciliation happens here, just literal marker spotting.

const fallbackDedupDistance = 500

var fallbackPatterns = []struct {
	re    *regexp.Regexp
	title func(m []string) string
}{
	{
		re:    regexp.MustCompile(`(?m)^(Prologue|PROLOGUE)\s*$`),
		title: func([]string) string { return "Prologue" },
	},
	{
		// Part markers: "II Foster Care".
		re:    regexp.MustCompile(`(?m)^([IVX]+)\s+([A-Z][^\n]{5,40})$`),
		title: func(m []string) string { return m[1] + " " + strings.TrimSpace(m[2]) },
	},
	{
		// Bare number line followed by a titled line.
		re:    regexp.MustCompile(`(?m)^(\d+)\s*\n\s*([A-Z][^\n]{5,50})$`),
		title: func(m []string) string { return m[1] + " " + strings.TrimSpace(m[2]) },
	},
	{
		re:    regexp.MustCompile(`(?mi)^Chapter\s+(\d+)[:\s]+([^\n]{3,50})$`),
		title: func(m []string) string { return "Chapter " + m[1] + ": " + strings.TrimSpace(m[2]) },
	},
	{
		re:    regexp.MustCompile(`(?m)^(Epilogue|EPILOGUE)\s*$`),
		title: func([]string) string { return "Epilogue" },
	},
}

// ScanPatterns finds chapter markers by regex alone and returns them as
// located chapters in document order. Candidates within 500 characters of
// the previous accepted one are duplicate renderings (TOC echo, running
// header) and are dropped.
func ScanPatterns(text string) []LocatedChapter {
	type hit struct {
		pos   int
		title string
	}
	var hits []hit

	for _, p := range fallbackPatterns {
		idxs := p.re.FindAllStringSubmatchIndex(text, -1)
		for _, idx := range idxs {
			groups := make([]string, 0, len(idx)/2)
			for g := 0; g < len(idx); g += 2 {
				if idx[g] < 0 {
					groups = append(groups, "")
					continue
				}
				groups = append(groups, text[idx[g]:idx[g+1]])
			}
			hits = append(hits, hit{pos: idx[0], title: p.title(groups)})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })

	var located []LocatedChapter
	lastPos := -fallbackDedupDistance
	for _, h := range hits {
		if h.pos-lastPos < fallbackDedupDistance {
			continue
		}
		lastPos = h.pos
		located = append(located, LocatedChapter{
			Entry: TocEntry{
				RawTitle:        h.title,
				Title:           h.title,
				NormalizedTitle: fold(h.title),
			},
			BodyPosition: h.pos,
			Strategy:     MatchPattern,
			Score:        0.85,
		})
	}
	return located
}
