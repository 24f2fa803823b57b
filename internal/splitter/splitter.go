package splitter

import (
	"strings"
)

// Run executes the full splitting pipeline on text:
//
//	text -> ExtractToc -> Locate (per entry) -> Assemble -> Score
//
// Running twice on the same text yields identical results; there is no
// randomness anywhere in the pipeline. The per-entry locate loop is
// sequential on purpose — book-length documents do not need more.
func Run(text string, opts Options) Result {
	opts = opts.withDefaults()
	log := opts.Logger

	var result Result

	entries, tocEnd := ExtractToc(text, opts)
	result.TocFound = len(entries) > 0

	var located []LocatedChapter
	if result.TocFound {
		log.Info("toc extracted", "entries", len(entries), "toc_end", tocEnd)
		for _, entry := range entries {
			lc, ok := Locate(entry, text, tocEnd, opts)
			if !ok {
				result.Unmatched = append(result.Unmatched, entry)
				log.Warn("toc entry not found in body", "title", entry.Display())
				continue
			}
			located = append(located, lc)
			log.Debug("chapter located",
				"title", entry.Display(),
				"position", lc.BodyPosition,
				"strategy", lc.Strategy)
		}
		log.Info("chapter location complete",
			"located", len(located), "unmatched", len(result.Unmatched))
	} else {
		log.Info("no toc found, scanning for chapter patterns")
	}

	minWords := opts.MinChapterWords
	if len(located) == 0 {
		// No TOC, or a TOC that matched nothing: regex-only fallback.
		located = ScanPatterns(text)
		result.UsedFallback = true
		minWords = opts.FallbackMinWords
		log.Info("pattern scan complete", "markers", len(located))
	}

	chapters := Assemble(located, text, minWords)
	result.Chapters, result.LowConfidence = gate(chapters, opts)

	// When the caller supplied a chapter list and automatic detection
	// covered less than 80% of it, re-split on the user's titles.
	if len(opts.UserTitles) > 0 &&
		float64(len(result.Chapters)) < 0.8*float64(len(opts.UserTitles)) {
		log.Info("automatic detection incomplete, using provided chapter list",
			"provided", len(opts.UserTitles), "detected", len(result.Chapters))
		if user := locateUserTitles(text, opts.UserTitles); len(user) > 0 {
			chapters = Assemble(user, text, opts.FallbackMinWords)
			for i := range chapters {
				chapters[i].Confidence = 1.0
			}
			result.Chapters = chapters
			result.LowConfidence = nil
			result.UsedUserTitles = true
		}
	}

	return result
}

// gate scores assembled chapters and separates accepted from
// low-confidence ones. The degenerate single "Full Book" chapter bypasses
// the gate: the never-return-nothing guarantee outranks its score.
func gate(chapters []Chapter, opts Options) (accepted, low []Chapter) {
	degenerate := len(chapters) == 1 && chapters[0].Title == FullBookTitle

	for _, ch := range chapters {
		ch.Confidence = Score(ch, opts.Weights)
		if degenerate || ch.Confidence >= opts.AcceptThreshold {
			accepted = append(accepted, ch)
		} else {
			low = append(low, ch)
			opts.Logger.Warn("low confidence chapter",
				"title", ch.Title, "score", ch.Confidence)
		}
	}
	return accepted, low
}

// locateUserTitles finds caller-supplied titles in the text with a plain
// find cascade: literal, then case-insensitive.
func locateUserTitles(text string, titles []string) []LocatedChapter {
	lower := strings.ToLower(text)
	var located []LocatedChapter
	for _, title := range titles {
		pos := strings.Index(text, title)
		if pos < 0 {
			pos = strings.Index(lower, strings.ToLower(title))
		}
		if pos < 0 {
			continue
		}
		located = append(located, LocatedChapter{
			Entry: TocEntry{
				RawTitle:        title,
				Title:           title,
				NormalizedTitle: fold(title),
			},
			BodyPosition: pos,
			Strategy:     MatchUserProvided,
			Score:        1.0,
		})
	}
	return located
}
