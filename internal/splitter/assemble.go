package splitter

import (
	"fmt"
	"sort"
	"strings"
)

// ChapterAssembler: order located chapters by body position, slice the
// text into contiguous per-chapter spans, filter out spans too short to be
// real chapters, and assign stable numbering.

const (
	// PrologueNumber and EpilogueNumber are sentinel chapter numbers for
	// structurally special sections. Known limitation carried from
	// production: a book with 900 or more real chapters, or several
	// epilogue-titled sections, collides with the epilogue sentinel. The
	// numbering scheme does not attempt to resolve that.
	PrologueNumber = "00"
	EpilogueNumber = "900"

	// FullBookTitle is the synthetic chapter emitted when nothing
	// survives filtering. Degrading to a single whole-book file is the
	// documented terminal fallback, never an error.
	FullBookTitle = "Full Book"
)

// Assemble builds final chapters from located positions. minWords is the
// retention floor in words; located chapters whose span falls below it are
// dropped before numbering. If nothing survives, the whole document is
// returned as a single "Full Book" chapter.
func Assemble(located []LocatedChapter, text string, minWords int) []Chapter {
	ordered := make([]LocatedChapter, len(located))
	copy(ordered, located)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].BodyPosition < ordered[j].BodyPosition
	})

	var chapters []Chapter
	for i, lc := range ordered {
		end := len(text)
		if i+1 < len(ordered) {
			end = ordered[i+1].BodyPosition
		}
		content := strings.TrimSpace(text[lc.BodyPosition:end])
		wordCount := len(strings.Fields(content))
		if wordCount < minWords {
			continue
		}
		chapters = append(chapters, Chapter{
			Title:          lc.Entry.Display(),
			Content:        content,
			WordCount:      wordCount,
			SourceStrategy: string(lc.Strategy),
			bodyPosition:   lc.BodyPosition,
		})
	}

	if len(chapters) == 0 {
		return []Chapter{fullBookChapter(text)}
	}

	assignNumbers(chapters)
	return chapters
}

// assignNumbers gives prologue/epilogue their sentinels and everything
// else sequential zero-padded numbers in document order among the
// retained chapters.
func assignNumbers(chapters []Chapter) {
	seq := 1
	for i := range chapters {
		lower := strings.ToLower(chapters[i].Title)
		switch {
		case strings.Contains(lower, "prologue"):
			chapters[i].Number = PrologueNumber
		case strings.Contains(lower, "epilogue"):
			chapters[i].Number = EpilogueNumber
		default:
			chapters[i].Number = fmt.Sprintf("%02d", seq)
			seq++
		}
	}
}

func fullBookChapter(text string) Chapter {
	content := strings.TrimSpace(text)
	return Chapter{
		Number:         PrologueNumber,
		Title:          FullBookTitle,
		Content:        content,
		WordCount:      len(strings.Fields(content)),
		SourceStrategy: "fallback",
	}
}
