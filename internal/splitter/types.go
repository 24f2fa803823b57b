// Package splitter detects and reconciles chapter boundaries in extracted
// book text. It locates the table of contents, matches TOC entries against
// the body despite camelCase concatenation and extraction noise, assembles
// per-chapter spans, and scores each chapter's quality.
//
// The package is pure computation over an in-memory string: no I/O, no
// network, no randomness. A run is fully determined by its input text and
// options.
package splitter

// TocEntry is a single parsed table-of-contents line.
type TocEntry struct {
	// Ordinal is the chapter's TOC ordinal ("3", "IV"). Empty for special
	// sections like Prologue and Epilogue.
	Ordinal string

	// RawTitle is the TOC's literal title text, possibly concatenated
	// ("OnceUponaTime").
	RawTitle string

	// Title is the human-readable, camelCase-split form of RawTitle.
	Title string

	// NormalizedTitle is the lowercase, whitespace-collapsed form of Title
	// used for comparison.
	NormalizedTitle string
}

// Display returns the entry as it would appear as a chapter heading.
func (e TocEntry) Display() string {
	if e.Ordinal == "" {
		return e.Title
	}
	return e.Ordinal + " " + e.Title
}

// MatchStrategy identifies which matching strategy located a chapter.
type MatchStrategy string

const (
	// MatchExact is a literal substring match of ordinal + title.
	MatchExact MatchStrategy = "exact"
	// MatchNormalized matched after normalizing the candidate line.
	MatchNormalized MatchStrategy = "normalized"
	// MatchFlexible matched with flexible whitespace between title words.
	MatchFlexible MatchStrategy = "flexible-boundary"
	// MatchFuzzy matched via windowed string similarity.
	MatchFuzzy MatchStrategy = "fuzzy"
	// MatchPattern is used by the regex-only fallback scanner, which runs
	// when no TOC is found. It is not part of the BodyLocator cascade.
	MatchPattern MatchStrategy = "pattern"
	// MatchUserProvided is used when chapters come from a caller-supplied
	// title list.
	MatchUserProvided MatchStrategy = "user_provided"
)

// LocatedChapter is a TOC entry matched to a position in the body text.
// At most one LocatedChapter exists per TocEntry; the first accepted match
// wins.
type LocatedChapter struct {
	Entry        TocEntry
	BodyPosition int
	Strategy     MatchStrategy
	Score        float64
}

// Chapter is a final assembled chapter.
type Chapter struct {
	// Number is the zero-padded sequence ("01", "02"), or a sentinel:
	// "00" for prologue, "900" for epilogue.
	Number string

	// Title is the human-readable chapter heading.
	Title string

	// Content is a slice of the source text, trimmed. Never mutated.
	Content string

	// WordCount is len(strings.Fields(Content)), recomputed at assembly.
	WordCount int

	// Confidence is the quality score in [0,1], assigned post-assembly.
	Confidence float64

	// SourceStrategy records how the chapter start was found.
	SourceStrategy string

	// bodyPosition is the chapter's start offset in the source text. Kept
	// for scoring: a chapter at offset 0 is usually a degenerate result.
	bodyPosition int
}

// Result is the outcome of a full splitting run. Partial results are
// normal: unmatched TOC entries and low-confidence chapters are surfaced
// so a reviewer can decide, rather than silently discarded.
type Result struct {
	// Chapters are accepted chapters in document order.
	Chapters []Chapter

	// LowConfidence are assembled chapters scoring below the acceptance
	// threshold. They are reported, not dropped.
	LowConfidence []Chapter

	// Unmatched are TOC entries that could not be located in the body.
	Unmatched []TocEntry

	// TocFound reports whether a table of contents was detected.
	TocFound bool

	// UsedFallback reports whether the regex-only scanner produced the
	// chapter boundaries.
	UsedFallback bool

	// UsedUserTitles reports whether a caller-supplied chapter list
	// replaced automatic detection.
	UsedUserTitles bool
}

// Accuracy returns the fraction of TOC entries that became accepted
// chapters. Returns 0 when no TOC was found.
func (r Result) Accuracy() float64 {
	total := len(r.Chapters) + len(r.LowConfidence) + len(r.Unmatched)
	if !r.TocFound || total == 0 {
		return 0
	}
	return float64(len(r.Chapters)+len(r.LowConfidence)) / float64(total)
}
