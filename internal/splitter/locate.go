package splitter

import (
	"regexp"
	"strings"
	"unicode"
)

// BodyLocator: for one TOC entry, find the best-matching chapter start in
// the body text. Strategies form an ordered cascade; the first acceptable
// position wins. All searches run over text[searchStart:] — the region
// after the detected TOC block — which is the single invariant that keeps
// the TOC's own listing from being matched as a chapter start.

// structuralMatcher is one strategy in the cascade. It returns the matched
// position, relative to the search region, when it succeeds.
type structuralMatcher struct {
	name     MatchStrategy
	score    float64
	match    func(lc *locateContext, ordinal, title, normalized string) (int, bool)
	ordinals bool // true: requires an ordinal; false: requires none
}

// locateContext carries the per-entry search state shared by matchers.
// body is the search region text[start:].
type locateContext struct {
	body  string
	start int
	opts  Options
}

// structuralMatchers is the cascade, in order. Exact before normalized
// before flexible: each later strategy is more permissive and would accept
// positions an earlier one matches more precisely.
var structuralMatchers = []structuralMatcher{
	{name: MatchExact, score: 1.0, ordinals: true, match: matchExact},
	{name: MatchNormalized, score: 0.95, ordinals: true, match: matchNormalizedLine},
	{name: MatchFlexible, score: 0.90, ordinals: true, match: matchFlexibleWhitespace},
	{name: MatchExact, score: 1.0, ordinals: false, match: matchNoOrdinal},
}

// Locate finds entry's chapter start in text at or after searchStart.
// Returns false when no strategy succeeds; the caller reports the entry as
// unmatched and proceeds — partial results are expected, not a failure of
// the run.
func Locate(entry TocEntry, text string, searchStart int, opts Options) (LocatedChapter, bool) {
	opts = opts.withDefaults()
	if searchStart > len(text) {
		searchStart = len(text)
	}
	lc := &locateContext{body: text[searchStart:], start: searchStart, opts: opts}

	// The entry's own split title first, then camelCase variants of the
	// raw title regenerated under different boundary rules. Extraction
	// sometimes concatenates the TOC and the body heading differently.
	titles := append([]string{entry.Title}, camelVariants(entry.RawTitle, entry.Title)...)

	for _, title := range titles {
		normalized := fold(title)
		for _, m := range structuralMatchers {
			if m.ordinals != (entry.Ordinal != "") {
				continue
			}
			if pos, ok := m.match(lc, entry.Ordinal, title, normalized); ok {
				return LocatedChapter{
					Entry:        entry,
					BodyPosition: searchStart + pos,
					Strategy:     m.name,
					Score:        m.score,
				}, true
			}
		}
	}

	if pos, ratio, ok := matchSimilarity(lc, entry.Title); ok {
		return LocatedChapter{
			Entry:        entry,
			BodyPosition: searchStart + pos,
			Strategy:     MatchFuzzy,
			Score:        ratio,
		}, true
	}

	return LocatedChapter{}, false
}

// matchExact looks for the literal ordinal + newline + title sequence,
// optionally preceded by a bare page-number line.
func matchExact(lc *locateContext, ordinal, title, _ string) (int, bool) {
	re := regexp.MustCompile(`(?i)(?:\d+\s*\n\s*)?` + regexp.QuoteMeta(ordinal) + `\s*\n\s*` + regexp.QuoteMeta(title))
	for _, m := range re.FindAllStringIndex(lc.body, -1) {
		if lc.isPageHeader(m[1]) {
			continue
		}
		return m[0], true
	}
	return 0, false
}

// matchNormalizedLine captures whatever line follows the ordinal and
// accepts it if it normalizes to the entry's title.
func matchNormalizedLine(lc *locateContext, ordinal, _, normalized string) (int, bool) {
	re := regexp.MustCompile(`(?i)(?:\d+\s*\n\s*)?` + regexp.QuoteMeta(ordinal) + `\s*\n\s*([^\n]+)`)
	for _, m := range re.FindAllStringSubmatchIndex(lc.body, -1) {
		candidate := lc.body[m[2]:m[3]]
		if fold(Normalize(candidate)) != normalized {
			continue
		}
		if lc.isPageHeader(m[1]) {
			continue
		}
		return m[0], true
	}
	return 0, false
}

// matchFlexibleWhitespace is the exact match with \s+ between title words,
// tolerating inconsistent line wrapping.
func matchFlexibleWhitespace(lc *locateContext, ordinal, title, _ string) (int, bool) {
	words := strings.Fields(title)
	if len(words) == 0 {
		return 0, false
	}
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	re := regexp.MustCompile(`(?i)(?:\d+\s*\n\s*)?` + regexp.QuoteMeta(ordinal) + `\s*\n\s*` + strings.Join(quoted, `\s+`))
	for _, m := range re.FindAllStringIndex(lc.body, -1) {
		if lc.isPageHeader(m[1]) {
			continue
		}
		return m[0], true
	}
	return 0, false
}

// matchNoOrdinal locates special sections (Prologue, Epilogue) that have
// no ordinal: the title alone on its own line. A matched line whose own
// casing is header-dominated is a running page header repeating the
// section name, not the section start.
func matchNoOrdinal(lc *locateContext, _, title, _ string) (int, bool) {
	re := regexp.MustCompile(`(?i)\n(` + regexp.QuoteMeta(title) + `)\s*\n`)
	titleIsUpper := uppercaseDominated(title, lc.opts.HeaderUppercaseRatio)
	for _, m := range re.FindAllStringSubmatchIndex(lc.body, -1) {
		matched := lc.body[m[2]:m[3]]
		if !titleIsUpper && uppercaseDominated(matched, lc.opts.HeaderUppercaseRatio) {
			continue
		}
		return m[0] + 1, true
	}
	return 0, false
}

// matchSimilarity is the last-resort fuzzy strategy: slide a
// title-length window across the search region and accept the
// highest-scoring window above the threshold.
func matchSimilarity(lc *locateContext, title string) (int, float64, bool) {
	pattern := strings.ToLower(title)
	if len(pattern) == 0 || len(lc.body) < len(pattern) {
		return 0, 0, false
	}
	body := strings.ToLower(lc.body)

	step := len(pattern) / 4
	if step < 1 {
		step = 1
	}

	bestPos, bestRatio := -1, 0.0
	for i := 0; i+len(pattern) <= len(body); i += step {
		ratio := similarityRatio(pattern, body[i:i+len(pattern)])
		if ratio > bestRatio {
			bestRatio = ratio
			bestPos = i
		}
	}

	if bestPos < 0 || bestRatio < lc.opts.SimilarityThreshold {
		return 0, 0, false
	}
	return bestPos, bestRatio, true
}

// camelVariants regenerates spacing variants of the raw TOC title:
// spaces removed, then re-split at lower->Upper and at Upper->Upper+lower
// boundaries. Variants equal to the already-tried title are dropped.
func camelVariants(raw, tried string) []string {
	camel := strings.ReplaceAll(raw, " ", "")
	candidates := []string{
		camel,
		camelBoundaryRe.ReplaceAllString(camel, "$1 $2"),
		acronymBoundaryRe.ReplaceAllString(camel, "$1 $2"),
	}
	var out []string
	seen := map[string]bool{tried: true}
	for _, c := range candidates {
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// isPageHeader inspects up to 100 characters after a match. Running page
// headers are set in caps; if the first following line's letters are
// dominated by uppercase the candidate is a header occurrence, and the
// search continues past it.
func (lc *locateContext) isPageHeader(after int) bool {
	end := after + 100
	if end > len(lc.body) {
		end = len(lc.body)
	}
	window := strings.TrimSpace(lc.body[after:end])
	if window == "" {
		return false
	}
	firstLine := window
	if i := strings.IndexByte(window, '\n'); i >= 0 {
		firstLine = window[:i]
	}
	return uppercaseDominated(firstLine, lc.opts.HeaderUppercaseRatio)
}

// uppercaseDominated reports whether s's alphabetic characters exceed the
// given uppercase ratio.
func uppercaseDominated(s string, ratio float64) bool {
	var upper, lower int
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper++
		case unicode.IsLower(r):
			lower++
		}
	}
	if upper == 0 {
		return false
	}
	return float64(upper)/(float64(upper+lower)+0.001) > ratio
}

// similarityRatio is a normalized edit-distance ratio in [0,1]: 1 minus
// the Levenshtein distance over the longer length. Two-row computation.
func similarityRatio(a, b string) float64 {
	if a == b {
		return 1.0
	}
	longer := len(a)
	if len(b) > longer {
		longer = len(b)
	}
	if longer == 0 {
		return 1.0
	}
	return 1.0 - float64(levenshtein(a, b))/float64(longer)
}

func levenshtein(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	ar := []rune(a)
	br := []rune(b)

	prev := make([]int, len(br)+1)
	curr := make([]int, len(br)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ar); i++ {
		curr[0] = i
		for j := 1; j <= len(br); j++ {
			cost := 1
			if ar[i-1] == br[j-1] {
				cost = 0
			}
			curr[j] = min(min(prev[j]+1, curr[j-1]+1), prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(br)]
}
