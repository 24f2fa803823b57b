package splitter

import (
	"regexp"
	"strings"
	"unicode"
)

// Title normalization re-inserts the word boundaries that PDF extraction
// drops from chapter titles ("OnceUponaTime" -> "Once Upon a Time").
//
// Normalize applies an ordered list of passes. The order is a contract:
// each pass assumes the ones before it have run, and several pairs are
// wrong in the other order. The comments on each pass state why it must
// precede the next.

// normalizePass is one string -> string transformation step.
type normalizePass struct {
	name  string
	apply func(string) string
}

var (
	// Uppercase run followed by an Upper+lower pair. Splitting here first
	// keeps acronym-like prefixes intact before the generic camel pass
	// would mis-split them ("ANewFamily" -> "A NewFamily").
	acronymBoundaryRe = regexp.MustCompile(`([A-Z])([A-Z][a-z])`)

	// Generic camelCase boundary. Runs last among the splitting passes.
	camelBoundaryRe = regexp.MustCompile(`([a-z])([A-Z])`)

	whitespaceRe = regexp.MustCompile(`\s+`)
)

// compoundConnectors are multi-word connector runs that must be expanded
// before the single-connector pass, or "ofthe" would be split as separate
// "of"/"the" matches with wrong spacing. Ordered; matched
// case-insensitively between a lowercase letter and an uppercase letter.
var compoundConnectors = []struct {
	joined, spaced string
}{
	{"ofthe", "of the"},
	{"inthe", "in the"},
	{"onthe", "on the"},
	{"tothe", "to the"},
	{"forthe", "for the"},
	{"andthe", "and the"},
	{"atthe", "at the"},
	{"uponthe", "upon the"},
	{"ofmy", "of my"},
	{"inmy", "in my"},
	{"tomy", "to my"},
}

// singleConnectors are connector words recognized between a lowercase
// letter and an uppercase letter. "a" carries no case boundary of its own
// ("OnceUponaTime") which is why the pattern only requires lowercase
// before and uppercase after.
var singleConnectors = []string{
	"of", "the", "and", "for", "in", "a", "to", "upon", "with", "at", "on",
}

var compoundConnectorRes = func() []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(compoundConnectors))
	for i, c := range compoundConnectors {
		res[i] = regexp.MustCompile(`(?i)([a-z])(` + c.joined + `)([A-Z])`)
	}
	return res
}()

var singleConnectorRes = func() []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(singleConnectors))
	for i, c := range singleConnectors {
		res[i] = regexp.MustCompile(`([a-z])(` + c + `)([A-Z])`)
	}
	return res
}()

// normalizePasses is the ordered transformation pipeline.
var normalizePasses = []normalizePass{
	{
		// Must run before the generic camel pass so "ANewFamily" splits
		// as "A New Family" and not at a wrong acronym boundary.
		name: "acronym-boundary",
		apply: func(s string) string {
			return acronymBoundaryRe.ReplaceAllString(s, "$1 $2")
		},
	},
	{
		// "IntoAdulthood" must become "Into Adulthood"; without this the
		// single-connector pass sees "...in" + "to..." and produces
		// "In to Adulthood". Must run before the connector passes.
		name:  "into-prefix",
		apply: splitIntoPrefix,
	},
	{
		// Compound connectors before singles (see compoundConnectors).
		name:  "compound-connectors",
		apply: splitCompoundConnectors,
	},
	{
		name:  "single-connectors",
		apply: splitSingleConnectors,
	},
	{
		// Generic boundary last: the connector passes have already claimed
		// the boundaries where a plain lower/Upper split would be wrong.
		name: "camel-boundary",
		apply: func(s string) string {
			return camelBoundaryRe.ReplaceAllString(s, "$1 $2")
		},
	},
	{
		name: "collapse-whitespace",
		apply: func(s string) string {
			return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
		},
	},
}

// Normalize splits a concatenated or camelCased title into a
// human-readable phrase. Pure and deterministic.
func Normalize(text string) string {
	for _, pass := range normalizePasses {
		text = pass.apply(text)
	}
	return text
}

// fold returns the lowercase, whitespace-collapsed form used for
// comparisons between TOC titles and body candidates.
func fold(text string) string {
	text = strings.ToLower(text)
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

func splitIntoPrefix(s string) string {
	if len(s) > 4 && strings.HasPrefix(strings.ToLower(s), "into") {
		if r := rune(s[4]); unicode.IsUpper(r) {
			return s[:4] + " " + s[4:]
		}
	}
	return s
}

func splitCompoundConnectors(s string) string {
	for i, c := range compoundConnectors {
		s = compoundConnectorRes[i].ReplaceAllString(s, "${1} "+c.spaced+" ${3}")
	}
	return s
}

func splitSingleConnectors(s string) string {
	for i, c := range singleConnectors {
		s = singleConnectorRes[i].ReplaceAllString(s, "${1} "+c+" ${3}")
	}
	return s
}
