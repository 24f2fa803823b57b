package splitter

import "log/slog"

// Defaults for Options. The score weights and thresholds are empirically
// chosen values carried over from production tuning; they are exposed as
// options rather than constants because no derivation exists for them.
const (
	DefaultMinChapterWords  = 500
	DefaultFallbackMinWords = 50
	DefaultTocWindow        = 3000
	MaxTocWindow            = 15000
	DefaultTocScanWindow    = 10000

	DefaultSimilarityThreshold  = 0.80
	DefaultHeaderUppercaseRatio = 0.70
	DefaultAcceptThreshold      = 0.75
)

// ScoreWeights are the quality-score component weights. They should sum
// to 1.0.
type ScoreWeights struct {
	Length     float64 // word count tiers
	Sentences  float64 // sentence terminator density
	Title      float64 // title validity
	Position   float64 // nonzero body position
	Repetition float64 // absence of token repetition anomalies
}

// DefaultScoreWeights returns the production weighting.
func DefaultScoreWeights() ScoreWeights {
	return ScoreWeights{
		Length:     0.30,
		Sentences:  0.25,
		Title:      0.20,
		Position:   0.15,
		Repetition: 0.10,
	}
}

// Options tunes a splitting run. The zero value is usable; unset fields
// take the defaults above.
type Options struct {
	// MinChapterWords drops assembled chapters shorter than this many
	// words. Default 500.
	MinChapterWords int

	// FallbackMinWords is the lower word floor applied on the regex-only
	// fallback path, where short section markers are expected. Default 50.
	FallbackMinWords int

	// TocWindow bounds the prefix searched for the TOC anchor, in
	// characters. Default 3000, capped at MaxTocWindow.
	TocWindow int

	// TocScanWindow bounds the line scan after the anchor. Default 10000.
	TocScanWindow int

	// SimilarityThreshold is the minimum windowed similarity ratio for the
	// fuzzy fallback strategy. Default 0.80.
	SimilarityThreshold float64

	// HeaderUppercaseRatio is the uppercase fraction above which text
	// following a candidate match is treated as a running page header.
	// Default 0.70.
	HeaderUppercaseRatio float64

	// Weights are the quality-score component weights.
	Weights ScoreWeights

	// AcceptThreshold gates chapters into Result.Chapters; chapters below
	// it are reported in Result.LowConfidence. Default 0.75.
	AcceptThreshold float64

	// UserTitles, when set, is a caller-supplied chapter title list used
	// when automatic detection locates fewer than 80% of its entries.
	UserTitles []string

	// Logger receives progress observability. Results are communicated
	// through Result, never through the log. Defaults to slog.Default().
	Logger *slog.Logger
}

// withDefaults returns a copy of o with unset fields filled in.
func (o Options) withDefaults() Options {
	if o.MinChapterWords <= 0 {
		o.MinChapterWords = DefaultMinChapterWords
	}
	if o.FallbackMinWords <= 0 {
		o.FallbackMinWords = DefaultFallbackMinWords
	}
	if o.TocWindow <= 0 {
		o.TocWindow = DefaultTocWindow
	}
	if o.TocWindow > MaxTocWindow {
		o.TocWindow = MaxTocWindow
	}
	if o.TocScanWindow <= 0 {
		o.TocScanWindow = DefaultTocScanWindow
	}
	if o.SimilarityThreshold <= 0 {
		o.SimilarityThreshold = DefaultSimilarityThreshold
	}
	if o.HeaderUppercaseRatio <= 0 {
		o.HeaderUppercaseRatio = DefaultHeaderUppercaseRatio
	}
	if o.Weights == (ScoreWeights{}) {
		o.Weights = DefaultScoreWeights()
	}
	if o.AcceptThreshold <= 0 {
		o.AcceptThreshold = DefaultAcceptThreshold
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}
