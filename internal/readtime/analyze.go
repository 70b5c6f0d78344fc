// Package readtime estimates reading time and content difficulty for
// article HTML.
//
// All functions are pure: they operate only on their inputs, perform no I/O,
// and are safe to call concurrently.
package readtime

import (
	"regexp"
	"strings"
	"unicode"
)

// Reading speeds in words per minute for the four estimate tiers.
const (
	wpmSlow    = 150
	wpmAverage = 200
	wpmFast    = 300
	wpmSkim    = 450
)

// secondsPerImage is the fixed viewing-time penalty added per embedded image.
const secondsPerImage = 12

// Classifier thresholds. Complexity buckets on words-per-heading density,
// level buckets on average word length. These are code constants, not
// runtime configuration.
const (
	easyMaxWordsPerHeading    = 150.0
	complexMinWordsPerHeading = 400.0
	basicMaxAvgWordLength     = 4.5
	advancedMinAvgWordLength  = 5.5
)

// Complexity describes structural density of content (words per heading).
type Complexity string

const (
	ComplexityEasy    Complexity = "easy"
	ComplexityMedium  Complexity = "medium"
	ComplexityComplex Complexity = "complex"
)

// Level describes lexical difficulty of content (average word length).
type Level string

const (
	LevelBasic        Level = "basic"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// Times holds estimated reading durations in minutes at the four speed
// tiers. For any input, Skim <= Fast <= Average <= Slow.
type Times struct {
	Slow    float64 `json:"slow"`
	Average float64 `json:"average"`
	Fast    float64 `json:"fast"`
	Skim    float64 `json:"skim"`
}

// Analysis is the result of analyzing a content sample. It is recomputed
// from scratch on every Analyze call and never mutated.
type Analysis struct {
	Words      int        `json:"words"`
	Images     int        `json:"images"`
	Headings   int        `json:"headings"`
	Times      Times      `json:"times"`
	Complexity Complexity `json:"complexity"`
	Level      Level      `json:"level"`
}

// Empty reports whether the analysis describes a sample with no content.
// Callers should not present durations or classifications for empty samples.
func (a Analysis) Empty() bool {
	return a.Words == 0
}

type inputKind int

const (
	kindHTML inputKind = iota
	kindWordCount
)

// Input is a content sample to analyze: either raw HTML or a pre-computed
// word count. Exactly one source is authoritative; use the HTML or
// WordCount constructors.
type Input struct {
	kind  inputKind
	html  string
	words int
}

// HTML returns an Input whose word, image, and heading counts are derived
// from the given markup.
func HTML(raw string) Input {
	return Input{kind: kindHTML, html: raw}
}

// WordCount returns an Input with a pre-counted number of words and no
// markup. Negative counts are treated as zero. Image and heading counts are
// zero, and the level classification falls back to "basic" since there is
// no text to measure word length against.
func WordCount(n int) Input {
	if n < 0 {
		n = 0
	}
	return Input{kind: kindWordCount, words: n}
}

// Opening-tag matches over raw markup. This is a deliberate surface-level
// pattern match, not a strict parse, so that malformed HTML still counts.
var (
	imageTagPattern   = regexp.MustCompile(`(?i)<img\b`)
	headingTagPattern = regexp.MustCompile(`(?i)<h[1-6]\b`)
)

// Analyze computes word, image, and heading counts for the sample, reading
// time estimates at the four speed tiers, and the complexity and level
// classifications. It never fails: empty or malformed input degrades to a
// zero-content result rather than an error.
func Analyze(in Input) Analysis {
	var (
		plain    string
		words    int
		images   int
		headings int
	)

	switch in.kind {
	case kindWordCount:
		words = in.words
	case kindHTML:
		plain = ExtractText(in.html)
		words = len(strings.Fields(plain))
		images = len(imageTagPattern.FindAllStringIndex(in.html, -1))
		headings = len(headingTagPattern.FindAllStringIndex(in.html, -1))
	}

	return Analysis{
		Words:      words,
		Images:     images,
		Headings:   headings,
		Times:      TimesForCounts(words, images),
		Complexity: classifyComplexity(words, headings),
		Level:      classifyLevel(plain, words),
	}
}

// TimesForCounts computes the four reading time estimates from already-known
// word and image counts, for content whose analysis was persisted earlier.
func TimesForCounts(words, images int) Times {
	imageMinutes := float64(images) * secondsPerImage / 60

	return Times{
		Slow:    float64(words)/wpmSlow + imageMinutes,
		Average: float64(words)/wpmAverage + imageMinutes,
		Fast:    float64(words)/wpmFast + imageMinutes,
		Skim:    float64(words)/wpmSkim + imageMinutes,
	}
}

// classifyComplexity buckets on words-per-heading density. Content with no
// headings is treated as a single implicit section.
func classifyComplexity(words, headings int) Complexity {
	wordsPerHeading := float64(words)
	if headings > 0 {
		wordsPerHeading = float64(words) / float64(headings)
	}

	switch {
	case wordsPerHeading < easyMaxWordsPerHeading:
		return ComplexityEasy
	case wordsPerHeading > complexMinWordsPerHeading:
		return ComplexityComplex
	default:
		return ComplexityMedium
	}
}

// classifyLevel buckets on average word length: non-whitespace runes of the
// plain text divided by the word count. Punctuation attached to words is
// counted as part of them; correcting for it would silently move the
// classification boundaries, so the approximation is kept.
func classifyLevel(plain string, words int) Level {
	avg := 0.0
	if words > 0 {
		runes := 0
		for _, r := range plain {
			if !unicode.IsSpace(r) {
				runes++
			}
		}
		avg = float64(runes) / float64(words)
	}

	switch {
	case avg < basicMaxAvgWordLength:
		return LevelBasic
	case avg > advancedMinAvgWordLength:
		return LevelAdvanced
	default:
		return LevelIntermediate
	}
}
