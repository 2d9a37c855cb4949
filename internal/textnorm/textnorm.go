// Package textnorm extracts comparable numeric values from the free-text
// fee and rating strings found in harvested college records. The parsing
// rules are quirky on purpose: they match whatever the upstream sources
// emit, so keep them isolated here and covered by unit tests.
package textnorm

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// nirfRankCeiling is subtracted from a NIRF rank so that a lower rank
// produces a higher score. It only needs to exceed the largest plausible
// rank; the resulting values are ordered but not dimensionally comparable
// with score-style ratings.
const nirfRankCeiling = 1000

var (
	numberPattern  = regexp.MustCompile(`\d+(?:\.\d+)?`)
	integerPattern = regexp.MustCompile(`\d+`)
)

// ExtractFeeAmount returns the first numeric token embedded in a fee string.
// A thousand separator terminates the token, so "₹1,20,000 per year" yields
// 1, not 120000: the leading digit group decides the order. Strings without
// a number (and empty strings) return +Inf so that unparsable fees sort as
// the most expensive. The value is used for ordering only, never for
// arithmetic, and the ordering is deterministic rather than monetary.
func ExtractFeeAmount(text string) float64 {
	if text == "" {
		return math.Inf(1)
	}

	match := numberPattern.FindString(text)
	if match == "" {
		return math.Inf(1)
	}

	amount, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return math.Inf(1)
	}
	return amount
}

// Scale identifies which rating family a free-text rating belongs to.
type Scale int

const (
	// ScaleUnknown means the text carries no recognizable rating.
	ScaleUnknown Scale = iota
	// ScaleScore is a higher-is-better bounded rating such as "4.3/5".
	ScaleScore
	// ScaleRank is a lower-is-better ordinal such as "NIRF rank 12".
	ScaleRank
)

// RatingScale reports whether a rating string is rank-style or score-style.
// Used by formatters to label the value correctly.
func RatingScale(text string) Scale {
	if text == "" {
		return ScaleUnknown
	}
	if strings.Contains(strings.ToLower(text), "nirf") {
		return ScaleRank
	}
	return ScaleScore
}

// NormalizeRating converts a free-text rating onto a single ascending
// "better" scale. NIRF ranks are inverted (rank 1 scores highest); "/5"
// and "/10" score suffixes are stripped and the value parsed as a float.
// Any parse failure, or an absent rating, yields 0.
//
// The two families share an ordering, not a unit: callers may rely on the
// result being deterministic, nothing more.
func NormalizeRating(text string) float64 {
	if text == "" {
		return 0
	}

	if strings.Contains(strings.ToLower(text), "nirf") {
		match := integerPattern.FindString(text)
		if match == "" {
			return 0
		}
		rank, err := strconv.ParseFloat(match, 64)
		if err != nil {
			return 0
		}
		return nirfRankCeiling - rank
	}

	cleaned := strings.ReplaceAll(text, "/5", "")
	cleaned = strings.ReplaceAll(cleaned, "/10", "")
	cleaned = strings.TrimSpace(cleaned)

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return value
}
