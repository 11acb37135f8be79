package judgment

import (
	"fmt"
	"regexp"
)

// Named pattern override keys accepted at construction.
const (
	PatternScore      = "score_pattern"
	PatternCategory   = "category_pattern"
	PatternReason     = "reason_pattern"
	PatternPercentage = "percentage_pattern"
	PatternNumber     = "number_pattern"
)

// Default extraction patterns. Input is normalized to half-width before
// matching, but full-width colons are still accepted for custom normalizers
// that skip punctuation folding.
const (
	defaultScorePattern      = `(?i)\*{0,2}(?:スコア|similarity\s*score|score)\*{0,2}\s*[:：]\s*(-?\d+(?:\.\d+)?)`
	defaultCategoryPattern   = `(?i)\*{0,2}(?:カテゴリー?|分類|category)\*{0,2}\s*[:：][ \t]*([^\n]+)`
	defaultReasonPattern     = `(?i)\*{0,2}(?:理由|根拠|reason)\*{0,2}\s*[:：][ \t]*([^\n]+(?:\n[ \t]+[^\n]+)*)`
	defaultPercentagePattern = `(-?\d+(?:\.\d+)?)%`
	defaultNumberPattern     = `-?\d+(?:\.\d+)?`
)

// PatternSet holds the compiled extraction rules used by the pipeline.
// Patterns are compiled once at construction and never mutated afterwards.
type PatternSet struct {
	Score      *regexp.Regexp
	Category   *regexp.Regexp
	Reason     *regexp.Regexp
	Percentage *regexp.Regexp
	Number     *regexp.Regexp
}

// DefaultPatternSet returns the engine defaults.
func DefaultPatternSet() *PatternSet {
	return &PatternSet{
		Score:      regexp.MustCompile(defaultScorePattern),
		Category:   regexp.MustCompile(defaultCategoryPattern),
		Reason:     regexp.MustCompile(defaultReasonPattern),
		Percentage: regexp.MustCompile(defaultPercentagePattern),
		Number:     regexp.MustCompile(defaultNumberPattern),
	}
}

// CompilePatternSet builds a PatternSet from named overrides. Keys absent
// from overrides keep the engine defaults; unknown keys and patterns that
// fail to compile are construction errors.
func CompilePatternSet(overrides map[string]string) (*PatternSet, error) {
	ps := DefaultPatternSet()
	for name, pattern := range overrides {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", name, pattern, err)
		}
		switch name {
		case PatternScore:
			ps.Score = re
		case PatternCategory:
			ps.Category = re
		case PatternReason:
			ps.Reason = re
		case PatternPercentage:
			ps.Percentage = re
		case PatternNumber:
			ps.Number = re
		default:
			return nil, fmt.Errorf("unknown pattern override %q", name)
		}
	}
	return ps, nil
}
