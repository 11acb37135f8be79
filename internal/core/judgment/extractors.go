package judgment

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/kabayan/go_score_parser/internal/ports"
)

// Strategy names, in fallback order.
const (
	StrategyScoreMarker    = "score_marker"
	StrategyPercentage     = "percentage"
	StrategyNumber         = "number"
	StrategyCategoryMarker = "category_marker"
	StrategyKeyword        = "keyword"
)

// similarityKeywords are the vague-similarity tokens used by the keyword
// fallback and the confidence heuristic.
var similarityKeywords = []string{
	"類似", "一致", "似ている", "同じ", "近い",
	"similar", "close", "same",
}

func containsSimilarityKeyword(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range similarityKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// clampCandidate forces a raw value into [0, 1], recording whether a
// correction happened.
func clampCandidate(raw float64) ports.ScoreCandidate {
	c := ports.ScoreCandidate{Value: raw, Raw: raw}
	if raw < 0 {
		c.Value = 0
		c.Clamped = true
	} else if raw > 1 {
		c.Value = 1
		c.Clamped = true
	}
	return c
}

// newExtractorChain builds the ordered fallback chain. First success wins;
// the order is fixed by the engine, not configurable.
func newExtractorChain(patterns *PatternSet, categories *CategoryMap) []ports.ScoreExtractor {
	return []ports.ScoreExtractor{
		&scoreMarkerExtractor{re: patterns.Score},
		&percentageExtractor{re: patterns.Percentage},
		&lastNumberExtractor{re: patterns.Number},
		&categoryExtractor{re: patterns.Category, categories: categories},
		&keywordExtractor{},
	}
}

// scoreMarkerExtractor matches an explicit labeled score field.
type scoreMarkerExtractor struct {
	re *regexp.Regexp
}

func (e *scoreMarkerExtractor) Name() string { return StrategyScoreMarker }

func (e *scoreMarkerExtractor) Extract(text string) (ports.ScoreCandidate, bool) {
	m := e.re.FindStringSubmatch(text)
	if len(m) < 2 {
		return ports.ScoreCandidate{}, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		// Malformed value inside a matched marker: fall through to the
		// next strategy rather than failing the parse.
		return ports.ScoreCandidate{}, false
	}
	return clampCandidate(v), true
}

// percentageExtractor matches a number immediately followed by a percent sign.
type percentageExtractor struct {
	re *regexp.Regexp
}

func (e *percentageExtractor) Name() string { return StrategyPercentage }

func (e *percentageExtractor) Extract(text string) (ports.ScoreCandidate, bool) {
	m := e.re.FindStringSubmatch(text)
	if len(m) < 2 {
		return ports.ScoreCandidate{}, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return ports.ScoreCandidate{}, false
	}
	return clampCandidate(v / 100), true
}

// lastNumberExtractor scans for standalone numeric tokens and takes the
// rightmost one, on the assumption that later restatements are
// authoritative. Values in (1, 100] are read as percentages.
type lastNumberExtractor struct {
	re *regexp.Regexp
}

func (e *lastNumberExtractor) Name() string { return StrategyNumber }

func (e *lastNumberExtractor) Extract(text string) (ports.ScoreCandidate, bool) {
	tokens := e.re.FindAllString(text, -1)
	for i := len(tokens) - 1; i >= 0; i-- {
		v, err := strconv.ParseFloat(tokens[i], 64)
		if err != nil {
			continue
		}
		switch {
		case v > 100:
			return ports.ScoreCandidate{Value: 1, Raw: v, Clamped: true}, true
		case v > 1:
			return ports.ScoreCandidate{Value: v / 100, Raw: v}, true
		default:
			return clampCandidate(v), true
		}
	}
	return ports.ScoreCandidate{}, false
}

// categoryExtractor resolves a score from a category label when the text
// carries no numeric token at all.
type categoryExtractor struct {
	re         *regexp.Regexp
	categories *CategoryMap
}

func (e *categoryExtractor) Name() string { return StrategyCategoryMarker }

func (e *categoryExtractor) Extract(text string) (ports.ScoreCandidate, bool) {
	label, ok := findCategory(e.re, e.categories, text)
	if !ok {
		return ports.ScoreCandidate{}, false
	}
	return ports.ScoreCandidate{Value: e.categories.Score(label)}, true
}

// keywordExtractor is the last resort: any vague-similarity keyword maps
// to the weak-match tier.
type keywordExtractor struct{}

func (e *keywordExtractor) Name() string { return StrategyKeyword }

func (e *keywordExtractor) Extract(text string) (ports.ScoreCandidate, bool) {
	if !containsSimilarityKeyword(text) {
		return ports.ScoreCandidate{}, false
	}
	return ports.ScoreCandidate{Value: DefaultCategoryScore}, true
}

// findCategory resolves a category label from the text: explicit marker
// first, then a longest-label scan of the free text.
func findCategory(re *regexp.Regexp, categories *CategoryMap, text string) (string, bool) {
	if m := re.FindStringSubmatch(text); len(m) >= 2 {
		label := strings.TrimRight(strings.TrimSpace(m[1]), "。.*")
		if label != "" {
			return label, true
		}
	}
	return categories.FindLabel(text)
}
