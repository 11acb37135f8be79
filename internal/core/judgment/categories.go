package judgment

import (
	"sort"
	"strings"
)

// The five similarity categories, ordered from exact match down.
const (
	CategoryExact    = "完全一致"
	CategoryVeryHigh = "非常に類似"
	CategoryHigh     = "類似"
	CategoryModerate = "やや類似"
	CategoryLow      = "低い類似度"
)

// DefaultCategoryScore is returned for labels outside the fixed table.
const DefaultCategoryScore = 0.5

func defaultCategoryScores() map[string]float64 {
	return map[string]float64{
		CategoryExact:    1.0,
		CategoryVeryHigh: 0.8,
		CategoryHigh:     0.6,
		CategoryModerate: 0.4,
		CategoryLow:      0.2,
	}
}

// CategoryMap is the bidirectional mapping between category labels and
// canonical scores. It is immutable for the lifetime of a parser instance.
type CategoryMap struct {
	scores map[string]float64
	// labels sorted by descending rune length so that free-text scanning
	// prefers the longest matching label over its substrings.
	labels []string
}

// NewCategoryMap creates a CategoryMap with the canonical score table.
// Entries in overrides replace the canonical score for that label; the
// label set itself is fixed.
func NewCategoryMap(overrides map[string]float64) *CategoryMap {
	scores := defaultCategoryScores()
	for label, score := range overrides {
		if _, known := scores[label]; known {
			scores[label] = score
		}
	}

	labels := make([]string, 0, len(scores))
	for label := range scores {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		li, lj := len([]rune(labels[i])), len([]rune(labels[j]))
		if li != lj {
			return li > lj
		}
		return labels[i] < labels[j]
	})

	return &CategoryMap{scores: scores, labels: labels}
}

// Score returns the canonical score for a category label, or
// DefaultCategoryScore for unrecognized labels. Total function.
func (m *CategoryMap) Score(category string) float64 {
	if score, ok := m.scores[category]; ok {
		return score
	}
	return DefaultCategoryScore
}

// FromScore resolves a score to its category via fixed thresholds.
func (m *CategoryMap) FromScore(score float64) string {
	switch {
	case score >= 0.95:
		return CategoryExact
	case score >= 0.8:
		return CategoryVeryHigh
	case score >= 0.6:
		return CategoryHigh
	case score >= 0.4:
		return CategoryModerate
	default:
		return CategoryLow
	}
}

// FindLabel scans free text for category labels and returns the longest
// one present.
func (m *CategoryMap) FindLabel(text string) (string, bool) {
	for _, label := range m.labels {
		if strings.Contains(text, label) {
			return label, true
		}
	}
	return "", false
}
