package judgment

import "unicode/utf8"

// Confidence base tiers by structural completeness, and the additive
// adjustments on top. Downstream consumers depend on the exact numeric
// distribution, so these values are fixed.
const (
	confidenceFull      = 0.85 // score + category + reason
	confidencePartial   = 0.6  // score + exactly one of category/reason
	confidenceScoreOnly = 0.4  // score only
	confidenceWeak      = 0.2  // category/keyword-only path

	bonusLongResponse = 0.10 // response longer than longResponseRunes
	bonusKeyword      = 0.05 // generic similarity keyword present
	bonusBothMarkers  = 0.15 // explicit score and category markers co-occur

	longResponseRunes = 50
)

// confidenceScorer computes the rule-based confidence estimate. It is a
// pure function of the text and of which fields were found.
type confidenceScorer struct {
	patterns *PatternSet
}

// score returns the heuristic confidence for a parse outcome. hasScore is
// true only when a numeric strategy produced the score; a score resolved
// from a category label or keyword keeps the weak tier.
func (s *confidenceScorer) score(text string, hasScore, hasCategory, hasReason bool) float64 {
	var confidence float64
	switch {
	case hasScore && hasCategory && hasReason:
		confidence = confidenceFull
	case hasScore && (hasCategory || hasReason):
		confidence = confidencePartial
	case hasScore:
		confidence = confidenceScoreOnly
	default:
		confidence = confidenceWeak
	}

	if utf8.RuneCountInString(text) > longResponseRunes {
		confidence += bonusLongResponse
	}
	if containsSimilarityKeyword(text) {
		confidence += bonusKeyword
	}
	if s.patterns.Score.MatchString(text) && s.patterns.Category.MatchString(text) {
		confidence += bonusBothMarkers
	}

	if confidence > 1 {
		confidence = 1
	}
	return confidence
}
