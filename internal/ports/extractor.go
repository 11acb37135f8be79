package ports

// ScoreCandidate holds the outcome of a single extraction strategy.
type ScoreCandidate struct {
	// Value is the candidate score after any range correction, within [0, 1].
	Value float64
	// Raw is the value as it appeared in the text, before correction.
	Raw float64
	// Clamped reports whether Raw was outside [0, 1] and had to be forced in.
	Clamped bool
}

// ScoreExtractor defines one strategy in the extraction fallback chain.
// Extract reports false when the strategy does not apply to the text,
// including when a matched marker carries a malformed value.
type ScoreExtractor interface {
	Name() string
	Extract(text string) (ScoreCandidate, bool)
}
