package domain

import (
	"errors"
	"fmt"
)

// ParsedScore holds the structured outcome of parsing one judgment response.
// Values are created once per parse call and not mutated afterwards, except
// for LineNumber which may be attached when the source line is known.
type ParsedScore struct {
	// Score is the similarity score, always within [0, 1].
	Score float64 `json:"score"`
	// Category is the resolved similarity category label, non-empty on success.
	Category string `json:"category"`
	// Reason is the extracted justification text.
	Reason string `json:"reason"`
	// Confidence indicates how explicitly structured the response was, within [0, 1].
	Confidence float64 `json:"confidence"`
	// RawResponse is the original response text, before normalization.
	RawResponse string `json:"raw_response"`
	// LineNumber is the 1-based source line, when the text came from a known line.
	LineNumber *int `json:"line_number,omitempty"`
}

// Map exposes the record as a plain key/value mapping for downstream
// exporters. line_number is present only when set.
func (p ParsedScore) Map() map[string]interface{} {
	m := map[string]interface{}{
		"score":      p.Score,
		"category":   p.Category,
		"reason":     p.Reason,
		"confidence": p.Confidence,
	}
	if p.LineNumber != nil {
		m["line_number"] = *p.LineNumber
	}
	return m
}

// Statistics holds running parse counters for one parser instance.
type Statistics struct {
	Total      int `json:"total"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
}

// SuccessRate returns successful/total, guarding against division by zero.
func (s Statistics) SuccessRate() float64 {
	total := s.Total
	if total < 1 {
		total = 1
	}
	return float64(s.Successful) / float64(total)
}

// ErrUnparseable is the sentinel for responses where every extraction
// strategy failed to produce a score.
var ErrUnparseable = errors.New("unparseable judgment response")

// UnparseableError reports a response that no extraction strategy could
// parse. Line is 0 when the source line is unknown.
type UnparseableError struct {
	Response string
	Line     int
}

func (e *UnparseableError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("unparseable judgment response at line %d", e.Line)
	}
	return "unparseable judgment response"
}

// Is lets errors.Is match against ErrUnparseable.
func (e *UnparseableError) Is(target error) bool {
	return target == ErrUnparseable
}
