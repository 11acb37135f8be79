package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsedScoreMap(t *testing.T) {
	p := ParsedScore{
		Score:      0.8,
		Category:   "非常に類似",
		Reason:     "同じ概念を扱う",
		Confidence: 0.85,
	}

	m := p.Map()
	assert.Equal(t, 0.8, m["score"])
	assert.Equal(t, "非常に類似", m["category"])
	assert.NotContains(t, m, "line_number")

	line := 4
	p.LineNumber = &line
	assert.Equal(t, 4, p.Map()["line_number"])
}

func TestStatisticsSuccessRate(t *testing.T) {
	// Zero total must not divide by zero.
	assert.Equal(t, 0.0, Statistics{}.SuccessRate())
	assert.Equal(t, 0.5, Statistics{Total: 4, Successful: 2, Failed: 2}.SuccessRate())
	assert.Equal(t, 1.0, Statistics{Total: 3, Successful: 3}.SuccessRate())
}

func TestUnparseableErrorMatching(t *testing.T) {
	err := error(&UnparseableError{Response: "??"})
	assert.ErrorIs(t, err, ErrUnparseable)

	var ue *UnparseableError
	assert.True(t, errors.As(err, &ue))
	assert.Equal(t, "unparseable judgment response", err.Error())

	withLine := &UnparseableError{Response: "??", Line: 3}
	assert.Equal(t, "unparseable judgment response at line 3", withLine.Error())
}
