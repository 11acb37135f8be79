package judgment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryMapScore(t *testing.T) {
	m := NewCategoryMap(nil)

	assert.Equal(t, 1.0, m.Score(CategoryExact))
	assert.Equal(t, 0.8, m.Score(CategoryVeryHigh))
	assert.Equal(t, 0.6, m.Score(CategoryHigh))
	assert.Equal(t, 0.4, m.Score(CategoryModerate))
	assert.Equal(t, 0.2, m.Score(CategoryLow))

	// Unrecognized labels fall back to the default, never an error.
	assert.Equal(t, DefaultCategoryScore, m.Score("中程度"))
	assert.Equal(t, DefaultCategoryScore, m.Score(""))
}

func TestCategoryMapScoreOverrides(t *testing.T) {
	m := NewCategoryMap(map[string]float64{
		CategoryVeryHigh: 0.9,
		"未知のラベル":   0.1, // unknown labels are not added
	})

	assert.Equal(t, 0.9, m.Score(CategoryVeryHigh))
	assert.Equal(t, 1.0, m.Score(CategoryExact))
	assert.Equal(t, DefaultCategoryScore, m.Score("未知のラベル"))
}

func TestCategoryMapFromScoreBoundaries(t *testing.T) {
	m := NewCategoryMap(nil)

	tests := []struct {
		score    float64
		expected string
	}{
		{1.0, CategoryExact},
		{0.95, CategoryExact},
		{0.94999, CategoryVeryHigh},
		{0.8, CategoryVeryHigh},
		{0.75, CategoryHigh},
		{0.6, CategoryHigh},
		{0.5, CategoryModerate},
		{0.4, CategoryModerate},
		{0.39999, CategoryLow},
		{0.0, CategoryLow},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, m.FromScore(tc.score), "score %v", tc.score)
	}
}

func TestCategoryMapFindLabelPrefersLongest(t *testing.T) {
	m := NewCategoryMap(nil)

	// やや類似 contains 類似 as a substring; the longer label wins.
	label, ok := m.FindLabel("やや類似していると言えます")
	assert.True(t, ok)
	assert.Equal(t, CategoryModerate, label)

	label, ok = m.FindLabel("非常に類似しています")
	assert.True(t, ok)
	assert.Equal(t, CategoryVeryHigh, label)

	label, ok = m.FindLabel("低い類似度です")
	assert.True(t, ok)
	assert.Equal(t, CategoryLow, label)

	// 類似度 alone only contains the bare 類似 label.
	label, ok = m.FindLabel("類似度は高い")
	assert.True(t, ok)
	assert.Equal(t, CategoryHigh, label)

	_, ok = m.FindLabel("全く関係ありません")
	assert.False(t, ok)
}
