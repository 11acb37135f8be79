package judgment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompilePatternSetDefaults(t *testing.T) {
	ps, err := CompilePatternSet(nil)
	require.NoError(t, err)

	assert.True(t, ps.Score.MatchString("スコア: 0.85"))
	assert.True(t, ps.Score.MatchString("**Score**: 0.85"))
	assert.True(t, ps.Category.MatchString("カテゴリ: 類似"))
	assert.True(t, ps.Reason.MatchString("理由: 同じ概念を扱っている"))
	assert.True(t, ps.Percentage.MatchString("75%"))
	assert.True(t, ps.Number.MatchString("0.85"))
}

func TestCompilePatternSetOverride(t *testing.T) {
	ps, err := CompilePatternSet(map[string]string{
		PatternScore: `judge=(\d+(?:\.\d+)?)`,
	})
	require.NoError(t, err)

	assert.True(t, ps.Score.MatchString("judge=0.5"))
	assert.False(t, ps.Score.MatchString("スコア: 0.85"))
	// Unspecified keys keep defaults.
	assert.True(t, ps.Category.MatchString("カテゴリ: 類似"))
}

func TestCompilePatternSetUnknownKey(t *testing.T) {
	_, err := CompilePatternSet(map[string]string{"scoring_pattern": `\d+`})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown pattern override")
}

func TestCompilePatternSetInvalidRegexp(t *testing.T) {
	_, err := CompilePatternSet(map[string]string{PatternScore: `([`})
	assert.Error(t, err)
}
