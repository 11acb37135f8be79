package normalizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultNormalizerFoldsFullWidth(t *testing.T) {
	n := NewDefaultNormalizer()

	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{"full-width digits", "０．８５", "0.85"},
		{"full-width colon and percent", "スコア：７５％", "スコア:75%"},
		{"ideographic space", "スコア　0.5", "スコア 0.5"},
		{"half-width katakana", "ｽｺｱ: 0.5", "スコア: 0.5"},
		{"ascii unchanged", "Score: 0.85", "Score: 0.85"},
		{"empty", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, n.Normalize(tc.in))
		})
	}
}

func TestOptimizedNormalizerMatchesDefault(t *testing.T) {
	opt := NewOptimizedNormalizer()
	def := NewDefaultNormalizer()

	inputs := []string{
		"スコア：０．８５",
		"類似度は７５％で、やや類似しています。",
		"カテゴリ: 非常に類似",
		"「完全一致」と判断、理由：同一の概念。",
		"ｽｺｱ：０．９", // half-width katakana takes the fallback path
		"mixed ＡＢＣ and abc １２３",
	}

	for _, in := range inputs {
		assert.Equal(t, def.Normalize(in), opt.Normalize(in), "input %q", in)
	}
}

func TestOptimizedNormalizerASCIIFastPath(t *testing.T) {
	n := NewOptimizedNormalizer()

	in := "Score: 0.85 (unchanged)"
	assert.Equal(t, in, n.Normalize(in))
}

func TestOptimizedNormalizerReusesBuffers(t *testing.T) {
	n := NewOptimizedNormalizer()

	// Repeated calls must not corrupt earlier results.
	first := n.Normalize("スコア：０．１")
	for i := 0; i < 100; i++ {
		n.Normalize(strings.Repeat("０", i))
	}
	assert.Equal(t, "スコア:0.1", first)
}
