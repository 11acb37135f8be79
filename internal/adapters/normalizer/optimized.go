package normalizer

import (
	"unicode/utf8"

	"github.com/kabayan/go_score_parser/internal/pool"
	"github.com/kabayan/go_score_parser/internal/ports"
)

// OptimizedNormalizer is a width-folding normalizer with an ASCII fast
// path and pooled buffers. Judgment responses are short and almost always
// mix ASCII, kana/kanji, and the full-width forms block, so those are
// handled with a direct offset table; anything else falls back to the
// default NFKC normalizer.
type OptimizedNormalizer struct {
	bytePool *pool.BufferPool
	fallback ports.Normalizer
}

// NewOptimizedNormalizer creates a new optimized normalizer.
func NewOptimizedNormalizer() ports.Normalizer {
	return &OptimizedNormalizer{
		bytePool: pool.NewBufferPool(4096),
		fallback: NewDefaultNormalizer(),
	}
}

// Normalize folds full-width ASCII variants to half-width. ASCII-only
// input is returned unchanged.
func (n *OptimizedNormalizer) Normalize(text string) string {
	if len(text) == 0 {
		return ""
	}

	asciiOnly := true
	for i := 0; i < len(text); i++ {
		if text[i] >= 128 {
			asciiOnly = false
			break
		}
	}
	if asciiOnly {
		return text
	}

	buffer := n.bytePool.Get()
	defer n.bytePool.Put(buffer)
	if cap(*buffer) < len(text) {
		*buffer = make([]byte, 0, len(text))
	}
	*buffer = (*buffer)[:0]

	var scratch [utf8.UTFMax]byte
	for _, r := range text {
		switch {
		case r < 128:
			*buffer = append(*buffer, byte(r))
		case r >= 0xFF01 && r <= 0xFF5E:
			// Full-width ASCII variants: ！..～ → !..~
			*buffer = append(*buffer, byte(r-0xFEE0))
		case r == 0x3000:
			// Ideographic space.
			*buffer = append(*buffer, ' ')
		case nfkcStable(r):
			size := utf8.EncodeRune(scratch[:], r)
			*buffer = append(*buffer, scratch[:size]...)
		default:
			// A compatibility character the offset table does not cover.
			return n.fallback.Normalize(text)
		}
	}

	return string(*buffer)
}

// nfkcStable reports whether r is left unchanged by NFKC and width
// folding: kana, CJK ideographs, and the common Japanese punctuation the
// judgment texts use.
func nfkcStable(r rune) bool {
	switch {
	case r >= 0x3041 && r <= 0x309F: // hiragana
		return true
	case r >= 0x30A0 && r <= 0x30FC: // katakana, prolonged sound mark
		return true
	case r >= 0x4E00 && r <= 0x9FFF: // CJK unified ideographs
		return true
	case r == 0x3001 || r == 0x3002: // 、 。
		return true
	case r == 0x300C || r == 0x300D: // 「 」
		return true
	default:
		return false
	}
}
