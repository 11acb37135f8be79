package normalizer

import (
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"

	"github.com/kabayan/go_score_parser/internal/ports"
)

// DefaultNormalizer folds full-width characters to half-width and applies
// canonical NFKC normalization, so full-width Japanese numerals and
// punctuation parse identically to their ASCII forms.
type DefaultNormalizer struct{}

// NewDefaultNormalizer creates a new default normalizer.
func NewDefaultNormalizer() ports.Normalizer {
	return &DefaultNormalizer{}
}

// Normalize returns the canonical half-width form of the text.
func (n *DefaultNormalizer) Normalize(text string) string {
	return norm.NFKC.String(width.Fold.String(text))
}
