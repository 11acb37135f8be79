package judgment

import (
	"context"
	"strings"

	"github.com/kabayan/go_score_parser/internal/core/domain"
	"github.com/kabayan/go_score_parser/internal/ports"
)

// reasonToken is the loose reason marker: when the labeled reason field is
// absent but this token appears, the remaining text after it becomes the
// reason.
const reasonToken = "理由"

// Config holds construction-time settings for the core parser.
type Config struct {
	// PatternOverrides replaces named default patterns. See the Pattern*
	// constants for the accepted keys.
	PatternOverrides map[string]string
	// CategoryScores replaces canonical scores for known category labels.
	CategoryScores map[string]float64
}

// Parser converts free-form judgment text into structured ParsedScore
// records. A Parser owns its compiled patterns and statistics counters
// exclusively; it is not safe for unsynchronized concurrent use.
type Parser struct {
	patterns   *PatternSet
	categories *CategoryMap
	extractors []ports.ScoreExtractor
	confidence *confidenceScorer
	logger     ports.Logger
	normalizer ports.Normalizer
	stats      domain.Statistics
}

// NewParser creates a core parser. Pattern overrides are compiled once
// here; a pattern that fails to compile is a construction error.
func NewParser(cfg Config, logger ports.Logger, normalizer ports.Normalizer) (*Parser, error) {
	patterns, err := CompilePatternSet(cfg.PatternOverrides)
	if err != nil {
		return nil, err
	}
	categories := NewCategoryMap(cfg.CategoryScores)

	return &Parser{
		patterns:   patterns,
		categories: categories,
		extractors: newExtractorChain(patterns, categories),
		confidence: &confidenceScorer{patterns: patterns},
		logger:     logger,
		normalizer: normalizer,
	}, nil
}

// Parse runs the extraction pipeline on one judgment response. On failure
// it returns an UnparseableError; out-of-range scores are clamped with a
// warning and still succeed.
func (p *Parser) Parse(ctx context.Context, text string) (domain.ParsedScore, error) {
	select {
	case <-ctx.Done():
		return domain.ParsedScore{}, ctx.Err()
	default:
	}

	p.stats.Total++

	normalized := p.normalizer.Normalize(text)
	p.logger.Debug("normalized judgment text",
		"raw_length", len(text),
		"normalized_length", len(normalized),
	)

	candidate, strategy, found := p.runExtractors(normalized)
	if !found {
		p.stats.Failed++
		p.logger.Error("no extraction strategy matched", "response", text)
		return domain.ParsedScore{}, &domain.UnparseableError{Response: text}
	}

	category, categoryFound := findCategory(p.patterns.Category, p.categories, normalized)
	if !categoryFound {
		category = p.categories.FromScore(candidate.Value)
	}

	reason, reasonFound := p.extractReason(normalized)
	if !reasonFound {
		// Reason of last resort: the whole response, so the field is only
		// empty when the input itself was.
		reason = text
	}

	numericScore := strategy == StrategyScoreMarker ||
		strategy == StrategyPercentage ||
		strategy == StrategyNumber
	confidence := p.confidence.score(normalized, numericScore, categoryFound, reasonFound)

	result := domain.ParsedScore{
		Score:       candidate.Value,
		Category:    category,
		Reason:      reason,
		Confidence:  confidence,
		RawResponse: text,
	}

	p.stats.Successful++
	p.logger.Info("parsed judgment response",
		"score", result.Score,
		"category", result.Category,
		"confidence", result.Confidence,
		"strategy", strategy,
	)
	return result, nil
}

// ParseWithLineInfo parses a response known to originate from a specific
// input line, attaching the line number to the result. Failures are logged
// with line context and returned, not suppressed.
func (p *Parser) ParseWithLineInfo(ctx context.Context, text string, line int) (domain.ParsedScore, error) {
	result, err := p.Parse(ctx, text)
	if err != nil {
		if ue, ok := err.(*domain.UnparseableError); ok {
			ue.Line = line
		}
		p.logger.Error("failed to parse judgment line", "line", line, "error", err)
		return domain.ParsedScore{}, err
	}

	result.LineNumber = &line
	p.logger.Debug("attached line number", "line", line, "score", result.Score)
	return result, nil
}

// ParseBatch processes responses sequentially, preserving input order.
// With skipErrors false the first failure aborts the batch and any
// accumulated results are discarded; with skipErrors true unparseable
// entries are omitted from the result list. Statistics record every
// attempt either way.
func (p *Parser) ParseBatch(ctx context.Context, texts []string, skipErrors bool) ([]domain.ParsedScore, error) {
	results := make([]domain.ParsedScore, 0, len(texts))
	for i, text := range texts {
		result, err := p.Parse(ctx, text)
		if err != nil {
			if skipErrors && isUnparseable(err) {
				p.logger.Warn("skipping unparseable batch entry", "index", i)
				continue
			}
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

// Statistics returns a snapshot of the running counters.
func (p *Parser) Statistics() domain.Statistics {
	return p.stats
}

// ResetStatistics zeroes all counters.
func (p *Parser) ResetStatistics() {
	p.stats = domain.Statistics{}
}

func (p *Parser) runExtractors(text string) (ports.ScoreCandidate, string, bool) {
	for _, extractor := range p.extractors {
		candidate, ok := extractor.Extract(text)
		if !ok {
			continue
		}
		if candidate.Clamped {
			p.logger.Warn("score outside [0,1], clamped",
				"strategy", extractor.Name(),
				"raw", candidate.Raw,
				"score", candidate.Value,
			)
		}
		p.logger.Debug("extraction strategy matched",
			"strategy", extractor.Name(),
			"score", candidate.Value,
		)
		return candidate, extractor.Name(), true
	}
	return ports.ScoreCandidate{}, "", false
}

// extractReason tries the labeled reason field, then the loose reason
// token. It reports false when neither matched.
func (p *Parser) extractReason(text string) (string, bool) {
	if m := p.patterns.Reason.FindStringSubmatch(text); len(m) >= 2 {
		if reason := strings.TrimSpace(m[1]); reason != "" {
			return reason, true
		}
	}
	if idx := strings.Index(text, reasonToken); idx >= 0 {
		rest := text[idx+len(reasonToken):]
		rest = strings.TrimSpace(strings.TrimLeft(rest, ":： \t"))
		if rest != "" {
			return rest, true
		}
	}
	return "", false
}

func isUnparseable(err error) bool {
	_, ok := err.(*domain.UnparseableError)
	return ok
}
