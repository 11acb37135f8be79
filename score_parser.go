// Package scoreparser converts free-form similarity judgments produced by
// an LLM evaluator into structured records: a score in [0,1], a similarity
// category, a justification, and a rule-based confidence estimate.
//
// Input phrasing is inconsistent: a response may carry a labeled score,
// only a category word, or vague prose. Parsing therefore runs an ordered
// chain of extraction strategies and the first success wins. Scores outside
// [0,1] are clamped with a warning, never surfaced out of range.
package scoreparser

import (
	"context"
	"io"

	"github.com/baditaflorin/l"

	"github.com/kabayan/go_score_parser/internal/adapters/logger"
	"github.com/kabayan/go_score_parser/internal/adapters/normalizer"
	"github.com/kabayan/go_score_parser/internal/adapters/stream"
	"github.com/kabayan/go_score_parser/internal/core/domain"
	"github.com/kabayan/go_score_parser/internal/core/judgment"
	"github.com/kabayan/go_score_parser/internal/ports"
)

// ParsedScore is the structured result of parsing one judgment response.
type ParsedScore = domain.ParsedScore

// Statistics holds the running parse counters of one parser instance.
type Statistics = domain.Statistics

// UnparseableError reports a response no extraction strategy could parse.
type UnparseableError = domain.UnparseableError

// ErrUnparseable matches unparseable-response errors with errors.Is.
var ErrUnparseable = domain.ErrUnparseable

// Named pattern override keys accepted by WithPatternOverrides.
const (
	PatternScore      = judgment.PatternScore
	PatternCategory   = judgment.PatternCategory
	PatternReason     = judgment.PatternReason
	PatternPercentage = judgment.PatternPercentage
	PatternNumber     = judgment.PatternNumber
)

// ScoreParser parses similarity judgment responses. Each instance owns its
// compiled pattern set and statistics counters exclusively; use one
// instance per goroutine or add external locking.
type ScoreParser struct {
	parser *judgment.Parser
	logger ports.Logger
}

// Option defines a functional option for configuring a ScoreParser.
type Option func(*scoreParserConfig)

type scoreParserConfig struct {
	Logger           ports.Logger
	Normalizer       ports.Normalizer
	PatternOverrides map[string]string
	CategoryScores   map[string]float64
}

// WithLogger sets a custom logger.
func WithLogger(lg l.Logger) Option {
	return func(cfg *scoreParserConfig) {
		cfg.Logger = logger.FromExisting(lg)
	}
}

// WithNormalizer sets a custom text normalizer.
func WithNormalizer(n ports.Normalizer) Option {
	return func(cfg *scoreParserConfig) {
		cfg.Normalizer = n
	}
}

// WithOptimizedNormalizer selects the pooled width-folding normalizer.
func WithOptimizedNormalizer() Option {
	return func(cfg *scoreParserConfig) {
		cfg.Normalizer = normalizer.NewOptimizedNormalizer()
	}
}

// WithPatternOverrides replaces named extraction patterns. Unspecified
// keys keep the engine defaults; overrides are compiled once here.
func WithPatternOverrides(overrides map[string]string) Option {
	return func(cfg *scoreParserConfig) {
		cfg.PatternOverrides = overrides
	}
}

// WithCategoryScores replaces canonical scores for known category labels.
func WithCategoryScores(scores map[string]float64) Option {
	return func(cfg *scoreParserConfig) {
		cfg.CategoryScores = scores
	}
}

// New creates a new ScoreParser instance.
func New(opts ...Option) (*ScoreParser, error) {
	config := &scoreParserConfig{}
	for _, opt := range opts {
		opt(config)
	}

	if config.Logger == nil {
		var err error
		config.Logger, err = logger.NewStdLogger()
		if err != nil {
			return nil, err
		}
	}
	if config.Normalizer == nil {
		config.Normalizer = normalizer.NewDefaultNormalizer()
	}

	coreConfig := judgment.Config{
		PatternOverrides: config.PatternOverrides,
		CategoryScores:   config.CategoryScores,
	}
	parser, err := judgment.NewParser(coreConfig, config.Logger, config.Normalizer)
	if err != nil {
		return nil, err
	}

	return &ScoreParser{
		parser: parser,
		logger: config.Logger,
	}, nil
}

// Parse converts one judgment response into a ParsedScore. It returns an
// UnparseableError when every extraction strategy fails.
func (sp *ScoreParser) Parse(ctx context.Context, text string) (ParsedScore, error) {
	return sp.parser.Parse(ctx, text)
}

// ParseWithLineInfo parses a response from a known input line, attaching
// the line number to the result and to any failure.
func (sp *ScoreParser) ParseWithLineInfo(ctx context.Context, text string, line int) (ParsedScore, error) {
	return sp.parser.ParseWithLineInfo(ctx, text, line)
}

// ParseBatch parses responses sequentially in stable order. With
// skipErrors false the first failure aborts the batch; with skipErrors
// true unparseable entries are omitted. Statistics count every attempt.
func (sp *ScoreParser) ParseBatch(ctx context.Context, texts []string, skipErrors bool) ([]ParsedScore, error) {
	return sp.parser.ParseBatch(ctx, texts, skipErrors)
}

// ParseReader parses a stream of judgments, one per line, attaching
// 1-based line numbers. Blank lines are skipped.
func (sp *ScoreParser) ParseReader(ctx context.Context, r io.Reader, skipErrors bool) ([]ParsedScore, error) {
	return stream.NewLineReader(sp.parser, sp.logger).ParseAll(ctx, r, skipErrors)
}

// Statistics returns a snapshot of the running counters.
func (sp *ScoreParser) Statistics() Statistics {
	return sp.parser.Statistics()
}

// ResetStatistics zeroes all counters.
func (sp *ScoreParser) ResetStatistics() {
	sp.parser.ResetStatistics()
}
