// Package warmup pre-exercises the parser before serving traffic, so the
// first real requests do not pay for pool and allocator ramp-up.
package warmup

import (
	"context"
	"runtime"
	"time"

	"github.com/kabayan/go_score_parser/internal/core/domain"
	"github.com/kabayan/go_score_parser/internal/ports"
)

// sampleJudgments cover the main extraction paths: structured fields,
// percentages, category-only text, and full-width numerals.
var sampleJudgments = []string{
	"スコア: 0.85\nカテゴリ: 非常に類似\n理由: 両テキストは同じ概念について述べている",
	"類似度は75%程度と考えられます。",
	"これらのテキストは非常に類似しています。",
	"スコア：０．６",
}

// Config defines configuration for warming up the system.
type Config struct {
	// Iterations is the number of passes over the sample judgments.
	Iterations int
	// ForceGC triggers a garbage collection after warmup.
	ForceGC bool
}

// DefaultConfig returns the default warmup configuration.
func DefaultConfig() Config {
	return Config{
		Iterations: 256,
		ForceGC:    true,
	}
}

// Parser is the subset of the core parser the warmup exercises.
type Parser interface {
	Parse(ctx context.Context, text string) (domain.ParsedScore, error)
	ResetStatistics()
}

// Manager handles system warmup operations.
type Manager struct {
	logger      ports.Logger
	config      Config
	parsers     []Parser
	normalizers []ports.Normalizer
}

// NewManager creates a new warmup manager.
func NewManager(logger ports.Logger, config Config) *Manager {
	return &Manager{logger: logger, config: config}
}

// RegisterParser adds a parser to be warmed up.
func (m *Manager) RegisterParser(p Parser) {
	m.parsers = append(m.parsers, p)
}

// RegisterNormalizer adds a normalizer to be warmed up.
func (m *Manager) RegisterNormalizer(n ports.Normalizer) {
	m.normalizers = append(m.normalizers, n)
}

// Run performs the warmup and resets parser statistics afterwards, so the
// warmup traffic does not show up in reported counters.
func (m *Manager) Run(ctx context.Context) {
	start := time.Now()

	for i := 0; i < m.config.Iterations; i++ {
		select {
		case <-ctx.Done():
			m.logger.Warn("warmup cancelled", "iteration", i)
			return
		default:
		}
		for _, sample := range sampleJudgments {
			for _, n := range m.normalizers {
				n.Normalize(sample)
			}
			for _, p := range m.parsers {
				p.Parse(ctx, sample)
			}
		}
	}

	for _, p := range m.parsers {
		p.ResetStatistics()
	}
	if m.config.ForceGC {
		runtime.GC()
	}

	m.logger.Info("warmup complete",
		"iterations", m.config.Iterations,
		"samples", len(sampleJudgments),
		"duration", time.Since(start),
	)
}
