package warmup

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kabayan/go_score_parser/internal/adapters/normalizer"
	"github.com/kabayan/go_score_parser/internal/core/domain"
	"github.com/kabayan/go_score_parser/internal/core/judgment"
)

type nopLogger struct{}

func (nopLogger) Debug(msg string, kv ...interface{}) {}
func (nopLogger) Info(msg string, kv ...interface{})  {}
func (nopLogger) Warn(msg string, kv ...interface{})  {}
func (nopLogger) Error(msg string, kv ...interface{}) {}
func (nopLogger) Close() error                        { return nil }

func TestRunResetsStatistics(t *testing.T) {
	parser, err := judgment.NewParser(judgment.Config{}, nopLogger{}, normalizer.NewDefaultNormalizer())
	require.NoError(t, err)

	m := NewManager(nopLogger{}, Config{Iterations: 2})
	m.RegisterParser(parser)
	m.RegisterNormalizer(normalizer.NewOptimizedNormalizer())
	m.Run(context.Background())

	// Warmup traffic must not leak into the reported counters.
	assert.Equal(t, domain.Statistics{}, parser.Statistics())
}

func TestRunCancelledContext(t *testing.T) {
	parser, err := judgment.NewParser(judgment.Config{}, nopLogger{}, normalizer.NewDefaultNormalizer())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := NewManager(nopLogger{}, DefaultConfig())
	m.RegisterParser(parser)
	// Must return promptly without panicking.
	m.Run(ctx)
}
