package stream

import (
	"context"
	"strings"
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

func newReader(t *testing.T) (*LineReader, *judgment.Parser) {
	t.Helper()
	parser, err := judgment.NewParser(judgment.Config{}, nopLogger{}, normalizer.NewDefaultNormalizer())
	require.NoError(t, err)
	return NewLineReader(parser, nopLogger{}), parser
}

func TestParseAllAttachesLineNumbers(t *testing.T) {
	lr, _ := newReader(t)

	input := "スコア: 0.9\n\n類似度は75%です。\n"
	results, err := lr.ParseAll(context.Background(), strings.NewReader(input), false)
	require.NoError(t, err)

	// The blank line is skipped but still counts toward line numbering.
	require.Len(t, results, 2)
	assert.Equal(t, 1, *results[0].LineNumber)
	assert.Equal(t, 3, *results[1].LineNumber)
	assert.Equal(t, 0.9, results[0].Score)
	assert.Equal(t, 0.75, results[1].Score)
}

func TestParseAllSkipErrors(t *testing.T) {
	lr, parser := newReader(t)

	input := "スコア: 0.9\n判定不能でした。\nスコア: 0.4\n"
	results, err := lr.ParseAll(context.Background(), strings.NewReader(input), true)
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, 1, *results[0].LineNumber)
	assert.Equal(t, 3, *results[1].LineNumber)

	stats := parser.Statistics()
	assert.Equal(t, domain.Statistics{Total: 3, Successful: 2, Failed: 1}, stats)
}

func TestParseAllAbortsWithoutSkip(t *testing.T) {
	lr, _ := newReader(t)

	input := "スコア: 0.9\n判定不能でした。\nスコア: 0.4\n"
	results, err := lr.ParseAll(context.Background(), strings.NewReader(input), false)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnparseable)
	assert.Nil(t, results)
}
