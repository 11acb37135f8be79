package stream

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/kabayan/go_score_parser/internal/core/domain"
	"github.com/kabayan/go_score_parser/internal/ports"
)

const maxLineBytes = 1024 * 1024

// LineParser is the subset of the core parser the line reader needs.
type LineParser interface {
	ParseWithLineInfo(ctx context.Context, text string, line int) (domain.ParsedScore, error)
}

// LineReader feeds a stream of judgment responses, one per line, through a
// parser. Processing is strictly sequential so line numbers and statistics
// stay deterministic.
type LineReader struct {
	parser LineParser
	logger ports.Logger
}

// NewLineReader creates a new line reader.
func NewLineReader(parser LineParser, logger ports.Logger) *LineReader {
	return &LineReader{parser: parser, logger: logger}
}

// ParseAll reads the stream line by line, parsing each non-blank line with
// its 1-based line number. With skipErrors true, unparseable lines are
// omitted from the results; any other error aborts.
func (lr *LineReader) ParseAll(ctx context.Context, r io.Reader, skipErrors bool) ([]domain.ParsedScore, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var results []domain.ParsedScore
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}

		result, err := lr.parser.ParseWithLineInfo(ctx, text, line)
		if err != nil {
			if skipErrors && errors.Is(err, domain.ErrUnparseable) {
				continue
			}
			return nil, err
		}
		results = append(results, result)
	}
	if err := scanner.Err(); err != nil {
		lr.logger.Error("failed to read judgment stream", "line", line, "error", err)
		return nil, fmt.Errorf("reading judgment stream: %w", err)
	}

	lr.logger.Info("parsed judgment stream", "lines", line, "results", len(results))
	return results, nil
}
