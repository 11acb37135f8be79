// Command server exposes the judgment score parser over a small JSON API.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/baditaflorin/l"
	"github.com/valyala/fasthttp"

	scoreparser "github.com/kabayan/go_score_parser"
	"github.com/kabayan/go_score_parser/internal/adapters/logger"
	"github.com/kabayan/go_score_parser/internal/adapters/normalizer"
	"github.com/kabayan/go_score_parser/internal/config"
	"github.com/kabayan/go_score_parser/internal/warmup"
)

// Default configuration
const (
	DefaultPort           = 8080
	DefaultReadTimeout    = 30 * time.Second
	DefaultWriteTimeout   = 30 * time.Second
	DefaultMaxRequestSize = 10 * 1024 * 1024 // 10MB
	DefaultConcurrency    = 0                // 0 means use GOMAXPROCS
)

var (
	// The shared parser instance. The core parser is not safe for
	// concurrent mutation, so every call goes through parserMu.
	parser   *scoreparser.ScoreParser
	parserMu sync.Mutex

	appLogger l.Logger
)

// ParseRequest represents a single parse request.
type ParseRequest struct {
	Text       string `json:"text"`
	LineNumber *int   `json:"line_number,omitempty"`
}

// BatchRequest represents a batch parse request.
type BatchRequest struct {
	Texts      []string `json:"texts"`
	SkipErrors bool     `json:"skip_errors,omitempty"`
}

// ParseResponse mirrors a ParsedScore record.
type ParseResponse struct {
	Score       float64 `json:"score"`
	Category    string  `json:"category"`
	Reason      string  `json:"reason"`
	Confidence  float64 `json:"confidence"`
	RawResponse string  `json:"raw_response"`
	LineNumber  *int    `json:"line_number,omitempty"`
}

// StatsResponse reports the parser's running counters.
type StatsResponse struct {
	Total       int     `json:"total"`
	Successful  int     `json:"successful"`
	Failed      int     `json:"failed"`
	SuccessRate float64 `json:"success_rate"`
}

// BatchResponse carries batch results plus a statistics snapshot.
type BatchResponse struct {
	Results    []ParseResponse `json:"results"`
	Statistics StatsResponse   `json:"statistics"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

func main() {
	port := flag.Int("port", DefaultPort, "HTTP server port")
	readTimeout := flag.Duration("read-timeout", DefaultReadTimeout, "HTTP read timeout")
	writeTimeout := flag.Duration("write-timeout", DefaultWriteTimeout, "HTTP write timeout")
	maxRequestSize := flag.Int("max-request-size", DefaultMaxRequestSize, "Maximum request size in bytes")
	concurrency := flag.Int("concurrency", DefaultConcurrency, "Maximum number of concurrent requests (0 = GOMAXPROCS)")
	warmUp := flag.Bool("warm-up", true, "Perform system warm-up on startup")
	logFile := flag.String("log-file", "", "Log file path (empty = stdout)")
	configFile := flag.String("config", "", "YAML config file with pattern overrides (optional)")
	flag.Parse()

	var err error
	appLogger, err = createLogger(*logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer appLogger.Close()

	appLogger.Info("Starting judgment score parser server",
		"port", *port,
		"read_timeout", *readTimeout,
		"write_timeout", *writeTimeout,
		"max_request_size", *maxRequestSize,
		"concurrency", *concurrency,
	)

	if err := initParser(*configFile, *warmUp); err != nil {
		appLogger.Error("Failed to initialize parser", "error", err)
		os.Exit(1)
	}

	server := &fasthttp.Server{
		Handler:            requestHandler,
		ReadTimeout:        *readTimeout,
		WriteTimeout:       *writeTimeout,
		MaxRequestBodySize: *maxRequestSize,
		Concurrency:        *concurrency,
		TCPKeepalive:       true,
		TCPKeepalivePeriod: 3 * time.Minute,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		appLogger.Info("Shutting down server...")
		if err := server.Shutdown(); err != nil {
			appLogger.Error("Error during server shutdown", "error", err)
		}
		close(idleConnsClosed)
	}()

	appLogger.Info("Server listening", "address", fmt.Sprintf(":%d", *port))
	if err := server.ListenAndServe(fmt.Sprintf(":%d", *port)); err != nil {
		appLogger.Error("Server error", "error", err)
	}

	<-idleConnsClosed
	appLogger.Info("Server stopped")
}

// initParser builds the shared parser, applying file-based pattern
// overrides and optional warmup.
func initParser(configFile string, warmUp bool) error {
	opts := []scoreparser.Option{
		scoreparser.WithLogger(appLogger),
		scoreparser.WithOptimizedNormalizer(),
	}

	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}
		if len(cfg.Patterns) > 0 {
			opts = append(opts, scoreparser.WithPatternOverrides(cfg.Patterns))
			appLogger.Info("Loaded pattern overrides", "file", configFile, "patterns", len(cfg.Patterns))
		}
	}

	var err error
	parser, err = scoreparser.New(opts...)
	if err != nil {
		return err
	}

	if warmUp {
		manager := warmup.NewManager(logger.FromExisting(appLogger), warmup.DefaultConfig())
		manager.RegisterParser(parser)
		manager.RegisterNormalizer(normalizer.NewOptimizedNormalizer())
		manager.Run(context.Background())
	}

	return nil
}

// requestHandler is the main fasthttp request handler.
func requestHandler(ctx *fasthttp.RequestCtx) {
	startTime := time.Now()

	ctx.Response.Header.Set("Content-Type", "application/json")
	ctx.Response.Header.Set("Server", "ScoreParserServer")

	switch string(ctx.Path()) {
	case "/health":
		handleHealthCheck(ctx)
	case "/parse":
		handleParse(ctx)
	case "/parse/batch":
		handleParseBatch(ctx)
	case "/stats":
		handleStats(ctx)
	case "/stats/reset":
		handleStatsReset(ctx)
	default:
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		writeJSONError(ctx, "Not found")
	}

	appLogger.Info("Request processed",
		"method", string(ctx.Method()),
		"path", string(ctx.Path()),
		"status", ctx.Response.StatusCode(),
		"ip", ctx.RemoteIP().String(),
		"duration", time.Since(startTime),
	)
}

// handleHealthCheck responds to health check requests.
func handleHealthCheck(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// handleParse handles single parse requests.
func handleParse(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		writeJSONError(ctx, "Method not allowed")
		return
	}

	var req ParseRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "Invalid request: "+err.Error())
		return
	}
	if req.Text == "" {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "Field text is required")
		return
	}

	c, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	parserMu.Lock()
	var (
		result scoreparser.ParsedScore
		err    error
	)
	if req.LineNumber != nil {
		result, err = parser.ParseWithLineInfo(c, req.Text, *req.LineNumber)
	} else {
		result, err = parser.Parse(c, req.Text)
	}
	parserMu.Unlock()

	if err != nil {
		if errors.Is(err, scoreparser.ErrUnparseable) {
			ctx.SetStatusCode(fasthttp.StatusUnprocessableEntity)
		} else {
			ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		}
		writeJSONError(ctx, err.Error())
		return
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, toParseResponse(result))
}

// handleParseBatch handles batch parse requests.
func handleParseBatch(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		writeJSONError(ctx, "Method not allowed")
		return
	}

	var req BatchRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "Invalid request: "+err.Error())
		return
	}
	if len(req.Texts) == 0 {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "Field texts must not be empty")
		return
	}

	c, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	parserMu.Lock()
	results, err := parser.ParseBatch(c, req.Texts, req.SkipErrors)
	stats := parser.Statistics()
	parserMu.Unlock()

	if err != nil {
		if errors.Is(err, scoreparser.ErrUnparseable) {
			ctx.SetStatusCode(fasthttp.StatusUnprocessableEntity)
		} else {
			ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		}
		writeJSONError(ctx, err.Error())
		return
	}

	response := BatchResponse{
		Results:    make([]ParseResponse, 0, len(results)),
		Statistics: toStatsResponse(stats),
	}
	for _, result := range results {
		response.Results = append(response.Results, toParseResponse(result))
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, response)
}

// handleStats reports the running statistics.
func handleStats(ctx *fasthttp.RequestCtx) {
	parserMu.Lock()
	stats := parser.Statistics()
	parserMu.Unlock()

	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, toStatsResponse(stats))
}

// handleStatsReset zeroes the running statistics.
func handleStatsReset(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		writeJSONError(ctx, "Method not allowed")
		return
	}

	parserMu.Lock()
	parser.ResetStatistics()
	parserMu.Unlock()

	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, toStatsResponse(scoreparser.Statistics{}))
}

// Helper functions

func toParseResponse(result scoreparser.ParsedScore) ParseResponse {
	return ParseResponse{
		Score:       result.Score,
		Category:    result.Category,
		Reason:      result.Reason,
		Confidence:  result.Confidence,
		RawResponse: result.RawResponse,
		LineNumber:  result.LineNumber,
	}
}

func toStatsResponse(stats scoreparser.Statistics) StatsResponse {
	return StatsResponse{
		Total:       stats.Total,
		Successful:  stats.Successful,
		Failed:      stats.Failed,
		SuccessRate: stats.SuccessRate(),
	}
}

// writeJSONResponse writes a JSON response to the context.
func writeJSONResponse(ctx *fasthttp.RequestCtx, data interface{}) {
	response, err := json.Marshal(data)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		appLogger.Error("Error marshaling JSON response", "error", err)
		writeJSONError(ctx, "Internal server error")
		return
	}

	ctx.SetBody(response)
}

// writeJSONError writes a JSON error response to the context.
func writeJSONError(ctx *fasthttp.RequestCtx, message string) {
	response, err := json.Marshal(ErrorResponse{Error: message})
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		appLogger.Error("Error marshaling JSON error response", "error", err)
		ctx.SetBodyString(`{"error":"Internal server error"}`)
		return
	}

	ctx.SetBody(response)
}

// createLogger creates and configures a logger.
func createLogger(logFile string) (l.Logger, error) {
	factory := l.NewStandardFactory()

	var output io.Writer = os.Stdout
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		output = file
	}

	logger, err := factory.CreateLogger(l.Config{
		Output:      output,
		JsonFormat:  true,
		AsyncWrite:  true,
		BufferSize:  1024 * 1024,
		MaxFileSize: 100 * 1024 * 1024,
		MaxBackups:  5,
		AddSource:   true,
		Metrics:     true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return logger, nil
}
