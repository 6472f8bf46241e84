package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/baditaflorin/l"
	"github.com/valyala/fasthttp"

	textcompare "github.com/baditaflorin/go_text_compare"
	"github.com/baditaflorin/go_text_compare/internal/adapters/logger"
)

// Default configuration
const (
	DefaultPort           = 8080
	DefaultReadTimeout    = 30 * time.Second
	DefaultWriteTimeout   = 30 * time.Second
	DefaultRequestTimeout = 60 * time.Second
	DefaultMaxRequestSize = 10 * 1024 * 1024 // 10MB
	DefaultConcurrency    = 0                // 0 means use fasthttp's default
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run starts the server and returns the process exit code. The logger is
// closed before run returns, so startup errors are flushed.
func run(args []string) int {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	port := fs.Int("port", DefaultPort, "HTTP server port")
	readTimeout := fs.Duration("read-timeout", DefaultReadTimeout, "HTTP read timeout")
	writeTimeout := fs.Duration("write-timeout", DefaultWriteTimeout, "HTTP write timeout")
	requestTimeout := fs.Duration("request-timeout", DefaultRequestTimeout, "Per-request comparison timeout")
	maxRequestSize := fs.Int("max-request-size", DefaultMaxRequestSize, "Maximum request size in bytes")
	concurrency := fs.Int("concurrency", DefaultConcurrency, "Maximum number of concurrent connections (0 = default)")
	workers := fs.Int("workers", 0, "Rows compared concurrently per request (0 = one per CPU)")
	rateLimit := fs.Float64("rate-limit", 0, "Comparison requests per second (0 = unlimited)")
	warmUp := fs.Bool("warm-up", true, "Perform warm-up on startup")
	logFile := fs.String("log-file", "", "Log file path (empty = stdout)")
	normalizerName := fs.String("normalizer", "none", "Text normalization: none, whitespace, nfc, fold or full")
	maxCandidates := fs.Int("max-candidates", 2, "Maximum candidate columns per table (0 = unlimited)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	lg, err := createLogger(*logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		return 1
	}
	defer lg.Close()

	normalizerType, err := textcompare.ParseNormalizerType(*normalizerName)
	if err != nil {
		lg.Error("Invalid normalizer", "error", err)
		return 1
	}

	lg.Info("Starting text comparison HTTP server",
		"port", *port,
		"read_timeout", readTimeout.String(),
		"write_timeout", writeTimeout.String(),
		"max_request_size", *maxRequestSize,
		"concurrency", *concurrency,
		"workers", *workers,
		"rate_limit", *rateLimit,
		"normalizer", normalizerType.String(),
	)

	comparer, err := textcompare.New(
		textcompare.WithLogger(lg),
		textcompare.WithNormalizerType(normalizerType),
		textcompare.WithWorkers(*workers),
		textcompare.WithMaxCandidates(*maxCandidates),
		textcompare.WithWarmUp(*warmUp),
	)
	if err != nil {
		lg.Error("Failed to initialize comparer", "error", err)
		return 1
	}
	lg.Info("Comparer initialized", "warm_up", *warmUp, "cpus", runtime.NumCPU())

	s := newServer(comparer, logger.FromExisting(lg), *rateLimit, *requestTimeout)
	httpServer := &fasthttp.Server{
		Handler:               s.handle,
		ReadTimeout:           *readTimeout,
		WriteTimeout:          *writeTimeout,
		MaxRequestBodySize:    *maxRequestSize,
		Concurrency:           *concurrency,
		TCPKeepalive:          true,
		TCPKeepalivePeriod:    3 * time.Minute,
		MaxIdleWorkerDuration: 10 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		lg.Info("Shutting down server...")
		if err := httpServer.Shutdown(); err != nil {
			lg.Error("Error during server shutdown", "error", err)
		}
		close(idleConnsClosed)
	}()

	addr := fmt.Sprintf(":%d", *port)
	lg.Info("Server listening", "address", addr)
	if err := httpServer.ListenAndServe(addr); err != nil {
		lg.Error("Server error", "error", err)
		return 1
	}

	<-idleConnsClosed
	lg.Info("Server stopped")
	return 0
}

// createLogger creates a JSON logger writing to logFile or stdout.
func createLogger(logFile string) (l.Logger, error) {
	var output io.Writer = os.Stdout
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		output = file
	}

	lg, err := l.NewStandardFactory().CreateLogger(l.Config{
		Output:      output,
		JsonFormat:  true,
		AsyncWrite:  true,
		BufferSize:  1024 * 1024,       // 1MB
		MaxFileSize: 100 * 1024 * 1024, // 100MB
		MaxBackups:  5,
		AddSource:   true,
		Metrics:     true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return lg, nil
}
