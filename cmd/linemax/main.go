package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	linemax "github.com/luhtfiimanal/go-linemax"
	"github.com/luhtfiimanal/go-linemax/internal/diag"
)

// Environment variables read by the command itself (the library reads the
// remaining LINEMAX_* ones through EnvOverlay).
const (
	envConfigFile = "LINEMAX_CONFIG_FILE"
	envLogLevel   = "LINEMAX_LOG_LEVEL"
)

// processFile is swapped out in tests.
var processFile = linemax.ProcessFile

// linemax [flags] <file> [workers]
//
// Writes "<index>: <max>" for every line of <file> to stdout. Options are
// layered defaults < JSON config < LINEMAX_* environment < flags, and a
// positional worker count wins over -workers.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Environ(), os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args, environ []string, stdout, stderr io.Writer) int {
	def := linemax.DefaultOptions()

	fs := flag.NewFlagSet("linemax", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: linemax [flags] <file> [workers]\n")
		fs.PrintDefaults()
	}
	var (
		flagWorkers    = fs.Int("workers", def.Workers, "number of parallel workers")
		flagSource     = fs.String("source", string(def.Source), "file backend: auto, mmap, mmap-reader, pread")
		flagStrategy   = fs.String("strategy", string(def.Strategy), "work split: window or indexed")
		flagPrefetch   = fs.Bool("prefetch", def.Prefetch, "advise sequential read-ahead on mapped files")
		flagReadBuffer = fs.Int("read-buffer", def.ReadBufferSize, "block size in bytes for non-mapped reads")
		flagMaxLines   = fs.Int("max-lines-per-worker", def.MaxLinesPerWorker, "abort when one worker produces more lines (0 = unlimited)")
		flagConfig     = fs.String("config", "", "JSON options file")
		flagLogLevel   = fs.String("log-level", "warn", "diagnostic level on stderr: debug, info, warn, error")
	)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return linemax.ExitOK
		}
		return linemax.ExitConfig
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	level := *flagLogLevel
	if !set["log-level"] {
		if v := lookupEnv(environ, envLogLevel); v != "" {
			level = v
		}
	}
	logger := diag.NewLogger(stderr, level)

	fail := func(err error) int {
		fmt.Fprintf(stderr, "linemax: %v\n", err)
		logger.Error("linemax", err)
		return linemax.ExitCode(err)
	}

	opts := def
	cfgPath := *flagConfig
	if cfgPath == "" {
		cfgPath = lookupEnv(environ, envConfigFile)
	}
	if cfgPath != "" {
		var err error
		if opts, err = linemax.LoadOptionsFile(cfgPath, opts); err != nil {
			return fail(err)
		}
	}
	opts, err := linemax.EnvOverlay(environ, opts)
	if err != nil {
		return fail(err)
	}

	if set["workers"] {
		opts.Workers = *flagWorkers
	}
	if set["source"] {
		opts.Source = linemax.SourceKind(*flagSource)
	}
	if set["strategy"] {
		opts.Strategy = linemax.Strategy(*flagStrategy)
	}
	if set["prefetch"] {
		opts.Prefetch = *flagPrefetch
	}
	if set["read-buffer"] {
		opts.ReadBufferSize = *flagReadBuffer
	}
	if set["max-lines-per-worker"] {
		opts.MaxLinesPerWorker = *flagMaxLines
	}

	pos := fs.Args()
	switch len(pos) {
	case 0:
		fs.Usage()
		return fail(fmt.Errorf("%w: missing input path", linemax.ErrConfig))
	case 1:
	case 2:
		n, err := strconv.Atoi(pos[1])
		if err != nil || n < 1 {
			return fail(fmt.Errorf("%w: invalid worker count %q", linemax.ErrConfig, pos[1]))
		}
		opts.Workers = n
	default:
		fs.Usage()
		return fail(fmt.Errorf("%w: unexpected arguments %q", linemax.ErrConfig, pos[2:]))
	}
	path := pos[0]
	if path == "" {
		return fail(fmt.Errorf("%w: missing input path", linemax.ErrConfig))
	}
	if err := opts.Validate(); err != nil {
		return fail(err)
	}

	timer := logger.Start("linemax", "process",
		slog.String("path", path),
		slog.Int("workers", opts.Workers),
		slog.String("source", string(opts.Source)),
		slog.String("strategy", string(opts.Strategy)),
	)
	st, err := processFile(ctx, path, opts, stdout)
	if err != nil {
		return fail(err)
	}
	timer.Finish("process", int64(st.Lines), slog.Uint64("bytes", st.Bytes))
	if logger.Enabled(slog.LevelDebug) {
		for w, n := range st.PerWorker {
			logger.Debug("worker", "lines", slog.Int("worker", w), slog.Int("count", n))
		}
	}
	return linemax.ExitOK
}

// lookupEnv returns the last value of key in environ.
func lookupEnv(environ []string, key string) string {
	val := ""
	prefix := key + "="
	for _, kv := range environ {
		if len(kv) > len(prefix) && kv[:len(prefix)] == prefix {
			val = kv[len(prefix):]
		}
	}
	return val
}
