package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aluiziolira/go-artist-catalog/catalog"
	"github.com/aluiziolira/go-artist-catalog/config"
	"github.com/aluiziolira/go-artist-catalog/models"
	"github.com/aluiziolira/go-artist-catalog/pipeline"
	"github.com/aluiziolira/go-artist-catalog/resolver"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	verbose := flag.Bool("v", false, "Enable verbose logging")
	metricsAddr := flag.String("metrics-addr", "", "Prometheus metrics listen address (e.g. :9090)")

	flag.Parse()

	logger, level := newLogger(*verbose)
	slog.SetDefault(logger)
	slog.SetLogLoggerLevel(level.Level())

	cfg := buildConfigFromFlags(*verbose, *metricsAddr)
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	res, err := resolver.New(cfg)
	if err != nil {
		slog.Error("initialising resolver", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctx.Done()
		slog.Info("shutdown signal received, saving artists enriched so far")
	}()

	var metricsServer *http.Server
	if cfg.MetricsAddr != "" {
		metricsServer = &http.Server{
			Addr:    cfg.MetricsAddr,
			Handler: promhttp.HandlerFor(res.Metrics.Registry, promhttp.HandlerOpts{}),
		}
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("metrics server failed", slog.Any("error", err))
			}
		}()
		slog.Info("metrics server enabled", slog.String("addr", cfg.MetricsAddr))
	}

	result, metrics, err := run(ctx, cfg, res, catalog.SleepDelay{Duration: cfg.Delay}, os.Stdout)

	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("metrics server shutdown failed", slog.Any("error", err))
		}
		cancel()
	}
	stop()

	if err != nil {
		if errors.Is(err, pipeline.ErrInputNotFound) {
			fmt.Fprintf(os.Stderr, "Input CSV not found: %s\n", cfg.InputFile)
			os.Exit(1)
		}
		slog.Error("building catalog failed", slog.Any("error", err))
		os.Exit(1)
	}

	printSummary(result, cfg.OutputFile, metrics)
}

// run reads the input, enriches every artist and writes the catalog. The
// output file is closed on every return path, and records accepted before a
// failure are still written.
func run(ctx context.Context, cfg *config.Config, res catalog.ImageResolver, delay catalog.Delayer, progress io.Writer) (result *models.CatalogResult, metrics map[string]interface{}, err error) {
	names, err := catalog.LoadNames(cfg)
	if err != nil {
		return nil, nil, err
	}
	fmt.Fprintf(progress, "Unique artists detected: %d\n", len(names))

	writer, err := pipeline.NewJSONWriter(cfg.OutputFile)
	if err != nil {
		return nil, nil, fmt.Errorf("create writer: %w", err)
	}
	defer func() {
		if closeErr := writer.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close writer: %w", closeErr))
		}
	}()

	p := pipeline.NewPipeline(writer)
	builder := catalog.NewBuilder(cfg, res, delay)
	builder.Progress = progress

	result, runErr := builder.Run(ctx, names, p)
	if closeErr := p.Close(); closeErr != nil {
		return nil, nil, errors.Join(runErr, fmt.Errorf("write catalog: %w", closeErr))
	}
	if runErr != nil {
		return nil, nil, runErr
	}
	if err := writer.Validate(); err != nil {
		return nil, nil, fmt.Errorf("validate output: %w", err)
	}
	return result, p.GetMetrics(), nil
}

func buildConfigFromFlags(verbose bool, metricsAddr string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Verbose = verbose
	cfg.MetricsAddr = metricsAddr
	return cfg
}

func printSummary(result *models.CatalogResult, outputFile string, metrics map[string]interface{}) {
	saved := int64(0)
	if processed, ok := metrics["processed_records"].(int64); ok {
		saved = processed
	}

	separator := "--------------------------------------------------"
	fmt.Println("\n" + separator)
	if result.Interrupted {
		fmt.Println("Catalog interrupted")
	} else {
		fmt.Println("Catalog complete")
	}
	fmt.Printf("  Artists saved: %d\n", saved)
	fmt.Printf("  Images found:  %d\n", result.FoundCount)
	fmt.Printf("  Placeholders:  %d\n", result.Placeholders)
	if result.Rejected > 0 {
		fmt.Printf("  Rejected:      %d\n", result.Rejected)
	}
	if len(result.ErrorsByType) > 0 {
		fmt.Printf("  Misses:        %v\n", result.ErrorsByType)
	}
	fmt.Printf("  Duration:      %v\n", result.EndTime.Sub(result.StartTime).Round(time.Millisecond))
	fmt.Printf("  Output file:   %s\n", outputFile)
	fmt.Println(separator)
}

func newLogger(verbose bool) (*slog.Logger, *slog.LevelVar) {
	level := &slog.LevelVar{}
	if verbose {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelInfo)
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if isTerminal(os.Stderr) {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}

	return slog.New(handler), level
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
