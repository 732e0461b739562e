// Package main provides the normalizer command-line tool for turning the
// healthsites export into LLM-ready JSON.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"

	"healthsites/internal/config"
	"healthsites/internal/logger"
	"healthsites/internal/pipeline"
	"healthsites/internal/storage"
)

const defaultConfigPath = "configs/normalizer.yaml"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()

	if err != nil {
		logger.NewLogger("error").Error(fmt.Sprintf("❌ %v", err))
		os.Exit(1)
	}
}

// run resolves configuration and executes one pass. Deferred cleanup
// always runs before it returns.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("normalizer", flag.ContinueOnError)
	fs.SetOutput(stderr)

	configFile := fs.String("config", "", "Path to YAML configuration file (default: "+defaultConfigPath+" if present)")
	envFile := fs.String("env", ".env", "Path to .env file with HEALTHSITES_* overrides")
	inputPath := fs.String("input", "", "Path to the healthsites CSV or XLSX export")
	outputPath := fs.String("output", "", "Path to the full JSON output")
	samplePath := fs.String("sample-output", "", "Path to the LLM sample JSON output")
	sampleSize := fs.Int("sample-size", config.DefaultSampleSize, "Number of facilities in the sample output")
	logLevel := fs.String("log-level", "", "Log level: debug, info, warn, error")
	metricsFile := fs.String("metrics-file", "", "Write Prometheus textfile metrics to this path")
	dsn := fs.String("dsn", "", "PostgreSQL DSN to mirror facilities into")
	help := fs.Bool("help", false, "Show usage information")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *help {
		printUsage(fs, stdout)
		return nil
	}

	// defaults < YAML < env < flags
	cfg, err := loadConfig(*configFile, stdout)
	if err != nil {
		return err
	}

	if err := config.LoadEnvFiles(*envFile); err != nil {
		return err
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		n := &cfg.Normalizer
		switch f.Name {
		case "input":
			n.Input.Path = *inputPath
		case "output":
			n.Output.Path = *outputPath
		case "sample-output":
			n.Output.SamplePath = *samplePath
		case "sample-size":
			n.Output.SampleSize = *sampleSize
		case "log-level":
			n.Logging.Level = *logLevel
		case "metrics-file":
			n.Metrics.Textfile = *metricsFile
		case "dsn":
			n.Database.DSN = *dsn
		}
	})

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log := logger.NewLoggerWithWriter(stderr, cfg.Normalizer.Logging.Level, cfg.Normalizer.Logging.Format)
	log.Debug("Configuration resolved", "config", cfg.String())

	p := pipeline.New(cfg, log, stdout)

	if cfg.Normalizer.Database.Enabled() {
		pg, pgErr := storage.NewPostgresWriter(ctx, cfg.Normalizer.Database.DSN, cfg.Normalizer.Database.Table, log)
		if pgErr != nil {
			return fmt.Errorf("database unavailable: %w", pgErr)
		}
		defer pg.Close()

		p.WithSink(pg)
	}

	report, err := p.Run(ctx)
	if err != nil {
		return fmt.Errorf("normalization failed: %w", err)
	}

	log.Info("✅ Done",
		"facilities", report.Result.Stats.FacilitiesEmitted,
		"skipped", report.Result.Stats.RowsSkipped,
		"sample_kb", strconv.FormatFloat(report.Sample.SizeKB(), 'f', 1, 64))

	return nil
}

func loadConfig(path string, stdout io.Writer) (*config.Config, error) {
	if path == "" {
		if _, err := os.Stat(defaultConfigPath); err != nil {
			return config.Default(), nil
		}

		path = defaultConfigPath
	}

	fmt.Fprintf(stdout, "⚙️  Loading configuration from: %s\n", path)

	return config.LoadConfig(path)
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Usage: ./bin/normalizer [OPTIONS]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  ./bin/normalizer")
	fmt.Fprintln(w, "  ./bin/normalizer -input data/healthsites.xlsx -sample-size 25")
	fmt.Fprintln(w, "  HEALTHSITES_DATABASE_DSN=postgres://localhost/hs ./bin/normalizer -metrics-file /var/lib/node_exporter/healthsites.prom")
}
