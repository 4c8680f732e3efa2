// Command evdetect finds and scores transient events in .dat recordings.
//
// Usage:
//
//	evdetect [flags] [file ...]
//
// Without file arguments it analyzes every regular file in the configured
// input directory that matches the input pattern, in name order.
//
// Examples:
//
//	evdetect run1.dat run2.dat
//	evdetect -dir /data/synthetic -chunk 50000
//	evdetect -config evdetect.yaml -precision 32 -v
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"text/tabwriter"
	"time"

	"github.com/cwbudde/stateful-filter/internal/config"
	"github.com/cwbudde/stateful-filter/internal/datfile"
	"github.com/cwbudde/stateful-filter/internal/logging"
	"github.com/cwbudde/stateful-filter/internal/telemetry"
	"github.com/cwbudde/stateful-filter/measure/detect"
	"github.com/cwbudde/stateful-filter/measure/score"
	stats "github.com/cwbudde/stateful-filter/stats/time"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("evdetect", flag.ContinueOnError)
	fs.SetOutput(stderr)

	configPath := fs.String("config", "", "configuration file (yaml, toml or json)")
	dir := fs.String("dir", "", "input directory scanned when no files are given")
	pattern := fs.String("pattern", "", "file name pattern used with -dir")
	chunk := fs.Int("chunk", 0, "samples per processing chunk")
	sigma := fs.Float64("sigma", 0, "detection threshold in standard deviations")
	precision := fs.Int("precision", 0, "sample precision in bits (32 or 64)")
	workers := fs.Int("workers", 0, "goroutines for the standard deviation (0 = GOMAXPROCS)")
	metricsFile := fs.String("metrics", "", "write Prometheus metrics to this text file")
	verbose := fs.Bool("v", false, "log per-chunk details")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: evdetect [flags] [file ...]\n\n")
		fmt.Fprintf(stderr, "Detects transient events in .dat recordings and scores them\n")
		fmt.Fprintf(stderr, "against the event centroids stored in each file.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nEnvironment variables %s_<SECTION>_<KEY> override the config file.\n", config.EnvPrefix)
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "dir":
			cfg.Input.Dir = *dir
		case "pattern":
			cfg.Input.Pattern = *pattern
		case "chunk":
			cfg.Pipeline.ChunkSize = *chunk
		case "sigma":
			cfg.Pipeline.ThresholdSigma = *sigma
		case "precision":
			cfg.Pipeline.Precision = *precision
		case "workers":
			cfg.Pipeline.Workers = *workers
		case "metrics":
			cfg.Metrics.Textfile = *metricsFile
		case "v":
			if *verbose {
				cfg.Log.Level = "debug"
			}
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}

	cfg.Log.Output = stderr
	logger := logging.New(cfg.Log)
	defer logger.Close()

	files := fs.Args()
	if len(files) == 0 {
		files, err = scanDir(cfg.Input.Dir, cfg.Input.Pattern)
		if err != nil {
			logger.Error("cannot read input directory", slog.String("dir", cfg.Input.Dir), slog.Any("error", err))
			return 1
		}
	}
	if len(files) == 0 {
		logger.Error("no input files", slog.String("dir", cfg.Input.Dir), slog.String("pattern", cfg.Input.Pattern))
		return 1
	}

	rec := telemetry.NewRecorder()
	rep := newReport(stdout)

	failed := 0
	for _, path := range files {
		s, stream, err := analyzeFile(path, cfg, logger.Logger, rec)
		if err != nil {
			failed++
			logger.Warn("skipping file", slog.String("file", path), slog.Any("error", err))
			continue
		}
		rep.add(path, stream, s)
		logger.Info("file analyzed",
			slog.String("file", path),
			slog.String("metrics", s.Metrics.String()),
			slog.Duration("filter_time", s.FilterTime),
			slog.Float64("feature_min", s.Feature.Min),
			slog.Int("feature_min_pos", s.Feature.MinPos),
		)
		if len(s.Missed) > 0 {
			logger.Debug("missed centroids",
				slog.String("file", path),
				slog.Int("count", len(s.Missed)),
				slog.Any("first", s.Missed[:min(15, len(s.Missed))]),
			)
		}
	}

	if err := rep.flush(); err != nil {
		fmt.Fprintf(stderr, "error: failed to write report: %v\n", err)
	}

	if cfg.Metrics.Textfile != "" {
		if err := rec.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			logger.Error("cannot write metrics", slog.String("file", cfg.Metrics.Textfile), slog.Any("error", err))
		}
	}

	if failed == len(files) {
		return 1
	}
	return 0
}

// scanDir lists regular files in dir whose names match pattern, sorted.
func scanDir(dir, pattern string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		ok, err := filepath.Match(pattern, e.Name())
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", pattern, err)
		}
		if ok {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	slices.Sort(files)
	return files, nil
}

func analyzeFile(path string, cfg *config.Config, logger *slog.Logger, obs detect.Observer) (detect.Summary, *datfile.Stream, error) {
	stream, err := datfile.ReadFile(path)
	if err != nil {
		return detect.Summary{}, nil, err
	}

	if logger.Enabled(context.Background(), slog.LevelDebug) {
		in := stats.Calculate(stream.Samples())
		logger.Debug("stream loaded",
			slog.String("file", path),
			slog.Float64("sample_rate", stream.SampleRate()),
			slog.Int("points", stream.Len()),
			slog.Int("centroids", len(stream.Centroids)),
			slog.Any("first_centroids", stream.Centroids[:min(15, len(stream.Centroids))]),
			slog.Float64("mean", in.Mean),
			slog.Float64("rms", in.RMS),
			slog.Float64("min", in.Min),
			slog.Float64("max", in.Max),
		)
	}

	opts := append(cfg.DetectOptions(),
		detect.WithStream(filepath.Base(path)),
		detect.WithSampleInterval(stream.SampleInterval),
		detect.WithLogger(logger),
		detect.WithObserver(obs),
	)

	var s detect.Summary
	if cfg.Pipeline.Precision == 32 {
		s, err = detect.Analyze(datfile.Samples[float32](stream), stream.Centroids, opts...)
	} else {
		s, err = detect.Analyze(stream.Samples(), stream.Centroids, opts...)
	}
	if err != nil {
		return detect.Summary{}, nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, stream, nil
}

type report struct {
	tw   *tabwriter.Writer
	rows int

	points    int
	centroids int
	filter    time.Duration
	total     score.Metrics
}

func newReport(w io.Writer) *report {
	return &report{tw: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (r *report) add(path string, stream *datfile.Stream, s detect.Summary) {
	if r.rows == 0 {
		fmt.Fprintf(r.tw, "File\tRate [Hz]\tPoints\tFilter time\tSpeed [MS/s]\tTP\tCentroids\tFP\tPrecision\tRecall\n")
		fmt.Fprintf(r.tw, "----\t---------\t------\t-----------\t------------\t--\t---------\t--\t---------\t------\n")
	}
	r.rows++
	r.points += stream.Len()
	r.centroids += s.Centroids
	r.filter += s.FilterTime
	r.total = r.total.Add(s.Metrics)
	fmt.Fprintf(r.tw, "%s\t%.0f\t%d\t%v\t%.1f\t%d\t%d\t%d\t%.4f\t%.4f\n",
		filepath.Base(path),
		stream.SampleRate(),
		stream.Len(),
		s.FilterTime.Round(time.Microsecond),
		s.MSamplesPerSecond(),
		s.Metrics.TruePositive,
		s.Centroids,
		s.Metrics.FalsePositive,
		s.Metrics.Precision,
		s.Metrics.Recall,
	)
}

// flush appends a total row when more than one file was reported.
func (r *report) flush() error {
	if r.rows > 1 {
		total := detect.Summary{Samples: r.points, FilterTime: r.filter}
		fmt.Fprintf(r.tw, "Total\t-\t%d\t%v\t%.1f\t%d\t%d\t%d\t%.4f\t%.4f\n",
			r.points,
			r.filter.Round(time.Microsecond),
			total.MSamplesPerSecond(),
			r.total.TruePositive,
			r.centroids,
			r.total.FalsePositive,
			r.total.Precision,
			r.total.Recall,
		)
	}
	return r.tw.Flush()
}
