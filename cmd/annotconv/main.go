// Command annotconv converts annotation files of one format into a single
// generic table, written as CSV or SQLite.
//
// Usage:
//
//	annotconv -job job.yaml
//	annotconv -format aud-seq -o all.csv data/*.txt
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/simonhull/annotkit"
	"github.com/simonhull/annotkit/internal/config"
)

func slogReplaceAttr(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.SourceKey {
		if source, ok := a.Value.Any().(*slog.Source); ok && source.File != "" {
			source.File = filepath.Base(filepath.Dir(source.File)) + "/" + filepath.Base(source.File)
		}
	}
	return a
}

func main() {
	var (
		jobPath = flag.String("job", "", "YAML job file")
		format  = flag.String("format", "", "input format, overrides the job file")
		output  = flag.String("o", "", "output .csv, .sqlite or .db file, overrides the job file")
		verbose = flag.Bool("v", false, "log debug output")
		list    = flag.Bool("list", false, "list the available formats and exit")
		version = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		AddSource:   true,
		Level:       level,
		ReplaceAttr: slogReplaceAttr,
	}))
	slog.SetDefault(logger)

	switch {
	case *version:
		info := annotkit.GetVersionInfo()
		fmt.Printf("annotconv %s (commit %s, built %s, %s)\n", info.Version, info.GitCommit, info.BuildTime, info.GoVersion)
		return
	case *list:
		for _, name := range annotkit.AsList() {
			f, _ := annotkit.ByName(name)
			fmt.Printf("%-16s %v\n", name, f.Ext())
		}
		return
	}

	job, err := buildJob(*jobPath, *format, *output, flag.Args())
	if err != nil {
		slog.Error("failed to load job", slog.String("err", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, job); err != nil {
		slog.Error("conversion failed", slog.String("err", err.Error()))
		os.Exit(1)
	}
}

// buildJob reads the job file, if any, and applies flags, positional inputs
// and the environment on top.
func buildJob(jobPath, format, output string, inputs []string) (config.Job, error) {
	var job config.Job
	if jobPath != "" {
		var err error
		if job, err = config.Load(jobPath); err != nil {
			return job, err
		}
	}
	if format != "" {
		job.Format = format
	}
	if output != "" {
		job.Output = output
	}
	if len(inputs) > 0 {
		job.Inputs = inputs
	}
	job.FromEnv()
	job.SetDefaults()
	if err := job.IsValid(); err != nil {
		return job, fmt.Errorf("invalid job: %w", err)
	}
	return job, nil
}

func run(ctx context.Context, job config.Job) error {
	slog.Debug("starting conversion", slog.Any("job", job.ToMap()))
	start := time.Now()

	paths, err := job.Expand()
	if err != nil {
		return err
	}
	annots, err := annotkit.LoadManyFunc(ctx, job.Format, paths, func(path string) []annotkit.Option {
		return append(job.LoadOptions(path), annotkit.WithLogger(slog.Default()))
	})
	if err != nil {
		return err
	}

	outFormat, err := job.OutputFormat()
	if err != nil {
		return err
	}
	switch outFormat {
	case config.OutputSQLite:
		err = annotkit.ToSQLite(ctx, job.Output, annots, job.WriteOptions()...)
	default:
		err = annotkit.ToCSV(job.Output, annots, job.WriteOptions()...)
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", job.Output, err)
	}

	slog.Info("conversion finished",
		slog.String("format", job.Format),
		slog.Int("files", len(paths)),
		slog.Int("annotations", len(annots)),
		slog.String("output", job.Output),
		slog.Duration("elapsed", time.Since(start)),
	)
	return nil
}
