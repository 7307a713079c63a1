package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"go.uber.org/zap"

	"omnibench/internal/config"
	"omnibench/internal/dataset"
	"omnibench/internal/logging"
	"omnibench/internal/oracle"
	"omnibench/internal/report"
	"omnibench/internal/runner"
	"omnibench/internal/spec"
	"omnibench/internal/ui/live"
	"omnibench/internal/vcs"
)

// runOptions are the parsed flags of the run command.
type runOptions struct {
	configPath string
	benchmark  string
	limit      int
	taskFilter string
	workers    int
	output     string
	outputDir  string
	uiMode     string
	verbose    bool
}

// startLiveUI launches the terminal view; tests replace it.
var startLiveUI = func(stdout io.Writer, noColor bool) runObserverCloser {
	return live.Start(stdout, live.Options{NoColor: noColor})
}

type runObserverCloser interface {
	runner.RunObserver
	Close()
	Wait()
}

// now is the run clock.
var now = time.Now

func runRun(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := newFlagSet(cmd, stderr)
		var opts runOptions
		fs.StringVar(&opts.configPath, "config", "", "Path to config file (default: search for .omnibench/config.yml)")
		fs.StringVar(&opts.benchmark, "benchmark", "", "Benchmark id (default: default_benchmark)")
		fs.IntVar(&opts.limit, "limit", -1, "Number of samples to run (default: benchmark limit, 0 means all)")
		fs.StringVar(&opts.taskFilter, "task-filter", "", "Only run samples whose type contains this text")
		fs.IntVar(&opts.workers, "workers", 0, "Concurrent oracle calls (default: benchmark workers)")
		fs.StringVar(&opts.output, "output", "", "Results file path (default: <output_dir>/<benchmark>/<run_id>/results.json)")
		fs.StringVar(&opts.outputDir, "output-dir", "", "Override the results root")
		fs.StringVar(&opts.uiMode, "ui", "auto", "Progress display: auto|live|plain")
		fs.BoolVar(&opts.verbose, "verbose", false, "Log every sample at debug level")
		if code, ok := parseFlags(cmd, fs, args, stdout, stderr); !ok {
			return code
		}
		if rejectArgs(cmd, fs, stderr) {
			return ExitUsage
		}
		decision, err := resolveUIMode(opts.uiMode, opts.verbose, stdout)
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return ExitUsage
		}
		if decision.warning != "" {
			fmt.Fprintln(stderr, decision.warning)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := executeRun(ctx, opts, decision, stdout, stderr); err != nil {
			fmt.Fprintf(stderr, "Run failed: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}

func executeRun(ctx context.Context, opts runOptions, decision uiModeDecision, stdout, stderr io.Writer) error {
	proj, err := loadProject(opts.configPath)
	if err != nil {
		return err
	}
	benchmark, err := proj.benchmark(opts.benchmark)
	if err != nil {
		return err
	}
	applyRunOverrides(&benchmark, opts)

	level := proj.cfg.LogLevel
	if opts.verbose {
		level = "debug"
	}
	logger, err := logging.New(level, stderr)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	logger = logger.With(zap.String("benchmark", benchmark.ID))

	client, err := oracle.NewClient(config.OracleConfig(proj.cfg.Oracle), oracle.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("oracle: %w", err)
	}

	datasetPath := config.ResolvePath(proj.root, benchmark.Dataset)
	kind := dataset.Kind(benchmark.Type)
	if benchmark.ValidateRecords {
		if err := validateDataset(datasetPath, kind); err != nil {
			return err
		}
	}
	collection, err := collectSamples(ctx, datasetPath, benchmark)
	if err != nil {
		return err
	}
	if len(collection.Records) == 0 {
		return fmt.Errorf("no samples selected from %s", datasetPath)
	}
	logger.Info("dataset loaded", zap.String("path", datasetPath), zap.Int("samples", len(collection.Records)), zap.Any("task_counts", collection.TaskCounts))

	runID, err := runner.NewRunID(now())
	if err != nil {
		return err
	}
	paths, err := runner.NewOutputPaths(proj.outputDir(opts.outputDir), benchmark.ID, runID)
	if err != nil {
		return err
	}
	if opts.output != "" {
		paths.ResultsFile = absPath(opts.output)
	}

	var progress runner.RunObserver
	var liveUI runObserverCloser
	if decision.useLive {
		liveUI = startLiveUI(stdout, decision.noColor)
		progress = liveUI
	} else {
		progress = runner.NewProgressObserver(stdout)
	}
	observer := runner.MultiObserver(progress, runner.LogObserver{Logger: logger})

	metrics := runner.NewMetrics(benchmark.ID)
	maxTokens := benchmark.MaxTokens
	if maxTokens <= 0 {
		maxTokens = proj.cfg.Oracle.MaxTokens
	}
	startedAt := now().UTC()
	var results report.Results
	switch kind {
	case dataset.KindOCR:
		ocr := runner.RunOCR(ctx, runner.OCRRunConfig{
			RunID:       runID,
			Benchmark:   benchmark.ID,
			Model:       client.Model(),
			BaseDir:     collection.BaseDir,
			Workers:     benchmark.Workers,
			Prompt:      benchmark.Prompt,
			MaxTokens:   maxTokens,
			Temperature: proj.cfg.Oracle.Temperature,
			Logger:      logger,
			Metrics:     metrics,
		}, collection.Records, client, observer)
		results = report.Results{Kind: kind, OCR: &ocr}
	case dataset.KindSTT:
		stt := runner.RunSTT(ctx, runner.STTRunConfig{
			RunID:       runID,
			Benchmark:   benchmark.ID,
			Model:       client.Model(),
			BaseDir:     collection.BaseDir,
			Workers:     benchmark.Workers,
			Prompt:      benchmark.Prompt,
			MaxTokens:   maxTokens,
			Temperature: proj.cfg.Oracle.Temperature,
			Logger:      logger,
			Metrics:     metrics,
		}, collection.Records, client, observer)
		results = report.Results{Kind: kind, STT: &stt}
	default:
		return fmt.Errorf("unsupported benchmark type %q", benchmark.Type)
	}
	if liveUI != nil {
		liveUI.Close()
		liveUI.Wait()
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("run interrupted: %w", err)
	}

	manifest := runner.RunManifest{
		RunID:      runID,
		Benchmark:  benchmark.ID,
		Kind:       string(kind),
		Model:      client.Model(),
		Dataset:    datasetPath,
		Workers:    benchmark.Workers,
		Limit:      benchmark.Limit,
		TaskFilter: benchmark.TaskFilter,
		TaskCounts: collection.TaskCounts,
		Repo:       describeRepo(ctx, proj.root),
		StartedAt:  startedAt,
		FinishedAt: now().UTC(),
	}
	if err := writeRun(ctx, paths, manifest, results, metrics); err != nil {
		return err
	}

	fmt.Fprintln(stdout)
	if err := report.WriteSummary(stdout, results, report.SummaryOptions{
		Title:   benchmark.ID + " / " + runID,
		NoColor: decision.noColor,
	}); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "\nResults: %s\n", paths.ResultsPath())
	fmt.Fprintf(stdout, "Report: %s\n", paths.ReportPath())
	return nil
}

// applyRunOverrides layers command-line flags over the benchmark config.
func applyRunOverrides(benchmark *spec.BenchmarkConfig, opts runOptions) {
	if opts.limit >= 0 {
		benchmark.Limit = opts.limit
	}
	if strings.TrimSpace(opts.taskFilter) != "" {
		benchmark.TaskFilter = opts.taskFilter
	}
	if opts.workers > 0 {
		benchmark.Workers = opts.workers
	}
	if benchmark.Workers <= 0 {
		benchmark.Workers = runner.DefaultWorkers
	}
}

func validateDataset(path string, kind dataset.Kind) error {
	count, issues, err := dataset.ValidateFile(path, kind, maxReportedIssues)
	if err != nil {
		return fmt.Errorf("validate dataset: %w", err)
	}
	if len(issues) == 0 {
		return nil
	}
	lines := make([]string, 0, len(issues))
	for _, issue := range issues {
		lines = append(lines, fmt.Sprintf("record %d: %s", issue.Index, issue.Message))
	}
	return fmt.Errorf("dataset has invalid records among %d:\n  %s", count, strings.Join(lines, "\n  "))
}

func collectSamples(ctx context.Context, path string, benchmark spec.BenchmarkConfig) (dataset.Collection, error) {
	reader, err := dataset.Open(path)
	if err != nil {
		return dataset.Collection{}, err
	}
	defer reader.Close()
	collection, err := dataset.Collect(ctx, reader, dataset.CollectOptions{
		Limit:      benchmark.Limit,
		TaskFilter: benchmark.TaskFilter,
	})
	if err != nil {
		return dataset.Collection{}, fmt.Errorf("load dataset: %w", err)
	}
	return collection, nil
}

// describeRepo returns git metadata for root, or nil outside a repository.
func describeRepo(ctx context.Context, root string) *runner.RepoMetadata {
	meta, ok := vcs.Describe(ctx, root)
	if !ok {
		return nil
	}
	return &runner.RepoMetadata{
		Name:   meta.Name,
		Commit: meta.Commit,
		Branch: meta.Branch,
		Dirty:  meta.Dirty,
	}
}

// writeRun persists results, manifest, HTML report and metrics for a run.
func writeRun(ctx context.Context, paths runner.OutputPaths, manifest runner.RunManifest, results report.Results, metrics *runner.Metrics) error {
	var payload any = results.OCR
	if results.Kind == dataset.KindSTT {
		payload = results.STT
	}
	reportManifest := manifest
	reportManifest.ResultsPath = paths.ResultsPath()
	return runner.WriteRunOutputs(paths, runner.RunOutputs{
		Manifest: manifest,
		Payload:  payload,
		Metrics:  metrics,
		Report: func(w io.Writer) error {
			return report.RenderRunHTML(ctx, w, report.Run{Dir: paths.RunDir(), Manifest: reportManifest, Results: results})
		},
	})
}
