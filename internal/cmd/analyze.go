package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/harrison/logan/internal/analyzer"
	"github.com/harrison/logan/internal/config"
	"github.com/harrison/logan/internal/display"
	"github.com/harrison/logan/internal/executor"
	"github.com/harrison/logan/internal/fileutil"
	"github.com/harrison/logan/internal/logger"
	"github.com/harrison/logan/internal/models"
	"github.com/harrison/logan/internal/report"
)

// NewAnalyzeCommand creates the analyze command
func NewAnalyzeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [file-or-directory]...",
		Short: "Analyze log files",
		Long: `Analyze one or more log files.

Each line is classified by the severity token in its second whitespace
separated field. WARN and ERROR lines are collected and searched for known
error signatures. Files that cannot be read are reported and counted as zero;
they never stop the rest of the run.

Directory arguments are scanned for files with a matching extension (default
.log). With no arguments the current directory is scanned.
Configuration is loaded from .logan/config.yaml if present.
CLI flags override configuration file settings.

Examples:
  logan analyze                               # *.log in the current directory
  logan analyze app.log
  logan analyze logs/ --recursive --workers 8
  logan analyze logs/ --mode sequential
  logan analyze logs/ --mode compare          # run both and check they agree
  logan analyze logs/ --drain-timeout 30s     # give up on files that hang
  logan analyze logs/ --report out/report.html --report-format html`,
		Args: cobra.ArbitraryArgs,
		RunE: runAnalyze,
	}

	cmd.Flags().String("config", "", "Path to config file (default: .logan/config.yaml)")
	cmd.Flags().String("mode", "", "Runner to use: parallel, sequential or compare")
	cmd.Flags().Int("workers", 0, "Worker pool size (0 = number of CPUs)")
	cmd.Flags().Duration("drain-timeout", 0, "Maximum wait per file in parallel mode (0 = no limit)")
	cmd.Flags().String("log-level", "", "Console log level: trace, debug, info, warn, error")
	cmd.Flags().BoolP("verbose", "v", false, "Shorthand for --log-level debug")
	cmd.Flags().String("log-dir", "", "Directory for per-run log files")
	cmd.Flags().StringSlice("ext", nil, "File extensions picked up from directories (default .log)")
	cmd.Flags().BoolP("recursive", "r", false, "Descend into subdirectories")
	cmd.Flags().String("report", "", "Write a report to this path")
	cmd.Flags().String("report-format", "", "Report format: markdown (md) or html")
	cmd.Flags().Int("max-lines", 0, "Flagged lines printed per file (-1 = all, default 5)")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		args = []string{"."}
	}

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	discovered, err := fileutil.Discover(args, fileutil.ScanOptions{
		Extensions:  cfg.Extensions,
		Recursive:   cfg.Recursive,
		ExcludeDirs: cfg.ExcludeDirs,
	})
	if err != nil {
		return fmt.Errorf("failed to discover log files: %w", err)
	}

	console := logger.NewConsoleLogger(out, cfg.LogLevel)
	console.SetMaxFlaggedLines(cfg.MaxLines)
	for _, scanErr := range discovered.Errors {
		console.LogWarn(scanErr.Error())
	}

	var log executor.Logger = console
	if cfg.LogDir != "" {
		fileLogger, err := logger.NewFileLoggerWithDirAndLevel(cfg.LogDir, cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("failed to create file logger: %w", err)
		}
		defer fileLogger.Close()
		log = executor.MultiLogger{console, fileLogger}
	}

	doc, err := analyze(cmd.Context(), cfg, discovered.Files, log, out)
	if err != nil {
		return err
	}

	if len(discovered.Files) == 0 {
		display.EmptyInputWarning(args).Display(errOut)
	}
	if doc.Run.Summary.FailedFiles > 0 {
		display.FailedFilesWarning(doc.Run.Diagnostics).Display(errOut)
	}

	if cfg.Report.Path != "" {
		if err := writeReport(cfg.Report, doc); err != nil {
			return err
		}
		fmt.Fprintf(out, "Report written to %s\n", cfg.Report.Path)
	}

	if doc.Comparison != nil && !doc.Comparison.Consistent() {
		return fmt.Errorf("sequential and parallel results differ")
	}
	return nil
}

// analyze runs the configured mode. Compare mode runs the sequential runner
// first, then the coordinator, and reports on the parallel run.
func analyze(ctx context.Context, cfg *config.Config, files []string, log executor.Logger, out io.Writer) (report.Document, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	an := analyzer.New()

	parallel := func() models.Run {
		coord := executor.NewCoordinator(an, log, cfg.Workers)
		coord.SetDrainTimeout(cfg.DrainTimeout)
		return coord.Run(ctx, files)
	}

	switch cfg.Mode {
	case models.ModeSequential:
		return report.Document{Run: executor.NewSequentialRunner(an, log).Run(ctx, files)}, nil
	case models.ModeParallel:
		return report.Document{Run: parallel()}, nil
	case models.ModeCompare:
		seq := executor.NewSequentialRunner(an, log).Run(ctx, files)
		par := parallel()
		cmp := executor.Compare(seq, par)
		display.Comparison(out, cmp)
		return report.Document{Run: par, Comparison: &cmp}, nil
	default:
		return report.Document{}, fmt.Errorf("unknown mode %q", cfg.Mode)
	}
}

func writeReport(rc config.ReportConfig, doc report.Document) error {
	data, err := report.Render(doc, rc.Format)
	if err != nil {
		return err
	}
	if err := report.Write(rc.Path, data); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// loadConfig reads the config file and applies the flags the user set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	var err error

	configPath, _ := cmd.Flags().GetString("config")
	if configPath != "" {
		cfg, err = config.LoadConfig(configPath)
	} else {
		cfg, err = config.LoadConfigFromDir(".")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	var o config.Overrides

	if flags.Changed("mode") {
		v, _ := flags.GetString("mode")
		o.Mode = &v
	}
	if flags.Changed("workers") {
		v, _ := flags.GetInt("workers")
		o.Workers = &v
	}
	if flags.Changed("drain-timeout") {
		v, _ := flags.GetDuration("drain-timeout")
		o.DrainTimeout = &v
	}
	if flags.Changed("log-level") {
		v, _ := flags.GetString("log-level")
		o.LogLevel = &v
	} else if verbose, _ := flags.GetBool("verbose"); verbose {
		v := "debug"
		o.LogLevel = &v
	}
	if flags.Changed("log-dir") {
		v, _ := flags.GetString("log-dir")
		o.LogDir = &v
	}
	if flags.Changed("ext") {
		v, _ := flags.GetStringSlice("ext")
		o.Extensions = &v
	}
	if flags.Changed("recursive") {
		v, _ := flags.GetBool("recursive")
		o.Recursive = &v
	}
	if flags.Changed("max-lines") {
		v, _ := flags.GetInt("max-lines")
		o.MaxLines = &v
	}
	if flags.Changed("report") {
		v, _ := flags.GetString("report")
		o.ReportPath = &v
	}
	if flags.Changed("report-format") {
		v, _ := flags.GetString("report-format")
		o.ReportFormat = &v
	}

	cfg.MergeWithFlags(o)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
