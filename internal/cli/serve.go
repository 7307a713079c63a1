package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"omnibench/internal/logging"
	"omnibench/internal/reportserver"
)

// serveReport is a test seam for running the report server.
var serveReport = reportserver.Serve

// runServe builds the handler for the serve command.
func runServe(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		fs := newFlagSet(cmd, stderr)
		configPath := fs.String("config", "", "Path to config file (default: search for .omnibench/config.yml)")
		addr := fs.String("addr", "127.0.0.1:5000", "Address to listen on")
		outputDir := fs.String("output-dir", "", "Override the results root")
		dbPath := fs.String("db", "", "Warehouse to expose for download (default: config warehouse when present)")
		assetsBaseURL := fs.String("assets-base-url", "", "Base URL for report assets")
		if code, ok := parseFlags(cmd, fs, args, stdout, stderr); !ok {
			return code
		}
		if rejectArgs(cmd, fs, stderr) {
			return ExitUsage
		}
		if strings.TrimSpace(*addr) == "" {
			fmt.Fprintln(stderr, "Missing --addr")
			return ExitUsage
		}

		proj, err := loadProject(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}
		warehouse := ""
		if *dbPath != "" {
			warehouse = proj.warehousePath(*dbPath)
			if _, err := os.Stat(warehouse); err != nil {
				fmt.Fprintf(stderr, "Database not found: %v\n", err)
				return ExitError
			}
		} else if candidate := proj.warehousePath(""); fileExists(candidate) {
			warehouse = candidate
		}

		logger, err := logging.New(proj.cfg.LogLevel, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to build logger: %v\n", err)
			return ExitError
		}
		defer func() { _ = logger.Sync() }()

		cfg := reportserver.Config{
			Addr:          *addr,
			OutputDir:     proj.outputDir(*outputDir),
			DBPath:        warehouse,
			AssetsBaseURL: *assetsBaseURL,
			Logger:        logger,
		}
		cfg.Ready = func(bound string) {
			fmt.Fprintf(stdout, "Serving reports from %s at http://%s\n", cfg.OutputDir, bound)
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := serveReport(ctx, cfg); err != nil {
			fmt.Fprintf(stderr, "Server error: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
