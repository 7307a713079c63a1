// Package cli implements the omnibench command line.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
)

const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

type Command struct {
	Name    string
	Summary string
	Usage   []string
	Run     func(args []string, stdout, stderr io.Writer) int
}

func Run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stdout)
		return ExitUsage
	}
	if isHelpArg(args[0]) {
		printUsage(stdout)
		return ExitOK
	}

	cmd := findCommand(args[0])
	if cmd == nil {
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", args[0])
		printUsage(stderr)
		return ExitUsage
	}

	return cmd.Run(args[1:], stdout, stderr)
}

func findCommand(name string) *Command {
	for _, cmd := range commands {
		if cmd.Name == name {
			return cmd
		}
	}
	return nil
}

func isHelpArg(arg string) bool {
	switch arg {
	case "-h", "--help", "help":
		return true
	default:
		return false
	}
}

func wantsHelp(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "-h", "--help":
			return true
		}
	}
	return false
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  omnibench <command> [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-9s %s\n", cmd.Name, cmd.Summary)
	}
	fmt.Fprintln(w, "\nUse \"omnibench <command> --help\" for more information.")
}

func printCommandUsage(cmd *Command, w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	for _, line := range cmd.Usage {
		fmt.Fprintf(w, "  %s\n", line)
	}
	if cmd.Summary != "" {
		fmt.Fprintf(w, "\n%s\n", cmd.Summary)
	}
}

// parseFlags parses args into fs. The bool result is false when the caller
// should return code immediately.
func parseFlags(cmd *Command, fs *flag.FlagSet, args []string, stdout, stderr io.Writer) (code int, ok bool) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printCommandUsage(cmd, stdout)
			return ExitOK, false
		}
		fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
		printCommandUsage(cmd, stderr)
		return ExitUsage, false
	}
	return ExitOK, true
}

// rejectArgs reports unexpected positional arguments.
func rejectArgs(cmd *Command, fs *flag.FlagSet, stderr io.Writer) bool {
	if fs.NArg() == 0 {
		return false
	}
	fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
	printCommandUsage(cmd, stderr)
	return true
}

func newFlagSet(cmd *Command, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

func command(name, summary string, usage []string, runner func(cmd *Command) func(args []string, stdout, stderr io.Writer) int) *Command {
	cmd := &Command{
		Name:    name,
		Summary: summary,
		Usage:   usage,
	}
	cmd.Run = runner(cmd)
	return cmd
}

var commands = []*Command{
	command("init", "Scaffold .omnibench/config.yml and sample datasets", []string{
		"omnibench init [--dir <path>] [--output-dir <path>] [--yes]",
	}, runInit),
	command("validate", "Validate the config and benchmark datasets", []string{
		"omnibench validate [--config <path>] [--datasets]",
	}, runValidate),
	command("run", "Run a benchmark against the configured oracle", []string{
		"omnibench run [--benchmark <id>] [--limit <n>] [--task-filter <text>] [--workers <n>]",
		"              [--output <path>] [--ui auto|live|plain] [--verbose] [--config <path>]",
	}, runRun),
	command("score", "Score a dataset that already carries predictions", []string{
		"omnibench score --input <dataset> [--benchmark <name>] [--output <path>]",
	}, runScore),
	command("analyze", "Print statistics for a results file", []string{
		"omnibench analyze [--no-color] <results.json>",
	}, runAnalyze),
	command("report", "Render the HTML report for a run", []string{
		"omnibench report [--benchmark <id>] [--run <run-id>] [--output <path>] [--config <path>]",
	}, runReport),
	command("ingest", "Load runs into the DuckDB warehouse", []string{
		"omnibench ingest [--benchmark <id>] [--run <run-id>] [--all] [--db <path>] [--config <path>]",
	}, runIngest),
	command("history", "List runs stored in the warehouse", []string{
		"omnibench history [--benchmark <id>] [--limit <n>] [--db <path>] [--config <path>]",
	}, runHistory),
	command("serve", "Serve run reports over HTTP", []string{
		"omnibench serve [--addr <host:port>] [--db <path>] [--assets-base-url <url>] [--config <path>]",
	}, runServe),
}
