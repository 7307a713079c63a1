package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"omnibench/internal/config"
	"omnibench/internal/vcs"
)

// runInit builds the handler for the init command.
func runInit(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := newFlagSet(cmd, stderr)
		dir := flags.String("dir", "", "Project root (default: git root or current directory)")
		outputFlag := flags.String("output-dir", "", "Results folder (default: prompt)")
		assumeYes := flags.Bool("yes", false, "Accept defaults without prompting")
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}
		if rejectArgs(cmd, flags, stderr) {
			return ExitUsage
		}

		root := strings.TrimSpace(*dir)
		repoRoot := ""
		if root == "" {
			repoRoot = discoverGitRoot("")
			root = repoRoot
			if root == "" {
				wd, err := os.Getwd()
				if err != nil {
					fmt.Fprintf(stderr, "Init failed: %v\n", err)
					return ExitError
				}
				root = wd
			}
		} else {
			root = absPath(root)
			repoRoot = discoverGitRoot(root)
		}

		configDir := config.ConfigDir(root)
		if info, err := os.Stat(configDir); err == nil && !info.IsDir() {
			fmt.Fprintf(stderr, "Init failed: config directory %q is not a directory\n", configDir)
			return ExitError
		}
		configPath := config.ConfigPath(root)
		if _, err := os.Stat(configPath); err == nil {
			fmt.Fprintf(stderr, "Init failed: config file already exists at %q\n", configPath)
			return ExitError
		}

		answers := initAnswers{
			outputDir:    strings.TrimSpace(*outputFlag),
			addGitignore: repoRoot != "",
		}
		if !*assumeYes {
			var err error
			answers, err = askInit(newPrompter(initInput, stdout), configDir, answers)
			if errors.Is(err, errInitCancelled) {
				fmt.Fprintln(stderr, "Init cancelled.")
				return ExitError
			}
			if err != nil {
				fmt.Fprintf(stderr, "Init failed: %v\n", err)
				return ExitError
			}
		}
		outputDir, addGitignore := answers.outputDir, answers.addGitignore
		if outputDir == "" {
			outputDir = config.DefaultOutputDir
		}

		written, err := config.Scaffold(root, outputDir)
		if err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Wrote %s\n", written)
		fmt.Fprintf(stdout, "Wrote sample datasets to %s\n", filepath.Join(configDir, "datasets"))
		if addGitignore {
			updated, err := addGitignoreEntry(repoRoot, config.ResolvePath(root, outputDir))
			if err != nil {
				fmt.Fprintf(stderr, "Init failed: update .gitignore: %v\n", err)
				return ExitError
			}
			if updated {
				fmt.Fprintf(stdout, "Updated %s\n", filepath.Join(repoRoot, ".gitignore"))
			}
		}
		return ExitOK
	}
}

// initInput allows tests to override stdin for init prompts.
var initInput io.Reader = os.Stdin

// discoverGitRoot returns the git root or empty when not found.
func discoverGitRoot(startDir string) string {
	root, err := vcs.DiscoverRepoRoot(context.Background(), startDir)
	if err != nil {
		return ""
	}
	return root
}
