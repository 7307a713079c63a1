package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"omnibench/internal/config"
)

var errInitCancelled = errors.New("init cancelled")

// prompter reads answers to interactive questions, one line per answer.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out}
}

// line reads one answer. io.EOF is returned alongside a final unterminated line.
func (p *prompter) line() (string, error) {
	text, err := p.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(text), err
}

// text asks for a value, returning fallback on an empty answer.
func (p *prompter) text(label, fallback string) (string, error) {
	for {
		if fallback != "" {
			fmt.Fprintf(p.out, "%s [%s]: ", label, fallback)
		} else {
			fmt.Fprintf(p.out, "%s: ", label)
		}
		answer, err := p.line()
		if err != nil && err != io.EOF {
			return "", err
		}
		switch {
		case answer != "":
			return answer, nil
		case fallback != "":
			return fallback, nil
		case err == io.EOF:
			return "", fmt.Errorf("missing input for %s", label)
		}
	}
}

// confirm asks a yes/no question. Unrecognized answers are asked again
// until input runs out.
func (p *prompter) confirm(label string, fallback bool) (bool, error) {
	hint := "y/N"
	if fallback {
		hint = "Y/n"
	}
	for {
		fmt.Fprintf(p.out, "%s [%s]: ", label, hint)
		answer, err := p.line()
		if err != nil && err != io.EOF {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "":
			return fallback, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		if err == io.EOF {
			return false, fmt.Errorf("invalid response %q", answer)
		}
		fmt.Fprintln(p.out, "Please answer yes or no.")
	}
}

// initAnswers holds the choices made while scaffolding a project.
type initAnswers struct {
	outputDir    string
	addGitignore bool
}

// askInit walks through the init questions. Answers already supplied by flags
// are not asked again; the .gitignore question only applies inside a repo.
func askInit(p *prompter, configDir string, preset initAnswers) (initAnswers, error) {
	ok, err := p.confirm(fmt.Sprintf("Initialize omnibench in %s?", configDir), true)
	if err != nil {
		return initAnswers{}, err
	}
	if !ok {
		return initAnswers{}, errInitCancelled
	}
	answers := preset
	if answers.outputDir == "" {
		if answers.outputDir, err = p.text("Results folder", config.DefaultOutputDir); err != nil {
			return initAnswers{}, err
		}
	}
	if answers.addGitignore {
		if answers.addGitignore, err = p.confirm("Add results folder to .gitignore?", true); err != nil {
			return initAnswers{}, err
		}
	}
	return answers, nil
}
