package batch

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompter supplies the confirmation policy for a batch run. The core
// pipeline never blocks on interactive input; only the batch runner
// consults a Prompter, and tests substitute a scripted one.
type Prompter interface {
	// Confirm asks a yes/no question and reports the answer.
	Confirm(prompt string) (bool, error)
	// Ask requests a free-form value.
	Ask(prompt string) (string, error)
}

// TerminalPrompter reads answers line by line from an input stream,
// typically stdin.
type TerminalPrompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewTerminalPrompter creates a prompter reading from in and writing
// prompts to out.
func NewTerminalPrompter(in io.Reader, out io.Writer) *TerminalPrompter {
	return &TerminalPrompter{
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

// Confirm prints the prompt and accepts only "y" (case-insensitive) as yes.
func (p *TerminalPrompter) Confirm(prompt string) (bool, error) {
	answer, err := p.read(prompt + " (y/n): ")
	if err != nil {
		return false, err
	}

	return strings.EqualFold(answer, "y"), nil
}

// Ask prints the prompt and returns the trimmed answer line.
func (p *TerminalPrompter) Ask(prompt string) (string, error) {
	return p.read(prompt + ": ")
}

func (p *TerminalPrompter) read(prompt string) (string, error) {
	if _, err := fmt.Fprint(p.out, prompt); err != nil {
		return "", err
	}

	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", fmt.Errorf("failed to read answer: %w", err)
		}

		return "", io.EOF
	}

	return strings.TrimSpace(p.scanner.Text()), nil
}
