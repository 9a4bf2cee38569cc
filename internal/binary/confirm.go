package binary

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Confirmer answers yes/no confirmation prompts. Injected so scripted runs
// and tests can supply deterministic answers instead of a console read.
type Confirmer interface {
	// Confirm asks a question and returns the operator's answer.
	// defaultYes selects the answer for an empty response.
	Confirm(prompt string, defaultYes bool) (bool, error)
}

// StdinConfirmer prompts on an output stream and reads the answer from an
// input stream, one line per question.
type StdinConfirmer struct {
	In  io.Reader
	Out io.Writer
}

// NewStdinConfirmer creates a confirmer wired to the process's stdin/stdout.
func NewStdinConfirmer() *StdinConfirmer {
	return &StdinConfirmer{In: os.Stdin, Out: os.Stdout}
}

// Confirm prints "<prompt> [y/N]: " (or [Y/n] when defaultYes) and reads one
// line. Recognized affirmatives are "y"/"yes", negatives "n"/"no", in any
// case; anything else resolves to the default.
func (c *StdinConfirmer) Confirm(prompt string, defaultYes bool) (bool, error) {
	suffix := "[y/N]"
	if defaultYes {
		suffix = "[Y/n]"
	}

	fmt.Fprintf(c.Out, "%s %s: ", prompt, suffix)

	reader := bufio.NewReader(c.In)
	response, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("read input: %w", err)
	}

	switch strings.TrimSpace(strings.ToLower(response)) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	default:
		return defaultYes, nil
	}
}

// AutoConfirmer answers yes to every prompt (the --yes flag).
type AutoConfirmer struct{}

// Confirm always returns true.
func (AutoConfirmer) Confirm(prompt string, defaultYes bool) (bool, error) {
	return true, nil
}
