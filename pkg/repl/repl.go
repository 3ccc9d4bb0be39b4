// Package repl runs the interactive question loop.
package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

const (
	// Prompt is written before every line of input.
	Prompt = "Ask a question (or type 'quit' to exit): "
	// ExitSentinel ends the loop when entered in any letter case.
	ExitSentinel = "quit"
)

// Asker answers a single question.
type Asker interface {
	Ask(ctx context.Context, question string) (string, error)
}

var promptColor = color.New(color.FgCyan, color.Bold)

// IsExit reports whether line is the exit sentinel.
func IsExit(line string) bool {
	return strings.EqualFold(line, ExitSentinel)
}

// Run prompts on out, reads questions from in and prints each answer until
// the exit sentinel or end of input. The first failed question stops the
// loop and its error is returned; nothing is printed for it.
func Run(ctx context.Context, in io.Reader, out io.Writer, asker Asker) error {
	r := bufio.NewReader(in)
	for {
		promptColor.Fprint(out, Prompt)

		line, err := r.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("reading input: %w", err)
		}
		eof := err != nil
		if eof && line == "" {
			fmt.Fprintln(out)
			return nil
		}

		line = strings.TrimRight(line, "\r\n")
		if IsExit(line) {
			return nil
		}

		answer, err := asker.Ask(ctx, line)
		if err != nil {
			return fmt.Errorf("answering %q: %w", line, err)
		}
		fmt.Fprintf(out, "Response: %s\n\n", answer)

		if eof {
			return nil
		}
	}
}
