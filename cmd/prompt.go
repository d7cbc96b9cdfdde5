package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter supplies the interactive inputs the command flows need. Tests
// substitute canned answers; production reads the terminal.
type Prompter interface {
	// ReadLine prompts for a single visible line of input.
	ReadLine(label string) (string, error)
	// ReadSecret prompts for a line that must not be echoed.
	ReadSecret(label string) (string, error)
	// Confirm asks a yes/no question and reports the answer.
	Confirm(question string) bool
}

// terminalPrompter reads from stdin, masking secrets when stdin is a tty.
type terminalPrompter struct {
	in *bufio.Reader
}

func newTerminalPrompter() *terminalPrompter {
	return &terminalPrompter{in: bufio.NewReader(os.Stdin)}
}

func (p *terminalPrompter) ReadLine(label string) (string, error) {
	fmt.Fprintf(os.Stderr, "%s: ", label)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (p *terminalPrompter) ReadSecret(label string) (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprintf(os.Stderr, "%s: ", label)
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}
	// Piped input: fall back to a plain line read.
	return p.ReadLine(label)
}

func (p *terminalPrompter) Confirm(question string) bool {
	answer, err := p.ReadLine(question + " (y/n)")
	if err != nil {
		return false
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}
