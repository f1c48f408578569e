package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/Amr-9/ZeroHunter/internal/config"
)

// Prompter reads interactive answers from a reader and writes prompts to
// the console's status stream.
type Prompter struct {
	console *Console
	reader  *bufio.Reader
}

// NewPrompter creates a Prompter reading from r.
func NewPrompter(console *Console, r io.Reader) *Prompter {
	return &Prompter{console: console, reader: bufio.NewReader(r)}
}

// GetInputFromUser prompts for the zero count and the target count.
// Empty answers keep the defaults; invalid ones are asked again.
func (p *Prompter) GetInputFromUser(zeros, find int) (int, int, error) {
	p.printf("    %s🎯 TARGET%s\n", p.console.c(ColorPurple+ColorBold), p.console.c(ColorReset))

	zeros, err := p.promptCount(config.KeyZeros, "Trailing zeros", zeros)
	if err != nil {
		return 0, 0, err
	}
	find, err = p.promptCount(config.KeyFind, "Matches to find", find)
	if err != nil {
		return 0, 0, err
	}
	return zeros, find, nil
}

func (p *Prompter) promptCount(key, label string, def int) (int, error) {
	for {
		p.printf("    %s%s%s (%d-%d) [%d]: ", p.console.c(ColorCyan), label, p.console.c(ColorReset),
			config.MinCount, config.MaxCount, def)

		line, err := p.reader.ReadString('\n')
		line = strings.TrimSpace(line)
		if line == "" {
			if err != nil {
				return 0, err
			}
			return def, nil
		}

		n, perr := config.ParseCount(key, line)
		if perr == nil {
			return n, nil
		}
		p.printf("    %s⚠ Invalid! %v%s\n", p.console.c(ColorRed), perr, p.console.c(ColorReset))
		if err != nil {
			return 0, err
		}
	}
}

// AskToContinue prompts user to continue or exit
func (p *Prompter) AskToContinue() bool {
	p.printf("\n    %s[Enter]%s Search again  │  %s[Q]%s Exit\n",
		p.console.c(ColorGreen), p.console.c(ColorReset), p.console.c(ColorRed), p.console.c(ColorReset))
	p.printf("    %s→%s ", p.console.c(ColorCyan), p.console.c(ColorReset))

	input, err := p.reader.ReadString('\n')
	if err != nil && input == "" {
		return false
	}
	input = strings.TrimSpace(strings.ToLower(input))
	return input != "q" && input != "quit" && input != "exit"
}

func (p *Prompter) printf(format string, args ...any) {
	p.console.mu.Lock()
	defer p.console.mu.Unlock()
	fmt.Fprintf(p.console.status, format, args...)
}
