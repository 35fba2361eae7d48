package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/doeshing/copywriter-go/internal/ports"
)

// Prompter implements ConfirmationPrompter using stdin/stdout.
type Prompter struct {
	in          *bufio.Reader
	out         io.Writer
	interactive bool
	// tty is set when input is the process's terminal; secrets are read from it without echo.
	tty *os.File
}

// NewPrompter constructs a prompter referencing stdio. Nil arguments mean the
// process stdio, which is interactive only when stdin is a terminal.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	interactive := true
	var tty *os.File
	if in == nil {
		in = os.Stdin
		interactive = isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		if term.IsTerminal(int(os.Stdin.Fd())) {
			tty = os.Stdin
		}
	}
	if out == nil {
		out = os.Stderr
	}
	return &Prompter{
		in:          bufio.NewReader(in),
		out:         out,
		interactive: interactive,
		tty:         tty,
	}
}

// Enabled indicates the prompter can ask questions.
func (p *Prompter) Enabled() bool {
	return p.interactive
}

// Confirm asks a yes/no question; anything but y/yes declines.
func (p *Prompter) Confirm(question string) (bool, error) {
	line, err := p.ReadLine(question + " [y/N]")
	if err != nil {
		return false, err
	}
	line = strings.ToLower(line)
	return line == "y" || line == "yes", nil
}

// ReadLine prints label and returns one trimmed line of input.
func (p *Prompter) ReadLine(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// ReadSecret is ReadLine without echo when input is a terminal.
func (p *Prompter) ReadSecret(label string) (string, error) {
	if p.tty == nil {
		return p.ReadLine(label)
	}
	fmt.Fprintf(p.out, "%s: ", label)
	secret, err := term.ReadPassword(int(p.tty.Fd()))
	fmt.Fprintln(p.out)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(secret)), nil
}

var _ ports.ConfirmationPrompter = (*Prompter)(nil)
