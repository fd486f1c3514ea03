package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// stdinFd is the terminal password prompts read from.
var stdinFd = func() int { return int(os.Stdin.Fd()) }

// GetSimpleText prints a prompt to w and reads one line from reader. The
// trailing newline is trimmed; a partial last line before EOF is returned.
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPassword reads a password from the terminal without echo.
func GetPassword(prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt); err != nil {
		return "", err
	}
	pw, err := readPassword(stdinFd())
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

// terminalPrompt implements views.Prompter over the REPL's reader, so form
// answers and commands come from the same stream.
type terminalPrompt struct {
	reader *bufio.Reader
	out    io.Writer
}

func (p *terminalPrompt) Ask(label, current string) (string, error) {
	prompt := label + ": "
	if current != "" {
		prompt = fmt.Sprintf("%s [%s]: ", label, current)
	}
	return GetSimpleText(p.reader, prompt, p.out)
}

func (p *terminalPrompt) Password(label string) (string, error) {
	return GetPassword(label+": ", p.out)
}

func (p *terminalPrompt) Invalid(err error) {
	fmt.Fprintf(p.out, "%v, try again\n", err)
}
