// Package terminal opens the controlling terminal so prompts work even when
// the invoking process has redirected or consumed standard input, as git
// does when it runs hooks.
package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrNoTerminal indicates there is no controlling terminal to prompt on.
var ErrNoTerminal = errors.New("no controlling terminal")

// TTY is a line-oriented prompt bound to a terminal (or, in tests, any
// reader/writer pair).
type TTY struct {
	in     *bufio.Reader
	out    io.Writer
	closer func() error
}

// New wraps an arbitrary reader and writer.
func New(in io.Reader, out io.Writer) *TTY {
	return &TTY{in: bufio.NewReader(in), out: out}
}

// Open returns a TTY reading from and writing to the controlling terminal.
func Open() (*TTY, error) {
	in, out, err := openDevice()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoTerminal, err)
	}
	if !IsInteractive(in) {
		_ = in.Close()
		if out != in {
			_ = out.Close()
		}
		return nil, ErrNoTerminal
	}

	t := New(in, out)
	t.closer = func() error {
		err := in.Close()
		if out != in {
			if cerr := out.Close(); err == nil {
				err = cerr
			}
		}
		return err
	}
	return t, nil
}

// IsInteractive reports whether f is attached to a terminal.
func IsInteractive(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Writer returns the terminal's output side.
func (t *TTY) Writer() io.Writer {
	return t.out
}

// Println writes a line to the terminal.
func (t *TTY) Println(args ...any) {
	fmt.Fprintln(t.out, args...)
}

// ReadLine prints prompt and reads one line, without the trailing newline
// or carriage return. A final line without a newline is returned before
// io.EOF is reported on the next call.
func (t *TTY) ReadLine(prompt string) (string, error) {
	if prompt != "" {
		fmt.Fprint(t.out, prompt)
	}
	line, err := t.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Close releases the terminal device, if one was opened.
func (t *TTY) Close() error {
	if t.closer == nil {
		return nil
	}
	return t.closer()
}
