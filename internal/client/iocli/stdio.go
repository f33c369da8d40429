package iocli

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

type Stdio struct {
	out io.Writer
	fd  int
	tty bool
}

func NewStdio() IO {
	fd := int(os.Stdout.Fd())
	return &Stdio{out: os.Stdout, fd: fd, tty: term.IsTerminal(fd)}
}

// NewWriter returns an IO that writes to w and never reports a terminal.
func NewWriter(w io.Writer) IO {
	return &Stdio{out: w, fd: -1}
}

func (s *Stdio) Println(a ...any) {
	_, _ = fmt.Fprintln(s.out, a...)
}

func (s *Stdio) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(s.out, format, a...)
}

func (s *Stdio) Write(p []byte) (int, error) {
	return s.out.Write(p)
}

func (s *Stdio) IsTerminal() bool {
	return s.tty
}
