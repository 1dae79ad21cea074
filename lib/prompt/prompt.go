// Package prompt implements the interactive half of the cli: labeled line
// input, masked password entry and numbered option menus. Everything reads
// and writes through injected streams so flows can be scripted in tests.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/term"
)

// DefaultYear is what an empty year answer means. Bumped each academic
// year.
const DefaultYear = "2025"

type Prompter struct {
	in  *bufio.Reader
	out io.Writer
	// fd of the input when it is a real terminal, -1 otherwise. Only
	// password entry cares: masking needs raw terminal access.
	fd int
}

// New returns a prompter over arbitrary streams. Password entry degrades
// to plain lines because there is no terminal to mask.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out, fd: -1}
}

// NewStdio returns a prompter on the process's stdin and stdout.
func NewStdio() *Prompter {
	return &Prompter{
		in:  bufio.NewReader(os.Stdin),
		out: os.Stdout,
		fd:  int(os.Stdin.Fd()),
	}
}

// Line prints label and returns one line of input without its ending.
func (p *Prompter) Line(label string) (string, error) {
	fmt.Fprint(p.out, label)
	return p.readLine()
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Password prints label and reads a secret. On a terminal the input is
// masked; on a pipe it falls back to a plain line.
func (p *Prompter) Password(label string) (string, error) {
	fmt.Fprint(p.out, label)
	if p.fd >= 0 && term.IsTerminal(p.fd) {
		secret, err := term.ReadPassword(p.fd)
		fmt.Fprintln(p.out)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(secret), nil
	}
	return p.readLine()
}

// Year asks until it gets a four digit year. An empty answer means
// DefaultYear.
func (p *Prompter) Year() (string, error) {
	for {
		answer, err := p.Line(">> 【年度】を入力 (例: 2025, Enterで" + DefaultYear + "): ")
		if err != nil {
			return "", err
		}
		if answer == "" {
			return DefaultYear, nil
		}
		if isYear(answer) {
			return answer, nil
		}
		fmt.Fprintln(p.out, "エラー: 4桁の西暦を入力してください。")
	}
}

func isYear(s string) bool {
	if len(s) != 4 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// SelectIndex renders options as a numbered table and asks until it gets a
// valid index. An empty answer picks the first option, which by portal
// convention is the unrestricted one.
func (p *Prompter) SelectIndex(label string, options []string) (string, error) {
	if len(options) == 0 {
		return "", errors.New("no options to choose from")
	}

	fmt.Fprintf(p.out, "\n【%s】を選択してください:\n", label)
	tw := table.NewWriter()
	tw.SetOutputMirror(p.out)
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", label})
	for i, option := range options {
		tw.AppendRow(table.Row{i, option})
	}
	tw.Render()

	for {
		answer, err := p.Line(fmt.Sprintf(">> 番号を入力 (0-%d, Enterで0): ", len(options)-1))
		if err != nil {
			return "", err
		}
		if answer == "" {
			return options[0], nil
		}
		idx, err := strconv.Atoi(answer)
		if err == nil && idx >= 0 && idx < len(options) {
			return options[idx], nil
		}
		fmt.Fprintln(p.out, "エラー: 正しい番号を入力してください。")
	}
}
