package console

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Prompter reads one answer per line from in, writing prompts and complaints
// to out. Every method returns io.EOF once the input is exhausted.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

func (p *Prompter) line(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return p.in.Text(), nil
}

// Int asks until it gets an integer in [min, max].
func (p *Prompter) Int(prompt string, min, max int) (int, error) {
	for {
		s, err := p.line(prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			fmt.Fprintln(p.out, "Invalid input. Please enter an integer.")
			continue
		}
		if n < min || n > max {
			fmt.Fprintf(p.out, "Please enter a number between %d and %d.\n", min, max)
			continue
		}
		return n, nil
	}
}

// Action returns the answer lowercased, without validating it.
func (p *Prompter) Action(prompt string) (string, error) {
	s, err := p.line(prompt)
	if err != nil {
		return "", err
	}
	return strings.ToLower(strings.TrimSpace(s)), nil
}
