package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// errNoInput is returned when stdin closes before a required answer.
var errNoInput = errors.New("no input")

// prompter asks questions on out and reads line answers from in.
type prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{scanner: bufio.NewScanner(in), out: out}
}

// ask returns the trimmed answer, or def when the answer is empty.
func (p *prompter) ask(question, def string) (string, error) {
	fmt.Fprint(p.out, question)
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", err
		}
		return def, nil
	}
	if answer := strings.TrimSpace(p.scanner.Text()); answer != "" {
		return answer, nil
	}
	return def, nil
}

func (p *prompter) askRequired(question string) (string, error) {
	answer, err := p.ask(question, "")
	if err != nil {
		return "", err
	}
	if answer == "" {
		return "", errNoInput
	}
	return answer, nil
}

func (p *prompter) askInt(question string, def int) (int, error) {
	answer, err := p.ask(question, strconv.Itoa(def))
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(answer)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid number %q", answer)
	}
	return n, nil
}

func (p *prompter) askYesNo(question string) (bool, error) {
	answer, err := p.ask(question, "n")
	if err != nil {
		return false, err
	}
	return strings.EqualFold(answer, "y") || strings.EqualFold(answer, "yes"), nil
}
