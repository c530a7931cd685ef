package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// readProgram reads and parses the Intcode program in the named file.
func readProgram(name string) ([]int, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	prog, err := parseProgram(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", name, err)
	}
	return prog, nil
}

// parseProgram parses comma-separated decimal integers. Whitespace around
// each value, including a trailing newline, is ignored.
func parseProgram(r io.Reader) ([]int, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	text := strings.TrimSpace(string(b))
	if text == "" {
		return nil, fmt.Errorf("empty program")
	}
	return parseInts(text)
}

func parseInts(text string) ([]int, error) {
	fields := strings.Split(text, ",")
	vs := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("value %d: invalid integer %q", i, strings.TrimSpace(f))
		}
		vs[i] = v
	}
	return vs, nil
}

// patch returns a copy of prog with the given noun and verb stored at
// addresses 1 and 2. A negative noun or verb leaves that address unchanged.
func patch(prog []int, noun, verb int) ([]int, error) {
	if len(prog) < 3 && (noun >= 0 || verb >= 0) {
		return nil, fmt.Errorf("program too short to patch noun and verb")
	}
	p := append([]int(nil), prog...)
	if noun >= 0 {
		p[1] = noun
	}
	if verb >= 0 {
		p[2] = verb
	}
	return p, nil
}
