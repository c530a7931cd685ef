package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/nf/nint/intcode"
)

// Console is an intcode.Device that prints each output value on its own
// line. Input values are taken from a preloaded queue and then, once that is
// empty, read one per line from stdin after printing a prompt.
type Console struct {
	queue  []int
	stdin  io.Reader // if nil, input ends with the queue
	stdout io.Writer
	prompt io.Writer // may be nil

	lines <-chan string
}

func newConsole(queue []int, stdin io.Reader, stdout, prompt io.Writer) *Console {
	return &Console{queue: queue, stdin: stdin, stdout: stdout, prompt: prompt}
}

func (c *Console) In() (int, error) {
	if len(c.queue) > 0 {
		v := c.queue[0]
		c.queue = c.queue[1:]
		return v, nil
	}
	if c.stdin == nil {
		return 0, intcode.ErrInputExhausted
	}
	if c.lines == nil {
		lines := make(chan string)
		go readLines(c.stdin, lines)
		c.lines = lines
	}
	for {
		if c.prompt != nil {
			fmt.Fprint(c.prompt, "Enter input: ")
		}
		line, ok := <-c.lines
		if !ok {
			return 0, intcode.ErrInputExhausted
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		v, err := strconv.Atoi(line)
		if err != nil {
			log.Printf("invalid input %q", line)
			continue
		}
		return v, nil
	}
}

func (c *Console) Out(v int) error {
	_, err := fmt.Fprintln(c.stdout, v)
	return err
}

func readLines(r io.Reader, lines chan<- string) {
	defer close(lines)
	s := bufio.NewScanner(r)
	for s.Scan() {
		lines <- s.Text()
	}
	if err := s.Err(); err != nil {
		log.Printf("reading stdin: %v", err)
	}
}
