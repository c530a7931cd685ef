package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"time"

	"github.com/howeyc/fsnotify"

	"github.com/nf/nint/intcode"
)

// devMode runs the program in progFile, and runs it again each time the
// file changes, until ctx is done. Input comes from the preloaded values;
// output is written to out.
func devMode(ctx context.Context, progFile string, input []int, out io.Writer) error {
	progFile = filepath.Clean(progFile)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Watch(filepath.Dir(progFile)); err != nil {
		return err
	}

	run := time.After(1 * time.Millisecond)
	for {
		select {
		case <-run:
			log.Printf("dev: run %s", filepath.Base(progFile))
			devRun(ctx, progFile, input, out)
		case ev := <-watcher.Event:
			if filepath.Clean(ev.Name) == progFile && !ev.IsAttrib() {
				run = time.After(100 * time.Millisecond)
			}
		case err := <-watcher.Error:
			log.Printf("dev: watcher: %v", err)
		case <-ctx.Done():
			return nil
		}
	}
}

func devRun(ctx context.Context, progFile string, input []int, out io.Writer) {
	prog, err := readProgram(progFile)
	if err != nil {
		log.Printf("dev: %v", err)
		return
	}
	tape := &intcode.Tape{Input: append([]int(nil), input...)}
	m, err := intcode.New(prog, tape)
	if err != nil {
		log.Printf("dev: %v", err)
		return
	}
	steps, err := m.RunContext(ctx)
	for _, v := range tape.Output {
		fmt.Fprintln(out, v)
	}
	if err != nil {
		log.Printf("dev: %v after %d steps", err, steps)
		return
	}
	log.Printf("dev: halted after %d steps; result %d", steps, m.Mem[0])
}
