package main

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/nf/nint/intcode"
)

const searchRange = 100 // nouns and verbs are each in [0, searchRange)

var errNotFound = errors.New("no noun and verb produce the target")

// findNounVerb searches for the noun and verb that, patched into addresses
// 1 and 2 of prog, leave target at address 0 when the program halts.
// Candidates that fault are skipped. If several pairs match, the one with
// the smallest 100*noun+verb is returned.
//
// Each noun is searched by its own goroutine, at most workers at a time.
// Every candidate runs on a fresh Machine.
func findNounVerb(ctx context.Context, prog []int, target, workers int) (noun, verb int, err error) {
	if len(prog) < 3 {
		return 0, 0, fmt.Errorf("program too short to patch noun and verb")
	}
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	var (
		mu   sync.Mutex
		best = -1
	)
	for n := 0; n < searchRange; n++ {
		n := n
		g.Go(func() error {
			m := &intcode.Machine{Dev: &intcode.Tape{}}
			p := append([]int(nil), prog...)
			for v := 0; v < searchRange; v++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				p[1], p[2] = n, v
				if err := m.Load(p); err != nil {
					return err
				}
				if _, err := m.RunContext(ctx); err != nil {
					if ctx.Err() != nil {
						return ctx.Err()
					}
					continue
				}
				if m.Mem[0] == target {
					mu.Lock()
					if r := n*searchRange + v; best < 0 || r < best {
						best = r
					}
					mu.Unlock()
					return nil
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, 0, err
	}
	if best < 0 {
		return 0, 0, errNotFound
	}
	return best / searchRange, best % searchRange, nil
}
