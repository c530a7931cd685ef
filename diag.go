package main

import (
	"fmt"
	"io"
	"os"

	"github.com/bradleyjkemp/memviz"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"

	"github.com/nf/nint/intcode"
)

const statsAddr = "localhost:12600"

// launchStatsView serves runtime charts (heap, goroutines, GC) for the
// lifetime of the process.
func launchStatsView(out io.Writer) {
	viewer.SetConfiguration(viewer.WithAddr(statsAddr))
	mgr := statsview.New()
	go mgr.Start()
	fmt.Fprintf(out, "stats server available at http://%s/debug/statsview\n", statsAddr)
}

// writeMemviz writes a Graphviz rendering of the machine's state to the
// named file.
func writeMemviz(name string, m *intcode.Machine) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	memviz.Map(f, m)
	return f.Close()
}
