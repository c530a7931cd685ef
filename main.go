// Command nint executes Intcode programs.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"runtime/pprof"
	"strconv"
	"strings"

	"github.com/nf/nint/intcode"
)

func main() {
	log.SetPrefix("nint: ")
	log.SetFlags(0)

	var (
		inputFlag  = flag.String("input", "", "comma-separated input `values`, read before prompting on stdin")
		batchFlag  = flag.Bool("batch", false, "never prompt; input ends with the -input values")
		nounFlag   = flag.Int("noun", -1, "store `n` at address 1 before running")
		verbFlag   = flag.Int("verb", -1, "store `n` at address 2 before running")
		findFlag   = flag.String("find", "", "find the noun and verb that leave `target` at address 0")
		jobsFlag   = flag.Int("j", runtime.NumCPU(), "number of concurrent searches for -find")
		dumpFlag   = flag.Bool("dump", false, "print memory when the program halts")
		disasmFlag = flag.Bool("disasm", false, "print the disassembled program and exit")
		devFlag    = flag.Bool("dev", false, "enable developer mode (re-run the program whenever it changes)")
		debugFlag  = flag.Bool("debug", false, "enable debugger")

		cpuProfileFlag = flag.String("cpu_profile", "", "write CPU profile to `file`")
		memvizFlag     = flag.String("memviz", "", "write a Graphviz rendering of the final machine state to `file`")
		statsFlag      = flag.Bool("statsview", false, "serve runtime statistics over HTTP while running")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [-input values] [-noun n -verb n] [-dump] <program>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "       %s -find target <program>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "       %s <-dev | -debug | -disasm> <program>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
	}
	progFile := flag.Arg(0)

	var input []int
	if *inputFlag != "" {
		var err error
		if input, err = parseInts(*inputFlag); err != nil {
			log.Fatalf("-input: %v", err)
		}
	}

	if *statsFlag {
		launchStatsView(os.Stderr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch {
	case *devFlag:
		if err := devMode(ctx, progFile, input, os.Stdout); err != nil {
			log.Fatal(err)
		}
		return
	case *debugFlag:
		prog, err := readProgram(progFile)
		if err != nil {
			log.Fatal(err)
		}
		syms, err := loadSymbols(progFile + ".sym")
		if err != nil {
			log.Fatal(err)
		}
		if err := debugMode(prog, syms, input); err != nil {
			log.Fatalf("debug: %v", err)
		}
		return
	case *disasmFlag:
		prog, err := readProgram(progFile)
		if err != nil {
			log.Fatal(err)
		}
		syms, err := loadSymbols(progFile + ".sym")
		if err != nil {
			log.Fatal(err)
		}
		disasm(os.Stdout, prog, syms)
		return
	case *findFlag != "":
		target, err := strconv.Atoi(*findFlag)
		if err != nil {
			log.Fatalf("-find: invalid target %q", *findFlag)
		}
		prog, err := readProgram(progFile)
		if err != nil {
			log.Fatal(err)
		}
		noun, verb, err := findNounVerb(ctx, prog, target, *jobsFlag)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("noun %d, verb %d, answer %d\n", noun, verb, searchRange*noun+verb)
		return
	}

	var cpuProfile io.Closer
	if prof := *cpuProfileFlag; prof != "" {
		f, err := os.Create(prof)
		if err != nil {
			log.Fatalf("creating CPU profile file: %v", err)
		}
		pprof.StartCPUProfile(f)
		cpuProfile = f
	}

	var stdin io.Reader = os.Stdin
	if *batchFlag {
		stdin = nil
	}
	cfg := runConfig{
		noun:   *nounFlag,
		verb:   *verbFlag,
		dump:   *dumpFlag,
		memviz: *memvizFlag,
		dev:    newConsole(input, stdin, os.Stdout, os.Stderr),
	}
	err := run(ctx, progFile, cfg)

	if f := cpuProfile; f != nil {
		pprof.StopCPUProfile()
		f.Close()
	}

	if err != nil {
		log.Fatal(err)
	}
}

type runConfig struct {
	noun, verb int
	dump       bool
	memviz     string
	dev        intcode.Device
}

func run(ctx context.Context, progFile string, cfg runConfig) error {
	prog, err := readProgram(progFile)
	if err != nil {
		return err
	}
	if prog, err = patch(prog, cfg.noun, cfg.verb); err != nil {
		return err
	}
	m, err := intcode.New(prog, cfg.dev)
	if err != nil {
		return err
	}
	_, runErr := m.RunContext(ctx)
	if cfg.memviz != "" {
		if err := writeMemviz(cfg.memviz, m); err != nil {
			log.Printf("memviz: %v", err)
		}
	}
	if runErr != nil {
		return runErr
	}
	if cfg.dump {
		fmt.Println(formatMemory(m.Mem))
	}
	return nil
}

func formatMemory(mem intcode.Memory) string {
	s := make([]string, len(mem))
	for i, v := range mem {
		s[i] = strconv.Itoa(v)
	}
	return strings.Join(s, ",")
}

func disasm(w io.Writer, prog []int, syms symbols) {
	mem := intcode.Memory(prog)
	for addr := 0; addr < len(mem); {
		text, width := intcode.Disasm(mem, addr)
		if s := syms.forAddr(addr); len(s) > 0 {
			fmt.Fprintf(w, "%5d  %-32s ; %s\n", addr, text, s[0].label)
		} else {
			fmt.Fprintf(w, "%5d  %s\n", addr, text)
		}
		addr += width
	}
}
