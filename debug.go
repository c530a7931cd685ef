package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/nf/nint/intcode"
)

// debugMode runs prog under the interactive debugger.
func debugMode(prog []int, syms symbols, input []int) error {
	d, err := newDebugger(prog, syms, input)
	if err != nil {
		return err
	}
	log.SetPrefix("")
	log.SetOutput(d.log)
	defer func() {
		log.SetOutput(os.Stderr)
		log.SetPrefix("nint: ")
	}()
	log.Printf("loaded %d cells; type help for commands", len(prog))
	d.refresh()
	return d.Run()
}

type debugger struct {
	prog []int
	m    *intcode.Machine
	tape *intcode.Tape
	syms symbols

	log   *tview.TextView
	watch *tview.TextView
	code  *tview.TextView
	state *tview.TextView
	input *tview.InputField
	cols  *tview.Flex
	rows  *tview.Flex
	app   *tview.Application

	brk     *symbol
	watches []symbol
	logged  int // outputs already written to the log
	err     error
}

const codeLines = 24

func newDebugger(prog []int, syms symbols, input []int) (*debugger, error) {
	tape := &intcode.Tape{Input: append([]int(nil), input...)}
	m, err := intcode.New(prog, tape)
	if err != nil {
		return nil, err
	}
	d := &debugger{
		prog: prog,
		m:    m,
		tape: tape,
		syms: syms,

		log: tview.NewTextView().
			SetMaxLines(1000),
		watch: tview.NewTextView().
			SetWrap(false).
			SetTextAlign(tview.AlignRight),
		code: tview.NewTextView().
			SetWrap(false),
		state: tview.NewTextView().
			SetWrap(false),
		input: tview.NewInputField(),
		cols:  tview.NewFlex(),
		rows: tview.NewFlex().
			SetDirection(tview.FlexRow),
		app: tview.NewApplication(),
	}
	d.watch.SetBackgroundColor(tcell.ColorDarkBlue)
	d.state.SetBackgroundColor(tcell.ColorDarkGrey)
	d.cols.
		AddItem(d.code, 0, 1, false).
		AddItem(d.watch, 0, 1, false).
		AddItem(d.log, 0, 2, false)
	d.rows.
		AddItem(d.cols, 0, 1, false).
		AddItem(d.state, 3, 0, false).
		AddItem(d.input, 1, 0, true)
	d.app.SetRoot(d.rows, true)

	d.input.SetAutocompleteFunc(func(t string) (entries []string) {
		if cmd, arg, ok := strings.Cut(t, " "); ok {
			switch cmd {
			case "b", "break", "w", "watch":
				for _, s := range d.syms.withLabelPrefix(arg) {
					entries = append(entries, cmd+" "+s.label)
				}
			}
		}
		return
	})
	d.input.SetAutocompletedFunc(func(t string, index, src int) bool {
		if src != tview.AutocompletedNavigate {
			d.input.SetText(t)
		}
		return src == tview.AutocompletedEnter || src == tview.AutocompletedClick
	})
	d.input.SetDoneFunc(func(key tcell.Key) {
		if key != tcell.KeyEnter {
			return
		}
		cmd := d.input.GetText()
		if cmd == "" {
			return
		}
		d.input.SetText("")
		if cmd == "exit" {
			d.app.Stop()
			return
		}
		d.command(cmd)
		d.refresh()
	})
	return d, nil
}

func (d *debugger) Run() error { return d.app.Run() }

// command executes a debugger command. It runs on the UI goroutine; the
// machine is only ever touched from there.
func (d *debugger) command(cmd string) {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(cmd), " ")
	arg = strings.TrimSpace(arg)
	switch cmd {
	case "h", "help":
		log.Print("s|step [n]  c|continue  b|break [addr]  w|watch [addr]  in v,...  r|reset  exit")
	case "s", "step":
		n := 1
		if arg != "" {
			v, err := strconv.Atoi(arg)
			if err != nil || v < 1 {
				log.Printf("invalid step count %q", arg)
				return
			}
			n = v
		}
		for i := 0; i < n && d.step(); i++ {
		}
	case "c", "continue":
		for d.step() {
			if d.brk != nil && d.m.PC == d.brk.addr {
				log.Printf("break at %v", *d.brk)
				break
			}
		}
	case "b", "break":
		if arg == "" {
			d.brk = nil
			log.Print("cleared break")
			return
		}
		s, ok := d.syms.resolve(arg)
		if !ok {
			log.Printf("invalid addr %q", arg)
			return
		}
		d.brk = &s
		log.Printf("set break %v", s)
	case "w", "watch":
		if arg == "" {
			d.watches = nil
			log.Print("cleared watches")
			return
		}
		s, ok := d.syms.resolve(arg)
		if !ok {
			log.Printf("invalid address %q", arg)
			return
		}
		d.watches = append(d.watches, s)
		log.Printf("watching %v", s)
	case "in", "input":
		vs, err := parseInts(arg)
		if err != nil {
			log.Printf("input: %v", err)
			return
		}
		d.tape.Input = append(d.tape.Input, vs...)
		log.Printf("queued input %v", vs)
		if len(vs) > 0 && errors.Is(d.err, intcode.ErrInputExhausted) {
			// The faulting IN left PC and memory as they were.
			d.err = nil
			log.Printf("resuming at %d", d.m.PC)
		}
	case "r", "reset":
		if err := d.m.Load(d.prog); err != nil {
			log.Printf("reset: %v", err)
			return
		}
		d.tape.Output = nil
		d.logged = 0
		d.err = nil
		log.Print("reset")
	default:
		log.Printf("unknown command %q", cmd)
	}
}

// step executes one instruction and reports whether the machine can
// continue.
func (d *debugger) step() bool {
	if d.m.Halted() {
		log.Print("halted")
		return false
	}
	if d.err != nil {
		log.Printf("faulted: %v", d.err)
		return false
	}
	if err := d.m.Step(); err != nil {
		d.err = err
		log.Printf("fault: %v", err)
		return false
	}
	for ; d.logged < len(d.tape.Output); d.logged++ {
		log.Printf("output: %d", d.tape.Output[d.logged])
	}
	if d.m.Halted() {
		log.Printf("halted after %d steps; result %d", d.m.Steps(), d.m.Mem[0])
		return false
	}
	return true
}

func (d *debugger) refresh() {
	d.code.SetText(codeListing(d.m, d.syms, codeLines))
	d.watch.SetText(d.watchContent())
	d.state.SetText(stateMsg(d.syms, d.m, d.err))
	switch {
	case d.err != nil:
		d.state.SetTextColor(tcell.ColorWhite)
		d.state.SetBackgroundColor(tcell.ColorDarkRed)
	case d.m.Halted():
		d.state.SetTextColor(tcell.ColorWhite)
		d.state.SetBackgroundColor(tcell.ColorDarkBlue)
	case d.brk != nil && d.m.PC == d.brk.addr:
		d.state.SetTextColor(tcell.ColorYellow)
		d.state.SetBackgroundColor(tcell.ColorDarkBlue)
	default:
		d.state.SetTextColor(tcell.ColorBlack)
		d.state.SetBackgroundColor(tcell.ColorDarkGrey)
	}
}

// codeListing disassembles up to n instructions starting at the machine's
// PC.
func codeListing(m *intcode.Machine, syms symbols, n int) string {
	var b strings.Builder
	for addr := m.PC; n > 0; n-- {
		text, w := intcode.Disasm(m.Mem, addr)
		if w == 0 {
			break
		}
		mark := "  "
		if addr == m.PC {
			mark = "> "
		}
		fmt.Fprintf(&b, "%s%5d  %s", mark, addr, text)
		if s := syms.forAddr(addr); len(s) > 0 {
			fmt.Fprintf(&b, "  ; %s", s[0].label)
		}
		b.WriteByte('\n')
		addr += w
	}
	return b.String()
}

func stateMsg(syms symbols, m *intcode.Machine, err error) string {
	var (
		op    string
		pcSym string
	)
	if m.PC >= 0 && m.PC < len(m.Mem) {
		op, _ = intcode.Disasm(m.Mem, m.PC)
	}
	if s := syms.forAddr(m.PC); len(s) > 0 {
		pcSym = s[0].String() + " -> "
	}
	kind := "       "
	switch {
	case err != nil:
		kind = "[FAULT]"
	case m.Halted():
		kind = "[halt] "
	}
	msg := fmt.Sprintf("%5d %-24s %s %s\nsteps: %d  mem: %d cells",
		m.PC, op, kind, pcSym, m.Steps(), len(m.Mem))
	if err != nil {
		msg += "\n" + err.Error()
	}
	return msg
}

func (d *debugger) watchContent() string {
	var b strings.Builder
	if s := d.brk; s != nil {
		fmt.Fprintf(&b, "%s [%d] brk!\n", s.label, s.addr)
	}
	fmt.Fprintf(&b, "input %v\n", d.tape.Input)
	for _, w := range d.watches {
		fmt.Fprintf(&b, "%s [%d] ", w.label, w.addr)
		if w.addr < len(d.m.Mem) {
			fmt.Fprintf(&b, "%d\n", d.m.Mem[w.addr])
		} else {
			b.WriteString("out of bounds\n")
		}
	}
	return b.String()
}
