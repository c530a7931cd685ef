package intcode

import (
	"fmt"
	"strings"
)

// Op represents an Intcode instruction kind, the two least significant
// decimal digits of an opcode value.
type Op int

const (
	ADD Op = 1
	MUL Op = 2
	IN  Op = 3
	OUT Op = 4
	HLT Op = 99
)

func (o Op) String() string {
	if d, ok := ops[o]; ok {
		return d.name
	}
	return fmt.Sprintf("op(%d)", int(o))
}

// Params reports the number of parameters taken by the instruction.
func (o Op) Params() int { return ops[o].params }

// Width reports the number of memory cells occupied by the instruction,
// including the opcode cell.
func (o Op) Width() int { return 1 + ops[o].params }

// Mode is a parameter addressing mode.
type Mode int

const (
	Position  Mode = 0 // operand is mem[param]
	Immediate Mode = 1 // operand is param
)

func (m Mode) String() string {
	switch m {
	case Position:
		return "position"
	case Immediate:
		return "immediate"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// handler executes a decoded instruction whose operands have been fetched
// into args. Write targets are already resolved to addresses. It returns the
// address of the next instruction.
type handler func(m *Machine, in Instr, pc int, args []int) (next int)

// opDef describes an instruction kind. write is the index of the parameter
// that is a write target, or -1 if there is none.
type opDef struct {
	name   string
	params int
	write  int
	exec   handler
}

var ops map[Op]opDef

func init() {
	ops = map[Op]opDef{
		ADD: {"ADD", 3, 2, execAdd},
		MUL: {"MUL", 3, 2, execMul},
		IN:  {"IN", 1, 0, execIn},
		OUT: {"OUT", 1, -1, execOut},
		HLT: {"HLT", 0, -1, execHalt},
	}
}

// Instr is a decoded opcode value.
type Instr struct {
	Op    Op
	Modes []Mode
}

// Width reports the number of memory cells occupied by the instruction.
func (in Instr) Width() int { return in.Op.Width() }

// Writes reports whether parameter i is a write target.
func (in Instr) Writes(i int) bool { return ops[in.Op].write == i }

// Next returns the address of the instruction following one at pc.
func (in Instr) Next(pc int) int { return pc + in.Width() }

func (in Instr) String() string {
	var b strings.Builder
	b.WriteString(in.Op.String())
	for i, m := range in.Modes {
		b.WriteByte(' ')
		if in.Writes(i) {
			b.WriteString("->")
		}
		if m == Immediate {
			b.WriteByte('#')
		} else {
			b.WriteByte('@')
		}
	}
	return b.String()
}

// Decode splits an opcode value into its instruction kind and one parameter
// mode per parameter that kind takes.
//
// Digits are taken modulo 10 and 100 rounding toward negative infinity, so
// a negative value selects a kind too: -1 is HLT and -99 is ADD.
func Decode(value int) (Instr, error) {
	op := Op(floorMod(value, 100))
	def, ok := ops[op]
	if !ok {
		return Instr{}, decodeFault(BadOpcode, value)
	}
	in := Instr{Op: op, Modes: make([]Mode, def.params)}
	v := value / 100
	for i := range in.Modes {
		m := Mode(floorMod(v, 10))
		v /= 10
		if m != Position && m != Immediate {
			return Instr{}, decodeFault(BadMode, value)
		}
		if m != Position && i == def.write {
			return Instr{}, decodeFault(BadMode, value)
		}
		in.Modes[i] = m
	}
	return in, nil
}

func floorMod(x, n int) int {
	return (x%n + n) % n
}

func decodeFault(f Fault, value int) *FaultError {
	return &FaultError{Fault: f, Value: value, Addr: -1}
}

// Disasm returns a textual form of the instruction at addr in mem and its
// width. Cells that do not decode are rendered as data with width 1.
func Disasm(mem Memory, addr int) (string, int) {
	if addr < 0 || addr >= len(mem) {
		return "", 0
	}
	in, err := Decode(mem[addr])
	if err != nil || addr+in.Width() > len(mem) {
		return fmt.Sprintf("DAT %d", mem[addr]), 1
	}
	var b strings.Builder
	b.WriteString(in.Op.String())
	for i, m := range in.Modes {
		p := mem[addr+1+i]
		b.WriteByte(' ')
		if in.Writes(i) {
			b.WriteString("-> ")
		}
		if m == Immediate {
			fmt.Fprintf(&b, "#%d", p)
		} else {
			fmt.Fprintf(&b, "[%d]", p)
		}
	}
	return b.String(), in.Width()
}
