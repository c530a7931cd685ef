// Package intcode provides an implementation of an Intcode computer, called
// Machine, that can be used to execute Intcode programs.
//
// An Intcode program is a sequence of integers that is both the machine's
// code and its data. Instructions are variable width: an opcode value
// followed by its parameters. The two least significant decimal digits of
// the opcode value select the instruction and each digit above those gives
// the addressing mode of one parameter.
package intcode

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
)

// Machine is an implementation of an Intcode computer.
type Machine struct {
	Mem Memory
	PC  int
	Dev Device

	halted bool
	steps  int
	args   [maxParams]int
}

const maxParams = 3

var (
	// ErrInvalidProgram is returned when loading an empty program.
	ErrInvalidProgram = errors.New("invalid program")

	// ErrHalted is returned by Step if the machine has already halted.
	ErrHalted = errors.New("machine halted")

	// ErrInputExhausted is returned by a Device that has no more input.
	ErrInputExhausted = errors.New("input exhausted")

	// ErrNoDevice is the cause of a DeviceFailure when the machine
	// performs I/O without a Device.
	ErrNoDevice = errors.New("no device")
)

// New returns a Machine with prog loaded at address 0, connected to dev.
func New(prog []int, dev Device) (*Machine, error) {
	m := &Machine{Dev: dev}
	if err := m.Load(prog); err != nil {
		return nil, err
	}
	return m, nil
}

// Load replaces the machine's memory with a copy of prog and resets it to
// execute from address 0. The Device is left unchanged.
func (m *Machine) Load(prog []int) error {
	if len(prog) == 0 {
		return fmt.Errorf("%w: empty", ErrInvalidProgram)
	}
	m.Mem = append(Memory(nil), prog...)
	m.PC = 0
	m.halted = false
	m.steps = 0
	return nil
}

// Halted reports whether the machine has executed a HLT instruction.
func (m *Machine) Halted() bool { return m.halted }

// Steps reports the number of instructions executed since the program was
// loaded.
func (m *Machine) Steps() int { return m.steps }

// Snapshot returns a copy of the machine's memory.
func (m *Machine) Snapshot() []int { return append([]int(nil), m.Mem...) }

// Run executes instructions until the machine halts or faults. It returns
// the number of instructions executed since the program was loaded.
func (m *Machine) Run() (int, error) {
	return m.RunContext(context.Background())
}

// RunContext is like Run but stops between instructions once ctx is done,
// returning ctx.Err().
func (m *Machine) RunContext(ctx context.Context) (int, error) {
	done := ctx.Done()
	for !m.halted {
		if done != nil {
			select {
			case <-done:
				return m.steps, ctx.Err()
			default:
			}
		}
		if err := m.Step(); err != nil {
			return m.steps, err
		}
	}
	return m.steps, nil
}

// Step executes the instruction at m.PC. It returns a *FaultError if the
// instruction cannot be executed, in which case memory and PC are left as
// they were before the instruction.
func (m *Machine) Step() (err error) {
	if m.halted {
		return ErrHalted
	}
	var (
		pc    = m.PC
		value int
		in    Instr
	)
	defer func() {
		if e := recover(); e != nil {
			f, ok := e.(*FaultError)
			if !ok {
				panic(e)
			}
			f.PC, f.Op, f.Value = pc, in.Op, value
			err = f
		}
	}()

	value = m.Mem.load(pc)
	in, err = Decode(value)
	if err != nil {
		panic(err)
	}

	// Resolve every operand and the write target before any handler
	// mutates memory.
	args := m.args[:len(in.Modes)]
	for i, mode := range in.Modes {
		raw := m.Mem.load(pc + 1 + i)
		if in.Writes(i) {
			args[i] = m.Mem.target(raw, mode)
		} else {
			args[i] = m.Mem.operand(raw, mode)
		}
	}

	m.PC = ops[in.Op].exec(m, in, pc, args)
	m.steps++
	return nil
}

func execAdd(m *Machine, in Instr, pc int, args []int) int {
	a, b := args[0], args[1]
	if (b > 0 && a > math.MaxInt-b) || (b < 0 && a < math.MinInt-b) {
		panic(&FaultError{Fault: Overflow, Addr: -1})
	}
	m.Mem.store(args[2], a+b)
	return in.Next(pc)
}

func execMul(m *Machine, in Instr, pc int, args []int) int {
	a, b := args[0], args[1]
	p := a * b
	if a != 0 && (p/a != b || (a == -1 && b == math.MinInt)) {
		panic(&FaultError{Fault: Overflow, Addr: -1})
	}
	m.Mem.store(args[2], p)
	return in.Next(pc)
}

func execIn(m *Machine, in Instr, pc int, args []int) int {
	if m.Dev == nil {
		panic(&FaultError{Fault: DeviceFailure, Addr: -1, Err: ErrNoDevice})
	}
	v, err := m.Dev.In()
	if err != nil {
		f := DeviceFailure
		if errors.Is(err, ErrInputExhausted) {
			f = InputExhausted
		}
		panic(&FaultError{Fault: f, Addr: -1, Err: err})
	}
	m.Mem.store(args[0], v)
	return in.Next(pc)
}

func execOut(m *Machine, in Instr, pc int, args []int) int {
	if m.Dev == nil {
		panic(&FaultError{Fault: DeviceFailure, Addr: -1, Err: ErrNoDevice})
	}
	if err := m.Dev.Out(args[0]); err != nil {
		panic(&FaultError{Fault: DeviceFailure, Addr: -1, Err: err})
	}
	return in.Next(pc)
}

func execHalt(m *Machine, in Instr, pc int, args []int) int {
	m.halted = true
	return in.Next(pc)
}

// FaultError is returned by Step and Run if an instruction cannot be
// decoded or executed.
type FaultError struct {
	Fault
	Op    Op  // zero if the opcode value did not decode
	PC    int // address of the faulting instruction
	Value int // opcode value at PC
	Addr  int // offending address, or -1
	Err   error
}

func (e *FaultError) Error() string {
	var b strings.Builder
	b.WriteString(e.Fault.String())
	if e.Fault == OutOfBounds {
		fmt.Fprintf(&b, " at address %d", e.Addr)
	}
	if e.Err != nil && e.Err != ErrInputExhausted {
		fmt.Fprintf(&b, " (%v)", e.Err)
	}
	if e.Op != 0 {
		fmt.Fprintf(&b, " executing %s (%d) at %d", e.Op, e.Value, e.PC)
	} else {
		fmt.Fprintf(&b, " executing %d at %d", e.Value, e.PC)
	}
	return b.String()
}

func (e *FaultError) Unwrap() error { return e.Err }

// Fault signifies the type of condition that stopped execution.
type Fault byte

const (
	BadOpcode Fault = iota + 1
	BadMode
	OutOfBounds
	InputExhausted
	DeviceFailure
	Overflow
)

func (f Fault) String() string {
	if s, ok := map[Fault]string{
		BadOpcode:      "bad opcode",
		BadMode:        "bad parameter mode",
		OutOfBounds:    "address out of bounds",
		InputExhausted: "input exhausted",
		DeviceFailure:  "device failure",
		Overflow:       "arithmetic overflow",
	}[f]; ok {
		return s
	}
	return fmt.Sprintf("unknown (%.2x)", byte(f))
}
