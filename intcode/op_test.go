package intcode

import (
	"errors"
	"fmt"
	"testing"
)

func TestDecode(t *testing.T) {
	const (
		P = Position
		I = Immediate
	)
	for _, c := range []struct {
		value int
		op    Op
		modes []Mode
		fault Fault
	}{
		{value: 1, op: ADD, modes: []Mode{P, P, P}},
		{value: 2, op: MUL, modes: []Mode{P, P, P}},
		{value: 3, op: IN, modes: []Mode{P}},
		{value: 4, op: OUT, modes: []Mode{P}},
		{value: 99, op: HLT},
		{value: 1002, op: MUL, modes: []Mode{P, I, P}},
		{value: 1101, op: ADD, modes: []Mode{I, I, P}},
		{value: 101, op: ADD, modes: []Mode{I, P, P}},
		{value: 104, op: OUT, modes: []Mode{I}},
		{value: 1099, op: HLT},
		{value: -1, op: HLT},
		{value: -99, op: ADD, modes: []Mode{P, P, P}},
		{value: -901, op: HLT},

		{value: 0, fault: BadOpcode},
		{value: 5, fault: BadOpcode},
		{value: 42, fault: BadOpcode},
		{value: 98, fault: BadOpcode},
		{value: 100, fault: BadOpcode},
		{value: 1005, fault: BadOpcode},
		{value: -2, fault: BadOpcode},
		{value: -100, fault: BadOpcode},

		{value: 10001, fault: BadMode},
		{value: 11102, fault: BadMode},
		{value: 103, fault: BadMode},
		{value: 201, fault: BadMode},
		{value: 2001, fault: BadMode},
		{value: 904, fault: BadMode},
		{value: -199, fault: BadMode},
	} {
		t.Run(fmt.Sprint(c.value), func(t *testing.T) {
			in, err := Decode(c.value)
			if c.fault != 0 {
				var f *FaultError
				if !errors.As(err, &f) {
					t.Fatalf("Decode(%d) error = %v, want %v", c.value, err, c.fault)
				}
				if f.Fault != c.fault {
					t.Errorf("Decode(%d) fault = %v, want %v", c.value, f.Fault, c.fault)
				}
				if f.Value != c.value {
					t.Errorf("Decode(%d) fault value = %d", c.value, f.Value)
				}
				return
			}
			if err != nil {
				t.Fatalf("Decode(%d) returned error: %v", c.value, err)
			}
			if in.Op != c.op {
				t.Errorf("Decode(%d).Op = %v, want %v", c.value, in.Op, c.op)
			}
			if len(in.Modes) != len(c.modes) {
				t.Fatalf("Decode(%d).Modes = %v, want %v", c.value, in.Modes, c.modes)
			}
			for i := range c.modes {
				if in.Modes[i] != c.modes[i] {
					t.Errorf("Decode(%d).Modes[%d] = %v, want %v", c.value, i, in.Modes[i], c.modes[i])
				}
			}
		})
	}
}

func TestOpWidth(t *testing.T) {
	for op, want := range map[Op]int{
		ADD: 4,
		MUL: 4,
		IN:  2,
		OUT: 2,
		HLT: 1,
	} {
		if got := op.Width(); got != want {
			t.Errorf("%v.Width() = %d, want %d", op, got, want)
		}
		if got := op.Params(); got != want-1 {
			t.Errorf("%v.Params() = %d, want %d", op, got, want-1)
		}
	}
}

func TestInstrWrites(t *testing.T) {
	for _, c := range []struct {
		op    Op
		write int
	}{
		{ADD, 2},
		{MUL, 2},
		{IN, 0},
		{OUT, -1},
		{HLT, -1},
	} {
		in := Instr{Op: c.op}
		for i := 0; i < c.op.Params(); i++ {
			if got, want := in.Writes(i), i == c.write; got != want {
				t.Errorf("%v.Writes(%d) = %v, want %v", c.op, i, got, want)
			}
		}
	}
}

func TestInstrString(t *testing.T) {
	for value, want := range map[int]string{
		1002:  "MUL @ # ->@",
		3:     "IN ->@",
		104:   "OUT #",
		99:    "HLT",
		11101: "",
	} {
		in, err := Decode(value)
		if want == "" {
			if err == nil {
				t.Errorf("Decode(%d) = %v, want error", value, in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("Decode(%d): %v", value, err)
		}
		if got := in.String(); got != want {
			t.Errorf("Decode(%d).String() = %q, want %q", value, got, want)
		}
	}
}

func TestDisasm(t *testing.T) {
	mem := Memory{1002, 4, 3, 4, 33, 3, 9, 104, -5, 99, 1}
	for _, c := range []struct {
		addr  int
		text  string
		width int
	}{
		{0, "MUL [4] #3 -> [4]", 4},
		{4, "DAT 33", 1},
		{5, "IN -> [9]", 2},
		{7, "OUT #-5", 2},
		{9, "HLT", 1},
		{10, "DAT 1", 1}, // ADD without room for its parameters
		{11, "", 0},
		{-1, "", 0},
	} {
		text, width := Disasm(mem, c.addr)
		if text != c.text || width != c.width {
			t.Errorf("Disasm(mem, %d) = %q, %d; want %q, %d", c.addr, text, width, c.text, c.width)
		}
	}
}
