package intcode

// Memory is the address space of a Machine. It holds both the program and
// its data; its length is fixed once loaded.
type Memory []int

// Operand resolves a parameter for reading. In position mode raw is an
// address and the value stored there is returned; in immediate mode raw is
// returned as is.
func (mem Memory) Operand(raw int, mode Mode) (v int, err error) {
	defer catch(&err)
	return mem.operand(raw, mode), nil
}

// Target resolves a write-target parameter to an address. Write targets are
// always addresses; the mode must be Position.
func (mem Memory) Target(raw int, mode Mode) (addr int, err error) {
	defer catch(&err)
	return mem.target(raw, mode), nil
}

func (mem Memory) operand(raw int, mode Mode) int {
	switch mode {
	case Position:
		return mem.load(raw)
	case Immediate:
		return raw
	}
	panic(&FaultError{Fault: BadMode, Addr: -1})
}

func (mem Memory) target(raw int, mode Mode) int {
	if mode != Position {
		panic(&FaultError{Fault: BadMode, Addr: -1})
	}
	mem.check(raw)
	return raw
}

func (mem Memory) load(addr int) int {
	mem.check(addr)
	return mem[addr]
}

func (mem Memory) store(addr, v int) {
	mem.check(addr)
	mem[addr] = v
}

func (mem Memory) check(addr int) {
	if addr < 0 || addr >= len(mem) {
		panic(&FaultError{Fault: OutOfBounds, Addr: addr})
	}
}

// catch recovers a *FaultError panic into *err. Any other panic is
// re-raised.
func catch(err *error) {
	if e := recover(); e != nil {
		f, ok := e.(*FaultError)
		if !ok {
			panic(e)
		}
		*err = f
	}
}
