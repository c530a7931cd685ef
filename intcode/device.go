package intcode

import "context"

// Device provides the input and output systems connected to a Machine.
// In is called once per IN instruction and may block until a value is
// available. Out is called once per OUT instruction, in execution order.
type Device interface {
	In() (int, error)
	Out(v int) error
}

// Tape is a Device that reads from a preloaded slice of input values and
// appends output values to a slice.
type Tape struct {
	Input  []int
	Output []int
}

// In consumes the next input value. It returns ErrInputExhausted once all
// values have been read.
func (t *Tape) In() (int, error) {
	if len(t.Input) == 0 {
		return 0, ErrInputExhausted
	}
	v := t.Input[0]
	t.Input = t.Input[1:]
	return v, nil
}

func (t *Tape) Out(v int) error {
	t.Output = append(t.Output, v)
	return nil
}

// Pipe is a Device that receives input from and sends output to channels,
// for connecting a Machine running in its own goroutine to other parts of
// a program.
type Pipe struct {
	Ctx    context.Context // if nil, In and Out block indefinitely
	Input  <-chan int
	Output chan<- int
}

// In receives the next input value. It returns ErrInputExhausted if the
// input channel is closed, or the context's error if it is done first.
func (p *Pipe) In() (int, error) {
	select {
	case v, ok := <-p.Input:
		if !ok {
			return 0, ErrInputExhausted
		}
		return v, nil
	case <-p.done():
		return 0, p.Ctx.Err()
	}
}

func (p *Pipe) Out(v int) error {
	select {
	case p.Output <- v:
		return nil
	case <-p.done():
		return p.Ctx.Err()
	}
}

func (p *Pipe) done() <-chan struct{} {
	if p.Ctx == nil {
		return nil
	}
	return p.Ctx.Done()
}
