package vm

import (
	"monke/code"
	"monke/object"
)

// Frame is a VM call activation: the closure being executed, its
// instruction pointer, and the base pointer into the data stack marking
// the start of its local-variable region.
type Frame struct {
	cl          *object.Closure
	ip          int
	basePointer int
}

// NewFrame starts a frame for cl with its locals region beginning at
// basePointer.
func NewFrame(cl *object.Closure, basePointer int) *Frame {
	return &Frame{cl: cl, ip: -1, basePointer: basePointer}
}

func (f *Frame) Instructions() code.Instructions {
	return f.cl.Fn.Instructions
}
