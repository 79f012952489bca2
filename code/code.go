// Package code defines the bytecode instruction format shared by the
// compiler and the virtual machine: opcodes, operand widths, and the
// encode/decode/disassemble routines that operate on them.
package code

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Instructions is a flat byte-encoded stream of opcodes and their operands.
type Instructions []byte

// Opcode is a single byte identifying an instruction.
type Opcode byte

const (
	PConstant Opcode = iota
	PTrue
	PFalse
	PNull
	Pop

	Add
	Sub
	Mul
	Div

	Equal
	NotEqual
	GreaterThan

	Minus
	Bang

	Jump
	JumpNT

	SetGlobal
	GetGlobal

	SetLocal
	GetLocal

	GetBuiltin
	GetFree

	PArray
	PHash
	Index

	Call
	ReturnValue
	Return

	Closure
)

// Definition names an opcode and the byte width of each of its operands, in
// order. Widths drive both encoding and disassembly.
type Definition struct {
	Name          string
	OperandWidths []int
}

var definitions = map[Opcode]*Definition{
	PConstant: {"PConstant", []int{2}},
	PTrue:     {"PTrue", []int{}},
	PFalse:    {"PFalse", []int{}},
	PNull:     {"PNull", []int{}},
	Pop:       {"Pop", []int{}},

	Add: {"Add", []int{}},
	Sub: {"Sub", []int{}},
	Mul: {"Mul", []int{}},
	Div: {"Div", []int{}},

	Equal:       {"Equal", []int{}},
	NotEqual:    {"NotEqual", []int{}},
	GreaterThan: {"GreaterThan", []int{}},

	Minus: {"Minus", []int{}},
	Bang:  {"Bang", []int{}},

	Jump:   {"Jump", []int{2}},
	JumpNT: {"JumpNT", []int{2}},

	SetGlobal: {"SetGlobal", []int{2}},
	GetGlobal: {"GetGlobal", []int{2}},

	SetLocal: {"SetLocal", []int{1}},
	GetLocal: {"GetLocal", []int{1}},

	GetBuiltin: {"GetBuiltin", []int{1}},
	GetFree:    {"GetFree", []int{1}},

	PArray: {"PArray", []int{2}},
	PHash:  {"PHash", []int{2}},
	Index:  {"Index", []int{}},

	Call:        {"Call", []int{1}},
	ReturnValue: {"ReturnValue", []int{}},
	Return:      {"Return", []int{}},

	Closure: {"Closure", []int{2, 1}},
}

// Lookup returns op's Definition, or an error if op is not a known opcode.
// The disassembler routes through this so an unknown opcode is reported
// rather than silently mis-decoded. Make does not call Lookup: for an
// opcode with no Definition it returns an empty Instructions.
func Lookup(op byte) (*Definition, error) {
	def, ok := definitions[Opcode(op)]
	if !ok {
		return nil, fmt.Errorf("opcode %d undefined", op)
	}
	return def, nil
}

// Make encodes a single instruction: op followed by its operands, each
// packed big-endian into the width Definition declares for that position.
func Make(op Opcode, operands ...int) Instructions {
	def, ok := definitions[op]
	if !ok {
		return Instructions{}
	}

	instructionLen := 1
	for _, w := range def.OperandWidths {
		instructionLen += w
	}

	instruction := make(Instructions, instructionLen)
	instruction[0] = byte(op)

	offset := 1
	for i, operand := range operands {
		width := def.OperandWidths[i]
		switch width {
		case 2:
			binary.BigEndian.PutUint16(instruction[offset:], uint16(operand))
		case 1:
			instruction[offset] = byte(operand)
		}
		offset += width
	}

	return instruction
}

// ReadUint16 decodes a big-endian uint16 operand at the start of ins.
func ReadUint16(ins Instructions) uint16 {
	return binary.BigEndian.Uint16(ins)
}

// ReadUint8 decodes a single-byte operand at the start of ins.
func ReadUint8(ins Instructions) uint8 {
	return uint8(ins[0])
}

// ReadOperands decodes the operands of def starting at ins[0], returning
// the decoded values and the number of bytes consumed.
func ReadOperands(def *Definition, ins Instructions) ([]int, int) {
	operands := make([]int, len(def.OperandWidths))
	offset := 0

	for i, width := range def.OperandWidths {
		switch width {
		case 2:
			operands[i] = int(ReadUint16(ins[offset:]))
		case 1:
			operands[i] = int(ReadUint8(ins[offset:]))
		}
		offset += width
	}

	return operands, offset
}

// String renders ins in the stable disassembly format used by the `emit`
// subcommand and by compiler tests: one line per instruction, formatted as
// "%04x OPNAME op1 op2 ...".
func (ins Instructions) String() string {
	var out bytes.Buffer

	i := 0
	for i < len(ins) {
		def, err := Lookup(ins[i])
		if err != nil {
			fmt.Fprintf(&out, "ERROR: %s\n", err)
			i++
			continue
		}

		operands, read := ReadOperands(def, ins[i+1:])

		fmt.Fprintf(&out, "%04x %s\n", i, ins.fmtInstruction(def, operands))

		i += 1 + read
	}

	return out.String()
}

func (ins Instructions) fmtInstruction(def *Definition, operands []int) string {
	operandCount := len(def.OperandWidths)
	if len(operands) != operandCount {
		return fmt.Sprintf("ERROR: operand len %d does not match defined %d\n", len(operands), operandCount)
	}

	switch operandCount {
	case 0:
		return def.Name
	case 1:
		return fmt.Sprintf("%s %d", def.Name, operands[0])
	case 2:
		return fmt.Sprintf("%s %d %d", def.Name, operands[0], operands[1])
	}

	return fmt.Sprintf("ERROR: unhandled operandCount for %s", def.Name)
}
