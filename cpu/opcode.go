package cpu

import (
	"fmt"
)

// Mode is a parameter mode digit.
type Mode int

const (
	MODE_POSITION  = Mode(0) // pos
	MODE_IMMEDIATE = Mode(1) // imm
)

// Operand is a decoded instruction parameter. In position mode Value is
// a cell index; in immediate mode Value is the literal argument.
type Operand struct {
	Mode  Mode
	Value int32
}

// NewOperand decodes a mode digit and a raw operand cell. Any mode digit
// other than 0 or 1 is an InvalidOperand fault. Resolution to a value is
// deferred to execute time, so decoding never faults on bounds.
func NewOperand(mode int32, value int32) (oper Operand, err error) {
	switch Mode(mode) {
	case MODE_POSITION, MODE_IMMEDIATE:
		oper = Operand{Mode: Mode(mode), Value: value}
	default:
		err = faultInvalidOperand(mode)
	}

	return
}

// String returns the operand in assembly-ish notation.
func (oper Operand) String() (out string) {
	switch oper.Mode {
	case MODE_IMMEDIATE:
		out = fmt.Sprintf("#%v", oper.Value)
	default:
		out = fmt.Sprintf("[%v]", oper.Value)
	}

	return
}

// OpCode identifies an instruction. The low two decimal digits of the
// cell at PC.
type OpCode int

const (
	OP_ADD    = OpCode(1)  // ADD
	OP_MUL    = OpCode(2)  // MUL
	OP_INPUT  = OpCode(3)  // INPUT
	OP_OUTPUT = OpCode(4)  // OUTPUT
	OP_JNZ    = OpCode(5)  // JNZ
	OP_JZ     = OpCode(6)  // JZ
	OP_LT     = OpCode(7)  // LT
	OP_EQ     = OpCode(8)  // EQ
	OP_HALT   = OpCode(99) // HALT
)

// String returns the instruction mnemonic.
func (oc OpCode) String() (name string) {
	switch oc {
	case OP_ADD:
		name = "ADD"
	case OP_MUL:
		name = "MUL"
	case OP_INPUT:
		name = "INPUT"
	case OP_OUTPUT:
		name = "OUTPUT"
	case OP_JNZ:
		name = "JNZ"
	case OP_JZ:
		name = "JZ"
	case OP_LT:
		name = "LT"
	case OP_EQ:
		name = "EQ"
	case OP_HALT:
		name = "HALT"
	default:
		name = fmt.Sprintf("OpCode(%d)", int(oc))
	}

	return
}

// Op is a decoded instruction. Src1/Src2 carry value operands already
// tagged with their mode; Dst is always a cell index, since write
// operands resolve as positions regardless of their mode digit.
type Op struct {
	Code OpCode
	Src1 Operand
	Src2 Operand
	Dst  int

	raw int32 // raw opcode cell, kept for undefined-opcode faults
}

// Width returns the fall-through PC advance for the instruction.
// HALT and undefined opcodes do not advance.
func (op Op) Width() (width int) {
	switch op.Code {
	case OP_ADD, OP_MUL, OP_LT, OP_EQ:
		width = 4
	case OP_JNZ, OP_JZ:
		width = 3
	case OP_INPUT, OP_OUTPUT:
		width = 2
	}

	return
}

// String returns the instruction in assembly-ish notation.
func (op Op) String() (out string) {
	switch op.Code {
	case OP_ADD, OP_MUL, OP_LT, OP_EQ:
		out = fmt.Sprintf("%v %v %v -> [%v]", op.Code, op.Src1, op.Src2, op.Dst)
	case OP_JNZ, OP_JZ:
		out = fmt.Sprintf("%v %v %v", op.Code, op.Src1, op.Src2)
	case OP_INPUT:
		out = fmt.Sprintf("%v -> [%v]", op.Code, op.Dst)
	case OP_OUTPUT:
		out = fmt.Sprintf("%v %v", op.Code, op.Src1)
	case OP_HALT:
		out = "HALT"
	default:
		out = fmt.Sprintf("%v", op.Code)
	}

	return
}
