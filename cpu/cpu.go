package cpu

import (
	"fmt"
	"iter"
	"log"

	"github.com/ezrec/intcode/io"
)

// Channel is a host I/O adapter interface.
type Channel io.Channel

// State is the machine execution state.
type State int

const (
	RUNNING = State(0) // Running
	HALTED  = State(1) // Halted
)

// String returns the state name.
func (st State) String() (name string) {
	switch st {
	case RUNNING:
		name = "Running"
	case HALTED:
		name = "Halted"
	default:
		name = fmt.Sprintf("State(%d)", int(st))
	}

	return
}

// Cpu is the position-addressed register machine. Program text and data
// share a single array of signed 32-bit cells, owned exclusively by the
// machine; instructions may rewrite any cell, including ones already
// executed.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	program []int32
	state   State
	pc      int
	fault   error

	channel Channel // I/O adapter for INPUT/OUTPUT, may be nil.
}

// NewCpu creates a machine over a copy of the given cell image.
// The machine starts Running with the PC at cell 0.
func NewCpu(program []int32) (cpu *Cpu) {
	cpu = &Cpu{}
	cpu.Reset(program)

	return
}

// Reset reloads the machine with a fresh copy of the given cell image,
// clears any latched fault, and rewinds the attached channel.
func (cpu *Cpu) Reset(program []int32) {
	if cpu.Verbose {
		log.Printf("cpu: reset, %v cells", len(program))
	}

	cpu.program = append([]int32(nil), program...)
	cpu.state = RUNNING
	cpu.pc = 0
	cpu.fault = nil

	if cpu.channel != nil {
		cpu.channel.Rewind()
	}
}

// SetChannel attaches the host I/O adapter used by INPUT and OUTPUT.
func (cpu *Cpu) SetChannel(channel Channel) {
	cpu.channel = channel
}

// Pc returns the current program counter.
func (cpu *Cpu) Pc() int {
	return cpu.pc
}

// State returns the current machine state.
func (cpu *Cpu) State() State {
	return cpu.state
}

// Len returns the program length in cells.
func (cpu *Cpu) Len() int {
	return len(cpu.program)
}

// Get reads a cell; ok is false outside the program bounds.
func (cpu *Cpu) Get(pos int) (value int32, ok bool) {
	if pos < 0 || pos >= len(cpu.program) {
		return
	}

	return cpu.program[pos], true
}

// Snapshot returns a copy of all cells.
func (cpu *Cpu) Snapshot() (cells []int32) {
	return append([]int32(nil), cpu.program...)
}

// Cells returns an iterator over (index, value) for all cells.
func (cpu *Cpu) Cells() iter.Seq2[int, int32] {
	return func(yield func(pos int, value int32) bool) {
		for pos, value := range cpu.program {
			if !yield(pos, value) {
				return
			}
		}
	}
}

// Output returns cell 0, the program result by puzzle convention.
func (cpu *Cpu) Output() int32 {
	return cpu.at(0, "output")
}

// Noun returns cell 1, the first patched input by puzzle convention.
func (cpu *Cpu) Noun() int32 {
	return cpu.at(1, "noun")
}

// Verb returns cell 2, the second patched input by puzzle convention.
func (cpu *Cpu) Verb() int32 {
	return cpu.at(2, "verb")
}

func (cpu *Cpu) at(pos int, name string) int32 {
	value, ok := cpu.Get(pos)
	if !ok {
		panic(fmt.Sprintf("%v (pos %v) not found in program", name, pos))
	}

	return value
}

// peek reads a cell, faulting OutOfBounds under the given identifier.
func (cpu *Cpu) peek(pos int, ident string) (value int32, err error) {
	if pos < 0 || pos >= len(cpu.program) {
		err = faultOutOfBounds(ident, pos)
		return
	}

	value = cpu.program[pos]
	return
}

// poke writes a cell, faulting OutOfBounds under the given identifier.
func (cpu *Cpu) poke(pos int, value int32, ident string) (err error) {
	if pos < 0 || pos >= len(cpu.program) {
		err = faultOutOfBounds(ident, pos)
		return
	}

	cpu.program[pos] = value
	return
}

// getValue resolves an operand to a value. Position operands read
// through the cell store; immediates are the literal.
func (cpu *Cpu) getValue(oper Operand, ident string) (value int32, err error) {
	switch oper.Mode {
	case MODE_IMMEDIATE:
		value = oper.Value
	default:
		value, err = cpu.peek(int(oper.Value), ident)
	}

	return
}

// fetchOp reads the cell at PC and decodes it into an instruction.
//
// The opcode cell is read as five decimal digits: the low two are the
// opcode, the hundreds/thousands/ten-thousands digits are the parameter
// modes for operand slots 1, 2, 3. Absent digits are position mode.
// Write slots take the raw cell value as their index; their mode digit
// is not interpreted, matching the reference machine.
func (cpu *Cpu) fetchOp() (op Op, err error) {
	raw, err := cpu.peek(cpu.pc, "FETCH!OP")
	if err != nil {
		return
	}

	if raw < 0 {
		err = faultInvalidOpcode(raw)
		return
	}

	code := OpCode(raw % 100)
	modes := [3]int32{
		(raw / 100) % 10,
		(raw / 1000) % 10,
		(raw / 10000) % 10,
	}

	op = Op{Code: code, raw: raw}

	switch code {
	case OP_ADD, OP_MUL:
		err = cpu.fetchTriplet(&op, modes, "src1", "src2")
	case OP_LT, OP_EQ:
		err = cpu.fetchTriplet(&op, modes, "cmp1", "cmp2")
	case OP_JNZ, OP_JZ:
		var cmp, to int32
		cmp, err = cpu.peek(cpu.pc+1, fmt.Sprintf("FETCH!%v.cmp", code))
		if err != nil {
			return
		}
		to, err = cpu.peek(cpu.pc+2, fmt.Sprintf("FETCH!%v.to", code))
		if err != nil {
			return
		}
		op.Src1, err = NewOperand(modes[0], cmp)
		if err != nil {
			return
		}
		op.Src2, err = NewOperand(modes[1], to)
	case OP_INPUT:
		var dst int32
		dst, err = cpu.peek(cpu.pc+1, "FETCH!INPUT.dst")
		op.Dst = int(dst)
	case OP_OUTPUT:
		var src int32
		src, err = cpu.peek(cpu.pc+1, "FETCH!OUTPUT.src")
		if err != nil {
			return
		}
		op.Src1, err = NewOperand(modes[0], src)
	case OP_HALT:
		// no operands
	default:
		// Undefined; faults at execute.
	}

	return
}

// fetchTriplet reads the two value operands and the destination index
// of a three-operand instruction.
func (cpu *Cpu) fetchTriplet(op *Op, modes [3]int32, slot1, slot2 string) (err error) {
	a, err := cpu.peek(cpu.pc+1, fmt.Sprintf("FETCH!%v.%v", op.Code, slot1))
	if err != nil {
		return
	}
	b, err := cpu.peek(cpu.pc+2, fmt.Sprintf("FETCH!%v.%v", op.Code, slot2))
	if err != nil {
		return
	}
	dst, err := cpu.peek(cpu.pc+3, fmt.Sprintf("FETCH!%v.dst", op.Code))
	if err != nil {
		return
	}

	op.Src1, err = NewOperand(modes[0], a)
	if err != nil {
		return
	}
	op.Src2, err = NewOperand(modes[1], b)
	if err != nil {
		return
	}
	op.Dst = int(dst)

	return
}

// execute applies a decoded instruction to the cell store and advances
// the PC. Taken jumps assign the PC directly and skip the fall-through
// advance. Arithmetic wraps at 32 bits. On any fault the PC is left at
// the faulting instruction.
func (cpu *Cpu) execute(op Op) (err error) {
	width := op.Width()

	switch op.Code {
	case OP_ADD:
		var v1, v2 int32
		v1, err = cpu.getValue(op.Src1, "EXEC!ADD.src1")
		if err != nil {
			return
		}
		v2, err = cpu.getValue(op.Src2, "EXEC!ADD.src2")
		if err != nil {
			return
		}
		err = cpu.poke(op.Dst, v1+v2, "EXEC!ADD.dst")
		if err != nil {
			return
		}
	case OP_MUL:
		var v1, v2 int32
		v1, err = cpu.getValue(op.Src1, "EXEC!MUL.src1")
		if err != nil {
			return
		}
		v2, err = cpu.getValue(op.Src2, "EXEC!MUL.src2")
		if err != nil {
			return
		}
		err = cpu.poke(op.Dst, v1*v2, "EXEC!MUL.dst")
		if err != nil {
			return
		}
	case OP_INPUT:
		// Validate the destination before consuming host input.
		_, err = cpu.peek(op.Dst, "EXEC!INPUT.dst")
		if err != nil {
			return
		}
		if cpu.channel == nil {
			err = faultInvalidInput(ErrNoChannel)
			return
		}
		var value int32
		value, err = cpu.channel.ReadInt()
		if err != nil {
			err = faultInvalidInput(err)
			return
		}
		cpu.program[op.Dst] = value
	case OP_OUTPUT:
		var value int32
		value, err = cpu.getValue(op.Src1, "EXEC!OUTPUT.src")
		if err != nil {
			return
		}
		if cpu.channel == nil {
			err = faultInvalidInput(ErrNoChannel)
			return
		}
		err = cpu.channel.WriteInt(value)
		if err != nil {
			err = faultInvalidInput(err)
			return
		}
	case OP_JNZ:
		var cmp, to int32
		cmp, err = cpu.getValue(op.Src1, "EXEC!JNZ.cmp")
		if err != nil {
			return
		}
		to, err = cpu.getValue(op.Src2, "EXEC!JNZ.to")
		if err != nil {
			return
		}
		if cmp != 0 {
			cpu.pc = int(to)
			return
		}
	case OP_JZ:
		var cmp, to int32
		cmp, err = cpu.getValue(op.Src1, "EXEC!JZ.cmp")
		if err != nil {
			return
		}
		to, err = cpu.getValue(op.Src2, "EXEC!JZ.to")
		if err != nil {
			return
		}
		if cmp == 0 {
			cpu.pc = int(to)
			return
		}
	case OP_LT:
		err = cpu.compare(op, func(a, b int32) bool { return a < b }, "LT")
		if err != nil {
			return
		}
	case OP_EQ:
		err = cpu.compare(op, func(a, b int32) bool { return a == b }, "EQ")
		if err != nil {
			return
		}
	case OP_HALT:
		cpu.state = HALTED
		return
	default:
		err = faultInvalidOpcode(op.raw)
		return
	}

	cpu.pc += width
	return
}

// compare resolves both value operands and writes 1 or 0 to the
// destination cell.
func (cpu *Cpu) compare(op Op, pred func(a, b int32) bool, mnemonic string) (err error) {
	cmp1, err := cpu.getValue(op.Src1, fmt.Sprintf("EXEC!%v.cmp1", mnemonic))
	if err != nil {
		return
	}
	cmp2, err := cpu.getValue(op.Src2, fmt.Sprintf("EXEC!%v.cmp2", mnemonic))
	if err != nil {
		return
	}

	var result int32
	if pred(cmp1, cmp2) {
		result = 1
	}

	return cpu.poke(op.Dst, result, fmt.Sprintf("EXEC!%v.dst", mnemonic))
}

// Step performs a single fetch-decode-execute cycle.
//
// Stepping a halted machine is a no-op returning HALTED. The first
// fault freezes the machine: cells and PC stay as the fault left them,
// and every further Step returns the same fault.
func (cpu *Cpu) Step() (state State, err error) {
	if cpu.fault != nil {
		return cpu.state, cpu.fault
	}
	if cpu.state == HALTED {
		return HALTED, nil
	}

	op, err := cpu.fetchOp()
	if err != nil {
		cpu.fault = err
		return cpu.state, err
	}

	if cpu.Verbose {
		log.Printf("%04d: %v", cpu.pc, op)
	}

	err = cpu.execute(op)
	if err != nil {
		cpu.fault = err
		return cpu.state, err
	}

	return cpu.state, nil
}

// Run steps the machine until it halts or faults.
func (cpu *Cpu) Run() error {
	for {
		state, err := cpu.Step()
		if err != nil {
			return err
		}
		if state == HALTED {
			return nil
		}
	}
}
