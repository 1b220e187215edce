// Package cpu implements a position-addressed register machine over a
// linear array of signed 32-bit cells shared by program text and data.
//
// The machine fetches the cell at the program counter, splits it into an
// opcode (low two decimal digits) and per-operand parameter modes (the
// next three digits), executes, and advances by a fixed per-opcode width
// unless a taken jump assigns the PC directly. Host I/O for the INPUT and
// OUTPUT instructions goes through a synchronous Channel adapter.
//
// Faults carry a machine-readable kind (InvalidOpcode, InvalidOperand,
// InvalidInput, OutOfBounds) plus a context string naming the pipeline
// stage, mnemonic, and operand slot. The first fault freezes the machine
// in an inspectable state.
package cpu
