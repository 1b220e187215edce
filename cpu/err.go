package cpu

import (
	"errors"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

// FaultKind classifies a machine fault.
type FaultKind int

const (
	InvalidOpcode  = FaultKind(0) // InvalidOpcode
	InvalidOperand = FaultKind(1) // InvalidOperand
	InvalidInput   = FaultKind(2) // InvalidInput
	OutOfBounds    = FaultKind(3) // OutOfBounds
)

// String returns the fault kind name.
func (fk FaultKind) String() (name string) {
	switch fk {
	case InvalidOpcode:
		name = "InvalidOpcode"
	case InvalidOperand:
		name = "InvalidOperand"
	case InvalidInput:
		name = "InvalidInput"
	case OutOfBounds:
		name = "OutOfBounds"
	default:
		name = f("FaultKind(%d)", int(fk))
	}

	return
}

// Fault is a machine fault: a kind plus a context string naming the
// pipeline stage, mnemonic, and operand slot that raised it.
type Fault struct {
	Kind    FaultKind
	Context string
}

func (fault *Fault) Error() string {
	return f("%v: %v", fault.Kind, fault.Context)
}

// Is matches any fault of the same kind, so hosts and tests can compare
// on kind rather than on message text.
func (fault *Fault) Is(err error) (ok bool) {
	other, ok := err.(*Fault)
	if ok {
		ok = other.Kind == fault.Kind
	}
	return
}

// faultOutOfBounds reports a cell access outside the program image.
func faultOutOfBounds(ident string, pos int) *Fault {
	return &Fault{
		Kind:    OutOfBounds,
		Context: f("%v: pos %v is outside program bounds", ident, pos),
	}
}

// faultInvalidOpcode reports an opcode that names no instruction.
func faultInvalidOpcode(opcode int32) *Fault {
	return &Fault{
		Kind:    InvalidOpcode,
		Context: f("invalid opcode %v", opcode),
	}
}

// faultInvalidOperand reports a parameter mode digit other than 0 or 1.
func faultInvalidOperand(mode int32) *Fault {
	return &Fault{
		Kind:    InvalidOperand,
		Context: f("invalid operand mode %v", mode),
	}
}

// faultInvalidInput reports an I/O adapter failure during INPUT.
func faultInvalidInput(err error) *Fault {
	return &Fault{
		Kind:    InvalidInput,
		Context: f("EXEC!INPUT: %v", err),
	}
}

// ErrNoChannel is returned when INPUT or OUTPUT executes with no
// channel attached; the machine surfaces it as an InvalidInput fault.
var ErrNoChannel = errors.New(f("no I/O channel attached"))

// ErrParseCell reports a program source element that is not an integer.
type ErrParseCell struct {
	Index int
	Text  string
	Err   error
}

func (err *ErrParseCell) Error() string {
	return f("cell %d: '%v' is not an integer", err.Index, err.Text)
}

func (err *ErrParseCell) Unwrap() error {
	return err.Err
}

// ErrParseExpression reports a $( ... ) element that did not evaluate
// to an integer.
type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
