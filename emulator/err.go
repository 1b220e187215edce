package emulator

import (
	"errors"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	// ErrNoSolution indicates the noun/verb search space was exhausted.
	ErrNoSolution = errors.New(f("no solution in search space"))
	// ErrProgramShort indicates the image has no noun/verb cells to patch.
	ErrProgramShort = errors.New(f("program too short to patch noun and verb"))
)
