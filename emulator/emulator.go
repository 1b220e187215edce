// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator ties an intcode machine to its host: a loaded program
// image, an I/O channel, and the reset/rerun harness used by the
// noun/verb search driver.
package emulator

import (
	"errors"
	"log"

	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/io"
)

const (
	SEARCH_NOUN_MAX = 100 // Exclusive noun search bound.
	SEARCH_VERB_MAX = 100 // Exclusive verb search bound.
)

// Emulator state. Machine + program image + host console.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // The machine.
	Program  *cpu.Program // The loaded program image.

	Console io.Console // Default console channel.
}

// NewEmulator creates an emulator over a program image, with the
// console channel attached.
func NewEmulator(prog *cpu.Program) (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(prog.Cells),
		Program: prog,
	}

	emu.Cpu.SetChannel(&emu.Console)

	return
}

// Reset reloads the machine from the program image and rewinds the
// attached channel.
func (emu *Emulator) Reset() {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset(emu.Program.Cells)
}

// Run executes the loaded program to completion.
func (emu *Emulator) Run() (err error) {
	emu.Cpu.Verbose = emu.Verbose

	return emu.Cpu.Run()
}

// Search brute-forces noun/verb pairs in [0, nounMax) x [0, verbMax)
// until a run leaves target in cell 0. Each trial runs a fresh copy of
// the program image with cells 1 and 2 patched. A faulting trial is
// logged and skipped; ErrNoSolution is returned when the space is
// exhausted.
func (emu *Emulator) Search(target int32, nounMax, verbMax int32) (noun, verb int32, err error) {
	if len(emu.Program.Cells) < 3 {
		err = ErrProgramShort
		return
	}

	emu.Cpu.Verbose = emu.Verbose

	for noun = 0; noun < nounMax; noun++ {
		for verb = 0; verb < verbMax; verb++ {
			image := append([]int32(nil), emu.Program.Cells...)
			image[1] = noun
			image[2] = verb

			emu.Cpu.Reset(image)

			err = emu.Cpu.Run()
			if err != nil {
				var fault *cpu.Fault
				if errors.As(err, &fault) {
					log.Printf("WARNING: cpu fault %v at pc %v (noun=%v, verb=%v), skipping",
						fault.Kind, emu.Cpu.Pc(), noun, verb)
					continue
				}
				return
			}

			if emu.Cpu.Output() == target {
				return
			}
		}
	}

	err = ErrNoSolution
	return
}
