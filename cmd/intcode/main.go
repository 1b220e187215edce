// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/emulator"
)

const PART2_TARGET_OUTPUT = 19690720

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %v [-f file] [-v] (part1|part2|run)\n", os.Args[0])
	os.Exit(1)
}

func main() {
	var file string
	var verbose bool

	flag.StringVar(&file, "f", "-", "program source file")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.Usage = usage

	flag.Parse()

	if flag.NArg() != 1 {
		usage()
	}

	inf := os.Stdin
	if file != "-" {
		var err error
		inf, err = os.Open(file)
		if err != nil {
			log.Fatalf("%v: %v", file, err)
		}
		defer inf.Close()
	}

	prog, err := cpu.ParseProgram(inf)
	if err != nil {
		log.Fatalf("%v: %v", file, err)
	}

	emu := emulator.NewEmulator(prog)
	emu.Verbose = verbose
	emu.Console.Input = os.Stdin
	emu.Console.Output = os.Stdout

	switch flag.Arg(0) {
	case "part1":
		if !prog.SetNounVerb(12, 2) {
			log.Fatalf("%v: program too short to patch noun and verb", file)
		}
		emu.Reset()
		if err := emu.Run(); err != nil {
			log.Fatalf("cpu fault at pc %v: %v", emu.Pc(), err)
		}
		fmt.Printf("Value at position 0: %v\n", emu.Output())
	case "part2":
		noun, verb, err := emu.Search(PART2_TARGET_OUTPUT, emulator.SEARCH_NOUN_MAX, emulator.SEARCH_VERB_MAX)
		if errors.Is(err, emulator.ErrNoSolution) {
			fmt.Fprintf(os.Stderr, "ERROR: Could not find suitable answer in solution space.\n")
			os.Exit(2)
		}
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Solution found (noun = %v, verb = %v). Answer is %v\n",
			noun, verb, 100*noun+verb)
	case "run":
		if err := emu.Run(); err != nil {
			log.Fatalf("cpu fault at pc %v: %v", emu.Pc(), err)
		}
		fmt.Println("Program finished")
	default:
		usage()
	}
}
