package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/Mirged/meri/cpu"
	"github.com/Mirged/meri/emulator"
)

func main() {
	var printState bool
	var limit int
	var verbose bool

	flag.BoolVar(&printState, "print-state", false, "Print machine state after program execution")
	flag.IntVar(&limit, "limit", 0, "Maximum execution steps, 0 for unlimited")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatalf("%v: usage: %v [OPTIONS] <file.meri>", os.Args[0], os.Args[0])
	}

	path := flag.Arg(0)
	inf, err := os.Open(path)
	if err != nil {
		log.Fatalf("%v: %v", path, err)
	}
	defer inf.Close()

	asm := &cpu.Assembler{Verbose: verbose}
	prog, err := asm.Parse(inf)
	if err != nil {
		log.Fatalf("%v: %v", path, err)
	}

	emu := emulator.NewEmulator()
	emu.Program = prog
	emu.Verbose = verbose
	emu.StepLimit = limit

	emu.Reset()
	if err := emu.Run(); err != nil {
		log.Fatalf("%v: %v", path, err)
	}

	if printState {
		fmt.Print(emu.Cpu.Machine.String())
	}
}
