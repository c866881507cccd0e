// Package main provides the entry point for rv64emu, a RISC-V RV64IMAFDC
// user-mode emulator.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sarchlab/rv64emu/emu"
	"github.com/sarchlab/rv64emu/loader"
)

var verbose = flag.Bool("v", false, "Verbose output")

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: rv64emu [options] <program.elf>\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	programPath := flag.Arg(0)

	prog, err := loader.Load(programPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading program: %v\n", err)
		os.Exit(1)
	}

	if *verbose {
		fmt.Printf("Loaded: %s\n", programPath)
		fmt.Printf("Entry point: 0x%x\n", prog.EntryPoint)
		fmt.Printf("Segments: %d\n", len(prog.Segments))
	}

	exitCode := run(prog, programPath)
	os.Exit(int(exitCode))
}

func run(prog *loader.Program, programPath string) int64 {
	emulator := emu.NewEmulator(
		emu.WithStackPointer(prog.InitialSP),
	)

	var arenaBase uint64
	for _, seg := range prog.Segments {
		emulator.MapSegment(seg.VirtAddr, seg.Data, seg.MemSize)
		if top := seg.VirtAddr + seg.MemSize; top > arenaBase {
			arenaBase = top
		}
	}
	emulator.SetArenaBase(pageAlign(arenaBase))
	emulator.SetEntry(prog.EntryPoint)

	exitCode := emulator.Run()

	if *verbose {
		fmt.Printf("\nProgram: %s\n", programPath)
		fmt.Printf("Exit code: %d\n", exitCode)
		fmt.Printf("Instructions executed: %d\n", emulator.InstructionCount())
	}

	return exitCode
}

// pageAlign rounds addr up to the next 4096-byte boundary.
func pageAlign(addr uint64) uint64 {
	const pageSize = 4096
	return (addr + pageSize - 1) &^ (pageSize - 1)
}
