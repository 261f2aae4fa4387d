// Command loxvm is the CLI entry point: with no arguments it starts an
// interactive REPL, with one argument it compiles and runs that file, and
// with any other argument count it prints a usage message and exits 64.
//
// Exit codes distinguish usage errors (64), compile errors (65), runtime
// errors (70), and file I/O errors (74) from success (0), so a caller can
// tell which stage of the pipeline failed without parsing stderr.
package main

import (
	"flag"
	"fmt"
	"os"

	"loxvm/internal/bytecode"
	"loxvm/internal/compiler"
	"loxvm/internal/vm"
)

const (
	exitOK          = 0
	exitUsageError  = 64
	exitCompileErr  = 65
	exitRuntimeErr  = 70
	exitIOError     = 74
)

func main() {
	disassemble := flag.Bool("disassemble", false, "print disassembled bytecode before executing")
	flag.Parse()

	args := flag.Args()
	switch len(args) {
	case 0:
		os.Exit(runRepl(*disassemble))
	case 1:
		os.Exit(runFile(args[0], *disassemble))
	default:
		fmt.Fprintln(os.Stderr, "Usage: loxvm [path]")
		os.Exit(exitUsageError)
	}
}

func runFile(path string, disassemble bool) int {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 Could not open file %q.\n", path)
		return exitIOError
	}

	interner := bytecode.NewInterner()
	fn, err := compiler.Compile(string(source), interner)
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 %s\n", err)
		return exitCompileErr
	}
	if disassemble {
		fmt.Fprint(os.Stderr, bytecode.Disassemble(fn.Chunk, path))
	}

	machine := vm.New(interner)
	if err := machine.Interpret(fn); err != nil {
		fmt.Fprintf(os.Stderr, "💥 %s\n", err)
		return exitRuntimeErr
	}
	return exitOK
}
