package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"

	"loxvm/internal/bytecode"
	"loxvm/internal/compiler"
	"loxvm/internal/vm"
)

// runRepl implements the interactive prompt: one line read and
// compiled+run per Interpret call, a single VM and string interner kept
// alive across the whole session so `var`/`fun` declarations from earlier
// lines stay visible to later ones, clean exit on EOF (^D).
//
// Lines are read through a chzyer/readline session rather than a bare
// bufio.Scanner, so the prompt gets history and in-line editing for free.
func runRepl(disassemble bool) int {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     "",
		InterruptPrompt: "^C",
		EOFPrompt:       "",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 Could not start REPL: %s\n", err)
		return exitIOError
	}
	defer rl.Close()

	interner := bytecode.NewInterner()
	machine := vm.New(interner)

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) == 0 {
				break
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "💥 %s\n", err)
			return exitIOError
		}
		if line == "" {
			continue
		}
		if line == "exit" {
			break
		}

		fn, err := compiler.Compile(line, interner)
		if err != nil {
			fmt.Fprintf(os.Stderr, "💥 %s\n", err)
			continue
		}
		if disassemble {
			fmt.Fprint(os.Stderr, bytecode.Disassemble(fn.Chunk, "repl"))
		}
		if err := machine.Interpret(fn); err != nil {
			fmt.Fprintf(os.Stderr, "💥 %s\n", err)
		}
	}
	return exitOK
}
