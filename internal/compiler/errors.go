package compiler

import "fmt"

// CompileError is a single reported compile-time diagnostic, formatted as
// "[line L] Error at 'LEXEME': MESSAGE" (or "at end" for EOF).
type CompileError struct {
	Line    int
	Where   string
	Message string
}

func (e CompileError) Error() string {
	if e.Where == "" {
		return fmt.Sprintf("[line %d] Error: %s", e.Line, e.Message)
	}
	return fmt.Sprintf("[line %d] Error at %s: %s", e.Line, e.Where, e.Message)
}

// Errors is the accumulated failure of a Compile call: one or more
// CompileErrors reported during panic-mode recovery.
type Errors []CompileError

func (e Errors) Error() string {
	if len(e) == 0 {
		return "compile error"
	}
	msg := e[0].Error()
	for _, extra := range e[1:] {
		msg += "\n" + extra.Error()
	}
	return msg
}
