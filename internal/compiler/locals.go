package compiler

import "loxvm/internal/bytecode"

// funcType distinguishes the implicit top-level script from a user-defined
// function: top-level "return" is a compile error, a named function's
// isn't.
type funcType int

const (
	typeScript funcType = iota
	typeFunction
)

// uninitializedDepth marks a local that has been declared but whose
// initializer hasn't finished compiling yet, so a self-referential
// initializer like `var a = a;` resolves to a compile error instead of
// silently reading an outer scope's variable of the same name.
const uninitializedDepth = -1

type localVar struct {
	name  string
	depth int
}

// functionState is one frame of the compiler's own call stack: one per
// function body being compiled, linked to the function enclosing it so
// nested function declarations compile against the right locals window
// and fall back to the enclosing scope's own compiler state once done.
type functionState struct {
	enclosing  *functionState
	function   *bytecode.Function
	funcType   funcType
	locals     []localVar
	scopeDepth int
}

func newFunctionState(enclosing *functionState, name *bytecode.String, ft funcType) *functionState {
	fs := &functionState{
		enclosing: enclosing,
		funcType:  ft,
		function: &bytecode.Function{
			Name:  name,
			Chunk: bytecode.NewChunk(),
		},
	}
	// Slot 0 of every call frame is reserved for the called function value
	// itself, so every compiled function starts with one phantom local
	// already occupying slot 0.
	fs.locals = append(fs.locals, localVar{name: "", depth: 0})
	return fs
}

func (fs *functionState) resolveLocal(name string) (slot int, found bool, uninitialized bool) {
	for i := len(fs.locals) - 1; i >= 0; i-- {
		if fs.locals[i].name == name {
			if fs.locals[i].depth == uninitializedDepth {
				return i, true, true
			}
			return i, true, false
		}
	}
	return -1, false, false
}
