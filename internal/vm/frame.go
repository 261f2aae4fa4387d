package vm

import "loxvm/internal/bytecode"

// maxFrames bounds call-stack depth and is the fixed capacity of the VM's
// frame array; a call beyond it is a "Stack overflow." runtime error.
const maxFrames = 64

// callFrame is one activation record: the function being run, its
// instruction pointer, and base, the index into the VM's single shared
// value stack where this call's slot 0 (the called function itself) and
// its locals begin. base indexes into the VM's one []Value stack rather
// than holding a copied slice — a local write in the callee is a write to
// the same backing array the caller sees, by construction, with no
// copy-back step required on return.
type callFrame struct {
	function *bytecode.Function
	ip       int
	base     int
}
