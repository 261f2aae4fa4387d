package bytecode

import "strings"

// Object is implemented by every heap-allocated value variant: String,
// Function, NativeFunction. Lifetime management is left to the Go
// garbage collector rather than any explicit refcounting or arena.
type Object interface {
	String() string
}

// String is an interned, immutable sequence of Unicode scalar values with
// a precomputed hash. Two Strings are == iff they were produced by the
// same Interner for equal character sequences, which makes string
// equality a pointer comparison.
type String struct {
	Value string
	hash  uint32
}

func (s *String) String() string { return s.Value }

// Hash returns the string's precomputed FNV-1a hash.
func (s *String) Hash() uint32 { return s.hash }

func hashString(s string) uint32 {
	var h uint32 = 2166136261
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= 16777619
	}
	return h
}

// Interner canonicalizes equal strings to a single *String so that
// equality reduces to reference identity. One Interner is scoped per VM
// and shared with the Compiler that feeds it, which is enough for
// identity semantics to hold for the VM's whole lifetime.
type Interner struct {
	strings map[string]*String
}

// NewInterner creates an empty Interner.
func NewInterner() *Interner {
	return &Interner{strings: make(map[string]*String)}
}

// Intern returns the canonical *String for s, creating and storing one if
// this is the first time s has been seen.
func (in *Interner) Intern(s string) *String {
	if existing, ok := in.strings[s]; ok {
		return existing
	}
	str := &String{Value: s, hash: hashString(s)}
	in.strings[s] = str
	return str
}

// Concat interns the concatenation of a and b, used by OP_ADD's string
// case.
func (in *Interner) Concat(a, b *String) *String {
	var sb strings.Builder
	sb.Grow(len(a.Value) + len(b.Value))
	sb.WriteString(a.Value)
	sb.WriteString(b.Value)
	return in.Intern(sb.String())
}

// Function is a user-defined callable: a name (empty for the top-level
// script), an arity, and an owned Chunk.
type Function struct {
	Name  *String
	Arity int
	Chunk *Chunk
}

func (f *Function) String() string {
	if f.Name == nil || f.Name.Value == "" {
		return "<script>"
	}
	return "<fn " + f.Name.Value + ">"
}

// NativeGoFunc is the Go-side implementation of a NativeFunction.
type NativeGoFunc func(args []Value) (Value, error)

// NativeFunction is a callable implemented in Go rather than compiled
// bytecode, e.g. the VM's built-in clock.
type NativeFunction struct {
	Name string
	Fn   NativeGoFunc
}

func (n *NativeFunction) String() string { return "<native fn>" }
