// Package bytecode is the data model and wire format shared by the
// compiler and the VM: the tagged Value sum, the heap Object variants, and
// the Chunk bytecode container.
//
// Value and Chunk live in one package because a Function object owns a
// *Chunk and a Chunk's constant pool holds Values — splitting them would
// only move a real cycle across a directory boundary.
package bytecode

import "fmt"

// Kind tags which variant a Value holds.
type Kind uint8

const (
	KindNil Kind = iota
	KindBool
	KindNumber
	KindObject
)

// Value is a tagged sum of nil, bool, number, and object-reference.
// Number and Bool values are unpacked in place (no heap allocation); Nil
// carries no payload beyond the tag.
type Value struct {
	kind   Kind
	number float64
	boolean bool
	obj    Object
}

// Nil is the singleton nil value.
var Nil = Value{kind: KindNil}

// Bool constructs a boolean Value.
func Bool(b bool) Value {
	return Value{kind: KindBool, boolean: b}
}

// Number constructs a numeric Value.
func Number(n float64) Value {
	return Value{kind: KindNumber, number: n}
}

// FromObject wraps a heap Object as a Value.
func FromObject(o Object) Value {
	return Value{kind: KindObject, obj: o}
}

func (v Value) Kind() Kind { return v.kind }
func (v Value) IsNil() bool { return v.kind == KindNil }
func (v Value) IsBool() bool { return v.kind == KindBool }
func (v Value) IsNumber() bool { return v.kind == KindNumber }
func (v Value) IsObject() bool { return v.kind == KindObject }

// AsBool returns the boolean payload. Callers must check IsBool first.
func (v Value) AsBool() bool { return v.boolean }

// AsNumber returns the numeric payload. Callers must check IsNumber first.
func (v Value) AsNumber() float64 { return v.number }

// AsObject returns the object payload. Callers must check IsObject first.
func (v Value) AsObject() Object { return v.obj }

// IsString reports whether v holds a String object.
func (v Value) IsString() bool {
	if !v.IsObject() {
		return false
	}
	_, ok := v.obj.(*String)
	return ok
}

// AsString returns the interned *String payload. Callers must check
// IsString first.
func (v Value) AsString() *String {
	return v.obj.(*String)
}

// IsFunction reports whether v holds a Function object.
func (v Value) IsFunction() bool {
	if !v.IsObject() {
		return false
	}
	_, ok := v.obj.(*Function)
	return ok
}

// AsFunction returns the *Function payload. Callers must check IsFunction
// first.
func (v Value) AsFunction() *Function {
	return v.obj.(*Function)
}

// IsNative reports whether v holds a NativeFunction object.
func (v Value) IsNative() bool {
	if !v.IsObject() {
		return false
	}
	_, ok := v.obj.(*NativeFunction)
	return ok
}

// AsNative returns the *NativeFunction payload. Callers must check
// IsNative first.
func (v Value) AsNative() *NativeFunction {
	return v.obj.(*NativeFunction)
}

// IsFalsy reports truthiness: only nil and false are falsy, everything
// else (including 0 and "") is truthy.
func (v Value) IsFalsy() bool {
	switch v.kind {
	case KindNil:
		return true
	case KindBool:
		return !v.boolean
	default:
		return false
	}
}

// Equal compares two values. Interned strings compare equal iff they are
// the same reference; two objects of different variants are never equal.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNil:
		return true
	case KindBool:
		return a.boolean == b.boolean
	case KindNumber:
		return a.number == b.number
	case KindObject:
		as, aIsString := a.obj.(*String)
		bs, bIsString := b.obj.(*String)
		if aIsString && bIsString {
			return as == bs
		}
		if aIsString != bIsString {
			return false
		}
		return a.obj == b.obj
	}
	return false
}

// String renders v the way `print` displays it.
func (v Value) String() string {
	switch v.kind {
	case KindNil:
		return "nil"
	case KindBool:
		if v.boolean {
			return "true"
		}
		return "false"
	case KindNumber:
		return formatNumber(v.number)
	case KindObject:
		return v.obj.String()
	}
	return "<invalid value>"
}

func formatNumber(n float64) string {
	return fmt.Sprintf("%g", n)
}
