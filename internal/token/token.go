// Package token defines the lexical token types produced by the scanner
// and consumed by the compiler's Pratt parser.
package token

import "fmt"

// Type classifies a Token. It is a small int rather than a string so that
// the compiler's parse-rule table (internal/compiler) can be indexed by
// ordinal instead of hashed by name.
type Type int

const (
	// single-character tokens
	LeftParen Type = iota
	RightParen
	LeftBrace
	RightBrace
	Comma
	Semicolon
	Minus
	Plus
	Slash
	Star

	// one or two character tokens
	Bang
	BangEqual
	Equal
	EqualEqual
	Greater
	GreaterEqual
	Less
	LessEqual

	// literals
	Identifier
	String
	Number

	// keywords
	And
	Class
	Else
	False
	For
	Fun
	If
	Nil
	Or
	Print
	Return
	Super
	This
	True
	Var
	While

	Error
	EOF
)

// Keywords maps reserved words to their Type.
var Keywords = map[string]Type{
	"and":    And,
	"class":  Class,
	"else":   Else,
	"false":  False,
	"for":    For,
	"fun":    Fun,
	"if":     If,
	"nil":    Nil,
	"or":     Or,
	"print":  Print,
	"return": Return,
	"super":  Super,
	"this":   This,
	"true":   True,
	"var":    Var,
	"while":  While,
}

// Token is a single lexical unit: its type, its exact source text, and its
// source line (used for diagnostics).
type Token struct {
	Type   Type
	Lexeme string
	Line   int
}

func (t Token) String() string {
	return fmt.Sprintf("Token{%v %q line:%d}", t.Type, t.Lexeme, t.Line)
}
