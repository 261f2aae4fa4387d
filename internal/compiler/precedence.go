package compiler

import "loxvm/internal/token"

// Precedence orders binding power from loosest to tightest in the Pratt
// parse-rule table below.
type Precedence int

const (
	PrecNone Precedence = iota
	PrecAssignment        // =
	PrecOr                // or
	PrecAnd               // and
	PrecEquality           // == !=
	PrecComparison         // < > <= >=
	PrecTerm               // + -
	PrecFactor             // * /
	PrecUnary              // ! -
	PrecCall               // ()
	PrecPrimary
)

// parseFn is a single prefix or infix parse action, the unit the rule table
// dispatches on. canAssign is threaded through so only the outermost call in
// an assignment-precedence context may consume a trailing '='.
type parseFn func(c *Compiler, canAssign bool)

type parseRule struct {
	prefix     parseFn
	infix      parseFn
	precedence Precedence
}

// rules is the parse-rule table indexed directly by token.Type ordinal,
// built once at package init instead of being rebuilt as a map on every
// Compiler construction.
var rules [int(token.EOF) + 1]parseRule

func getRule(t token.Type) *parseRule {
	return &rules[t]
}

func init() {
	rules[token.LeftParen] = parseRule{grouping, call, PrecCall}
	rules[token.Minus] = parseRule{unary, binary, PrecTerm}
	rules[token.Plus] = parseRule{nil, binary, PrecTerm}
	rules[token.Slash] = parseRule{nil, binary, PrecFactor}
	rules[token.Star] = parseRule{nil, binary, PrecFactor}
	rules[token.Bang] = parseRule{unary, nil, PrecNone}
	rules[token.BangEqual] = parseRule{nil, binary, PrecEquality}
	rules[token.EqualEqual] = parseRule{nil, binary, PrecEquality}
	rules[token.Greater] = parseRule{nil, binary, PrecComparison}
	rules[token.GreaterEqual] = parseRule{nil, binary, PrecComparison}
	rules[token.Less] = parseRule{nil, binary, PrecComparison}
	rules[token.LessEqual] = parseRule{nil, binary, PrecComparison}
	rules[token.Identifier] = parseRule{variable, nil, PrecNone}
	rules[token.String] = parseRule{stringLiteral, nil, PrecNone}
	rules[token.Number] = parseRule{number, nil, PrecNone}
	rules[token.And] = parseRule{nil, and_, PrecAnd}
	rules[token.Or] = parseRule{nil, or_, PrecOr}
	rules[token.False] = parseRule{literal, nil, PrecNone}
	rules[token.Nil] = parseRule{literal, nil, PrecNone}
	rules[token.True] = parseRule{literal, nil, PrecNone}
}
