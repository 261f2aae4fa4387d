// Package compiler implements a single-pass Pratt compiler: source text
// goes directly to bytecode with no intermediate AST, using a
// precedence-climbing expression parser merged with ordinary
// recursive-descent statement parsing.
package compiler

import (
	"strconv"

	"loxvm/internal/bytecode"
	"loxvm/internal/scanner"
	"loxvm/internal/token"
)

const maxLocals = 256
const maxParameters = 255

// Compiler holds all single-pass compilation state: the token stream, the
// panic-mode recovery flags, and the linked stack of functionStates for
// whichever function body is currently being compiled.
type Compiler struct {
	sc       *scanner.Scanner
	interner *bytecode.Interner

	previous token.Token
	current  token.Token

	hadError  bool
	panicMode bool
	errs      Errors

	fs *functionState
}

// Compile compiles source into the implicit top-level script function,
// the single entry point the VM calls to begin execution. interner is
// shared with the VM that will run the result so that string identity
// holds across compile time and run time.
func Compile(source string, interner *bytecode.Interner) (*bytecode.Function, error) {
	c := &Compiler{
		sc:       scanner.New(source),
		interner: interner,
	}
	c.fs = newFunctionState(nil, interner.Intern(""), typeScript)

	c.advance()
	for !c.check(token.EOF) {
		c.declaration()
	}
	c.consume(token.EOF, "Expect end of expression.")

	fn := c.endFunctionCompiler()
	if c.hadError {
		return nil, c.errs
	}
	return fn, nil
}

func (c *Compiler) currentChunk() *bytecode.Chunk {
	return c.fs.function.Chunk
}

// --- token stream -----------------------------------------------------

func (c *Compiler) advance() {
	c.previous = c.current
	for {
		c.current = c.sc.Next()
		if c.current.Type != token.Error {
			break
		}
		c.errorAtCurrent(c.current.Lexeme)
	}
}

func (c *Compiler) check(t token.Type) bool {
	return c.current.Type == t
}

func (c *Compiler) match(t token.Type) bool {
	if !c.check(t) {
		return false
	}
	c.advance()
	return true
}

func (c *Compiler) consume(t token.Type, message string) {
	if c.current.Type == t {
		c.advance()
		return
	}
	c.errorAtCurrent(message)
}

// --- error reporting ----------------------------------------------------

func (c *Compiler) errorAtCurrent(message string) { c.errorAt(c.current, message) }
func (c *Compiler) error(message string)          { c.errorAt(c.previous, message) }

func (c *Compiler) errorAt(tok token.Token, message string) {
	if c.panicMode {
		return
	}
	c.panicMode = true
	c.hadError = true

	where := "at '" + tok.Lexeme + "'"
	if tok.Type == token.EOF {
		where = "at end"
	} else if tok.Type == token.Error {
		where = ""
		message = tok.Lexeme
	}
	c.errs = append(c.errs, CompileError{Line: tok.Line, Where: where, Message: message})
}

// synchronize discards tokens after a panic-mode error until a likely
// statement boundary, so one mistake reports one error instead of a
// cascade.
func (c *Compiler) synchronize() {
	c.panicMode = false
	for c.current.Type != token.EOF {
		if c.previous.Type == token.Semicolon {
			return
		}
		switch c.current.Type {
		case token.Class, token.Fun, token.Var, token.For, token.If, token.While, token.Print, token.Return:
			return
		}
		c.advance()
	}
}

// --- bytecode emission ---------------------------------------------------

func (c *Compiler) emitByte(b byte) {
	c.currentChunk().WriteByte(b, c.previous.Line)
}

func (c *Compiler) emitOp(op bytecode.Op) {
	c.currentChunk().WriteOp(op, c.previous.Line)
}

func (c *Compiler) emitOpByte(op bytecode.Op, operand byte) {
	c.currentChunk().WriteOpByte(op, operand, c.previous.Line)
}

func (c *Compiler) emitJump(op bytecode.Op) int {
	return c.currentChunk().WriteOpShortPlaceholder(op, c.previous.Line)
}

func (c *Compiler) patchJump(offset int) {
	if err := c.currentChunk().PatchJump(offset); err != nil {
		c.error(err.Error())
	}
}

func (c *Compiler) emitLoop(loopStart int) {
	chunk := c.currentChunk()
	jump := len(chunk.Code) - loopStart + 3
	if jump > 0xFFFF {
		c.error("Loop body too large.")
		jump = 0
	}
	chunk.WriteOpShort(bytecode.OpLoop, uint16(jump), c.previous.Line)
}

func (c *Compiler) emitReturn() {
	c.emitOp(bytecode.OpNil)
	c.emitOp(bytecode.OpReturn)
}

func (c *Compiler) emitConstant(v bytecode.Value) {
	idx, err := c.currentChunk().AddConstant(v)
	if err != nil {
		c.error(err.Error())
		return
	}
	c.emitOpByte(bytecode.OpConstant, byte(idx))
}

func (c *Compiler) identifierConstant(tok token.Token) byte {
	idx, err := c.currentChunk().AddConstant(bytecode.FromObject(c.interner.Intern(tok.Lexeme)))
	if err != nil {
		c.error(err.Error())
		return 0
	}
	return byte(idx)
}

// --- scopes and locals ---------------------------------------------------

func (c *Compiler) beginScope() { c.fs.scopeDepth++ }

func (c *Compiler) endScope() {
	c.fs.scopeDepth--
	for len(c.fs.locals) > 0 && c.fs.locals[len(c.fs.locals)-1].depth > c.fs.scopeDepth {
		c.emitOp(bytecode.OpPop)
		c.fs.locals = c.fs.locals[:len(c.fs.locals)-1]
	}
}

func (c *Compiler) declareVariable() {
	if c.fs.scopeDepth == 0 {
		return
	}
	name := c.previous.Lexeme
	for i := len(c.fs.locals) - 1; i >= 0; i-- {
		local := c.fs.locals[i]
		if local.depth != uninitializedDepth && local.depth < c.fs.scopeDepth {
			break
		}
		if local.name == name {
			c.error("Already a variable with this name in this scope.")
		}
	}
	if len(c.fs.locals) >= maxLocals {
		c.error("Too many local variables in function.")
		return
	}
	c.fs.locals = append(c.fs.locals, localVar{name: name, depth: uninitializedDepth})
}

func (c *Compiler) markInitialized() {
	if c.fs.scopeDepth == 0 {
		return
	}
	c.fs.locals[len(c.fs.locals)-1].depth = c.fs.scopeDepth
}

// parseVariable consumes the variable's name and, for a local, declares its
// slot; it returns the constant-pool index to use with OP_DEFINE_GLOBAL
// when the variable turns out to be global (the index is meaningless, and
// ignored, for a local).
func (c *Compiler) parseVariable(errMessage string) byte {
	c.consume(token.Identifier, errMessage)
	c.declareVariable()
	if c.fs.scopeDepth > 0 {
		return 0
	}
	return c.identifierConstant(c.previous)
}

func (c *Compiler) defineVariable(global byte) {
	if c.fs.scopeDepth > 0 {
		c.markInitialized()
		return
	}
	c.emitOpByte(bytecode.OpDefineGlobal, global)
}

// endFunctionCompiler closes out the innermost functionState: it emits the
// implicit `return nil;` every function falls through to, then pops the
// compiler back to the enclosing function's state.
func (c *Compiler) endFunctionCompiler() *bytecode.Function {
	c.emitReturn()
	fn := c.fs.function
	c.fs = c.fs.enclosing
	return fn
}

// --- declarations and statements ------------------------------------------

func (c *Compiler) declaration() {
	switch {
	case c.match(token.Fun):
		c.funDeclaration()
	case c.match(token.Var):
		c.varDeclaration()
	default:
		c.statement()
	}
	if c.panicMode {
		c.synchronize()
	}
}

func (c *Compiler) funDeclaration() {
	global := c.parseVariable("Expect function name.")
	c.markInitialized()
	c.function(typeFunction)
	c.defineVariable(global)
}

func (c *Compiler) function(ft funcType) {
	name := c.interner.Intern(c.previous.Lexeme)
	c.fs = newFunctionState(c.fs, name, ft)
	c.beginScope()

	c.consume(token.LeftParen, "Expect '(' after function name.")
	if !c.check(token.RightParen) {
		for {
			c.fs.function.Arity++
			if c.fs.function.Arity > maxParameters {
				c.errorAtCurrent("Can't have more than 255 parameters.")
			}
			paramConstant := c.parseVariable("Expect parameter name.")
			c.defineVariable(paramConstant)
			if !c.match(token.Comma) {
				break
			}
		}
	}
	c.consume(token.RightParen, "Expect ')' after parameters.")
	c.consume(token.LeftBrace, "Expect '{' before function body.")
	c.block()

	fn := c.endFunctionCompiler()
	c.emitConstant(bytecode.FromObject(fn))
}

func (c *Compiler) varDeclaration() {
	global := c.parseVariable("Expect variable name.")
	if c.match(token.Equal) {
		c.expression()
	} else {
		c.emitOp(bytecode.OpNil)
	}
	c.consume(token.Semicolon, "Expect ';' after variable declaration.")
	c.defineVariable(global)
}

func (c *Compiler) statement() {
	switch {
	case c.match(token.Print):
		c.printStatement()
	case c.match(token.If):
		c.ifStatement()
	case c.match(token.While):
		c.whileStatement()
	case c.match(token.For):
		c.forStatement()
	case c.match(token.Return):
		c.returnStatement()
	case c.match(token.LeftBrace):
		c.beginScope()
		c.block()
		c.endScope()
	default:
		c.expressionStatement()
	}
}

func (c *Compiler) block() {
	for !c.check(token.RightBrace) && !c.check(token.EOF) {
		c.declaration()
	}
	c.consume(token.RightBrace, "Expect '}' after block.")
}

func (c *Compiler) printStatement() {
	c.expression()
	c.consume(token.Semicolon, "Expect ';' after value.")
	c.emitOp(bytecode.OpPrint)
}

func (c *Compiler) expressionStatement() {
	c.expression()
	c.consume(token.Semicolon, "Expect ';' after expression.")
	c.emitOp(bytecode.OpPop)
}

func (c *Compiler) returnStatement() {
	if c.fs.funcType == typeScript {
		c.error("Can't return from top-level code.")
	}
	if c.match(token.Semicolon) {
		c.emitReturn()
		return
	}
	c.expression()
	c.consume(token.Semicolon, "Expect ';' after return value.")
	c.emitOp(bytecode.OpReturn)
}

func (c *Compiler) ifStatement() {
	c.consume(token.LeftParen, "Expect '(' after 'if'.")
	c.expression()
	c.consume(token.RightParen, "Expect ')' after condition.")

	thenJump := c.emitJump(bytecode.OpJumpIfFalse)
	c.emitOp(bytecode.OpPop)
	c.statement()

	elseJump := c.emitJump(bytecode.OpJump)
	c.patchJump(thenJump)
	c.emitOp(bytecode.OpPop)

	if c.match(token.Else) {
		c.statement()
	}
	c.patchJump(elseJump)
}

func (c *Compiler) whileStatement() {
	loopStart := len(c.currentChunk().Code)
	c.consume(token.LeftParen, "Expect '(' after 'while'.")
	c.expression()
	c.consume(token.RightParen, "Expect ')' after condition.")

	exitJump := c.emitJump(bytecode.OpJumpIfFalse)
	c.emitOp(bytecode.OpPop)
	c.statement()
	c.emitLoop(loopStart)

	c.patchJump(exitJump)
	c.emitOp(bytecode.OpPop)
}

func (c *Compiler) forStatement() {
	c.beginScope()
	c.consume(token.LeftParen, "Expect '(' after 'for'.")

	switch {
	case c.match(token.Semicolon):
		// no initializer
	case c.match(token.Var):
		c.varDeclaration()
	default:
		c.expressionStatement()
	}

	loopStart := len(c.currentChunk().Code)
	exitJump := -1
	if !c.match(token.Semicolon) {
		c.expression()
		c.consume(token.Semicolon, "Expect ';' after loop condition.")
		exitJump = c.emitJump(bytecode.OpJumpIfFalse)
		c.emitOp(bytecode.OpPop)
	}

	if !c.check(token.RightParen) {
		bodyJump := c.emitJump(bytecode.OpJump)
		incrementStart := len(c.currentChunk().Code)
		c.expression()
		c.emitOp(bytecode.OpPop)
		c.consume(token.RightParen, "Expect ')' after for clauses.")

		c.emitLoop(loopStart)
		loopStart = incrementStart
		c.patchJump(bodyJump)
	}

	c.statement()
	c.emitLoop(loopStart)

	if exitJump != -1 {
		c.patchJump(exitJump)
		c.emitOp(bytecode.OpPop)
	}
	c.endScope()
}

// --- expressions -----------------------------------------------------------

func (c *Compiler) expression() {
	c.parsePrecedence(PrecAssignment)
}

func (c *Compiler) parsePrecedence(prec Precedence) {
	c.advance()
	prefixRule := getRule(c.previous.Type).prefix
	if prefixRule == nil {
		c.error("Expect expression.")
		return
	}

	canAssign := prec <= PrecAssignment
	prefixRule(c, canAssign)

	for prec <= getRule(c.current.Type).precedence {
		c.advance()
		infixRule := getRule(c.previous.Type).infix
		infixRule(c, canAssign)
	}

	if canAssign && c.match(token.Equal) {
		c.error("Invalid assignment target.")
	}
}

func parseFloat(lexeme string) float64 {
	n, _ := strconv.ParseFloat(lexeme, 64)
	return n
}
