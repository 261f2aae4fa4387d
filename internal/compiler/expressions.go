package compiler

import (
	"loxvm/internal/bytecode"
	"loxvm/internal/token"
)

func number(c *Compiler, canAssign bool) {
	c.emitConstant(bytecode.Number(parseFloat(c.previous.Lexeme)))
}

func stringLiteral(c *Compiler, canAssign bool) {
	lexeme := c.previous.Lexeme
	// Lexeme includes the surrounding quotes; this grammar defines no
	// escape sequences, so the characters between them are the value.
	raw := lexeme[1 : len(lexeme)-1]
	c.emitConstant(bytecode.FromObject(c.interner.Intern(raw)))
}

func literal(c *Compiler, canAssign bool) {
	switch c.previous.Type {
	case token.False:
		c.emitOp(bytecode.OpFalse)
	case token.Nil:
		c.emitOp(bytecode.OpNil)
	case token.True:
		c.emitOp(bytecode.OpTrue)
	}
}

func grouping(c *Compiler, canAssign bool) {
	c.expression()
	c.consume(token.RightParen, "Expect ')' after expression.")
}

func unary(c *Compiler, canAssign bool) {
	operatorType := c.previous.Type
	c.parsePrecedence(PrecUnary)
	switch operatorType {
	case token.Minus:
		c.emitOp(bytecode.OpNegate)
	case token.Bang:
		c.emitOp(bytecode.OpNot)
	}
}

func binary(c *Compiler, canAssign bool) {
	operatorType := c.previous.Type
	rule := getRule(operatorType)
	c.parsePrecedence(rule.precedence + 1)

	switch operatorType {
	case token.BangEqual:
		c.emitOp(bytecode.OpEqual)
		c.emitOp(bytecode.OpNot)
	case token.EqualEqual:
		c.emitOp(bytecode.OpEqual)
	case token.Greater:
		c.emitOp(bytecode.OpGreater)
	case token.GreaterEqual:
		c.emitOp(bytecode.OpLess)
		c.emitOp(bytecode.OpNot)
	case token.Less:
		c.emitOp(bytecode.OpLess)
	case token.LessEqual:
		c.emitOp(bytecode.OpGreater)
		c.emitOp(bytecode.OpNot)
	case token.Plus:
		c.emitOp(bytecode.OpAdd)
	case token.Minus:
		c.emitOp(bytecode.OpSubtract)
	case token.Star:
		c.emitOp(bytecode.OpMultiply)
	case token.Slash:
		c.emitOp(bytecode.OpDivide)
	}
}

func and_(c *Compiler, canAssign bool) {
	endJump := c.emitJump(bytecode.OpJumpIfFalse)
	c.emitOp(bytecode.OpPop)
	c.parsePrecedence(PrecAnd)
	c.patchJump(endJump)
}

func or_(c *Compiler, canAssign bool) {
	elseJump := c.emitJump(bytecode.OpJumpIfFalse)
	endJump := c.emitJump(bytecode.OpJump)
	c.patchJump(elseJump)
	c.emitOp(bytecode.OpPop)
	c.parsePrecedence(PrecOr)
	c.patchJump(endJump)
}

func variable(c *Compiler, canAssign bool) {
	namedVariable(c, c.previous, canAssign)
}

func namedVariable(c *Compiler, name token.Token, canAssign bool) {
	var getOp, setOp bytecode.Op
	var arg byte

	if slot, found, uninitialized := c.fs.resolveLocal(name.Lexeme); found {
		if uninitialized {
			c.error("Cannot read local variable in its own initializer.")
		}
		getOp, setOp = bytecode.OpGetLocal, bytecode.OpSetLocal
		arg = byte(slot)
	} else {
		getOp, setOp = bytecode.OpGetGlobal, bytecode.OpSetGlobal
		arg = c.identifierConstant(name)
	}

	if canAssign && c.match(token.Equal) {
		c.expression()
		c.emitOpByte(setOp, arg)
	} else {
		c.emitOpByte(getOp, arg)
	}
}

func call(c *Compiler, canAssign bool) {
	argCount := argumentList(c)
	c.emitOpByte(bytecode.OpCall, argCount)
}

func argumentList(c *Compiler) byte {
	count := 0
	if !c.check(token.RightParen) {
		for {
			c.expression()
			if count == 255 {
				c.error("Can't have more than 255 arguments.")
			}
			count++
			if !c.match(token.Comma) {
				break
			}
		}
	}
	c.consume(token.RightParen, "Expect ')' after arguments.")
	return byte(count)
}
