package bytecode

import (
	"encoding/binary"
	"fmt"
)

// Op is a single bytecode opcode.
type Op byte

const (
	OpConstant Op = iota
	OpNil
	OpTrue
	OpFalse
	OpPop
	OpGetLocal
	OpSetLocal
	OpDefineGlobal
	OpGetGlobal
	OpSetGlobal
	OpEqual
	OpGreater
	OpLess
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
	OpNot
	OpNegate
	OpPrint
	OpJump
	OpJumpIfFalse
	OpLoop
	OpCall
	OpReturn
)

var opNames = map[Op]string{
	OpConstant:     "OP_CONSTANT",
	OpNil:          "OP_NIL",
	OpTrue:         "OP_TRUE",
	OpFalse:        "OP_FALSE",
	OpPop:          "OP_POP",
	OpGetLocal:     "OP_GET_LOCAL",
	OpSetLocal:     "OP_SET_LOCAL",
	OpDefineGlobal: "OP_DEFINE_GLOBAL",
	OpGetGlobal:    "OP_GET_GLOBAL",
	OpSetGlobal:    "OP_SET_GLOBAL",
	OpEqual:        "OP_EQUAL",
	OpGreater:      "OP_GREATER",
	OpLess:         "OP_LESS",
	OpAdd:          "OP_ADD",
	OpSubtract:     "OP_SUBTRACT",
	OpMultiply:     "OP_MULTIPLY",
	OpDivide:       "OP_DIVIDE",
	OpNot:          "OP_NOT",
	OpNegate:       "OP_NEGATE",
	OpPrint:        "OP_PRINT",
	OpJump:         "OP_JUMP",
	OpJumpIfFalse:  "OP_JUMP_IF_FALSE",
	OpLoop:         "OP_LOOP",
	OpCall:         "OP_CALL",
	OpReturn:       "OP_RETURN",
}

// operandWidths gives the number of operand bytes following each opcode:
// 0 for no operand, 1 for a constant/local-slot/argc index, 2 for a
// big-endian jump offset.
var operandWidths = map[Op]int{
	OpConstant:     1,
	OpNil:          0,
	OpTrue:         0,
	OpFalse:        0,
	OpPop:          0,
	OpGetLocal:     1,
	OpSetLocal:     1,
	OpDefineGlobal: 1,
	OpGetGlobal:    1,
	OpSetGlobal:    1,
	OpEqual:        0,
	OpGreater:      0,
	OpLess:         0,
	OpAdd:          0,
	OpSubtract:     0,
	OpMultiply:     0,
	OpDivide:       0,
	OpNot:          0,
	OpNegate:       0,
	OpPrint:        0,
	OpJump:         2,
	OpJumpIfFalse:  2,
	OpLoop:         2,
	OpCall:         1,
	OpReturn:       0,
}

// Name returns the opcode's disassembly mnemonic.
func (op Op) Name() string {
	if name, ok := opNames[op]; ok {
		return name
	}
	return fmt.Sprintf("OP_UNKNOWN(%d)", byte(op))
}

// OperandWidth returns the number of operand bytes that follow op.
func (op Op) OperandWidth() int {
	return operandWidths[op]
}

const maxConstants = 256
const maxLocals = 256

// Chunk is the append-only bytecode buffer, constant pool, and parallel
// line-number side table for one compiled function. Code and Lines always
// have equal length.
type Chunk struct {
	Code      []byte
	Lines     []int
	Constants []Value
}

// NewChunk returns an empty Chunk.
func NewChunk() *Chunk {
	return &Chunk{}
}

// WriteByte appends a raw byte and its source line.
func (c *Chunk) WriteByte(b byte, line int) {
	c.Code = append(c.Code, b)
	c.Lines = append(c.Lines, line)
}

// WriteOp appends an opcode with no operand.
func (c *Chunk) WriteOp(op Op, line int) {
	c.WriteByte(byte(op), line)
}

// WriteOpByte appends an opcode followed by a single-byte operand.
func (c *Chunk) WriteOpByte(op Op, operand byte, line int) {
	c.WriteByte(byte(op), line)
	c.WriteByte(operand, line)
}

// WriteOpShortPlaceholder appends an opcode followed by a two-byte 0xFFFF
// placeholder operand and returns the offset of the first placeholder
// byte, for later patching by PatchJump once the jump target is known.
func (c *Chunk) WriteOpShortPlaceholder(op Op, line int) int {
	c.WriteByte(byte(op), line)
	offset := len(c.Code)
	c.WriteByte(0xFF, line)
	c.WriteByte(0xFF, line)
	return offset
}

// WriteOpShort appends an opcode followed by a two-byte big-endian
// operand (used directly by OP_LOOP, whose target is already known).
func (c *Chunk) WriteOpShort(op Op, operand uint16, line int) {
	c.WriteByte(byte(op), line)
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], operand)
	c.WriteByte(buf[0], line)
	c.WriteByte(buf[1], line)
}

// PatchJump overwrites the two placeholder bytes at offset (as returned by
// WriteOpShortPlaceholder) with the distance from the byte after the
// operand to the current end of the chunk. It errors if that distance
// would overflow a uint16.
func (c *Chunk) PatchJump(offset int) error {
	jump := len(c.Code) - offset - 2
	if jump > 0xFFFF {
		return fmt.Errorf("too much code to jump over")
	}
	binary.BigEndian.PutUint16(c.Code[offset:offset+2], uint16(jump))
	return nil
}

// AddConstant appends v to the constant pool and returns its index. It
// errors once the pool would exceed the 256-entry limit a single
// constant-index byte can address.
func (c *Chunk) AddConstant(v Value) (int, error) {
	if len(c.Constants) >= maxConstants {
		return 0, fmt.Errorf("too many constants in one chunk")
	}
	c.Constants = append(c.Constants, v)
	return len(c.Constants) - 1, nil
}

// ReadShort decodes the big-endian uint16 operand starting at offset.
// Each byte is widened to uint16 before shifting, so no high bits are
// lost for the first byte.
func (c *Chunk) ReadShort(offset int) uint16 {
	hi := uint16(c.Code[offset])
	lo := uint16(c.Code[offset+1])
	return hi<<8 | lo
}
