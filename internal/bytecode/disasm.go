package bytecode

import (
	"fmt"
	"strings"
)

// Disassemble walks a Chunk's instructions linearly and renders each one
// as its byte offset, source line, opcode name, and resolved operand,
// covering the full opcode table including two-byte jump offsets, which
// are printed as the raw delta followed by the byte offset they jump to.
func Disassemble(c *Chunk, name string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "== %s ==\n", name)
	for offset := 0; offset < len(c.Code); {
		offset = disassembleInstruction(&b, c, offset)
	}
	return b.String()
}

func disassembleInstruction(b *strings.Builder, c *Chunk, offset int) int {
	op := Op(c.Code[offset])
	width := op.OperandWidth()

	fmt.Fprintf(b, "%04d line:%-4d %s", offset, c.Lines[offset], op.Name())

	switch width {
	case 0:
		b.WriteString("\n")
		return offset + 1
	case 1:
		operand := c.Code[offset+1]
		if op == OpConstant || op == OpDefineGlobal || op == OpGetGlobal || op == OpSetGlobal {
			fmt.Fprintf(b, " %d ; %s\n", operand, c.Constants[operand].String())
		} else {
			fmt.Fprintf(b, " %d\n", operand)
		}
		return offset + 2
	case 2:
		jump := c.ReadShort(offset + 1)
		var target int
		if op == OpLoop {
			target = offset + 3 - int(jump)
		} else {
			target = offset + 3 + int(jump)
		}
		fmt.Fprintf(b, " %d -> %d\n", jump, target)
		return offset + 3
	default:
		b.WriteString(" <unknown operand width>\n")
		return offset + 1
	}
}
