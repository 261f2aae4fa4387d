package bytecode

import "testing"

func TestWriteOpByteRoundTrip(t *testing.T) {
	c := NewChunk()
	idx, err := c.AddConstant(Number(42))
	if err != nil {
		t.Fatalf("AddConstant: %v", err)
	}
	c.WriteOpByte(OpConstant, byte(idx), 1)

	if len(c.Code) != 2 {
		t.Fatalf("expected 2 bytes, got %d", len(c.Code))
	}
	if Op(c.Code[0]) != OpConstant {
		t.Fatalf("expected OpConstant, got %v", Op(c.Code[0]))
	}
	if c.Code[1] != byte(idx) {
		t.Fatalf("expected operand %d, got %d", idx, c.Code[1])
	}
	if c.Lines[0] != 1 || c.Lines[1] != 1 {
		t.Fatalf("expected line 1 for both bytes, got %v", c.Lines)
	}
}

func TestAddConstantOverflow(t *testing.T) {
	c := NewChunk()
	for i := 0; i < maxConstants; i++ {
		if _, err := c.AddConstant(Number(float64(i))); err != nil {
			t.Fatalf("unexpected error at constant %d: %v", i, err)
		}
	}
	if _, err := c.AddConstant(Number(999)); err == nil {
		t.Fatal("expected error adding the 257th constant")
	}
}

func TestPatchJump(t *testing.T) {
	c := NewChunk()
	offset := c.WriteOpShortPlaceholder(OpJumpIfFalse, 1)
	c.WriteOp(OpPop, 1)
	c.WriteOp(OpPop, 1)

	if err := c.PatchJump(offset); err != nil {
		t.Fatalf("PatchJump: %v", err)
	}
	got := c.ReadShort(offset)
	if got != 2 {
		t.Fatalf("expected jump distance 2, got %d", got)
	}
}

func TestReadShortWidensBeforeShifting(t *testing.T) {
	c := NewChunk()
	c.WriteByte(0x01, 1)
	c.WriteByte(0xFF, 1)
	got := c.ReadShort(0)
	if got != 0x01FF {
		t.Fatalf("expected 0x01FF, got %#x", got)
	}
}

func TestPatchJumpOverflow(t *testing.T) {
	c := NewChunk()
	if _, err := c.AddConstant(Number(1)); err != nil {
		t.Fatalf("AddConstant: %v", err)
	}
	offset := c.WriteOpShortPlaceholder(OpJump, 1)
	// Simulate a huge gap between offset and the current end of the chunk.
	c.Code = append(c.Code, make([]byte, 0x10000)...)
	c.Lines = append(c.Lines, make([]int, 0x10000)...)
	if err := c.PatchJump(offset); err == nil {
		t.Fatal("expected an error patching a jump further than 0xFFFF bytes")
	}
}
