package bytecode

import (
	"strings"
	"testing"
)

func TestAllOpcodesHaveMetadata(t *testing.T) {
	for _, op := range AllOpcodes() {
		info := GetOpcodeInfo(op)
		if info.Name == "" || strings.HasPrefix(info.Name, "ILLEGAL") {
			t.Errorf("Opcode 0x%02X has no metadata", byte(op))
		}
	}
}

func TestOpcodeCount(t *testing.T) {
	if count := OpcodeCount(); count != 15 {
		t.Errorf("Expected 15 opcodes, got %d", count)
	}
	if n := len(AllOpcodes()); n != OpcodeCount() {
		t.Errorf("AllOpcodes() has %d entries, OpcodeCount() = %d", n, OpcodeCount())
	}
}

func TestAllOpcodesInByteOrder(t *testing.T) {
	for i, op := range AllOpcodes() {
		if byte(op) != byte(i) {
			t.Errorf("AllOpcodes()[%d] = 0x%02X, want 0x%02X", i, byte(op), i)
		}
	}
}

func TestOpcodeString(t *testing.T) {
	tests := []struct {
		op   Opcode
		want string
	}{
		{OpHalt, "HALT"},
		{OpLoad, "LOAD"},
		{OpAdd, "ADD"},
		{OpSub, "SUB"},
		{OpMul, "MUL"},
		{OpDiv, "DIV"},
		{OpEq, "EQ"},
		{OpNeq, "NEQ"},
		{OpJmp, "JMP"},
		{OpJmpForward, "JMPF"},
		{OpJmpBackward, "JMPB"},
		{OpGt, "GT"},
		{OpGte, "GTE"},
		{OpLt, "LT"},
		{OpLte, "LTE"},
		{OpIllegal, "ILLEGAL"},
		{Opcode(0x42), "ILLEGAL(0x42)"},
	}

	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("Opcode(0x%02X).String() = %q, want %q", byte(tt.op), got, tt.want)
		}
	}
}

func TestDecode(t *testing.T) {
	for b := 0; b < 256; b++ {
		op := Decode(byte(b))
		if b <= 0x0E {
			if byte(op) != byte(b) {
				t.Errorf("Decode(0x%02X) = 0x%02X, want identity", b, byte(op))
			}
			continue
		}
		if op != OpIllegal {
			t.Errorf("Decode(0x%02X) = %s, want ILLEGAL", b, op)
		}
	}
}

func TestOperandLengths(t *testing.T) {
	tests := []struct {
		op       Opcode
		operands int
		consumed int
	}{
		{OpHalt, 0, 0},
		{OpLoad, 3, 3},
		{OpAdd, 3, 3},
		{OpDiv, 3, 3},
		{OpEq, 2, 3},
		{OpLte, 2, 3},
		{OpJmp, 1, 1},
		{OpJmpForward, 1, 1},
		{OpJmpBackward, 1, 1},
		{OpIllegal, 0, 0},
	}

	for _, tt := range tests {
		if got := tt.op.OperandLen(); got != tt.operands {
			t.Errorf("%s.OperandLen() = %d, want %d", tt.op, got, tt.operands)
		}
		if got := tt.op.ConsumedLen(); got != tt.consumed {
			t.Errorf("%s.ConsumedLen() = %d, want %d", tt.op, got, tt.consumed)
		}
	}
}

func TestOpcodeClassification(t *testing.T) {
	arith := map[Opcode]bool{OpAdd: true, OpSub: true, OpMul: true, OpDiv: true}
	cmp := map[Opcode]bool{OpEq: true, OpNeq: true, OpGt: true, OpGte: true, OpLt: true, OpLte: true}
	jmp := map[Opcode]bool{OpJmp: true, OpJmpForward: true, OpJmpBackward: true}

	for _, op := range append(AllOpcodes(), OpIllegal) {
		if op.IsArithmetic() != arith[op] {
			t.Errorf("%s.IsArithmetic() = %v", op, op.IsArithmetic())
		}
		if op.IsComparison() != cmp[op] {
			t.Errorf("%s.IsComparison() = %v", op, op.IsComparison())
		}
		if op.IsJump() != jmp[op] {
			t.Errorf("%s.IsJump() = %v", op, op.IsJump())
		}
	}

	if OpIllegal.IsLegal() {
		t.Error("OpIllegal must not be legal")
	}
}

func TestOperandsFitSlot(t *testing.T) {
	for _, op := range AllOpcodes() {
		if 1+op.ConsumedLen() > SlotWidth {
			t.Errorf("%s consumes %d bytes, more than a slot", op, 1+op.ConsumedLen())
		}
	}
}
