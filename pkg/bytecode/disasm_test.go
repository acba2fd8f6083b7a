package bytecode

import (
	"strings"
	"testing"
)

func TestDisassembleInstruction(t *testing.T) {
	tests := []struct {
		name string
		code []byte
		want string
	}{
		{"halt", []byte{0, 0, 0, 0}, "HALT"},
		{"load", []byte{1, 0, 1, 244}, "LOAD r0, 500"},
		{"add", []byte{2, 0, 1, 2}, "ADD r0, r1 -> r2"},
		{"div into float", []byte{5, 0, 1, 40}, "DIV r0, r1 -> r40"},
		{"eq", []byte{6, 3, 4, 0}, "EQ r3, r4"},
		{"lte", []byte{14, 0, 1, 0}, "LTE r0, r1"},
		{"jmp", []byte{8, 1, 0, 0}, "JMP r1"},
		{"jmpf", []byte{9, 1, 0, 0}, "JMPF r1 ; from 0006"},
		{"jmpb", []byte{10, 2, 0, 0}, "JMPB r2 ; from 0006"},
		{"illegal", []byte{200, 0, 0, 0}, "ILLEGAL(0xC8)"},
		{"bad register", []byte{2, 0, 1, 99}, "ADD r0, r1 -> r99?"},
		{"truncated load", []byte{1, 0, 1}, "LOAD <truncated>"},
		{"truncated eq", []byte{6, 0}, "EQ <truncated>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			program := PrependHeader(tt.code)
			if got := DisassembleInstruction(program, HeaderLen); got != tt.want {
				t.Errorf("DisassembleInstruction = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDisassembleInstructionPastEnd(t *testing.T) {
	program := PrependHeader([]byte{0, 0, 0, 0})
	if got := DisassembleInstruction(program, len(program)); got != "<end of code>" {
		t.Errorf("DisassembleInstruction past end = %q", got)
	}
}

func TestDisassemble(t *testing.T) {
	p := NewProgram()
	p.EmitLoad(0, 30)
	p.EmitLoad(1, 2)
	p.EmitArith(OpMul, 0, 1, 2)
	p.EmitHalt()

	out := DisassembleWithName(p.Bytes(), "double")

	for _, want := range []string{
		"; === double ===",
		"; NSKO Bytecode (20 bytes)",
		"; Header: OK",
		"0004  LOAD r0, 30",
		"0008  LOAD r1, 2",
		"000C  MUL r0, r1 -> r2",
		"0010  HALT",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Missing %q in:\n%s", want, out)
		}
	}
}

func TestDisassembleInvalidHeader(t *testing.T) {
	out := Disassemble([]byte{1, 2, 3, 4, 0, 0, 0, 0})
	if !strings.Contains(out, "; Header: INVALID") {
		t.Errorf("Expected invalid header marker in:\n%s", out)
	}
	if strings.Contains(out, "; Code:") {
		t.Errorf("Code section listed for invalid program:\n%s", out)
	}
}

func TestDisassembleTrailingPartialSlot(t *testing.T) {
	program := PrependHeader([]byte{0, 0, 0, 0, 1, 3})
	out := Disassemble(program)
	if !strings.Contains(out, "0008  LOAD <truncated>") {
		t.Errorf("Expected truncated trailing slot in:\n%s", out)
	}
}
