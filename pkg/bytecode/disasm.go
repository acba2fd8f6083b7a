package bytecode

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// Disassemble returns a human-readable listing of a headered program.
func Disassemble(program []byte) string {
	return DisassembleWithName(program, "")
}

// DisassembleWithName returns a listing with a name header.
// The code section is walked in SlotWidth steps, matching how hand-authored
// programs are laid out; a short trailing slot is listed with what remains.
func DisassembleWithName(program []byte, name string) string {
	var sb strings.Builder

	if name != "" {
		sb.WriteString(fmt.Sprintf("; === %s ===\n", name))
	}
	sb.WriteString(fmt.Sprintf("; NSKO Bytecode (%d bytes)\n", len(program)))

	if !HasHeader(program) {
		sb.WriteString("; Header: INVALID\n")
		return sb.String()
	}
	sb.WriteString("; Header: OK\n\n")

	sb.WriteString("; Code:\n")
	for offset := HeaderLen; offset < len(program); offset += SlotWidth {
		sb.WriteString(fmt.Sprintf("%04X  %s\n", offset, DisassembleInstruction(program, offset)))
	}

	return sb.String()
}

// DisassembleInstruction renders the instruction whose opcode sits at offset.
func DisassembleInstruction(program []byte, offset int) string {
	if offset >= len(program) {
		return "<end of code>"
	}

	raw := program[offset]
	op := Decode(raw)
	if offset+op.OperandLen() >= len(program) {
		return fmt.Sprintf("%s <truncated>", op)
	}

	switch {
	case op == OpIllegal:
		return fmt.Sprintf("ILLEGAL(0x%02X)", raw)

	case op == OpHalt:
		return "HALT"

	case op == OpLoad:
		reg := program[offset+1]
		imm := binary.BigEndian.Uint16(program[offset+2:])
		return fmt.Sprintf("LOAD %s, %d", registerName(reg), imm)

	case op.IsArithmetic():
		a, b, dst := program[offset+1], program[offset+2], program[offset+3]
		return fmt.Sprintf("%s %s, %s -> %s", op, registerName(a), registerName(b), registerName(dst))

	case op.IsComparison():
		a, b := program[offset+1], program[offset+2]
		return fmt.Sprintf("%s %s, %s", op, registerName(a), registerName(b))

	case op.IsJump():
		reg := program[offset+1]
		if op == OpJmp {
			return fmt.Sprintf("JMP %s", registerName(reg))
		}
		// Relative jumps count from the byte after the register operand.
		return fmt.Sprintf("%s %s ; from %04X", op, registerName(reg), offset+2)
	}

	return op.String()
}

// registerName formats a register index, marking ones outside both banks.
func registerName(idx byte) string {
	if idx > 63 {
		return fmt.Sprintf("r%d?", idx)
	}
	return fmt.Sprintf("r%d", idx)
}
