package bytecode

import (
	"bytes"
	"encoding/binary"
)

// Magic bytes every program starts with: "NSKO".
var Magic = [4]byte{78, 83, 75, 79}

// HeaderLen is the number of bytes occupied by the magic header.
const HeaderLen = len(Magic)

// HasHeader reports whether program starts with the magic header.
// Buffers shorter than the header never match and are never indexed out of range.
func HasHeader(program []byte) bool {
	if len(program) < HeaderLen {
		return false
	}
	return bytes.Equal(program[:HeaderLen], Magic[:])
}

// PrependHeader returns a new buffer containing the magic header followed by code.
func PrependHeader(code []byte) []byte {
	buf := make([]byte, 0, HeaderLen+len(code))
	buf = append(buf, Magic[:]...)
	return append(buf, code...)
}

// Program builds a headered instruction stream using the 4-byte slot
// convention of hand-authored programs. Every Emit* helper pads its
// instruction to SlotWidth bytes.
type Program struct {
	Code []byte
}

// NewProgram creates a program containing only the magic header.
func NewProgram() *Program {
	return &Program{Code: PrependHeader(make([]byte, 0, 64))}
}

// Emit appends one slot: the opcode followed by operands, zero padded to SlotWidth.
// Returns the offset of the opcode byte.
func (p *Program) Emit(op Opcode, operands ...byte) int {
	offset := len(p.Code)
	p.Code = append(p.Code, byte(op))
	p.Code = append(p.Code, operands...)
	for len(p.Code)-offset < SlotWidth {
		p.Code = append(p.Code, 0)
	}
	return offset
}

// EmitHalt appends a padded halt.
func (p *Program) EmitHalt() int {
	return p.Emit(OpHalt)
}

// EmitLoad appends a load of a 16-bit immediate into reg (big-endian on the wire).
func (p *Program) EmitLoad(reg uint8, value uint16) int {
	var imm [2]byte
	binary.BigEndian.PutUint16(imm[:], value)
	return p.Emit(OpLoad, reg, imm[0], imm[1])
}

// EmitArith appends a three-register arithmetic instruction.
func (p *Program) EmitArith(op Opcode, src1, src2, dst uint8) int {
	return p.Emit(op, src1, src2, dst)
}

// EmitCompare appends a two-register comparison with its filler byte.
func (p *Program) EmitCompare(op Opcode, a, b uint8) int {
	return p.Emit(op, a, b)
}

// EmitJump appends a jump reading its target or offset from reg.
func (p *Program) EmitJump(op Opcode, reg uint8) int {
	return p.Emit(op, reg)
}

// CurrentOffset returns the offset the next emitted instruction will occupy.
func (p *Program) CurrentOffset() int {
	return len(p.Code)
}

// Bytes returns the encoded program, header included.
func (p *Program) Bytes() []byte {
	return p.Code
}
