// Package bytecode defines the NSKO instruction encoding consumed by the
// register VM in package vm.
//
// The format:
//   - A fixed 4-byte magic header, "NSKO" ({78, 83, 75, 79})
//   - One opcode byte per instruction, followed by an opcode-specific
//     number of operand bytes
//   - 16-bit immediates are big-endian
//
// # Instruction Layout
//
// Hand-authored programs pad every instruction to a 4-byte slot:
//
//	HALT  pad pad pad
//	LOAD  reg imm_hi imm_lo
//	ADD   src1 src2 dst        (also SUB, MUL, DIV)
//	EQ    a b pad              (also NEQ, GT, GTE, LT, LTE)
//	JMP   reg pad pad          (also JMPF, JMPB)
//
// The slot width is a caller convention. The VM consumes the comparison
// filler byte but not the padding after HALT or a jump.
//
// # Decoding
//
// Decode never fails. Any byte outside 0x00-0x0E decodes to OpIllegal and it
// is up to the interpreter to treat that as fatal.
package bytecode
