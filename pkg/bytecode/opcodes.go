package bytecode

import "fmt"

// Opcode represents a decoded instruction tag.
// Byte values 0x00-0x0E are defined; every other byte decodes to OpIllegal.
type Opcode byte

const (
	// ========================================================================
	// Control (0x00-0x01)
	// ========================================================================

	OpHalt Opcode = 0x00 // Stop execution gracefully
	OpLoad Opcode = 0x01 // Load immediate: OpLoad <reg:u8> <imm:u16>

	// ========================================================================
	// Arithmetic (0x02-0x05)
	// ========================================================================

	OpAdd Opcode = 0x02 // dst = src1 + src2: OpAdd <src1:u8> <src2:u8> <dst:u8>
	OpSub Opcode = 0x03 // dst = src1 - src2
	OpMul Opcode = 0x04 // dst = src1 * src2
	OpDiv Opcode = 0x05 // dst = src1 / src2, remainder = src1 % src2

	// ========================================================================
	// Comparison (0x06-0x07, 0x0B-0x0E)
	// ========================================================================

	OpEq  Opcode = 0x06 // flag = a == b: OpEq <a:u8> <b:u8> <pad:u8>
	OpNeq Opcode = 0x07 // flag = a != b

	// ========================================================================
	// Control flow (0x08-0x0A)
	// ========================================================================

	OpJmp         Opcode = 0x08 // pc = reg: OpJmp <reg:u8>
	OpJmpForward  Opcode = 0x09 // pc += reg
	OpJmpBackward Opcode = 0x0A // pc -= reg

	OpGt  Opcode = 0x0B // flag = a > b
	OpGte Opcode = 0x0C // flag = a >= b
	OpLt  Opcode = 0x0D // flag = a < b
	OpLte Opcode = 0x0E // flag = a <= b

	// OpIllegal stands for every byte with no defined meaning.
	OpIllegal Opcode = 0xFF
)

// SlotWidth is the conventional width of one instruction in hand-authored
// programs: the opcode byte plus three operand or padding bytes.
const SlotWidth = 4

// OpcodeInfo provides metadata about each opcode for decoding and listings.
type OpcodeInfo struct {
	Name       string // Human-readable mnemonic
	OperandLen int    // Number of meaningful operand bytes following the opcode
	Consumed   int    // Operand bytes the engine consumes (includes the comparison filler)
}

// opcodeInfoTable maps opcodes to their metadata.
var opcodeInfoTable = map[Opcode]OpcodeInfo{
	OpHalt: {"HALT", 0, 0},
	OpLoad: {"LOAD", 3, 3},

	OpAdd: {"ADD", 3, 3},
	OpSub: {"SUB", 3, 3},
	OpMul: {"MUL", 3, 3},
	OpDiv: {"DIV", 3, 3},

	OpEq:  {"EQ", 2, 3},
	OpNeq: {"NEQ", 2, 3},
	OpGt:  {"GT", 2, 3},
	OpGte: {"GTE", 2, 3},
	OpLt:  {"LT", 2, 3},
	OpLte: {"LTE", 2, 3},

	OpJmp:         {"JMP", 1, 1},
	OpJmpForward:  {"JMPF", 1, 1},
	OpJmpBackward: {"JMPB", 1, 1},
}

// Decode maps a raw byte to its opcode. It never fails: bytes outside
// 0x00-0x0E yield OpIllegal.
func Decode(b byte) Opcode {
	op := Opcode(b)
	if _, ok := opcodeInfoTable[op]; ok {
		return op
	}
	return OpIllegal
}

// GetOpcodeInfo returns metadata for an opcode.
// Returns a zero OpcodeInfo with name "ILLEGAL" if the opcode is not recognized.
func GetOpcodeInfo(op Opcode) OpcodeInfo {
	if info, ok := opcodeInfoTable[op]; ok {
		return info
	}
	if op == OpIllegal {
		return OpcodeInfo{Name: "ILLEGAL"}
	}
	return OpcodeInfo{Name: fmt.Sprintf("ILLEGAL(0x%02X)", byte(op))}
}

// String returns the mnemonic of an opcode.
func (op Opcode) String() string {
	return GetOpcodeInfo(op).Name
}

// OperandLen returns the number of meaningful operand bytes for this opcode.
func (op Opcode) OperandLen() int {
	return GetOpcodeInfo(op).OperandLen
}

// ConsumedLen returns how many operand bytes the engine reads past the opcode.
func (op Opcode) ConsumedLen() int {
	return GetOpcodeInfo(op).Consumed
}

// IsLegal reports whether op is one of the defined opcodes.
func (op Opcode) IsLegal() bool {
	_, ok := opcodeInfoTable[op]
	return ok
}

// IsArithmetic returns true for the three-register arithmetic opcodes.
func (op Opcode) IsArithmetic() bool {
	return op >= OpAdd && op <= OpDiv
}

// IsComparison returns true for opcodes that set the equality flag.
func (op Opcode) IsComparison() bool {
	return op == OpEq || op == OpNeq || (op >= OpGt && op <= OpLte)
}

// IsJump returns true if this opcode repositions the program counter.
func (op Opcode) IsJump() bool {
	return op >= OpJmp && op <= OpJmpBackward
}

// AllOpcodes returns every defined opcode in byte order.
func AllOpcodes() []Opcode {
	opcodes := make([]Opcode, 0, len(opcodeInfoTable))
	for b := 0; b < 256; b++ {
		if op := Opcode(b); op.IsLegal() {
			opcodes = append(opcodes, op)
		}
	}
	return opcodes
}

// OpcodeCount returns the number of defined opcodes.
func OpcodeCount() int {
	return len(opcodeInfoTable)
}
