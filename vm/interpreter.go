package vm

import (
	"encoding/binary"
	"math"

	"github.com/chazu/nasko/pkg/bytecode"
)

// Run executes the loaded program until it halts, runs off the end, or
// crashes, and returns the events of this run in order. The event log and
// program counter are reset first; register state carries over from any
// previous run (use Reset to clear it).
//
// Run never panics on malformed input: every failure is reported as a
// Crash event. A program that jumps in a loop forever never returns.
func (e *Engine) Run() []Event {
	e.pc = 0
	e.events = nil
	e.profile = newProfile()
	e.record(EventStart, 0)
	e.log.Infof("engine %s started (%d bytes)", e.id, len(e.program))

	if len(e.program) < bytecode.HeaderLen {
		e.crash(CrashIncompleteBytecode)
		return e.Events()
	}
	if !bytecode.HasHeader(e.program) {
		e.crash(CrashInvalidHeader)
		return e.Events()
	}
	e.pc += bytecode.HeaderLen

	for {
		if e.pc >= len(e.program) {
			e.stop(StopEndOfProgram)
			return e.Events()
		}

		if e.trace {
			e.log.Debugf("[%04x] %s", e.pc, bytecode.DisassembleInstruction(e.program, e.pc))
		}

		offset := e.pc
		op := e.decodeOpcode()
		e.profile.record(offset, op)
		if done := e.execute(op); done {
			return e.Events()
		}
	}
}

// execute performs one decoded instruction. It returns true once a terminal
// event has been recorded.
func (e *Engine) execute(op bytecode.Opcode) bool {
	switch op {
	case bytecode.OpHalt:
		return e.stop(StopHalt)

	case bytecode.OpLoad:
		ops, ok := e.operands(op.OperandLen())
		if !ok {
			return e.crash(CrashIncompleteBytecode)
		}
		e.writeRegister(int(ops[0]), float64(binary.BigEndian.Uint16(ops[1:])))
		return false

	case bytecode.OpAdd, bytecode.OpSub, bytecode.OpMul, bytecode.OpDiv:
		return e.arithmetic(op)

	case bytecode.OpEq, bytecode.OpNeq, bytecode.OpGt, bytecode.OpGte, bytecode.OpLt, bytecode.OpLte:
		return e.compare(op)

	case bytecode.OpJmp, bytecode.OpJmpForward, bytecode.OpJmpBackward:
		return e.jump(op)

	case bytecode.OpIllegal:
		e.log.Warningf("illegal opcode 0x%02X at %04x", e.program[e.pc-1], e.pc-1)
		return e.crash(CrashUnknownOpcode)

	default:
		return e.crash(CrashUnknownOpcode)
	}
}

// ============ Arithmetic ============

func (e *Engine) arithmetic(op bytecode.Opcode) bool {
	ops, ok := e.operands(op.OperandLen())
	if !ok {
		return e.crash(CrashIncompleteBytecode)
	}
	a := e.readRegister(int(ops[0]))
	b := e.readRegister(int(ops[1]))
	dst := int(ops[2])

	switch op {
	case bytecode.OpAdd:
		e.writeRegister(dst, a+b)
	case bytecode.OpSub:
		e.writeRegister(dst, a-b)
	case bytecode.OpMul:
		e.writeRegister(dst, a*b)
	case bytecode.OpDiv:
		if b == 0 {
			e.log.Errorf("division by zero at %04x", e.pc-4)
			return e.crash(CrashDivisionByZero)
		}
		e.writeRegister(dst, a/b)
		e.remainder = remainderOf(a, b)
	}
	return false
}

// remainderOf returns the truncated remainder of a/b, sign following a.
func remainderOf(a, b float64) int64 {
	r := math.Mod(a, b)
	switch {
	case math.IsNaN(r):
		return 0
	case r >= math.MaxInt64:
		return math.MaxInt64
	case r <= math.MinInt64:
		return math.MinInt64
	}
	return int64(r)
}

// ============ Comparison ============

func (e *Engine) compare(op bytecode.Opcode) bool {
	ops, ok := e.operands(op.OperandLen())
	if !ok {
		return e.crash(CrashIncompleteBytecode)
	}
	a := e.readRegister(int(ops[0]))
	b := e.readRegister(int(ops[1]))

	switch op {
	case bytecode.OpEq:
		e.eqFlag = a == b
	case bytecode.OpNeq:
		e.eqFlag = a != b
	case bytecode.OpGt:
		e.eqFlag = a > b
	case bytecode.OpGte:
		e.eqFlag = a >= b
	case bytecode.OpLt:
		e.eqFlag = a < b
	case bytecode.OpLte:
		e.eqFlag = a <= b
	}

	// Skip the filler so the next fetch starts on the next slot.
	// A program may end right before it.
	e.pc = min(e.pc+op.ConsumedLen()-op.OperandLen(), len(e.program))
	return false
}

// ============ Control Flow ============

// jump repositions the program counter. Relative jumps count from the byte
// following the register operand.
func (e *Engine) jump(op bytecode.Opcode) bool {
	ops, ok := e.operands(op.OperandLen())
	if !ok {
		return e.crash(CrashIncompleteBytecode)
	}
	value := toOffset(e.readRegister(int(ops[0])))

	var target int
	switch op {
	case bytecode.OpJmp:
		target = value
	case bytecode.OpJmpForward:
		target = e.pc + value
	case bytecode.OpJmpBackward:
		target = e.pc - value
	}

	if target < 0 {
		e.log.Errorf("%s from %04x lands at %d", op, e.pc-2, target)
		return e.crash(CrashInvalidJumpTarget)
	}
	e.pc = target
	return false
}

// ============ Decoding helpers ============

// decodeOpcode fetches the byte at pc and advances past it.
// The caller guarantees pc is in range.
func (e *Engine) decodeOpcode() bytecode.Opcode {
	op := bytecode.Decode(e.program[e.pc])
	e.pc++
	return op
}

// operands returns the next n bytes and advances past them. It reports false,
// leaving pc untouched, when fewer than n bytes remain.
func (e *Engine) operands(n int) ([]byte, bool) {
	if e.pc+n > len(e.program) {
		return nil, false
	}
	ops := e.program[e.pc : e.pc+n]
	e.pc += n
	return ops, true
}

// ============ Terminal transitions ============

func (e *Engine) stop(code uint32) bool {
	e.record(EventGracefulStop, code)
	e.log.Infof("engine %s stopped: %s", e.id, StopDescription(code))
	return true
}

func (e *Engine) crash(code uint32) bool {
	e.record(EventCrash, code)
	e.log.Errorf("engine %s crashed: %s", e.id, CrashDescription(code))
	return true
}
