package vm

import "math"

// Register index layout. A single operand byte addresses both banks:
//
//	0-31   integer bank
//	32-63  float bank (bank-relative index = idx - 32)
//	64-255 no register; writes are dropped, reads yield zero
const (
	floatBankStart = IntRegisterCount
	floatBankEnd   = floatBankStart + FloatRegisterCount - 1
)

// readRegister widens the addressed register to float64.
func (e *Engine) readRegister(idx int) float64 {
	switch {
	case idx >= 0 && idx < floatBankStart:
		return float64(e.registers[idx])
	case idx >= floatBankStart && idx <= floatBankEnd:
		return e.floatRegisters[idx-floatBankStart]
	default:
		return 0
	}
}

// writeRegister narrows value into the addressed register's native type.
func (e *Engine) writeRegister(idx int, value float64) {
	switch {
	case idx >= 0 && idx < floatBankStart:
		e.registers[idx] = toInt32(value)
	case idx >= floatBankStart && idx <= floatBankEnd:
		e.floatRegisters[idx-floatBankStart] = value
	default:
		e.log.Warningf("register not found (%d), write of %v dropped", idx, value)
	}
}

// toInt32 truncates toward zero, saturating at the int32 bounds. NaN becomes 0.
func toInt32(v float64) int32 {
	switch {
	case math.IsNaN(v):
		return 0
	case v >= math.MaxInt32:
		return math.MaxInt32
	case v <= math.MinInt32:
		return math.MinInt32
	}
	return int32(v)
}

// toOffset converts a register value to a program offset.
func toOffset(v float64) int {
	return int(toInt32(v))
}
