// Package vm implements the NSKO register machine.
//
// This package contains:
//   - Engine: registers, program counter, flags and the event log
//   - The fetch/decode/execute loop
//   - Lifecycle events with stop and crash codes
//
// An Engine holds 32 int32 registers (indices 0-31) and 32 float64
// registers (indices 32-63). Arithmetic widens both operands to float64 and
// narrows the result into the destination register's type. Comparisons set
// the equality flag, which no instruction reads.
//
// Failures never escape as panics or errors. Run always returns the event
// list, ending in exactly one GracefulStop or Crash event.
package vm
