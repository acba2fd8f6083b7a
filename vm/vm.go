package vm

import (
	"time"

	"github.com/google/uuid"
	"github.com/tliron/commonlog"
)

// ---------------------------------------------------------------------------
// Engine: the NSKO register machine
// ---------------------------------------------------------------------------

const (
	// IntRegisterCount is the size of the integer bank (indices 0-31).
	IntRegisterCount = 32

	// FloatRegisterCount is the size of the float bank (indices 32-63).
	FloatRegisterCount = 32

	// DefaultHeapSize is the number of heap bytes reserved per engine.
	DefaultHeapSize = 64

	// DefaultStackSize is the reserved stack capacity, in words.
	DefaultStackSize = 1024 * 1024 * 2
)

// Engine owns all mutable machine state for one program.
// An Engine is not safe for concurrent use; run separate programs on
// separate engines.
type Engine struct {
	registers      [IntRegisterCount]int32
	floatRegisters [FloatRegisterCount]float64
	remainder      int64
	eqFlag         bool

	pc      int
	program []byte

	// Reserved regions. No opcode reads or writes them.
	heap  []byte
	stack []int32

	events  []Event
	profile Profile

	id           uuid.UUID
	logicalCores int

	log   commonlog.Logger
	trace bool
	now   func() time.Time
}

// New creates an engine with zeroed registers, an empty program and a
// fresh identity.
func New(opts ...Option) *Engine {
	settings := defaultSettings()
	for _, opt := range opts {
		opt(&settings)
	}

	e := &Engine{
		id:           uuid.New(),
		logicalCores: settings.cores(),
		heap:         make([]byte, settings.heapSize),
		stack:        make([]int32, 0, settings.stackSize),
		log:          settings.logger,
		trace:        settings.trace,
		now:          settings.clock,
		profile:      newProfile(),
	}
	return e
}

// LoadProgram installs the bytecode to execute, header included.
// The buffer is copied; later changes by the caller do not affect the engine.
func (e *Engine) LoadProgram(program []byte) {
	e.program = append([]byte(nil), program...)
	e.pc = 0
}

// Reset zeroes registers, flag, remainder, program counter and event log.
// The loaded program and the engine identity are kept.
func (e *Engine) Reset() {
	e.registers = [IntRegisterCount]int32{}
	e.floatRegisters = [FloatRegisterCount]float64{}
	e.remainder = 0
	e.eqFlag = false
	e.pc = 0
	e.events = nil
	e.profile = newProfile()
}

// ---------------------------------------------------------------------------
// Read-only state
// ---------------------------------------------------------------------------

// ID returns the engine identity stamped on every event.
func (e *Engine) ID() uuid.UUID {
	return e.id
}

// Registers returns a copy of the integer bank.
func (e *Engine) Registers() [IntRegisterCount]int32 {
	return e.registers
}

// FloatRegisters returns a copy of the float bank.
func (e *Engine) FloatRegisters() [FloatRegisterCount]float64 {
	return e.floatRegisters
}

// Register returns the value at a register index as a float64, using the
// same addressing rules as the interpreter. Invalid indices read as zero.
func (e *Engine) Register(idx int) float64 {
	return e.readRegister(idx)
}

// Remainder returns the remainder left by the last DIV.
func (e *Engine) Remainder() int64 {
	return e.remainder
}

// EqualFlag returns the result of the last comparison.
func (e *Engine) EqualFlag() bool {
	return e.eqFlag
}

// PC returns the current program counter.
func (e *Engine) PC() int {
	return e.pc
}

// Program returns a copy of the loaded program.
func (e *Engine) Program() []byte {
	return append([]byte(nil), e.program...)
}

// Events returns a copy of the events recorded by the last run.
func (e *Engine) Events() []Event {
	return append([]Event(nil), e.events...)
}

// LogicalCores returns the parallelism hint read at construction.
func (e *Engine) LogicalCores() int {
	return e.logicalCores
}

// HeapSize returns the number of reserved heap bytes.
func (e *Engine) HeapSize() int {
	return len(e.heap)
}

// StackCapacity returns the reserved stack capacity in words.
func (e *Engine) StackCapacity() int {
	return cap(e.stack)
}
