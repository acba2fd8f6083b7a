// Package report captures the outcome of an engine run as a self-contained
// record that can be written to disk and read back with CBOR encoding.
package report

import (
	"crypto/sha256"
	"time"

	"github.com/chazu/nasko/vm"
)

// Event is the serialized form of a vm.Event. The engine identity lives on
// the enclosing Report.
type Event struct {
	Type uint8     `cbor:"1,keyasint"`
	Code uint32    `cbor:"2,keyasint"`
	At   time.Time `cbor:"3,keyasint"`
}

// Report is a snapshot of one program run: the event log plus the engine's
// readable state after the terminal event.
type Report struct {
	Name           string    `cbor:"1,keyasint"`
	EngineID       string    `cbor:"2,keyasint"`
	ProgramHash    [32]byte  `cbor:"3,keyasint"`
	Events         []Event   `cbor:"4,keyasint"`
	Registers      []int32   `cbor:"5,keyasint"`
	FloatRegisters []float64 `cbor:"6,keyasint"`
	Remainder      int64     `cbor:"7,keyasint"`
	EqualFlag      bool      `cbor:"8,keyasint"`
	PC             int       `cbor:"9,keyasint"`
	Error          string    `cbor:"10,keyasint,omitempty"` // set when the program never reached the engine

	Steps   uint64            `cbor:"11,keyasint"`
	Opcodes map[string]uint64 `cbor:"12,keyasint,omitempty"`
}

// FromEngine builds a report from an engine after Run has returned.
func FromEngine(name string, e *vm.Engine) *Report {
	ints := e.Registers()
	floats := e.FloatRegisters()

	r := &Report{
		Name:           name,
		EngineID:       e.ID().String(),
		ProgramHash:    sha256.Sum256(e.Program()),
		Registers:      append([]int32(nil), ints[:]...),
		FloatRegisters: append([]float64(nil), floats[:]...),
		Remainder:      e.Remainder(),
		EqualFlag:      e.EqualFlag(),
		PC:             e.PC(),
	}
	prof := e.Profile()
	r.Steps = prof.Steps
	r.Opcodes = prof.ByMnemonic()

	for _, ev := range e.Events() {
		r.Events = append(r.Events, Event{
			Type: uint8(ev.Type),
			Code: ev.Code,
			At:   ev.At,
		})
	}
	return r
}

// Failed builds a report for a program that could not be run.
func Failed(name string, err error) *Report {
	return &Report{Name: name, Error: err.Error()}
}

// Terminal returns the event that ended the run.
func (r *Report) Terminal() (Event, bool) {
	if len(r.Events) == 0 {
		return Event{}, false
	}
	last := r.Events[len(r.Events)-1]
	t := vm.EventType(last.Type)
	if t != vm.EventGracefulStop && t != vm.EventCrash {
		return Event{}, false
	}
	return last, true
}

// Crashed reports whether the run ended in a crash or never ran.
func (r *Report) Crashed() bool {
	if r.Error != "" {
		return true
	}
	ev, ok := r.Terminal()
	return !ok || vm.EventType(ev.Type) == vm.EventCrash
}

// Matches reports whether program is the buffer this report was produced from.
func (r *Report) Matches(program []byte) bool {
	return sha256.Sum256(program) == r.ProgramHash
}
