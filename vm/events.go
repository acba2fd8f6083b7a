package vm

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EventType classifies a lifecycle event.
type EventType uint8

const (
	// EventStart is recorded once at the beginning of every run.
	EventStart EventType = iota

	// EventGracefulStop ends a run normally.
	EventGracefulStop

	// EventCrash ends a run because of a fatal condition.
	EventCrash
)

// String returns a human-readable name for EventType.
func (t EventType) String() string {
	switch t {
	case EventStart:
		return "Start"
	case EventGracefulStop:
		return "GracefulStop"
	case EventCrash:
		return "Crash"
	default:
		return fmt.Sprintf("EventType(%d)", t)
	}
}

// Stop codes carried by EventGracefulStop.
const (
	StopHalt         uint32 = 0
	StopEndOfProgram uint32 = 1
)

// Crash codes carried by EventCrash.
const (
	CrashInvalidHeader      uint32 = 1
	CrashIncompleteBytecode uint32 = 2
	CrashUnknownOpcode      uint32 = 3
	CrashDivisionByZero     uint32 = 4
	CrashInvalidJumpTarget  uint32 = 5
)

// Event records one engine state transition.
type Event struct {
	Type     EventType
	Code     uint32
	At       time.Time
	EngineID uuid.UUID
}

// StopCode returns the reason code; Start events report 0.
func (ev Event) StopCode() uint32 {
	if ev.Type == EventStart {
		return 0
	}
	return ev.Code
}

// IsTerminal reports whether the event ends a run.
func (ev Event) IsTerminal() bool {
	return ev.Type == EventGracefulStop || ev.Type == EventCrash
}

// Description returns the human-readable reason for a terminal event.
func (ev Event) Description() string {
	switch ev.Type {
	case EventGracefulStop:
		return StopDescription(ev.Code)
	case EventCrash:
		return CrashDescription(ev.Code)
	default:
		return ""
	}
}

// String implements fmt.Stringer.
func (ev Event) String() string {
	if ev.Type == EventStart {
		return "Start"
	}
	return fmt.Sprintf("%s{code=%d, %s}", ev.Type, ev.Code, ev.Description())
}

// StopDescription describes a graceful stop code.
func StopDescription(code uint32) string {
	switch code {
	case StopHalt:
		return "Graceful Halt"
	case StopEndOfProgram:
		return "End of Program"
	default:
		return "Unknown Stop Code"
	}
}

// CrashDescription describes a crash code.
func CrashDescription(code uint32) string {
	switch code {
	case CrashInvalidHeader:
		return "Invalid Header"
	case CrashIncompleteBytecode:
		return "Incomplete Bytecode"
	case CrashUnknownOpcode:
		return "Unknown Opcode"
	case CrashDivisionByZero:
		return "Division By Zero"
	case CrashInvalidJumpTarget:
		return "Invalid Jump Target"
	default:
		return "Unknown Error"
	}
}

// record appends an event stamped with the engine clock and identity.
func (e *Engine) record(t EventType, code uint32) {
	e.events = append(e.events, Event{
		Type:     t,
		Code:     code,
		At:       e.now().UTC(),
		EngineID: e.id,
	})
}
