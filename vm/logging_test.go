package vm

import (
	"fmt"
	"strings"
	"testing"

	"github.com/tliron/commonlog"

	"github.com/chazu/nasko/pkg/bytecode"
)

// captureLogger records formatted messages per level; everything else is
// inherited from the mock logger.
type captureLogger struct {
	commonlog.MockLogger
	debug   []string
	info    []string
	warning []string
	errors  []string
}

func (l *captureLogger) Debugf(format string, args ...any) {
	l.debug = append(l.debug, fmt.Sprintf(format, args...))
}

func (l *captureLogger) Infof(format string, args ...any) {
	l.info = append(l.info, fmt.Sprintf(format, args...))
}

func (l *captureLogger) Warningf(format string, args ...any) {
	l.warning = append(l.warning, fmt.Sprintf(format, args...))
}

func (l *captureLogger) Errorf(format string, args ...any) {
	l.errors = append(l.errors, fmt.Sprintf(format, args...))
}

func runLogged(t *testing.T, trace bool, code ...byte) (*captureLogger, []Event) {
	t.Helper()
	log := &captureLogger{}
	e := New(WithStackSize(0), WithLogger(log), WithTrace(trace))
	e.LoadProgram(bytecode.PrependHeader(code))
	return log, e.Run()
}

func TestTraceLogsEachInstruction(t *testing.T) {
	log, events := runLogged(t, true,
		1, 0, 0, 30, // LOAD r0, 30
		1, 64, 0, 7, // LOAD r64, 7
		0, 0, 0, 0, // HALT
	)
	expectTerminal(t, events, EventGracefulStop, StopHalt)

	want := []string{
		"[0004] LOAD r0, 30",
		"[0008] LOAD r64?, 7",
		"[000c] HALT",
	}
	if len(log.debug) != len(want) {
		t.Fatalf("trace lines = %q, want %q", log.debug, want)
	}
	for i := range want {
		if log.debug[i] != want[i] {
			t.Errorf("trace line %d = %q, want %q", i, log.debug[i], want[i])
		}
	}
}

func TestTraceDisabledLogsNoInstructions(t *testing.T) {
	log, _ := runLogged(t, false, 1, 0, 0, 30, 0, 0, 0, 0)
	if len(log.debug) != 0 {
		t.Errorf("trace lines without WithTrace: %q", log.debug)
	}
}

func TestWriteOutsideBanksLogsWarning(t *testing.T) {
	log, events := runLogged(t, false, 1, 64, 0, 7, 0, 0, 0, 0)
	expectTerminal(t, events, EventGracefulStop, StopHalt)

	if len(log.warning) != 1 {
		t.Fatalf("warnings = %q, want one", log.warning)
	}
	if w := log.warning[0]; !strings.Contains(w, "register not found (64)") {
		t.Errorf("warning = %q", w)
	}
}

func TestRunLogsStartAndStop(t *testing.T) {
	log, _ := runLogged(t, false, 0, 0, 0, 0)
	if len(log.info) != 2 {
		t.Fatalf("info lines = %q, want start and stop", log.info)
	}
	if !strings.Contains(log.info[0], "started") || !strings.Contains(log.info[1], "stopped") {
		t.Errorf("info lines = %q", log.info)
	}
}

func TestCrashIsLoggedAsError(t *testing.T) {
	log, events := runLogged(t, false, 5, 0, 1, 2) // DIV r0, r1 with r1 = 0
	expectTerminal(t, events, EventCrash, CrashDivisionByZero)

	if len(log.errors) == 0 {
		t.Fatal("no error logged for a crash")
	}
	last := log.errors[len(log.errors)-1]
	if !strings.Contains(last, "crashed") {
		t.Errorf("last error = %q", last)
	}
}
