package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/ncruces/go-strftime"

	"github.com/chazu/nasko/vm"
	"github.com/chazu/nasko/vm/report"
)

// ---------------------------------------------------------------------------
// Run output
// ---------------------------------------------------------------------------

const registersPerLine = 8

// describeEvents prints the event log as one sentence, e.g.
// "The VM started on Sat, 09 Mar 2024 14:30:00.250 then gracefully stopped
// with type: Graceful Halt".
func describeEvents(w io.Writer, events []vm.Event, layout string) {
	describeEventsIn(w, events, layout, time.Local)
}

func describeEventsIn(w io.Writer, events []vm.Event, layout string, loc *time.Location) {
	fmt.Fprint(w, "\n")

	for _, ev := range events {
		switch ev.Type {
		case vm.EventStart:
			fmt.Fprintf(w, "The VM started on %s ", formatTimestamp(ev.At.In(loc), layout))
		case vm.EventGracefulStop:
			fmt.Fprintf(w, "then gracefully stopped with type: %s", ev.Description())
		case vm.EventCrash:
			fmt.Fprintf(w, "then crashed with error: %s", ev.Description())
		}
	}

	fmt.Fprint(w, "\n")
}

// formatTimestamp renders t with a strftime layout followed by milliseconds.
func formatTimestamp(t time.Time, layout string) string {
	return fmt.Sprintf("%s.%03d", strftime.Format(layout, t), t.Nanosecond()/int(time.Millisecond))
}

// printRegisters prints both banks by their operand index: r0-r31 are the
// integer bank, r32-r63 the float bank.
func printRegisters(w io.Writer, r *report.Report) {
	fmt.Fprint(w, "\n")

	idx := 0
	cell := func(value any) {
		fmt.Fprintf(w, "r%d: %v\t", idx, value)
		idx++
		if idx%registersPerLine == 0 {
			fmt.Fprint(w, "\n")
		}
	}
	for _, v := range r.Registers {
		cell(v)
	}
	for _, v := range r.FloatRegisters {
		cell(v)
	}
	if idx%registersPerLine != 0 {
		fmt.Fprint(w, "\n")
	}
}

// printMisc prints the remainder and the equality flag.
func printMisc(w io.Writer, r *report.Report) {
	fmt.Fprint(w, "\n")
	fmt.Fprintf(w, "rem: %d\t", r.Remainder)
	fmt.Fprintf(w, "equ: %v", r.EqualFlag)
	fmt.Fprint(w, "\n")
}

// printProfile prints the instruction count and a per-opcode breakdown,
// e.g. "steps: 6 (DIV 2, LOAD 2, HALT 1, LT 1)".
func printProfile(w io.Writer, r *report.Report) {
	names := make([]string, 0, len(r.Opcodes))
	for name := range r.Opcodes {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if r.Opcodes[names[i]] != r.Opcodes[names[j]] {
			return r.Opcodes[names[i]] > r.Opcodes[names[j]]
		}
		return names[i] < names[j]
	})

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s %d", name, r.Opcodes[name])
	}
	fmt.Fprintf(w, "steps: %d (%s)\n", r.Steps, strings.Join(parts, ", "))
}
