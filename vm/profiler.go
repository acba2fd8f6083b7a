package vm

import (
	"sort"

	"github.com/chazu/nasko/pkg/bytecode"
)

// Profile counts the instructions fetched during one run, both per opcode
// and per program offset. Loops show up as offsets with counts above one.
type Profile struct {
	Steps uint64

	opcodes map[bytecode.Opcode]uint64
	offsets map[int]uint64
}

// HotSpot is one instruction offset and how often it was fetched.
type HotSpot struct {
	Offset int
	Count  uint64
}

func newProfile() Profile {
	return Profile{
		opcodes: make(map[bytecode.Opcode]uint64),
		offsets: make(map[int]uint64),
	}
}

// record notes one fetch of op at offset.
func (p *Profile) record(offset int, op bytecode.Opcode) {
	p.Steps++
	p.opcodes[op]++
	p.offsets[offset]++
}

// Count returns how many times op was fetched.
func (p Profile) Count(op bytecode.Opcode) uint64 {
	return p.opcodes[op]
}

// OffsetCount returns how many times the instruction at offset was fetched.
func (p Profile) OffsetCount(offset int) uint64 {
	return p.offsets[offset]
}

// ByMnemonic returns the per-opcode counts keyed by mnemonic.
func (p Profile) ByMnemonic() map[string]uint64 {
	out := make(map[string]uint64, len(p.opcodes))
	for op, n := range p.opcodes {
		out[op.String()] = n
	}
	return out
}

// HotSpots returns the offsets fetched at least threshold times, most
// frequent first. Ties are ordered by offset.
func (p Profile) HotSpots(threshold uint64) []HotSpot {
	var spots []HotSpot
	for off, n := range p.offsets {
		if n >= threshold {
			spots = append(spots, HotSpot{Offset: off, Count: n})
		}
	}
	sort.Slice(spots, func(i, j int) bool {
		if spots[i].Count != spots[j].Count {
			return spots[i].Count > spots[j].Count
		}
		return spots[i].Offset < spots[j].Offset
	})
	return spots
}

func (p Profile) clone() Profile {
	c := newProfile()
	c.Steps = p.Steps
	for k, v := range p.opcodes {
		c.opcodes[k] = v
	}
	for k, v := range p.offsets {
		c.offsets[k] = v
	}
	return c
}

// Profile returns a copy of the instruction counts from the last run.
func (e *Engine) Profile() Profile {
	return e.profile.clone()
}
