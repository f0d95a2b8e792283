package cpu

import (
	"fmt"
	"iter"

	"github.com/Mirged/meri/internal"
)

// Fixed bounds of the machine. Operand indices are validated against these
// at decode time, never re-checked during execution.
const (
	REGISTER_COUNT = 4   // General-purpose registers R0..R3.
	MEMORY_SIZE    = 256 // Data memory cells M0..M255.
	CODE_STRIDE    = 4   // Address units occupied by one instruction.
)

// Machine is the register file, data memory, flag register, and program
// counter. It is pure data: created all-zero, mutated only by the Cpu while
// a program runs, and handed back as a read-only snapshot after halt.
//
// Registers and memory cells are 8 bits wide; arithmetic on them wraps
// modulo 256.
type Machine struct {
	Register [REGISTER_COUNT]uint8 // Register file.
	Memory   [MEMORY_SIZE]uint8    // Data memory.
	Zero     bool                  // Zero flag, written by Cmp.
	Pc       uint32                // Program counter, a multiple of CODE_STRIDE.
}

// Reset returns the machine to its initial all-zero state.
func (m *Machine) Reset() {
	clear(m.Register[:])
	clear(m.Memory[:])
	m.Zero = false
	m.Pc = 0
}

// Counters yields the program counter.
func (m *Machine) Counters() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		if !yield("pc", fmt.Sprintf("%d", m.Pc)) {
			return
		}
	}
}

// Flags yields the flag register.
func (m *Machine) Flags() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		if !yield("zero", fmt.Sprintf("%v", m.Zero)) {
			return
		}
	}
}

// Registers yields every register in index order.
func (m *Machine) Registers() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for n, val := range m.Register {
			if !yield(fmt.Sprintf("r%d", n), fmt.Sprintf("%d", val)) {
				return
			}
		}
	}
}

// Cells yields the nonzero memory cells in index order.
func (m *Machine) Cells() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for n, val := range m.Memory {
			if val == 0 {
				continue
			}
			if !yield(fmt.Sprintf("m%d", n), fmt.Sprintf("%d", val)) {
				return
			}
		}
	}
}

// Snapshot yields the machine state as ordered name/value pairs: the program
// counter, the flag register, every register, then each nonzero memory cell.
func (m *Machine) Snapshot() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(m.Counters(), m.Flags(), m.Registers(), m.Cells())
}

// String renders the machine state one "name: value" pair per line, in
// Snapshot order. This is the stable textual format the CLI prints for
// --print-state; memory cells holding zero are omitted.
func (m *Machine) String() (text string) {
	for name, val := range m.Snapshot() {
		text += fmt.Sprintf("% 5s: %v\n", name, val)
	}

	return
}
