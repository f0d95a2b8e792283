package cpu

import (
	"iter"
)

// Statement is one decoded instruction with its source location and its
// assigned program-counter address.
type Statement struct {
	LineNo int    // Source line the statement came from.
	Addr   uint32 // Address, index * CODE_STRIDE.
	Text   string // Statement text, for diagnostics.
	Code   Code   // Decoded instruction word.
}

// Program is the ordered instruction sequence produced by the Assembler.
// Addresses are strictly increasing and contiguous at CODE_STRIDE. A Program
// is immutable once decoded.
type Program struct {
	Statements []Statement
}

// Lookup returns the instruction at a program-counter address. It reports
// false when the address is misaligned or past the end of the program.
func (prog *Program) Lookup(pc uint32) (code Code, ok bool) {
	if pc%CODE_STRIDE != 0 {
		return
	}

	index := int(pc / CODE_STRIDE)
	if index >= len(prog.Statements) {
		return
	}

	return prog.Statements[index].Code, true
}

// Debug returns the statement at an address, or nil when no statement
// covers it.
func (prog *Program) Debug(pc uint32) (stmt *Statement) {
	if pc%CODE_STRIDE != 0 {
		return
	}

	index := int(pc / CODE_STRIDE)
	if index >= len(prog.Statements) {
		return
	}

	return &prog.Statements[index]
}

// End returns the first address past the last instruction.
func (prog *Program) End() uint32 {
	return uint32(len(prog.Statements)) * CODE_STRIDE
}

// Codes iterates the program as (address, instruction) pairs.
func (prog *Program) Codes() iter.Seq2[uint32, Code] {
	return func(yield func(addr uint32, code Code) bool) {
		for _, stmt := range prog.Statements {
			if !yield(stmt.Addr, stmt.Code) {
				return
			}
		}
	}
}
