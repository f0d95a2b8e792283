// Package cpu implements the instruction set, assembler, and execution
// engine for the meri virtual machine.
//
// The machine is byte-wide: four general-purpose registers (R0-R3) and 256
// memory cells (M0-M255) hold 8-bit values, and all arithmetic wraps modulo
// 256. Each instruction occupies a fixed 4-unit address stride, so the
// program counter and every jump target are multiples of CODE_STRIDE.
//
// The assembler decodes the textual statement format (`MNEMONIC operand... ;`
// with `//` line comments) into a Program, assigning each statement its
// address. Decode is atomic: the first error aborts with its source line,
// and no partially valid Program is produced.
package cpu
