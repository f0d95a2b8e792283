package cpu

import (
	"fmt"
)

// Opcode identifies one instruction variant. The set is closed: the decode
// table and the execute switch both cover every value.
type Opcode int

const (
	OP_MOV_IMM     = Opcode(0)  // MovImm Rd imm
	OP_MOV_REG_REG = Opcode(1)  // MovRegReg Rd Rs
	OP_MOV_MEM_REG = Opcode(2)  // Mov Md Rs (store)
	OP_MOV_REG_MEM = Opcode(3)  // Mov Rd Ms (load)
	OP_ADD_REG_REG = Opcode(4)  // AddRegReg Rd Rs
	OP_SUB_REG_REG = Opcode(5)  // SubRegReg Rd Rs
	OP_ADD_REG_MEM = Opcode(6)  // AddRegMem Rd Ms
	OP_ADD_MEM_REG = Opcode(7)  // AddMemReg Md Rs
	OP_SUB_REG_MEM = Opcode(8)  // SubRegMem Rd Ms
	OP_SUB_MEM_REG = Opcode(9)  // SubMemReg Md Rs
	OP_INC_REG     = Opcode(10) // Inc Rd
	OP_DEC_REG     = Opcode(11) // Dec Rd
	OP_INC_MEM     = Opcode(12) // IncMem Md
	OP_DEC_MEM     = Opcode(13) // DecMem Md
	OP_CMP_REG_REG = Opcode(14) // Cmp Ra Rb
	OP_JMP_ADDR    = Opcode(15) // JmpAddr addr
	OP_JMP_EQ      = Opcode(16) // JmpEq addr
	OP_HLT         = Opcode(17) // HLT
)

// ArgKind is the operand kind expected at an operand position.
type ArgKind int

const (
	ARG_NONE = ArgKind(0) // no operand
	ARG_REG  = ArgKind(1) // register token R<digits>
	ARG_MEM  = ArgKind(2) // memory token M<digits>
	ARG_IMM  = ArgKind(3) // decimal immediate, 0..255
	ARG_ADDR = ArgKind(4) // decimal instruction address
)

// opSpec describes the mnemonic and operand signature of an opcode.
type opSpec struct {
	Mnemonic string
	Args     [2]ArgKind
}

// Arity returns the number of operands the opcode takes.
func (spec opSpec) Arity() (n int) {
	for _, kind := range spec.Args {
		if kind != ARG_NONE {
			n++
		}
	}
	return
}

// opTable is the fixed opcode table. The `Mov` mnemonic appears twice; the
// operand kinds select between the store and load variants.
var opTable = map[Opcode]opSpec{
	OP_MOV_IMM:     {"MovImm", [2]ArgKind{ARG_REG, ARG_IMM}},
	OP_MOV_REG_REG: {"MovRegReg", [2]ArgKind{ARG_REG, ARG_REG}},
	OP_MOV_MEM_REG: {"Mov", [2]ArgKind{ARG_MEM, ARG_REG}},
	OP_MOV_REG_MEM: {"Mov", [2]ArgKind{ARG_REG, ARG_MEM}},
	OP_ADD_REG_REG: {"AddRegReg", [2]ArgKind{ARG_REG, ARG_REG}},
	OP_SUB_REG_REG: {"SubRegReg", [2]ArgKind{ARG_REG, ARG_REG}},
	OP_ADD_REG_MEM: {"AddRegMem", [2]ArgKind{ARG_REG, ARG_MEM}},
	OP_ADD_MEM_REG: {"AddMemReg", [2]ArgKind{ARG_MEM, ARG_REG}},
	OP_SUB_REG_MEM: {"SubRegMem", [2]ArgKind{ARG_REG, ARG_MEM}},
	OP_SUB_MEM_REG: {"SubMemReg", [2]ArgKind{ARG_MEM, ARG_REG}},
	OP_INC_REG:     {"Inc", [2]ArgKind{ARG_REG, ARG_NONE}},
	OP_DEC_REG:     {"Dec", [2]ArgKind{ARG_REG, ARG_NONE}},
	OP_INC_MEM:     {"IncMem", [2]ArgKind{ARG_MEM, ARG_NONE}},
	OP_DEC_MEM:     {"DecMem", [2]ArgKind{ARG_MEM, ARG_NONE}},
	OP_CMP_REG_REG: {"Cmp", [2]ArgKind{ARG_REG, ARG_REG}},
	OP_JMP_ADDR:    {"JmpAddr", [2]ArgKind{ARG_ADDR, ARG_NONE}},
	OP_JMP_EQ:      {"JmpEq", [2]ArgKind{ARG_ADDR, ARG_NONE}},
	OP_HLT:         {"HLT", [2]ArgKind{ARG_NONE, ARG_NONE}},
}

// mnemonicTable maps each mnemonic to its candidate opcodes, built as the
// inverse of opTable. Only `Mov` has more than one candidate, and its forms
// are distinguished by operand kind, so candidate order does not matter.
var mnemonicTable = map[string][]Opcode{}

func init() {
	for op, spec := range opTable {
		mnemonicTable[spec.Mnemonic] = append(mnemonicTable[spec.Mnemonic], op)
	}
}

// Operand field geometry of the instruction word.
const (
	ARG_BITS = 12
	ARG_MASK = (1 << ARG_BITS) - 1
)

// Code is a single instruction packed into one 32-bit word:
// bits [31:24] hold the opcode, [23:12] operand A, [11:0] operand B.
type Code uint32

// MakeCode packs an opcode and its two operand fields into a Code word.
func MakeCode(op Opcode, a, b uint16) Code {
	return Code((uint32(op) << (2 * ARG_BITS)) |
		(uint32(a&ARG_MASK) << ARG_BITS) |
		uint32(b&ARG_MASK))
}

// Op returns the opcode field of the instruction word.
func (code Code) Op() Opcode {
	return Opcode(uint32(code) >> (2 * ARG_BITS))
}

// A returns the first operand field.
func (code Code) A() uint16 {
	return uint16((uint32(code) >> ARG_BITS) & ARG_MASK)
}

// B returns the second operand field.
func (code Code) B() uint16 {
	return uint16(uint32(code) & ARG_MASK)
}

// String renders the instruction in its canonical statement form, which the
// assembler decodes back to an equal Code.
func (code Code) String() (out string) {
	spec, ok := opTable[code.Op()]
	if !ok {
		return fmt.Sprintf("??? %#08x ;", uint32(code))
	}

	out = spec.Mnemonic
	args := [2]uint16{code.A(), code.B()}
	for n, kind := range spec.Args {
		switch kind {
		case ARG_NONE:
			// no operand
		case ARG_REG:
			out += fmt.Sprintf(" R%d", args[n])
		case ARG_MEM:
			out += fmt.Sprintf(" M%d", args[n])
		case ARG_IMM, ARG_ADDR:
			out += fmt.Sprintf(" %d", args[n])
		}
	}
	out += " ;"

	return
}
