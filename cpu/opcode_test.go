package cpu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeFields(t *testing.T) {
	assert := assert.New(t)

	code := MakeCode(OP_MOV_IMM, 3, 255)
	assert.Equal(OP_MOV_IMM, code.Op())
	assert.Equal(uint16(3), code.A())
	assert.Equal(uint16(255), code.B())

	code = MakeCode(OP_JMP_ADDR, ARG_MASK, 0)
	assert.Equal(OP_JMP_ADDR, code.Op())
	assert.Equal(uint16(ARG_MASK), code.A())
	assert.Equal(uint16(0), code.B())
}

func TestCodeString(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		code Code
		text string
	}){
		{MakeCode(OP_MOV_IMM, 0, 5), "MovImm R0 5 ;"},
		{MakeCode(OP_MOV_REG_REG, 1, 2), "MovRegReg R1 R2 ;"},
		{MakeCode(OP_MOV_MEM_REG, 0, 3), "Mov M0 R3 ;"},
		{MakeCode(OP_MOV_REG_MEM, 3, 0), "Mov R3 M0 ;"},
		{MakeCode(OP_CMP_REG_REG, 0, 1), "Cmp R0 R1 ;"},
		{MakeCode(OP_JMP_ADDR, 8, 0), "JmpAddr 8 ;"},
		{MakeCode(OP_JMP_EQ, 28, 0), "JmpEq 28 ;"},
		{MakeCode(OP_INC_REG, 2, 0), "Inc R2 ;"},
		{MakeCode(OP_HLT, 0, 0), "HLT ;"},
	}

	for _, entry := range table {
		assert.Equal(entry.text, entry.code.String())
	}
}

// Rendering an instruction and re-decoding it yields an equal instruction,
// for every opcode variant.
func TestCodeRoundTrip(t *testing.T) {
	assert := assert.New(t)

	for op, spec := range opTable {
		var args [2]uint16
		for n, kind := range spec.Args {
			switch kind {
			case ARG_REG:
				args[n] = 1
			case ARG_MEM:
				args[n] = 2
			case ARG_IMM:
				args[n] = 5
			case ARG_ADDR:
				args[n] = 2 * CODE_STRIDE
			}
		}
		code := MakeCode(op, args[0], args[1])

		asm := &Assembler{}
		prog, err := asm.Parse(strings.NewReader(code.String()))
		assert.NoError(err, code.String())
		if err != nil {
			continue
		}
		assert.Equal(1, len(prog.Statements), code.String())
		assert.Equal(code, prog.Statements[0].Code, code.String())
	}
}
