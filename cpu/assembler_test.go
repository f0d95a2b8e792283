package cpu

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog, err := asm.Parse(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(0, len(prog.Statements))

	assert.Equal(uint32(REGISTER_COUNT), asm.Equate["REGISTER_COUNT"])
	assert.Equal(uint32(MEMORY_SIZE), asm.Equate["MEMORY_SIZE"])
	assert.Equal(uint32(CODE_STRIDE), asm.Equate["CODE_STRIDE"])
}

func stmtEqual(t *testing.T, expected, statements []Statement) {
	assert := assert.New(t)

	assert.Equal(len(expected), len(statements))
	if len(expected) == len(statements) {
		for n := range len(expected) {
			assert.Equal(expected[n], statements[n])
		}
	}
}

func TestAssemblerDecode(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	program := []string{
		"// count up to the immediate in R1",
		"MovImm R0 16 ;",
		"MovRegReg R1 R0 ; Inc R1 ;",
		"",
		"Mov M3 R1 ; // store",
		"Mov R2 M3 ;",
		"HLT ;",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	expected := []Statement{
		{2, 0, "MovImm R0 16", MakeCode(OP_MOV_IMM, 0, 16)},
		{3, 4, "MovRegReg R1 R0", MakeCode(OP_MOV_REG_REG, 1, 0)},
		{3, 8, "Inc R1", MakeCode(OP_INC_REG, 1, 0)},
		{5, 12, "Mov M3 R1", MakeCode(OP_MOV_MEM_REG, 3, 1)},
		{6, 16, "Mov R2 M3", MakeCode(OP_MOV_REG_MEM, 2, 3)},
		{7, 20, "HLT", MakeCode(OP_HLT, 0, 0)},
	}

	stmtEqual(t, expected, prog.Statements)
}

func TestAssemblerSupplementalOpcodes(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	program := []string{
		"SubRegReg R0 R1 ;",
		"AddRegMem R0 M1 ;",
		"AddMemReg M1 R0 ;",
		"SubRegMem R0 M1 ;",
		"SubMemReg M1 R0 ;",
		"Dec R2 ;",
		"IncMem M9 ;",
		"DecMem M9 ;",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	expected := []Statement{
		{1, 0, "SubRegReg R0 R1", MakeCode(OP_SUB_REG_REG, 0, 1)},
		{2, 4, "AddRegMem R0 M1", MakeCode(OP_ADD_REG_MEM, 0, 1)},
		{3, 8, "AddMemReg M1 R0", MakeCode(OP_ADD_MEM_REG, 1, 0)},
		{4, 12, "SubRegMem R0 M1", MakeCode(OP_SUB_REG_MEM, 0, 1)},
		{5, 16, "SubMemReg M1 R0", MakeCode(OP_SUB_MEM_REG, 1, 0)},
		{6, 20, "Dec R2", MakeCode(OP_DEC_REG, 2, 0)},
		{7, 24, "IncMem M9", MakeCode(OP_INC_MEM, 9, 0)},
		{8, 28, "DecMem M9", MakeCode(OP_DEC_MEM, 9, 0)},
	}

	stmtEqual(t, expected, prog.Statements)
}

func TestAssemblerExpressions(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("LIMIT", 5)

	program := []string{
		"MovImm R0 $(LIMIT) ;",
		"MovImm R1 $(2 + 3) ;",
		"JmpAddr $(2 * CODE_STRIDE) ;",
		"HLT ;",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(MakeCode(OP_MOV_IMM, 0, 5), prog.Statements[0].Code)
	assert.Equal(MakeCode(OP_MOV_IMM, 1, 5), prog.Statements[1].Code)
	assert.Equal(MakeCode(OP_JMP_ADDR, 8, 0), prog.Statements[2].Code)
}

// Decoding the same text twice yields structurally equal Programs.
func TestAssemblerDeterministic(t *testing.T) {
	assert := assert.New(t)

	program := strings.Join([]string{
		"MovImm R0 0 ;",
		"MovImm R1 5 ;",
		"Cmp R0 R1 ;",
		"JmpEq 28 ;",
		"Inc R0 ;",
		"Mov M0 R0 ;",
		"JmpAddr 8 ;",
		"HLT ;",
	}, "\n")

	asm := &Assembler{}
	first, err := asm.Parse(strings.NewReader(program))
	assert.NoError(err)

	second, err := asm.Parse(strings.NewReader(program))
	assert.NoError(err)

	assert.Equal(first, second)
}

func TestAssemblerErrSyntax(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	table := [](struct {
		prog string
		line int
		kind error
	}){
		{"Foo R0 ;", 1, ErrInstructionUnknown},
		{"MovImm R0 1 ;\nBar ;\nHLT ;", 2, ErrInstructionUnknown},
		{"movimm R0 1 ;", 1, ErrInstructionUnknown},
		{"MovImm R0 ;", 1, ErrOperandInvalid},
		{"MovImm R0 1 2 ;", 1, ErrOperandInvalid},
		{"MovImm M0 1 ;", 1, ErrOperandInvalid},
		{"MovImm R0 abc ;", 1, ErrOperandInvalid},
		{"Cmp R0 5 ;", 1, ErrOperandInvalid},
		{"Mov R0 R1 ;", 1, ErrOperandInvalid},
		{"HLT extra ;", 1, ErrOperandInvalid},
		{"MovImm R9 1 ;", 1, ErrOperandOutOfRange},
		{"MovImm R0 256 ;", 1, ErrOperandOutOfRange},
		{"Mov M256 R0 ;", 1, ErrOperandOutOfRange},
		{"JmpAddr 4096 ;", 1, ErrOperandOutOfRange},
		{"Inc R0", 1, ErrStatementMalformed},
		{"HLT ;\nInc R0", 2, ErrStatementMalformed},
		{"MovImm R0 $(nope) ;", 1, nil},
		{"MovImm R0 $(\"text\") ;", 1, nil},
	}

	for _, entry := range table {
		prog, err := asm.Parse(strings.NewReader(entry.prog))
		assert.Nil(prog, entry.prog)
		assert.NotNil(err, entry.prog)
		if err == nil {
			continue
		}

		var se *ErrSyntax
		assert.True(errors.As(err, &se), entry.prog)
		if se != nil {
			assert.Equal(entry.line, se.LineNo, entry.prog)
		}
		if entry.kind != nil {
			assert.True(errors.Is(err, entry.kind), entry.prog)
		}
	}
}
