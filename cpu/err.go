package cpu

import (
	"errors"

	"github.com/Mirged/meri/translate"
)

var f = translate.From

var (
	// Engine faults
	ErrNotRunning        = errors.New(f("not running"))
	ErrPcInvalid         = errors.New(f("invalid program counter"))
	ErrJumpTargetInvalid = errors.New(f("invalid jump target"))
	ErrStepBudget        = errors.New(f("step budget exceeded"))

	// Decode errors
	ErrInstructionUnknown = errors.New(f("unknown instruction"))
	ErrOperandInvalid     = errors.New(f("invalid operand"))
	ErrOperandOutOfRange  = errors.New(f("operand out of range"))
	ErrStatementMalformed = errors.New(f("statement missing ';' terminator"))
)

// ErrCode reports an instruction word whose opcode field decodes to nothing
// in the opcode table.
type ErrCode Code

func (ec ErrCode) Error() string {
	return f("bad code word %#08x", uint32(ec))
}

func (ec ErrCode) Is(err error) (ok bool) {
	_, ok = err.(ErrCode)
	return
}

// ErrSyntax locates a decode error in the source text.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
