package emulator

import (
	"github.com/Mirged/meri/translate"
)

var f = translate.From

// ErrRuntime locates a runtime fault at a source line and address.
type ErrRuntime struct {
	LineNo int
	Pc     uint32
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("line %d pc %#x %v", err.LineNo, err.Pc, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
