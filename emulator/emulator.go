// Package emulator binds an assembled program to an execution engine and
// runs it to completion, mapping runtime faults back to source lines and
// enforcing the caller-supplied step budget.
package emulator

import (
	"github.com/Mirged/meri/cpu"
)

// Emulator state: one engine, one program, one run.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the execution engine.
	Program  *cpu.Program // Reference to the currently loaded program.

	// StepLimit bounds the number of instructions one run may execute;
	// zero disables the budget. It is the only guard against programs
	// that never reach HLT.
	StepLimit int
}

// NewEmulator creates a new emulator with an empty program.
func NewEmulator() (emu *Emulator) {
	prog := &cpu.Program{}
	emu = &Emulator{
		Cpu:     cpu.NewCpu(prog),
		Program: prog,
	}

	return
}

// Reset points the engine at the current program and zeroes the machine.
func (emu *Emulator) Reset() {
	emu.Cpu.Program = emu.Program
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()
}

// LineNo returns the source line of the instruction at the current program
// counter, or 0 when the counter is outside the program.
func (emu *Emulator) LineNo() int {
	stmt := emu.Program.Debug(emu.Cpu.Machine.Pc)
	if stmt == nil {
		return 0
	}

	return stmt.LineNo
}

// Tick performs a single engine step. Errors are located with the source
// line and address of the faulting instruction. done reports that the
// engine left the running state.
func (emu *Emulator) Tick() (done bool, err error) {
	lineno := emu.LineNo()
	pc := emu.Cpu.Machine.Pc
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Pc: pc, Err: err}
		}
	}()

	err = emu.Cpu.Tick()
	if err != nil {
		return
	}

	done = emu.Cpu.State != cpu.STATE_RUNNING

	return
}

// Run steps the engine until the program halts, faults, or exceeds the
// step budget.
func (emu *Emulator) Run() (err error) {
	for {
		if emu.StepLimit > 0 && emu.Cpu.Ticks >= emu.StepLimit {
			err = emu.Cpu.Fault(cpu.ErrStepBudget)
			err = &ErrRuntime{LineNo: emu.LineNo(), Pc: emu.Cpu.Machine.Pc, Err: err}
			return
		}

		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			return
		}
	}
}
