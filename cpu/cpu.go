package cpu

import (
	"log"
)

// RunState is the engine state.
type RunState int

const (
	STATE_RUNNING = RunState(0) // running
	STATE_HALTED  = RunState(1) // halted
	STATE_FAULTED = RunState(2) // faulted
)

// String returns the lowercase state name.
func (state RunState) String() string {
	switch state {
	case STATE_RUNNING:
		return "running"
	case STATE_HALTED:
		return "halted"
	case STATE_FAULTED:
		return "faulted"
	}

	return "unknown"
}

// Cpu is the execution engine: it drives a decoded Program against a
// Machine, one fetch-decode-execute cycle per Tick, until the program halts
// or faults. The Machine is owned exclusively by the Cpu while running.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Machine *Machine // Machine state under execution.
	Program *Program // Program being executed.

	State RunState // Current engine state.
	Ticks int      // Executed instruction count.
}

// NewCpu creates an engine for a program, with a fresh all-zero machine.
func NewCpu(prog *Program) (cpu *Cpu) {
	cpu = &Cpu{
		Machine: &Machine{},
		Program: prog,
	}

	return
}

// Reset zeroes the machine and returns the engine to the running state with
// the program counter at the first instruction.
func (cpu *Cpu) Reset() {
	cpu.Machine.Reset()
	cpu.State = STATE_RUNNING
	cpu.Ticks = 0
}

// Fault moves the engine to the faulted state and returns the fault. The
// machine keeps its last consistent values for inspection.
func (cpu *Cpu) Fault(err error) error {
	cpu.State = STATE_FAULTED
	return err
}

// FetchCode fetches the instruction at the current program counter.
func (cpu *Cpu) FetchCode() (code Code, err error) {
	code, ok := cpu.Program.Lookup(cpu.Machine.Pc)
	if !ok {
		err = ErrPcInvalid
	}

	return
}

// Tick executes a single fetch-decode-execute cycle. A fetch or execute
// error faults the engine.
func (cpu *Cpu) Tick() (err error) {
	if cpu.State != STATE_RUNNING {
		return ErrNotRunning
	}

	code, err := cpu.FetchCode()
	if err != nil {
		return cpu.Fault(err)
	}

	err = cpu.Execute(code)
	if err != nil {
		return cpu.Fault(err)
	}

	cpu.Ticks += 1

	return
}

// jumpTarget validates an absolute jump target: it must land on an
// instruction boundary. Whether an instruction exists there is checked by
// the next fetch.
func (cpu *Cpu) jumpTarget(arg uint16) (pc uint32, err error) {
	pc = uint32(arg)
	if pc%CODE_STRIDE != 0 {
		err = ErrJumpTargetInvalid
	}

	return
}

// Execute executes a single decoded instruction. Register and memory
// indices were bounds-checked at decode time and are trusted here; all
// arithmetic wraps modulo 256.
func (cpu *Cpu) Execute(code Code) (err error) {
	if cpu.Verbose {
		log.Printf("%03x: %v", cpu.Machine.Pc, code)
	}

	m := cpu.Machine
	next_pc := m.Pc + CODE_STRIDE
	a := code.A()
	b := code.B()

	switch code.Op() {
	case OP_MOV_IMM:
		m.Register[a] = uint8(b)
	case OP_MOV_REG_REG:
		m.Register[a] = m.Register[b]
	case OP_MOV_MEM_REG:
		m.Memory[a] = m.Register[b]
	case OP_MOV_REG_MEM:
		m.Register[a] = m.Memory[b]
	case OP_ADD_REG_REG:
		m.Register[a] += m.Register[b]
	case OP_SUB_REG_REG:
		m.Register[a] -= m.Register[b]
	case OP_ADD_REG_MEM:
		m.Register[a] += m.Memory[b]
	case OP_ADD_MEM_REG:
		m.Memory[a] += m.Register[b]
	case OP_SUB_REG_MEM:
		m.Register[a] -= m.Memory[b]
	case OP_SUB_MEM_REG:
		m.Memory[a] -= m.Register[b]
	case OP_INC_REG:
		m.Register[a] += 1
	case OP_DEC_REG:
		m.Register[a] -= 1
	case OP_INC_MEM:
		m.Memory[a] += 1
	case OP_DEC_MEM:
		m.Memory[a] -= 1
	case OP_CMP_REG_REG:
		m.Zero = m.Register[a] == m.Register[b]
	case OP_JMP_ADDR:
		next_pc, err = cpu.jumpTarget(a)
	case OP_JMP_EQ:
		if m.Zero {
			next_pc, err = cpu.jumpTarget(a)
		}
	case OP_HLT:
		// The program counter stays at the halt instruction.
		cpu.State = STATE_HALTED
		return
	default:
		err = ErrCode(code)
	}
	if err != nil {
		return
	}

	m.Pc = next_pc

	return
}
