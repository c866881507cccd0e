// Package emu implements the RV64IMAFDC operation table, register file,
// address space, and interpreter dispatch loop.
package emu

import (
	"fmt"
	"io"
	"os"

	"github.com/sarchlab/rv64emu/insts"
)

// StepResult reports what happened after executing a single instruction.
type StepResult struct {
	// Exited is true if the program terminated (via exit/exit_group or
	// C.EBREAK).
	Exited bool

	// ExitCode is the exit status if Exited is true.
	ExitCode int64

	// Err is set if fetch, decode, or dispatch failed.
	Err error
}

// Emulator executes RV64IMAFDC instructions functionally: fetch, decode,
// dispatch, advance pc, repeat.
type Emulator struct {
	regFile        *RegFile
	mem            *AddressSpace
	fds            *FDTable
	syscallHandler SyscallHandler

	alu        *ALU
	lsu        *LoadStoreUnit
	branchUnit *BranchUnit
	fpu        *FPUnit
	csr        *CSRUnit

	stdout io.Writer
	stderr io.Writer

	instructionCount uint64
	maxInstructions  uint64 // 0 means no limit
}

// EmulatorOption is a functional option for configuring the Emulator.
type EmulatorOption func(*Emulator)

// WithStdout sets a custom stdout writer.
func WithStdout(w io.Writer) EmulatorOption {
	return func(e *Emulator) { e.stdout = w }
}

// WithStderr sets a custom stderr writer.
func WithStderr(w io.Writer) EmulatorOption {
	return func(e *Emulator) { e.stderr = w }
}

// WithSyscallHandler sets a custom syscall handler.
func WithSyscallHandler(h SyscallHandler) EmulatorOption {
	return func(e *Emulator) { e.syscallHandler = h }
}

// WithStackPointer sets the initial stack pointer (x2/sp).
func WithStackPointer(sp uint64) EmulatorOption {
	return func(e *Emulator) { e.regFile.WriteGP(insts.RegSP, sp) }
}

// WithMaxInstructions sets the maximum number of instructions to execute.
// A value of 0 means no limit.
func WithMaxInstructions(max uint64) EmulatorOption {
	return func(e *Emulator) { e.maxInstructions = max }
}

// NewEmulator creates a new RV64 emulator.
func NewEmulator(opts ...EmulatorOption) *Emulator {
	regFile := &RegFile{}
	mem := NewAddressSpace()
	fds := NewFDTable()

	e := &Emulator{
		regFile: regFile,
		mem:     mem,
		fds:     fds,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}

	for _, opt := range opts {
		opt(e)
	}

	e.alu = NewALU(regFile)
	e.lsu = NewLoadStoreUnit(regFile, mem)
	e.branchUnit = NewBranchUnit(regFile)
	e.fpu = NewFPUnit(regFile)
	e.csr = NewCSRUnit(regFile)

	if e.syscallHandler == nil {
		e.syscallHandler = NewDefaultSyscallHandler(regFile, mem, fds, e.stdout, e.stderr)
	}

	return e
}

// RegFile returns the emulator's register file.
func (e *Emulator) RegFile() *RegFile { return e.regFile }

// AddressSpace returns the emulator's address space.
func (e *Emulator) AddressSpace() *AddressSpace { return e.mem }

// InstructionCount returns the number of instructions executed so far.
func (e *Emulator) InstructionCount() uint64 { return e.instructionCount }

// MapSegment writes data into the address space starting at vaddr and
// zero-fills the remainder up to memSize, the BSS convention for a PT_LOAD
// segment whose p_memsz exceeds its p_filesz.
func (e *Emulator) MapSegment(vaddr uint64, data []byte, memSize uint64) {
	e.mem.WriteBytes(vaddr, data)
	if memSize > uint64(len(data)) {
		e.mem.ZeroFill(vaddr+uint64(len(data)), memSize-uint64(len(data)))
	}
}

// SetEntry sets the program counter to the guest's entry point.
func (e *Emulator) SetEntry(pc uint64) { e.regFile.PC = pc }

// SetArenaBase records where brk(2) should start growing the heap from.
func (e *Emulator) SetArenaBase(addr uint64) { e.mem.SetArenaBase(addr) }

// Step executes a single instruction and returns whether execution should
// continue.
func (e *Emulator) Step() StepResult {
	if e.maxInstructions > 0 && e.instructionCount >= e.maxInstructions {
		return StepResult{Err: fmt.Errorf("max instructions reached")}
	}

	pc := e.regFile.PC
	word := e.mem.Read32(pc)

	inst, err := insts.Decode(word, pc)
	if err != nil {
		return StepResult{Err: err}
	}

	result := e.execute(&inst, pc)
	e.instructionCount++

	return result
}

// Run executes instructions until the program exits or an error occurs.
// Returns the exit code (-1 on error).
func (e *Emulator) Run() int64 {
	for {
		result := e.Step()
		if result.Exited {
			return result.ExitCode
		}
		if result.Err != nil {
			_, _ = fmt.Fprintf(e.stderr, "emulation error: %v\n", result.Err)
			return -1
		}
	}
}

func instLen(inst *insts.Instruction) uint64 {
	if inst.RVC {
		return 2
	}
	return 4
}

// execute dispatches a decoded instruction and updates machine state.
// Instructions that do not alter control flow fall through to the common
// pc-advance at the bottom; branches, jumps, and system instructions return
// early having set pc themselves.
func (e *Emulator) execute(inst *insts.Instruction, pc uint64) StepResult {
	r := e.regFile
	next := pc + instLen(inst)

	switch inst.Kind {

	// --- integer register-immediate ---
	case insts.KindAddi:
		r.WriteGP(inst.Rd, e.alu.Add(r.ReadGP(inst.Rs1), uint64(int64(inst.Imm))))
	case insts.KindAddiw:
		r.WriteGP(inst.Rd, e.alu.Addw(r.ReadGP(inst.Rs1), uint64(int64(inst.Imm))))
	case insts.KindSlti:
		r.WriteGP(inst.Rd, e.alu.Slt(r.ReadGP(inst.Rs1), uint64(int64(inst.Imm))))
	case insts.KindSltiu:
		r.WriteGP(inst.Rd, e.alu.Sltu(r.ReadGP(inst.Rs1), uint64(int64(inst.Imm))))
	case insts.KindXori:
		r.WriteGP(inst.Rd, e.alu.Xor(r.ReadGP(inst.Rs1), uint64(int64(inst.Imm))))
	case insts.KindOri:
		r.WriteGP(inst.Rd, e.alu.Or(r.ReadGP(inst.Rs1), uint64(int64(inst.Imm))))
	case insts.KindAndi:
		r.WriteGP(inst.Rd, e.alu.And(r.ReadGP(inst.Rs1), uint64(int64(inst.Imm))))
	case insts.KindSlli:
		r.WriteGP(inst.Rd, e.alu.Sll(r.ReadGP(inst.Rs1), uint64(inst.Imm)))
	case insts.KindSrli:
		r.WriteGP(inst.Rd, e.alu.Srl(r.ReadGP(inst.Rs1), uint64(inst.Imm)))
	case insts.KindSrai:
		r.WriteGP(inst.Rd, e.alu.Sra(r.ReadGP(inst.Rs1), uint64(inst.Imm)))
	case insts.KindSlliw:
		r.WriteGP(inst.Rd, e.alu.Sllw(r.ReadGP(inst.Rs1), uint64(inst.Imm)))
	case insts.KindSrliw:
		r.WriteGP(inst.Rd, e.alu.Srlw(r.ReadGP(inst.Rs1), uint64(inst.Imm)))
	case insts.KindSraiw:
		r.WriteGP(inst.Rd, e.alu.Sraw(r.ReadGP(inst.Rs1), uint64(inst.Imm)))
	case insts.KindLui:
		r.WriteGP(inst.Rd, uint64(int64(inst.Imm)))
	case insts.KindAuipc:
		r.WriteGP(inst.Rd, pc+uint64(int64(inst.Imm)))

	// --- integer register-register ---
	case insts.KindAdd:
		r.WriteGP(inst.Rd, e.alu.Add(r.ReadGP(inst.Rs1), r.ReadGP(inst.Rs2)))
	case insts.KindSub:
		r.WriteGP(inst.Rd, e.alu.Sub(r.ReadGP(inst.Rs1), r.ReadGP(inst.Rs2)))
	case insts.KindSll:
		r.WriteGP(inst.Rd, e.alu.Sll(r.ReadGP(inst.Rs1), r.ReadGP(inst.Rs2)))
	case insts.KindSlt:
		r.WriteGP(inst.Rd, e.alu.Slt(r.ReadGP(inst.Rs1), r.ReadGP(inst.Rs2)))
	case insts.KindSltu:
		r.WriteGP(inst.Rd, e.alu.Sltu(r.ReadGP(inst.Rs1), r.ReadGP(inst.Rs2)))
	case insts.KindXor:
		r.WriteGP(inst.Rd, e.alu.Xor(r.ReadGP(inst.Rs1), r.ReadGP(inst.Rs2)))
	case insts.KindSrl:
		r.WriteGP(inst.Rd, e.alu.Srl(r.ReadGP(inst.Rs1), r.ReadGP(inst.Rs2)))
	case insts.KindSra:
		r.WriteGP(inst.Rd, e.alu.Sra(r.ReadGP(inst.Rs1), r.ReadGP(inst.Rs2)))
	case insts.KindOr:
		r.WriteGP(inst.Rd, e.alu.Or(r.ReadGP(inst.Rs1), r.ReadGP(inst.Rs2)))
	case insts.KindAnd:
		r.WriteGP(inst.Rd, e.alu.And(r.ReadGP(inst.Rs1), r.ReadGP(inst.Rs2)))
	case insts.KindAddw:
		r.WriteGP(inst.Rd, e.alu.Addw(r.ReadGP(inst.Rs1), r.ReadGP(inst.Rs2)))
	case insts.KindSubw:
		r.WriteGP(inst.Rd, e.alu.Subw(r.ReadGP(inst.Rs1), r.ReadGP(inst.Rs2)))
	case insts.KindSllw:
		r.WriteGP(inst.Rd, e.alu.Sllw(r.ReadGP(inst.Rs1), r.ReadGP(inst.Rs2)))
	case insts.KindSrlw:
		r.WriteGP(inst.Rd, e.alu.Srlw(r.ReadGP(inst.Rs1), r.ReadGP(inst.Rs2)))
	case insts.KindSraw:
		r.WriteGP(inst.Rd, e.alu.Sraw(r.ReadGP(inst.Rs1), r.ReadGP(inst.Rs2)))

	// --- M extension ---
	case insts.KindMul:
		r.WriteGP(inst.Rd, e.alu.Mul(r.ReadGP(inst.Rs1), r.ReadGP(inst.Rs2)))
	case insts.KindMulh:
		r.WriteGP(inst.Rd, e.alu.Mulh(r.ReadGP(inst.Rs1), r.ReadGP(inst.Rs2)))
	case insts.KindMulhsu:
		r.WriteGP(inst.Rd, e.alu.Mulhsu(r.ReadGP(inst.Rs1), r.ReadGP(inst.Rs2)))
	case insts.KindMulhu:
		r.WriteGP(inst.Rd, e.alu.Mulhu(r.ReadGP(inst.Rs1), r.ReadGP(inst.Rs2)))
	case insts.KindDiv:
		r.WriteGP(inst.Rd, e.alu.Div(r.ReadGP(inst.Rs1), r.ReadGP(inst.Rs2)))
	case insts.KindDivu:
		r.WriteGP(inst.Rd, e.alu.Divu(r.ReadGP(inst.Rs1), r.ReadGP(inst.Rs2)))
	case insts.KindRem:
		r.WriteGP(inst.Rd, e.alu.Rem(r.ReadGP(inst.Rs1), r.ReadGP(inst.Rs2)))
	case insts.KindRemu:
		r.WriteGP(inst.Rd, e.alu.Remu(r.ReadGP(inst.Rs1), r.ReadGP(inst.Rs2)))
	case insts.KindMulw:
		r.WriteGP(inst.Rd, e.alu.Mulw(r.ReadGP(inst.Rs1), r.ReadGP(inst.Rs2)))
	case insts.KindDivw:
		r.WriteGP(inst.Rd, e.alu.Divw(r.ReadGP(inst.Rs1), r.ReadGP(inst.Rs2)))
	case insts.KindDivuw:
		r.WriteGP(inst.Rd, e.alu.Divuw(r.ReadGP(inst.Rs1), r.ReadGP(inst.Rs2)))
	case insts.KindRemw:
		r.WriteGP(inst.Rd, e.alu.Remw(r.ReadGP(inst.Rs1), r.ReadGP(inst.Rs2)))
	case insts.KindRemuw:
		r.WriteGP(inst.Rd, e.alu.Remuw(r.ReadGP(inst.Rs1), r.ReadGP(inst.Rs2)))

	// --- loads / stores ---
	case insts.KindLb:
		e.lsu.Lb(inst.Rd, e.addr(inst))
	case insts.KindLh:
		e.lsu.Lh(inst.Rd, e.addr(inst))
	case insts.KindLw:
		e.lsu.Lw(inst.Rd, e.addr(inst))
	case insts.KindLd:
		e.lsu.Ld(inst.Rd, e.addr(inst))
	case insts.KindLbu:
		e.lsu.Lbu(inst.Rd, e.addr(inst))
	case insts.KindLhu:
		e.lsu.Lhu(inst.Rd, e.addr(inst))
	case insts.KindLwu:
		e.lsu.Lwu(inst.Rd, e.addr(inst))
	case insts.KindSb:
		e.lsu.Sb(inst.Rs2, e.addr(inst))
	case insts.KindSh:
		e.lsu.Sh(inst.Rs2, e.addr(inst))
	case insts.KindSw:
		e.lsu.Sw(inst.Rs2, e.addr(inst))
	case insts.KindSd:
		e.lsu.Sd(inst.Rs2, e.addr(inst))
	case insts.KindFlw:
		e.lsu.Flw(inst.Rd, e.addr(inst))
	case insts.KindFld:
		e.lsu.Fld(inst.Rd, e.addr(inst))
	case insts.KindFsw:
		e.lsu.Fsw(inst.Rs2, e.addr(inst))
	case insts.KindFsd:
		e.lsu.Fsd(inst.Rs2, e.addr(inst))

	// --- control flow ---
	case insts.KindBeq:
		return e.branch(inst, pc, next, e.branchUnit.Beq(r.ReadGP(inst.Rs1), r.ReadGP(inst.Rs2)))
	case insts.KindBne:
		return e.branch(inst, pc, next, e.branchUnit.Bne(r.ReadGP(inst.Rs1), r.ReadGP(inst.Rs2)))
	case insts.KindBlt:
		return e.branch(inst, pc, next, e.branchUnit.Blt(r.ReadGP(inst.Rs1), r.ReadGP(inst.Rs2)))
	case insts.KindBge:
		return e.branch(inst, pc, next, e.branchUnit.Bge(r.ReadGP(inst.Rs1), r.ReadGP(inst.Rs2)))
	case insts.KindBltu:
		return e.branch(inst, pc, next, e.branchUnit.Bltu(r.ReadGP(inst.Rs1), r.ReadGP(inst.Rs2)))
	case insts.KindBgeu:
		return e.branch(inst, pc, next, e.branchUnit.Bgeu(r.ReadGP(inst.Rs1), r.ReadGP(inst.Rs2)))
	case insts.KindJal:
		r.WriteGP(inst.Rd, next)
		r.PC = uint64(int64(pc) + int64(inst.Imm))
		return StepResult{}
	case insts.KindJalr:
		target := e.branchUnit.JalrTarget(r.ReadGP(inst.Rs1), inst.Imm)
		r.WriteGP(inst.Rd, next)
		r.PC = target
		return StepResult{}

	// --- system ---
	case insts.KindEcall:
		r.ReenterPC = next
		r.ExitReason = ExitEcall
		result := e.syscallHandler.Handle()
		r.PC = next
		return StepResult{Exited: result.Exited, ExitCode: result.ExitCode}
	case insts.KindEbreak:
		r.ReenterPC = next
		r.ExitReason = ExitEbreak
		r.PC = next
		return StepResult{Exited: true, ExitCode: 0}
	case insts.KindFence, insts.KindFenceI:
		// Single-threaded, in-order execution: both are no-ops.
	case insts.KindCsrrw:
		r.WriteGP(inst.Rd, e.csr.Csrrw(inst.CSR, r.ReadGP(inst.Rs1)))
	case insts.KindCsrrs:
		r.WriteGP(inst.Rd, e.csr.Csrrs(inst.CSR, r.ReadGP(inst.Rs1)))
	case insts.KindCsrrc:
		r.WriteGP(inst.Rd, e.csr.Csrrc(inst.CSR, r.ReadGP(inst.Rs1)))
	case insts.KindCsrrwi:
		r.WriteGP(inst.Rd, e.csr.Csrrwi(inst.CSR, uint64(inst.Rs1)))
	case insts.KindCsrrsi:
		r.WriteGP(inst.Rd, e.csr.Csrrsi(inst.CSR, uint64(inst.Rs1)))
	case insts.KindCsrrci:
		r.WriteGP(inst.Rd, e.csr.Csrrci(inst.CSR, uint64(inst.Rs1)))

	default:
		if ok := e.executeFloat(inst); !ok {
			return StepResult{Err: fmt.Errorf("unimplemented instruction %s at pc=0x%x", inst.Kind, pc)}
		}
	}

	r.PC = next
	return StepResult{}
}

// addr computes the rs1+imm effective address shared by every load/store
// encoding.
func (e *Emulator) addr(inst *insts.Instruction) uint64 {
	return e.regFile.ReadGP(inst.Rs1) + uint64(int64(inst.Imm))
}

// branch resolves a conditional branch: taken sets pc to the branch target,
// not-taken falls through to next.
func (e *Emulator) branch(inst *insts.Instruction, pc, next uint64, taken bool) StepResult {
	if taken {
		e.regFile.PC = uint64(int64(pc) + int64(inst.Imm))
	} else {
		e.regFile.PC = next
	}
	return StepResult{}
}

// executeFloat dispatches the FD-extension instruction kinds the main
// switch in execute defers here to keep that switch's integer-pipeline
// cases readable. Returns false if inst.Kind is not a floating point kind,
// signaling execute to report an unimplemented instruction.
func (e *Emulator) executeFloat(inst *insts.Instruction) bool {
	r := e.regFile
	f32 := func(reg uint8) float32 { return r.ReadFloat32(reg) }
	f64 := func(reg uint8) float64 { return r.ReadFloat64(reg) }

	switch inst.Kind {
	case insts.KindFaddS:
		r.WriteFloat32(inst.Rd, e.fpu.FaddS(f32(inst.Rs1), f32(inst.Rs2)))
	case insts.KindFsubS:
		r.WriteFloat32(inst.Rd, e.fpu.FsubS(f32(inst.Rs1), f32(inst.Rs2)))
	case insts.KindFmulS:
		r.WriteFloat32(inst.Rd, e.fpu.FmulS(f32(inst.Rs1), f32(inst.Rs2)))
	case insts.KindFdivS:
		r.WriteFloat32(inst.Rd, e.fpu.FdivS(f32(inst.Rs1), f32(inst.Rs2)))
	case insts.KindFsqrtS:
		r.WriteFloat32(inst.Rd, e.fpu.FsqrtS(f32(inst.Rs1)))
	case insts.KindFaddD:
		r.WriteFloat64(inst.Rd, e.fpu.FaddD(f64(inst.Rs1), f64(inst.Rs2)))
	case insts.KindFsubD:
		r.WriteFloat64(inst.Rd, e.fpu.FsubD(f64(inst.Rs1), f64(inst.Rs2)))
	case insts.KindFmulD:
		r.WriteFloat64(inst.Rd, e.fpu.FmulD(f64(inst.Rs1), f64(inst.Rs2)))
	case insts.KindFdivD:
		r.WriteFloat64(inst.Rd, e.fpu.FdivD(f64(inst.Rs1), f64(inst.Rs2)))
	case insts.KindFsqrtD:
		r.WriteFloat64(inst.Rd, e.fpu.FsqrtD(f64(inst.Rs1)))

	case insts.KindFmaddS:
		r.WriteFloat32(inst.Rd, e.fpu.FmaddS(f32(inst.Rs1), f32(inst.Rs2), f32(inst.Rs3)))
	case insts.KindFmsubS:
		r.WriteFloat32(inst.Rd, e.fpu.FmsubS(f32(inst.Rs1), f32(inst.Rs2), f32(inst.Rs3)))
	case insts.KindFnmsubS:
		r.WriteFloat32(inst.Rd, e.fpu.FnmsubS(f32(inst.Rs1), f32(inst.Rs2), f32(inst.Rs3)))
	case insts.KindFnmaddS:
		r.WriteFloat32(inst.Rd, e.fpu.FnmaddS(f32(inst.Rs1), f32(inst.Rs2), f32(inst.Rs3)))
	case insts.KindFmaddD:
		r.WriteFloat64(inst.Rd, e.fpu.FmaddD(f64(inst.Rs1), f64(inst.Rs2), f64(inst.Rs3)))
	case insts.KindFmsubD:
		r.WriteFloat64(inst.Rd, e.fpu.FmsubD(f64(inst.Rs1), f64(inst.Rs2), f64(inst.Rs3)))
	case insts.KindFnmsubD:
		r.WriteFloat64(inst.Rd, e.fpu.FnmsubD(f64(inst.Rs1), f64(inst.Rs2), f64(inst.Rs3)))
	case insts.KindFnmaddD:
		r.WriteFloat64(inst.Rd, e.fpu.FnmaddD(f64(inst.Rs1), f64(inst.Rs2), f64(inst.Rs3)))

	case insts.KindFsgnjS:
		r.WriteFloat32(inst.Rd, e.fpu.FsgnjS(f32(inst.Rs1), f32(inst.Rs2)))
	case insts.KindFsgnjnS:
		r.WriteFloat32(inst.Rd, e.fpu.FsgnjnS(f32(inst.Rs1), f32(inst.Rs2)))
	case insts.KindFsgnjxS:
		r.WriteFloat32(inst.Rd, e.fpu.FsgnjxS(f32(inst.Rs1), f32(inst.Rs2)))
	case insts.KindFsgnjD:
		r.WriteFloat64(inst.Rd, e.fpu.FsgnjD(f64(inst.Rs1), f64(inst.Rs2)))
	case insts.KindFsgnjnD:
		r.WriteFloat64(inst.Rd, e.fpu.FsgnjnD(f64(inst.Rs1), f64(inst.Rs2)))
	case insts.KindFsgnjxD:
		r.WriteFloat64(inst.Rd, e.fpu.FsgnjxD(f64(inst.Rs1), f64(inst.Rs2)))

	case insts.KindFminS:
		r.WriteFloat32(inst.Rd, e.fpu.FminS(f32(inst.Rs1), f32(inst.Rs2)))
	case insts.KindFmaxS:
		r.WriteFloat32(inst.Rd, e.fpu.FmaxS(f32(inst.Rs1), f32(inst.Rs2)))
	case insts.KindFminD:
		r.WriteFloat64(inst.Rd, e.fpu.FminD(f64(inst.Rs1), f64(inst.Rs2)))
	case insts.KindFmaxD:
		r.WriteFloat64(inst.Rd, e.fpu.FmaxD(f64(inst.Rs1), f64(inst.Rs2)))

	case insts.KindFleS:
		r.WriteGP(inst.Rd, e.fpu.FleS(f32(inst.Rs1), f32(inst.Rs2)))
	case insts.KindFltS:
		r.WriteGP(inst.Rd, e.fpu.FltS(f32(inst.Rs1), f32(inst.Rs2)))
	case insts.KindFeqS:
		r.WriteGP(inst.Rd, e.fpu.FeqS(f32(inst.Rs1), f32(inst.Rs2)))
	case insts.KindFleD:
		r.WriteGP(inst.Rd, e.fpu.FleD(f64(inst.Rs1), f64(inst.Rs2)))
	case insts.KindFltD:
		r.WriteGP(inst.Rd, e.fpu.FltD(f64(inst.Rs1), f64(inst.Rs2)))
	case insts.KindFeqD:
		r.WriteGP(inst.Rd, e.fpu.FeqD(f64(inst.Rs1), f64(inst.Rs2)))

	case insts.KindFcvtWS:
		r.WriteGP(inst.Rd, e.fpu.FcvtWS(f32(inst.Rs1)))
	case insts.KindFcvtWuS:
		r.WriteGP(inst.Rd, e.fpu.FcvtWuS(f32(inst.Rs1)))
	case insts.KindFcvtLS:
		r.WriteGP(inst.Rd, e.fpu.FcvtLS(f32(inst.Rs1)))
	case insts.KindFcvtLuS:
		r.WriteGP(inst.Rd, e.fpu.FcvtLuS(f32(inst.Rs1)))
	case insts.KindFcvtWD:
		r.WriteGP(inst.Rd, e.fpu.FcvtWD(f64(inst.Rs1)))
	case insts.KindFcvtWuD:
		r.WriteGP(inst.Rd, e.fpu.FcvtWuD(f64(inst.Rs1)))
	case insts.KindFcvtLD:
		r.WriteGP(inst.Rd, e.fpu.FcvtLD(f64(inst.Rs1)))
	case insts.KindFcvtLuD:
		r.WriteGP(inst.Rd, e.fpu.FcvtLuD(f64(inst.Rs1)))

	case insts.KindFcvtSW:
		r.WriteFloat32(inst.Rd, e.fpu.FcvtSW(r.ReadGP(inst.Rs1)))
	case insts.KindFcvtSWu:
		r.WriteFloat32(inst.Rd, e.fpu.FcvtSWu(r.ReadGP(inst.Rs1)))
	case insts.KindFcvtSL:
		r.WriteFloat32(inst.Rd, e.fpu.FcvtSL(r.ReadGP(inst.Rs1)))
	case insts.KindFcvtSLu:
		r.WriteFloat32(inst.Rd, e.fpu.FcvtSLu(r.ReadGP(inst.Rs1)))
	case insts.KindFcvtDW:
		r.WriteFloat64(inst.Rd, e.fpu.FcvtDW(r.ReadGP(inst.Rs1)))
	case insts.KindFcvtDWu:
		r.WriteFloat64(inst.Rd, e.fpu.FcvtDWu(r.ReadGP(inst.Rs1)))
	case insts.KindFcvtDL:
		r.WriteFloat64(inst.Rd, e.fpu.FcvtDL(r.ReadGP(inst.Rs1)))
	case insts.KindFcvtDLu:
		r.WriteFloat64(inst.Rd, e.fpu.FcvtDLu(r.ReadGP(inst.Rs1)))

	case insts.KindFcvtSD:
		r.WriteFloat32(inst.Rd, e.fpu.FcvtSD(f64(inst.Rs1)))
	case insts.KindFcvtDS:
		r.WriteFloat64(inst.Rd, e.fpu.FcvtDS(f32(inst.Rs1)))

	case insts.KindFmvXW:
		r.WriteGP(inst.Rd, e.fpu.FmvXW(uint32(r.ReadFloatBits(inst.Rs1))))
	case insts.KindFmvXD:
		r.WriteGP(inst.Rd, e.fpu.FmvXD(r.ReadFloatBits(inst.Rs1)))
	case insts.KindFmvWX:
		r.WriteFloatBits(inst.Rd, e.fpu.FmvWX(r.ReadGP(inst.Rs1)))
	case insts.KindFmvDX:
		r.WriteFloatBits(inst.Rd, e.fpu.FmvDX(r.ReadGP(inst.Rs1)))
	case insts.KindFclassS:
		r.WriteGP(inst.Rd, e.fpu.FclassS(f32(inst.Rs1)))
	case insts.KindFclassD:
		r.WriteGP(inst.Rd, e.fpu.FclassD(f64(inst.Rs1)))

	default:
		return false
	}
	return true
}
