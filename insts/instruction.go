package insts

import "fmt"

// Instruction is the decoder's output record: everything the operation
// table needs to execute one instruction, independent of machine state.
type Instruction struct {
	Kind Kind

	Rd, Rs1, Rs2, Rs3 uint8
	Imm               int32
	CSR               uint16

	// RVC reports whether this instruction was a 16-bit compressed
	// encoding (advance pc by 2) rather than a 32-bit one (advance by 4).
	RVC bool

	// Cont reports that this instruction always ends its basic block:
	// control never falls through to pc+2/pc+4 (jumps, ecall, ebreak).
	// Conditional branches are decoded with Cont false, and
	// Emulator.execute does not consult the flag.
	Cont bool
}

// DecodeError reports a 32-bit word (or the low 16 bits of a compressed one)
// that does not correspond to any instruction this decoder recognizes, or
// that violates one of the RVC/RV64 encoding's mandated well-formedness
// assertions (e.g. C.ADDI4SPN with a zero immediate).
type DecodeError struct {
	PC   uint64
	Word uint32
	Msg  string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode error at pc=0x%x: word=0x%x: %s", e.PC, e.Word, e.Msg)
}
