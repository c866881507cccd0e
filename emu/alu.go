package emu

import "math/bits"

// ALU implements the RV64IMAFDC integer arithmetic and logic operations.
// Every method takes raw operand values rather than register indices: the
// caller (Emulator.execute) resolves whether the second operand is a
// register or a sign-extended immediate before calling in, since RISC-V's
// register-immediate and register-register forms of a given op share
// identical arithmetic.
type ALU struct {
	regFile *RegFile
}

// NewALU creates an ALU connected to the given register file.
func NewALU(regFile *RegFile) *ALU {
	return &ALU{regFile: regFile}
}

func (a *ALU) Add(x, y uint64) uint64 { return x + y }
func (a *ALU) Sub(x, y uint64) uint64 { return x - y }
func (a *ALU) And(x, y uint64) uint64 { return x & y }
func (a *ALU) Or(x, y uint64) uint64  { return x | y }
func (a *ALU) Xor(x, y uint64) uint64 { return x ^ y }

func (a *ALU) Sll(x, shamt uint64) uint64 { return x << (shamt & 0x3f) }
func (a *ALU) Srl(x, shamt uint64) uint64 { return x >> (shamt & 0x3f) }
func (a *ALU) Sra(x, shamt uint64) uint64 { return uint64(int64(x) >> (shamt & 0x3f)) }

func (a *ALU) Slt(x, y uint64) uint64 {
	if int64(x) < int64(y) {
		return 1
	}
	return 0
}

func (a *ALU) Sltu(x, y uint64) uint64 {
	if x < y {
		return 1
	}
	return 0
}

// sext32 sign-extends a 32-bit result to 64 bits, the convention every
// "*W" instruction's destination register follows regardless of whether
// the 32-bit operation itself was signed or unsigned.
func sext32(v uint32) uint64 { return uint64(int64(int32(v))) }

func (a *ALU) Addw(x, y uint64) uint64 { return sext32(uint32(x) + uint32(y)) }
func (a *ALU) Subw(x, y uint64) uint64 { return sext32(uint32(x) - uint32(y)) }
func (a *ALU) Sllw(x, shamt uint64) uint64 {
	return sext32(uint32(x) << (shamt & 0x1f))
}
func (a *ALU) Srlw(x, shamt uint64) uint64 {
	return sext32(uint32(x) >> (shamt & 0x1f))
}
func (a *ALU) Sraw(x, shamt uint64) uint64 {
	return sext32(uint32(int32(uint32(x)) >> (shamt & 0x1f)))
}

// --- M extension ---

func (a *ALU) Mul(x, y uint64) uint64 { return x * y }

// Mulh returns the high 64 bits of the signed 128-bit product x*y.
func (a *ALU) Mulh(x, y uint64) uint64 {
	hi, _ := bits.Mul64(x, y)
	if int64(x) < 0 {
		hi -= y
	}
	if int64(y) < 0 {
		hi -= x
	}
	return hi
}

// Mulhsu returns the high 64 bits of the product of signed x and unsigned y.
func (a *ALU) Mulhsu(x, y uint64) uint64 {
	hi, _ := bits.Mul64(x, y)
	if int64(x) < 0 {
		hi -= y
	}
	return hi
}

// Mulhu returns the high 64 bits of the unsigned 128-bit product x*y.
func (a *ALU) Mulhu(x, y uint64) uint64 {
	hi, _ := bits.Mul64(x, y)
	return hi
}

func (a *ALU) Mulw(x, y uint64) uint64 { return sext32(uint32(x) * uint32(y)) }

// Div implements signed 64-bit division. Division by zero yields all ones
// (-1) and the MinInt64/-1 overflow case yields the dividend, both per the
// RISC-V integer division semantics (no trap).
func (a *ALU) Div(x, y uint64) uint64 {
	xs, ys := int64(x), int64(y)
	if ys == 0 {
		return ^uint64(0)
	}
	if xs == minInt64 && ys == -1 {
		return uint64(xs)
	}
	return uint64(xs / ys)
}

func (a *ALU) Divu(x, y uint64) uint64 {
	if y == 0 {
		return ^uint64(0)
	}
	return x / y
}

// Rem implements signed 64-bit remainder. Division by zero yields the
// dividend; the MinInt64/-1 overflow case yields zero.
func (a *ALU) Rem(x, y uint64) uint64 {
	xs, ys := int64(x), int64(y)
	if ys == 0 {
		return x
	}
	if xs == minInt64 && ys == -1 {
		return 0
	}
	return uint64(xs % ys)
}

func (a *ALU) Remu(x, y uint64) uint64 {
	if y == 0 {
		return x
	}
	return x % y
}

func (a *ALU) Divw(x, y uint64) uint64 {
	xs, ys := int32(x), int32(y)
	if ys == 0 {
		return ^uint64(0)
	}
	if xs == minInt32 && ys == -1 {
		return sext32(uint32(xs))
	}
	return sext32(uint32(xs / ys))
}

func (a *ALU) Divuw(x, y uint64) uint64 {
	xs, ys := uint32(x), uint32(y)
	if ys == 0 {
		return ^uint64(0)
	}
	return sext32(xs / ys)
}

func (a *ALU) Remw(x, y uint64) uint64 {
	xs, ys := int32(x), int32(y)
	if ys == 0 {
		return sext32(uint32(xs))
	}
	if xs == minInt32 && ys == -1 {
		return 0
	}
	return sext32(uint32(xs % ys))
}

func (a *ALU) Remuw(x, y uint64) uint64 {
	xs, ys := uint32(x), uint32(y)
	if ys == 0 {
		return sext32(xs)
	}
	return sext32(xs % ys)
}

const (
	minInt64 = -1 << 63
	minInt32 = -1 << 31
)
