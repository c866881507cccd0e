package emu

// LoadStoreUnit implements the RV64 load and store operations, for both the
// integer and floating point register banks. Unlike ALU/BranchUnit, these
// methods take a register index for the transfer register (not a raw value)
// since the direction of travel differs between loads and stores; the
// address itself is always a precomputed value, since rs1+imm is common to
// every load/store encoding.
type LoadStoreUnit struct {
	regFile *RegFile
	mem     *AddressSpace
}

// NewLoadStoreUnit creates a LoadStoreUnit connected to the given register
// file and address space.
func NewLoadStoreUnit(regFile *RegFile, mem *AddressSpace) *LoadStoreUnit {
	return &LoadStoreUnit{regFile: regFile, mem: mem}
}

// Lb loads a sign-extended byte into GP register rd.
func (l *LoadStoreUnit) Lb(rd uint8, addr uint64) {
	v := int64(int8(l.mem.Read8(addr)))
	l.regFile.WriteGP(rd, uint64(v))
}

// Lbu loads a zero-extended byte into GP register rd.
func (l *LoadStoreUnit) Lbu(rd uint8, addr uint64) {
	l.regFile.WriteGP(rd, uint64(l.mem.Read8(addr)))
}

// Lh loads a sign-extended halfword into GP register rd.
func (l *LoadStoreUnit) Lh(rd uint8, addr uint64) {
	v := int64(int16(l.mem.Read16(addr)))
	l.regFile.WriteGP(rd, uint64(v))
}

// Lhu loads a zero-extended halfword into GP register rd.
func (l *LoadStoreUnit) Lhu(rd uint8, addr uint64) {
	l.regFile.WriteGP(rd, uint64(l.mem.Read16(addr)))
}

// Lw loads a sign-extended word into GP register rd.
func (l *LoadStoreUnit) Lw(rd uint8, addr uint64) {
	v := int64(int32(l.mem.Read32(addr)))
	l.regFile.WriteGP(rd, uint64(v))
}

// Lwu loads a zero-extended word into GP register rd.
func (l *LoadStoreUnit) Lwu(rd uint8, addr uint64) {
	l.regFile.WriteGP(rd, uint64(l.mem.Read32(addr)))
}

// Ld loads a doubleword into GP register rd.
func (l *LoadStoreUnit) Ld(rd uint8, addr uint64) {
	l.regFile.WriteGP(rd, l.mem.Read64(addr))
}

// Sb stores the low byte of GP register rs2 to memory.
func (l *LoadStoreUnit) Sb(rs2 uint8, addr uint64) {
	l.mem.Write8(addr, uint8(l.regFile.ReadGP(rs2)))
}

// Sh stores the low halfword of GP register rs2 to memory.
func (l *LoadStoreUnit) Sh(rs2 uint8, addr uint64) {
	l.mem.Write16(addr, uint16(l.regFile.ReadGP(rs2)))
}

// Sw stores the low word of GP register rs2 to memory.
func (l *LoadStoreUnit) Sw(rs2 uint8, addr uint64) {
	l.mem.Write32(addr, uint32(l.regFile.ReadGP(rs2)))
}

// Sd stores GP register rs2 to memory.
func (l *LoadStoreUnit) Sd(rs2 uint8, addr uint64) {
	l.mem.Write64(addr, l.regFile.ReadGP(rs2))
}

// Flw loads a single-precision value into float register rd, NaN-boxing it.
func (l *LoadStoreUnit) Flw(rd uint8, addr uint64) {
	bits := uint64(l.mem.Read32(addr))
	l.regFile.WriteFloatBits(rd, nanBoxTag|bits)
}

// Fld loads a double-precision value into float register rd.
func (l *LoadStoreUnit) Fld(rd uint8, addr uint64) {
	l.regFile.WriteFloatBits(rd, l.mem.Read64(addr))
}

// Fsw stores the low 32 bits of float register rs2 to memory. The decoder
// reads the source register for a floating point store out of the FSTORE
// rs2 field into Instruction.Rs2, not Rs1 as the ARM64 convention this
// package was adapted from would reuse, since FSW/FSD take the
// value-to-store out of the float bank rather than the integer bank.
func (l *LoadStoreUnit) Fsw(rs2 uint8, addr uint64) {
	l.mem.Write32(addr, uint32(l.regFile.ReadFloatBits(rs2)))
}

// Fsd stores float register rs2 to memory.
func (l *LoadStoreUnit) Fsd(rs2 uint8, addr uint64) {
	l.mem.Write64(addr, l.regFile.ReadFloatBits(rs2))
}
