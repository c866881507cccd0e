package emu

// BranchUnit implements the RV64 conditional-branch predicates and the
// indirect-jump target computation. Unlike ARM64 there is no condition-code
// register: every compare reads its two register operands directly.
type BranchUnit struct {
	regFile *RegFile
}

// NewBranchUnit creates a BranchUnit connected to the given register file.
func NewBranchUnit(regFile *RegFile) *BranchUnit {
	return &BranchUnit{regFile: regFile}
}

func (b *BranchUnit) Beq(x, y uint64) bool  { return x == y }
func (b *BranchUnit) Bne(x, y uint64) bool  { return x != y }
func (b *BranchUnit) Blt(x, y uint64) bool  { return int64(x) < int64(y) }
func (b *BranchUnit) Bge(x, y uint64) bool  { return int64(x) >= int64(y) }
func (b *BranchUnit) Bltu(x, y uint64) bool { return x < y }
func (b *BranchUnit) Bgeu(x, y uint64) bool { return x >= y }

// JalrTarget computes the JALR target address: (rs1 + imm) with bit 0
// cleared, per the RISC-V jump-and-link-register encoding.
func (b *BranchUnit) JalrTarget(rs1Val uint64, imm int32) uint64 {
	return (rs1Val + uint64(int64(imm))) &^ 1
}
