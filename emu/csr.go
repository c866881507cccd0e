package emu

// CSR addresses this emulator recognizes. Zicsr is otherwise out of scope:
// no privilege levels, no trap vectors, no counters.
const (
	CSRFflags uint16 = 0x001
	CSRFrm    uint16 = 0x002
	CSRFcsr   uint16 = 0x003
)

// CSRUnit implements the Zicsr read-modify-write operations, scoped to the
// floating point control and status register.
type CSRUnit struct {
	regFile *RegFile
}

// NewCSRUnit creates a CSRUnit connected to the given register file.
func NewCSRUnit(regFile *RegFile) *CSRUnit {
	return &CSRUnit{regFile: regFile}
}

// read and write only ever see a legal csr: the decoder rejects any CSR
// address other than fflags/frm/fcsr with a fatal decode error before an
// Instruction referencing it can exist (insts.legalCSR), so there is no
// silent no-op path for an unimplemented CSR to fall through to here.
func (c *CSRUnit) read(csr uint16) uint64 {
	switch csr {
	case CSRFflags:
		return uint64(c.regFile.FCSR.Flags)
	case CSRFrm:
		return uint64(c.regFile.FCSR.RM)
	default: // CSRFcsr
		return uint64(c.regFile.FCSR.Bits())
	}
}

func (c *CSRUnit) write(csr uint16, v uint64) {
	switch csr {
	case CSRFflags:
		c.regFile.FCSR.Flags = uint8(v) & 0x1f
	case CSRFrm:
		c.regFile.FCSR.RM = uint8(v) & 0x7
	default: // CSRFcsr
		c.regFile.FCSR.SetBits(uint32(v))
	}
}

// Csrrw atomically swaps csr for rs1Val, returning the prior value.
func (c *CSRUnit) Csrrw(csr uint16, rs1Val uint64) uint64 {
	old := c.read(csr)
	c.write(csr, rs1Val)
	return old
}

// Csrrs atomically sets the bits of rs1Val in csr, returning the prior value.
func (c *CSRUnit) Csrrs(csr uint16, rs1Val uint64) uint64 {
	old := c.read(csr)
	if rs1Val != 0 {
		c.write(csr, old|rs1Val)
	}
	return old
}

// Csrrc atomically clears the bits of rs1Val in csr, returning the prior value.
func (c *CSRUnit) Csrrc(csr uint16, rs1Val uint64) uint64 {
	old := c.read(csr)
	if rs1Val != 0 {
		c.write(csr, old&^rs1Val)
	}
	return old
}

// Csrrwi/Csrrsi/Csrrci are the immediate-operand forms: the caller passes
// the already-zero-extended 5-bit immediate in place of rs1Val.
func (c *CSRUnit) Csrrwi(csr uint16, imm uint64) uint64 { return c.Csrrw(csr, imm) }
func (c *CSRUnit) Csrrsi(csr uint16, imm uint64) uint64 { return c.Csrrs(csr, imm) }
func (c *CSRUnit) Csrrci(csr uint16, imm uint64) uint64 { return c.Csrrc(csr, imm) }
