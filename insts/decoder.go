package insts

import "fmt"

// Decode reads one instruction out of data, a 32-bit word fetched from the
// guest's text segment at pc. If the low two bits of data select a
// compressed quadrant (0-2), only the low 16 bits are consumed and the
// result carries RVC=true; quadrant 3 consumes the full 32 bits. This
// mirrors the reference interpreter's habit of always fetching a full word
// and letting the quadrant decide how much of it is the instruction.
func Decode(data uint32, pc uint64) (Instruction, error) {
	switch quadrant(data) {
	case 0:
		return decodeQuadrant0(uint16(data), pc)
	case 1:
		return decodeQuadrant1(uint16(data), pc)
	case 2:
		return decodeQuadrant2(uint16(data), pc)
	default:
		return decodeQuadrant3(data, pc)
	}
}

func quadrant(data uint32) uint32 { return data & 0x3 }

// --- full-width (32-bit) field extraction ---

func opcode(data uint32) uint32  { return (data >> 2) & 0x1f }
func rd(data uint32) uint8       { return uint8((data >> 7) & 0x1f) }
func rs1(data uint32) uint8      { return uint8((data >> 15) & 0x1f) }
func rs2(data uint32) uint8      { return uint8((data >> 20) & 0x1f) }
func rs3(data uint32) uint8      { return uint8((data >> 27) & 0x1f) }
func funct2(data uint32) uint32  { return (data >> 25) & 0x3 }
func funct3(data uint32) uint32  { return (data >> 12) & 0x7 }
func funct7(data uint32) uint32  { return (data >> 25) & 0x7f }
func imm116(data uint32) uint32  { return (data >> 26) & 0x3f }

func uType(data uint32) Instruction {
	return Instruction{Imm: int32(data & 0xfffff000), Rd: rd(data)}
}

func iType(data uint32) Instruction {
	return Instruction{Imm: int32(data) >> 20, Rs1: rs1(data), Rd: rd(data)}
}

func jType(data uint32) Instruction {
	imm20 := (data >> 31) & 0x1
	imm101 := (data >> 21) & 0x3ff
	imm11 := (data >> 20) & 0x1
	imm1912 := (data >> 12) & 0xff

	imm := int32((imm20 << 20) | (imm1912 << 12) | (imm11 << 11) | (imm101 << 1))
	imm = (imm << 11) >> 11

	return Instruction{Imm: imm, Rd: rd(data)}
}

func bType(data uint32) Instruction {
	imm12 := (data >> 31) & 0x1
	imm105 := (data >> 25) & 0x3f
	imm41 := (data >> 8) & 0xf
	imm11 := (data >> 7) & 0x1

	imm := int32((imm12 << 12) | (imm11 << 11) | (imm105 << 5) | (imm41 << 1))
	imm = (imm << 19) >> 19

	return Instruction{Imm: imm, Rs1: rs1(data), Rs2: rs2(data)}
}

func rType(data uint32) Instruction {
	return Instruction{Rs1: rs1(data), Rs2: rs2(data), Rd: rd(data)}
}

func sType(data uint32) Instruction {
	imm115 := (data >> 25) & 0x7f
	imm40 := (data >> 7) & 0x1f

	imm := int32((imm115 << 5) | imm40)
	imm = (imm << 20) >> 20

	return Instruction{Imm: imm, Rs1: rs1(data), Rs2: rs2(data)}
}

func csrType(data uint32) Instruction {
	return Instruction{CSR: uint16(data >> 20), Rs1: rs1(data), Rd: rd(data)}
}

func fprType(data uint32) Instruction {
	return Instruction{Rs1: rs1(data), Rs2: rs2(data), Rs3: rs3(data), Rd: rd(data)}
}

// --- compressed (16-bit) field extraction ---

func copcode(data uint16) uint32     { return (uint32(data) >> 13) & 0x7 }
func cfunct1(data uint16) uint32     { return (uint32(data) >> 12) & 0x1 }
func cfunct2low(data uint16) uint32  { return (uint32(data) >> 5) & 0x3 }
func cfunct2high(data uint16) uint32 { return (uint32(data) >> 10) & 0x3 }
func rp1(data uint16) uint8          { return uint8((data>>7)&0x7) + 8 }
func rp2(data uint16) uint8          { return uint8((data>>2)&0x7) + 8 }
func rc1(data uint16) uint8          { return uint8((data >> 7) & 0x1f) }
func rc2(data uint16) uint8          { return uint8((data >> 2) & 0x1f) }

func caType(data uint16) Instruction {
	return Instruction{Rd: rp1(data), Rs2: rp2(data), RVC: true}
}

func crType(data uint16) Instruction {
	return Instruction{Rs1: rc1(data), Rs2: rc2(data), RVC: true}
}

// ciType reads the ADDI/LI/SLLI-shaped 6-bit signed immediate.
func ciType(data uint16) Instruction {
	imm40 := uint32(data>>2) & 0x1f
	imm5 := uint32(data>>12) & 0x1
	imm := int32((imm5 << 5) | imm40)
	imm = (imm << 26) >> 26
	return Instruction{Imm: imm, Rd: rc1(data), RVC: true}
}

// ciType2 reads the C.{FLDSP,LDSP} doubleword-offset immediate.
func ciType2(data uint16) Instruction {
	imm86 := uint32(data>>2) & 0x7
	imm43 := uint32(data>>5) & 0x3
	imm5 := uint32(data>>12) & 0x1
	imm := int32((imm86 << 6) | (imm43 << 3) | (imm5 << 5))
	return Instruction{Imm: imm, Rd: rc1(data), RVC: true}
}

// ciType3 reads the C.ADDI16SP signed immediate.
func ciType3(data uint16) Instruction {
	imm5 := uint32(data>>2) & 0x1
	imm87 := uint32(data>>3) & 0x3
	imm6 := uint32(data>>5) & 0x1
	imm4 := uint32(data>>6) & 0x1
	imm9 := uint32(data>>12) & 0x1
	imm := int32((imm5 << 5) | (imm87 << 7) | (imm6 << 6) | (imm4 << 4) | (imm9 << 9))
	imm = (imm << 22) >> 22
	return Instruction{Imm: imm, Rd: rc1(data), RVC: true}
}

// ciType4 reads the C.LWSP word-offset immediate.
func ciType4(data uint16) Instruction {
	imm5 := uint32(data>>12) & 0x1
	imm42 := uint32(data>>4) & 0x7
	imm76 := uint32(data>>2) & 0x3
	imm := int32((imm5 << 5) | (imm42 << 2) | (imm76 << 6))
	return Instruction{Imm: imm, Rd: rc1(data), RVC: true}
}

// ciType5 reads the C.LUI signed immediate, pre-shifted into bit position.
func ciType5(data uint16) Instruction {
	imm1612 := uint32(data>>2) & 0x1f
	imm17 := uint32(data>>12) & 0x1
	imm := int32((imm1612 << 12) | (imm17 << 17))
	imm = (imm << 14) >> 14
	return Instruction{Imm: imm, Rd: rc1(data), RVC: true}
}

// cbType reads the C.BEQZ/C.BNEZ branch-offset immediate.
func cbType(data uint16) Instruction {
	imm5 := uint32(data>>2) & 0x1
	imm21 := uint32(data>>3) & 0x3
	imm76 := uint32(data>>5) & 0x3
	imm43 := uint32(data>>10) & 0x3
	imm8 := uint32(data>>12) & 0x1
	imm := int32((imm8 << 8) | (imm76 << 6) | (imm5 << 5) | (imm43 << 3) | (imm21 << 1))
	imm = (imm << 23) >> 23
	return Instruction{Imm: imm, Rs1: rp1(data), RVC: true}
}

// cbType2 reads the C.SRLI/C.SRAI/C.ANDI shift-amount/immediate.
func cbType2(data uint16) Instruction {
	imm40 := uint32(data>>2) & 0x1f
	imm5 := uint32(data>>12) & 0x1
	imm := int32((imm5 << 5) | imm40)
	imm = (imm << 26) >> 26
	return Instruction{Imm: imm, Rd: rp1(data), RVC: true}
}

// csType reads the C.{FSD,SD} doubleword-offset immediate.
func csType(data uint16) Instruction {
	imm76 := uint32(data>>5) & 0x3
	imm53 := uint32(data>>10) & 0x7
	imm := int32((imm76 << 6) | (imm53 << 3))
	return Instruction{Imm: imm, Rs1: rp1(data), Rs2: rp2(data), RVC: true}
}

// csType2 reads the C.SW word-offset immediate.
func csType2(data uint16) Instruction {
	imm6 := uint32(data>>5) & 0x1
	imm2 := uint32(data>>6) & 0x1
	imm53 := uint32(data>>10) & 0x7
	imm := int32((imm6 << 6) | (imm2 << 2) | (imm53 << 3))
	return Instruction{Imm: imm, Rs1: rp1(data), Rs2: rp2(data), RVC: true}
}

// cjType reads the C.J/C.JAL jump-offset immediate.
func cjType(data uint16) Instruction {
	imm5 := uint32(data>>2) & 0x1
	imm31 := uint32(data>>3) & 0x7
	imm7 := uint32(data>>6) & 0x1
	imm6 := uint32(data>>7) & 0x1
	imm10 := uint32(data>>8) & 0x1
	imm98 := uint32(data>>9) & 0x3
	imm4 := uint32(data>>11) & 0x1
	imm11 := uint32(data>>12) & 0x1
	imm := int32((imm5 << 5) | (imm31 << 1) | (imm7 << 7) | (imm6 << 6) |
		(imm10 << 10) | (imm98 << 8) | (imm4 << 4) | (imm11 << 11))
	imm = (imm << 20) >> 20
	return Instruction{Imm: imm, RVC: true}
}

// clType reads the C.LW word-offset immediate.
func clType(data uint16) Instruction {
	imm6 := uint32(data>>5) & 0x1
	imm2 := uint32(data>>6) & 0x1
	imm53 := uint32(data>>10) & 0x7
	imm := int32((imm6 << 6) | (imm2 << 2) | (imm53 << 3))
	return Instruction{Imm: imm, Rs1: rp1(data), Rd: rp2(data), RVC: true}
}

// clType2 reads the C.{FLD,LD} doubleword-offset immediate.
func clType2(data uint16) Instruction {
	imm76 := uint32(data>>5) & 0x3
	imm53 := uint32(data>>10) & 0x7
	imm := int32((imm76 << 6) | (imm53 << 3))
	return Instruction{Imm: imm, Rs1: rp1(data), Rd: rp2(data), RVC: true}
}

// cssType reads the C.{FSDSP,SDSP} stack-relative doubleword-offset immediate.
func cssType(data uint16) Instruction {
	imm86 := uint32(data>>7) & 0x7
	imm53 := uint32(data>>10) & 0x7
	imm := int32((imm86 << 6) | (imm53 << 3))
	return Instruction{Imm: imm, Rs2: rc2(data), RVC: true}
}

// cssType2 reads the C.SWSP stack-relative word-offset immediate.
func cssType2(data uint16) Instruction {
	imm76 := uint32(data>>7) & 0x3
	imm52 := uint32(data>>9) & 0xf
	imm := int32((imm76 << 6) | (imm52 << 2))
	return Instruction{Imm: imm, Rs2: rc2(data), RVC: true}
}

// ciwType reads the C.ADDI4SPN scaled-immediate.
func ciwType(data uint16) Instruction {
	imm3 := uint32(data>>5) & 0x1
	imm2 := uint32(data>>6) & 0x1
	imm96 := uint32(data>>7) & 0xf
	imm54 := uint32(data>>11) & 0x3
	imm := int32((imm3 << 3) | (imm2 << 2) | (imm96 << 6) | (imm54 << 4))
	return Instruction{Imm: imm, Rd: rp2(data), RVC: true}
}

func errf(pc uint64, data uint32, format string, args ...any) error {
	return &DecodeError{PC: pc, Word: data, Msg: fmt.Sprintf(format, args...)}
}

func decodeQuadrant0(data uint16, pc uint64) (Instruction, error) {
	switch copcode(data) {
	case 0x0: // C.ADDI4SPN
		inst := ciwType(data)
		inst.Rs1 = RegSP
		inst.Kind = KindAddi
		if inst.Imm == 0 {
			return inst, errf(pc, uint32(data), "C.ADDI4SPN with zero immediate")
		}
		return inst, nil
	case 0x1: // C.FLD
		inst := clType2(data)
		inst.Kind = KindFld
		return inst, nil
	case 0x2: // C.LW
		inst := clType(data)
		inst.Kind = KindLw
		return inst, nil
	case 0x3: // C.LD
		inst := clType2(data)
		inst.Kind = KindLd
		return inst, nil
	case 0x5: // C.FSD
		inst := csType(data)
		inst.Kind = KindFsd
		return inst, nil
	case 0x6: // C.SW
		inst := csType2(data)
		inst.Kind = KindSw
		return inst, nil
	case 0x7: // C.SD
		inst := csType(data)
		inst.Kind = KindSd
		return inst, nil
	default:
		return Instruction{}, errf(pc, uint32(data), "unrecognized quadrant-0 copcode")
	}
}

func decodeQuadrant1(data uint16, pc uint64) (Instruction, error) {
	switch copcode(data) {
	case 0x0: // C.ADDI
		inst := ciType(data)
		inst.Rs1 = inst.Rd
		inst.Kind = KindAddi
		return inst, nil
	case 0x1: // C.ADDIW
		inst := ciType(data)
		if inst.Rd == 0 {
			return inst, errf(pc, uint32(data), "C.ADDIW with rd=0")
		}
		inst.Rs1 = inst.Rd
		inst.Kind = KindAddiw
		return inst, nil
	case 0x2: // C.LI
		inst := ciType(data)
		inst.Rs1 = RegZero
		inst.Kind = KindAddi
		return inst, nil
	case 0x3:
		if rc1(data) == 2 { // C.ADDI16SP
			inst := ciType3(data)
			if inst.Imm == 0 {
				return inst, errf(pc, uint32(data), "C.ADDI16SP with zero immediate")
			}
			inst.Rs1 = inst.Rd
			inst.Kind = KindAddi
			return inst, nil
		}
		inst := ciType5(data) // C.LUI
		if inst.Imm == 0 {
			return inst, errf(pc, uint32(data), "C.LUI with zero immediate")
		}
		inst.Kind = KindLui
		return inst, nil
	case 0x4:
		switch cfunct2high(data) {
		case 0x0, 0x1, 0x2: // C.SRLI / C.SRAI / C.ANDI
			inst := cbType2(data)
			inst.Rs1 = inst.Rd
			switch cfunct2high(data) {
			case 0x0:
				inst.Kind = KindSrli
			case 0x1:
				inst.Kind = KindSrai
			default:
				inst.Kind = KindAndi
			}
			return inst, nil
		case 0x3:
			switch cfunct1(data) {
			case 0x0: // C.SUB / C.XOR / C.OR / C.AND
				inst := caType(data)
				inst.Rs1 = inst.Rd
				switch cfunct2low(data) {
				case 0x0:
					inst.Kind = KindSub
				case 0x1:
					inst.Kind = KindXor
				case 0x2:
					inst.Kind = KindOr
				default:
					inst.Kind = KindAnd
				}
				return inst, nil
			case 0x1: // C.SUBW / C.ADDW
				inst := caType(data)
				inst.Rs1 = inst.Rd
				switch cfunct2low(data) {
				case 0x0:
					inst.Kind = KindSubw
				case 0x1:
					inst.Kind = KindAddw
				default:
					return inst, errf(pc, uint32(data), "unrecognized C.SUBW/C.ADDW funct2")
				}
				return inst, nil
			}
		}
	case 0x5: // C.J
		inst := cjType(data)
		inst.Rd = RegZero
		inst.Kind = KindJal
		inst.Cont = true
		return inst, nil
	case 0x6, 0x7: // C.BEQZ / C.BNEZ
		inst := cbType(data)
		inst.Rs2 = RegZero
		if copcode(data) == 0x6 {
			inst.Kind = KindBeq
		} else {
			inst.Kind = KindBne
		}
		return inst, nil
	}
	return Instruction{}, errf(pc, uint32(data), "unrecognized quadrant-1 copcode")
}

func decodeQuadrant2(data uint16, pc uint64) (Instruction, error) {
	switch copcode(data) {
	case 0x0: // C.SLLI
		inst := ciType(data)
		inst.Rs1 = inst.Rd
		inst.Kind = KindSlli
		return inst, nil
	case 0x1: // C.FLDSP
		inst := ciType2(data)
		inst.Rs1 = RegSP
		inst.Kind = KindFld
		return inst, nil
	case 0x2: // C.LWSP
		inst := ciType4(data)
		if inst.Rd == 0 {
			return inst, errf(pc, uint32(data), "C.LWSP with rd=0")
		}
		inst.Rs1 = RegSP
		inst.Kind = KindLw
		return inst, nil
	case 0x3: // C.LDSP
		inst := ciType2(data)
		if inst.Rd == 0 {
			return inst, errf(pc, uint32(data), "C.LDSP with rd=0")
		}
		inst.Rs1 = RegSP
		inst.Kind = KindLd
		return inst, nil
	case 0x4:
		switch cfunct1(data) {
		case 0x0:
			inst := crType(data)
			if inst.Rs2 == 0 { // C.JR
				if inst.Rs1 == 0 {
					return inst, errf(pc, uint32(data), "C.JR with rs1=0")
				}
				inst.Rd = RegZero
				inst.Kind = KindJalr
				inst.Cont = true
				return inst, nil
			}
			// C.MV
			inst.Rd = inst.Rs1
			inst.Rs1 = RegZero
			inst.Kind = KindAdd
			return inst, nil
		case 0x1:
			inst := crType(data)
			if inst.Rs1 == 0 && inst.Rs2 == 0 { // C.EBREAK
				inst.Kind = KindEbreak
				inst.Cont = true
				return inst, nil
			}
			if inst.Rs2 == 0 { // C.JALR
				inst.Rd = RegRA
				inst.Kind = KindJalr
				inst.Cont = true
				return inst, nil
			}
			// C.ADD
			inst.Rd = inst.Rs1
			inst.Kind = KindAdd
			return inst, nil
		}
	case 0x5: // C.FSDSP
		inst := cssType(data)
		inst.Rs1 = RegSP
		inst.Kind = KindFsd
		return inst, nil
	case 0x6: // C.SWSP
		inst := cssType2(data)
		inst.Rs1 = RegSP
		inst.Kind = KindSw
		return inst, nil
	case 0x7: // C.SDSP
		inst := cssType(data)
		inst.Rs1 = RegSP
		inst.Kind = KindSd
		return inst, nil
	}
	return Instruction{}, errf(pc, uint32(data), "unrecognized quadrant-2 copcode")
}

func decodeQuadrant3(data uint32, pc uint64) (Instruction, error) {
	switch opcode(data) {
	case 0x0: // loads
		inst := iType(data)
		switch funct3(data) {
		case 0x0:
			inst.Kind = KindLb
		case 0x1:
			inst.Kind = KindLh
		case 0x2:
			inst.Kind = KindLw
		case 0x3:
			inst.Kind = KindLd
		case 0x4:
			inst.Kind = KindLbu
		case 0x5:
			inst.Kind = KindLhu
		case 0x6:
			inst.Kind = KindLwu
		default:
			return inst, errf(pc, data, "unrecognized load funct3")
		}
		return inst, nil
	case 0x1: // float loads
		inst := iType(data)
		switch funct3(data) {
		case 0x2:
			inst.Kind = KindFlw
		case 0x3:
			inst.Kind = KindFld
		default:
			return inst, errf(pc, data, "unrecognized float-load funct3")
		}
		return inst, nil
	case 0x3: // FENCE / FENCE.I
		switch funct3(data) {
		case 0x0:
			return Instruction{Kind: KindFence}, nil
		case 0x1:
			return Instruction{Kind: KindFenceI}, nil
		default:
			return Instruction{}, errf(pc, data, "unrecognized fence funct3")
		}
	case 0x4: // integer register-immediate
		inst := iType(data)
		switch funct3(data) {
		case 0x0:
			inst.Kind = KindAddi
		case 0x1:
			if imm116(data) != 0 {
				return inst, errf(pc, data, "unrecognized SLLI shift encoding")
			}
			inst.Kind = KindSlli
		case 0x2:
			inst.Kind = KindSlti
		case 0x3:
			inst.Kind = KindSltiu
		case 0x4:
			inst.Kind = KindXori
		case 0x5:
			switch imm116(data) {
			case 0x0:
				inst.Kind = KindSrli
			case 0x10:
				inst.Kind = KindSrai
			default:
				return inst, errf(pc, data, "unrecognized SRLI/SRAI shift encoding")
			}
		case 0x6:
			inst.Kind = KindOri
		case 0x7:
			inst.Kind = KindAndi
		default:
			return inst, errf(pc, data, "unrecognized integer-immediate funct3")
		}
		return inst, nil
	case 0x5: // AUIPC
		inst := uType(data)
		inst.Kind = KindAuipc
		return inst, nil
	case 0x6: // 32-bit integer register-immediate (addiw/slliw/srliw/sraiw)
		inst := iType(data)
		f3, f7 := funct3(data), funct7(data)
		switch f3 {
		case 0x0:
			inst.Kind = KindAddiw
		case 0x1:
			if f7 != 0 {
				return inst, errf(pc, data, "unrecognized SLLIW encoding")
			}
			inst.Kind = KindSlliw
		case 0x5:
			switch f7 {
			case 0x0:
				inst.Kind = KindSrliw
			case 0x20:
				inst.Kind = KindSraiw
			default:
				return inst, errf(pc, data, "unrecognized SRLIW/SRAIW encoding")
			}
		default:
			return inst, errf(pc, data, "unrecognized word-immediate funct3")
		}
		return inst, nil
	case 0x8: // stores
		inst := sType(data)
		switch funct3(data) {
		case 0x0:
			inst.Kind = KindSb
		case 0x1:
			inst.Kind = KindSh
		case 0x2:
			inst.Kind = KindSw
		case 0x3:
			inst.Kind = KindSd
		default:
			return inst, errf(pc, data, "unrecognized store funct3")
		}
		return inst, nil
	case 0x9: // float stores
		inst := sType(data)
		switch funct3(data) {
		case 0x2:
			inst.Kind = KindFsw
		case 0x3:
			inst.Kind = KindFsd
		default:
			return inst, errf(pc, data, "unrecognized float-store funct3")
		}
		return inst, nil
	case 0xc: // integer register-register
		inst := rType(data)
		f3, f7 := funct3(data), funct7(data)
		switch f7 {
		case 0x0:
			switch f3 {
			case 0x0:
				inst.Kind = KindAdd
			case 0x1:
				inst.Kind = KindSll
			case 0x2:
				inst.Kind = KindSlt
			case 0x3:
				inst.Kind = KindSltu
			case 0x4:
				inst.Kind = KindXor
			case 0x5:
				inst.Kind = KindSrl
			case 0x6:
				inst.Kind = KindOr
			case 0x7:
				inst.Kind = KindAnd
			default:
				return inst, errf(pc, data, "unrecognized base ALU funct3")
			}
		case 0x1:
			switch f3 {
			case 0x0:
				inst.Kind = KindMul
			case 0x1:
				inst.Kind = KindMulh
			case 0x2:
				inst.Kind = KindMulhsu
			case 0x3:
				inst.Kind = KindMulhu
			case 0x4:
				inst.Kind = KindDiv
			case 0x5:
				inst.Kind = KindDivu
			case 0x6:
				inst.Kind = KindRem
			case 0x7:
				inst.Kind = KindRemu
			default:
				return inst, errf(pc, data, "unrecognized M-extension funct3")
			}
		case 0x20:
			switch f3 {
			case 0x0:
				inst.Kind = KindSub
			case 0x5:
				inst.Kind = KindSra
			default:
				return inst, errf(pc, data, "unrecognized SUB/SRA funct3")
			}
		default:
			return inst, errf(pc, data, "unrecognized register-register funct7")
		}
		return inst, nil
	case 0xd: // LUI
		inst := uType(data)
		inst.Kind = KindLui
		return inst, nil
	case 0xe: // 32-bit integer register-register
		inst := rType(data)
		f3, f7 := funct3(data), funct7(data)
		switch f7 {
		case 0x0:
			switch f3 {
			case 0x0:
				inst.Kind = KindAddw
			case 0x1:
				inst.Kind = KindSllw
			case 0x5:
				inst.Kind = KindSrlw
			default:
				return inst, errf(pc, data, "unrecognized word ALU funct3")
			}
		case 0x1:
			switch f3 {
			case 0x0:
				inst.Kind = KindMulw
			case 0x4:
				inst.Kind = KindDivw
			case 0x5:
				inst.Kind = KindDivuw
			case 0x6:
				inst.Kind = KindRemw
			case 0x7:
				inst.Kind = KindRemuw
			default:
				return inst, errf(pc, data, "unrecognized word M-extension funct3")
			}
		case 0x20:
			switch f3 {
			case 0x0:
				inst.Kind = KindSubw
			case 0x5:
				inst.Kind = KindSraw
			default:
				return inst, errf(pc, data, "unrecognized SUBW/SRAW funct3")
			}
		default:
			return inst, errf(pc, data, "unrecognized word register-register funct7")
		}
		return inst, nil
	case 0x10, 0x11, 0x12, 0x13: // FMADD/FMSUB/FNMSUB/FNMADD
		inst := fprType(data)
		single := funct2(data) == 0x0
		if funct2(data) > 0x1 {
			return inst, errf(pc, data, "unrecognized fused-multiply-add funct2")
		}
		switch opcode(data) {
		case 0x10:
			inst.Kind = pick(single, KindFmaddS, KindFmaddD)
		case 0x11:
			inst.Kind = pick(single, KindFmsubS, KindFmsubD)
		case 0x12:
			inst.Kind = pick(single, KindFnmsubS, KindFnmsubD)
		default:
			inst.Kind = pick(single, KindFnmaddS, KindFnmaddD)
		}
		return inst, nil
	case 0x14:
		return decodeFloatArith(data, pc)
	case 0x18: // branches
		inst := bType(data)
		switch funct3(data) {
		case 0x0:
			inst.Kind = KindBeq
		case 0x1:
			inst.Kind = KindBne
		case 0x4:
			inst.Kind = KindBlt
		case 0x5:
			inst.Kind = KindBge
		case 0x6:
			inst.Kind = KindBltu
		case 0x7:
			inst.Kind = KindBgeu
		default:
			return inst, errf(pc, data, "unrecognized branch funct3")
		}
		return inst, nil
	case 0x19: // JALR
		inst := iType(data)
		inst.Kind = KindJalr
		inst.Cont = true
		return inst, nil
	case 0x1b: // JAL
		inst := jType(data)
		inst.Kind = KindJal
		inst.Cont = true
		return inst, nil
	case 0x1c:
		if data == 0x73 { // ECALL
			return Instruction{Kind: KindEcall, Cont: true}, nil
		}
		inst := csrType(data)
		if !legalCSR(inst.CSR) {
			return inst, errf(pc, data, "illegal CSR number 0x%x", inst.CSR)
		}
		switch funct3(data) {
		case 0x1:
			inst.Kind = KindCsrrw
		case 0x2:
			inst.Kind = KindCsrrs
		case 0x3:
			inst.Kind = KindCsrrc
		case 0x5:
			inst.Kind = KindCsrrwi
		case 0x6:
			inst.Kind = KindCsrrsi
		case 0x7:
			inst.Kind = KindCsrrci
		default:
			return inst, errf(pc, data, "unrecognized CSR funct3")
		}
		return inst, nil
	}
	return Instruction{}, errf(pc, data, "unrecognized quadrant-3 opcode")
}

// CSR addresses this machine implements: fflags/frm/fcsr, the only state
// Zicsr exposes here (no privilege levels, no trap vectors, no counters).
// Mirrored as emu.CSRFflags/CSRFrm/CSRFcsr for the operation table.
const (
	csrFflags uint16 = 0x001
	csrFrm    uint16 = 0x002
	csrFcsr   uint16 = 0x003
)

// legalCSR reports whether csr is one of the CSRs this machine implements.
// Every other CSR address is out of scope and is fatal at decode time, per
// the RISC-V Zicsr requirement that an unimplemented CSR trap rather than
// read/write as zero.
func legalCSR(csr uint16) bool {
	switch csr {
	case csrFflags, csrFrm, csrFcsr:
		return true
	default:
		return false
	}
}

func pick(cond bool, a, b Kind) Kind {
	if cond {
		return a
	}
	return b
}

func decodeFloatArith(data uint32, pc uint64) (Instruction, error) {
	inst := rType(data)
	switch funct7(data) {
	case 0x0:
		inst.Kind = KindFaddS
	case 0x1:
		inst.Kind = KindFaddD
	case 0x4:
		inst.Kind = KindFsubS
	case 0x5:
		inst.Kind = KindFsubD
	case 0x8:
		inst.Kind = KindFmulS
	case 0x9:
		inst.Kind = KindFmulD
	case 0xc:
		inst.Kind = KindFdivS
	case 0xd:
		inst.Kind = KindFdivD
	case 0x10:
		switch funct3(data) {
		case 0x0:
			inst.Kind = KindFsgnjS
		case 0x1:
			inst.Kind = KindFsgnjnS
		case 0x2:
			inst.Kind = KindFsgnjxS
		default:
			return inst, errf(pc, data, "unrecognized FSGNJ.S funct3")
		}
	case 0x11:
		switch funct3(data) {
		case 0x0:
			inst.Kind = KindFsgnjD
		case 0x1:
			inst.Kind = KindFsgnjnD
		case 0x2:
			inst.Kind = KindFsgnjxD
		default:
			return inst, errf(pc, data, "unrecognized FSGNJ.D funct3")
		}
	case 0x14:
		switch funct3(data) {
		case 0x0:
			inst.Kind = KindFminS
		case 0x1:
			inst.Kind = KindFmaxS
		default:
			return inst, errf(pc, data, "unrecognized FMIN.S/FMAX.S funct3")
		}
	case 0x15:
		switch funct3(data) {
		case 0x0:
			inst.Kind = KindFminD
		case 0x1:
			inst.Kind = KindFmaxD
		default:
			return inst, errf(pc, data, "unrecognized FMIN.D/FMAX.D funct3")
		}
	case 0x20:
		if rs2(data) != 1 {
			return inst, errf(pc, data, "FCVT.S.D requires rs2=1")
		}
		inst.Kind = KindFcvtSD
	case 0x21:
		if rs2(data) != 0 {
			return inst, errf(pc, data, "FCVT.D.S requires rs2=0")
		}
		inst.Kind = KindFcvtDS
	case 0x2c:
		if inst.Rs2 != 0 {
			return inst, errf(pc, data, "FSQRT.S requires rs2=0")
		}
		inst.Kind = KindFsqrtS
	case 0x2d:
		if inst.Rs2 != 0 {
			return inst, errf(pc, data, "FSQRT.D requires rs2=0")
		}
		inst.Kind = KindFsqrtD
	case 0x50:
		switch funct3(data) {
		case 0x0:
			inst.Kind = KindFleS
		case 0x1:
			inst.Kind = KindFltS
		case 0x2:
			inst.Kind = KindFeqS
		default:
			return inst, errf(pc, data, "unrecognized FLE.S/FLT.S/FEQ.S funct3")
		}
	case 0x51:
		switch funct3(data) {
		case 0x0:
			inst.Kind = KindFleD
		case 0x1:
			inst.Kind = KindFltD
		case 0x2:
			inst.Kind = KindFeqD
		default:
			return inst, errf(pc, data, "unrecognized FLE.D/FLT.D/FEQ.D funct3")
		}
	case 0x60:
		switch rs2(data) {
		case 0x0:
			inst.Kind = KindFcvtWS
		case 0x1:
			inst.Kind = KindFcvtWuS
		case 0x2:
			inst.Kind = KindFcvtLS
		case 0x3:
			inst.Kind = KindFcvtLuS
		default:
			return inst, errf(pc, data, "unrecognized FCVT.*.S selector")
		}
	case 0x61:
		switch rs2(data) {
		case 0x0:
			inst.Kind = KindFcvtWD
		case 0x1:
			inst.Kind = KindFcvtWuD
		case 0x2:
			inst.Kind = KindFcvtLD
		case 0x3:
			inst.Kind = KindFcvtLuD
		default:
			return inst, errf(pc, data, "unrecognized FCVT.*.D selector")
		}
	case 0x68:
		switch rs2(data) {
		case 0x0:
			inst.Kind = KindFcvtSW
		case 0x1:
			inst.Kind = KindFcvtSWu
		case 0x2:
			inst.Kind = KindFcvtSL
		case 0x3:
			inst.Kind = KindFcvtSLu
		default:
			return inst, errf(pc, data, "unrecognized FCVT.S.* selector")
		}
	case 0x69:
		switch rs2(data) {
		case 0x0:
			inst.Kind = KindFcvtDW
		case 0x1:
			inst.Kind = KindFcvtDWu
		case 0x2:
			inst.Kind = KindFcvtDL
		case 0x3:
			inst.Kind = KindFcvtDLu
		default:
			return inst, errf(pc, data, "unrecognized FCVT.D.* selector")
		}
	case 0x70:
		if rs2(data) != 0 {
			return inst, errf(pc, data, "FMV.X.W/FCLASS.S requires rs2=0")
		}
		switch funct3(data) {
		case 0x0:
			inst.Kind = KindFmvXW
		case 0x1:
			inst.Kind = KindFclassS
		default:
			return inst, errf(pc, data, "unrecognized FMV.X.W/FCLASS.S funct3")
		}
	case 0x71:
		if rs2(data) != 0 {
			return inst, errf(pc, data, "FMV.X.D/FCLASS.D requires rs2=0")
		}
		switch funct3(data) {
		case 0x0:
			inst.Kind = KindFmvXD
		case 0x1:
			inst.Kind = KindFclassD
		default:
			return inst, errf(pc, data, "unrecognized FMV.X.D/FCLASS.D funct3")
		}
	case 0x78:
		if rs2(data) != 0 || funct3(data) != 0 {
			return inst, errf(pc, data, "malformed FMV.W.X")
		}
		inst.Kind = KindFmvWX
	case 0x79:
		if rs2(data) != 0 || funct3(data) != 0 {
			return inst, errf(pc, data, "malformed FMV.D.X")
		}
		inst.Kind = KindFmvDX
	default:
		return inst, errf(pc, data, "unrecognized float-arithmetic funct7")
	}
	return inst, nil
}
