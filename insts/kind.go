// Package insts implements the RV64IMAFDC instruction decoder: a pure
// function from a 16- or 32-bit instruction word to an Instruction record.
package insts

// Kind identifies the decoded operation an Instruction performs. The set is
// closed and mirrors the RV64IMAFDC + Zicsr opcode space; compressed (RVC)
// encodings decode to the same Kind as their expanded form (C.ADDI and ADDI
// both produce KindAddi) and are told apart by Instruction.RVC.
type Kind uint16

const (
	KindInvalid Kind = iota

	// integer register-immediate
	KindAddi
	KindAddiw
	KindSlti
	KindSltiu
	KindXori
	KindOri
	KindAndi
	KindSlli
	KindSrli
	KindSrai
	KindSlliw
	KindSrliw
	KindSraiw
	KindLui
	KindAuipc

	// integer register-register
	KindAdd
	KindSub
	KindSll
	KindSlt
	KindSltu
	KindXor
	KindSrl
	KindSra
	KindOr
	KindAnd
	KindAddw
	KindSubw
	KindSllw
	KindSrlw
	KindSraw

	// M extension
	KindMul
	KindMulh
	KindMulhsu
	KindMulhu
	KindDiv
	KindDivu
	KindRem
	KindRemu
	KindMulw
	KindDivw
	KindDivuw
	KindRemw
	KindRemuw

	// loads / stores
	KindLb
	KindLh
	KindLw
	KindLd
	KindLbu
	KindLhu
	KindLwu
	KindSb
	KindSh
	KindSw
	KindSd

	// control flow
	KindBeq
	KindBne
	KindBlt
	KindBge
	KindBltu
	KindBgeu
	KindJal
	KindJalr

	// system
	KindEcall
	KindEbreak
	KindFence
	KindFenceI
	KindCsrrw
	KindCsrrs
	KindCsrrc
	KindCsrrwi
	KindCsrrsi
	KindCsrrci

	// floating point loads / stores
	KindFlw
	KindFld
	KindFsw
	KindFsd

	// floating point fused multiply-add
	KindFmaddS
	KindFmaddD
	KindFmsubS
	KindFmsubD
	KindFnmsubS
	KindFnmsubD
	KindFnmaddS
	KindFnmaddD

	// floating point arithmetic
	KindFaddS
	KindFaddD
	KindFsubS
	KindFsubD
	KindFmulS
	KindFmulD
	KindFdivS
	KindFdivD
	KindFsqrtS
	KindFsqrtD
	KindFsgnjS
	KindFsgnjnS
	KindFsgnjxS
	KindFsgnjD
	KindFsgnjnD
	KindFsgnjxD
	KindFminS
	KindFmaxS
	KindFminD
	KindFmaxD

	// floating point compare
	KindFleS
	KindFltS
	KindFeqS
	KindFleD
	KindFltD
	KindFeqD

	// floating point convert
	KindFcvtWS
	KindFcvtWuS
	KindFcvtLS
	KindFcvtLuS
	KindFcvtWD
	KindFcvtWuD
	KindFcvtLD
	KindFcvtLuD
	KindFcvtSW
	KindFcvtSWu
	KindFcvtSL
	KindFcvtSLu
	KindFcvtDW
	KindFcvtDWu
	KindFcvtDL
	KindFcvtDLu
	KindFcvtSD
	KindFcvtDS

	// floating point move / classify
	KindFmvXW
	KindFclassS
	KindFmvXD
	KindFclassD
	KindFmvWX
	KindFmvDX

	numKinds
)

var kindNames = [numKinds]string{
	KindInvalid: "invalid",
	KindAddi:    "addi", KindAddiw: "addiw", KindSlti: "slti", KindSltiu: "sltiu",
	KindXori: "xori", KindOri: "ori", KindAndi: "andi", KindSlli: "slli",
	KindSrli: "srli", KindSrai: "srai", KindSlliw: "slliw", KindSrliw: "srliw",
	KindSraiw: "sraiw", KindLui: "lui", KindAuipc: "auipc",
	KindAdd: "add", KindSub: "sub", KindSll: "sll", KindSlt: "slt", KindSltu: "sltu",
	KindXor: "xor", KindSrl: "srl", KindSra: "sra", KindOr: "or", KindAnd: "and",
	KindAddw: "addw", KindSubw: "subw", KindSllw: "sllw", KindSrlw: "srlw", KindSraw: "sraw",
	KindMul: "mul", KindMulh: "mulh", KindMulhsu: "mulhsu", KindMulhu: "mulhu",
	KindDiv: "div", KindDivu: "divu", KindRem: "rem", KindRemu: "remu",
	KindMulw: "mulw", KindDivw: "divw", KindDivuw: "divuw", KindRemw: "remw", KindRemuw: "remuw",
	KindLb: "lb", KindLh: "lh", KindLw: "lw", KindLd: "ld", KindLbu: "lbu", KindLhu: "lhu", KindLwu: "lwu",
	KindSb: "sb", KindSh: "sh", KindSw: "sw", KindSd: "sd",
	KindBeq: "beq", KindBne: "bne", KindBlt: "blt", KindBge: "bge", KindBltu: "bltu", KindBgeu: "bgeu",
	KindJal: "jal", KindJalr: "jalr",
	KindEcall: "ecall", KindEbreak: "ebreak", KindFence: "fence", KindFenceI: "fence.i",
	KindCsrrw: "csrrw", KindCsrrs: "csrrs", KindCsrrc: "csrrc",
	KindCsrrwi: "csrrwi", KindCsrrsi: "csrrsi", KindCsrrci: "csrrci",
	KindFlw: "flw", KindFld: "fld", KindFsw: "fsw", KindFsd: "fsd",
	KindFmaddS: "fmadd.s", KindFmaddD: "fmadd.d", KindFmsubS: "fmsub.s", KindFmsubD: "fmsub.d",
	KindFnmsubS: "fnmsub.s", KindFnmsubD: "fnmsub.d", KindFnmaddS: "fnmadd.s", KindFnmaddD: "fnmadd.d",
	KindFaddS: "fadd.s", KindFaddD: "fadd.d", KindFsubS: "fsub.s", KindFsubD: "fsub.d",
	KindFmulS: "fmul.s", KindFmulD: "fmul.d", KindFdivS: "fdiv.s", KindFdivD: "fdiv.d",
	KindFsqrtS: "fsqrt.s", KindFsqrtD: "fsqrt.d",
	KindFsgnjS: "fsgnj.s", KindFsgnjnS: "fsgnjn.s", KindFsgnjxS: "fsgnjx.s",
	KindFsgnjD: "fsgnj.d", KindFsgnjnD: "fsgnjn.d", KindFsgnjxD: "fsgnjx.d",
	KindFminS: "fmin.s", KindFmaxS: "fmax.s", KindFminD: "fmin.d", KindFmaxD: "fmax.d",
	KindFleS: "fle.s", KindFltS: "flt.s", KindFeqS: "feq.s",
	KindFleD: "fle.d", KindFltD: "flt.d", KindFeqD: "feq.d",
	KindFcvtWS: "fcvt.w.s", KindFcvtWuS: "fcvt.wu.s", KindFcvtLS: "fcvt.l.s", KindFcvtLuS: "fcvt.lu.s",
	KindFcvtWD: "fcvt.w.d", KindFcvtWuD: "fcvt.wu.d", KindFcvtLD: "fcvt.l.d", KindFcvtLuD: "fcvt.lu.d",
	KindFcvtSW: "fcvt.s.w", KindFcvtSWu: "fcvt.s.wu", KindFcvtSL: "fcvt.s.l", KindFcvtSLu: "fcvt.s.lu",
	KindFcvtDW: "fcvt.d.w", KindFcvtDWu: "fcvt.d.wu", KindFcvtDL: "fcvt.d.l", KindFcvtDLu: "fcvt.d.lu",
	KindFcvtSD: "fcvt.s.d", KindFcvtDS: "fcvt.d.s",
	KindFmvXW: "fmv.x.w", KindFclassS: "fclass.s", KindFmvXD: "fmv.x.d", KindFclassD: "fclass.d",
	KindFmvWX: "fmv.w.x", KindFmvDX: "fmv.d.x",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

// Register name aliases used by the decoder, mirroring the ABI names the
// compressed register-renumbering formats (RP1/RP2) and a handful of
// expanded-format special cases (C.MV, C.JR, C.ADDI16SP) read and write.
const (
	RegZero uint8 = 0
	RegRA   uint8 = 1
	RegSP   uint8 = 2
)
