package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rv64emu/emu"
)

var _ = Describe("LoadStoreUnit", func() {
	var (
		regFile *emu.RegFile
		mem     *emu.AddressSpace
		lsu     *emu.LoadStoreUnit
	)

	BeforeEach(func() {
		regFile = &emu.RegFile{}
		mem = emu.NewAddressSpaceWithOffset(0)
		lsu = emu.NewLoadStoreUnit(regFile, mem)
	})

	Describe("byte loads", func() {
		It("should sign-extend LB", func() {
			mem.Write8(0x100, 0xff)
			lsu.Lb(5, 0x100)
			Expect(regFile.ReadGP(5)).To(Equal(uint64(^uint64(0))))
		})

		It("should zero-extend LBU", func() {
			mem.Write8(0x100, 0xff)
			lsu.Lbu(5, 0x100)
			Expect(regFile.ReadGP(5)).To(Equal(uint64(0xff)))
		})
	})

	Describe("word loads", func() {
		It("should sign-extend LW", func() {
			mem.Write32(0x200, 0x80000000)
			lsu.Lw(6, 0x200)
			Expect(regFile.ReadGP(6)).To(Equal(uint64(0xffffffff80000000)))
		})

		It("should zero-extend LWU", func() {
			mem.Write32(0x200, 0x80000000)
			lsu.Lwu(6, 0x200)
			Expect(regFile.ReadGP(6)).To(Equal(uint64(0x80000000)))
		})
	})

	Describe("doubleword round trip", func() {
		It("should store and load SD/LD", func() {
			regFile.WriteGP(7, 0x1122334455667788)
			lsu.Sd(7, 0x300)
			lsu.Ld(8, 0x300)
			Expect(regFile.ReadGP(8)).To(Equal(uint64(0x1122334455667788)))
		})
	})

	Describe("float loads/stores", func() {
		It("should NaN-box a single-precision value loaded by FLW", func() {
			mem.Write32(0x400, 0x3f800000) // 1.0f
			lsu.Flw(1, 0x400)
			Expect(regFile.ReadFloat32(1)).To(Equal(float32(1.0)))
			Expect(regFile.ReadFloatBits(1) >> 32).To(Equal(uint64(0xffffffff)))
		})

		It("should store and load FSD/FLD", func() {
			regFile.WriteFloat64(2, 3.5)
			lsu.Fsd(2, 0x500)
			lsu.Fld(3, 0x500)
			Expect(regFile.ReadFloat64(3)).To(Equal(3.5))
		})

		It("should store the low 32 bits of the float bank for FSW", func() {
			regFile.WriteFloat32(4, 2.5)
			lsu.Fsw(4, 0x600)
			Expect(mem.Read32(0x600)).To(Equal(uint32(0x40200000)))
		})
	})
})
