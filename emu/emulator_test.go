package emu_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rv64emu/emu"
)

var _ = Describe("Emulator", func() {
	var (
		stdout *bytes.Buffer
		e      *emu.Emulator
	)

	BeforeEach(func() {
		stdout = new(bytes.Buffer)
		e = emu.NewEmulator(emu.WithStdout(stdout))
		e.SetEntry(0x0)
	})

	Describe("integer pipeline", func() {
		It("should execute ADDI and advance pc by 4", func() {
			// addi x1, x0, 42
			e.AddressSpace().Write32(0, 0x02a00093)

			result := e.Step()

			Expect(result.Err).NotTo(HaveOccurred())
			Expect(e.RegFile().ReadGP(1)).To(Equal(uint64(42)))
			Expect(e.RegFile().PC).To(Equal(uint64(4)))
		})

		It("should never let a write to x0 take effect", func() {
			// addi x0, x0, 5
			e.AddressSpace().Write32(0, 0x00500013)

			e.Step()

			Expect(e.RegFile().ReadGP(0)).To(Equal(uint64(0)))
		})
	})

	Describe("branches", func() {
		It("should fall through to pc+4 when a branch is not taken", func() {
			// beq x1, x2, 0x100 (x1=1, x2=2 so not equal)
			e.RegFile().WriteGP(1, 1)
			e.RegFile().WriteGP(2, 2)
			e.AddressSpace().Write32(0, 0x10208063)

			e.Step()

			Expect(e.RegFile().PC).To(Equal(uint64(4)))
		})

		It("should jump to the target when a branch is taken", func() {
			// beq x1, x2, 0x100 (x1==x2)
			e.RegFile().WriteGP(1, 7)
			e.RegFile().WriteGP(2, 7)
			e.AddressSpace().Write32(0, 0x10208063)

			e.Step()

			Expect(e.RegFile().PC).To(Equal(uint64(0x100)))
		})
	})

	Describe("JAL", func() {
		It("should link the return address and jump", func() {
			// jal x1, 0x100
			e.AddressSpace().Write32(0, 0x100000ef)

			e.Step()

			Expect(e.RegFile().PC).To(Equal(uint64(0x100)))
			Expect(e.RegFile().ReadGP(1)).To(Equal(uint64(4)))
		})
	})

	Describe("loads and stores", func() {
		It("should store and load a doubleword through an rs1+imm address", func() {
			e.RegFile().WriteGP(2, 0xcafebabe)

			// sd x2, 0(x1) with x1=0x800
			e.RegFile().WriteGP(1, 0x800)
			e.AddressSpace().Write32(0, 0x0020b023)
			e.Step()

			Expect(e.AddressSpace().Read64(0x800)).To(Equal(uint64(0xcafebabe)))
		})
	})

	Describe("MapSegment", func() {
		It("should write segment bytes and zero-fill the bss tail", func() {
			e.AddressSpace().Write8(0x950, 0xff)
			e.MapSegment(0x900, []byte{1, 2, 3}, 0x60)

			Expect(e.AddressSpace().ReadBytes(0x900, 3)).To(Equal([]byte{1, 2, 3}))
			Expect(e.AddressSpace().Read8(0x950)).To(Equal(uint8(0)))
		})
	})

	Describe("ecall", func() {
		It("should report Exited on exit_group and stop the run loop", func() {
			// li a7, 94 (addi x17, x0, 94) ; li a0, 3 ; ecall
			e.AddressSpace().Write32(0, 0x05e00893) // addi x17, x0, 94
			e.AddressSpace().Write32(4, 0x00300513)  // addi x10, x0, 3
			e.AddressSpace().Write32(8, 0x00000073)  // ecall

			code := e.Run()

			Expect(code).To(Equal(int64(3)))
		})
	})

	Describe("max instruction budget", func() {
		It("should stop with an error once the instruction budget is exhausted", func() {
			e2 := emu.NewEmulator(emu.WithMaxInstructions(1))
			e2.AddressSpace().Write32(0, 0x00000013) // nop (addi x0,x0,0)
			e2.AddressSpace().Write32(4, 0x00000013)

			first := e2.Step()
			Expect(first.Err).NotTo(HaveOccurred())

			second := e2.Step()
			Expect(second.Err).To(HaveOccurred())
		})
	})
})
