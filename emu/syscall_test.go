package emu_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rv64emu/emu"
)

var _ = Describe("DefaultSyscallHandler", func() {
	var (
		regFile *emu.RegFile
		mem     *emu.AddressSpace
		fds     *emu.FDTable
		stdout  *bytes.Buffer
		stderr  *bytes.Buffer
		handler *emu.DefaultSyscallHandler
	)

	const (
		regA0 = 10
		regA1 = 11
		regA2 = 12
		regA7 = 17
	)

	BeforeEach(func() {
		regFile = &emu.RegFile{}
		mem = emu.NewAddressSpaceWithOffset(0)
		fds = emu.NewFDTable()
		stdout = new(bytes.Buffer)
		stderr = new(bytes.Buffer)
		handler = emu.NewDefaultSyscallHandler(regFile, mem, fds, stdout, stderr)
	})

	Describe("unknown syscall", func() {
		It("should return -ENOSYS in a0", func() {
			regFile.WriteGP(regA7, 999)

			result := handler.Handle()

			Expect(result.Exited).To(BeFalse())
			Expect(int64(regFile.ReadGP(regA0))).To(Equal(int64(-38)))
		})
	})

	Describe("write", func() {
		It("should write count bytes from guest memory to stdout", func() {
			mem.WriteBytes(0x1000, []byte("hi\n"))
			regFile.WriteGP(regA0, 1)
			regFile.WriteGP(regA1, 0x1000)
			regFile.WriteGP(regA2, 3)
			regFile.WriteGP(regA7, emu.SyscallWrite)

			result := handler.Handle()

			Expect(result.Exited).To(BeFalse())
			Expect(stdout.String()).To(Equal("hi\n"))
			Expect(regFile.ReadGP(regA0)).To(Equal(uint64(3)))
		})

		It("should reject an unsupported fd with -EBADF", func() {
			regFile.WriteGP(regA0, 99)
			regFile.WriteGP(regA7, emu.SyscallWrite)

			handler.Handle()

			Expect(int64(regFile.ReadGP(regA0))).To(Equal(int64(-9)))
		})
	})

	Describe("writev", func() {
		It("should scatter-write each iovec entry in order", func() {
			mem.WriteBytes(0x2000, []byte("ab"))
			mem.WriteBytes(0x2010, []byte("cd"))
			mem.Write64(0x3000, 0x2000)
			mem.Write64(0x3008, 2)
			mem.Write64(0x3010, 0x2010)
			mem.Write64(0x3018, 2)

			regFile.WriteGP(regA0, 1)
			regFile.WriteGP(regA1, 0x3000)
			regFile.WriteGP(regA2, 2)
			regFile.WriteGP(regA7, emu.SyscallWritev)

			handler.Handle()

			Expect(stdout.String()).To(Equal("abcd"))
			Expect(regFile.ReadGP(regA0)).To(Equal(uint64(4)))
		})
	})

	Describe("read", func() {
		It("should report zero bytes when stdin is not configured", func() {
			regFile.WriteGP(regA0, 0)
			regFile.WriteGP(regA1, 0x4000)
			regFile.WriteGP(regA2, 16)
			regFile.WriteGP(regA7, emu.SyscallRead)

			handler.Handle()

			Expect(regFile.ReadGP(regA0)).To(Equal(uint64(0)))
		})

		It("should read from the configured stdin into guest memory", func() {
			handler.SetStdin(bytes.NewBufferString("hello"))
			regFile.WriteGP(regA0, 0)
			regFile.WriteGP(regA1, 0x4000)
			regFile.WriteGP(regA2, 16)
			regFile.WriteGP(regA7, emu.SyscallRead)

			handler.Handle()

			Expect(regFile.ReadGP(regA0)).To(Equal(uint64(5)))
			Expect(mem.ReadBytes(0x4000, 5)).To(Equal([]byte("hello")))
		})
	})

	Describe("brk", func() {
		It("should query the current break when a0 is zero", func() {
			regFile.WriteGP(regA0, 0)
			regFile.WriteGP(regA7, emu.SyscallBrk)

			handler.Handle()

			Expect(regFile.ReadGP(regA0)).To(Equal(uint64(0)))
		})

		It("should move the break to the requested address", func() {
			regFile.WriteGP(regA0, 0x10000)
			regFile.WriteGP(regA7, emu.SyscallBrk)

			handler.Handle()

			Expect(regFile.ReadGP(regA0)).To(Equal(uint64(0x10000)))
		})
	})

	Describe("exit / exit_group", func() {
		It("should report Exited with the a0 exit code", func() {
			regFile.WriteGP(regA0, 7)
			regFile.WriteGP(regA7, emu.SyscallExit)

			result := handler.Handle()

			Expect(result.Exited).To(BeTrue())
			Expect(result.ExitCode).To(Equal(int64(7)))
		})

		It("should treat exit_group the same as exit", func() {
			regFile.WriteGP(regA0, 42)
			regFile.WriteGP(regA7, emu.SyscallExitGroup)

			result := handler.Handle()

			Expect(result.Exited).To(BeTrue())
			Expect(result.ExitCode).To(Equal(int64(42)))
		})
	})

	Describe("close", func() {
		It("should treat closing a standard stream as a no-op success", func() {
			regFile.WriteGP(regA0, 1)
			regFile.WriteGP(regA7, emu.SyscallClose)

			handler.Handle()

			Expect(regFile.ReadGP(regA0)).To(Equal(uint64(0)))
		})
	})
})
