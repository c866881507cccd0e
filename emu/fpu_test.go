package emu_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rv64emu/emu"
)

var _ = Describe("FPUnit", func() {
	var fpu *emu.FPUnit

	BeforeEach(func() {
		fpu = emu.NewFPUnit(&emu.RegFile{})
	})

	Describe("arithmetic", func() {
		It("should add single-precision operands", func() {
			Expect(fpu.FaddS(1.5, 2.5)).To(Equal(float32(4.0)))
		})

		It("should divide double-precision operands", func() {
			Expect(fpu.FdivD(10, 4)).To(Equal(2.5))
		})

		It("should compute FSQRT.D", func() {
			Expect(fpu.FsqrtD(9)).To(Equal(3.0))
		})
	})

	Describe("fused multiply-add", func() {
		It("should compute FMADD.D as a*b+c", func() {
			Expect(fpu.FmaddD(2, 3, 4)).To(Equal(10.0))
		})

		It("should compute FNMSUB.S as -(a*b)+c", func() {
			Expect(fpu.FnmsubS(2, 3, 10)).To(Equal(float32(4)))
		})
	})

	Describe("sign injection", func() {
		It("should copy the sign of the second operand with FSGNJ.S", func() {
			Expect(fpu.FsgnjS(3.0, -1.0)).To(Equal(float32(-3.0)))
		})

		It("should negate the sign of the second operand with FSGNJN.S", func() {
			Expect(fpu.FsgnjnS(3.0, -1.0)).To(Equal(float32(3.0)))
		})

		It("should XOR the signs with FSGNJX.D", func() {
			Expect(fpu.FsgnjxD(3.0, -1.0)).To(Equal(-3.0))
		})
	})

	Describe("min/max NaN propagation", func() {
		It("should return the non-NaN operand when one input is NaN", func() {
			Expect(fpu.FminS(float32(math.NaN()), 5.0)).To(Equal(float32(5.0)))
		})

		It("should return a quiet NaN when both inputs are NaN", func() {
			Expect(math.IsNaN(float64(fpu.FmaxS(float32(math.NaN()), float32(math.NaN()))))).To(BeTrue())
		})

		It("should use plain double-precision comparison when neither is NaN", func() {
			Expect(fpu.FmaxD(1.5, 2.5)).To(Equal(2.5))
		})
	})

	Describe("comparisons", func() {
		It("should return 1 for FEQ.S when operands are equal", func() {
			Expect(fpu.FeqS(1.0, 1.0)).To(Equal(uint64(1)))
		})

		It("should return 0 for FLT.D when the left operand is larger", func() {
			Expect(fpu.FltD(5.0, 2.0)).To(Equal(uint64(0)))
		})
	})

	Describe("conversions", func() {
		It("should round FCVT.W.D to nearest and sign-extend", func() {
			Expect(fpu.FcvtWD(-3.7)).To(Equal(uint64(0xfffffffffffffffc)))
		})

		It("should convert an unsigned 32-bit integer to single precision", func() {
			Expect(fpu.FcvtSWu(4294967295)).To(Equal(float32(4294967295)))
		})

		It("should narrow FCVT.S.D", func() {
			Expect(fpu.FcvtSD(2.5)).To(Equal(float32(2.5)))
		})
	})

	Describe("saturating float-to-integer conversions", func() {
		It("should clamp FCVT.W.D to INT32_MAX on positive overflow", func() {
			Expect(fpu.FcvtWD(1e30)).To(Equal(uint64(int64(math.MaxInt32))))
		})

		It("should clamp FCVT.W.D to INT32_MIN on negative overflow", func() {
			Expect(fpu.FcvtWD(-1e30)).To(Equal(uint64(0xffffffff80000000)))
		})

		It("should clamp FCVT.W.S to INT32_MAX on +Inf", func() {
			Expect(fpu.FcvtWS(float32(math.Inf(1)))).To(Equal(uint64(int64(math.MaxInt32))))
		})

		It("should clamp FCVT.W.S to INT32_MIN on -Inf", func() {
			Expect(fpu.FcvtWS(float32(math.Inf(-1)))).To(Equal(uint64(0xffffffff80000000)))
		})

		It("should clamp FCVT.W.D to INT32_MAX on NaN", func() {
			Expect(fpu.FcvtWD(math.NaN())).To(Equal(uint64(int64(math.MaxInt32))))
		})

		It("should clamp FCVT.WU.D to 0 on a negative input", func() {
			Expect(fpu.FcvtWuD(-1.5)).To(Equal(uint64(0)))
		})

		It("should clamp FCVT.WU.S to UINT32_MAX on positive overflow", func() {
			Expect(fpu.FcvtWuS(1e20)).To(Equal(uint64(math.MaxUint32)))
		})

		It("should clamp FCVT.WU.D to UINT32_MAX on NaN", func() {
			Expect(fpu.FcvtWuD(math.NaN())).To(Equal(uint64(math.MaxUint32)))
		})

		It("should clamp FCVT.L.D to INT64_MAX on +Inf", func() {
			Expect(fpu.FcvtLD(math.Inf(1))).To(Equal(uint64(int64(math.MaxInt64))))
		})

		It("should clamp FCVT.L.S to INT64_MIN on -Inf", func() {
			Expect(fpu.FcvtLS(float32(math.Inf(-1)))).To(Equal(uint64(0x8000000000000000)))
		})

		It("should clamp FCVT.L.D to INT64_MAX on NaN", func() {
			Expect(fpu.FcvtLD(math.NaN())).To(Equal(uint64(int64(math.MaxInt64))))
		})

		It("should clamp FCVT.LU.D to 0 on a negative input", func() {
			Expect(fpu.FcvtLuD(-2.0)).To(Equal(uint64(0)))
		})

		It("should clamp FCVT.LU.S to UINT64_MAX on +Inf", func() {
			Expect(fpu.FcvtLuS(float32(math.Inf(1)))).To(Equal(uint64(math.MaxUint64)))
		})

		It("should clamp FCVT.LU.D to UINT64_MAX on NaN", func() {
			Expect(fpu.FcvtLuD(math.NaN())).To(Equal(uint64(math.MaxUint64)))
		})

		It("should pass an in-range value through unchanged", func() {
			Expect(fpu.FcvtLD(42.0)).To(Equal(uint64(42)))
		})
	})

	Describe("classification", func() {
		It("should classify positive zero", func() {
			Expect(fpu.FclassD(0.0)).To(Equal(uint64(1 << 4)))
		})

		It("should classify negative infinity", func() {
			Expect(fpu.FclassD(math.Inf(-1))).To(Equal(uint64(1 << 0)))
		})

		It("should classify a quiet NaN", func() {
			Expect(fpu.FclassD(math.NaN())).To(Equal(uint64(1 << 9)))
		})

		It("should classify a subnormal single-precision value", func() {
			subnormal := math.Float32frombits(0x00000001)
			Expect(fpu.FclassS(subnormal)).To(Equal(uint64(1 << 5)))
		})

		It("should classify a normal negative single-precision value", func() {
			Expect(fpu.FclassS(-2.0)).To(Equal(uint64(1 << 1)))
		})
	})

	Describe("move", func() {
		It("should NaN-box a raw bit pattern moved from the integer bank", func() {
			bits := fpu.FmvWX(uint64(math.Float32bits(1.0)))
			Expect(bits >> 32).To(Equal(uint64(0xffffffff)))
			Expect(math.Float32frombits(uint32(bits))).To(Equal(float32(1.0)))
		})

		It("should sign-extend a value moved from the float bank via FMV.X.W", func() {
			Expect(fpu.FmvXW(0x80000000)).To(Equal(uint64(0xffffffff80000000)))
		})
	})
})
