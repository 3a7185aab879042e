package insts_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"mips5sim/insts"
)

var _ = Describe("Decoder", func() {
	var decoder *insts.Decoder

	BeforeEach(func() {
		decoder = insts.NewDecoder()
	})

	Describe("R-type instructions", func() {
		It("should decode add $3, $1, $2", func() {
			inst := decoder.Decode(0x00221820)

			Expect(inst.Kind).To(Equal(insts.KindAdd))
			Expect(inst.Rs()).To(Equal(1))
			Expect(inst.Rt()).To(Equal(2))
			Expect(inst.Rd()).To(Equal(3))
		})

		It("should decode sub $4, $5, $6", func() {
			// opcode 0, rs=5, rt=6, rd=4, funct=0x22
			inst := decoder.Decode(0x00A62022 | (5 << 21) | (6 << 16) | (4 << 11))

			Expect(inst.Kind).To(Equal(insts.KindSub))
			Expect(inst.Rs()).To(Equal(5))
			Expect(inst.Rt()).To(Equal(6))
			Expect(inst.Rd()).To(Equal(4))
		})

		It("should decode jr $31", func() {
			inst := decoder.Decode((31 << 21) | 0x08)

			Expect(inst.Kind).To(Equal(insts.KindJr))
			Expect(inst.Rs()).To(Equal(31))
		})
	})

	Describe("immediate instructions", func() {
		It("should decode lui $8, 0x1234", func() {
			inst := decoder.Decode((0x0F << 26) | (8 << 16) | 0x1234)

			Expect(inst.Kind).To(Equal(insts.KindLui))
			Expect(inst.Rt()).To(Equal(8))
			Expect(inst.Imm16()).To(Equal(uint32(0x1234)))
		})

		It("should decode ori $9, $8, 0xFF", func() {
			inst := decoder.Decode((0x0D << 26) | (8 << 21) | (9 << 16) | 0xFF)

			Expect(inst.Kind).To(Equal(insts.KindOri))
			Expect(inst.Rs()).To(Equal(8))
			Expect(inst.Rt()).To(Equal(9))
			Expect(inst.Imm16()).To(Equal(uint32(0xFF)))
		})

		It("should decode lw $2, -4($29)", func() {
			imm := uint32(0xFFFC) // -4 as 16 bits
			inst := decoder.Decode((0x23 << 26) | (29 << 21) | (2 << 16) | imm)

			Expect(inst.Kind).To(Equal(insts.KindLw))
			Expect(inst.Rs()).To(Equal(29))
			Expect(inst.Rt()).To(Equal(2))
			Expect(inst.Imm16Signed()).To(Equal(int32(-4)))
		})

		It("should decode sw $2, 8($29)", func() {
			inst := decoder.Decode((0x2B << 26) | (29 << 21) | (2 << 16) | 8)

			Expect(inst.Kind).To(Equal(insts.KindSw))
			Expect(inst.Rs()).To(Equal(29))
			Expect(inst.Rt()).To(Equal(2))
			Expect(inst.Imm16Signed()).To(Equal(int32(8)))
		})

		It("should decode beq $0, $0, -1 (the halt sentinel)", func() {
			inst := decoder.Decode(0x1000FFFF)

			Expect(inst.Kind).To(Equal(insts.KindBeq))
			Expect(inst.IsHalt()).To(BeTrue())
		})
	})

	Describe("jump instructions", func() {
		It("should decode jal 0x40", func() {
			inst := decoder.Decode((0x03 << 26) | 0x40)

			Expect(inst.Kind).To(Equal(insts.KindJal))
			Expect(inst.Imm26()).To(Equal(uint32(0x40)))
		})
	})

	Describe("unknown encodings", func() {
		It("should fall back to nop for an all-zero word", func() {
			inst := decoder.Decode(0x00000000)

			Expect(inst.Kind).To(Equal(insts.KindNop))
		})

		It("should fall back to nop for an unregistered opcode", func() {
			inst := decoder.Decode(0xFC000000) // opcode 0x3F

			Expect(inst.Kind).To(Equal(insts.KindNop))
		})
	})
})
