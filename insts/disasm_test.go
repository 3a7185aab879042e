package insts_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"mips5sim/insts"
)

var _ = Describe("Disassemble", func() {
	var decoder *insts.Decoder

	BeforeEach(func() {
		decoder = insts.NewDecoder()
	})

	It("should render lui's immediate in hex", func() {
		inst := decoder.Decode((0x0F << 26) | (4 << 16) | 0x1000)
		Expect(inst.Disassemble(0x3000)).To(Equal("lui $4, 0x1000"))
	})

	It("should render ori's immediate in hex", func() {
		inst := decoder.Decode((0x0D << 26) | (4 << 21) | (4 << 16) | 0xABCD)
		Expect(inst.Disassemble(0x3000)).To(Equal("ori $4, $4, 0xabcd"))
	})

	It("should render jal's fully-computed absolute target in hex", func() {
		inst := decoder.Decode((0x03 << 26) | (0x3010 >> 2))
		Expect(inst.Disassemble(0x3000)).To(Equal("jal 0x00003010"))
	})

	It("should fold the pc's upper nibble into jal's target", func() {
		inst := decoder.Decode((0x03 << 26) | 0x04)
		Expect(inst.Disassemble(0xF0003000)).To(Equal("jal 0xf0000010"))
	})
})
