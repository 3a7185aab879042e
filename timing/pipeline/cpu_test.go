package pipeline_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"mips5sim/emu"
	"mips5sim/timing/pipeline"
)

var _ = Describe("CPU", func() {
	const maxCycles = 50

	Describe("ALU dependency with forwarding", func() {
		It("should forward a result to the very next instruction without stalling", func() {
			words := []uint32{
				ori(1, 0, 5),
				ori(2, 0, 7),
				add(3, 1, 2), // 5 + 7
				add(4, 3, 1), // depends on the previous add's result
				halt,
			}
			cpu := pipeline.NewCPU(words)
			cpu.Run(maxCycles)

			Expect(cpu.Halted()).To(BeTrue())
			Expect(cpu.Regs().Read(3)).To(Equal(emu.Word(12)))
			Expect(cpu.Regs().Read(4)).To(Equal(emu.Word(17)))
		})

		It("should log a Forward behavior for the dependent instruction", func() {
			words := []uint32{
				ori(1, 0, 5),
				ori(2, 0, 7),
				add(3, 1, 2),
				add(4, 3, 1),
				halt,
			}
			cpu := pipeline.NewCPU(words)
			cpu.Run(maxCycles)

			found := false
			for _, snap := range cpu.History {
				for _, b := range snap.Behaviors {
					if _, ok := b.(pipeline.Forward); ok {
						found = true
					}
				}
			}
			Expect(found).To(BeTrue())
		})
	})

	Describe("load-use stall", func() {
		It("should stall the dependent instruction until the load's value is ready", func() {
			words := []uint32{
				ori(1, 0, 0x10),
				lw(2, 1, 0),
				add(3, 2, 2),
				halt,
			}
			cpu := pipeline.NewCPU(words)
			cpu.Mem().Write(0x10, emu.Word(0xDEADBEEF))
			cpu.Run(maxCycles)

			Expect(cpu.Halted()).To(BeTrue())
			Expect(cpu.Regs().Read(2)).To(Equal(emu.Word(0xDEADBEEF)))
			Expect(cpu.Regs().Read(3)).To(Equal(emu.Word(0xBD5B7DDE)))

			stalled := false
			for _, snap := range cpu.History {
				for _, b := range snap.Behaviors {
					if _, ok := b.(pipeline.Stall); ok {
						stalled = true
					}
				}
			}
			Expect(stalled).To(BeTrue())
		})
	})

	Describe("store then load round trip", func() {
		It("should read back the value a preceding store wrote to the same address", func() {
			words := []uint32{
				ori(1, 0, 0x20),
				ori(2, 0, 0x55),
				sw(2, 1, 0),
				lw(3, 1, 0),
				halt,
			}
			cpu := pipeline.NewCPU(words)
			cpu.Run(maxCycles)

			Expect(cpu.Halted()).To(BeTrue())
			Expect(cpu.Regs().Read(3)).To(Equal(emu.Word(0x55)))
			Expect(cpu.Mem().Read(0x20)).To(Equal(emu.Word(0x55)))
		})
	})

	Describe("taken branch", func() {
		It("should skip the fall-through instructions and execute only at the target", func() {
			words := []uint32{
				ori(1, 0, 5),          // 0x3000
				ori(2, 0, 5),          // 0x3004
				beq(1, 2, 2),          // 0x3008, taken, target 0x3008+4+(2<<2) = 0x3014
				ori(9, 0, 111),        // 0x300C, wrong path, must not execute
				ori(9, 0, 222),        // 0x3010, wrong path, must not execute
				ori(4, 0, 42),         // 0x3014, branch target
				halt,                  // 0x3018
			}
			cpu := pipeline.NewCPU(words)
			cpu.Run(maxCycles)

			Expect(cpu.Halted()).To(BeTrue())
			Expect(cpu.Regs().Read(9)).To(Equal(emu.Word(0)))
			Expect(cpu.Regs().Read(4)).To(Equal(emu.Word(42)))
		})
	})

	Describe("jump and link then return", func() {
		It("should link the return address and resume there after the subroutine returns", func() {
			words := []uint32{
				jal(0x3010 >> 2), // 0x3000
				ori(9, 0, 111),   // 0x3004, skipped: jal redirects this same cycle
				ori(5, 0, 77),    // 0x3008, resumed here after jr $31
				halt,             // 0x300C
				ori(4, 0, 55),    // 0x3010, subroutine body
				jr(31),           // 0x3014, return
			}
			cpu := pipeline.NewCPU(words)
			cpu.Run(maxCycles)

			Expect(cpu.Halted()).To(BeTrue())
			Expect(cpu.Regs().Read(31)).To(Equal(emu.Word(0x3008)))
			Expect(cpu.Regs().Read(9)).To(Equal(emu.Word(0)))
			Expect(cpu.Regs().Read(4)).To(Equal(emu.Word(55)))
			Expect(cpu.Regs().Read(5)).To(Equal(emu.Word(77)))
		})
	})

	Describe("register zero immutability", func() {
		It("should silently discard a write to $0", func() {
			words := []uint32{
				ori(0, 0, 123),
				halt,
			}
			cpu := pipeline.NewCPU(words)
			cpu.Run(maxCycles)

			Expect(cpu.Halted()).To(BeTrue())
			Expect(cpu.Regs().Read(0)).To(Equal(emu.Word(0)))
		})
	})
})
