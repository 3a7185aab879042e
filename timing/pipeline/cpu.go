package pipeline

import (
	"mips5sim/emu"
	"mips5sim/insts"
)

// entryAddr is the virtual address of the first fetched instruction.
const entryAddr = 0x3000

// CPU drives the five-stage pipeline: it owns the register file, data
// memory, and the one packet per stage slot, and advances all of them
// one cycle at a time in the WB→MEM→EX→ID→IF order that lets every
// stage read its predecessor's state before that predecessor overwrites
// it, giving one-cycle latching without a shadow-register scheme.
type CPU struct {
	pc      uint32
	cycle   uint64
	halted  bool
	regs    *emu.RegFile
	mem     *emu.Memory
	decoder *insts.Decoder
	program []uint32
	slots   map[insts.Stage]*Packet
	pool    *Pool

	behaviors []Behavior
	History   []Snapshot
}

// NewCPU creates a CPU loaded with program, a word-indexed sequence of
// raw instruction encodings starting at entryAddr. All registers and
// data memory begin zeroed.
func NewCPU(program []uint32) *CPU {
	c := &CPU{
		pc:      entryAddr,
		regs:    emu.NewRegFile(),
		mem:     emu.NewMemory(),
		decoder: insts.NewDecoder(),
		program: program,
		slots:   make(map[insts.Stage]*Packet),
	}
	c.pool = NewPool(c, c.regs, c.mem, c.logForward)
	return c
}

// at implements the slots interface Pool depends on.
func (c *CPU) at(s insts.Stage) *Packet {
	return c.slots[s]
}

func (c *CPU) log(b Behavior) {
	c.behaviors = append(c.behaviors, b)
}

func (c *CPU) logForward(f Forward) {
	c.log(f)
}

// Halted reports whether the halt sentinel has reached WB.
func (c *CPU) Halted() bool {
	return c.halted
}

// PC returns the current program counter.
func (c *CPU) PC() uint32 {
	return c.pc
}

// Regs exposes the architectural register file for read-only inspection.
func (c *CPU) Regs() *emu.RegFile {
	return c.regs
}

// Mem exposes the architectural data memory, for inspection or for
// seeding data before a run.
func (c *CPU) Mem() *emu.Memory {
	return c.mem
}

// Step executes one cycle: WB commits, MEM executes its memory phase,
// EX executes its ALU phase, ID decodes and checks hazards (stalling
// if needed), IF fetches the next instruction unless stalled or
// redirected by a taken branch, and a snapshot is captured.
func (c *CPU) Step() {
	c.cycle++
	c.behaviors = nil

	c.stageWB()
	c.stageMEM()
	c.stageEX()
	stalled := c.stageID()
	c.stageIF(stalled)

	c.captureSnapshot()
}

// Run steps the CPU until the halt sentinel reaches WB or cycle
// reaches maxCycles, whichever comes first.
func (c *CPU) Run(maxCycles uint64) {
	for !c.halted && c.cycle < maxCycles {
		c.Step()
	}
}

func (c *CPU) stageWB() {
	p := c.slots[insts.StageWB]
	if p == nil {
		return
	}
	p.Advance()

	if p.AluWrite != nil {
		reg := p.WriteReg()
		c.regs.Write(reg, emu.Word(p.AluWrite.New))
		c.log(RegWrite{PC: p.PC, Reg: reg, Val: p.AluWrite.New})
	}

	if p.Inst.IsHalt() {
		c.halted = true
	}
}

func (c *CPU) stageMEM() {
	p := c.slots[insts.StageMEM]
	if p != nil {
		p.Advance()
		execute(c.pool, p)

		if p.MemWrite != nil {
			c.mem.Write(p.MemWrite.Addr, emu.Word(p.MemWrite.New))
			c.log(MemWrite{PC: p.PC, Addr: p.MemWrite.Addr, Val: p.MemWrite.New})
		}
	}
	c.slots[insts.StageWB] = p
}

func (c *CPU) stageEX() {
	p := c.slots[insts.StageEX]
	if p != nil {
		p.Advance()
		execute(c.pool, p)
	}
	c.slots[insts.StageMEM] = p
}

// stageID advances and executes the ID-stage packet, reporting whether
// a hazard forced a stall (in which case EX receives a bubble and the
// packet remains in the ID slot for another attempt next cycle).
func (c *CPU) stageID() bool {
	p := c.slots[insts.StageID]
	if p == nil {
		c.slots[insts.StageEX] = nil
		return false
	}

	if p.Stage != insts.StageID {
		p.Advance()
	}

	if err := c.pool.CheckStall(p); err != nil {
		c.slots[insts.StageEX] = nil
		c.log(Stall{PC: p.PC, Stage: insts.StageID, Reason: err.Error()})
		return true
	}

	execute(c.pool, p)
	c.slots[insts.StageEX] = p
	return false
}

// stageIF fetches the next instruction into the ID slot unless
// stalled, redirecting to the branch target resolved by the packet
// that just left ID this cycle.
func (c *CPU) stageIF(stalled bool) {
	if stalled {
		return
	}

	fetchPC := c.pc
	pID := c.slots[insts.StageEX] // the packet that just left ID this cycle
	taken := pID != nil && pID.NPC != pID.PC+4
	if taken {
		fetchPC = pID.NPC
	}

	idx := int64(fetchPC-entryAddr) / 4
	if idx < 0 || idx >= int64(len(c.program)) {
		c.slots[insts.StageID] = nil
		c.pc = fetchPC
		return
	}

	word := c.program[idx]
	inst := c.decoder.Decode(word)
	c.slots[insts.StageID] = NewPacket(inst, fetchPC)
	c.pc = fetchPC + 4

	if taken {
		c.log(Branch{PC: pID.PC, TargetPC: pID.NPC, Taken: true})
	}
}

func (c *CPU) captureSnapshot() {
	pipeline := make(map[insts.Stage]*StageStatus, len(displayStages))
	for _, s := range displayStages {
		p := c.slots[s]
		if p == nil {
			pipeline[s] = nil
			continue
		}
		pipeline[s] = &StageStatus{
			PC:       p.PC,
			Stage:    s,
			InstName: p.Inst.KindName(),
			Disasm:   p.Inst.Disassemble(p.PC),
			TNew:     p.Remaining(s),
		}
	}

	regs := c.regs.Snapshot()
	gpr := [32]uint32{}
	for i, w := range regs {
		gpr[i] = uint32(w)
	}

	touched := c.mem.Touched()
	mem := make(map[uint32]uint32, len(touched))
	for addr, w := range touched {
		mem[addr] = uint32(w)
	}

	c.History = append(c.History, Snapshot{
		Cycle:     c.cycle,
		PC:        c.pc,
		GPR:       gpr,
		Memory:    mem,
		Pipeline:  pipeline,
		Behaviors: append([]Behavior(nil), c.behaviors...),
	})
}
