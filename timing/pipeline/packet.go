package pipeline

import "mips5sim/insts"

// Change records a pending write an instruction will commit once it
// reaches the stage that owns the write: origin names which stage
// produced the value, new is the value itself, and reason is a short
// human label used by behavior-log rendering. Addr is only meaningful
// for a pending memory write; a pending register write's destination
// is implied by the instruction itself.
type Change struct {
	Origin insts.Stage
	Addr   uint32
	New    uint32
	Reason string
}

// Packet is the unit that travels through the pipeline: one decoded
// instruction plus its program counter, its pipeline position, any
// pending writes it carries, and a side-band scratch map for values
// that must survive from one stage to the next within the same
// instruction (e.g. the address computed in EX, consumed in MEM).
type Packet struct {
	Inst  *insts.Instruction
	PC    uint32
	NPC   uint32
	Stage insts.Stage

	// AluWrite is set by the stage that computes a register result (ID
	// for jal, EX for the ALU kinds, MEM for lw); WB commits it.
	AluWrite *Change

	// MemWrite is set in MEM once a store reads its value (the address
	// was computed in EX); MEM then commits it to data memory.
	MemWrite *Change

	// scratch carries values between stages of this instruction's own
	// passage (e.g. "mem_addr" set in EX, read in MEM) without being
	// visible to other packets.
	scratch map[string]uint32
}

// NewPacket creates a packet for inst fetched at pc, sitting in IF with
// no pending writes yet.
func NewPacket(inst *insts.Instruction, pc uint32) *Packet {
	return &Packet{
		Inst:    inst,
		PC:      pc,
		NPC:     pc + 4,
		Stage:   insts.StageIF,
		scratch: make(map[string]uint32),
	}
}

// Put stashes a scratch value under key for a later stage of this same
// packet to retrieve with Get.
func (p *Packet) Put(key string, value uint32) {
	p.scratch[key] = value
}

// Get retrieves a scratch value previously stashed with Put. The
// second return value reports whether key was present.
func (p *Packet) Get(key string) (uint32, bool) {
	v, ok := p.scratch[key]
	return v, ok
}

// Advance moves the packet to the next stage in program order.
func (p *Packet) Advance() {
	p.Stage = insts.Successor(p.Stage)
}

// WriteReg returns the destination register this packet's instruction
// writes, or -1 if it writes nothing.
func (p *Packet) WriteReg() int {
	return p.Inst.WriteReg()
}

// Remaining returns the number of stages remaining before this
// packet's destination register becomes available, given that the
// packet itself currently sits in cur.
func (p *Packet) Remaining(cur insts.Stage) int {
	return p.Inst.Remaining(cur)
}
