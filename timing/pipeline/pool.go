package pipeline

import (
	"fmt"

	"mips5sim/emu"
	"mips5sim/insts"
)

// StallError is returned by Pool.CheckStall when an ID-stage operand
// cannot be delivered in time by any in-flight producer. It carries no
// behavior of its own; the caller is responsible for logging a Stall
// and holding the packet in ID for another cycle.
type StallError struct {
	Reg    int
	TUse   int
	TNew   int
	Reason string
}

func (e *StallError) Error() string {
	return fmt.Sprintf("hazard on $%d: tuse(%d) < tnew(%d)", e.Reg, e.TUse, e.TNew)
}

// slots is the minimal view of the CPU's stage occupancy Pool needs:
// one packet, or nil, per stage.
type slots interface {
	at(s insts.Stage) *Packet
}

// Pool is the hazard-detection and operand-forwarding unit. It has no
// state of its own: every decision is computed fresh from the current
// slot occupancy, the register file, and data memory it is given.
type Pool struct {
	slots  slots
	regs   *emu.RegFile
	memory *emu.Memory
	onForward func(Forward)
}

// NewPool creates a Pool bound to the given slot view, register file,
// and data memory. onForward, if non-nil, is invoked once per forwarded
// read so the caller can append it to the current cycle's behavior log.
func NewPool(s slots, regs *emu.RegFile, memory *emu.Memory, onForward func(Forward)) *Pool {
	return &Pool{slots: s, regs: regs, memory: memory, onForward: onForward}
}

// CheckStall determines whether the instruction in p (sitting in ID)
// can proceed to EX this cycle. It checks each source operand p's
// instruction actually consumes (tuse != BEGIN) against the nearest
// in-flight producer of that register (see detectHazard).
func (pl *Pool) CheckStall(p *Packet) error {
	inst := p.Inst
	if inst.TuseRS() != insts.StageBegin {
		if err := pl.detectHazard(inst.Rs(), inst.TuseRS()); err != nil {
			return err
		}
	}
	if inst.TuseRT() != insts.StageBegin {
		if err := pl.detectHazard(inst.Rt(), inst.TuseRT()); err != nil {
			return err
		}
	}
	return nil
}

// detectHazard scans EX, MEM, WB for the first (most recent) producer
// of reg and, if found, compares the consumer's tuse against that
// producer's remaining latency. Only the nearest producer matters:
// a newer write always shadows an older one still in flight, so the
// first match in this EX-to-WB scan (the youngest producer) is the
// binding constraint.
func (pl *Pool) detectHazard(reg int, tUse insts.Stage) error {
	if reg == 0 {
		return nil
	}
	for _, s := range [...]insts.Stage{insts.StageEX, insts.StageMEM, insts.StageWB} {
		prod := pl.slots.at(s)
		if prod == nil {
			continue
		}
		if prod.WriteReg() != reg {
			continue
		}
		tNew := prod.Remaining(s)
		tUseVal := remainingFromID(tUse)
		if tUseVal < tNew {
			return &StallError{Reg: reg, TUse: tUseVal, TNew: tNew}
		}
		return nil
	}
	return nil
}

// remainingFromID converts a tuse stage into a cycle count measured
// from ID, clamped to zero.
func remainingFromID(tUse insts.Stage) int {
	v := int(tUse) - int(insts.StageID)
	if v < 0 {
		return 0
	}
	return v
}

// ReadReg returns the value reg should take for a read occurring in
// curStage: a pending result forwarded from the nearest downstream
// in-flight producer of reg, or the committed register-file value if
// there is no such producer or its result is not ready yet. Producers
// further downstream than the nearest one are not consulted.
func (pl *Pool) ReadReg(reg int, curStage insts.Stage) uint32 {
	if reg == 0 {
		return 0
	}

	curPkt := pl.slots.at(curStage)
	for s := insts.Successor(curStage); s != insts.StageEnd; s = insts.Successor(s) {
		prod := pl.slots.at(s)
		if prod == nil {
			continue
		}
		if prod.WriteReg() != reg {
			continue
		}

		tNew := prod.Remaining(s)
		if tNew == 0 && prod.AluWrite != nil {
			val := prod.AluWrite.New
			if pl.onForward != nil {
				pl.onForward(Forward{
					PC:        curPkt.PC,
					Reg:       reg,
					Val:       val,
					FromStage: s,
					ToStage:   curStage,
				})
			}
			return val
		}
		return uint32(pl.regs.Read(reg))
	}
	return uint32(pl.regs.Read(reg))
}

// ReadMem reads data memory directly; there is no forwarding path from
// an in-flight store. A store commits to memory during its own MEM
// stage, a cycle before the next instruction reaches MEM, so a load
// right after a store to the same address reads the stored value
// without a stall.
func (pl *Pool) ReadMem(addr uint32) uint32 {
	return uint32(pl.memory.Read(addr))
}

// WriteReg stages a pending register write on p, to be committed by
// WB. Writes to register 0 are dropped.
func (pl *Pool) WriteReg(p *Packet, reg int, value uint32, reason string) {
	if reg == 0 {
		return
	}
	p.AluWrite = &Change{Origin: p.Stage, New: value, Reason: reason}
}

// WriteMem stages a pending memory write on p, to be committed by MEM
// itself (MEM is the last stage to touch memory).
func (pl *Pool) WriteMem(p *Packet, addr uint32, value uint32) {
	p.MemWrite = &Change{Origin: p.Stage, Addr: addr, New: value, Reason: "mem_write"}
}
