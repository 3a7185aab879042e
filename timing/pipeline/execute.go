package pipeline

import "mips5sim/insts"

// execute dispatches the work a packet's instruction performs during
// its current stage. Every kind is gated on p.Stage itself rather than
// on which function called it, since EX and MEM packets are re-driven
// through execute once per cycle as they advance: a kind only acts on
// the stage(s) it cares about and is a no-op everywhere else.
func execute(pl *Pool, p *Packet) {
	inst := p.Inst
	switch inst.Kind {
	case insts.KindAdd:
		if p.Stage != insts.StageEX {
			return
		}
		rs := pl.ReadReg(inst.Rs(), p.Stage)
		rt := pl.ReadReg(inst.Rt(), p.Stage)
		pl.WriteReg(p, inst.Rd(), rs+rt, "add")

	case insts.KindSub:
		if p.Stage != insts.StageEX {
			return
		}
		rs := pl.ReadReg(inst.Rs(), p.Stage)
		rt := pl.ReadReg(inst.Rt(), p.Stage)
		pl.WriteReg(p, inst.Rd(), rs-rt, "sub")

	case insts.KindLui:
		if p.Stage != insts.StageEX {
			return
		}
		pl.WriteReg(p, inst.Rt(), inst.Imm16()<<16, "lui")

	case insts.KindOri:
		if p.Stage != insts.StageEX {
			return
		}
		rs := pl.ReadReg(inst.Rs(), p.Stage)
		pl.WriteReg(p, inst.Rt(), rs|inst.Imm16(), "ori")

	case insts.KindLw:
		switch p.Stage {
		case insts.StageEX:
			rs := pl.ReadReg(inst.Rs(), p.Stage)
			addr := uint32(int32(rs) + inst.Imm16Signed())
			p.Put("mem_addr", addr)
		case insts.StageMEM:
			addr, _ := p.Get("mem_addr")
			val := pl.ReadMem(addr)
			pl.WriteReg(p, inst.Rt(), val, "lw")
		}

	case insts.KindSw:
		switch p.Stage {
		case insts.StageEX:
			rs := pl.ReadReg(inst.Rs(), p.Stage)
			addr := uint32(int32(rs) + inst.Imm16Signed())
			p.Put("mem_addr", addr)
		case insts.StageMEM:
			addr, _ := p.Get("mem_addr")
			rt := pl.ReadReg(inst.Rt(), p.Stage)
			pl.WriteMem(p, addr, rt)
		}

	case insts.KindBeq:
		if p.Stage != insts.StageID {
			return
		}
		rs := pl.ReadReg(inst.Rs(), p.Stage)
		rt := pl.ReadReg(inst.Rt(), p.Stage)
		if rs == rt {
			p.NPC = uint32(int32(p.PC+4) + (inst.Imm16Signed() << 2))
		}

	case insts.KindJr:
		if p.Stage != insts.StageID {
			return
		}
		p.NPC = pl.ReadReg(inst.Rs(), p.Stage)

	case insts.KindJal:
		if p.Stage != insts.StageID {
			return
		}
		p.NPC = (inst.Imm26() << 2) | ((p.PC + 4) & 0xF0000000)
		pl.WriteReg(p, 31, p.PC+8, "jal")

	case insts.KindNop:
		// does absolutely nothing
	}
}
