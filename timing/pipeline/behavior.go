package pipeline

import (
	"fmt"

	"mips5sim/insts"
)

// Behavior is one entry in the per-cycle event log: a register write, a
// memory write, a forwarded operand, a stall, a taken branch, or a
// stage-occupancy note. Each variant renders its own exact textual
// form; the log is a flat []Behavior in cycle order, cleared at the
// start of every cycle.
type Behavior interface {
	fmt.Stringer
	isBehavior()
}

// RegWrite records a register write committed at WB.
type RegWrite struct {
	PC  uint32
	Reg int
	Val uint32
}

func (RegWrite) isBehavior() {}

func (b RegWrite) String() string {
	return fmt.Sprintf("@%08x: $%2d <= %08x", b.PC, b.Reg, b.Val)
}

// MemWrite records a data-memory write committed at MEM.
type MemWrite struct {
	PC   uint32
	Addr uint32
	Val  uint32
}

func (MemWrite) isBehavior() {}

func (b MemWrite) String() string {
	return fmt.Sprintf("@%08x: *%08x <= %08x", b.PC, b.Addr, b.Val)
}

// Forward records a producer's pending result reaching a consumer
// before the producer reaches WB.
type Forward struct {
	PC        uint32
	Reg       int
	Val       uint32
	FromStage insts.Stage
	ToStage   insts.Stage
}

func (Forward) isBehavior() {}

func (b Forward) String() string {
	return fmt.Sprintf("@%08x: %s <--($%2d: %08x)-- %s", b.PC, b.ToStage, b.Reg, b.Val, b.FromStage)
}

// Stall records a cycle in which the ID-stage instruction could not
// proceed to EX because of an unresolved hazard.
type Stall struct {
	PC     uint32
	Stage  insts.Stage
	Reason string
}

func (Stall) isBehavior() {}

func (b Stall) String() string {
	return fmt.Sprintf("@%08x: %s ---x--> %s", b.PC, b.Stage, insts.Successor(b.Stage))
}

// Branch records a taken branch or jump resolved in ID.
type Branch struct {
	PC       uint32
	TargetPC uint32
	Taken    bool
}

func (Branch) isBehavior() {}

func (b Branch) String() string {
	return fmt.Sprintf("@%08x: PC <= %08x", b.PC, b.TargetPC)
}

// StageStatus records which instruction, if any, occupies a stage at
// the end of a cycle. One is emitted per occupied stage to build the
// per-cycle pipeline table.
type StageStatus struct {
	PC       uint32
	Stage    insts.Stage
	InstName string
	Disasm   string
	TNew     int
	IsBubble bool
}

func (StageStatus) isBehavior() {}

func (b StageStatus) String() string {
	return fmt.Sprintf("@%08x: %s: [%s] (t_new=%d)", b.PC, b.Stage, b.Disasm, b.TNew)
}
