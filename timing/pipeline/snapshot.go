package pipeline

import "mips5sim/insts"

// Snapshot is the observable state emitted once per cycle: architectural
// register and memory state, what occupies each pipeline stage, and the
// behaviors logged during that cycle.
type Snapshot struct {
	Cycle     uint64
	PC        uint32
	GPR       [32]uint32
	Memory    map[uint32]uint32
	Pipeline  map[insts.Stage]*StageStatus
	Behaviors []Behavior
}

var displayStages = [...]insts.Stage{
	insts.StageIF, insts.StageID, insts.StageEX, insts.StageMEM, insts.StageWB,
}
