package insts

// Stage identifies a position in the five-stage pipeline, plus two
// sentinels used by timing metadata: BEGIN ("register not yet read")
// and END ("register never written"). Stages are totally ordered;
// Stage subtraction operates on the ordinal.
type Stage int8

// Pipeline stages in program order, plus the BEGIN/END sentinels.
const (
	StageBegin Stage = iota
	StageIF
	StageID
	StageEX
	StageMEM
	StageWB
	StageEnd
)

// stageNames gives the short textual form used in disassembly traces
// and behavior logs.
var stageNames = [...]string{
	StageBegin: "BEGIN",
	StageIF:    "IF",
	StageID:    "ID",
	StageEX:    "EX",
	StageMEM:   "MEM",
	StageWB:    "WB",
	StageEnd:   "END",
}

// String returns the short name of the stage, e.g. "EX".
func (s Stage) String() string {
	if int(s) < 0 || int(s) >= len(stageNames) {
		return "?"
	}
	return stageNames[s]
}

// successor maps each stage to the stage it advances to next cycle.
var successor = map[Stage]Stage{
	StageBegin: StageIF,
	StageIF:    StageID,
	StageID:    StageEX,
	StageEX:    StageMEM,
	StageMEM:   StageWB,
	StageWB:    StageEnd,
}

// Successor returns the stage that follows s in the pipeline's
// monotone advance. Successor(END) is undefined and returns END.
func Successor(s Stage) Stage {
	if next, ok := successor[s]; ok {
		return next
	}
	return StageEnd
}

// Remaining returns the number of additional stages before the
// destination register tied to tnew becomes available, measured from
// cur. A negative difference (the value is already available or was
// never going to be written) clamps to zero.
func Remaining(tnew, cur Stage) int {
	r := int(tnew) - int(cur)
	if r < 0 {
		return 0
	}
	return r
}
