package insts

// Kind identifies one of the ten instruction kinds this simulator
// implements.
type Kind uint8

// Supported instruction kinds.
const (
	KindAdd Kind = iota
	KindSub
	KindLui
	KindOri
	KindLw
	KindSw
	KindBeq
	KindJr
	KindJal
	KindNop
)

// noDest marks an instruction kind that writes no destination
// register.
const noDest = -1

// linkReg is the destination register jal always writes, regardless
// of encoding ($31, the link register).
const linkReg = 31

// meta holds the static timing metadata and writer-register rule
// attached to a kind at registration: when each source operand is
// consumed (tuseRS/tuseRT) and when the destination becomes available
// to forwarding (tnew).
type meta struct {
	kind   Kind
	tuseRS Stage
	tuseRT Stage
	tnew   Stage
	// wreg returns the destination register for an instruction of this
	// kind, or noDest if it writes nothing.
	wreg func(i *Instruction) int
}

// metaTable holds one meta entry per Kind, indexed by Kind.
var metaTable = [...]meta{
	KindAdd: {kind: KindAdd, tuseRS: StageEX, tuseRT: StageEX, tnew: StageMEM, wreg: rdWriter},
	KindSub: {kind: KindSub, tuseRS: StageEX, tuseRT: StageEX, tnew: StageMEM, wreg: rdWriter},
	KindLui: {kind: KindLui, tuseRS: StageBegin, tuseRT: StageBegin, tnew: StageMEM, wreg: rtWriter},
	KindOri: {kind: KindOri, tuseRS: StageEX, tuseRT: StageBegin, tnew: StageEX, wreg: rtWriter},
	KindLw:  {kind: KindLw, tuseRS: StageEX, tuseRT: StageBegin, tnew: StageWB, wreg: rtWriter},
	KindSw:  {kind: KindSw, tuseRS: StageEX, tuseRT: StageMEM, tnew: StageEnd, wreg: noWriter},
	KindBeq: {kind: KindBeq, tuseRS: StageID, tuseRT: StageID, tnew: StageEnd, wreg: noWriter},
	KindJr:  {kind: KindJr, tuseRS: StageID, tuseRT: StageBegin, tnew: StageEnd, wreg: noWriter},
	KindJal: {kind: KindJal, tuseRS: StageBegin, tuseRT: StageBegin, tnew: StageEX, wreg: linkWriter},
	KindNop: {kind: KindNop, tuseRS: StageBegin, tuseRT: StageBegin, tnew: StageEnd, wreg: noWriter},
}

func rdWriter(i *Instruction) int   { return i.Rd() }
func rtWriter(i *Instruction) int   { return i.Rt() }
func noWriter(i *Instruction) int   { return noDest }
func linkWriter(i *Instruction) int { return linkReg }

// Instruction is an immutable decoded instruction: the raw 32-bit
// encoding, its bit fields, and the static timing metadata attached to
// its kind at registration.
type Instruction struct {
	Raw  uint32
	Kind Kind
}

// Opcode returns bits [31:26] of the raw encoding.
func (i *Instruction) Opcode() uint32 { return (i.Raw >> 26) & 0x3F }

// Rs returns bits [25:21], the first source register.
func (i *Instruction) Rs() int { return int((i.Raw >> 21) & 0x1F) }

// Rt returns bits [20:16], the second source register (or, for
// immediate kinds, the destination).
func (i *Instruction) Rt() int { return int((i.Raw >> 16) & 0x1F) }

// Rd returns bits [15:11], the R-type destination register.
func (i *Instruction) Rd() int { return int((i.Raw >> 11) & 0x1F) }

// Shamt returns bits [10:6], the shift amount.
func (i *Instruction) Shamt() uint32 { return (i.Raw >> 6) & 0x1F }

// Funct returns bits [5:0], the R-type function code.
func (i *Instruction) Funct() uint32 { return i.Raw & 0x3F }

// Imm16 returns bits [15:0] as an unsigned 16-bit immediate.
func (i *Instruction) Imm16() uint32 { return i.Raw & 0xFFFF }

// Imm16Signed returns bits [15:0] sign-extended to a 32-bit value.
func (i *Instruction) Imm16Signed() int32 {
	v := int32(i.Raw & 0xFFFF)
	if v&0x8000 != 0 {
		v -= 1 << 16
	}
	return v
}

// Imm26 returns bits [25:0], the jump target field.
func (i *Instruction) Imm26() uint32 { return i.Raw & 0x3FFFFFF }

// TuseRS returns the earliest stage at which rs must be live.
func (i *Instruction) TuseRS() Stage { return metaTable[i.Kind].tuseRS }

// TuseRT returns the earliest stage at which rt must be live.
func (i *Instruction) TuseRT() Stage { return metaTable[i.Kind].tuseRT }

// Tnew returns the stage at which this instruction's destination
// register becomes available to forwarding.
func (i *Instruction) Tnew() Stage { return metaTable[i.Kind].tnew }

// Remaining returns the number of additional stages before this
// instruction's destination becomes available, given it currently sits
// in cur.
func (i *Instruction) Remaining(cur Stage) int {
	return Remaining(i.Tnew(), cur)
}

// WriteReg returns the destination register this instruction writes,
// or noDest (-1) if it writes nothing.
func (i *Instruction) WriteReg() int {
	return metaTable[i.Kind].wreg(i)
}

// IsHalt reports whether this is the halt sentinel, beq $0, $0, -1
// (encoding 0x1000ffff). The halt check happens at WB, not at decode.
func (i *Instruction) IsHalt() bool {
	return i.Raw == 0x1000FFFF
}
