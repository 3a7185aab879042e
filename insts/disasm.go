package insts

import "fmt"

// Disassemble renders an instruction in the textual form used by
// behavior and trace logs. pc is the address the instruction was
// fetched from; jal needs it to render its fully-computed absolute
// target rather than the raw jump-target field.
func (i *Instruction) Disassemble(pc uint32) string {
	switch i.Kind {
	case KindAdd:
		return fmt.Sprintf("add $%d, $%d, $%d", i.Rd(), i.Rs(), i.Rt())
	case KindSub:
		return fmt.Sprintf("sub $%d, $%d, $%d", i.Rd(), i.Rs(), i.Rt())
	case KindLui:
		return fmt.Sprintf("lui $%d, 0x%x", i.Rt(), i.Imm16())
	case KindOri:
		return fmt.Sprintf("ori $%d, $%d, 0x%x", i.Rt(), i.Rs(), i.Imm16())
	case KindLw:
		return fmt.Sprintf("lw $%d, %d($%d)", i.Rt(), i.Imm16Signed(), i.Rs())
	case KindSw:
		return fmt.Sprintf("sw $%d, %d($%d)", i.Rt(), i.Imm16Signed(), i.Rs())
	case KindBeq:
		return fmt.Sprintf("beq $%d, $%d, %d", i.Rs(), i.Rt(), i.Imm16Signed())
	case KindJr:
		return fmt.Sprintf("jr $%d", i.Rs())
	case KindJal:
		target := (i.Imm26() << 2) | ((pc + 4) & 0xF0000000)
		return fmt.Sprintf("jal 0x%08x", target)
	case KindNop:
		return "nop"
	default:
		return fmt.Sprintf("unknown(0x%08x)", i.Raw)
	}
}

// kindNames gives the short lowercase mnemonic for each Kind, used by
// pipeline snapshots to name the instruction occupying a stage
// independent of its fully rendered disassembly.
var kindNames = [...]string{
	KindAdd: "add",
	KindSub: "sub",
	KindLui: "lui",
	KindOri: "ori",
	KindLw:  "lw",
	KindSw:  "sw",
	KindBeq: "beq",
	KindJr:  "jr",
	KindJal: "jal",
	KindNop: "nop",
}

// KindName returns the short lowercase mnemonic for the instruction's kind.
func (i *Instruction) KindName() string {
	return kindNames[i.Kind]
}
