// Package trace renders per-cycle snapshots and behavior logs as the
// textual forms a user watching the simulator run would read.
package trace

import (
	"fmt"
	"io"
	"os"

	"mips5sim/insts"
	"mips5sim/timing/pipeline"
)

// Printer writes snapshots to a configured sink, one line per
// behavior and, optionally, one pipeline-occupancy line per stage.
type Printer struct {
	out          io.Writer
	showPipeline bool
}

// PrinterOption configures a Printer.
type PrinterOption func(*Printer)

// WithWriter sets the sink snapshots are rendered to. The default is
// os.Stdout.
func WithWriter(w io.Writer) PrinterOption {
	return func(p *Printer) { p.out = w }
}

// WithPipelineView additionally renders a StageStatus-style line for
// every occupied stage, not just the behavior log.
func WithPipelineView() PrinterOption {
	return func(p *Printer) { p.showPipeline = true }
}

// NewPrinter creates a Printer writing to os.Stdout unless overridden
// by WithWriter.
func NewPrinter(opts ...PrinterOption) *Printer {
	p := &Printer{out: os.Stdout}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Print renders one snapshot: its cycle header, every logged
// behavior, and (if WithPipelineView was given) a status line per
// occupied stage.
func (p *Printer) Print(snap pipeline.Snapshot) {
	fmt.Fprintf(p.out, "cycle %d: pc=%08x\n", snap.Cycle, snap.PC)

	for _, b := range snap.Behaviors {
		fmt.Fprintf(p.out, "  %s\n", b)
	}

	if !p.showPipeline {
		return
	}
	for _, s := range []insts.Stage{insts.StageIF, insts.StageID, insts.StageEX, insts.StageMEM, insts.StageWB} {
		status := snap.Pipeline[s]
		if status == nil {
			fmt.Fprintf(p.out, "  %s: (empty)\n", s)
			continue
		}
		fmt.Fprintf(p.out, "  %s\n", status)
	}
}

// PrintFinal renders the final register state at halt, one line per
// non-zero register.
func (p *Printer) PrintFinal(snap pipeline.Snapshot) {
	fmt.Fprintf(p.out, "halted at cycle %d, pc=%08x\n", snap.Cycle, snap.PC)
	for reg, val := range snap.GPR {
		if val == 0 {
			continue
		}
		fmt.Fprintf(p.out, "  $%d = %08x\n", reg, val)
	}
}
