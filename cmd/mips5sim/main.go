package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mips5sim/loader"
	"mips5sim/timing/pipeline"
	"mips5sim/trace"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "mips5sim",
		Short: "Cycle-accurate five-stage pipelined MIPS-like simulator",
	}

	var maxCycles uint64
	var verbose bool

	runCmd := &cobra.Command{
		Use:   "run <program>",
		Short: "Run a program to completion and print final register state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cpu, err := buildCPU(args[0])
			if err != nil {
				return err
			}

			cpu.Run(maxCycles)

			printer := trace.NewPrinter()
			if len(cpu.History) > 0 {
				printer.PrintFinal(cpu.History[len(cpu.History)-1])
			}
			if !cpu.Halted() {
				fmt.Fprintf(os.Stderr, "did not halt within %d cycles\n", maxCycles)
			}
			return nil
		},
	}
	runCmd.Flags().Uint64Var(&maxCycles, "max-cycles", 100000, "Maximum cycles to simulate before giving up")

	traceCmd := &cobra.Command{
		Use:   "trace <program>",
		Short: "Run a program, printing every cycle's behavior log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cpu, err := buildCPU(args[0])
			if err != nil {
				return err
			}

			var opts []trace.PrinterOption
			if verbose {
				opts = append(opts, trace.WithPipelineView())
			}
			printer := trace.NewPrinter(opts...)

			for !cpu.Halted() && uint64(len(cpu.History)) < maxCycles {
				cpu.Step()
				printer.Print(cpu.History[len(cpu.History)-1])
			}
			return nil
		},
	}
	traceCmd.Flags().Uint64Var(&maxCycles, "max-cycles", 100000, "Maximum cycles to simulate before giving up")
	traceCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Also print per-stage pipeline occupancy")

	stepCmd := &cobra.Command{
		Use:   "step <program> <cycles>",
		Short: "Advance a fixed number of cycles and print the resulting snapshot",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cpu, err := buildCPU(args[0])
			if err != nil {
				return err
			}

			var n uint64
			if _, err := fmt.Sscanf(args[1], "%d", &n); err != nil {
				return fmt.Errorf("invalid cycle count %q: %w", args[1], err)
			}

			cpu.Run(n)

			printer := trace.NewPrinter(trace.WithPipelineView())
			if len(cpu.History) > 0 {
				printer.Print(cpu.History[len(cpu.History)-1])
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, traceCmd, stepCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildCPU(path string) (*pipeline.CPU, error) {
	words, err := loader.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return pipeline.NewCPU(words), nil
}
