// Package insts provides decoding and static timing metadata for the
// simulated 32-bit MIPS-like instruction set.
//
// It supports the ten instruction kinds this simulator implements:
//   - add, sub: R-type ALU ops
//   - lui, ori: immediate ALU ops
//   - lw, sw: word load/store with a signed 16-bit offset
//   - beq: equality branch, resolved in ID
//   - jr: register jump, resolved in ID
//   - jal: jump-and-link, resolved in ID
//   - nop: the all-zero no-op, and the decode fallback for unknown words
//
// Usage:
//
//	decoder := insts.NewDecoder()
//	inst := decoder.Decode(0x00221820) // add $3, $1, $2
package insts
