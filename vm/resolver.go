// Copyright 2022-2026 The evmcore Authors
// This file is part of the evmcore library.
//
// The evmcore library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The evmcore library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the evmcore library. If not, see <http://www.gnu.org/licenses/>.

package vm

import (
	"math"

	"github.com/holiman/uint256"
)

// resolvePCToBlockStart is jump-resolution Pass A: derive, for every
// opcode-start program counter, the instruction index of the block_begin
// that governs it. It is a single forward pass over the already-emitted
// stream, tracking the most recent block_begin seen.
func resolvePCToBlockStart(result *emissionResult) []uint16 {
	blockOfInstruction := make([]uint16, len(result.instructions))
	current := uint16(SentinelInstructionIndex)
	for i, inst := range result.instructions {
		if inst.Kind == KindBlockBegin {
			current = uint16(i)
		}
		blockOfInstruction[i] = current
	}

	pcToBlockStart := make([]uint16, len(result.pcToInstruction))
	for pc, instrIdx := range result.pcToInstruction {
		if instrIdx == SentinelInstructionIndex {
			pcToBlockStart[pc] = SentinelInstructionIndex
			continue
		}
		pcToBlockStart[pc] = blockOfInstruction[instrIdx]
	}
	return pcToBlockStart
}

// resolveJumps is jump-resolution Pass B: for every JUMP/JUMPI site,
// attempt to read an immediate destination out of the preceding PUSH and
// validate it against the jumpdest table. On success the jump is
// rewritten to jump_pc/conditional_jump_pc and the PUSH that fed it is
// neutralized in place; on failure the site is left as-emitted
// (jump_unresolved/conditional_jump_unresolved), which is a valid
// outcome, not an error (§4.6).
func resolveJumps(code []byte, result *emissionResult, jumpdest *JumpdestArray) {
	for i, kind := range result.jumpKind {
		if kind == JumpKindNone {
			continue
		}
		if i == 0 {
			continue
		}
		prev := result.instructions[i-1]
		if prev.Kind != KindWord {
			continue
		}
		dest, ok := wordAsUint16(code, prev)
		if !ok || !jumpdest.IsValidJumpdest(int(dest)) {
			continue
		}

		if kind == JumpKindJump {
			result.instructions[i] = Instruction{Kind: KindJumpPC, JumpDest: dest}
		} else {
			result.instructions[i] = Instruction{Kind: KindConditionalJumpPC, JumpDest: dest}
		}
		result.instructions[i-1] = None()
	}
}

// wordAsUint16 reads the immediate referenced by a KindWord instruction
// as a 16-bit value, reporting false if it does not fit (§4.6 step 2).
// Parsing through uint256.Int rather than hand-rolled byte arithmetic
// keeps the 256-bit decode identical to what an interpreter does when it
// actually pushes the same immediate onto the stack.
func wordAsUint16(code []byte, inst Instruction) (uint16, bool) {
	start := int(inst.WordStart)
	end := start + int(inst.WordLen)
	if end > len(code) {
		end = len(code)
	}
	if end < start {
		end = start
	}
	z := new(uint256.Int)
	z.SetBytes(code[start:end])
	if !z.IsUint64() {
		return 0, false
	}
	v := z.Uint64()
	if v > math.MaxUint16 {
		return 0, false
	}
	return uint16(v), true
}
