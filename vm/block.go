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

// BlockAnalysis accumulates the gas and stack requirements of one basic
// block as the emitter walks its opcodes. It is transient: Close folds it
// into the block_begin payload reserved at the block's head and the
// accumulator is discarded.
type BlockAnalysis struct {
	GasCost         uint64
	StackReq        int
	StackMaxGrowth  int
	StackChange     int
	BeginBlockIndex int
}

// NewBlockAnalysis starts a fresh accumulator for the block whose
// block_begin instruction was reserved at beginBlockIndex.
func NewBlockAnalysis(beginBlockIndex int) BlockAnalysis {
	return BlockAnalysis{BeginBlockIndex: beginBlockIndex}
}

// Observe folds one opcode's metadata into the accumulator, following
// the four-step rule: charge constant gas, track the deepest stack
// height required relative to block entry, apply the opcode's net stack
// delta, and track the highest stack growth reached.
//
// The dynamic component of a dynamic-gas opcode's cost is never known at
// analysis time and is not added here; only its constant_gas
// contributes, same as any other opcode. The emitter isolates dynamic-gas
// opcodes into single-instruction blocks so this never mixes dynamic
// pricing with unrelated instructions (§4.5).
func (b *BlockAnalysis) Observe(meta *OperationMetadata) {
	b.GasCost += meta.ConstantGas

	req := meta.MinStack - b.StackChange
	if req > b.StackReq {
		b.StackReq = req
	}

	b.StackChange += meta.StackDelta
	if b.StackChange > b.StackMaxGrowth {
		b.StackMaxGrowth = b.StackChange
	}
}

// Close finalizes the accumulator into the three values stamped on the
// block's block_begin instruction, clamping the two stack fields to zero
// (a block that never goes net-negative on entry requirement or growth
// reports 0, not a negative number).
func (b *BlockAnalysis) Close() (gasCost uint64, stackReq uint16, stackMaxGrowth uint16) {
	req := b.StackReq
	if req < 0 {
		req = 0
	}
	growth := b.StackMaxGrowth
	if growth < 0 {
		growth = 0
	}
	return b.GasCost, uint16(req), uint16(growth)
}
