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

	"github.com/google/uuid"

	"github.com/ethanvm/evmcore/internal/log"
)

const (
	// MaxContractSize is the largest bytecode length Analyze accepts.
	MaxContractSize = 24576

	// MaxInstructions bounds the number of entries Analyze will emit.
	// The instruction index space is a uint16; SentinelInstructionIndex
	// is reserved, so the real usable range is [0, SentinelInstructionIndex).
	MaxInstructions = 65536

	// decoderSafetyCap guards against a decoder bug producing
	// non-advancing iterations: no correct input ever approaches it.
	decoderSafetyCap = 2 * MaxContractSize
)

// SentinelInstructionIndex marks a program counter that has no mapped
// instruction (PUSH immediate data, or simply unreached).
const SentinelInstructionIndex = math.MaxUint16

// JumpKind marks whether an instruction is a dynamic jump site requiring
// runtime resolution.
type JumpKind uint8

const (
	JumpKindNone JumpKind = iota
	JumpKindJump
	JumpKindJumpI
)

// CodeAnalysis is the immutable artifact produced by Analyze: a linear
// instruction stream plus the auxiliary tables an interpreter needs to
// execute it without re-deriving block boundaries or jump targets.
type CodeAnalysis struct {
	Instructions        InstructionStream
	PCToBlockStart      []uint16 // indexed by pc; SentinelInstructionIndex if unmapped
	InstructionToPC     []int32  // indexed by instruction index; -1 if synthetic
	InstructionJumpKind []JumpKind
	Jumpdest            *JumpdestArray

	code []byte
}

// Code returns the borrowed bytecode this analysis was built from.
func (a *CodeAnalysis) Code() []byte { return a.code }

// CodeLen returns the length of the borrowed bytecode.
func (a *CodeAnalysis) CodeLen() int { return len(a.code) }

// IsValidJumpdest reports whether pc is a valid JUMPDEST in this
// contract: present in the jumpdest array and not shadowed by PUSH data
// (the array is itself already built only from non-PUSH-data positions).
func (a *CodeAnalysis) IsValidJumpdest(pc int) bool {
	return a.Jumpdest.IsValidJumpdest(pc)
}

// BlockForPC returns the instruction index of the block_begin governing
// pc, and whether pc is mapped at all.
func (a *CodeAnalysis) BlockForPC(pc int) (int, bool) {
	if pc < 0 || pc >= len(a.PCToBlockStart) {
		return 0, false
	}
	idx := a.PCToBlockStart[pc]
	if idx == SentinelInstructionIndex {
		return 0, false
	}
	return int(idx), true
}

// Analyze decodes code under the given fork's jump table and produces a
// CodeAnalysis. It runs to completion synchronously; there are no
// suspension points and no partial results on error (§5). Every exit
// path that has allocated intermediate state releases it before
// returning, including the error paths below.
func Analyze(code []byte, table JumpTable) (*CodeAnalysis, error) {
	// A fresh correlation id per call lets Debug lines from concurrent
	// analyses running in the same process be told apart in shared log
	// output; it is never consulted for control flow.
	sessionLog := log.New("analysis_id", uuid.NewString())

	if len(code) > MaxContractSize {
		sessionLog.Debug("rejecting oversize contract", "len", len(code), "max", MaxContractSize)
		return nil, ErrCodeTooLarge
	}

	bitmap := NewCodeBitmap(code)
	jumpdest := FromBitmap(code, bitmap)

	result, err := emit(code, table)
	if err != nil {
		sessionLog.Debug("analysis aborted during emission", "err", err)
		return nil, err
	}

	pcToBlockStart := resolvePCToBlockStart(result)
	putPCInstructionBuffer(result.pcToInstruction)
	resolveJumps(code, result, jumpdest)

	return &CodeAnalysis{
		Instructions:        result.instructions,
		PCToBlockStart:      pcToBlockStart,
		InstructionToPC:     result.pcOfInstruction,
		InstructionJumpKind: result.jumpKind,
		Jumpdest:            jumpdest,
		code:                code,
	}, nil
}

// Acquire is an alias for Analyze named to match the scoped-acquisition
// vocabulary of §4.7: callers that want the "acquire/release" pairing
// explicit in their own code can write Acquire/Release instead of
// Analyze/Release without any behavioral difference.
func Acquire(code []byte, table JumpTable) (*CodeAnalysis, error) {
	return Analyze(code, table)
}

// Release drops a()'s retained allocations. Go's garbage collector
// reclaims the backing arrays once the last reference is gone; Release
// exists so callers that pool CodeAnalysis values (see AnalysisCache)
// have one place to sever those references and make the memory
// reclaimable immediately instead of waiting on the cache entry's own
// eviction.
func (a *CodeAnalysis) Release() {
	a.Instructions = nil
	a.PCToBlockStart = nil
	a.InstructionToPC = nil
	a.InstructionJumpKind = nil
	a.Jumpdest = nil
	// a.code is a borrow; it is never released here (§4.7).
}
