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
	"testing"

	"github.com/ethanvm/evmcore/params"
)

// =============================================================================
// Table Construction Tests
// =============================================================================

func TestFrontierTableHasNoUndefinedCoreOpcodes(t *testing.T) {
	tbl := newFrontierInstructionSet()
	core := []OpCode{STOP, ADD, MUL, JUMP, JUMPI, JUMPDEST, PUSH1, DUP1, SWAP1, LOG0, CALL, RETURN}
	for _, op := range core {
		if tbl[op].Undefined {
			t.Errorf("%s should be defined in Frontier", op)
		}
	}
}

func TestPush0UndefinedBeforeShanghai(t *testing.T) {
	tbl := newLondonInstructionSet()
	if !tbl[PUSH0].Undefined {
		t.Error("PUSH0 should be undefined before Shanghai")
	}
	tbl = newShanghaiInstructionSet()
	if tbl[PUSH0].Undefined {
		t.Error("PUSH0 should be defined from Shanghai onward")
	}
}

func TestTransientStorageUndefinedBeforeCancun(t *testing.T) {
	tbl := newShanghaiInstructionSet()
	if !tbl[TLOAD].Undefined || !tbl[TSTORE].Undefined {
		t.Error("TLOAD/TSTORE should be undefined before Cancun")
	}
	tbl = newCancunInstructionSet()
	if tbl[TLOAD].Undefined || tbl[TSTORE].Undefined {
		t.Error("TLOAD/TSTORE should be defined from Cancun onward")
	}
}

func TestPushStackDeltaMatchesPushSize(t *testing.T) {
	tbl := newFrontierInstructionSet()
	for i := 0; i < 32; i++ {
		meta := tbl[PUSH1+OpCode(i)]
		if meta.PushSize != i+1 {
			t.Errorf("PUSH%d metadata PushSize = %d, want %d", i+1, meta.PushSize, i+1)
		}
		if meta.StackDelta != 1 {
			t.Errorf("PUSH%d should push exactly one stack slot", i+1)
		}
	}
}

func TestTerminatorsFlagged(t *testing.T) {
	tbl := newCancunInstructionSet()
	for _, op := range []OpCode{STOP, JUMP, RETURN, REVERT, SELFDESTRUCT, INVALID} {
		if !tbl[op].Terminator {
			t.Errorf("%s should be a terminator", op)
		}
	}
	if tbl[JUMPI].Terminator {
		t.Error("JUMPI is handled as a block-closing opcode but is not itself a Terminator flag in this table (fall-through continues)")
	}
}

// =============================================================================
// Cache Tests
// =============================================================================

func TestGetCachedJumpTableReturnsSameTable(t *testing.T) {
	r := params.Rules{IsCancun: true}
	a := GetCachedJumpTable(r)
	b := GetCachedJumpTable(r)
	if a[ADD] != b[ADD] {
		t.Error("repeated GetCachedJumpTable calls for the same rules should return the same underlying metadata pointers")
	}
}

func TestPrewarmJumpTablesDoesNotPanic(t *testing.T) {
	PrewarmJumpTables()
}

func TestNewInstructionSetSelectsNewestActiveFork(t *testing.T) {
	r := params.Rules{IsHomestead: true, IsByzantium: true}
	tbl := NewInstructionSet(r)
	if tbl[REVERT].Undefined {
		t.Error("Byzantium rules should define REVERT")
	}
	if !tbl[PUSH0].Undefined {
		t.Error("Byzantium rules should not define PUSH0")
	}
}
