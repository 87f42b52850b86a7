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

import "testing"

// =============================================================================
// Code Bitmap Tests
// =============================================================================

func TestCodeBitmapAllOpcodesWhenNoPush(t *testing.T) {
	code := []byte{byte(ADD), byte(MUL), byte(STOP)}
	b := NewCodeBitmap(code)
	for pc := range code {
		if !b.IsOpcodeStart(pc) {
			t.Errorf("pc %d should be an opcode start", pc)
		}
	}
}

func TestCodeBitmapClearsPushData(t *testing.T) {
	// PUSH2 0x01 0x02, STOP
	code := []byte{byte(PUSH2), 0x01, 0x02, byte(STOP)}
	b := NewCodeBitmap(code)
	if !b.IsOpcodeStart(0) {
		t.Error("pc 0 (PUSH2) should be an opcode start")
	}
	if b.IsOpcodeStart(1) || b.IsOpcodeStart(2) {
		t.Error("pc 1,2 are PUSH2 immediate data, should not be opcode starts")
	}
	if !b.IsOpcodeStart(3) {
		t.Error("pc 3 (STOP) should be an opcode start")
	}
}

func TestCodeBitmapJumpdestInsidePushData(t *testing.T) {
	// PUSH1 0x5B (the JUMPDEST byte value, but it's push data here), STOP
	code := []byte{byte(PUSH1), 0x5B, byte(STOP)}
	b := NewCodeBitmap(code)
	if b.IsOpcodeStart(1) {
		t.Error("the JUMPDEST-valued byte at pc 1 is PUSH data, not an opcode start")
	}
}

func TestCodeBitmapTruncatedPush(t *testing.T) {
	// PUSH2 with only one data byte before end of code.
	code := []byte{byte(PUSH2), 0x01}
	b := NewCodeBitmap(code)
	if b.IsOpcodeStart(1) {
		t.Error("pc 1 is truncated PUSH2 data, should not be an opcode start")
	}
	if b.Len() != 1 {
		t.Errorf("Len() = %d, want 1 (only pc 0 is an opcode start)", b.Len())
	}
}

func TestCodeBitmapOutOfRange(t *testing.T) {
	b := NewCodeBitmap([]byte{byte(STOP)})
	if b.IsOpcodeStart(-1) || b.IsOpcodeStart(5) {
		t.Error("out-of-range positions should never be opcode starts")
	}
}

func TestCodeBitmapEmptyCode(t *testing.T) {
	b := NewCodeBitmap(nil)
	if b.Len() != 0 {
		t.Errorf("empty code should have zero opcode starts, got %d", b.Len())
	}
}
