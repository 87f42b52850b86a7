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
// JumpdestArray Tests
// =============================================================================

func TestFromBitmapFindsJumpdest(t *testing.T) {
	code := []byte{byte(JUMPDEST), byte(PUSH1), 0x01, byte(STOP)}
	arr := FromBitmap(code, NewCodeBitmap(code))
	if arr.Len() != 1 || arr.At(0) != 0 {
		t.Fatalf("expected one jumpdest at pc 0, got len=%d", arr.Len())
	}
	if !arr.IsValidJumpdest(0) {
		t.Error("pc 0 should be a valid jumpdest")
	}
	if arr.IsValidJumpdest(1) {
		t.Error("pc 1 (PUSH1) should not be a valid jumpdest")
	}
}

func TestFromBitmapSkipsJumpdestInPushData(t *testing.T) {
	// PUSH1 0x5B, STOP: the JUMPDEST byte value at pc 1 is push data.
	code := []byte{byte(PUSH1), 0x5B, byte(STOP)}
	arr := FromBitmap(code, NewCodeBitmap(code))
	if arr.Len() != 0 {
		t.Fatalf("expected no valid jumpdests, got %d", arr.Len())
	}
	if arr.IsValidJumpdest(1) {
		t.Error("pc 1 is PUSH data, not a valid jumpdest even though its byte value is 0x5B")
	}
}

func TestFromBitmapStrictlyIncreasing(t *testing.T) {
	code := []byte{byte(JUMPDEST), byte(JUMPDEST), byte(STOP), byte(JUMPDEST)}
	arr := FromBitmap(code, NewCodeBitmap(code))
	for i := 1; i < arr.Len(); i++ {
		if arr.At(i) <= arr.At(i-1) {
			t.Fatalf("positions not strictly increasing at index %d", i)
		}
	}
}

func TestIsValidJumpdestOutOfRange(t *testing.T) {
	code := []byte{byte(JUMPDEST)}
	arr := FromBitmap(code, NewCodeBitmap(code))
	if arr.IsValidJumpdest(-1) || arr.IsValidJumpdest(1000) {
		t.Error("out-of-range positions should never validate")
	}
}

func TestIsValidJumpdestEmptyArray(t *testing.T) {
	code := []byte{byte(STOP)}
	arr := FromBitmap(code, NewCodeBitmap(code))
	if arr.IsValidJumpdest(0) {
		t.Error("code with no JUMPDEST bytes should validate nothing")
	}
}
