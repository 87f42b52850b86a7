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

import "github.com/RoaringBitmap/roaring"

// CodeBitmap marks which byte positions in a contract's bytecode are
// opcode starts versus PUSH immediate data. It is built in a single
// forward pass and consulted by the JUMPDEST scanner (FromBitmap) to tell
// a JUMPDEST byte from a JUMPDEST value sitting inside a PUSH payload; the
// jump resolver then validates targets against the resulting
// JumpdestArray.
//
// The set is backed by a roaring bitmap rather than a raw []bool: most
// contracts are dominated by long runs of either opcode bytes or PUSH
// payload bytes, which roaring's run-length containers compress well
// without giving up O(1) membership tests.
type CodeBitmap struct {
	set     *roaring.Bitmap
	codeLen int
}

// NewCodeBitmap builds the code/data bitmap for code. Every byte starts
// marked as an opcode; for every PUSH-N encountered, the N bytes
// following it are cleared. A PUSH-N whose payload runs past the end of
// code only clears up to codeLen, matching the decoder's zero-padding of
// truncated immediates (§4.1).
func NewCodeBitmap(code []byte) *CodeBitmap {
	set := roaring.New()
	if len(code) > 0 {
		set.AddRange(0, uint64(len(code)))
	}

	for pc := 0; pc < len(code); {
		op := OpCode(code[pc])
		n := op.PushSize()
		if n == 0 {
			pc++
			continue
		}
		start := pc + 1
		end := start + n
		if end > len(code) {
			end = len(code)
		}
		if end > start {
			set.RemoveRange(uint64(start), uint64(end))
		}
		pc += 1 + n
	}

	return &CodeBitmap{set: set, codeLen: len(code)}
}

// IsOpcodeStart reports whether pc is an opcode byte (as opposed to PUSH
// immediate data). Positions at or beyond codeLen are never opcode
// starts.
func (b *CodeBitmap) IsOpcodeStart(pc int) bool {
	if pc < 0 || pc >= b.codeLen {
		return false
	}
	return b.set.Contains(uint32(pc))
}

// Len returns the number of opcode-start positions recorded, mainly for
// diagnostics and tests.
func (b *CodeBitmap) Len() int {
	return int(b.set.GetCardinality())
}
