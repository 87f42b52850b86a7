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

import "sync"

// pcInstructionBufferPool reuses the transient pc->instruction scratch
// buffer across Analyze calls. It is sized to the full MaxContractSize
// domain so the common case never reallocates; larger requests allocate
// a fresh buffer, which putPCInstructionBuffer then returns to the pool
// like any other.
var pcInstructionBufferPool = sync.Pool{
	New: func() interface{} {
		buf := make([]uint16, 0, MaxContractSize)
		return &buf
	},
}

func getPCInstructionBuffer(n int) []uint16 {
	ptr := pcInstructionBufferPool.Get().(*[]uint16)
	buf := *ptr
	if cap(buf) < n {
		buf = make([]uint16, n)
	} else {
		buf = buf[:n]
	}
	for i := range buf {
		buf[i] = SentinelInstructionIndex
	}
	return buf
}

func putPCInstructionBuffer(buf []uint16) {
	buf = buf[:0]
	pcInstructionBufferPool.Put(&buf)
}

// instructionBufferPool reuses the emitter's growable instruction
// buffer. Analysis shrinks the final result to an exactly-sized slice
// via make and copy before returning, so the oversized backing array this
// pool hands out never escapes into a retained CodeAnalysis.
var instructionBufferPool = sync.Pool{
	New: func() interface{} {
		buf := make(InstructionStream, 0, 256)
		return &buf
	},
}

func getInstructionBuffer() InstructionStream {
	ptr := instructionBufferPool.Get().(*InstructionStream)
	return (*ptr)[:0]
}

func putInstructionBuffer(buf InstructionStream) {
	buf = buf[:0]
	instructionBufferPool.Put(&buf)
}

// shrinkToFit copies buf into an exactly-sized slice and returns its
// backing array to the pool, matching the "pre-allocated and shrunk to
// fit" instruction buffer described as a transient resource.
func shrinkToFit(buf InstructionStream) InstructionStream {
	out := make(InstructionStream, len(buf))
	copy(out, buf)
	putInstructionBuffer(buf)
	return out
}
