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
	"sort"

	"github.com/holiman/bloomfilter/v2"
)

// maxPackedPosition is the largest program counter that fits the
// 15-bit-packed JumpdestArray encoding (§3). MaxContractSize must stay
// within this bound; the package init assertion below enforces it the
// same way the original analysis core asserts math.maxInt(u15) >=
// MAX_CONTRACT_SIZE.
const maxPackedPosition = 1<<15 - 1

func init() {
	if MaxContractSize > maxPackedPosition {
		panic("vm: MaxContractSize exceeds the 15-bit JumpdestArray domain")
	}
}

// JumpdestArray is a sorted, densely packed array of valid JUMPDEST
// program counters. Packing into int32 (rather than a raw []int) keeps
// the retained allocation small; the values themselves never exceed
// maxPackedPosition.
type JumpdestArray struct {
	positions []int32
	bloom     *bloomfilter.Filter
}

// FromBitmap scans code using an already-built CodeBitmap and collects
// every position that is both an opcode start and the JUMPDEST byte
// value. Building from the bitmap (rather than re-walking the raw
// bytecode) keeps the scanner a pure feeder pass over data the bitmap
// builder already computed.
func FromBitmap(code []byte, bitmap *CodeBitmap) *JumpdestArray {
	positions := make([]int32, 0, 64)
	for pc, b := range code {
		if b == byte(JUMPDEST) && bitmap.IsOpcodeStart(pc) {
			positions = append(positions, int32(pc))
		}
	}

	arr := &JumpdestArray{positions: positions}
	arr.bloom = buildBloom(positions)
	return arr
}

func buildBloom(positions []int32) *bloomfilter.Filter {
	n := uint64(len(positions))
	if n == 0 {
		n = 1
	}
	filter, err := bloomfilter.NewOptimal(n, 0.01)
	if err != nil {
		// A filter is a pure optimization; if parameters are rejected
		// (n==0 edge cases in the underlying library), fall back to the
		// binary search path only by leaving bloom nil.
		return nil
	}
	for _, p := range positions {
		filter.AddHash(bloomHash(p))
	}
	return filter
}

func bloomHash(pc int32) uint64 {
	return uint64(pc)*0x9E3779B97F4A7C15 + 1
}

// IsValidJumpdest reports whether pc is a valid jump target: present in
// the packed array. The bloom filter rejects the common case (pc is not
// a jumpdest at all) in O(1) without touching the sorted array; a
// filter hit still falls through to binary search since a bloom filter
// has no false negatives, only false positives.
func (a *JumpdestArray) IsValidJumpdest(pc int) bool {
	if pc < 0 || pc > math.MaxInt32 {
		return false
	}
	if a.bloom != nil && !a.bloom.ContainsHash(bloomHash(int32(pc))) {
		return false
	}
	i := sort.Search(len(a.positions), func(i int) bool { return a.positions[i] >= int32(pc) })
	return i < len(a.positions) && a.positions[i] == int32(pc)
}

// Len returns the number of valid jump destinations found.
func (a *JumpdestArray) Len() int { return len(a.positions) }

// At returns the i'th jump destination in increasing order.
func (a *JumpdestArray) At(i int) int { return int(a.positions[i]) }
