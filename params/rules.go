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

// Package params describes the fork-activation flags that select which
// opcode set and gas schedule the analysis core should use for a given
// piece of bytecode. It carries no chain configuration, block numbers, or
// consensus parameters — only the boolean "is this fork active" surface
// the rest of the module actually consumes.
package params

// Rules is the set of hard-fork activation flags in effect when analyzing
// a contract. Each flag is monotonic within a fork's history: a later fork
// flag being true does not imply earlier ones are also true unless the
// caller sets them, mirroring how go-ethereum-derived nodes compute rules
// from a chain config and a block number before calling into the VM.
type Rules struct {
	IsHomestead        bool
	IsTangerineWhistle bool
	IsSpuriousDragon   bool
	IsByzantium        bool
	IsConstantinople   bool
	IsPetersburg       bool
	IsIstanbul         bool
	IsBerlin           bool
	IsLondon           bool
	IsShanghai         bool
	IsCancun           bool
	IsPectra           bool
	IsOsaka            bool
}

// AllForks returns the Rules in effect for each named hard fork in
// ascending chronological order, Frontier first. It is used to prewarm
// per-fork jump tables before analysis begins.
func AllForks() []Rules {
	return []Rules{
		{},
		{IsHomestead: true},
		{IsHomestead: true, IsTangerineWhistle: true},
		{IsHomestead: true, IsTangerineWhistle: true, IsSpuriousDragon: true},
		{IsHomestead: true, IsTangerineWhistle: true, IsSpuriousDragon: true, IsByzantium: true},
		{IsHomestead: true, IsTangerineWhistle: true, IsSpuriousDragon: true, IsByzantium: true, IsConstantinople: true},
		{IsHomestead: true, IsTangerineWhistle: true, IsSpuriousDragon: true, IsByzantium: true, IsConstantinople: true, IsPetersburg: true},
		{IsHomestead: true, IsTangerineWhistle: true, IsSpuriousDragon: true, IsByzantium: true, IsConstantinople: true, IsPetersburg: true, IsIstanbul: true},
		{IsHomestead: true, IsTangerineWhistle: true, IsSpuriousDragon: true, IsByzantium: true, IsConstantinople: true, IsPetersburg: true, IsIstanbul: true, IsBerlin: true},
		{IsHomestead: true, IsTangerineWhistle: true, IsSpuriousDragon: true, IsByzantium: true, IsConstantinople: true, IsPetersburg: true, IsIstanbul: true, IsBerlin: true, IsLondon: true},
		{IsHomestead: true, IsTangerineWhistle: true, IsSpuriousDragon: true, IsByzantium: true, IsConstantinople: true, IsPetersburg: true, IsIstanbul: true, IsBerlin: true, IsLondon: true, IsShanghai: true},
		{IsHomestead: true, IsTangerineWhistle: true, IsSpuriousDragon: true, IsByzantium: true, IsConstantinople: true, IsPetersburg: true, IsIstanbul: true, IsBerlin: true, IsLondon: true, IsShanghai: true, IsCancun: true},
		{IsHomestead: true, IsTangerineWhistle: true, IsSpuriousDragon: true, IsByzantium: true, IsConstantinople: true, IsPetersburg: true, IsIstanbul: true, IsBerlin: true, IsLondon: true, IsShanghai: true, IsCancun: true, IsPectra: true},
		{IsHomestead: true, IsTangerineWhistle: true, IsSpuriousDragon: true, IsByzantium: true, IsConstantinople: true, IsPetersburg: true, IsIstanbul: true, IsBerlin: true, IsLondon: true, IsShanghai: true, IsCancun: true, IsPectra: true, IsOsaka: true},
	}
}

// CacheKey builds a short, stable string identifying this fork combination,
// suitable for use as a jump table cache key. The empty combination (no
// flags set) maps to "frontier" rather than the empty string so it reads
// sensibly in logs and map dumps.
func (r Rules) CacheKey() string {
	key := ""
	if r.IsHomestead {
		key += "H"
	}
	if r.IsTangerineWhistle {
		key += "TW"
	}
	if r.IsSpuriousDragon {
		key += "SD"
	}
	if r.IsByzantium {
		key += "B"
	}
	if r.IsConstantinople {
		key += "C"
	}
	if r.IsPetersburg {
		key += "P"
	}
	if r.IsIstanbul {
		key += "I"
	}
	if r.IsBerlin {
		key += "Be"
	}
	if r.IsLondon {
		key += "L"
	}
	if r.IsShanghai {
		key += "S"
	}
	if r.IsCancun {
		key += "Ca"
	}
	if r.IsPectra {
		key += "Pe"
	}
	if r.IsOsaka {
		key += "O"
	}
	if key == "" {
		key = "frontier"
	}
	return key
}
