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
	"sync"

	"github.com/ethanvm/evmcore/params"
)

// jumpTableCache memoizes the jump table for each distinct fork
// combination seen so far. Jump tables are immutable once built, so
// sharing one across analyses of the same fork avoids rebuilding the
// 256-entry table per call.
var jumpTableCache = &jumpTableCacheType{
	tables: make(map[string]JumpTable),
}

type jumpTableCacheType struct {
	mu     sync.RWMutex
	tables map[string]JumpTable
}

// GetCachedJumpTable returns the jump table for rules, building and
// caching it on first request.
func GetCachedJumpTable(rules params.Rules) JumpTable {
	key := rules.CacheKey()

	jumpTableCache.mu.RLock()
	table, ok := jumpTableCache.tables[key]
	jumpTableCache.mu.RUnlock()
	if ok {
		return table
	}

	jumpTableCache.mu.Lock()
	defer jumpTableCache.mu.Unlock()

	if table, ok = jumpTableCache.tables[key]; ok {
		return table
	}

	table = NewInstructionSet(rules)
	jumpTableCache.tables[key] = table
	return table
}

// PrewarmJumpTables builds and caches the jump table for every known
// hard fork. Callers that analyze contracts under many fork rules (e.g. a
// historical replay tool) can call this once at startup to move the
// construction cost out of the hot path.
func PrewarmJumpTables() {
	for _, rules := range params.AllForks() {
		GetCachedJumpTable(rules)
	}
}
