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
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/crypto/sha3"

	"github.com/ethanvm/evmcore/params"
)

// CodeHash returns the Keccak256 hash of code, the canonical EVM
// code-hash function and the key AnalysisCache uses to recognize
// previously-analyzed bytecode.
func CodeHash(code []byte) [32]byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(code)
	var out [32]byte
	h.Sum(out[:0])
	return out
}

type cacheKey struct {
	hash [32]byte
	fork string
}

// AnalysisCache bounds repeated analysis of the same deployed bytecode:
// most contracts are called many times under the same fork rules, and
// re-running Analyze on every call would dwarf the cost of whatever the
// interpreter actually does with the result.
type AnalysisCache struct {
	entries *lru.Cache[cacheKey, *CodeAnalysis]
}

// NewAnalysisCache creates a cache holding up to size entries. A size of
// zero is rejected by golang-lru; callers that don't want caching should
// simply call Analyze directly instead of constructing one.
func NewAnalysisCache(size int) (*AnalysisCache, error) {
	entries, err := lru.New[cacheKey, *CodeAnalysis](size)
	if err != nil {
		return nil, err
	}
	return &AnalysisCache{entries: entries}, nil
}

// GetOrAnalyze returns the cached CodeAnalysis for (code, rules) if
// present, analyzing and caching it otherwise.
func (c *AnalysisCache) GetOrAnalyze(code []byte, rules params.Rules) (*CodeAnalysis, error) {
	key := cacheKey{hash: CodeHash(code), fork: rules.CacheKey()}
	if cached, ok := c.entries.Get(key); ok {
		return cached, nil
	}

	table := GetCachedJumpTable(rules)
	analysis, err := Analyze(code, table)
	if err != nil {
		return nil, err
	}
	c.entries.Add(key, analysis)
	return analysis, nil
}

// Purge evicts every cached analysis.
func (c *AnalysisCache) Purge() { c.entries.Purge() }

// Len returns the number of cached analyses.
func (c *AnalysisCache) Len() int { return c.entries.Len() }
