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

import "github.com/ethanvm/evmcore/pkg/errors"

// Sentinel errors surfaced by Analyze. Re-exported from pkg/errors so
// callers that only import vm never need to import the errors package
// directly to do an errors.Is comparison.
var (
	ErrCodeTooLarge             = errors.ErrCodeTooLarge
	ErrInstructionLimitExceeded = errors.ErrInstructionLimitExceeded
	ErrAllocationFailed         = errors.ErrAllocationFailed
)
