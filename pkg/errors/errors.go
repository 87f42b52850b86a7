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

// Package errors defines common error types used throughout the evmcore
// codebase. This package provides a centralized location for error
// definitions to ensure consistency and avoid duplication across modules.
package errors

import (
	"errors"
	"fmt"
)

// =====================
// Bytecode Analysis Errors
// =====================

var (
	// ErrCodeTooLarge is returned when the bytecode submitted to Analyze
	// exceeds MaxContractSize.
	ErrCodeTooLarge = errors.New("evmcore: code size exceeds maximum contract size")

	// ErrInstructionLimitExceeded is returned when emission would produce
	// more instructions than MaxInstructions, or the decoder's loop safety
	// cap triggered.
	ErrInstructionLimitExceeded = errors.New("evmcore: instruction limit exceeded")

	// ErrAllocationFailed is returned when an allocator could not satisfy a
	// request made during analysis construction.
	ErrAllocationFailed = errors.New("evmcore: allocation failed during analysis")
)

// =====================
// Runtime Fault Errors
// =====================

// These are not raised by Analyze itself; they describe faults an
// interpreter surfaces at runtime when it executes an artifact this
// package produced.
var (
	// ErrInvalidJump is returned when a jump targets a PC that is not a
	// valid JUMPDEST.
	ErrInvalidJump = errors.New("evmcore: invalid jump destination")

	// ErrStackUnderflow is returned when a block's entry stack height is
	// below its recorded minimum requirement.
	ErrStackUnderflow = errors.New("evmcore: stack underflow")

	// ErrStackOverflow is returned when a block's entry stack height plus
	// its recorded maximum growth would exceed 1024.
	ErrStackOverflow = errors.New("evmcore: stack overflow")
)

// =====================
// Helper Functions
// =====================

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// New returns an error that formats as the given text.
func New(text string) error {
	return errors.New(text)
}

// Errorf formats according to a format specifier and returns the string as a value that satisfies error.
func Errorf(format string, a ...interface{}) error {
	return fmt.Errorf(format, a...)
}
