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

package log

import "gopkg.in/natefinch/lumberjack.v2"

// Config controls where and how the package logger writes. The zero value
// is a valid configuration: warn level, text format, stdout only.
//
// Recommended settings (mirroring the rotation knobs of the node-level
// logger this package was adapted from):
//   - development: Level="debug", LogFile="" (console only)
//   - production:  Level="info", LogFile set, MaxSize=100, MaxBackups=10,
//     MaxAge=30, Compress=true
type Config struct {
	// Level is one of trace, debug, info, warn, error.
	Level string

	// LogFile is the path to a rotating log file. Empty means stdout only.
	LogFile string

	// JSONFormat selects JSON output instead of the default text formatter.
	JSONFormat bool

	// MaxSize is the maximum size in megabytes of a log file before it
	// gets rotated.
	MaxSize int

	// MaxBackups is the maximum number of old rotated log files to retain.
	MaxBackups int

	// MaxAge is the maximum number of days to retain old rotated log files.
	MaxAge int

	// Compress determines whether rotated log files are compressed with gzip.
	Compress bool
}

func rotatingWriter(cfg Config) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}
}
