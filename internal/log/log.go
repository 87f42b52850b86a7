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

// Package log is a thin wrapper around logrus that gives the analysis core
// a structured, leveled logger with the same call surface the rest of the
// evmcore ambient stack expects (New/Root/Debug/Info/Warn/Error/Crit),
// without pulling in node-level concerns (log directories, multi-file
// cleanup, mobile targets) that a library has no use for.
package log

import (
	"fmt"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	root     = &logger{ctx: nil}
	terminal = logrus.New()

	initOnce sync.Once
)

// Lvl is a log verbosity level, ordered most to least severe so that
// Lvl <= threshold means "should be logged".
type Lvl int

const (
	LvlCrit Lvl = iota
	LvlError
	LvlWarn
	LvlInfo
	LvlDebug
	LvlTrace
)

func init() {
	terminal.SetOutput(os.Stdout)
	terminal.SetLevel(logrus.WarnLevel)
	terminal.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
	})
}

// Init configures the package logger from cfg. Only the first call per
// process takes effect; later calls are no-ops. A library that is only ever
// imported, never run standalone, typically never calls this at all — the
// zero-value logger (warn level, stdout, text format) is a reasonable
// default for tests and embedders.
func Init(cfg Config) {
	initOnce.Do(func() {
		applyConfig(cfg)
	})
}

func applyConfig(cfg Config) {
	lvl, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		lvl = logrus.WarnLevel
	}
	terminal.SetLevel(lvl)

	var formatter logrus.Formatter
	if cfg.JSONFormat {
		formatter = &logrus.JSONFormatter{TimestampFormat: "2006-01-02 15:04:05"}
	} else {
		formatter = &logrus.TextFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
			FullTimestamp:   true,
			DisableColors:   cfg.LogFile != "",
		}
	}
	terminal.SetFormatter(formatter)

	if cfg.LogFile == "" {
		terminal.SetOutput(os.Stdout)
		return
	}
	terminal.SetOutput(rotatingWriter(cfg))
}

// A Logger writes key/value pairs at a given level. Every call returns
// immediately; there is no buffering or suspension (matching the
// single-threaded, blocking contract of the analysis core it instruments).
type Logger interface {
	New(ctx ...interface{}) Logger

	Trace(msg string, ctx ...interface{})
	Debug(msg string, ctx ...interface{})
	Info(msg string, ctx ...interface{})
	Warn(msg string, ctx ...interface{})
	Error(msg string, ctx ...interface{})
	Crit(msg string, ctx ...interface{})
}

type logger struct {
	ctx []interface{}
}

var fieldsPool = sync.Pool{
	New: func() interface{} { return logrus.Fields{} },
}

func (l *logger) New(ctx ...interface{}) Logger {
	combined := make([]interface{}, 0, len(l.ctx)+len(ctx))
	combined = append(combined, l.ctx...)
	combined = append(combined, ctx...)
	return &logger{ctx: combined}
}

func (l *logger) write(msg string, lvl Lvl, ctx []interface{}) {
	fields := fieldsPool.Get().(logrus.Fields)
	defer func() {
		for k := range fields {
			delete(fields, k)
		}
		fieldsPool.Put(fields)
	}()

	appendFields(fields, l.ctx)
	appendFields(fields, ctx)

	entry := terminal.WithFields(fields)
	switch lvl {
	case LvlTrace:
		entry.Trace(msg)
	case LvlDebug:
		entry.Debug(msg)
	case LvlInfo:
		entry.Info(msg)
	case LvlWarn:
		entry.Warn(msg)
	case LvlError:
		entry.Error(msg)
	case LvlCrit:
		entry.Error(msg)
		os.Exit(1)
	}
}

func appendFields(fields logrus.Fields, ctx []interface{}) {
	for i := 0; i+1 < len(ctx); i += 2 {
		key, ok := ctx[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", ctx[i])
		}
		fields[key] = ctx[i+1]
	}
}

func (l *logger) Trace(msg string, ctx ...interface{}) { l.write(msg, LvlTrace, ctx) }
func (l *logger) Debug(msg string, ctx ...interface{}) { l.write(msg, LvlDebug, ctx) }
func (l *logger) Info(msg string, ctx ...interface{})  { l.write(msg, LvlInfo, ctx) }
func (l *logger) Warn(msg string, ctx ...interface{})  { l.write(msg, LvlWarn, ctx) }
func (l *logger) Error(msg string, ctx ...interface{}) { l.write(msg, LvlError, ctx) }
func (l *logger) Crit(msg string, ctx ...interface{})  { l.write(msg, LvlCrit, ctx) }

// New returns a new logger with the given context. New is a convenient
// alias for Root().New.
func New(ctx ...interface{}) Logger { return root.New(ctx...) }

// Root returns the root logger.
func Root() Logger { return root }

func Trace(msg string, ctx ...interface{}) { root.write(msg, LvlTrace, ctx) }
func Debug(msg string, ctx ...interface{}) { root.write(msg, LvlDebug, ctx) }
func Info(msg string, ctx ...interface{})  { root.write(msg, LvlInfo, ctx) }
func Warn(msg string, ctx ...interface{})  { root.write(msg, LvlWarn, ctx) }
func Error(msg string, ctx ...interface{}) { root.write(msg, LvlError, ctx) }
func Crit(msg string, ctx ...interface{})  { root.write(msg, LvlCrit, ctx) }
