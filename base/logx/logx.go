// Copyright (c) 2026, Tidyframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logx provides leveled logging on top of log/slog, with a
// package-level user verbosity setting that library code consults
// before emitting output.
package logx

import (
	"fmt"
	"log/slog"
)

// UserLevel is the verbosity level that the end user has selected,
// typically through command-line flags. Anything at this level or
// above is printed.
var UserLevel = defaultUserLevel

// SetVerbose sets [UserLevel] to [slog.LevelDebug] if verbose is true,
// and [slog.LevelInfo] otherwise.
func SetVerbose(verbose bool) {
	if verbose {
		UserLevel = slog.LevelDebug
	} else {
		UserLevel = slog.LevelInfo
	}
}

// Debug logs the given message at the debug level,
// if [UserLevel] permits.
func Debug(msg string, args ...any) {
	if UserLevel <= slog.LevelDebug {
		slog.Debug(msg, args...)
	}
}

// Info logs the given message at the info level,
// if [UserLevel] permits.
func Info(msg string, args ...any) {
	if UserLevel <= slog.LevelInfo {
		slog.Info(msg, args...)
	}
}

// Warn logs the given message at the warn level,
// if [UserLevel] permits.
func Warn(msg string, args ...any) {
	if UserLevel <= slog.LevelWarn {
		slog.Warn(msg, args...)
	}
}

// Error logs the given message at the error level, which is
// always printed.
func Error(msg string, args ...any) {
	slog.Error(msg, args...)
}

// Debugf logs a formatted message at the debug level,
// if [UserLevel] permits.
func Debugf(format string, args ...any) {
	if UserLevel <= slog.LevelDebug {
		slog.Debug(fmt.Sprintf(format, args...))
	}
}

// Infof logs a formatted message at the info level,
// if [UserLevel] permits.
func Infof(format string, args ...any) {
	if UserLevel <= slog.LevelInfo {
		slog.Info(fmt.Sprintf(format, args...))
	}
}

// Warnf logs a formatted message at the warn level,
// if [UserLevel] permits.
func Warnf(format string, args ...any) {
	if UserLevel <= slog.LevelWarn {
		slog.Warn(fmt.Sprintf(format, args...))
	}
}
