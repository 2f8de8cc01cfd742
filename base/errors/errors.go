// Copyright (c) 2026, Tidyframe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errors provides a small set of helpers around the standard
// library errors package, for logging and ignoring errors at call
// sites where an error return is not practical.
package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
)

// aliases for the standard library functions, so that this package
// can be imported instead of the standard one.

// New returns an error with the given text, using [errors.New].
func New(text string) error { return errors.New(text) }

// Is reports whether any error in err's tree matches target,
// using [errors.Is].
func Is(err, target error) bool { return errors.Is(err, target) }

// As finds the first error in err's tree that matches target,
// using [errors.As].
func As(err error, target any) bool { return errors.As(err, target) }

// Join wraps the given errors using [errors.Join].
func Join(errs ...error) error { return errors.Join(errs...) }

// Unwrap returns the result of calling the Unwrap method on err,
// using [errors.Unwrap].
func Unwrap(err error) error { return errors.Unwrap(err) }

// CallerInfo returns string information about the calling function
// two levels up the stack, for error logging.
func CallerInfo() string {
	pc, file, line, ok := runtime.Caller(2)
	if !ok {
		return ""
	}
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return fmt.Sprintf("%s:%d", file, line)
	}
	return fmt.Sprintf("%s (%s:%d)", fn.Name(), file, line)
}

// Log logs the given error if it is non-nil, adding information about
// the caller, and returns it unchanged so that call sites can both
// log and propagate in one expression.
func Log(err error) error {
	if err != nil {
		slog.Error(err.Error(), "caller", CallerInfo())
	}
	return err
}

// Log1 is a version of [Log] for functions returning a value and
// an error. It logs the error if non-nil and returns both.
func Log1[T any](v T, err error) (T, error) {
	if err != nil {
		slog.Error(err.Error(), "caller", CallerInfo())
	}
	return v, err
}

// Ignore1 returns the value from a (value, error) pair, discarding
// the error, for cases where the error is known to be irrelevant.
func Ignore1[T any](v T, _ error) T { return v }

// Must panics if the given error is non-nil; for initialization
// code where failure is a programming error.
func Must(err error) {
	if err != nil {
		panic(err)
	}
}

// Must1 is a version of [Must] for functions returning a value and
// an error, returning the value.
func Must1[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
