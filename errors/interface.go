/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package errors is the PLC core's typed error type: a closed code set
// (plccodes.go) plus an optional parent chain, so a transient disconnect
// can wrap the triggering layer error without losing it (SPEC_FULL.md
// §10.1). Trimmed from the teacher's general-purpose `errors` package (HTTP-
// style code ranges, multi-format string rendering, stack-trace capture,
// Gin/JSON return plumbing) down to the surface plc/layer/request/registry
// actually call: HasCode, Add, GetParent, and compatibility with the
// standard library's errors.Is/errors.As.
package errors

import (
	"errors"
	"fmt"
)

// Error is a CodeError-carrying error with an optional parent chain.
type Error interface {
	error

	// HasCode reports whether this error or any parent carries code.
	HasCode(code CodeError) bool

	// Code returns this error's own code, ignoring parents.
	Code() uint16

	// Is implements compatibility with the standard library's errors.Is.
	Is(e error) bool

	// Add appends non-nil parents to this error's parent chain.
	Add(parent ...error)

	// GetParent returns the parent chain, optionally including this error
	// itself first.
	GetParent(withMainError bool) []error

	// Unwrap gives the standard library's errors.Is/errors.As access to the
	// parent chain.
	Unwrap() []error
}

// Is reports whether e can be asserted to the Error interface.
func Is(e error) bool {
	var err Error
	return errors.As(e, &err)
}

// Get returns e as an Error if it can be asserted to one, nil otherwise.
func Get(e error) Error {
	var err Error
	if errors.As(e, &err) {
		return err
	}
	return nil
}

// Has reports whether e (or its parent chain) carries code.
func Has(e error, code CodeError) bool {
	if err := Get(e); err != nil {
		return err.HasCode(code)
	}
	return false
}

// Make wraps e as an Error, assigning it code 0 if it isn't already one.
func Make(e error) Error {
	if e == nil {
		return nil
	}
	var err Error
	if errors.As(e, &err) {
		return err
	}
	return &ers{e: e.Error()}
}

// New builds an Error with the given code, message, and parents.
func New(code uint16, message string, parent ...error) Error {
	p := make([]Error, 0, len(parent))
	for _, e := range parent {
		if er := Make(e); er != nil {
			p = append(p, er)
		}
	}
	return &ers{c: code, e: message, p: p}
}

// Newf builds an Error whose message is fmt.Sprintf(pattern, args...).
func Newf(code uint16, pattern string, args ...any) Error {
	return &ers{c: code, e: fmt.Sprintf(pattern, args...)}
}
