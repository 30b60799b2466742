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

package errors

import "strings"

// ers is the concrete Error: a code, a message, and the parent errors a
// transient disconnect wraps the triggering layer error with (SPEC_FULL.md
// §10.1). No trace/pattern-rendering machinery: the collaborator API never
// surfaces more than code, message and parent chain.
type ers struct {
	c uint16
	e string
	p []Error
}

func (e *ers) is(err *ers) bool {
	if e == nil || err == nil {
		return false
	}
	if e.e != "" || err.e != "" {
		return strings.EqualFold(e.e, err.e)
	}
	return e.c > 0 && err.c > 0 && e.c == err.c
}

func (e *ers) Is(err error) bool {
	if err == nil {
		return false
	}
	if er, ok := err.(*ers); ok {
		return e.is(er)
	}
	return strings.EqualFold(e.e, err.Error())
}

// Add appends every non-nil parent to e's parent chain, flattening any
// parent that is itself e to avoid a cycle.
func (e *ers) Add(parent ...error) {
	for _, v := range parent {
		if v == nil {
			continue
		}

		if er, ok := v.(*ers); ok {
			if e.is(er) {
				e.p = append(e.p, er.p...)
			} else {
				e.p = append(e.p, er)
			}
		} else if err, ok := v.(Error); ok {
			e.p = append(e.p, err)
		} else {
			e.p = append(e.p, &ers{e: v.Error()})
		}
	}
}

// HasCode reports whether e or any parent carries code.
func (e *ers) HasCode(code CodeError) bool {
	if e.c == code.Uint16() {
		return true
	}
	for _, p := range e.p {
		if p.HasCode(code) {
			return true
		}
	}
	return false
}

// Code returns e's own code, ignoring parents.
func (e *ers) Code() uint16 {
	return e.c
}

// Error renders e's own message, matching the standard error interface.
func (e *ers) Error() string {
	return e.e
}

// GetParent returns e's parents, optionally including e itself first.
func (e *ers) GetParent(withMainError bool) []error {
	res := make([]error, 0, len(e.p)+1)
	if withMainError {
		res = append(res, &ers{c: e.c, e: e.e})
	}
	for _, er := range e.p {
		res = append(res, er.GetParent(true)...)
	}
	return res
}

// Unwrap gives the standard library's errors.Is/errors.As access to e's
// parent chain.
func (e *ers) Unwrap() []error {
	if len(e.p) == 0 {
		return nil
	}
	res := make([]error, 0, len(e.p))
	for _, v := range e.p {
		if v != nil {
			res = append(res, v)
		}
	}
	return res
}
