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

// CodeError is the numeric error code every PLC-core error carries, closed
// to the set declared in plccodes.go (spec.md §6). Unlike the teacher's
// generic HTTP-status-shaped code space, nothing here mints a per-package
// block of codes: the collaborator API surfaces exactly the codes in
// plccodes.go, so a direct code-to-message map is enough - there is no
// range of codes sharing one dynamically-computed message.
type CodeError uint16

// Message renders the human-readable string for a CodeError.
type Message func(code CodeError) (message string)

const (
	// UnknownError is the code for an error with no registered message.
	UnknownError CodeError = 0

	// UnknownMessage is returned by Message when no message is registered
	// for a code.
	UnknownMessage = "unknown error"
)

var idMsgFct = make(map[CodeError]Message)

// RegisterIdFctMessage associates fct with code. Called once per code from
// plccodes.go's init.
func RegisterIdFctMessage(code CodeError, fct Message) {
	idMsgFct[code] = fct
}

// Uint16 returns the raw code value.
func (c CodeError) Uint16() uint16 {
	return uint16(c)
}

// Message returns the message registered for c, or UnknownMessage if none
// was registered.
func (c CodeError) Message() string {
	if c == UnknownError {
		return UnknownMessage
	}
	if f, ok := idMsgFct[c]; ok {
		if m := f(c); m != "" {
			return m
		}
	}
	return UnknownMessage
}

// Error builds an Error carrying this code, its registered message, and the
// given parent errors.
func (c CodeError) Error(p ...error) Error {
	return New(c.Uint16(), c.Message(), p...)
}
