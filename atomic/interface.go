/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
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

// Package atomic wraps sync/atomic.Value with a typed Load/Store pair, used
// for the PLC's cross-goroutine state (is_connected, retry timers) that a
// socket callback can flip while the run loop is reading it (SPEC_FULL.md
// §11). Trimmed from the teacher's package, which also carries a
// default-load/default-store variant of Value and a whole Map/MapTyped
// family over sync.Map: nothing in this module stores anything keyed, so
// that half of the teacher's surface has no domain to adapt and is dropped
// rather than kept unexercised.
package atomic

// Value is a generic, type-safe wrapper over sync/atomic.Value.
type Value[T any] interface {
	// Load returns the current value, or the zero value of T if Store was
	// never called.
	Load() (val T)

	// Store sets the value.
	Store(val T)
}

// NewValue returns a new Value[T] holding the zero value of T.
func NewValue[T any]() Value[T] {
	return &val[T]{}
}
