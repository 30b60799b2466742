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

// Package fields provides a small thread-safe key/value bag attached to a
// log entry, modeled after the teacher's logger/fields package but stripped
// of its context.Context embedding: the PLC core never needs fields to
// carry cancellation, only to carry structured data (plc key, state name,
// request id) alongside a message.
package fields

import (
	"encoding/json"

	"github.com/sirupsen/logrus"
)

// Fields is a thread-safe key/value bag for structured logging. Walk visits
// entries in Go map order, which is not defined; MarshalJSON emits keys
// sorted, as encoding/json does for maps.
type Fields interface {
	json.Marshaler

	// Add stores key/val and returns the receiver for chaining.
	Add(key string, val interface{}) Fields

	// Get returns the value stored for key, if any.
	Get(key string) (val interface{}, ok bool)

	// Merge copies every key/val from src into the receiver, src wins on conflict.
	Merge(src Fields) Fields

	// Clone returns an independent copy of the receiver.
	Clone() Fields

	// Walk calls fn for every key/val pair; stops early if fn returns false.
	Walk(fn func(key string, val interface{}) bool)

	// Logrus converts the bag to logrus.Fields for formatter use.
	Logrus() logrus.Fields
}

// New returns an empty Fields bag.
func New() Fields {
	return &fldModel{d: make(map[string]interface{})}
}
