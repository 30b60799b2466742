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

// Package request holds the client-submitted unit of work the dispatcher
// batches onto the wire, and the FIFO queue it travels through (spec.md §2,
// §3, §9). The original C list is singly linked with tail-append via
// walking pointers; this package keeps the same FIFO order and build/
// process_response callback shape but backs it with a slice so append
// stays O(1) amortized (spec.md §9, REDESIGN FLAGS).
package request

// InvalidID is the request id sentinel before the layer stack's
// reserve_space assigns one.
const InvalidID int64 = -1

// BuildFunc renders the client's payload into the window the dispatcher
// has reserved for it.
type BuildFunc func(ctx interface{}, buf []byte, start, end int) (newEnd int, err error)

// ResponseFunc delivers the matched response back to the client. Returning
// a non-nil error is treated as a protocol error by the dispatcher, which
// disconnects (spec.md §4.2).
type ResponseFunc func(ctx interface{}, buf []byte, start, end int) error

// Request is one client submission: opaque context plus the two callbacks
// that drive its half of the wire exchange.
type Request struct {
	Ctx     interface{}
	ID      int64
	Build   BuildFunc
	OnReply ResponseFunc
}

// New returns a Request not yet assigned a request id.
func New(ctx interface{}, build BuildFunc, onReply ResponseFunc) *Request {
	return &Request{Ctx: ctx, ID: InvalidID, Build: build, OnReply: onReply}
}

// Queue is the PLC's FIFO of pending requests. Push is O(1) amortized;
// iteration preserves submission order, which is the only ordering
// guarantee spec.md §9 asks a rewrite to keep.
type Queue struct {
	items []*Request
}

// Push appends r to the tail of the queue.
func (q *Queue) Push(r *Request) {
	q.items = append(q.items, r)
}

// Front returns the head of the queue, or nil if empty.
func (q *Queue) Front() *Request {
	if len(q.items) == 0 {
		return nil
	}
	return q.items[0]
}

// PopFront removes and returns the head of the queue, or nil if empty.
func (q *Queue) PopFront() *Request {
	if len(q.items) == 0 {
		return nil
	}
	r := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]
	return r
}

// Remove drops r from the queue wherever it sits, for stop_request
// cancelling a request that isn't at the head (spec.md §6). Reports
// whether r was found.
func (q *Queue) Remove(r *Request) bool {
	for i, it := range q.items {
		if it == r {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return true
		}
	}
	return false
}

// Requeue puts sent back at the head of the queue in their original order,
// ahead of anything already waiting, for a disconnect that must give
// in-flight work another try (spec.md §4.2, error handling).
func (q *Queue) Requeue(sent []*Request) {
	q.items = append(append([]*Request(nil), sent...), q.items...)
}

// Len returns the number of queued requests.
func (q *Queue) Len() int {
	return len(q.items)
}

// Empty reports whether the queue has no pending requests.
func (q *Queue) Empty() bool {
	return len(q.items) == 0
}

// Each calls fn for every queued request in FIFO order.
func (q *Queue) Each(fn func(*Request)) {
	for _, it := range q.items {
		fn(it)
	}
}
