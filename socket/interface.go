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

// Package socket is the non-blocking connect/read/write abstraction the
// dispatcher treats as an opaque collaborator (spec.md §1, §6). The core
// never calls net.Conn directly: it creates a Socket, arms exactly one
// pending callback of each kind at a time, and is re-entered on whichever
// goroutine the implementation chooses to run the callback on - the PLC's
// own mutex is what serializes that re-entry, not this package.
package socket

// Status mirrors the small state set the dispatcher inspects before
// trusting a buffer handed to it by a fired callback.
type Status uint8

const (
	StatusClosed Status = iota
	StatusConnecting
	StatusConnected
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusConnecting:
		return "connecting"
	case StatusConnected:
		return "connected"
	case StatusError:
		return "error"
	default:
		return "closed"
	}
}

// ConnectionReadyFunc is invoked exactly once per CallbackWhenConnectionReady
// registration, successful or not.
type ConnectionReadyFunc func(arg interface{}, err error)

// WriteDoneFunc is invoked exactly once per CallbackWhenWriteDone
// registration with the number of bytes actually written.
type WriteDoneFunc func(arg interface{}, n int, err error)

// ReadDoneFunc is invoked exactly once per CallbackWhenReadDone registration
// with the number of bytes actually read.
type ReadDoneFunc func(arg interface{}, n int, err error)

// Socket is the capability set spec.md §6 lists under "Socket": create,
// callback_when_connection_ready, callback_when_write_done,
// callback_when_read_done, status, close, destroy. Go's equivalent of
// "create" is the Factory below; the rest map one to one onto methods.
type Socket interface {
	// CallbackWhenConnectionReady dials host:port and arms cb to fire once
	// the dial completes or fails. Only one registration may be pending at
	// a time.
	CallbackWhenConnectionReady(cb ConnectionReadyFunc, arg interface{}, host string, port int)

	// CallbackWhenWriteDone arms cb to fire once buf has been written in
	// full or the write failed. The Socket may retain buf until the
	// callback fires; the caller must not reuse it before then.
	CallbackWhenWriteDone(cb WriteDoneFunc, arg interface{}, buf []byte)

	// CallbackWhenReadDone arms cb to fire once at least one byte has
	// landed in buf, the peer closed, or the read failed.
	CallbackWhenReadDone(cb ReadDoneFunc, arg interface{}, buf []byte)

	// Status reports the current connection state.
	Status() Status

	// Close tears down the underlying connection but keeps the Socket
	// value usable for a subsequent connect. Close is ordered against any
	// in-flight callback: once Close returns, no previously armed callback
	// will fire (spec.md §5, "Shared resources").
	Close() error

	// Destroy releases the Socket permanently. No method may be called on
	// it afterwards.
	Destroy()
}

// Factory builds a fresh, unconnected Socket. Family constructors and the
// registry's get_or_create never talk to net.Conn directly; they hold a
// Factory and call it once per PLC.
type Factory func() (Socket, error)
