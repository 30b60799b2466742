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

// Package sockettest is a test double standing in for a real transport: a
// Socket whose "remote peer" is just whatever was last written, handed back
// unmodified on the next read. Paired with layertest.EchoLayer this lets the
// dispatcher be driven end to end - connect, send, receive, disconnect -
// without a listener or a net.Conn anywhere in the test process.
package sockettest

import (
	"errors"
	"sync"

	libsck "github.com/sabouaram/plc-core/socket"
)

// ErrClosed is not returned by any Loopback method: Close only sets the
// status to closed and drops unread data, and callbacks armed before or
// after it still fire.
var ErrClosed = errors.New("sockettest: socket closed")

// Loopback is the in-memory Socket double. FailConnect, FailWrite and
// FailRead script failures into an otherwise-working Loopback, to exercise
// the error/backoff path: while one is set, every matching call fails.
type Loopback struct {
	mu      sync.Mutex
	status  libsck.Status
	pending []byte

	FailConnect bool
	FailWrite   bool
	FailRead    bool

	writes [][]byte
}

// New returns an unconnected Loopback. NewFactory wraps New for callers
// that need a libsck.Factory value.
func New() *Loopback {
	return &Loopback{status: libsck.StatusClosed}
}

// NewFactory returns a socket.Factory that hands out a fresh Loopback per
// call, the way a real family constructor's factory dials a fresh net.Conn
// per PLC.
func NewFactory() libsck.Factory {
	return func() (libsck.Socket, error) {
		return New(), nil
	}
}

func (l *Loopback) CallbackWhenConnectionReady(cb libsck.ConnectionReadyFunc, arg interface{}, _ string, _ int) {
	l.mu.Lock()
	fail := l.FailConnect
	l.mu.Unlock()

	if fail {
		l.mu.Lock()
		l.status = libsck.StatusError
		l.mu.Unlock()
		go cb(arg, errors.New("sockettest: connect refused"))
		return
	}

	l.mu.Lock()
	l.status = libsck.StatusConnected
	l.mu.Unlock()
	go cb(arg, nil)
}

func (l *Loopback) CallbackWhenWriteDone(cb libsck.WriteDoneFunc, arg interface{}, buf []byte) {
	l.mu.Lock()
	fail := l.FailWrite
	if !fail {
		l.pending = append([]byte(nil), buf...)
		l.writes = append(l.writes, l.pending)
	}
	l.mu.Unlock()

	if fail {
		go cb(arg, 0, errors.New("sockettest: write failed"))
		return
	}
	go cb(arg, len(buf), nil)
}

func (l *Loopback) CallbackWhenReadDone(cb libsck.ReadDoneFunc, arg interface{}, buf []byte) {
	l.mu.Lock()
	fail := l.FailRead
	data := l.pending
	l.pending = nil
	l.mu.Unlock()

	if fail {
		go cb(arg, 0, errors.New("sockettest: read failed"))
		return
	}

	n := copy(buf, data)
	go cb(arg, n, nil)
}

func (l *Loopback) Status() libsck.Status {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.status
}

func (l *Loopback) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.status = libsck.StatusClosed
	l.pending = nil
	return nil
}

func (l *Loopback) Destroy() {
	_ = l.Close()
}

// Writes returns every frame handed to CallbackWhenWriteDone so far, in
// order - what a test asserts against to check framing without needing a
// real peer to decode it.
func (l *Loopback) Writes() [][]byte {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([][]byte, len(l.writes))
	copy(out, l.writes)
	return out
}
