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

package socket

import (
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"
)

// tcpSocket is the reference Socket backed by net.Dialer/net.TCPConn. It
// dispatches every callback on its own goroutine and uses a dedicated mutex
// (separate from the PLC mutex) to order Close against in-flight callbacks,
// exactly as spec.md §5's "Shared resources" note requires of the socket
// abstraction.
type tcpSocket struct {
	mu     sync.Mutex
	conn   net.Conn
	status atomic.Uint32
	closed atomic.Bool

	dialTimeout time.Duration
}

// NewTCP returns a Factory producing Sockets that dial with the given
// timeout (zero means no timeout).
func NewTCP(dialTimeout time.Duration) Factory {
	return func() (Socket, error) {
		s := &tcpSocket{dialTimeout: dialTimeout}
		s.status.Store(uint32(StatusClosed))
		return s, nil
	}
}

func (s *tcpSocket) Status() Status {
	return Status(s.status.Load())
}

func (s *tcpSocket) CallbackWhenConnectionReady(cb ConnectionReadyFunc, arg interface{}, host string, port int) {
	s.status.Store(uint32(StatusConnecting))

	go func() {
		d := net.Dialer{Timeout: s.dialTimeout}
		conn, err := d.Dial("tcp", fmt.Sprintf("%s:%d", host, port))

		s.mu.Lock()
		if s.closed.Load() {
			s.mu.Unlock()
			if conn != nil {
				_ = conn.Close()
			}
			return
		}
		if err != nil {
			s.status.Store(uint32(StatusError))
			s.mu.Unlock()
			if cb != nil {
				cb(arg, err)
			}
			return
		}
		s.conn = conn
		s.status.Store(uint32(StatusConnected))
		s.mu.Unlock()

		if cb != nil {
			cb(arg, nil)
		}
	}()
}

func (s *tcpSocket) CallbackWhenWriteDone(cb WriteDoneFunc, arg interface{}, buf []byte) {
	go func() {
		s.mu.Lock()
		conn := s.conn
		closed := s.closed.Load()
		s.mu.Unlock()

		if closed {
			return
		}
		if conn == nil {
			if cb != nil {
				cb(arg, 0, fmt.Errorf("socket: write on unconnected socket"))
			}
			return
		}

		n, err := conn.Write(buf)

		s.mu.Lock()
		alive := !s.closed.Load()
		s.mu.Unlock()
		if !alive {
			return
		}

		if err != nil {
			s.status.Store(uint32(StatusError))
		}
		if cb != nil {
			cb(arg, n, err)
		}
	}()
}

func (s *tcpSocket) CallbackWhenReadDone(cb ReadDoneFunc, arg interface{}, buf []byte) {
	go func() {
		s.mu.Lock()
		conn := s.conn
		closed := s.closed.Load()
		s.mu.Unlock()

		if closed {
			return
		}
		if conn == nil {
			if cb != nil {
				cb(arg, 0, fmt.Errorf("socket: read on unconnected socket"))
			}
			return
		}

		n, err := conn.Read(buf)

		s.mu.Lock()
		alive := !s.closed.Load()
		s.mu.Unlock()
		if !alive {
			return
		}

		if err != nil {
			s.status.Store(uint32(StatusError))
		}
		if cb != nil {
			cb(arg, n, err)
		}
	}()
}

func (s *tcpSocket) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed.Store(true)
	s.status.Store(uint32(StatusClosed))

	if s.conn != nil {
		err := s.conn.Close()
		s.conn = nil
		return err
	}
	return nil
}

func (s *tcpSocket) Destroy() {
	_ = s.Close()
}
