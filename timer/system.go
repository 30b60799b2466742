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

package timer

import (
	"sync"
	"time"
)

// SystemClock is the wall-clock Clock: NowMs() is time.Now() in
// milliseconds since the Unix epoch.
type SystemClock struct{}

func (SystemClock) NowMs() int64 {
	return time.Now().UnixMilli()
}

// systemTimer backs Timer with time.Timer. Clock is only used to translate
// an absolute deadline into a relative time.Duration; the actual firing
// still rides on the runtime timer wheel.
type systemTimer struct {
	mu    sync.Mutex
	clock Clock
	t     *time.Timer
}

// NewTimer returns a Timer driven by clk. A nil clk uses SystemClock.
func NewTimer(clk Clock) Timer {
	if clk == nil {
		clk = SystemClock{}
	}
	return &systemTimer{clock: clk}
}

func (s *systemTimer) WakeAt(deadlineMs int64, cb WakeFunc, arg interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.t != nil {
		s.t.Stop()
	}

	d := time.Duration(deadlineMs-s.clock.NowMs()) * time.Millisecond
	if d < 0 {
		d = 0
	}

	s.t = time.AfterFunc(d, func() {
		if cb != nil {
			cb(arg)
		}
	})
}

func (s *systemTimer) Snooze() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.t != nil {
		s.t.Stop()
		s.t = nil
	}
}

func (s *systemTimer) Destroy() {
	s.Snooze()
}

// heartbeat backs Heartbeat with time.Ticker, running fn on every tick
// until Stop is called.
type heartbeat struct {
	stop chan struct{}
	once sync.Once
}

// NewHeartbeat starts a recurring timer at the given interval, calling fn
// on every tick on its own goroutine, until Stop is called.
func NewHeartbeat(interval time.Duration, fn func()) Heartbeat {
	h := &heartbeat{stop: make(chan struct{})}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if fn != nil {
					fn()
				}
			case <-h.stop:
				return
			}
		}
	}()

	return h
}

func (h *heartbeat) Stop() {
	h.once.Do(func() {
		close(h.stop)
	})
}
