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

// Package timer is the event-loop clock and deadline abstraction the
// dispatcher treats as an opaque collaborator (spec.md §1, §6). It covers
// two distinct needs: a one-shot deadline timer per PLC (retry backoff,
// connect/response timeouts) and the 200ms recurring heartbeat that is the
// sole mechanism waking the machine for idle-disconnect and post-backoff
// retry (spec.md §4.4).
package timer

// Clock is the event loop's notion of time. now_ms() in spec.md §6.
type Clock interface {
	NowMs() int64
}

// WakeFunc is invoked when a Timer's deadline elapses. arg is whatever was
// passed to WakeAt.
type WakeFunc func(arg interface{})

// Timer is the one-shot deadline timer of spec.md §6: create, wake_at,
// snooze, destroy. A Timer may be re-armed any number of times; WakeAt
// replaces any pending deadline rather than stacking callbacks.
type Timer interface {
	// WakeAt arms cb to fire once Clock.NowMs() reaches deadlineMs. Any
	// previously armed, not-yet-fired deadline is replaced.
	WakeAt(deadlineMs int64, cb WakeFunc, arg interface{})

	// Snooze cancels any pending deadline without firing it.
	Snooze()

	// Destroy releases the Timer. No method may be called on it afterwards.
	Destroy()
}

// Heartbeat is the 200ms recurring timer described in spec.md §4.4: it
// re-enters the dispatcher on every tick until stopped.
type Heartbeat interface {
	// Stop cancels future ticks. Safe to call more than once.
	Stop()
}
