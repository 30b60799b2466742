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

// Package diagnostics supplements spec.md's silence on wire-level
// observability: plc.PLC already exposes state transitions through its
// logger, but nothing in the core captures the raw frame bytes themselves.
// Tap plugs into plc.New's FrameTap slot and multiplexes outbound/inbound
// frames onto a single writer using the teacher's channel multiplexer
// (encoding/mux), which hex-encodes and CBOR-frames each record
// (encoding/hexa, fxamacker/cbor) so the capture stays one append-only
// stream even when many PLCs share a writer.
package diagnostics

import (
	"io"

	encmux "github.com/sabouaram/plc-core/encoding/mux"
)

// outChannel and inChannel are the mux channel keys frames are tagged with.
const (
	outChannel = 'o'
	inChannel  = 'i'
)

// Tap implements plc.FrameTap by writing every frame to a mux channel keyed
// by direction. Disabled by default: plc.New is given a nil FrameTap unless
// a Tap is explicitly constructed and passed in.
type Tap struct {
	out io.Writer
	in  io.Writer
}

// NewTap builds a Tap over w, delimiting records with delim (typically
// '\n'). Tap has no nil-writer fast path and its methods do not accept a
// nil *Tap: when capture is disabled, callers pass a plain nil FrameTap to
// plc.New, since a nil *Tap stored in the interface is not nil there.
func NewTap(w io.Writer, delim byte) *Tap {
	m := encmux.NewMultiplexer(w, delim)
	return &Tap{
		out: m.NewChannel(outChannel),
		in:  m.NewChannel(inChannel),
	}
}

// Outbound records a frame the PLC just sent.
func (t *Tap) Outbound(frame []byte) {
	_, _ = t.out.Write(frame)
}

// Inbound records a frame the PLC just received.
func (t *Tap) Inbound(frame []byte) {
	_, _ = t.in.Write(frame)
}
