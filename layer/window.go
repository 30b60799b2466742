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

package layer

import (
	liberr "github.com/sabouaram/plc-core/errors"
)

// Window is the per-PLC buffer cursor pair passed down the layer chain.
// Start and End bound the region a layer is allowed to touch; Capacity is
// the size of the underlying buffer. Every layer operation narrows or
// widens Start/End and hands the result to the next layer - never the raw
// buffer length.
//
// Invariant: Start <= End <= Capacity (spec.md §3, "payload_start <=
// payload_end <= data_capacity").
type Window struct {
	Buf      []byte
	Start    int
	End      int
	Capacity int
}

// Valid reports whether the window's cursors still satisfy the core
// invariant.
func (w Window) Valid() bool {
	return w.Start >= 0 && w.Start <= w.End && w.End <= w.Capacity
}

// Len returns the number of bytes currently between Start and End.
func (w Window) Len() int {
	return w.End - w.Start
}

// Cursor is a little-endian codec over a Window that implements the
// bounds-check-before-advance, null-buffer-tolerant semantics of the
// original TRY_GET/SET_Uxx_LE macros (spec.md §9): a layer sizes its
// header by calling the Put* methods with a nil Buf first (probe mode,
// only Offset is advanced), then calls them again against the real buffer
// once space has actually been reserved.
type Cursor struct {
	Buf      []byte
	Offset   int
	Capacity int
}

// NewCursor builds a Cursor starting at w.Start, bounded by w.Capacity.
// Buf may be nil (probe mode).
func NewCursor(w Window) Cursor {
	return Cursor{Buf: w.Buf, Offset: w.Start, Capacity: w.Capacity}
}

func (c *Cursor) checkAdvance(n int) liberr.Error {
	if c.Offset < 0 || n < 0 || c.Offset+n > c.Capacity {
		return liberr.EOutOfBounds.Error()
	}
	return nil
}

// PutU8LE writes one byte at the cursor and advances it. In probe mode
// (Buf == nil) only the offset moves.
func (c *Cursor) PutU8LE(v uint8) liberr.Error {
	if err := c.checkAdvance(1); err != nil {
		return err
	}
	if c.Buf != nil {
		c.Buf[c.Offset] = v
	}
	c.Offset++
	return nil
}

// PutU16LE writes a little-endian uint16 and advances the cursor by 2.
func (c *Cursor) PutU16LE(v uint16) liberr.Error {
	if err := c.checkAdvance(2); err != nil {
		return err
	}
	if c.Buf != nil {
		c.Buf[c.Offset] = byte(v)
		c.Buf[c.Offset+1] = byte(v >> 8)
	}
	c.Offset += 2
	return nil
}

// PutU32LE writes a little-endian uint32 and advances the cursor by 4.
func (c *Cursor) PutU32LE(v uint32) liberr.Error {
	if err := c.checkAdvance(4); err != nil {
		return err
	}
	if c.Buf != nil {
		c.Buf[c.Offset] = byte(v)
		c.Buf[c.Offset+1] = byte(v >> 8)
		c.Buf[c.Offset+2] = byte(v >> 16)
		c.Buf[c.Offset+3] = byte(v >> 24)
	}
	c.Offset += 4
	return nil
}

// PutU64LE writes a little-endian uint64 and advances the cursor by 8.
func (c *Cursor) PutU64LE(v uint64) liberr.Error {
	if err := c.checkAdvance(8); err != nil {
		return err
	}
	if c.Buf != nil {
		for i := 0; i < 8; i++ {
			c.Buf[c.Offset+i] = byte(v >> (8 * i))
		}
	}
	c.Offset += 8
	return nil
}

// GetU8LE reads one byte and advances the cursor. With a nil Buf it fails
// with ENullPtr once the bounds check passes - probe mode only makes sense
// for sizing a write.
func (c *Cursor) GetU8LE() (uint8, liberr.Error) {
	if err := c.checkAdvance(1); err != nil {
		return 0, err
	}
	if c.Buf == nil {
		return 0, liberr.ENullPtr.Error()
	}
	v := c.Buf[c.Offset]
	c.Offset++
	return v, nil
}

// GetU16LE reads a little-endian uint16 and advances the cursor by 2.
func (c *Cursor) GetU16LE() (uint16, liberr.Error) {
	if err := c.checkAdvance(2); err != nil {
		return 0, err
	}
	if c.Buf == nil {
		return 0, liberr.ENullPtr.Error()
	}
	v := uint16(c.Buf[c.Offset]) | uint16(c.Buf[c.Offset+1])<<8
	c.Offset += 2
	return v, nil
}

// GetU32LE reads a little-endian uint32 and advances the cursor by 4.
func (c *Cursor) GetU32LE() (uint32, liberr.Error) {
	if err := c.checkAdvance(4); err != nil {
		return 0, err
	}
	if c.Buf == nil {
		return 0, liberr.ENullPtr.Error()
	}
	v := uint32(c.Buf[c.Offset]) | uint32(c.Buf[c.Offset+1])<<8 |
		uint32(c.Buf[c.Offset+2])<<16 | uint32(c.Buf[c.Offset+3])<<24
	c.Offset += 4
	return v, nil
}

// GetU64LE reads a little-endian uint64 and advances the cursor by 8.
func (c *Cursor) GetU64LE() (uint64, liberr.Error) {
	if err := c.checkAdvance(8); err != nil {
		return 0, err
	}
	if c.Buf == nil {
		return 0, liberr.ENullPtr.Error()
	}
	var v uint64
	for i := 0; i < 8; i++ {
		v |= uint64(c.Buf[c.Offset+i]) << (8 * i)
	}
	c.Offset += 8
	return v, nil
}
