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

package request_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	libreq "github.com/sabouaram/plc-core/request"
)

var _ = Describe("Request", func() {
	It("starts with an invalid id", func() {
		r := libreq.New("ctx", nil, nil)
		Expect(r.ID).To(Equal(libreq.InvalidID))
	})
})

var _ = Describe("Queue", func() {
	It("preserves FIFO order", func() {
		var q libreq.Queue
		a := libreq.New("a", nil, nil)
		b := libreq.New("b", nil, nil)
		c := libreq.New("c", nil, nil)

		q.Push(a)
		q.Push(b)
		q.Push(c)

		Expect(q.Front()).To(Equal(a))
		Expect(q.PopFront()).To(Equal(a))
		Expect(q.PopFront()).To(Equal(b))
		Expect(q.Len()).To(Equal(1))
		Expect(q.PopFront()).To(Equal(c))
		Expect(q.Empty()).To(BeTrue())
	})

	It("reports nil on an empty queue instead of panicking", func() {
		var q libreq.Queue
		Expect(q.Front()).To(BeNil())
		Expect(q.PopFront()).To(BeNil())
	})

	It("removes a request from the middle without disturbing order", func() {
		var q libreq.Queue
		a := libreq.New("a", nil, nil)
		b := libreq.New("b", nil, nil)
		c := libreq.New("c", nil, nil)
		q.Push(a)
		q.Push(b)
		q.Push(c)

		ok := q.Remove(b)
		Expect(ok).To(BeTrue())
		Expect(q.Len()).To(Equal(2))

		var seen []*libreq.Request
		q.Each(func(r *libreq.Request) { seen = append(seen, r) })
		Expect(seen).To(Equal([]*libreq.Request{a, c}))
	})

	It("reports false removing a request that isn't queued", func() {
		var q libreq.Queue
		a := libreq.New("a", nil, nil)
		Expect(q.Remove(a)).To(BeFalse())
	})
})
