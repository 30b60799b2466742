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

package registry_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	libattr "github.com/sabouaram/plc-core/attrs"
	liberr "github.com/sabouaram/plc-core/errors"
	"github.com/sabouaram/plc-core/layer/layertest"
	liblog "github.com/sabouaram/plc-core/logger"
	"github.com/sabouaram/plc-core/registry"
	"github.com/sabouaram/plc-core/socket/sockettest"
	libtmr "github.com/sabouaram/plc-core/timer"
)

func newAttrs(path string) libattr.Attrs {
	a, err := libattr.New("echo", "127.0.0.1:9999", path, 9999, 0, 64)
	Expect(err).NotTo(HaveOccurred())
	return a
}

var _ = Describe("Registry", func() {
	var r *registry.Registry

	BeforeEach(func() {
		r = registry.New(libtmr.SystemClock{}, 0)
	})

	AfterEach(func() {
		r.Shutdown()
	})

	It("creates exactly one PLC per key and reference-counts repeat callers", func() {
		a := newAttrs("one")

		p1, err := r.GetOrCreate(a, layertest.New(), sockettest.NewFactory(), liblog.Discard(), nil, nil, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(r.Len()).To(Equal(1))

		p2, err := r.GetOrCreate(a, layertest.New(), sockettest.NewFactory(), liblog.Discard(), nil, nil, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(p2).To(BeIdenticalTo(p1))
		Expect(r.Len()).To(Equal(1))
	})

	It("Get returns nil on a miss and the interned PLC on a hit, without touching refcount", func() {
		Expect(r.Get("echo/127.0.0.1:9999/missing")).To(BeNil())

		a := newAttrs("two")
		p, err := r.GetOrCreate(a, layertest.New(), sockettest.NewFactory(), liblog.Discard(), nil, nil, nil)
		Expect(err).NotTo(HaveOccurred())

		Expect(r.Get(a.Key())).To(BeIdenticalTo(p))
	})

	It("keeps the PLC alive until every reference is released", func() {
		a := newAttrs("three")

		_, err := r.GetOrCreate(a, layertest.New(), sockettest.NewFactory(), liblog.Discard(), nil, nil, nil)
		Expect(err).NotTo(HaveOccurred())
		_, err = r.GetOrCreate(a, layertest.New(), sockettest.NewFactory(), liblog.Discard(), nil, nil, nil)
		Expect(err).NotTo(HaveOccurred())

		Expect(r.Release(a.Key())).NotTo(HaveOccurred())
		Expect(r.Get(a.Key())).NotTo(BeNil())

		Expect(r.Release(a.Key())).NotTo(HaveOccurred())
		Expect(r.Get(a.Key())).To(BeNil())
		Expect(r.Len()).To(Equal(0))
	})

	It("reports ENotFound for Reset/Release against an unknown key", func() {
		rerr := r.Reset("nope")
		Expect(rerr).To(HaveOccurred())
		Expect(rerr.HasCode(liberr.ENotFound)).To(BeTrue())

		rerr = r.Release("nope")
		Expect(rerr).To(HaveOccurred())
		Expect(rerr.HasCode(liberr.ENotFound)).To(BeTrue())
	})

	It("Reset leaves the reference count untouched", func() {
		a := newAttrs("four")
		_, err := r.GetOrCreate(a, layertest.New(), sockettest.NewFactory(), liblog.Discard(), nil, nil, nil)
		Expect(err).NotTo(HaveOccurred())
		_, err = r.GetOrCreate(a, layertest.New(), sockettest.NewFactory(), liblog.Discard(), nil, nil, nil)
		Expect(err).NotTo(HaveOccurred())

		Expect(r.Reset(a.Key())).NotTo(HaveOccurred())
		Expect(r.Len()).To(Equal(1))

		Expect(r.Release(a.Key())).NotTo(HaveOccurred())
		Expect(r.Get(a.Key())).NotTo(BeNil(), "one reference should remain after a single release")
	})

	It("Shutdown empties the table regardless of outstanding references", func() {
		a1, a2 := newAttrs("five"), newAttrs("six")
		_, err := r.GetOrCreate(a1, layertest.New(), sockettest.NewFactory(), liblog.Discard(), nil, nil, nil)
		Expect(err).NotTo(HaveOccurred())
		_, err = r.GetOrCreate(a2, layertest.New(), sockettest.NewFactory(), liblog.Discard(), nil, nil, nil)
		Expect(err).NotTo(HaveOccurred())

		Expect(r.Len()).To(Equal(2))
		r.Shutdown()
		Expect(r.Len()).To(Equal(0))
	})

	It("bounds concurrent connect slots when built with a positive cap", func() {
		bounded := registry.New(libtmr.SystemClock{}, 1)

		ctx := context.Background()
		Expect(bounded.AcquireConnectSlot(ctx)).NotTo(HaveOccurred())

		ctx2, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
		defer cancel()
		Expect(bounded.AcquireConnectSlot(ctx2)).To(HaveOccurred(), "second acquire must block until the first slot is released")

		bounded.ReleaseConnectSlot()
		Expect(bounded.AcquireConnectSlot(ctx)).NotTo(HaveOccurred())
		bounded.ReleaseConnectSlot()
	})

	It("never blocks acquiring a connect slot when built unbounded", func() {
		ctx := context.Background()
		for i := 0; i < 8; i++ {
			Expect(r.AcquireConnectSlot(ctx)).NotTo(HaveOccurred())
		}
	})
})
