/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
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

package level_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	loglvl "github.com/sabouaram/plc-core/logger/level"
)

var _ = Describe("Level", func() {
	Describe("Uint8", func() {
		It("orders levels from most to least severe", func() {
			Expect(loglvl.ErrorLevel.Uint8()).To(Equal(uint8(0)))
			Expect(loglvl.WarnLevel.Uint8()).To(Equal(uint8(1)))
			Expect(loglvl.InfoLevel.Uint8()).To(Equal(uint8(2)))
			Expect(loglvl.DebugLevel.Uint8()).To(Equal(uint8(3)))
			Expect(loglvl.NilLevel.Uint8()).To(Equal(uint8(4)))
		})
	})

	Describe("String", func() {
		It("renders each level's name", func() {
			Expect(loglvl.ErrorLevel.String()).To(Equal("Error"))
			Expect(loglvl.WarnLevel.String()).To(Equal("Warning"))
			Expect(loglvl.InfoLevel.String()).To(Equal("Info"))
			Expect(loglvl.DebugLevel.String()).To(Equal("Debug"))
		})

		It("renders NilLevel as empty", func() {
			Expect(loglvl.NilLevel.String()).To(Equal(""))
		})

		It("renders an out-of-range value as unknown", func() {
			Expect(loglvl.Level(99).String()).To(Equal("unknown"))
		})
	})
})
