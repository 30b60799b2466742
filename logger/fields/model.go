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

package fields

import (
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"
)

type fldModel struct {
	mu sync.RWMutex
	d  map[string]interface{}
}

func (o *fldModel) Add(key string, val interface{}) Fields {
	if o == nil {
		return o
	}

	o.mu.Lock()
	o.d[key] = val
	o.mu.Unlock()

	return o
}

func (o *fldModel) Get(key string) (val interface{}, ok bool) {
	if o == nil {
		return nil, false
	}

	o.mu.RLock()
	defer o.mu.RUnlock()

	val, ok = o.d[key]
	return
}

func (o *fldModel) Merge(src Fields) Fields {
	if o == nil || src == nil {
		return o
	}

	src.Walk(func(key string, val interface{}) bool {
		o.Add(key, val)
		return true
	})

	return o
}

func (o *fldModel) Clone() Fields {
	if o == nil {
		return New()
	}

	c := &fldModel{d: make(map[string]interface{}, len(o.d))}

	o.mu.RLock()
	defer o.mu.RUnlock()

	for k, v := range o.d {
		c.d[k] = v
	}

	return c
}

func (o *fldModel) Walk(fn func(key string, val interface{}) bool) {
	if o == nil || fn == nil {
		return
	}

	o.mu.RLock()
	defer o.mu.RUnlock()

	for k, v := range o.d {
		if !fn(k, v) {
			return
		}
	}
}

func (o *fldModel) Logrus() logrus.Fields {
	f := make(logrus.Fields)

	if o == nil {
		return f
	}

	o.mu.RLock()
	defer o.mu.RUnlock()

	for k, v := range o.d {
		f[k] = v
	}

	return f
}

func (o *fldModel) MarshalJSON() ([]byte, error) {
	if o == nil {
		return json.Marshal(map[string]interface{}{})
	}

	o.mu.RLock()
	defer o.mu.RUnlock()

	return json.Marshal(o.d)
}
