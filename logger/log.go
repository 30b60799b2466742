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

package logger

import (
	"encoding/json"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	logfld "github.com/sabouaram/plc-core/logger/fields"
	loglvl "github.com/sabouaram/plc-core/logger/level"
)

type logEntry struct {
	Time    string                 `json:"time"`
	Level   string                 `json:"level"`
	Message string                 `json:"message"`
	Fields  map[string]interface{} `json:"fields,omitempty"`
}

type jsonLogger struct {
	mu  sync.Mutex
	out io.Writer
	lvl atomic.Uint32
	std logfld.Fields
}

// New returns a Logger that writes newline-delimited JSON records to w at
// or above the given minimal level.
func New(w io.Writer, lvl loglvl.Level) Logger {
	l := &jsonLogger{out: w, std: logfld.New()}
	l.lvl.Store(uint32(lvl))
	return l
}

// Discard returns a Logger that drops every record. Callers that don't
// supply a Logger (e.g. plc.New) get this instead of a nil check at every
// call site.
func Discard() Logger {
	return New(io.Discard, loglvl.NilLevel)
}

func (o *jsonLogger) SetLevel(lvl loglvl.Level) {
	o.lvl.Store(uint32(lvl))
}

func (o *jsonLogger) GetLevel() loglvl.Level {
	return loglvl.Level(o.lvl.Load())
}

func (o *jsonLogger) With(f logfld.Fields) Logger {
	n := &jsonLogger{out: o.out, std: o.std.Clone()}
	n.lvl.Store(o.lvl.Load())
	n.std.Merge(f)
	return n
}

func (o *jsonLogger) write(lvl loglvl.Level, message string, f logfld.Fields) {
	threshold := o.GetLevel()
	if threshold == loglvl.NilLevel || lvl.Uint8() > threshold.Uint8() {
		return
	}

	merged := o.std.Clone()
	if f != nil {
		merged.Merge(f)
	}

	e := logEntry{
		Time:    time.Now().UTC().Format(time.RFC3339Nano),
		Level:   lvl.String(),
		Message: message,
		Fields:  logrusToMap(merged.Logrus()),
	}

	p, err := json.Marshal(e)
	if err != nil {
		return
	}
	p = append(p, '\n')

	o.mu.Lock()
	defer o.mu.Unlock()

	_, _ = o.out.Write(p)
}

func logrusToMap(f logrus.Fields) map[string]interface{} {
	if len(f) == 0 {
		return nil
	}

	m := make(map[string]interface{}, len(f))
	for k, v := range f {
		m[k] = v
	}

	return m
}

func (o *jsonLogger) Debug(message string, f logfld.Fields)   { o.write(loglvl.DebugLevel, message, f) }
func (o *jsonLogger) Info(message string, f logfld.Fields)    { o.write(loglvl.InfoLevel, message, f) }
func (o *jsonLogger) Warning(message string, f logfld.Fields) { o.write(loglvl.WarnLevel, message, f) }
func (o *jsonLogger) Error(message string, f logfld.Fields)   { o.write(loglvl.ErrorLevel, message, f) }
