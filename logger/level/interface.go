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

// Package level is the severity ladder the PLC core's logger (logger.Logger)
// thresholds and tags entries with. It mirrors exactly the four levels
// Logger emits (Debug/Info/Warning/Error), plus NilLevel to disable logging
// entirely (logger.Discard).
//
// Trimmed from the teacher's package, which also carried PanicLevel/
// FatalLevel, a Parse/ParseFromInt/ParseFromUint32 family for loading a
// level from config, and Code()/Int()/Uint32()/Logrus() conversions: this
// module never configures its log level from a string or numeric source
// (log verbosity isn't one of the PLC's attributes), and Logger has no
// Panic/Fatal method, so that surface has no caller to adapt and is
// dropped rather than kept unexercised.
package level

// Level represents a logging severity, ordered from most severe
// (ErrorLevel=0) to least severe (DebugLevel=3). NilLevel (4) disables
// logging.
type Level uint8

const (
	ErrorLevel Level = iota
	WarnLevel
	InfoLevel
	DebugLevel
	NilLevel
)
