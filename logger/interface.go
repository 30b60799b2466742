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

// Package logger is a small leveled, structured logger used throughout the
// PLC core. It is a deliberately narrowed rendition of the teacher's
// logger package: one sink (io.Writer), one encoding (newline-delimited
// JSON), built on the kept logger/level and logger/fields sub-packages.
// The full hook/file/syslog/gorm/hashicorp fan-out the teacher supports is
// outside this module's collaborator surface (spec.md §1 excludes logging
// itself as an external collaborator) — callers that need those sinks wrap
// this interface rather than this package growing to cover them.
package logger

import (
	loglvl "github.com/sabouaram/plc-core/logger/level"
	logfld "github.com/sabouaram/plc-core/logger/fields"
)

// Logger is the structured, leveled logging surface the core depends on.
type Logger interface {
	// SetLevel changes the minimal level emitted.
	SetLevel(lvl loglvl.Level)

	// GetLevel returns the minimal level emitted.
	GetLevel() loglvl.Level

	// With returns a derived Logger that always includes the given fields.
	With(f logfld.Fields) Logger

	Debug(message string, f logfld.Fields)
	Info(message string, f logfld.Fields)
	Warning(message string, f logfld.Fields)
	Error(message string, f logfld.Fields)
}
