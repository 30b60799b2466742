/***********************************************************************************************************************
 *
 *   MIT License
 *
 *   Copyright (c) 2022 Nicolas JUHEL
 *
 *   Permission is hereby granted, free of charge, to any person obtaining a copy
 *   of this software and associated documentation files (the "Software"), to deal
 *   in the Software without restriction, including without limitation the rights
 *   to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 *   copies of the Software, and to permit persons to whom the Software is
 *   furnished to do so, subject to the following conditions:
 *
 *   The above copyright notice and this permission notice shall be included in all
 *   copies or substantial portions of the Software.
 *
 *   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 *   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 *   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 *   AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 *   LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 *   OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 *   SOFTWARE.
 *
 *
 **********************************************************************************************************************/

// Package duration is a day-aware time.Duration, used for idle_timeout_ms,
// retry_interval_ms and the heartbeat period (SPEC_FULL.md §10.3). Parse/
// ParseByte are the boundary this module's PLC constructors expect the
// tag-grammar collaborator (spec.md §1, out of scope here) to have already
// used to turn an attribute string like "5s" or "200ms" into a Duration
// before calling in.
//
// Trimmed from the teacher's package: the JSON/YAML/TOML/CBOR marshalling,
// Viper decode hook, truncation helpers, and PID-controller-spaced range
// generation have no caller anywhere in this module (retry_interval_ms's
// backoff is an exact doubling per spec.md §8, not a spaced range) and are
// dropped rather than carried as unused surface.
package duration

import (
	"time"
)

type Duration time.Duration

// Parse parses a string representing a duration and returns a Duration.
//
// The string is in the format "XdYhZmWs" where X, Y, Z and W are integers
// representing days, hours, minutes and seconds; all components are
// optional. The function is case insensitive and tolerates surrounding
// quotes and whitespace.
func Parse(s string) (Duration, error) {
	return parseString(s)
}

// ParseByte parses a byte slice representing a duration, per Parse.
func ParseByte(p []byte) (Duration, error) {
	return parseString(string(p))
}

// ParseDuration wraps a time.Duration as a Duration without modifying it.
func ParseDuration(d time.Duration) Duration {
	return Duration(d)
}
