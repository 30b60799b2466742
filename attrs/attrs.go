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

// Package attrs validates and holds the handful of values the registry
// needs out of a PLC constructor call: family, gateway, path, idle
// timeout, retry interval and initial buffer size. The full attribute
// grammar a family-specific layer builder parses from user-facing tag
// strings is an external collaborator (spec.md §1); this package only
// covers what §4.1 says the registry itself must validate.
package attrs

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	liberr "github.com/sabouaram/plc-core/errors"
	libdur "github.com/sabouaram/plc-core/duration"
)

const (
	// MinIdleTimeout is the lower bound accepted for idle_timeout (spec §3).
	MinIdleTimeout = 0
	// MaxIdleTimeout is the upper bound accepted for idle_timeout (spec §3).
	MaxIdleTimeout = 5000
	// DefaultIdleTimeout is used when the constructor doesn't set one.
	DefaultIdleTimeout = 5000

	// MinRetryInterval is the starting backoff value (spec §5, §7).
	MinRetryInterval = 1000
	// MaxRetryInterval is the backoff ceiling (spec §5, §7).
	MaxRetryInterval = 16000

	// HeartbeatInterval is the fixed re-entry period (spec §4.4).
	HeartbeatInterval = 200

	// DestroyGraceMs bounds how long destroy waits for a clean disconnect (spec §4.1).
	DestroyGraceMs = 500

	minPort = 1
	maxPort = 65535
)

// Attrs is the validated, immutable set of constructor attributes for one PLC.
type Attrs struct {
	Family         string
	Gateway        string
	Host           string
	Port           int
	Path           string
	IdleTimeoutMs  int64
	RetryIntervalMs int64
	BufferSize     int
}

// Key returns the registry interning key: family "/" gateway "/" path.
func (a Attrs) Key() string {
	return a.Family + "/" + a.Gateway + "/" + a.Path
}

// New validates the raw constructor inputs and returns an Attrs, or an
// EBadGateway/ENullPtr error. defaultPort is used when gateway carries no
// explicit port.
func New(family, gateway, path string, defaultPort int, idleTimeoutMs int64, bufferSize int) (Attrs, liberr.Error) {
	if family == "" {
		return Attrs{}, liberr.Newf(liberr.ENullPtr.Uint16(), "family must not be empty")
	}
	if gateway == "" {
		return Attrs{}, liberr.Newf(liberr.ENullPtr.Uint16(), "gateway must not be empty")
	}

	host, port, err := parseGateway(gateway, defaultPort)
	if err != nil {
		return Attrs{}, liberr.EBadGateway.Error(err)
	}

	idle := idleTimeoutMs
	if idle == 0 {
		idle = DefaultIdleTimeout
	}
	if idle < MinIdleTimeout || idle > MaxIdleTimeout {
		return Attrs{}, liberr.Newf(liberr.EBadGateway.Uint16(), "idle_timeout_ms %d out of range [%d,%d]", idle, MinIdleTimeout, MaxIdleTimeout)
	}

	if bufferSize <= 0 {
		bufferSize = 512
	}

	return Attrs{
		Family:          family,
		Gateway:         gateway,
		Host:            host,
		Port:            port,
		Path:            path,
		IdleTimeoutMs:   idle,
		RetryIntervalMs: MinRetryInterval,
		BufferSize:      bufferSize,
	}, nil
}

// parseGateway splits "host[:port]", defaulting the port and rejecting any
// value outside (0, 65535] per spec §4.1.
func parseGateway(gateway string, defaultPort int) (string, int, error) {
	host := gateway
	port := defaultPort

	if strings.Contains(gateway, ":") {
		h, p, err := net.SplitHostPort(gateway)
		if err != nil {
			return "", 0, fmt.Errorf("invalid gateway %q: %w", gateway, err)
		}

		n, err := strconv.Atoi(p)
		if err != nil {
			return "", 0, fmt.Errorf("invalid port in gateway %q: %w", gateway, err)
		}

		host, port = h, n
	}

	if port < minPort || port > maxPort {
		return "", 0, fmt.Errorf("port %d out of range (%d,%d]", port, 0, maxPort)
	}

	return host, port, nil
}

// IdleTimeout returns the idle timeout as a duration.Duration.
func (a Attrs) IdleTimeout() libdur.Duration {
	return libdur.Duration(a.IdleTimeoutMs * int64(time.Millisecond))
}
