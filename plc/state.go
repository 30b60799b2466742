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

package plc

// State names the fourteen states of spec.md §4.2. Dispatch is both the
// initial and the idle state.
type State uint8

const (
	StateDispatchRequests State = iota
	StateReserveSpaceForRequest
	StateBuildRequest
	StateRequestSent
	StateResponseReady
	StateStartConnect
	StateBuildConnectRequest
	StateConnectRequestSent
	StateConnectResponseReady
	StateStartDisconnect
	StateBuildDisconnectRequest
	StateDisconnectRequestSent
	StateDisconnectResponseReady
	StateTerminate
)

func (s State) String() string {
	switch s {
	case StateDispatchRequests:
		return "dispatch_requests"
	case StateReserveSpaceForRequest:
		return "reserve_space_for_request"
	case StateBuildRequest:
		return "build_request"
	case StateRequestSent:
		return "request_sent"
	case StateResponseReady:
		return "response_ready"
	case StateStartConnect:
		return "start_connect"
	case StateBuildConnectRequest:
		return "build_connect_request"
	case StateConnectRequestSent:
		return "connect_request_sent"
	case StateConnectResponseReady:
		return "connect_response_ready"
	case StateStartDisconnect:
		return "start_disconnect"
	case StateBuildDisconnectRequest:
		return "build_disconnect_request"
	case StateDisconnectRequestSent:
		return "disconnect_request_sent"
	case StateDisconnectResponseReady:
		return "disconnect_response_ready"
	case StateTerminate:
		return "terminate"
	default:
		return "unknown"
	}
}
