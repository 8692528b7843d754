// go-huskylens
// Copyright (c) 2025 Henry Jaiyeoba.
// SPDX-License-Identifier: LGPL-3.0-or-later
//
// This file is part of go-huskylens.
//
// go-huskylens is free software; you can redistribute it and/or
// modify it under the terms of the GNU Lesser General Public
// License as published by the Free Software Foundation; either
// version 3 of the License, or (at your option) any later version.
//
// go-huskylens is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with go-huskylens; if not, write to the Free Software Foundation,
// Inc., 51 Franklin Street, Fifth Floor, Boston, MA  02110-1301, USA.

package huskylens

import (
	"sync"
	"time"
)

// MockTransport is an in-memory Transport for tests. Writes are recorded
// and reads are served from a queued byte stream; a read that outruns the
// queue fails the way a real timeout would, consuming the bytes that were
// available.
type MockTransport struct {
	WriteErr error

	// FailReads makes the next n ReadExactly calls time out without
	// consuming the queue, simulating a sensor that went quiet and then
	// recovered.
	FailReads int

	mu         sync.Mutex
	readQueue  []byte
	writes     [][]byte
	flushCount int
	timeout    time.Duration
	closed     bool
}

// NewMockTransport creates an empty mock transport
func NewMockTransport() *MockTransport {
	return &MockTransport{timeout: time.Second}
}

// QueueResponse appends raw frames to the read stream
func (m *MockTransport) QueueResponse(frames ...[]byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, f := range frames {
		m.readQueue = append(m.readQueue, f...)
	}
}

// Writes returns every buffer written so far
func (m *MockTransport) Writes() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]byte(nil), m.writes...)
}

// FlushCount returns how many times FlushBuffers was called
func (m *MockTransport) FlushCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.flushCount
}

// Pending returns the number of unread bytes in the queue
func (m *MockTransport) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.readQueue)
}

// WriteBytes records the written frame
func (m *MockTransport) WriteBytes(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrNotConnected
	}
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.writes = append(m.writes, append([]byte(nil), data...))
	return nil
}

// ReadExactly pops n bytes from the queue. If fewer are available it
// consumes what is there and reports a timeout, like a real channel that
// went quiet mid-frame.
func (m *MockTransport) ReadExactly(n int) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, ErrNotConnected
	}
	if m.FailReads > 0 {
		m.FailReads--
		return nil, NewTimeoutError("readExactly", "mock")
	}
	if len(m.readQueue) < n {
		m.readQueue = nil
		return nil, NewTimeoutError("readExactly", "mock")
	}
	out := append([]byte(nil), m.readQueue[:n]...)
	m.readQueue = m.readQueue[n:]
	return out, nil
}

// FlushBuffers discards any unread bytes
func (m *MockTransport) FlushBuffers() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readQueue = nil
	m.flushCount++
	return nil
}

// SetTimeout records the timeout
func (m *MockTransport) SetTimeout(timeout time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if timeout <= 0 {
		return ErrInvalidParameter
	}
	m.timeout = timeout
	return nil
}

// IsConnected returns true until Close is called
func (m *MockTransport) IsConnected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.closed
}

// Close marks the transport closed
func (m *MockTransport) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Type returns the mock transport type
func (*MockTransport) Type() TransportType {
	return TransportMock
}

// Ensure MockTransport implements Transport
var _ Transport = (*MockTransport)(nil)
