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

import "time"

// Transport defines the byte channel used to reach a HuskyLens.
// This can be implemented by UART or I2C backends.
//
// The protocol is half-duplex: the device never speaks unprompted, so a
// Transport only needs ordered writes and exact-length reads. Reads must
// observe the timeout set with SetTimeout and return an error when fewer
// bytes than requested arrive in time.
type Transport interface {
	// WriteBytes writes a complete command frame to the device
	WriteBytes(data []byte) error

	// ReadExactly reads exactly n bytes, failing if the timeout elapses first
	ReadExactly(n int) ([]byte, error)

	// FlushBuffers discards any stale bytes buffered in either direction
	FlushBuffers() error

	// SetTimeout sets the read timeout. The timeout must be finite and
	// positive; an unbounded read is a configuration error.
	SetTimeout(timeout time.Duration) error

	// IsConnected returns true if the transport is connected
	IsConnected() bool

	// Close closes the transport connection
	Close() error

	// Type returns the transport type
	Type() TransportType
}

// TransportType represents the type of transport
type TransportType string

const (
	// TransportUART represents UART/serial transport.
	TransportUART TransportType = "uart"
	// TransportI2C represents I2C bus transport.
	TransportI2C TransportType = "i2c"
	// TransportMock represents a mock transport for testing
	TransportMock TransportType = "mock"
)
