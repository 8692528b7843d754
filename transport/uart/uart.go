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

// Package uart provides the serial transport implementation for HuskyLens
package uart

import (
	"fmt"
	"time"

	huskylens "github.com/HenryJaiyeoba/go-huskylens"
	"go.bug.st/serial"
)

const (
	// DefaultBaudRate matches the sensor's default serial configuration
	DefaultBaudRate = 9600

	// controlLineDelay is how long the sensor needs after DTR/RTS are
	// dropped before it will accept traffic
	controlLineDelay = 100 * time.Millisecond
)

// Transport implements the huskylens.Transport interface over a serial port
type Transport struct {
	port     serial.Port
	portName string
	timeout  time.Duration
}

// New creates a new UART transport at the default baud rate
func New(portName string) (*Transport, error) {
	return NewWithBaudRate(portName, DefaultBaudRate)
}

// NewWithBaudRate creates a new UART transport at the given baud rate.
// The port is opened 8N1 with both control lines dropped; callers should
// allow the sensor a settle delay before the first command.
func NewWithBaudRate(portName string, baudRate int) (*Transport, error) {
	mode := &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", portName, err)
	}

	t := &Transport{
		port:     port,
		portName: portName,
		timeout:  500 * time.Millisecond,
	}

	// The sensor resets if DTR/RTS are asserted on open
	_ = port.SetDTR(false)
	_ = port.SetRTS(false)
	time.Sleep(controlLineDelay)

	if err := port.SetReadTimeout(t.timeout); err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("failed to set read timeout: %w", err)
	}

	return t, nil
}

// WriteBytes writes a command frame to the sensor. Both port buffers are
// discarded first so a response is never parsed against bytes left over
// from an earlier command.
func (t *Transport) WriteBytes(data []byte) error {
	if t.port == nil {
		return huskylens.ErrNotConnected
	}

	if err := t.FlushBuffers(); err != nil {
		return err
	}

	n, err := t.port.Write(data)
	if err != nil {
		return huskylens.NewWriteError("writeBytes", t.portName, err)
	}
	if n != len(data) {
		return huskylens.NewWriteError("writeBytes", t.portName,
			fmt.Errorf("short write: %d of %d bytes", n, len(data)))
	}
	return nil
}

// ReadExactly reads exactly n bytes from the port. The port's read timeout
// bounds each Read call; a read that returns no data means the sensor went
// quiet and the whole operation fails.
func (t *Transport) ReadExactly(n int) ([]byte, error) {
	if t.port == nil {
		return nil, huskylens.ErrNotConnected
	}

	buf := make([]byte, n)
	off := 0
	for off < n {
		read, err := t.port.Read(buf[off:])
		if err != nil {
			return nil, huskylens.NewTransportError("readExactly", t.portName,
				fmt.Errorf("%w: %w", huskylens.ErrTransportRead, err), huskylens.ErrorTypeTransient)
		}
		if read == 0 {
			// go.bug.st/serial reports a timeout as a zero-byte read
			return nil, huskylens.NewTimeoutError("readExactly", t.portName)
		}
		off += read
	}
	return buf, nil
}

// FlushBuffers discards both the input and output buffers
func (t *Transport) FlushBuffers() error {
	if t.port == nil {
		return huskylens.ErrNotConnected
	}
	if err := t.port.ResetInputBuffer(); err != nil {
		return fmt.Errorf("failed to reset input buffer: %w", err)
	}
	if err := t.port.ResetOutputBuffer(); err != nil {
		return fmt.Errorf("failed to reset output buffer: %w", err)
	}
	return nil
}

// SetTimeout sets the read timeout for the transport
func (t *Transport) SetTimeout(timeout time.Duration) error {
	if t.port == nil {
		return huskylens.ErrNotConnected
	}
	if timeout <= 0 {
		return huskylens.ErrInvalidParameter
	}
	if err := t.port.SetReadTimeout(timeout); err != nil {
		return fmt.Errorf("failed to set read timeout: %w", err)
	}
	t.timeout = timeout
	return nil
}

// IsConnected returns true if the transport is connected
func (t *Transport) IsConnected() bool {
	return t.port != nil
}

// Close closes the serial port
func (t *Transport) Close() error {
	if t.port == nil {
		return nil
	}
	if err := t.port.Close(); err != nil {
		return fmt.Errorf("failed to close serial port: %w", err)
	}
	t.port = nil
	return nil
}

// Type returns the transport type
func (*Transport) Type() huskylens.TransportType {
	return huskylens.TransportUART
}

// Ensure Transport implements huskylens.Transport
var _ huskylens.Transport = (*Transport)(nil)
