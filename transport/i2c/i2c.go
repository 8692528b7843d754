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

// Package i2c provides the I2C transport implementation for HuskyLens
package i2c

import (
	"fmt"
	"time"

	huskylens "github.com/HenryJaiyeoba/go-huskylens"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
)

const (
	// DefaultAddress is the HuskyLens I2C slave address
	DefaultAddress = 0x32

	// writeRegister is the register byte prefixed to every outbound frame.
	// The sensor firmware expects block writes addressed to register 0x0C.
	writeRegister = 0x0C

	// Max clock frequency (400 kHz).
	maxClockFreq = 400 * physic.KiloHertz
)

// Transport implements the huskylens.Transport interface for I2C
// communication. The sensor has no burst-read guarantee on this bus, so
// responses are read one byte per bus transaction.
type Transport struct {
	dev     *i2c.Dev
	busName string
	timeout time.Duration
}

// New creates a new I2C transport at the sensor's default address
func New(busName string) (*Transport, error) {
	return NewWithAddress(busName, DefaultAddress)
}

// NewWithAddress creates a new I2C transport for a sensor at a
// non-default address
func NewWithAddress(busName string, addr uint16) (*Transport, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize periph host: %w", err)
	}

	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("failed to open I2C bus %s: %w", busName, err)
	}

	dev := &i2c.Dev{Addr: addr, Bus: bus}

	// Ignore error, continue with default speed
	_ = bus.SetSpeed(maxClockFreq)

	return &Transport{
		dev:     dev,
		busName: busName,
		timeout: 500 * time.Millisecond,
	}, nil
}

// WriteBytes writes a command frame to the sensor as one block write
// addressed to the frame register
func (t *Transport) WriteBytes(data []byte) error {
	if t.dev == nil {
		return huskylens.ErrNotConnected
	}

	buf := make([]byte, 0, len(data)+1)
	buf = append(buf, writeRegister)
	buf = append(buf, data...)

	if err := t.dev.Tx(buf, nil); err != nil {
		return huskylens.NewWriteError("writeBytes", t.busName, err)
	}
	return nil
}

// ReadExactly reads exactly n bytes, one bus transaction per byte. Any
// single failed byte read fails the whole operation; the sensor holds no
// read cursor the host could resynchronize against.
func (t *Transport) ReadExactly(n int) ([]byte, error) {
	if t.dev == nil {
		return nil, huskylens.ErrNotConnected
	}

	buf := make([]byte, n)
	single := make([]byte, 1)
	for i := 0; i < n; i++ {
		if err := t.dev.Tx(nil, single); err != nil {
			return nil, huskylens.NewTransportError("readExactly", t.busName,
				fmt.Errorf("%w: byte %d of %d: %w", huskylens.ErrTransportRead, i+1, n, err),
				huskylens.ErrorTypeTimeout)
		}
		buf[i] = single[0]
	}
	return buf, nil
}

// FlushBuffers is a no-op: the bus holds no host-side buffer to discard
func (t *Transport) FlushBuffers() error {
	if t.dev == nil {
		return huskylens.ErrNotConnected
	}
	return nil
}

// SetTimeout sets the read timeout for the transport
func (t *Transport) SetTimeout(timeout time.Duration) error {
	if timeout <= 0 {
		return huskylens.ErrInvalidParameter
	}
	t.timeout = timeout
	return nil
}

// IsConnected returns true if the transport is connected
func (t *Transport) IsConnected() bool {
	return t.dev != nil
}

// Close closes the transport connection
func (t *Transport) Close() error {
	// periph.io handles bus cleanup automatically
	t.dev = nil
	return nil
}

// Type returns the transport type
func (*Transport) Type() huskylens.TransportType {
	return huskylens.TransportI2C
}

// Ensure Transport implements huskylens.Transport
var _ huskylens.Transport = (*Transport)(nil)
