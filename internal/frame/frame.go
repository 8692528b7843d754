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

// Package frame provides frame construction, parsing and protocol constants
// for HuskyLens communication.
package frame

import (
	"errors"
	"fmt"
)

// Frame markers and control bytes
const (
	Header0 = 0x55 // First frame header byte
	Header1 = 0xAA // Second frame header byte
	Address = 0x11 // Device address, fixed by the protocol on every transport
)

// Frame size limits
const (
	// HeaderLen is header(2) + address(1) + length(1) + command(1).
	HeaderLen = 5
	// MinFrameLen is the shortest complete frame: header block plus checksum.
	MinFrameLen = HeaderLen + 1
	// MaxPayloadLen is the largest payload a single length byte can declare.
	MaxPayloadLen = 255
)

// Parse and Encode errors
var (
	ErrTooShort        = errors.New("frame shorter than minimum length")
	ErrLengthMismatch  = errors.New("declared payload length does not match frame size")
	ErrBadChecksum     = errors.New("checksum mismatch")
	ErrPayloadTooLarge = errors.New("payload exceeds maximum frame length")
)

// Frame is one complete protocol unit: header, command, payload and checksum.
type Frame struct {
	Payload  []byte
	Command  byte
	Checksum byte
}

// Checksum computes the frame checksum: the low byte of the arithmetic sum
// of all bytes from the header through the payload.
func Checksum(data []byte) byte {
	var sum int
	for _, b := range data {
		sum += int(b)
	}
	return byte(sum)
}

// Encode builds a complete wire frame for the given command and payload.
// The payload must already be in wire byte order (see AppendUint16).
func Encode(cmd byte, payload []byte) ([]byte, error) {
	if len(payload) > MaxPayloadLen {
		return nil, fmt.Errorf("%w: %d bytes", ErrPayloadTooLarge, len(payload))
	}

	buf := make([]byte, 0, HeaderLen+len(payload)+1)
	buf = append(buf, Header0, Header1, Address, byte(len(payload)), cmd)
	buf = append(buf, payload...)
	buf = append(buf, Checksum(buf))
	return buf, nil
}

// Parse validates a complete received frame and extracts its command,
// payload and checksum. The raw slice must hold the full frame including
// the trailing checksum byte.
func Parse(raw []byte) (*Frame, error) {
	if len(raw) < MinFrameLen {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooShort, len(raw))
	}

	payloadLen := int(raw[3])
	if len(raw) < HeaderLen+payloadLen+1 {
		return nil, fmt.Errorf("%w: declared %d, frame %d bytes",
			ErrLengthMismatch, payloadLen, len(raw))
	}

	end := HeaderLen + payloadLen
	received := raw[end]
	if computed := Checksum(raw[:end]); computed != received {
		return nil, fmt.Errorf("%w: computed %02X, received %02X",
			ErrBadChecksum, computed, received)
	}

	f := &Frame{
		Command:  raw[4],
		Checksum: received,
	}
	if payloadLen > 0 {
		f.Payload = append([]byte(nil), raw[HeaderLen:end]...)
	}
	return f, nil
}

// AppendUint16 appends a 16-bit value in the protocol's swapped byte order:
// the low byte of the value is transmitted before the high byte. A value of
// 0x1234 produces the wire bytes 34 12.
func AppendUint16(dst []byte, v uint16) []byte {
	return append(dst, byte(v), byte(v>>8))
}

// Uint16 decodes a 16-bit value from the protocol's swapped byte order,
// reversing AppendUint16. b must hold at least two bytes.
func Uint16(b []byte) uint16 {
	return uint16(b[0]) | uint16(b[1])<<8
}
