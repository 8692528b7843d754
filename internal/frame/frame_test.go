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

package frame

import (
	"bytes"
	"errors"
	"testing"
)

func TestChecksum(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		data []byte
		want byte
	}{
		{
			name: "empty data",
			data: []byte{},
			want: 0,
		},
		{
			name: "single byte",
			data: []byte{0x42},
			want: 0x42,
		},
		{
			name: "overflow keeps low byte",
			data: []byte{0xFF, 0x02},
			want: 0x01,
		},
		{
			name: "knock frame prefix",
			data: []byte{0x55, 0xAA, 0x11, 0x00, 0x2C},
			want: 0x3C,
		},
		{
			name: "multiple overflows",
			data: []byte{0xFF, 0xFF, 0xFF, 0xFF},
			want: 0xFC,
		},
	}

	for _, tt := range tests {
		tt := tt // capture loop variable
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Checksum(tt.data); got != tt.want {
				t.Errorf("Checksum() = 0x%02X, want 0x%02X", got, tt.want)
			}
		})
	}
}

func TestEncodeKnock(t *testing.T) {
	t.Parallel()
	got, err := Encode(0x2C, nil)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	want := []byte{0x55, 0xAA, 0x11, 0x00, 0x2C, 0x3C}
	if !bytes.Equal(got, want) {
		t.Errorf("Encode() = % X, want % X", got, want)
	}
}

func TestEncodePayloadTooLarge(t *testing.T) {
	t.Parallel()
	_, err := Encode(0x34, make([]byte, MaxPayloadLen+1))
	if !errors.Is(err, ErrPayloadTooLarge) {
		t.Errorf("Encode() error = %v, want ErrPayloadTooLarge", err)
	}
}

func TestEncodeParseRoundTrip(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		cmd     byte
		payload []byte
	}{
		{name: "no payload", cmd: 0x2C, payload: nil},
		{name: "single byte", cmd: 0x36, payload: []byte{0x01}},
		{name: "algorithm payload", cmd: 0x2D, payload: []byte{0x02, 0x00}},
		{name: "object payload", cmd: 0x2A, payload: []byte{
			0xA0, 0x00, 0x78, 0x00, 0x20, 0x00, 0x30, 0x00, 0x01, 0x00,
		}},
		{name: "max length payload", cmd: 0x34, payload: bytes.Repeat([]byte{0xAB}, MaxPayloadLen)},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			raw, err := Encode(tt.cmd, tt.payload)
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			f, err := Parse(raw)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if f.Command != tt.cmd {
				t.Errorf("Command = 0x%02X, want 0x%02X", f.Command, tt.cmd)
			}
			if !bytes.Equal(f.Payload, tt.payload) {
				t.Errorf("Payload = % X, want % X", f.Payload, tt.payload)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		wantErr error
		name    string
		raw     []byte
	}{
		{
			name:    "too short",
			raw:     []byte{0x55, 0xAA, 0x11, 0x00, 0x2E},
			wantErr: ErrTooShort,
		},
		{
			name:    "declared length exceeds frame",
			raw:     []byte{0x55, 0xAA, 0x11, 0x05, 0x2A, 0x01, 0x02},
			wantErr: ErrLengthMismatch,
		},
		{
			name:    "bad checksum",
			raw:     []byte{0x55, 0xAA, 0x11, 0x00, 0x2E, 0x00},
			wantErr: ErrBadChecksum,
		},
		{
			name:    "flipped payload byte",
			raw:     []byte{0x55, 0xAA, 0x11, 0x01, 0x36, 0x02, 0x48},
			wantErr: ErrBadChecksum,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse(tt.raw)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Parse() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// The protocol transmits the low byte of every 16-bit field first: 0x1234
// must appear on the wire as 34 12.
func TestUint16ByteOrder(t *testing.T) {
	t.Parallel()

	got := AppendUint16(nil, 0x1234)
	want := []byte{0x34, 0x12}
	if !bytes.Equal(got, want) {
		t.Errorf("AppendUint16(0x1234) = % X, want % X", got, want)
	}

	if v := Uint16(want); v != 0x1234 {
		t.Errorf("Uint16(% X) = 0x%04X, want 0x1234", want, v)
	}
}

func TestUint16RoundTrip(t *testing.T) {
	t.Parallel()
	for _, v := range []uint16{0, 1, 0x00FF, 0x0100, 0x1234, 0xFFFF} {
		buf := AppendUint16(nil, v)
		if got := Uint16(buf); got != v {
			t.Errorf("Uint16(AppendUint16(0x%04X)) = 0x%04X", v, got)
		}
	}
}
