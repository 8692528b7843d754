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
	"errors"
	"fmt"
	"testing"
)

func TestIsRetryable(t *testing.T) {
	t.Parallel()
	tests := []struct {
		err  error
		name string
		want bool
	}{
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
		{
			name: "incomplete frame retryable",
			err:  ErrIncompleteFrame,
			want: true,
		},
		{
			name: "malformed frame retryable",
			err:  ErrMalformedFrame,
			want: true,
		},
		{
			name: "transport timeout retryable",
			err:  ErrTransportTimeout,
			want: true,
		},
		{
			name: "transport read retryable",
			err:  ErrTransportRead,
			want: true,
		},
		{
			name: "wrapped incomplete frame retryable",
			err:  fmt.Errorf("header: %w", ErrIncompleteFrame),
			want: true,
		},
		{
			name: "unknown response not retryable",
			err:  ErrUnknownResponse,
			want: false,
		},
		{
			name: "invalid parameter not retryable",
			err:  ErrInvalidParameter,
			want: false,
		},
		{
			name: "not connected not retryable",
			err:  ErrNotConnected,
			want: false,
		},
		{
			name: "timeout transport error retryable",
			err:  NewTimeoutError("readExactly", "mock"),
			want: true,
		},
		{
			name: "write transport error not retryable",
			err:  NewWriteError("writeBytes", "mock", errors.New("bus fault")),
			want: false,
		},
	}

	for _, tt := range tests {
		tt := tt // capture loop variable
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetErrorType(t *testing.T) {
	t.Parallel()
	tests := []struct {
		err  error
		name string
		want ErrorType
	}{
		{
			name: "nil error",
			err:  nil,
			want: ErrorTypePermanent,
		},
		{
			name: "incomplete frame is timeout",
			err:  ErrIncompleteFrame,
			want: ErrorTypeTimeout,
		},
		{
			name: "malformed frame is transient",
			err:  ErrMalformedFrame,
			want: ErrorTypeTransient,
		},
		{
			name: "unknown response is permanent",
			err:  ErrUnknownResponse,
			want: ErrorTypePermanent,
		},
		{
			name: "transport error carries its type",
			err:  NewTransportError("op", "port", ErrTransportRead, ErrorTypeTransient),
			want: ErrorTypeTransient,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := GetErrorType(tt.err); got != tt.want {
				t.Errorf("GetErrorType() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTransportErrorFormatting(t *testing.T) {
	t.Parallel()

	err := NewTimeoutError("readExactly", "/dev/ttyUSB0")
	if got := err.Error(); got != "readExactly on /dev/ttyUSB0: transport timeout" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(err, ErrTransportTimeout) {
		t.Error("expected errors.Is(err, ErrTransportTimeout)")
	}

	bare := NewTransportError("flush", "", ErrTransportRead, ErrorTypeTransient)
	if got := bare.Error(); got != "flush: transport read failed" {
		t.Errorf("Error() = %q", got)
	}
}
