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
)

// Protocol errors
var (
	// ErrIncompleteFrame indicates a transport read returned fewer bytes
	// than the frame declared, usually because the channel timed out.
	ErrIncompleteFrame = errors.New("incomplete frame")

	// ErrMalformedFrame indicates a received frame failed structural
	// validation: too short, inconsistent declared length, or bad checksum.
	ErrMalformedFrame = errors.New("malformed frame")

	// ErrUnknownResponse indicates a structurally valid frame carried a
	// command byte the decoder does not recognize. It is a soft failure:
	// the device remains usable for the next command.
	ErrUnknownResponse = errors.New("unknown response command")
)

// Transport errors
var (
	ErrTransportWrite   = errors.New("transport write failed")
	ErrTransportRead    = errors.New("transport read failed")
	ErrTransportTimeout = errors.New("transport timeout")
	ErrNotConnected     = errors.New("transport not connected")
	ErrDeviceNotFound   = errors.New("device not found")
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrDataTooLarge     = errors.New("data too large for frame")
)

// ErrorType classifies errors for retry decisions
type ErrorType int

const (
	// ErrorTypePermanent indicates an error that will not succeed on retry
	ErrorTypePermanent ErrorType = iota
	// ErrorTypeTransient indicates an error that may succeed on retry
	ErrorTypeTransient
	// ErrorTypeTimeout indicates a timeout that may succeed on retry
	ErrorTypeTimeout
)

// TransportError wraps an error from a transport operation with enough
// context to classify it.
type TransportError struct {
	Err       error
	Op        string
	Port      string
	Type      ErrorType
	Retryable bool
}

func (e *TransportError) Error() string {
	if e.Port != "" {
		return fmt.Sprintf("%s on %s: %v", e.Op, e.Port, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewTransportError creates a TransportError with the given classification
func NewTransportError(op, port string, err error, errType ErrorType) *TransportError {
	return &TransportError{
		Op:        op,
		Port:      port,
		Err:       err,
		Type:      errType,
		Retryable: errType == ErrorTypeTransient || errType == ErrorTypeTimeout,
	}
}

// NewTimeoutError creates a TransportError for a read that timed out
func NewTimeoutError(op, port string) *TransportError {
	return NewTransportError(op, port, ErrTransportTimeout, ErrorTypeTimeout)
}

// NewWriteError creates a TransportError for a failed write
func NewWriteError(op, port string, err error) *TransportError {
	return &TransportError{
		Op:        op,
		Port:      port,
		Err:       fmt.Errorf("%w: %w", ErrTransportWrite, err),
		Type:      ErrorTypePermanent,
		Retryable: false,
	}
}

// IsRetryable reports whether the error is worth retrying at the session
// level. Frame-level failures (incomplete or malformed frames) and transport
// timeouts are transient; write failures and parameter errors are not.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var te *TransportError
	if errors.As(err, &te) {
		return te.Retryable
	}

	switch {
	case errors.Is(err, ErrIncompleteFrame),
		errors.Is(err, ErrMalformedFrame),
		errors.Is(err, ErrTransportTimeout),
		errors.Is(err, ErrTransportRead):
		return true
	default:
		return false
	}
}

// GetErrorType returns the classification of an error
func GetErrorType(err error) ErrorType {
	if err == nil {
		return ErrorTypePermanent
	}

	var te *TransportError
	if errors.As(err, &te) {
		return te.Type
	}

	switch {
	case errors.Is(err, ErrTransportTimeout), errors.Is(err, ErrIncompleteFrame):
		return ErrorTypeTimeout
	case errors.Is(err, ErrMalformedFrame), errors.Is(err, ErrTransportRead):
		return ErrorTypeTransient
	default:
		return ErrorTypePermanent
	}
}
