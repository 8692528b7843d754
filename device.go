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
	"time"

	"github.com/HenryJaiyeoba/go-huskylens/internal/frame"
	"github.com/rs/zerolog"
)

const envelopeLen = 6 // three 16-bit fields

// DeviceConfig contains configuration options for the Device
type DeviceConfig struct {
	// Timeout is the read timeout for a single transport read
	Timeout time.Duration
	// RetryDelay is the pause before the single command retry
	RetryDelay time.Duration
}

// DefaultDeviceConfig returns default device configuration
func DefaultDeviceConfig() *DeviceConfig {
	return &DeviceConfig{
		Timeout:    500 * time.Millisecond,
		RetryDelay: 100 * time.Millisecond,
	}
}

// Device represents a HuskyLens vision sensor.
//
// Thread Safety: Device is NOT thread-safe. One command is in flight at a
// time and the transport is exclusively owned by the Device for the
// duration of a command. Callers needing concurrent access must serialize
// externally, typically by running commands from a single worker goroutine.
type Device struct {
	transport Transport
	config    *DeviceConfig
	log       zerolog.Logger

	// retryAvailable is the single piece of cross-command state: it is
	// reset at the start of every command and cleared only while the one
	// permitted retry is in flight.
	retryAvailable bool
}

// New creates a new HuskyLens device on the given transport
func New(transport Transport, opts ...Option) (*Device, error) {
	device := &Device{
		transport:      transport,
		config:         DefaultDeviceConfig(),
		log:            zerolog.Nop(),
		retryAvailable: true,
	}

	for _, opt := range opts {
		if err := opt(device); err != nil {
			return nil, err
		}
	}

	if err := transport.SetTimeout(device.config.Timeout); err != nil {
		return nil, fmt.Errorf("failed to set transport timeout: %w", err)
	}

	return device, nil
}

// Transport returns the underlying transport
func (d *Device) Transport() Transport {
	return d.transport
}

// SetTimeout sets the read timeout for transport operations
func (d *Device) SetTimeout(timeout time.Duration) error {
	if timeout <= 0 {
		return fmt.Errorf("%w: timeout must be finite and positive", ErrInvalidParameter)
	}
	d.config.Timeout = timeout
	if err := d.transport.SetTimeout(timeout); err != nil {
		return fmt.Errorf("failed to set timeout on transport: %w", err)
	}
	return nil
}

// Close closes the device connection
func (d *Device) Close() error {
	if d.transport != nil {
		if err := d.transport.Close(); err != nil {
			return fmt.Errorf("failed to close transport: %w", err)
		}
	}
	return nil
}

// commandResult is the decoded outcome of one command exchange
type commandResult struct {
	envelope     *ResultEnvelope
	objects      []Object
	acknowledged bool
}

// runCommand executes one encode, write, read, decode cycle with the
// protocol's single-retry policy. Frame-level failures (a timed-out read or
// a structurally invalid frame) are retried once; after the second
// consecutive failure the transport buffers are flushed so stale bytes
// cannot shift the next command's header alignment. Write failures and
// unknown response commands are returned without retrying.
func (d *Device) runCommand(cmd byte, payload []byte) (*commandResult, error) {
	raw, err := frame.Encode(cmd, payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataTooLarge, err)
	}

	d.retryAvailable = true
	for {
		res, err := d.exchange(raw)
		if err == nil {
			d.retryAvailable = true
			return res, nil
		}

		if !IsRetryable(err) {
			return nil, err
		}

		if d.retryAvailable {
			d.retryAvailable = false
			d.log.Debug().Err(err).Hex("cmd", []byte{cmd}).Msg("command failed, retrying once")
			time.Sleep(d.config.RetryDelay)
			continue
		}

		if flushErr := d.transport.FlushBuffers(); flushErr != nil {
			d.log.Warn().Err(flushErr).Msg("flush after failed command")
		}
		return nil, fmt.Errorf("command 0x%02X failed after retry: %w", cmd, err)
	}
}

// exchange performs a single write and response decode
func (d *Device) exchange(raw []byte) (*commandResult, error) {
	if err := d.transport.WriteBytes(raw); err != nil {
		return nil, fmt.Errorf("write command: %w", err)
	}

	f, err := d.readFrame()
	if err != nil {
		return nil, err
	}

	switch f.Command {
	case respAcknowledge:
		return &commandResult{acknowledged: true}, nil

	case respResultInfo:
		envelope, err := decodeEnvelope(f.Payload)
		if err != nil {
			return nil, err
		}
		objects, err := d.readObjects(envelope.ObjectCount)
		if err != nil {
			return nil, err
		}
		return &commandResult{envelope: envelope, objects: objects}, nil

	default:
		d.log.Warn().Hex("command", []byte{f.Command}).Msg("unrecognized response command")
		return nil, fmt.Errorf("%w: 0x%02X", ErrUnknownResponse, f.Command)
	}
}

// readFrame reads one complete frame from the transport: the fixed header
// block, the declared payload, then the checksum byte. A short read at any
// stage is an incomplete frame; structural problems are malformed frames.
func (d *Device) readFrame() (*frame.Frame, error) {
	header, err := d.transport.ReadExactly(frame.HeaderLen)
	if err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrIncompleteFrame, err)
	}

	raw := make([]byte, 0, frame.HeaderLen+int(header[3])+1)
	raw = append(raw, header...)

	if payloadLen := int(header[3]); payloadLen > 0 {
		payload, err := d.transport.ReadExactly(payloadLen)
		if err != nil {
			return nil, fmt.Errorf("%w: payload: %w", ErrIncompleteFrame, err)
		}
		raw = append(raw, payload...)
	}

	checksum, err := d.transport.ReadExactly(1)
	if err != nil {
		return nil, fmt.Errorf("%w: checksum: %w", ErrIncompleteFrame, err)
	}
	raw = append(raw, checksum...)

	f, err := frame.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedFrame, err)
	}
	return f, nil
}

// decodeEnvelope decodes the 6-byte result envelope preceding the
// per-object frames
func decodeEnvelope(payload []byte) (*ResultEnvelope, error) {
	if len(payload) < envelopeLen {
		return nil, fmt.Errorf("%w: result envelope %d bytes, want %d",
			ErrMalformedFrame, len(payload), envelopeLen)
	}
	return &ResultEnvelope{
		ObjectCount:    frame.Uint16(payload[0:2]),
		LearnedIDCount: frame.Uint16(payload[2:4]),
		FrameCounter:   frame.Uint16(payload[4:6]),
	}, nil
}

// readObjects reads and decodes exactly count follow-up frames into typed
// detection objects. The shape of each object comes from its own frame's
// command byte; a response never mixes shapes, and when count is zero the
// shape defaults to block. A frame whose payload does not decode into
// exactly five fields is dropped with a warning rather than failing the
// whole batch.
func (d *Device) readObjects(count uint16) ([]Object, error) {
	objects := make([]Object, 0, count)
	kind := KindBlock

	for i := uint16(0); i < count; i++ {
		f, err := d.readFrame()
		if err != nil {
			return nil, err
		}

		switch f.Command {
		case respBlockData:
			kind = KindBlock
		case respArrowData:
			kind = KindArrow
		default:
			d.log.Warn().Hex("command", []byte{f.Command}).Msg("skipping unexpected object frame")
			continue
		}

		obj, ok := decodeObject(kind, f.Payload)
		if !ok {
			d.log.Warn().Hex("payload", f.Payload).Msg("dropping object frame with short payload")
			continue
		}
		objects = append(objects, obj)
	}

	return objects, nil
}

// decodeObject splits a payload into five swapped 16-bit fields and builds
// the object. ok is false if the payload is not exactly five fields.
func decodeObject(kind ObjectKind, payload []byte) (Object, bool) {
	if len(payload) != 10 {
		return Object{}, false
	}

	var fields [5]uint16
	for i := range fields {
		fields[i] = frame.Uint16(payload[i*2 : i*2+2])
	}

	obj := Object{Kind: kind, ID: fields[4]}
	if kind == KindArrow {
		obj.XTail, obj.YTail, obj.XHead, obj.YHead = fields[0], fields[1], fields[2], fields[3]
	} else {
		obj.X, obj.Y, obj.Width, obj.Height = fields[0], fields[1], fields[2], fields[3]
	}
	return obj, true
}

// IsSoftFailure reports whether the error from a command leaves the device
// usable for the next command, so polling callers can log and continue.
func IsSoftFailure(err error) bool {
	return errors.Is(err, ErrUnknownResponse) ||
		errors.Is(err, ErrIncompleteFrame) ||
		errors.Is(err, ErrMalformedFrame)
}
