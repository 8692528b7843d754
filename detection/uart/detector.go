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

// Package uart provides serial port enumeration for HuskyLens detection
package uart

import (
	"context"
	"strings"

	"github.com/HenryJaiyeoba/go-huskylens/detection"
	"go.bug.st/serial"
)

// detector implements the detection.Detector interface for serial ports
type detector struct{}

// New creates a new UART detector
func New() detection.Detector {
	return &detector{}
}

// init registers the detector on package import
func init() {
	detection.RegisterDetector(New())
}

// Transport returns the transport type
func (*detector) Transport() string {
	return "uart"
}

// Detect enumerates the host's serial ports. The sensor cannot be probed
// passively over serial, so every port that looks like a USB adapter or an
// on-board UART is a candidate.
func (*detector) Detect(ctx context.Context, _ *detection.Options) ([]detection.DeviceInfo, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, detection.ErrUnsupportedPlatform
	}

	var devices []detection.DeviceInfo
	for _, port := range ports {
		select {
		case <-ctx.Done():
			return devices, ctx.Err()
		default:
		}

		if !isCandidatePort(port) {
			continue
		}
		devices = append(devices, detection.DeviceInfo{
			Transport: "uart",
			Path:      port,
		})
	}
	return devices, nil
}

// isCandidatePort filters out ports that cannot host the sensor, such as
// virtual consoles enumerated alongside real UARTs on Linux.
func isCandidatePort(port string) bool {
	lower := strings.ToLower(port)
	// Windows ports are bare COM names with no path separator
	if strings.HasPrefix(lower, "com") {
		return true
	}
	for _, fragment := range []string{"ttyusb", "ttyacm", "ttyama", "ttys0", "tty.usb", "cu.usb"} {
		if strings.Contains(lower, fragment) {
			return true
		}
	}
	return false
}
