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

/*
Package huskylens provides a pure Go client for the DFRobot HuskyLens AI
vision sensor.

The HuskyLens is a camera module with on-board recognition algorithms
(faces, objects, lines, colors, tags, QR codes and barcodes). It speaks a
half-duplex, length-prefixed, checksummed binary protocol over a serial
line or an I2C bus. This library implements that protocol behind a small
command API and returns typed detection objects.

Features:
  - Multiple transport support: UART and I2C behind one interface
  - Full command set: knock, algorithm switching, learn/forget, custom
    names and on-screen text, SD card model and picture operations
  - Detection queries returning typed Block and Arrow objects
  - Single-retry recovery from timed-out or corrupted frames
  - Continuous polling with callbacks via the polling package

Basic Usage:

	import (
	    "github.com/HenryJaiyeoba/go-huskylens"
	    "github.com/HenryJaiyeoba/go-huskylens/transport/uart"
	)

	// Create a UART transport
	transport, err := uart.New("/dev/ttyUSB0")
	if err != nil {
	    log.Fatal(err)
	}
	defer transport.Close()

	// Create the device
	device, err := huskylens.New(transport)
	if err != nil {
	    log.Fatal(err)
	}

	// Verify the sensor responds and pick an algorithm
	if err := device.Knock(); err != nil {
	    log.Fatal(err)
	}
	if err := device.SetAlgorithm(huskylens.AlgorithmObjectRecognition); err != nil {
	    log.Fatal(err)
	}

	// Query detections
	objects, err := device.LearnedBlocks()
	if err != nil {
	    log.Fatal(err)
	}
	for _, obj := range objects {
	    fmt.Printf("id=%d at (%d,%d) %dx%d\n", obj.ID, obj.X, obj.Y, obj.Width, obj.Height)
	}

Transport Selection:

The sensor exposes the same protocol on both buses:

  - UART: the sensor's 9600-3000000 baud serial port
  - I2C: register-style access at address 0x32

Error Handling:

All operations return errors that can be inspected with errors.Is:

	if errors.Is(err, huskylens.ErrUnknownResponse) {
	    // soft failure, keep polling
	}

Frame-level failures are retried once inside the library; what escapes to
the caller is the post-retry outcome.

Thread Safety:

Device operations are not thread-safe. The protocol is strictly
half-duplex, so run commands from a single goroutine or add external
synchronization.
*/
package huskylens
