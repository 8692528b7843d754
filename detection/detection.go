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

// Package detection discovers candidate HuskyLens devices on the host:
// serial ports the sensor could be wired to and, on Linux, I2C buses that
// answer at the sensor's address. Transport-specific detectors register
// themselves on import:
//
//	import (
//	    _ "github.com/HenryJaiyeoba/go-huskylens/detection/i2c"
//	    _ "github.com/HenryJaiyeoba/go-huskylens/detection/uart"
//	)
package detection

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Detection errors
var (
	ErrNoDevicesFound      = errors.New("no candidate devices found")
	ErrUnsupportedPlatform = errors.New("detection not supported on this platform")
	ErrDetectionTimeout    = errors.New("detection timed out")
)

// DeviceInfo describes one candidate device
type DeviceInfo struct {
	Metadata  map[string]string
	Transport string // "uart" or "i2c"
	Path      string // serial port or I2C bus path
}

// Options controls a detection pass
type Options struct {
	// Timeout bounds the whole pass
	Timeout time.Duration
	// Probe enables actively opening candidates to check for a sensor.
	// Without it only passive enumeration is done.
	Probe bool
}

// DefaultOptions returns the default detection options
func DefaultOptions() Options {
	return Options{
		Timeout: 2 * time.Second,
		Probe:   false,
	}
}

// Detector finds candidate devices for one transport
type Detector interface {
	// Transport returns the transport name this detector covers
	Transport() string
	// Detect enumerates candidate devices
	Detect(ctx context.Context, opts *Options) ([]DeviceInfo, error)
}

var (
	registryMu sync.RWMutex
	registry   []Detector
)

// RegisterDetector adds a detector to the registry. It is called from the
// init functions of the transport-specific detection packages.
func RegisterDetector(d Detector) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = append(registry, d)
}

// DetectAll runs every registered detector and merges the results.
// Detectors that report an unsupported platform are skipped silently.
func DetectAll(opts *Options) ([]DeviceInfo, error) {
	if opts == nil {
		defaults := DefaultOptions()
		opts = &defaults
	}

	ctx, cancel := context.WithTimeout(context.Background(), opts.Timeout)
	defer cancel()

	registryMu.RLock()
	detectors := append([]Detector(nil), registry...)
	registryMu.RUnlock()

	var devices []DeviceInfo
	for _, d := range detectors {
		found, err := d.Detect(ctx, opts)
		if err != nil {
			if errors.Is(err, ErrUnsupportedPlatform) {
				continue
			}
			if errors.Is(err, context.DeadlineExceeded) {
				return devices, ErrDetectionTimeout
			}
			return devices, err
		}
		devices = append(devices, found...)
	}

	if len(devices) == 0 {
		return nil, ErrNoDevicesFound
	}
	return devices, nil
}
