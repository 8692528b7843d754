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

//go:build linux

package i2c

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/HenryJaiyeoba/go-huskylens/detection"
	"golang.org/x/sys/unix"
)

// I2C ioctl commands from linux/i2c-dev.h
const (
	i2cSlave = 0x0703
)

// detectLinux scans /dev/i2c-* buses for a device answering at the sensor
// address
func detectLinux(ctx context.Context, opts *detection.Options) ([]detection.DeviceInfo, error) {
	buses, err := filepath.Glob("/dev/i2c-*")
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate I2C buses: %w", err)
	}
	sort.Strings(buses)

	var devices []detection.DeviceInfo
	for _, bus := range buses {
		select {
		case <-ctx.Done():
			return devices, detection.ErrDetectionTimeout
		default:
		}

		info := detection.DeviceInfo{
			Transport: "i2c",
			Path:      bus,
			Metadata: map[string]string{
				"address": fmt.Sprintf("0x%02X", DefaultAddress),
			},
		}

		if !opts.Probe {
			devices = append(devices, info)
			continue
		}
		if probeBus(bus, DefaultAddress) {
			info.Metadata["probed"] = "true"
			devices = append(devices, info)
		}
	}
	return devices, nil
}

// probeBus checks whether anything answers at addr on the given bus by
// addressing it and attempting a single byte read
func probeBus(busPath string, addr uint8) bool {
	fd, err := unix.Open(busPath, unix.O_RDWR, 0)
	if err != nil {
		return false
	}
	defer func() { _ = unix.Close(fd) }()

	if err := unix.IoctlSetInt(fd, i2cSlave, int(addr)); err != nil {
		return false
	}

	buf := make([]byte, 1)
	n, err := unix.Read(fd, buf)
	return err == nil && n == 1
}
