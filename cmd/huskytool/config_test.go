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

package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, "")

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, `
device = "/dev/ttyACM1"
transport = "UART"
algorithm = "face_recognition"
baud_rate = 115200
i2c_address = 0x40
poll_interval = "150ms"
hold_time = "10s"
`)

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/dev/ttyACM1", cfg.Device)
	assert.Equal(t, "uart", cfg.Transport, "transport is normalized to lower case")
	assert.Equal(t, "face_recognition", cfg.Algorithm)
	assert.Equal(t, 115200, cfg.BaudRate)
	assert.Equal(t, uint16(0x40), cfg.I2CAddress)
	assert.Equal(t, 150*time.Millisecond, cfg.PollInterval)
	assert.Equal(t, 10*time.Second, cfg.HoldTime)
}

func TestLoadConfigPartialOverride(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, `transport = "i2c"`)

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "i2c", cfg.Transport)
	assert.Equal(t, 9600, cfg.BaudRate, "unset keys keep their defaults")
	assert.Equal(t, 300*time.Millisecond, cfg.PollInterval)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		contents string
		errMsg   string
	}{
		{
			name:     "unknown transport",
			contents: `transport = "spi"`,
			errMsg:   "invalid transport",
		},
		{
			name:     "negative baud rate",
			contents: `baud_rate = -1`,
			errMsg:   "invalid baud_rate",
		},
		{
			name:     "malformed poll interval",
			contents: `poll_interval = "soon"`,
			errMsg:   "invalid poll_interval",
		},
		{
			name:     "zero poll interval",
			contents: `poll_interval = "0s"`,
			errMsg:   "invalid poll_interval",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeConfigFile(t, tt.contents)
			_, err := loadConfig(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Parallel()

	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}
