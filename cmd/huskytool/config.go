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
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// toolConfig holds the resolved huskytool settings
type toolConfig struct {
	Device       string
	Transport    string
	Algorithm    string
	BaudRate     int
	I2CAddress   uint16
	PollInterval time.Duration
	HoldTime     time.Duration
}

// huskytool config.toml key mapping
type fileConfig struct {
	Device       string `toml:"device"`
	Transport    string `toml:"transport"`
	Algorithm    string `toml:"algorithm"`
	BaudRate     int    `toml:"baud_rate"`
	I2CAddress   uint16 `toml:"i2c_address"`
	PollInterval string `toml:"poll_interval"`
	HoldTime     string `toml:"hold_time"`
}

// defaultConfig returns the tool defaults, matching the sensor's factory
// serial settings
func defaultConfig() toolConfig {
	return toolConfig{
		Transport:    "auto",
		Algorithm:    "object_recognition",
		BaudRate:     9600,
		I2CAddress:   0x32,
		PollInterval: 300 * time.Millisecond,
		HoldTime:     3 * time.Second,
	}
}

// loadConfig loads a TOML config file over the defaults
func loadConfig(path string) (toolConfig, error) {
	cfg := defaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return toolConfig{}, fmt.Errorf("load config: %w", err)
	}

	if meta.IsDefined("device") {
		cfg.Device = strings.TrimSpace(raw.Device)
	}
	if meta.IsDefined("transport") {
		cfg.Transport = strings.ToLower(strings.TrimSpace(raw.Transport))
	}
	if meta.IsDefined("algorithm") {
		cfg.Algorithm = strings.TrimSpace(raw.Algorithm)
	}
	if meta.IsDefined("baud_rate") {
		cfg.BaudRate = raw.BaudRate
	}
	if meta.IsDefined("i2c_address") {
		cfg.I2CAddress = raw.I2CAddress
	}
	if meta.IsDefined("poll_interval") {
		d, err := time.ParseDuration(raw.PollInterval)
		if err != nil {
			return toolConfig{}, fmt.Errorf("invalid poll_interval: %w", err)
		}
		cfg.PollInterval = d
	}
	if meta.IsDefined("hold_time") {
		d, err := time.ParseDuration(raw.HoldTime)
		if err != nil {
			return toolConfig{}, fmt.Errorf("invalid hold_time: %w", err)
		}
		cfg.HoldTime = d
	}

	return cfg, validateConfig(cfg)
}

// validateConfig rejects settings the transports cannot honor
func validateConfig(cfg toolConfig) error {
	switch cfg.Transport {
	case "auto", "uart", "i2c":
	default:
		return fmt.Errorf("invalid transport %q: must be auto, uart or i2c", cfg.Transport)
	}
	if cfg.BaudRate <= 0 {
		return fmt.Errorf("invalid baud_rate %d", cfg.BaudRate)
	}
	if cfg.PollInterval <= 0 {
		return fmt.Errorf("invalid poll_interval %s", cfg.PollInterval)
	}
	return nil
}
