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

// huskytool exercises a HuskyLens from the command line: it connects over
// serial or I2C, switches the recognition algorithm, and either dumps the
// current detections once or watches them continuously.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	huskylens "github.com/HenryJaiyeoba/go-huskylens"
	"github.com/HenryJaiyeoba/go-huskylens/detection"
	"github.com/HenryJaiyeoba/go-huskylens/polling"
	"github.com/HenryJaiyeoba/go-huskylens/transport/i2c"
	"github.com/HenryJaiyeoba/go-huskylens/transport/uart"
	"github.com/rs/zerolog"

	// Import all detectors to register them
	_ "github.com/HenryJaiyeoba/go-huskylens/detection/i2c"
	_ "github.com/HenryJaiyeoba/go-huskylens/detection/uart"
)

const knockAttempts = 3

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "huskytool: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "Path to a TOML config file")
	device := flag.String("device", "", "Device path (e.g. /dev/ttyUSB0 or /dev/i2c-1). Empty for auto-detection.")
	algorithm := flag.String("algorithm", "", "Recognition algorithm (e.g. object_recognition, face_recognition)")
	watch := flag.Bool("watch", false, "Poll continuously instead of dumping once")
	debug := flag.Bool("debug", false, "Enable debug output")
	flag.Parse()

	logger := newLogger(*debug)

	cfg := defaultConfig()
	if *configPath != "" {
		loaded, err := loadConfig(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if *device != "" {
		cfg.Device = *device
	}
	if *algorithm != "" {
		cfg.Algorithm = *algorithm
	}

	alg, err := huskylens.AlgorithmByName(cfg.Algorithm)
	if err != nil {
		return err
	}

	transport, err := openTransport(cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = transport.Close() }()

	dev, err := huskylens.New(transport, huskylens.WithLogger(logger))
	if err != nil {
		return err
	}

	if err := connect(dev, logger); err != nil {
		return err
	}

	logger.Info().Stringer("algorithm", alg).Msg("switching algorithm")
	if err := dev.SetAlgorithm(alg); err != nil {
		return fmt.Errorf("set algorithm: %w", err)
	}

	if *watch {
		return watchDetections(dev, cfg, logger)
	}
	return dumpDetections(dev, logger)
}

// newLogger builds a console logger
func newLogger(debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

// openTransport creates a transport from the config, auto-detecting a
// device when no path is given
func openTransport(cfg toolConfig, logger zerolog.Logger) (huskylens.Transport, error) {
	path := cfg.Device
	if path == "" {
		opts := detection.DefaultOptions()
		devices, err := detection.DetectAll(&opts)
		if err != nil {
			return nil, fmt.Errorf("auto-detection failed: %w", err)
		}
		logger.Info().Str("path", devices[0].Path).Str("transport", devices[0].Transport).
			Msg("auto-detected device")
		path = devices[0].Path
		if cfg.Transport == "auto" {
			cfg.Transport = devices[0].Transport
		}
	}

	kind := cfg.Transport
	if kind == "auto" {
		if strings.Contains(strings.ToLower(path), "i2c") {
			kind = "i2c"
		} else {
			kind = "uart"
		}
	}

	switch kind {
	case "i2c":
		transport, err := i2c.NewWithAddress(path, cfg.I2CAddress)
		if err != nil {
			return nil, fmt.Errorf("failed to create I2C transport: %w", err)
		}
		return transport, nil
	default:
		transport, err := uart.NewWithBaudRate(path, cfg.BaudRate)
		if err != nil {
			return nil, fmt.Errorf("failed to create UART transport: %w", err)
		}
		return transport, nil
	}
}

// connect knocks until the sensor answers. The sensor drops the first
// knocks while it settles after a serial open, so a few attempts are
// normal.
func connect(dev *huskylens.Device, logger zerolog.Logger) error {
	var err error
	for attempt := 1; attempt <= knockAttempts; attempt++ {
		if err = dev.Knock(); err == nil {
			logger.Info().Int("attempt", attempt).Msg("sensor connected")
			return nil
		}
		logger.Debug().Err(err).Int("attempt", attempt).Msg("knock failed")
		time.Sleep(500 * time.Millisecond)
	}
	return fmt.Errorf("sensor did not answer after %d knocks: %w", knockAttempts, err)
}

// dumpDetections prints the current detections once
func dumpDetections(dev *huskylens.Device, logger zerolog.Logger) error {
	objects, err := dev.RequestAll()
	if err != nil {
		return fmt.Errorf("request detections: %w", err)
	}

	learned, err := dev.LearnedObjectCount()
	if err != nil && !huskylens.IsSoftFailure(err) {
		return err
	}
	logger.Info().Int("objects", len(objects)).Uint16("learned_classes", learned).Msg("detections")

	for _, obj := range objects {
		fmt.Println(obj)
	}
	return nil
}

// watchDetections polls until interrupted
func watchDetections(dev *huskylens.Device, cfg toolConfig, logger zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	monitor := polling.NewMonitor(dev, &polling.Config{
		Interval: cfg.PollInterval,
		HoldTime: cfg.HoldTime,
		Query:    (*huskylens.Device).RequestAll,
		Logger:   logger,
	})
	monitor.OnIDSeen = func(id uint16, obj huskylens.Object) {
		logger.Info().Uint16("id", id).Stringer("object", obj).Msg("object entered view")
	}
	monitor.OnIDLost = func(id uint16) {
		logger.Info().Uint16("id", id).Msg("object left view")
	}

	logger.Info().Dur("interval", cfg.PollInterval).Msg("watching detections, Ctrl-C to stop")
	if err := monitor.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
