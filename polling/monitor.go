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

// Package polling runs a continuous detection loop against a HuskyLens and
// reports sightings through callbacks. It is the integration point for UI
// layers that poll the sensor on a fixed interval: the loop owns the device
// for its lifetime and soft protocol failures never stop it.
package polling

import (
	"context"
	"fmt"
	"time"

	huskylens "github.com/HenryJaiyeoba/go-huskylens"
	"github.com/rs/zerolog"
)

// QueryFunc selects which detection query the monitor runs each tick
type QueryFunc func(*huskylens.Device) ([]huskylens.Object, error)

// Config controls the monitor loop
type Config struct {
	// Query runs once per tick. Defaults to (*Device).LearnedBlocks.
	Query QueryFunc
	// Logger receives loop diagnostics. Defaults to a no-op logger.
	Logger zerolog.Logger
	// Interval is the poll cadence
	Interval time.Duration
	// HoldTime is how long an ID stays present after its last sighting
	// before OnIDLost fires
	HoldTime time.Duration
}

// DefaultConfig returns the default monitor configuration
func DefaultConfig() *Config {
	return &Config{
		Interval: 300 * time.Millisecond,
		HoldTime: 3 * time.Second,
		Query:    (*huskylens.Device).LearnedBlocks,
		Logger:   zerolog.Nop(),
	}
}

// Monitor polls a device and tracks which learned IDs are in view.
//
// Callbacks run on the polling goroutine; a slow callback delays the next
// tick. Monitor is not safe for concurrent use beyond the single Start call.
type Monitor struct {
	device *huskylens.Device
	config *Config

	// OnObjects receives every non-empty result batch
	OnObjects func(objects []huskylens.Object)
	// OnIDSeen fires when a learned ID enters view
	OnIDSeen func(id uint16, obj huskylens.Object)
	// OnIDLost fires when a learned ID has been out of view for HoldTime
	OnIDLost func(id uint16)

	lastSeen map[uint16]time.Time
}

// NewMonitor creates a monitor for the given device
func NewMonitor(device *huskylens.Device, config *Config) *Monitor {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Query == nil {
		config.Query = (*huskylens.Device).LearnedBlocks
	}
	if config.Interval <= 0 {
		config.Interval = DefaultConfig().Interval
	}
	return &Monitor{
		device:   device,
		config:   config,
		lastSeen: make(map[uint16]time.Time),
	}
}

// Start runs the polling loop until the context is canceled. Soft protocol
// failures are logged and polling continues; a transport write failure
// terminates the loop with an error.
func (m *Monitor) Start(ctx context.Context) error {
	ticker := time.NewTicker(m.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		objects, err := m.config.Query(m.device)
		if err != nil {
			if huskylens.IsSoftFailure(err) {
				m.config.Logger.Warn().Err(err).Msg("poll failed, continuing")
				m.expireStale(time.Now())
				continue
			}
			return fmt.Errorf("polling terminated: %w", err)
		}

		m.processResults(objects, time.Now())
	}
}

// Device returns the underlying device
func (m *Monitor) Device() *huskylens.Device {
	return m.device
}

// processResults updates presence state and fires callbacks for one batch
func (m *Monitor) processResults(objects []huskylens.Object, now time.Time) {
	if len(objects) > 0 && m.OnObjects != nil {
		m.OnObjects(objects)
	}

	for _, obj := range objects {
		if !obj.Learned() {
			continue
		}
		_, present := m.lastSeen[obj.ID]
		m.lastSeen[obj.ID] = now
		if !present && m.OnIDSeen != nil {
			m.OnIDSeen(obj.ID, obj)
		}
	}

	m.expireStale(now)
}

// expireStale drops IDs whose hold time has elapsed
func (m *Monitor) expireStale(now time.Time) {
	for id, seen := range m.lastSeen {
		if now.Sub(seen) >= m.config.HoldTime {
			delete(m.lastSeen, id)
			if m.OnIDLost != nil {
				m.OnIDLost(id)
			}
		}
	}
}

// PresentIDs returns the learned IDs currently considered in view
func (m *Monitor) PresentIDs() []uint16 {
	ids := make([]uint16, 0, len(m.lastSeen))
	for id := range m.lastSeen {
		ids = append(ids, id)
	}
	return ids
}
