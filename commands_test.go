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
	"testing"

	"github.com/HenryJaiyeoba/go-huskylens/internal/huskytest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ackCommand runs fn against a device primed with an ack response and
// returns the single frame it wrote.
func ackCommand(t *testing.T, fn func(*Device) error) []byte {
	t.Helper()
	device, mock := newTestDevice(t)
	mock.QueueResponse(huskytest.BuildAckResponse())
	require.NoError(t, fn(device))
	writes := mock.Writes()
	require.Len(t, writes, 1)
	return writes[0]
}

func TestCommandWireFormat(t *testing.T) {
	t.Parallel()
	tests := []struct {
		run  func(*Device) error
		name string
		want []byte
	}{
		{
			name: "knock",
			run:  (*Device).Knock,
			want: []byte{0x55, 0xAA, 0x11, 0x00, 0x2C, 0x3C},
		},
		{
			name: "forget",
			run:  (*Device).Forget,
			want: []byte{0x55, 0xAA, 0x11, 0x00, 0x37, 0x47},
		},
		{
			name: "clear text",
			run:  (*Device).ClearText,
			want: []byte{0x55, 0xAA, 0x11, 0x00, 0x35, 0x45},
		},
		{
			name: "save picture",
			run:  (*Device).SavePictureToSDCard,
			want: []byte{0x55, 0xAA, 0x11, 0x00, 0x30, 0x40},
		},
		{
			name: "save screenshot",
			run:  (*Device).SaveScreenshotToSDCard,
			want: []byte{0x55, 0xAA, 0x11, 0x00, 0x39, 0x49},
		},
		{
			name: "learn id 1 sends swapped bytes",
			run:  func(d *Device) error { return d.Learn(1) },
			want: []byte{0x55, 0xAA, 0x11, 0x02, 0x36, 0x01, 0x00, 0x49},
		},
		{
			name: "learn id 0x1234 sends 34 12",
			run:  func(d *Device) error { return d.Learn(0x1234) },
			want: []byte{0x55, 0xAA, 0x11, 0x02, 0x36, 0x34, 0x12, 0x8E},
		},
		{
			name: "set algorithm object tracking",
			run:  func(d *Device) error { return d.SetAlgorithm(AlgorithmObjectTracking) },
			want: []byte{0x55, 0xAA, 0x11, 0x02, 0x2D, 0x01, 0x00, 0x40},
		},
		{
			name: "set algorithm face recognition",
			run:  func(d *Device) error { return d.SetAlgorithm(AlgorithmFaceRecognition) },
			want: []byte{0x55, 0xAA, 0x11, 0x02, 0x2D, 0x00, 0x00, 0x3F},
		},
		{
			name: "save model slot 2",
			run:  func(d *Device) error { return d.SaveModelToSDCard(2) },
			want: []byte{0x55, 0xAA, 0x11, 0x02, 0x32, 0x02, 0x00, 0x46},
		},
		{
			name: "load model slot 2",
			run:  func(d *Device) error { return d.LoadModelFromSDCard(2) },
			want: []byte{0x55, 0xAA, 0x11, 0x02, 0x33, 0x02, 0x00, 0x47},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ackCommand(t, tt.run)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQueryByIDPayloads(t *testing.T) {
	t.Parallel()
	device, mock := newTestDevice(t)
	mock.QueueResponse(huskytest.BuildResultInfoResponse(0, 0, 0))

	_, err := device.BlocksByID(0x0102)
	require.NoError(t, err)

	writes := mock.Writes()
	require.Len(t, writes, 1)
	assert.Equal(t, []byte{0x55, 0xAA, 0x11, 0x02, 0x27, 0x02, 0x01}, writes[0][:7])
}

func TestSetCustomNamePayload(t *testing.T) {
	t.Parallel()
	got := ackCommand(t, func(d *Device) error { return d.SetCustomName("Bob", 2) })

	// id, name length including terminator, name bytes, NUL
	wantPayload := []byte{0x02, 0x04, 'B', 'o', 'b', 0x00}
	assert.Equal(t, byte(len(wantPayload)), got[3])
	assert.Equal(t, byte(0x2F), got[4])
	assert.Equal(t, wantPayload, got[5:len(got)-1])
}

func TestCustomTextPayload(t *testing.T) {
	t.Parallel()

	t.Run("x within one byte", func(t *testing.T) {
		t.Parallel()
		got := ackCommand(t, func(d *Device) error { return d.CustomText("hi", 100, 50) })
		wantPayload := []byte{0x02, 0x00, 0x64, 0x32, 'h', 'i'}
		assert.Equal(t, byte(0x34), got[4])
		assert.Equal(t, wantPayload, got[5:len(got)-1])
	})

	t.Run("x past 255 sets flag and wraps modulo 255", func(t *testing.T) {
		t.Parallel()
		got := ackCommand(t, func(d *Device) error { return d.CustomText("hi", 300, 50) })
		// 300 % 255 == 45
		wantPayload := []byte{0x02, 0xFF, 0x2D, 0x32, 'h', 'i'}
		assert.Equal(t, wantPayload, got[5:len(got)-1])
	})
}

func TestAlgorithmNames(t *testing.T) {
	t.Parallel()

	alg, err := AlgorithmByName("object_recognition")
	require.NoError(t, err)
	assert.Equal(t, AlgorithmObjectRecognition, alg)

	_, err = AlgorithmByName("mind_reading")
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestObjectString(t *testing.T) {
	t.Parallel()
	block := Object{Kind: KindBlock, ID: 1, X: 2, Y: 3, Width: 4, Height: 5}
	assert.Equal(t, "block id=1 center=(2,3) size=4x5", block.String())

	arrow := Object{Kind: KindArrow, ID: 2, XTail: 1, YTail: 2, XHead: 3, YHead: 4}
	assert.Equal(t, "arrow id=2 tail=(1,2) head=(3,4)", arrow.String())
}
