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

// Package huskytest provides canned HuskyLens response frames for tests.
package huskytest

import "github.com/HenryJaiyeoba/go-huskylens/internal/frame"

// Response command bytes for reference
const (
	RespResultInfo  = 0x29
	RespBlockData   = 0x2A
	RespArrowData   = 0x2B
	RespAcknowledge = 0x2E
)

// BuildAckResponse creates the acknowledge frame the sensor returns for
// commands without result data
func BuildAckResponse() []byte {
	return mustEncode(RespAcknowledge, nil)
}

// BuildResultInfoResponse creates a result envelope frame declaring
// objectCount follow-up object frames
func BuildResultInfoResponse(objectCount, learnedCount, frameCounter uint16) []byte {
	payload := frame.AppendUint16(nil, objectCount)
	payload = frame.AppendUint16(payload, learnedCount)
	payload = frame.AppendUint16(payload, frameCounter)
	return mustEncode(RespResultInfo, payload)
}

// BuildBlockResponse creates one block object frame
func BuildBlockResponse(x, y, width, height, id uint16) []byte {
	return mustEncode(RespBlockData, objectPayload(x, y, width, height, id))
}

// BuildArrowResponse creates one arrow object frame
func BuildArrowResponse(xTail, yTail, xHead, yHead, id uint16) []byte {
	return mustEncode(RespArrowData, objectPayload(xTail, yTail, xHead, yHead, id))
}

// BuildRawResponse creates a frame with an arbitrary command byte, for
// unknown-response tests
func BuildRawResponse(cmd byte, payload []byte) []byte {
	return mustEncode(cmd, payload)
}

// CorruptChecksum returns a copy of the frame with its checksum byte
// incremented
func CorruptChecksum(raw []byte) []byte {
	out := append([]byte(nil), raw...)
	out[len(out)-1]++
	return out
}

func objectPayload(a, b, c, d, id uint16) []byte {
	payload := frame.AppendUint16(nil, a)
	payload = frame.AppendUint16(payload, b)
	payload = frame.AppendUint16(payload, c)
	payload = frame.AppendUint16(payload, d)
	return frame.AppendUint16(payload, id)
}

func mustEncode(cmd byte, payload []byte) []byte {
	raw, err := frame.Encode(cmd, payload)
	if err != nil {
		panic(err)
	}
	return raw
}
