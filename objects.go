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

import "fmt"

// ObjectKind discriminates the two detection shapes the sensor reports.
type ObjectKind byte

const (
	// KindBlock is an axis-aligned bounding region
	KindBlock ObjectKind = iota
	// KindArrow is a directional vector with tail and head points
	KindArrow
)

// String returns a human-readable name for the object kind
func (k ObjectKind) String() string {
	switch k {
	case KindBlock:
		return "block"
	case KindArrow:
		return "arrow"
	default:
		return fmt.Sprintf("kind(%d)", byte(k))
	}
}

// Object is one detection reported by the sensor. Kind selects which field
// group is meaningful: X/Y/Width/Height for a block, the tail and head
// coordinates for an arrow. ID is shared by both shapes.
type Object struct {
	Kind ObjectKind

	// ID is the learned class identifier. Zero means the object has not
	// been associated with a learned class.
	ID uint16

	// Block fields, valid when Kind == KindBlock
	X      uint16
	Y      uint16
	Width  uint16
	Height uint16

	// Arrow fields, valid when Kind == KindArrow
	XTail uint16
	YTail uint16
	XHead uint16
	YHead uint16
}

// Learned reports whether the object matches a previously trained class
func (o Object) Learned() bool {
	return o.ID > 0
}

// String returns a compact description of the object
func (o Object) String() string {
	if o.Kind == KindArrow {
		return fmt.Sprintf("arrow id=%d tail=(%d,%d) head=(%d,%d)",
			o.ID, o.XTail, o.YTail, o.XHead, o.YHead)
	}
	return fmt.Sprintf("block id=%d center=(%d,%d) size=%dx%d",
		o.ID, o.X, o.Y, o.Width, o.Height)
}

// ResultEnvelope is the fixed header that precedes the per-object frames in
// a multi-object detection response.
type ResultEnvelope struct {
	// ObjectCount is the number of per-object frames that follow
	ObjectCount uint16
	// LearnedIDCount is the number of classes the sensor has learned
	LearnedIDCount uint16
	// FrameCounter is the camera frame the detections were taken from
	FrameCounter uint16
}
