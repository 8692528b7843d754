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
	"fmt"

	"github.com/HenryJaiyeoba/go-huskylens/internal/frame"
)

// HuskyLens command codes (host to sensor)
const (
	cmdRequestAll           = 0x20
	cmdRequestBlocks        = 0x21
	cmdRequestArrows        = 0x22
	cmdRequestLearned       = 0x23
	cmdRequestBlocksLearned = 0x24
	cmdRequestArrowsLearned = 0x25
	cmdRequestByID          = 0x26
	cmdRequestBlocksByID    = 0x27
	cmdRequestArrowsByID    = 0x28
	cmdKnock                = 0x2C
	cmdSetAlgorithm         = 0x2D
	cmdSetCustomName        = 0x2F
	cmdSavePicture          = 0x30
	cmdSaveModel            = 0x32
	cmdLoadModel            = 0x33
	cmdCustomText           = 0x34
	cmdClearText            = 0x35
	cmdLearn                = 0x36
	cmdForget               = 0x37
	cmdSaveScreenshot       = 0x39
)

// HuskyLens response codes (sensor to host)
const (
	respResultInfo  = 0x29
	respBlockData   = 0x2A
	respArrowData   = 0x2B
	respAcknowledge = 0x2E
)

// Algorithm selects the recognition mode the sensor runs. The constant
// values are the exact 16-bit payloads in wire byte order; SetAlgorithm
// writes the high byte of the constant first.
type Algorithm uint16

const (
	AlgorithmFaceRecognition      Algorithm = 0x0000
	AlgorithmObjectTracking       Algorithm = 0x0100
	AlgorithmObjectRecognition    Algorithm = 0x0200
	AlgorithmLineTracking         Algorithm = 0x0300
	AlgorithmColorRecognition     Algorithm = 0x0400
	AlgorithmTagRecognition       Algorithm = 0x0500
	AlgorithmObjectClassification Algorithm = 0x0600
	AlgorithmQRCodeRecognition    Algorithm = 0x0700
	AlgorithmBarcodeRecognition   Algorithm = 0x0800
)

// String returns the algorithm name
func (a Algorithm) String() string {
	switch a {
	case AlgorithmFaceRecognition:
		return "face_recognition"
	case AlgorithmObjectTracking:
		return "object_tracking"
	case AlgorithmObjectRecognition:
		return "object_recognition"
	case AlgorithmLineTracking:
		return "line_tracking"
	case AlgorithmColorRecognition:
		return "color_recognition"
	case AlgorithmTagRecognition:
		return "tag_recognition"
	case AlgorithmObjectClassification:
		return "object_classification"
	case AlgorithmQRCodeRecognition:
		return "qr_code_recognition"
	case AlgorithmBarcodeRecognition:
		return "barcode_recognition"
	default:
		return fmt.Sprintf("algorithm(0x%04X)", uint16(a))
	}
}

// AlgorithmByName maps the configuration-friendly names produced by
// Algorithm.String back to their values.
func AlgorithmByName(name string) (Algorithm, error) {
	for _, a := range []Algorithm{
		AlgorithmFaceRecognition,
		AlgorithmObjectTracking,
		AlgorithmObjectRecognition,
		AlgorithmLineTracking,
		AlgorithmColorRecognition,
		AlgorithmTagRecognition,
		AlgorithmObjectClassification,
		AlgorithmQRCodeRecognition,
		AlgorithmBarcodeRecognition,
	} {
		if a.String() == name {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown algorithm %q", ErrInvalidParameter, name)
}

// Knock checks that the sensor is alive and responding
func (d *Device) Knock() error {
	_, err := d.runCommand(cmdKnock, nil)
	return err
}

// SetAlgorithm switches the sensor to the given recognition mode
func (d *Device) SetAlgorithm(alg Algorithm) error {
	payload := []byte{byte(alg >> 8), byte(alg)}
	_, err := d.runCommand(cmdSetAlgorithm, payload)
	return err
}

// Learn teaches the current on-screen object as class id
func (d *Device) Learn(id uint16) error {
	_, err := d.runCommand(cmdLearn, frame.AppendUint16(nil, id))
	return err
}

// Forget erases everything the current algorithm has learned
func (d *Device) Forget() error {
	_, err := d.runCommand(cmdForget, nil)
	return err
}

// SetCustomName assigns a display name to the learned class id.
// The name is sent NUL-terminated and its declared size includes the
// terminator.
func (d *Device) SetCustomName(name string, id uint8) error {
	raw := []byte(name)
	if len(raw)+1 > frame.MaxPayloadLen-2 {
		return fmt.Errorf("%w: name too long", ErrInvalidParameter)
	}

	payload := make([]byte, 0, 2+len(raw)+1)
	payload = append(payload, id, byte(len(raw)+1))
	payload = append(payload, raw...)
	payload = append(payload, 0x00)

	_, err := d.runCommand(cmdSetCustomName, payload)
	return err
}

// CustomText draws text on the sensor's screen at (x, y).
// The x coordinate is sent as a flag byte and a value byte: coordinates
// past 255 set the flag to 0xFF and send the remainder modulo 255, which
// is what the sensor firmware expects.
func (d *Device) CustomText(text string, x uint16, y uint8) error {
	raw := []byte(text)
	if len(raw) > frame.MaxPayloadLen-4 {
		return fmt.Errorf("%w: text too long", ErrInvalidParameter)
	}

	var xFlag, xValue byte
	if x > 255 {
		xFlag = 0xFF
		xValue = byte(x % 255)
	} else {
		xValue = byte(x)
	}

	payload := make([]byte, 0, 4+len(raw))
	payload = append(payload, byte(len(raw)), xFlag, xValue, y)
	payload = append(payload, raw...)

	_, err := d.runCommand(cmdCustomText, payload)
	return err
}

// ClearText removes all custom text from the sensor's screen
func (d *Device) ClearText() error {
	_, err := d.runCommand(cmdClearText, nil)
	return err
}

// SaveModelToSDCard saves the current algorithm's model to the given
// slot on the sensor's SD card
func (d *Device) SaveModelToSDCard(slot uint16) error {
	_, err := d.runCommand(cmdSaveModel, frame.AppendUint16(nil, slot))
	return err
}

// LoadModelFromSDCard loads a model from the given SD card slot into the
// current algorithm
func (d *Device) LoadModelFromSDCard(slot uint16) error {
	_, err := d.runCommand(cmdLoadModel, frame.AppendUint16(nil, slot))
	return err
}

// SavePictureToSDCard saves a camera photo to the sensor's SD card
func (d *Device) SavePictureToSDCard() error {
	_, err := d.runCommand(cmdSavePicture, nil)
	return err
}

// SaveScreenshotToSDCard saves a screenshot of the sensor's display to
// its SD card
func (d *Device) SaveScreenshotToSDCard() error {
	_, err := d.runCommand(cmdSaveScreenshot, nil)
	return err
}

// RequestAll returns every object the current algorithm sees
func (d *Device) RequestAll() ([]Object, error) {
	return d.query(cmdRequestAll, nil)
}

// Blocks returns all blocks the current algorithm sees
func (d *Device) Blocks() ([]Object, error) {
	return d.query(cmdRequestBlocks, nil)
}

// Arrows returns all arrows the current algorithm sees
func (d *Device) Arrows() ([]Object, error) {
	return d.query(cmdRequestArrows, nil)
}

// Learned returns all recognized (learned) objects on screen
func (d *Device) Learned() ([]Object, error) {
	return d.query(cmdRequestLearned, nil)
}

// LearnedBlocks returns all recognized blocks on screen
func (d *Device) LearnedBlocks() ([]Object, error) {
	return d.query(cmdRequestBlocksLearned, nil)
}

// LearnedArrows returns all recognized arrows on screen
func (d *Device) LearnedArrows() ([]Object, error) {
	return d.query(cmdRequestArrowsLearned, nil)
}

// ObjectsByID returns the objects recognized as class id
func (d *Device) ObjectsByID(id uint16) ([]Object, error) {
	return d.query(cmdRequestByID, frame.AppendUint16(nil, id))
}

// BlocksByID returns the blocks recognized as class id
func (d *Device) BlocksByID(id uint16) ([]Object, error) {
	return d.query(cmdRequestBlocksByID, frame.AppendUint16(nil, id))
}

// ArrowsByID returns the arrows recognized as class id
func (d *Device) ArrowsByID(id uint16) ([]Object, error) {
	return d.query(cmdRequestArrowsByID, frame.AppendUint16(nil, id))
}

// Count returns the number of objects the current algorithm sees
func (d *Device) Count() (int, error) {
	objects, err := d.RequestAll()
	if err != nil {
		return 0, err
	}
	return len(objects), nil
}

// LearnedObjectCount returns how many classes the sensor has learned
func (d *Device) LearnedObjectCount() (uint16, error) {
	res, err := d.runCommand(cmdRequestAll, nil)
	if err != nil {
		return 0, err
	}
	if res.envelope == nil {
		return 0, nil
	}
	return res.envelope.LearnedIDCount, nil
}

// FrameNumber returns the camera frame counter from the sensor
func (d *Device) FrameNumber() (uint16, error) {
	res, err := d.runCommand(cmdRequestAll, nil)
	if err != nil {
		return 0, err
	}
	if res.envelope == nil {
		return 0, nil
	}
	return res.envelope.FrameCounter, nil
}

// query runs a detection command and returns the decoded objects. An
// acknowledge-only response yields an empty result.
func (d *Device) query(cmd byte, payload []byte) ([]Object, error) {
	res, err := d.runCommand(cmd, payload)
	if err != nil {
		return nil, err
	}
	return res.objects, nil
}
