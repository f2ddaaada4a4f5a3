// Copyright 2025 the usbkit Authors.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package usbkit

import (
	"errors"
	"fmt"
)

// Validation errors returned by ControlTransfer before any native call is
// made. Both are recoverable by correcting the request.
var (
	// ErrNoDataNorLength is returned when a ControlRequest defines neither
	// an outbound payload nor an expected inbound length.
	ErrNoDataNorLength = errors.New("usbkit: you must define either data or length")
	// ErrDataAndLength is returned when a ControlRequest defines both.
	ErrDataAndLength = errors.New("usbkit: cannot define both data and length")
)

// ControlRequest describes one control transfer: the USB setup packet
// fields plus the payload mode. Exactly one of Data and Length must be set.
type ControlRequest struct {
	// RequestType is the bmRequestType field: direction, type and
	// recipient bits. The caller is responsible for including the
	// direction bit (EndpointIn for IN transfers).
	RequestType uint8
	// Request is the bRequest field.
	Request uint8
	// Value is the wValue field.
	Value uint16
	// Index is the wIndex field.
	Index uint16

	// Data is the outbound payload of an OUT transfer. A non-nil empty
	// slice is a valid payload: it sends a zero-length data phase.
	Data []byte
	// Length is the number of bytes expected from an IN transfer.
	Length int
}

// ControlTransfer issues a single control transfer on the device. For IN
// transfers (Length set) it returns the inbound buffer, truncated to the
// number of bytes the device actually sent; for OUT transfers (Data set)
// the returned buffer is nil. Native transfer errors (stall, timeout, no
// device) are returned unchanged.
func (d *Device) ControlTransfer(req ControlRequest) ([]byte, error) {
	haveData, haveLength := req.Data != nil, req.Length > 0
	switch {
	case !haveData && !haveLength:
		return nil, ErrNoDataNorLength
	case haveData && haveLength:
		return nil, ErrDataAndLength
	}
	if d.handle == nil {
		return nil, fmt.Errorf("ControlTransfer() called on %s after Close", d)
	}

	if haveLength {
		buf := make([]byte, req.Length)
		n, err := d.handle.Control(req.RequestType, req.Request, req.Value, req.Index, buf)
		if err != nil {
			return nil, err
		}
		return buf[:n], nil
	}
	_, err := d.handle.Control(req.RequestType, req.Request, req.Value, req.Index, req.Data)
	return nil, err
}
