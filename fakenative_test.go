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
	"sync"

	"github.com/google/gousb"
)

// controlSetup records the setup packet fields of a control transfer
// submitted to a fake device.
type controlSetup struct {
	rType, request uint8
	value, index   uint16
}

// fakeDevice implements nativeDevice without any host USB stack. Tests
// steer its behavior through controlErr, inData and strings.
type fakeDevice struct {
	desc    *DeviceDesc
	strings map[int]string

	mu sync.Mutex
	// closed is set by Close; all calls fail afterwards.
	closed bool
	// controlErr, when set, fails every control transfer.
	controlErr error
	// inData is returned to IN control requests.
	inData []byte
	// written is the payload of the last OUT control request.
	written []byte
	// lastSetup has the setup fields of the last control request.
	lastSetup controlSetup
}

func (f *fakeDevice) Control(rType, request uint8, val, idx uint16, data []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return 0, errors.New("control transfer on a closed device")
	}
	f.lastSetup = controlSetup{rType: rType, request: request, value: val, index: idx}
	if f.controlErr != nil {
		return 0, f.controlErr
	}
	if rType&EndpointIn != 0 {
		return copy(data, f.inData), nil
	}
	f.written = append([]byte(nil), data...)
	return len(data), nil
}

func (f *fakeDevice) GetStringDescriptor(descIndex int) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return "", errors.New("string descriptor read on a closed device")
	}
	str, ok := f.strings[descIndex]
	if !ok {
		return "", fmt.Errorf("invalid string descriptor index %d", descIndex)
	}
	return str, nil
}

func (f *fakeDevice) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// fakeNative implements nativeLayer over a list of fake devices.
type fakeNative struct {
	devs []*fakeDevice
	// initErr simulates a host without USB support.
	initErr error
	// listErr simulates an enumeration failure after successful init.
	listErr error

	debugLevel int
	closed     bool
}

func (f *fakeNative) init() error        { return f.initErr }
func (f *fakeNative) setDebug(level int) { f.debugLevel = level }
func (f *fakeNative) close() error       { f.closed = true; return nil }

func (f *fakeNative) devices() ([]*Device, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]*Device, 0, len(f.devs))
	for _, fd := range f.devs {
		out = append(out, &Device{handle: fd, Desc: fd.desc})
	}
	return out, nil
}

// newFakeNative returns a fake native layer with two fresh devices
// attached. Device 0 is a single-interface gadget with one IN and one OUT
// bulk endpoint; device 1 has a second interface with an interrupt
// endpoint.
func newFakeNative() *fakeNative {
	return &fakeNative{devs: []*fakeDevice{
		{
			desc: &DeviceDesc{
				Bus:               1,
				Address:           2,
				Vendor:            0x9999,
				Product:           0x0001,
				ManufacturerIndex: 1,
				ProductIndex:      2,
				SerialNumberIndex: 3,
				Interfaces: []InterfaceDesc{{
					Number: 0,
					Class:  gousb.ClassVendorSpec,
					Endpoints: []gousb.EndpointDesc{
						{Address: 0x02, Number: 2, Direction: gousb.EndpointDirectionOut, MaxPacketSize: 64, TransferType: gousb.TransferTypeBulk},
						{Address: 0x81, Number: 1, Direction: gousb.EndpointDirectionIn, MaxPacketSize: 64, TransferType: gousb.TransferTypeBulk},
					},
				}},
			},
			strings: map[int]string{1: "Acme", 2: "Widget", 3: "01234567"},
		},
		{
			desc: &DeviceDesc{
				Bus:               1,
				Address:           3,
				Vendor:            0x8888,
				Product:           0x0002,
				ManufacturerIndex: 1,
				ProductIndex:      2,
				Interfaces: []InterfaceDesc{
					{
						Number: 0,
						Class:  gousb.ClassHID,
						Endpoints: []gousb.EndpointDesc{
							{Address: 0x81, Number: 1, Direction: gousb.EndpointDirectionIn, MaxPacketSize: 8, TransferType: gousb.TransferTypeInterrupt},
						},
					},
					{
						Number: 1,
						Class:  gousb.ClassVendorSpec,
						Endpoints: []gousb.EndpointDesc{
							{Address: 0x02, Number: 2, Direction: gousb.EndpointDirectionOut, MaxPacketSize: 512, TransferType: gousb.TransferTypeBulk},
							{Address: 0x86, Number: 6, Direction: gousb.EndpointDirectionIn, MaxPacketSize: 512, TransferType: gousb.TransferTypeBulk},
						},
					},
				},
			},
			strings: map[int]string{1: "ACME Industries", 2: "Fidgety Gadget"},
		},
	}}
}
