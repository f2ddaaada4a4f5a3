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
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/google/gousb"
)

// DeviceDesc describes a device as seen at enumeration time: its identity,
// its string descriptor indexes, and the interface layout of the active
// configuration. It is a snapshot assembled by the native adapter, not a
// live view.
type DeviceDesc struct {
	// Bus information
	Bus     int // The bus on which the device was detected
	Address int // The address of the device on the bus

	// Product information
	Vendor  gousb.ID // The Vendor identifier
	Product gousb.ID // The Product identifier

	// Protocol information
	Class    gousb.Class    // The class of this device
	SubClass gousb.Class    // The sub-class (within the class) of this device
	Protocol gousb.Protocol // The protocol (within the sub-class) of this device

	// String descriptor indexes from the device descriptor. An index of 0
	// means the device does not provide the string.
	ManufacturerIndex int
	ProductIndex      int
	SerialNumberIndex int

	// Interfaces of the active configuration, in descriptor order.
	Interfaces []InterfaceDesc
}

// String returns a human-readable version of the device descriptor.
func (d *DeviceDesc) String() string {
	return fmt.Sprintf("%d.%d: %s:%s (%d interfaces)", d.Bus, d.Address, d.Vendor, d.Product, len(d.Interfaces))
}

// InterfaceDesc describes one interface of a device's active configuration,
// flattened to its first alternate setting.
type InterfaceDesc struct {
	// Number is the interface number as reported by the device.
	Number int
	// Class is the USB-IF class code, as defined by the USB spec.
	Class gousb.Class
	// SubClass is the USB-IF subclass code, as defined by the USB spec.
	SubClass gousb.Class
	// Protocol is the USB protocol code, as defined by the USB spec.
	Protocol gousb.Protocol
	// Endpoints available on this interface, ordered by address.
	Endpoints []gousb.EndpointDesc
}

// String returns a human-readable description of the interface.
func (i InterfaceDesc) String() string {
	return fmt.Sprintf("Interface %d (%s, %d endpoints)", i.Number, i.Class, len(i.Endpoints))
}

// Raw device descriptor, USB 2.0 spec section 9.6.1, 18 bytes.
const deviceDescLen = 18

type usbDeviceDescriptor struct {
	BLength            uint8  // 0
	BDescriptorType    uint8  // 1
	BCDUSB             uint16 // 2:3
	BDeviceClass       uint8  // 4
	BDeviceSubClass    uint8  // 5
	BDeviceProtocol    uint8  // 6
	BMaxPacketSize0    uint8  // 7
	IDVendor           uint16 // 8:9
	IDProduct          uint16 // 10:11
	BCDDevice          uint16 // 12:13
	IManufacturer      uint8  // 14
	IProduct           uint8  // 15
	ISerialNumber      uint8  // 16
	BNumConfigurations uint8  // 17
}

// stringIndexesFromBytes decodes the manufacturer, product and serial
// number string indexes from a raw device descriptor.
func stringIndexesFromBytes(descBytes []byte) (mfg, prod, serial int, err error) {
	if len(descBytes) < deviceDescLen {
		return 0, 0, 0, fmt.Errorf("device descriptor is %d bytes, got only %d bytes", deviceDescLen, len(descBytes))
	}
	d := &usbDeviceDescriptor{}
	if err := binary.Read(bytes.NewReader(descBytes[:deviceDescLen]), binary.LittleEndian, d); err != nil {
		return 0, 0, 0, fmt.Errorf("failed to decode the device descriptor: %v", err)
	}
	return int(d.IManufacturer), int(d.IProduct), int(d.ISerialNumber), nil
}
