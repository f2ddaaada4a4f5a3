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
	"fmt"
	"sort"

	"github.com/google/gousb"
)

// nativeDevice is the subset of an open native device handle used by this
// package. *gousb.Device implements it. The handle is owned by the native
// layer; usbkit only forwards it back into further native calls.
type nativeDevice interface {
	Control(rType, request uint8, val, idx uint16, data []byte) (int, error)
	GetStringDescriptor(descIndex int) (string, error)
	Close() error
}

// nativeLayer abstracts the context-scoped operations of the native USB
// stack. The stack is generally not testable without host hardware, so
// tests substitute a fake implementation (see fakenative_test.go).
type nativeLayer interface {
	// init prepares the native stack. An error means USB support is
	// unavailable on this host, not that a particular call failed.
	init() error
	setDebug(level int)
	// devices opens and returns all devices currently attached.
	devices() ([]*Device, error)
	close() error
}

// gousbLayer is the production nativeLayer backed by a gousb Context.
type gousbLayer struct {
	ctx *gousb.Context
}

func (g *gousbLayer) init() (err error) {
	// gousb.NewContext panics when libusb cannot be initialized, which is
	// the normal state of affairs on hosts without a USB controller.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("libusb initialization failed: %v", r)
		}
	}()
	g.ctx = gousb.NewContext()
	return nil
}

func (g *gousbLayer) setDebug(level int) { g.ctx.Debug(level) }

func (g *gousbLayer) devices() ([]*Device, error) {
	devs, err := g.ctx.OpenDevices(func(*gousb.DeviceDesc) bool { return true })
	out := make([]*Device, 0, len(devs))
	for _, dev := range devs {
		out = append(out, &Device{handle: dev, Desc: describeDevice(dev)})
	}
	return out, err
}

func (g *gousbLayer) close() error { return g.ctx.Close() }

// Standard GET_DESCRIPTOR request fields, USB 2.0 spec section 9.4.3.
// gousb exposes no request-type bit for standard requests (it is 0x00), so
// the setup byte is just direction and recipient.
const (
	requestGetDescriptor    = 0x06
	descriptorTypeDevice    = 0x01
	getDescriptorSetupRType = uint8(gousb.ControlIn) | uint8(gousb.ControlDevice)
)

// describeDevice assembles the usbkit view of an open gousb device: vendor
// and product IDs, the string descriptor indexes, and the interface layout
// of the active configuration.
func describeDevice(dev *gousb.Device) *DeviceDesc {
	desc := &DeviceDesc{
		Bus:      dev.Desc.Bus,
		Address:  dev.Desc.Address,
		Vendor:   dev.Desc.Vendor,
		Product:  dev.Desc.Product,
		Class:    dev.Desc.Class,
		SubClass: dev.Desc.SubClass,
		Protocol: dev.Desc.Protocol,
	}

	// gousb does not export the string descriptor indexes, so read the raw
	// device descriptor and decode them ourselves.
	buf := make([]byte, deviceDescLen)
	if n, err := dev.Control(getDescriptorSetupRType, requestGetDescriptor, descriptorTypeDevice<<8, 0, buf); err != nil {
		debug.Printf("%s: device descriptor read failed, string indexes unknown: %v", dev, err)
	} else if mfg, prod, serial, err := stringIndexesFromBytes(buf[:n]); err != nil {
		debug.Printf("%s: %v", dev, err)
	} else {
		desc.ManufacturerIndex = mfg
		desc.ProductIndex = prod
		desc.SerialNumberIndex = serial
	}

	desc.Interfaces = activeInterfaces(dev)
	return desc
}

// activeInterfaces flattens the interfaces of the device's active
// configuration, alternate setting 0, with endpoints ordered by address.
// Devices that stall GET_CONFIGURATION fall back to the lowest-numbered
// configuration in the descriptor.
func activeInterfaces(dev *gousb.Device) []InterfaceDesc {
	cfgNum, err := dev.ActiveConfigNum()
	cfg, ok := dev.Desc.Configs[cfgNum]
	if err != nil || !ok {
		nums := make([]int, 0, len(dev.Desc.Configs))
		for n := range dev.Desc.Configs {
			nums = append(nums, n)
		}
		if len(nums) == 0 {
			return nil
		}
		sort.Ints(nums)
		cfg = dev.Desc.Configs[nums[0]]
	}

	out := make([]InterfaceDesc, 0, len(cfg.Interfaces))
	for _, intf := range cfg.Interfaces {
		if len(intf.AltSettings) == 0 {
			continue
		}
		alt := intf.AltSettings[0]
		eps := make([]gousb.EndpointDesc, 0, len(alt.Endpoints))
		for _, ep := range alt.Endpoints {
			eps = append(eps, ep)
		}
		sort.Slice(eps, func(i, j int) bool { return eps[i].Address < eps[j].Address })
		out = append(out, InterfaceDesc{
			Number:    intf.Number,
			Class:     alt.Class,
			SubClass:  alt.SubClass,
			Protocol:  alt.Protocol,
			Endpoints: eps,
		})
	}
	return out
}
