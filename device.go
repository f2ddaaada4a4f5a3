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

	"golang.org/x/sync/errgroup"
)

// Device represents an opened USB device. A Device must be Close()d after
// use. All methods are single pass-through calls to the native layer; the
// Device retains no state across calls.
type Device struct {
	handle nativeDevice

	// Desc describes the device and its active configuration.
	Desc *DeviceDesc
}

// String represents a human readable representation of the device.
func (d *Device) String() string {
	return fmt.Sprintf("vid=%s,pid=%s,bus=%d,addr=%d", d.Desc.Vendor, d.Desc.Product, d.Desc.Bus, d.Desc.Address)
}

// StringDescriptor returns the device string descriptor with the given
// index number. The native layer converts the descriptor to ASCII
// (non-ASCII characters are replaced with "?").
func (d *Device) StringDescriptor(index int) (string, error) {
	if d.handle == nil {
		return "", fmt.Errorf("StringDescriptor(%d) called on %s after Close", index, d)
	}
	return d.handle.GetStringDescriptor(index)
}

// Manufacturer returns the device's manufacturer name.
func (d *Device) Manufacturer() (string, error) {
	return d.StringDescriptor(d.Desc.ManufacturerIndex)
}

// Product returns the device's product name.
func (d *Device) Product() (string, error) {
	return d.StringDescriptor(d.Desc.ProductIndex)
}

// SerialNumber returns the device's serial number.
func (d *Device) SerialNumber() (string, error) {
	return d.StringDescriptor(d.Desc.SerialNumberIndex)
}

// Name returns "{manufacturer} {product}" for the device. The two string
// descriptors are resolved concurrently; if either read fails, Name fails.
func (d *Device) Name() (string, error) {
	if d.handle == nil {
		return "", fmt.Errorf("Name() called on %s after Close", d)
	}
	var mfg, prod string
	var g errgroup.Group
	g.Go(func() error {
		var err error
		mfg, err = d.Manufacturer()
		return err
	})
	g.Go(func() error {
		var err error
		prod, err = d.Product()
		return err
	})
	if err := g.Wait(); err != nil {
		return "", err
	}
	return mfg + " " + prod, nil
}

// Close closes the device. Calling Close twice is a no-op.
func (d *Device) Close() error {
	if d.handle == nil {
		return nil
	}
	err := d.handle.Close()
	d.handle = nil
	return err
}
