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

	"github.com/google/gousb"
)

// InterfaceNotFoundError is returned when a device has no interface with
// the requested number. It carries that number.
type InterfaceNotFoundError int

func (e InterfaceNotFoundError) Error() string {
	return fmt.Sprintf("USB interface not found: %d", int(e))
}

// EndpointNotFoundError is returned when an interface has no endpoint with
// the requested address. It carries that address.
type EndpointNotFoundError gousb.EndpointAddress

func (e EndpointNotFoundError) Error() string {
	return fmt.Sprintf("USB endpoint not found: %d", uint8(e))
}

// FindInterface returns the interface with the given number from the
// device's active configuration. Interface numbers are assigned
// contiguously from zero, so this is a positional lookup.
func (d *Device) FindInterface(number int) (*InterfaceDesc, error) {
	if number < 0 || number >= len(d.Desc.Interfaces) {
		return nil, InterfaceNotFoundError(number)
	}
	return &d.Desc.Interfaces[number], nil
}

// FindEndpoint returns the endpoint with the given address on the given
// interface. An interface lookup failure is returned unchanged. Endpoint
// addresses are unique within an interface, so the first match is the only
// one.
func (d *Device) FindEndpoint(intfNumber int, address gousb.EndpointAddress) (*gousb.EndpointDesc, error) {
	intf, err := d.FindInterface(intfNumber)
	if err != nil {
		return nil, err
	}
	for i := range intf.Endpoints {
		if intf.Endpoints[i].Address == address {
			return &intf.Endpoints[i], nil
		}
	}
	return nil, EndpointNotFoundError(address)
}
