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

// Package usbkit is a thin convenience layer over the gousb USB bindings.
//
// usbkit does not implement any USB protocol machinery of its own. Device
// discovery, descriptor parsing and transfer execution all happen inside
// the native layer (libusb, through gousb); this package adapts those
// primitives into a small, flat API: enumerate devices, read string
// descriptors, issue control transfers, and look up interfaces and
// endpoints of a device's active configuration.
//
// A Context created on a host without working USB support (no controller,
// no libusb) is still usable: it simply lists no devices. All other errors
// from the native layer are returned to the caller unchanged.
package usbkit

// Context manages the native USB layer. It must be initialized through
// NewContext and Close()d after use.
type Context struct {
	native nativeLayer

	// unavailable is set once at construction time when the native layer
	// cannot be initialized on this host. Such a Context lists no devices.
	unavailable bool
}

// NewContext initializes the native USB layer and returns a new Context.
// Unlike gousb.NewContext it never fails: if USB support is unavailable on
// the host, the returned Context enumerates zero devices.
func NewContext() *Context {
	return newContextWithNative(&gousbLayer{})
}

// newContextWithNative is the constructor seam used by tests to substitute
// a fake native layer.
func newContextWithNative(n nativeLayer) *Context {
	c := &Context{native: n}
	if err := n.init(); err != nil {
		debug.Printf("native USB support unavailable, listing no devices: %v", err)
		c.unavailable = true
	}
	return c
}

// Debug changes the debug level of the native layer. Level 0 disables
// debug output.
func (c *Context) Debug(level int) {
	if c.unavailable {
		return
	}
	c.native.setDebug(level)
}

// ListDevices returns a snapshot of the devices currently known to the
// native layer, opened and ready for use. Every returned Device must be
// Close()d by the caller.
//
// Following the gousb OpenDevices contract, devices that opened
// successfully are returned even when the enumeration of another device
// failed; in that case the error is returned alongside them. On a Context
// without native USB support the device list is always empty and the error
// is nil.
func (c *Context) ListDevices() ([]*Device, error) {
	if c.unavailable {
		return nil, nil
	}
	return c.native.devices()
}

// Close releases the native layer. It must not be called while devices
// returned by ListDevices are still open.
func (c *Context) Close() error {
	if c.unavailable {
		return nil
	}
	return c.native.close()
}
