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

import "github.com/google/gousb"

// Setup packet bits re-exported from the native layer for callers building
// ControlRequest values. Both are libusb-standard constants.
const (
	// RequestTypeVendor marks a vendor-specific request in bmRequestType.
	RequestTypeVendor = uint8(gousb.ControlVendor)
	// EndpointIn is the IN direction bit, used both in bmRequestType and
	// in endpoint addresses.
	EndpointIn = uint8(gousb.ControlIn)
)
