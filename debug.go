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

// To enable internal debug output:
//   -ldflags "-X github.com/peripheralhq/usbkit.debugInternal=1"
// Native-layer debug output is controlled separately via Context.Debug.

import (
	"io"
	"log"
	"os"
)

var debug *log.Logger
var debugInternal string

func init() {
	var out io.Writer = io.Discard
	if debugInternal != "" {
		out = os.Stderr
	}
	debug = log.New(out, "usbkit: ", log.LstdFlags|log.Lshortfile)
}
