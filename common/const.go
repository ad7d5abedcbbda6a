// Copyright 2025 The packetd Authors
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package common

const (
	// App is the demo CLI's root command name.
	App = "grpcframe"

	// Version is the module's release version.
	Version = "v0.1.0"

	// ReadWriteBlockSize is the default chunk size framedump uses to read its
	// input stream before handing each chunk to a Deframer. 4096 keeps a
	// single read well under a TCP segment's 64K ceiling without forcing a
	// syscall per small frame.
	ReadWriteBlockSize = 4096
)
