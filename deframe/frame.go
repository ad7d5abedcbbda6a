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

// Package deframe implements the gRPC-over-HTTP/2 length-prefixed message
// deframer: a streaming byte-to-message decoder sitting between a transport
// that delivers arbitrary byte chunks and an RPC layer that expects whole
// frames.
//
// Wire format: a 5-byte header (1-byte compression flag, 4-byte big-endian
// payload length) followed by the payload itself.
package deframe

const (
	// frameHeaderLen is the fixed gRPC frame header size: 1 flag byte + 4
	// big-endian length bytes.
	frameHeaderLen = 5

	// defaultMaxPayloadSize is used when WithMaxPayloadSize is not supplied,
	// matching common gRPC server defaults.
	defaultMaxPayloadSize = 4 << 20 // 4 MiB

	// compactionFloor is the minimum consumed-prefix size (bytes) before
	// compaction is considered at all.
	compactionFloor = 1024
)

// Frame is the payload of a single decoded gRPC message, already
// decompressed if the frame's compression flag was set. Ownership transfers
// to the caller: it is a copy, never a view into the Deframer's internal
// buffer.
type Frame []byte
