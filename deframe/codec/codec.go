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

// Package codec provides bounded Decompressor implementations for the
// deframe package. The deframer never imports a specific compression
// library directly; it only depends on the small interface declared here.
package codec

// Decompressor turns a compressed gRPC message payload into its uncompressed
// form. Implementations MUST refuse to produce more than limit output bytes.
//
// Decompressor owns whatever resources it allocates at construction time and
// must be torn down explicitly via Close by whoever constructed it; the
// deframer that borrows a Decompressor never constructs or closes one.
type Decompressor interface {
	// Decompress returns the uncompressed form of input, or an error if it
	// cannot be produced within limit bytes.
	Decompress(input []byte, limit uint32) ([]byte, error)

	// Close releases any resources held by the Decompressor.
	Close() error
}
