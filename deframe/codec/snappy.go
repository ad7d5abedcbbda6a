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

package codec

import (
	"github.com/golang/snappy"

	"github.com/packetd/grpcframe/deframeerrors"
)

// snappyCodec decompresses Snappy-framed gRPC payloads.
//
// Snappy blocks carry their own decoded length as a varint prefix, so the
// limit check (snappy.DecodedLen) rejects an oversized payload before any
// decompression work happens, unlike gzip where the size is only known by
// reading through the stream.
type snappyCodec struct{}

// NewSnappy returns a Decompressor backed by golang/snappy.
func NewSnappy() Decompressor { return snappyCodec{} }

func (snappyCodec) Decompress(input []byte, limit uint32) ([]byte, error) {
	n, err := snappy.DecodedLen(input)
	if err != nil {
		return nil, deframeerrors.Wrap(err, "codec/snappy: read declared length")
	}
	if n < 0 || uint32(n) > limit {
		return nil, deframeerrors.ResourceExhaustedf(
			"codec/snappy: declared decoded length %d exceeds limit of %d bytes", n, limit)
	}

	out, err := snappy.Decode(nil, input)
	if err != nil {
		return nil, deframeerrors.Wrap(err, "codec/snappy: decompress")
	}
	return out, nil
}

func (snappyCodec) Close() error { return nil }
