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
	"bytes"
	"io"

	"github.com/klauspost/compress/gzip"

	"github.com/packetd/grpcframe/deframeerrors"
)

// gzipCodec decompresses gzip-framed gRPC payloads.
//
// Decompress never allocates the full decompressed size up front: it reads
// through a gzip.Reader into a bounded buffer and aborts the instant more
// than limit bytes would be produced, matching the "enforce the limit before
// allocation" requirement that applies to the outer frame header too.
type gzipCodec struct{}

// NewGzip returns a Decompressor backed by klauspost/compress/gzip.
func NewGzip() Decompressor { return gzipCodec{} }

func (gzipCodec) Decompress(input []byte, limit uint32) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(input))
	if err != nil {
		return nil, deframeerrors.Wrap(err, "codec/gzip: open reader")
	}
	defer zr.Close()

	// Read one byte past the limit so an exactly-at-limit payload succeeds
	// while anything larger is caught without buffering it all.
	lr := io.LimitReader(zr, int64(limit)+1)
	out, err := io.ReadAll(lr)
	if err != nil {
		return nil, deframeerrors.Wrap(err, "codec/gzip: decompress")
	}
	if uint32(len(out)) > limit {
		return nil, deframeerrors.ResourceExhaustedf(
			"codec/gzip: decompressed payload exceeds limit of %d bytes", limit)
	}
	return out, nil
}

func (gzipCodec) Close() error { return nil }
