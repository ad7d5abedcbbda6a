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

package deframe

import (
	"encoding/binary"

	"github.com/packetd/grpcframe/deframeerrors"
)

// Decompressor turns a compressed gRPC message payload into its uncompressed
// form, refusing to produce more than limit output bytes. Decompressor owns
// its own resources and has an explicit teardown (Close) owned by whoever
// constructed it; a Deframer only borrows the capability and never
// constructs or closes one. See package deframe/codec for shipped
// implementations.
type Decompressor interface {
	Decompress(input []byte, limit uint32) ([]byte, error)
	Close() error
}

// FrameDecoder is a single-step decoder: given a mutable byte buffer, it
// attempts to parse exactly one gRPC frame at the current read cursor,
// advancing it on success and leaving it untouched on a short read.
//
// A FrameDecoder carries only immutable configuration; all mutable stream
// state lives in the buffer passed to decode.
type FrameDecoder struct {
	maxPayloadSize uint32
	decompressor   Decompressor
}

// newFrameDecoder constructs a FrameDecoder from resolved options.
func newFrameDecoder(o options) *FrameDecoder {
	return &FrameDecoder{
		maxPayloadSize: o.maxPayloadSize,
		decompressor:   o.decompressor,
	}
}

// decode attempts to parse one frame at buf's read cursor.
//
// Returns (nil, nil) when buf does not yet hold a complete frame; the
// cursor is left exactly where it was. Returns (frame, nil) on success
// (frame is never nil on success, even for a zero-length payload), with the
// cursor advanced past the header and payload. Returns a non-nil error when
// the declared length exceeds maxPayloadSize, when the frame is compressed
// but no decompressor is configured, or when the decompressor itself fails.
func (d *FrameDecoder) decode(buf *buffer) (Frame, error) {
	if buf.len() < frameHeaderLen {
		return nil, nil
	}

	readable := buf.readable()
	flag := readable[0]
	length := binary.BigEndian.Uint32(readable[1:frameHeaderLen])

	// Step 4: the size check happens before the slice attempt, so an
	// oversized declared length fails fast without waiting for the bytes to
	// arrive over the wire.
	if length > d.maxPayloadSize {
		return nil, deframeerrors.ResourceExhaustedf(
			"frame declares payload length %d, exceeding configured max %d", length, d.maxPayloadSize)
	}

	total := frameHeaderLen + int(length)
	if buf.len() < total {
		// Short read: no mutation happened, so there is nothing to roll back.
		return nil, nil
	}

	payload := readable[frameHeaderLen:total]
	buf.advance(total)

	// Any flag value other than exact equality with 1 is treated as
	// uncompressed; algorithm selection happens out-of-band (grpc-encoding),
	// never via this bit.
	if flag != 1 {
		out := make([]byte, len(payload))
		copy(out, payload)
		return Frame(out), nil
	}

	// A compressed frame with a zero-length payload has nothing to
	// decompress: bypass the decompressor entirely rather than feed it an
	// empty slice, since neither shipped codec accepts one (gzip needs a
	// 10-byte header, snappy's length varint needs at least one byte).
	if length == 0 {
		return Frame{}, nil
	}

	if d.decompressor == nil {
		return nil, deframeerrors.Internalf(
			"frame advertises compression but no decompressor is configured")
	}

	out, err := d.decompressor.Decompress(payload, d.maxPayloadSize)
	if err != nil {
		return nil, deframeerrors.Wrap(err, "deframe: decompress frame payload")
	}
	return Frame(out), nil
}
