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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/packetd/grpcframe/deframeerrors"
)

// encodeFrame builds a raw wire-format frame: 1-byte flag, 4-byte big-endian
// length, then payload.
func encodeFrame(flag byte, payload []byte) []byte {
	out := make([]byte, frameHeaderLen+len(payload))
	out[0] = flag
	binary.BigEndian.PutUint32(out[1:frameHeaderLen], uint32(len(payload)))
	copy(out[frameHeaderLen:], payload)
	return out
}

func TestFrameDecoderCompleteFrame(t *testing.T) {
	d := newFrameDecoder(defaultOptions)
	buf := newBuffer()
	defer buf.release()

	buf.append(encodeFrame(0, []byte("hello world")))

	frame, err := d.decode(buf)
	assert.NoError(t, err)
	assert.Equal(t, Frame("hello world"), frame)
	assert.Equal(t, 0, buf.len())
}

func TestFrameDecoderShortHeaderReturnsNilWithoutMutation(t *testing.T) {
	d := newFrameDecoder(defaultOptions)
	buf := newBuffer()
	defer buf.release()

	buf.append([]byte{0, 0, 0})

	frame, err := d.decode(buf)
	assert.NoError(t, err)
	assert.Nil(t, frame)
	assert.Equal(t, 3, buf.len())
}

func TestFrameDecoderShortPayloadReturnsNilWithoutMutation(t *testing.T) {
	d := newFrameDecoder(defaultOptions)
	buf := newBuffer()
	defer buf.release()

	full := encodeFrame(0, []byte("0123456789"))
	buf.append(full[:frameHeaderLen+4]) // header plus a partial payload

	frame, err := d.decode(buf)
	assert.NoError(t, err)
	assert.Nil(t, frame)
	assert.Equal(t, frameHeaderLen+4, buf.len())

	// Finish it off: the remaining bytes should now decode cleanly.
	buf.append(full[frameHeaderLen+4:])
	frame, err = d.decode(buf)
	assert.NoError(t, err)
	assert.Equal(t, Frame("0123456789"), frame)
}

func TestFrameDecoderEmptyPayloadFrame(t *testing.T) {
	d := newFrameDecoder(defaultOptions)
	buf := newBuffer()
	defer buf.release()

	buf.append(encodeFrame(0, nil))

	frame, err := d.decode(buf)
	assert.NoError(t, err)
	assert.NotNil(t, frame)
	assert.Empty(t, frame)
}

func TestFrameDecoderTwoFramesInOneChunk(t *testing.T) {
	d := newFrameDecoder(defaultOptions)
	buf := newBuffer()
	defer buf.release()

	chunk := append(encodeFrame(0, []byte("first")), encodeFrame(0, []byte("second"))...)
	buf.append(chunk)

	frame, err := d.decode(buf)
	assert.NoError(t, err)
	assert.Equal(t, Frame("first"), frame)

	frame, err = d.decode(buf)
	assert.NoError(t, err)
	assert.Equal(t, Frame("second"), frame)

	frame, err = d.decode(buf)
	assert.NoError(t, err)
	assert.Nil(t, frame)
}

func TestFrameDecoderOversizeDeclaredLengthFailsFast(t *testing.T) {
	o := defaultOptions
	o.maxPayloadSize = 8
	d := newFrameDecoder(o)
	buf := newBuffer()
	defer buf.release()

	header := make([]byte, frameHeaderLen)
	binary.BigEndian.PutUint32(header[1:], 1<<20)
	buf.append(header)

	frame, err := d.decode(buf)
	assert.Nil(t, frame)
	assert.ErrorIs(t, err, deframeerrors.ErrResourceExhausted)
}

func TestFrameDecoderCompressedEmptyPayloadBypassesDecompressor(t *testing.T) {
	// No decompressor configured at all: if the zero-length special case
	// didn't short-circuit, this would fail with a KindInternal error.
	d := newFrameDecoder(defaultOptions)
	buf := newBuffer()
	defer buf.release()

	buf.append(encodeFrame(1, nil))

	frame, err := d.decode(buf)
	assert.NoError(t, err)
	assert.NotNil(t, frame)
	assert.Empty(t, frame)
}

func TestFrameDecoderCompressedWithoutDecompressorFailsInternal(t *testing.T) {
	d := newFrameDecoder(defaultOptions)
	buf := newBuffer()
	defer buf.release()

	buf.append(encodeFrame(1, []byte("payload")))

	frame, err := d.decode(buf)
	assert.Nil(t, frame)
	assert.ErrorIs(t, err, deframeerrors.ErrInternal)
}

type stubDecompressor struct {
	out []byte
	err error
}

func (s stubDecompressor) Decompress([]byte, uint32) ([]byte, error) { return s.out, s.err }
func (s stubDecompressor) Close() error                              { return nil }

func TestFrameDecoderCompressedWithDecompressorDelegates(t *testing.T) {
	o := defaultOptions
	o.decompressor = stubDecompressor{out: []byte("decompressed")}
	d := newFrameDecoder(o)
	buf := newBuffer()
	defer buf.release()

	buf.append(encodeFrame(1, []byte("anything")))

	frame, err := d.decode(buf)
	assert.NoError(t, err)
	assert.Equal(t, Frame("decompressed"), frame)
}

func TestFrameDecoderNonOneFlagTreatedUncompressed(t *testing.T) {
	d := newFrameDecoder(defaultOptions)
	buf := newBuffer()
	defer buf.release()

	// Any flag value other than exactly 1 (e.g. a stray high bit) is passed
	// through untouched rather than routed to a decompressor.
	buf.append(encodeFrame(2, []byte("raw")))

	frame, err := d.decode(buf)
	assert.NoError(t, err)
	assert.Equal(t, Frame("raw"), frame)
}
