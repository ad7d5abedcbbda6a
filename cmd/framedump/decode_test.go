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

package main

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/packetd/grpcframe/deframe"
)

func encodeFrame(flag byte, payload []byte) []byte {
	out := make([]byte, 5+len(payload))
	out[0] = flag
	binary.BigEndian.PutUint32(out[1:5], uint32(len(payload)))
	copy(out[5:], payload)
	return out
}

func TestDumpFramesReportsEachFrameAndCount(t *testing.T) {
	var wire bytes.Buffer
	wire.Write(encodeFrame(0, []byte("hello")))
	wire.Write(encodeFrame(0, []byte("world")))

	decodeConfig.hex = false
	var out bytes.Buffer
	err := dumpFrames(&out, strings.NewReader(wire.String()), deframe.New())
	assert.NoError(t, err)
	assert.Contains(t, out.String(), "frame 1: 5 bytes")
	assert.Contains(t, out.String(), "frame 2: 5 bytes")
	assert.Contains(t, out.String(), "done: 2 frame(s)")
}

func TestDumpFramesHexModePrintsPayload(t *testing.T) {
	var wire bytes.Buffer
	wire.Write(encodeFrame(0, []byte("ab")))

	decodeConfig.hex = true
	defer func() { decodeConfig.hex = false }()

	var out bytes.Buffer
	err := dumpFrames(&out, strings.NewReader(wire.String()), deframe.New())
	assert.NoError(t, err)
	assert.Contains(t, out.String(), "6162") // hex of "ab"
}

func TestDumpFramesPropagatesOversizeError(t *testing.T) {
	wire := encodeFrame(0, []byte("this payload is definitely too big for the limit"))

	decodeConfig.hex = false
	var out bytes.Buffer
	err := dumpFrames(&out, strings.NewReader(string(wire)), deframe.New(deframe.WithMaxPayloadSize(4)))
	assert.Error(t, err)
}

func TestResolveDecompressorUnknownNameFails(t *testing.T) {
	_, err := resolveDecompressor("lz4")
	assert.Error(t, err)
}

func TestResolveDecompressorKnownCodecs(t *testing.T) {
	for _, name := range []string{"", "gzip", "snappy"} {
		d, err := resolveDecompressor(name)
		assert.NoError(t, err)
		if name == "" {
			assert.Nil(t, d)
		} else {
			assert.NotNil(t, d)
		}
	}
}
