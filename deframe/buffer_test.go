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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferAppendReadableAdvance(t *testing.T) {
	b := newBuffer()
	defer b.release()

	b.append([]byte("hello"))
	assert.Equal(t, 5, b.len())
	assert.Equal(t, []byte("hello"), b.readable())

	b.advance(3)
	assert.Equal(t, 2, b.len())
	assert.Equal(t, []byte("lo"), b.readable())

	b.append([]byte("world"))
	assert.Equal(t, 7, b.len())
	assert.Equal(t, []byte("loworld"), b.readable())
}

func TestBufferCompactionTriggersOnFloorAndRatio(t *testing.T) {
	b := newBuffer()
	defer b.release()

	// Below the absolute floor: no compaction even though the consumed
	// prefix is the entire buffer.
	b.append(make([]byte, 100))
	b.advance(100)
	compacted := b.append([]byte("x"))
	assert.False(t, compacted)
	assert.Equal(t, 101, len(b.bb.B))

	b3 := newBuffer()
	defer b3.release()
	b3.append(make([]byte, 4000))
	b3.advance(1025) // > floor, but 1025*2 (2050) < 4000: not more than half yet
	compacted3 := b3.append([]byte("y"))
	assert.False(t, compacted3)

	b4 := newBuffer()
	defer b4.release()
	b4.append(make([]byte, 2000))
	b4.advance(1500) // > floor and 1500*2 > 2000: compaction should trigger
	before := b4.readable()
	beforeCopy := append([]byte(nil), before...)
	compacted4 := b4.append([]byte("z"))
	assert.True(t, compacted4)
	assert.Equal(t, 0, b4.off)
	assert.Equal(t, append(beforeCopy, 'z'), b4.readable())
}

func TestBufferAppendIntoEmptyBufferSkipsCompactionCheck(t *testing.T) {
	b := newBuffer()
	defer b.release()
	b.advance(0) // still empty
	compacted := b.append([]byte("first"))
	assert.False(t, compacted)
	assert.Equal(t, "first", string(b.readable()))
}
