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

import "github.com/valyala/bytebufferpool"

// bufPool backs every Deframer's rolling buffer. Buffers are returned to the
// pool on Close, amortising allocation across the lifetime of many
// short-lived streams the way the teacher pack's protocol decoders amortise
// their per-connection scratch buffers via bufpool.Acquire/Release.
var bufPool bytebufferpool.Pool

// buffer is a growable byte buffer with an explicit read cursor and
// amortised compaction. It generalizes the teacher's bufbytes.Bytes (a
// fixed-capacity truncating buffer) into an unbounded-but-compacting one:
// a gRPC frame, unlike a captured SQL statement, must never be silently
// truncated.
type buffer struct {
	bb  *bytebufferpool.ByteBuffer
	off int
}

func newBuffer() *buffer {
	return &buffer{bb: bufPool.Get()}
}

// release returns the underlying pooled buffer and detaches it. Calling any
// other method after release is invalid.
func (b *buffer) release() {
	b.bb.Reset()
	bufPool.Put(b.bb)
	b.bb = nil
}

// len reports the number of unread bytes.
func (b *buffer) len() int {
	return len(b.bb.B) - b.off
}

// readable returns the unread tail of the buffer. The slice is only valid
// until the next append/compact/advance call.
func (b *buffer) readable() []byte {
	return b.bb.B[b.off:]
}

// advance moves the read cursor forward by n bytes.
func (b *buffer) advance(n int) {
	b.off += n
}

// append writes chunk to the buffer, compacting first if the consumed
// prefix has grown large enough to be worth reclaiming.
//
// Compaction triggers only when the consumed prefix exceeds both an
// absolute floor (avoids compacting tiny streams, where the memmove costs
// more than it saves) and half the buffer's total length (avoids compacting
// buffers that are mostly unread, where the memmove would be mostly wasted).
// Together these bound the amortised cost to O(1) bytes copied per frame
// under steady-state streaming.
func (b *buffer) append(chunk []byte) (compacted bool) {
	if len(b.bb.B) == 0 {
		b.bb.B = append(b.bb.B, chunk...)
		return false
	}
	if b.off > compactionFloor && b.off*2 > len(b.bb.B) {
		b.compact()
		compacted = true
	}
	b.bb.B = append(b.bb.B, chunk...)
	return compacted
}

// compact discards the already-read prefix in place and rewinds the cursor
// to 0. Readable bytes and any previously-returned Frame are unaffected:
// Frame values are copies, never views into bb.B.
func (b *buffer) compact() {
	n := copy(b.bb.B, b.bb.B[b.off:])
	b.bb.B = b.bb.B[:n]
	b.off = 0
}
