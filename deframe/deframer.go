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
	"errors"

	"github.com/packetd/grpcframe/deframeerrors"
)

// Deframer is a stateful per-stream accumulator. It holds a rolling byte
// buffer, appends transport chunks via Append, and repeatedly invokes a
// FrameDecoder via DecodeNext until it yields no more frames, compacting the
// buffer as needed to bound memory on long-lived streams.
//
// A Deframer is exclusive to one logical stream and must be driven by
// exactly one goroutine at a time: there is no internal locking, and no
// operation blocks.
type Deframer struct {
	dec  *FrameDecoder
	buf  *buffer
	opts options
}

// New constructs a Deframer for one stream. The returned Deframer must be
// closed via Close when the stream ends.
func New(opts ...Option) *Deframer {
	o := defaultOptions
	for _, fn := range opts {
		fn(&o)
	}
	return &Deframer{
		dec:  newFrameDecoder(o),
		buf:  newBuffer(),
		opts: o,
	}
}

// Append gives the Deframer another byte chunk from the transport. It never
// fails and never requires the chunk to align with a frame boundary. The
// chunk is copied into the internal buffer; the Deframer retains no
// reference to the slice passed in.
func (d *Deframer) Append(chunk []byte) {
	compacted := d.buf.append(chunk)
	if d.opts.metrics != nil {
		d.opts.metrics.BytesBuffered.Set(float64(d.buf.len()))
		if compacted {
			d.opts.metrics.Compactions.Inc()
		}
	}
}

// DecodeNext attempts to produce the next complete frame. It returns
// (nil, nil) when the buffer is empty or holds only an incomplete frame;
// otherwise it returns exactly one frame or the error surfaced by the
// underlying FrameDecoder. DecodeNext never retries and never attempts
// resynchronisation: a framing error is fatal for the stream.
func (d *Deframer) DecodeNext() (Frame, error) {
	frame, err := d.dec.decode(d.buf)
	if err != nil {
		if d.opts.log != nil {
			d.opts.log.Warnf("deframe: decode failed (max=%d): %v", d.opts.maxPayloadSize, err)
		}
		if d.opts.metrics != nil {
			d.opts.metrics.DecodeErrors.WithLabelValues(grpcCodeLabel(err)).Inc()
		}
		return nil, err
	}
	if frame != nil && d.opts.metrics != nil {
		d.opts.metrics.FramesDecoded.Inc()
		d.opts.metrics.BytesBuffered.Set(float64(d.buf.len()))
	}
	return frame, nil
}

// DrainInto repeatedly calls DecodeNext and invokes sink for each frame
// until DecodeNext returns no frame or an error. It returns that error, or
// nil once the buffer is drained of complete frames.
func (d *Deframer) DrainInto(sink func(Frame)) error {
	for {
		frame, err := d.DecodeNext()
		if err != nil {
			return err
		}
		if frame == nil {
			return nil
		}
		sink(frame)
	}
}

// Close returns the Deframer's pooled internal buffer and releases its
// reference. It does not close the configured Decompressor, which the
// caller still owns. Close is idempotent.
func (d *Deframer) Close() error {
	if d.buf != nil {
		d.buf.release()
		d.buf = nil
	}
	return nil
}

// grpcCodeLabel extracts a Prometheus label value from err's gRPC status
// code. Every error DecodeNext can return is built or wrapped through
// deframeerrors (see FrameDecoder.decode and deframeerrors.Wrap, which
// defaults an unclassified Decompressor failure to KindInternal), so the
// "unknown" fallback below is only a defensive backstop, not an expected path.
func grpcCodeLabel(err error) string {
	var de *deframeerrors.Error
	if !errors.As(err, &de) {
		return "unknown"
	}
	return de.GRPCCode().String()
}
