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
	"github.com/packetd/grpcframe/deframe/metrics"
	"github.com/packetd/grpcframe/logger"
)

// options holds resolved Deframer configuration. Unexported: callers only
// ever see the functional Option constructors below, matching the
// WithXxx(*option) pattern used throughout the teacher pack's protocol
// decoders (e.g. phttp2.WithTrailersOpt).
type options struct {
	maxPayloadSize uint32
	decompressor   Decompressor
	metrics        *metrics.Collector
	log            *logger.Logger
}

var defaultOptions = options{
	maxPayloadSize: defaultMaxPayloadSize,
}

// Option configures a Deframer at construction time.
type Option func(*options)

// WithMaxPayloadSize sets the hard upper bound on a single frame's declared
// payload length. A frame exceeding it fails with a ResourceExhausted-kind
// error without allocating the payload buffer. Zero restores the package
// default (4 MiB).
func WithMaxPayloadSize(n uint32) Option {
	return func(o *options) {
		if n == 0 {
			n = defaultMaxPayloadSize
		}
		o.maxPayloadSize = n
	}
}

// WithDecompressor configures the Decompressor used for frames whose
// compression flag is set. If absent, such frames fail with an
// Internal-kind error. The Deframer never constructs or closes the
// Decompressor passed in; the caller owns its lifecycle.
func WithDecompressor(d Decompressor) Option {
	return func(o *options) { o.decompressor = d }
}

// WithMetrics wires a metrics.Collector that the Deframer updates as it
// appends, decodes, and compacts.
func WithMetrics(m *metrics.Collector) Option {
	return func(o *options) { o.metrics = m }
}

// WithLogger wires a logger.Logger that the Deframer uses to warn about
// frame decode errors (declared length, configured limit) before returning
// them to the caller. Optional: without it, errors are only returned, never
// logged, keeping the pure-library path free of any global logging state.
func WithLogger(l logger.Logger) Option {
	return func(o *options) { o.log = &l }
}
