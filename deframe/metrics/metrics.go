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

// Package metrics provides optional Prometheus instrumentation for a
// Deframer. Wiring a Collector in is opt-in (deframe.WithMetrics); without
// one, a Deframer updates no metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Collector groups the counters and gauges a Deframer updates from the
// single goroutine that drives it. All updates happen synchronously with
// the caller, so no extra locking is introduced beyond what the underlying
// prometheus types already provide for their own concurrent readers
// (registry scrapes).
type Collector struct {
	FramesDecoded prometheus.Counter
	BytesBuffered prometheus.Gauge
	Compactions   prometheus.Counter
	DecodeErrors  *prometheus.CounterVec
}

// NewCollector builds a Collector and registers it with reg. namespace and
// subsystem follow the usual Prometheus naming convention
// (namespace_subsystem_name).
func NewCollector(reg prometheus.Registerer, namespace, subsystem string) *Collector {
	c := &Collector{
		FramesDecoded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "frames_decoded_total",
			Help:      "Number of gRPC frames successfully decoded.",
		}),
		BytesBuffered: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "bytes_buffered",
			Help:      "Unread bytes currently held in the deframer's internal buffer.",
		}),
		Compactions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "buffer_compactions_total",
			Help:      "Number of times the internal buffer's consumed prefix was reclaimed.",
		}),
		DecodeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "decode_errors_total",
			Help:      "Number of frame decode failures, labeled by gRPC status code.",
		}, []string{"code"}),
	}
	reg.MustRegister(c.FramesDecoded, c.BytesBuffered, c.Compactions, c.DecodeErrors)
	return c
}
