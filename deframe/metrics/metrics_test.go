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

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNewCollectorRegistersAllMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg, "grpcframe", "deframe")

	c.FramesDecoded.Inc()
	c.BytesBuffered.Set(42)
	c.Compactions.Inc()
	c.DecodeErrors.WithLabelValues("Internal").Inc()

	assert.Equal(t, float64(1), testutil.ToFloat64(c.FramesDecoded))
	assert.Equal(t, float64(42), testutil.ToFloat64(c.BytesBuffered))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.Compactions))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.DecodeErrors.WithLabelValues("Internal")))

	count, err := testutil.GatherAndCount(reg)
	assert.NoError(t, err)
	assert.Equal(t, 4, count)
}
