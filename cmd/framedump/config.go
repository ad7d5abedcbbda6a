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
	"github.com/packetd/grpcframe/confengine"
	"github.com/packetd/grpcframe/logger"
)

// appConfig is the optional YAML configuration framedump accepts via
// --config. maxPayloadSize, codec and metrics.addr have command-line flag
// equivalents, which take precedence over the file when set to a non-zero,
// non-empty value; a non-empty --metrics-addr also enables metrics. Logger
// options are read from the file only.
type appConfig struct {
	MaxPayloadSize uint32         `config:"maxPayloadSize"`
	Codec          string         `config:"codec"`
	Logger         logger.Options `config:"logger"`
	Metrics        metricsConfig  `config:"metrics"`
}

type metricsConfig struct {
	Enabled bool   `config:"enabled"`
	Addr    string `config:"addr"`
}

func defaultAppConfig() appConfig {
	return appConfig{
		MaxPayloadSize: 4 << 20,
		Logger:         logger.Options{Stdout: true, Level: string(logger.LevelInfo)},
		Metrics:        metricsConfig{Addr: ":9090"},
	}
}

// loadAppConfig returns the default configuration unchanged when path is
// empty, so --config stays optional for quick one-off decodes.
func loadAppConfig(path string) (appConfig, error) {
	cfg := defaultAppConfig()
	if path == "" {
		return cfg, nil
	}

	conf, err := confengine.LoadConfigPath(path)
	if err != nil {
		return cfg, err
	}
	if err := conf.Unpack(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
