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
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/packetd/grpcframe/common"
	"github.com/packetd/grpcframe/deframe"
	"github.com/packetd/grpcframe/deframe/codec"
	"github.com/packetd/grpcframe/deframe/metrics"
	"github.com/packetd/grpcframe/logger"
)

var decodeConfig struct {
	hex            bool
	codecName      string
	maxPayloadSize uint32
	metricsAddr    string
	metricsEnabled bool
}

var decodeCmd = &cobra.Command{
	Use:     "decode [file|-]",
	Short:   "Decode a length-prefixed byte stream into frames",
	Args:    cobra.ExactArgs(1),
	Example: "# framedump decode --codec gzip --hex capture.bin",
	RunE:    runDecode,
}

func init() {
	decodeCmd.Flags().BoolVar(&decodeConfig.hex, "hex", false, "Print each frame's payload as hex")
	decodeCmd.Flags().StringVar(&decodeConfig.codecName, "codec", "", "Decompressor for compressed frames: \"gzip\", \"snappy\"; empty uses the config's codec (none if unset)")
	decodeCmd.Flags().Uint32Var(&decodeConfig.maxPayloadSize, "max-payload-size", 0, "Maximum accepted frame payload size in bytes (0 uses the config/default)")
	decodeCmd.Flags().StringVar(&decodeConfig.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address while decoding (empty uses the config's metrics settings)")
	rootCmd.AddCommand(decodeCmd)
}

func resolveDecompressor(name string) (deframe.Decompressor, error) {
	switch name {
	case "":
		return nil, nil
	case "gzip":
		return codec.NewGzip(), nil
	case "snappy":
		return codec.NewSnappy(), nil
	default:
		return nil, fmt.Errorf("framedump: unknown codec %q", name)
	}
}

func runDecode(cmd *cobra.Command, args []string) error {
	cfg, err := loadAppConfig(configPath)
	if err != nil {
		return fmt.Errorf("framedump: load config: %w", err)
	}
	logger.SetOptions(cfg.Logger)

	codecName := decodeConfig.codecName
	if codecName == "" {
		codecName = cfg.Codec
	}
	decompressor, err := resolveDecompressor(codecName)
	if err != nil {
		return err
	}
	if decompressor != nil {
		defer decompressor.Close()
	}

	maxPayloadSize := cfg.MaxPayloadSize
	if decodeConfig.maxPayloadSize != 0 {
		maxPayloadSize = decodeConfig.maxPayloadSize
	}

	metricsEnabled := cfg.Metrics.Enabled || decodeConfig.metricsAddr != ""
	metricsAddr := cfg.Metrics.Addr
	if decodeConfig.metricsAddr != "" {
		metricsAddr = decodeConfig.metricsAddr
	}

	opts := []deframe.Option{
		deframe.WithMaxPayloadSize(maxPayloadSize),
		deframe.WithLogger(logger.New(cfg.Logger)),
	}
	if decompressor != nil {
		opts = append(opts, deframe.WithDecompressor(decompressor))
	}

	var srv *http.Server
	if metricsEnabled {
		reg := prometheus.NewRegistry()
		collector := metrics.NewCollector(reg, "framedump", "deframe")
		opts = append(opts, deframe.WithMetrics(collector))

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		srv = &http.Server{Addr: metricsAddr, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Errorf("framedump: metrics server stopped: %v", err)
			}
		}()
		defer srv.Close()
		logger.Infof("serving metrics on %s/metrics", metricsAddr)
	}

	in, err := openInput(args[0])
	if err != nil {
		return err
	}
	defer in.Close()

	return dumpFrames(cmd.OutOrStdout(), in, deframe.New(opts...))
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("framedump: open %s: %w", path, err)
	}
	return f, nil
}

// dumpFrames reads in in fixed-size chunks (simulating arbitrary transport
// chunking, never assuming chunk boundaries align with frame boundaries) and
// prints every frame the Deframer produces until EOF or a fatal decode error.
func dumpFrames(w io.Writer, in io.Reader, d *deframe.Deframer) error {
	defer d.Close()

	chunk := make([]byte, common.ReadWriteBlockSize)
	count := 0
	for {
		n, readErr := in.Read(chunk)
		if n > 0 {
			d.Append(chunk[:n])
			drainErr := d.DrainInto(func(f deframe.Frame) {
				count++
				if decodeConfig.hex {
					fmt.Fprintf(w, "frame %d: %d bytes: %s\n", count, len(f), hex.EncodeToString(f))
				} else {
					fmt.Fprintf(w, "frame %d: %d bytes\n", count, len(f))
				}
			})
			if drainErr != nil {
				return fmt.Errorf("framedump: %w", drainErr)
			}
		}
		if readErr == io.EOF {
			fmt.Fprintf(w, "done: %d frame(s)\n", count)
			return nil
		}
		if readErr != nil {
			return fmt.Errorf("framedump: read input: %w", readErr)
		}
	}
}
