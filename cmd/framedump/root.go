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
	"github.com/spf13/cobra"

	"github.com/packetd/grpcframe/common"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   common.App,
	Short: "framedump inspects gRPC-over-HTTP/2 length-prefixed byte streams",
	Example: "# framedump decode capture.bin\n" +
		"# cat capture.bin | framedump decode -",
	Version: common.Version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Configuration file path (optional)")
}
