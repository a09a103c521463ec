// Copyright 2025 go-gemmbench Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command gemmbench profiles the dense matrix-multiplication kernels of
// github.com/ajroetker/go-gemmbench/hwy/contrib/matmul.
//
// Usage:
//
//	gemmbench run [--size 1024] [--measurements 5] [--group super]... [--kernel mm_blocked]...
//	gemmbench list
//	gemmbench verify [--size 128]
//
// Report lines go to standard output; diagnostics go to standard error.
package main

import (
	"os"

	"github.com/rs/zerolog"
)

func main() {
	opts := &rootOptions{log: zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})}
	if err := newRootCmd(opts).Execute(); err != nil {
		opts.log.Error().Err(err).Msg("gemmbench failed")
		os.Exit(1)
	}
}
