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

// Command benchparse converts `go test -bench` output into gemmbench report
// lines, so results from the Go benchmark framework can be compared with
// `gemmbench run` output side by side.
//
// Usage:
//
//	go test -bench Kernels ./hwy/contrib/matmul | benchparse
//	benchparse [--keep-procs] bench.txt
//
// Each benchmark line becomes
//
//	Average execution time for kernel <name> using <N> measurements: <seconds>.
//
// where <seconds> is the reported ns/op.
package main

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/ajroetker/go-gemmbench/bench"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/spf13/pflag"
	"golang.org/x/tools/benchmark/parse"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	if err := run(os.Args[1:], os.Stdin, os.Stdout, log); err != nil {
		log.Error().Err(err).Msg("benchparse failed")
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer, log zerolog.Logger) error {
	fs := pflag.NewFlagSet("benchparse", pflag.ContinueOnError)
	keepProcs := fs.Bool("keep-procs", false, "keep the -GOMAXPROCS suffix in benchmark names")
	if err := fs.Parse(args); err != nil {
		return err
	}

	in := stdin
	switch fs.NArg() {
	case 0:
	case 1:
		f, err := os.Open(fs.Arg(0))
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	default:
		return fmt.Errorf("expected at most one input file, got %d", fs.NArg())
	}

	set, err := parse.ParseSet(in)
	if err != nil {
		return fmt.Errorf("parsing benchmark output: %w", err)
	}

	results := lo.Filter(lo.Flatten(lo.Values(set)), func(b *parse.Benchmark, _ int) bool {
		if b.Measured&parse.NsPerOp == 0 {
			log.Warn().Str("benchmark", b.Name).Msg("no ns/op, skipping")
			return false
		}
		return true
	})
	slices.SortFunc(results, func(a, b *parse.Benchmark) int { return a.Ord - b.Ord })
	log.Debug().Int("benchmarks", len(results)).Msg("parsed")

	for _, b := range results {
		line := bench.Line(kernelName(b.Name, *keepProcs), b.N, b.NsPerOp/1e9)
		if _, err := fmt.Fprintln(stdout, line); err != nil {
			return err
		}
	}
	return nil
}

// kernelName turns "BenchmarkKernels/mm_blocked-8" into
// "Kernels/mm_blocked".
func kernelName(name string, keepProcs bool) string {
	name = strings.TrimPrefix(name, "Benchmark")
	if keepProcs {
		return name
	}
	if i := strings.LastIndexByte(name, '-'); i >= 0 {
		if _, err := strconv.Atoi(name[i+1:]); err == nil {
			return name[:i]
		}
	}
	return name
}
