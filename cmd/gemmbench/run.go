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

package main

import (
	"github.com/ajroetker/go-gemmbench/bench"
	"github.com/ajroetker/go-gemmbench/hwy"
	"github.com/ajroetker/go-gemmbench/hwy/contrib/matmul"
	"github.com/spf13/cobra"
)

func newRunCmd(opts *rootOptions) *cobra.Command {
	var (
		size         int
		measurements int
		seed         int64
		gflops       bool
		sel          selection
	)
	cfg := matmul.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Profile kernels and print one report line each",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkSize(size); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			kernels, err := sel.kernels(cfg)
			if err != nil {
				return err
			}

			log := opts.log
			log.Info().
				Str("dispatch", hwy.CurrentName()).
				Int("size", size).
				Int("measurements", measurements).
				Int("kernels", len(kernels)).
				Interface("config", cfg).
				Msg("starting")

			h := bench.New(cmd.OutOrStdout(), bench.WithLogger(log))
			reports := make([]bench.Report, 0, len(kernels))
			for _, k := range kernels {
				r, err := h.Profile(k.Name, matmul.Job(k, size, seed), measurements)
				if err != nil {
					return err
				}
				reports = append(reports, r)
			}

			if gflops {
				return writeSummary(cmd.OutOrStdout(), kernels, reports, size)
			}
			return nil
		},
	}

	fs := cmd.Flags()
	fs.IntVarP(&size, "size", "n", 1024, "matrix dimension (all matrices are size x size)")
	fs.IntVarP(&measurements, "measurements", "m", bench.DefaultMeasurements, "timed runs per kernel")
	fs.Int64Var(&seed, "seed", 1, "seed for the random operands")
	fs.BoolVar(&gflops, "gflops", false, "print a GFLOPS summary after the report lines")
	sel.register(fs)
	fs.AddFlagSet(configFlags(&cfg))
	return cmd
}
