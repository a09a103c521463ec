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
	"fmt"

	"github.com/ajroetker/go-gemmbench/hwy/contrib/matmul"
	"github.com/spf13/cobra"
)

func newVerifyCmd(opts *rootOptions) *cobra.Command {
	var (
		size int
		seed int64
		sel  selection
	)
	cfg := matmul.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check every kernel against the float64 reference product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkSize(size); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			sel.all = sel.all || (len(sel.groups) == 0 && len(sel.names) == 0)
			kernels, err := sel.kernels(cfg)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			var failed int
			for _, k := range kernels {
				res, err := matmul.Verify(k, size, size, size, seed)
				status := "ok"
				if err != nil {
					status = "FAIL"
					failed++
					opts.log.Error().Err(err).Str("kernel", k.Name).Msg("verification failed")
				}
				if _, err := printer.Fprintf(w, "%-4s %-22s max rel err %.3g (max abs err %.3g)\n",
					status, k.Name, res.MaxRelErr, res.MaxAbsErr); err != nil {
					return err
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d kernels failed verification", failed, len(kernels))
			}
			opts.log.Info().Int("kernels", len(kernels)).Int("size", size).Msg("all kernels match the reference")
			return nil
		},
	}

	fs := cmd.Flags()
	fs.IntVarP(&size, "size", "n", 128, "matrix dimension")
	fs.Int64Var(&seed, "seed", 1, "seed for the random operands")
	sel.register(fs)
	fs.AddFlagSet(configFlags(&cfg))
	return cmd
}
