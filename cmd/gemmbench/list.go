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
	"github.com/ajroetker/go-gemmbench/hwy/contrib/matmul"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List kernel groups and names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			byGroup := matmul.ByGroup(matmul.Kernels(matmul.DefaultConfig()))
			for _, g := range matmul.Groups() {
				if _, err := printer.Fprintf(w, "%s (%s)\n", title.String(string(g)), g); err != nil {
					return err
				}
				for _, k := range byGroup[g] {
					if _, err := printer.Fprintf(w, "  %s\n", k.Name); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}
}
