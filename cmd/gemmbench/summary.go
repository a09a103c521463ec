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
	"io"

	"github.com/ajroetker/go-gemmbench/bench"
	"github.com/ajroetker/go-gemmbench/hwy/contrib/matmul"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	title   = cases.Title(language.English)
	printer = message.NewPrinter(language.English)
)

// writeSummary prints a table of mean time and throughput per kernel,
// grouped under title-cased group headings.
func writeSummary(w io.Writer, kernels []matmul.Kernel, reports []bench.Report, size int) error {
	flops := 2 * float64(size) * float64(size) * float64(size)
	if _, err := printer.Fprintf(w, "\nSummary for %dx%d (%.0f flops per run)\n", size, size, flops); err != nil {
		return err
	}

	var group matmul.Group
	for i, k := range kernels {
		if k.Group != group {
			group = k.Group
			if _, err := printer.Fprintf(w, "%s\n", title.String(string(group))); err != nil {
				return err
			}
		}
		r := reports[i]
		if _, err := printer.Fprintf(w, "  %-22s %12.3f ms %10.2f GFLOPS\n",
			k.Name, r.Seconds()*1e3, r.Rate(flops)/1e9); err != nil {
			return err
		}
	}
	return nil
}
