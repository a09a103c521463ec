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

package matmul

import "golang.org/x/sync/errgroup"

const (
	// MinParallelOps is the minimum number of multiply-adds before
	// ParallelBlockedMatMul fans out.
	MinParallelOps = 64 * 64 * 64

	// RowsPerStrip is the target height of a row strip. The actual height
	// is rounded up to a multiple of Config.IBlock.
	RowsPerStrip = 64
)

// ParallelBlockedMatMul computes C = A * B by splitting C into horizontal
// strips and running BlockedMatMul on each strip, with at most cfg.Workers
// strips in flight. Strips own disjoint rows of C and start on IBlock
// boundaries, so the result is bit-identical to BlockedMatMul with the
// same cfg.
func ParallelBlockedMatMul(cfg Config, a, b, c *Matrix) error {
	const op = "ParallelBlockedMatMul"
	if err := cfg.Validate(); err != nil {
		return err
	}
	m, n, k, err := checkDims(op, a, b, c)
	if err != nil {
		return err
	}

	workers := cfg.workers()
	if workers == 1 || m*n*k < MinParallelOps {
		blockedMatMul(cfg, a.data, b.data, c.data, m, n, k)
		return nil
	}

	stripRows := stripHeight(cfg.IBlock)
	var g errgroup.Group
	g.SetLimit(workers)
	for rowStart := 0; rowStart < m; rowStart += stripRows {
		rowEnd := min(rowStart+stripRows, m)
		aStrip := a.data[rowStart*k : rowEnd*k]
		cStrip := c.data[rowStart*n : rowEnd*n]
		g.Go(func() error {
			blockedMatMul(cfg, aStrip, b.data, cStrip, rowEnd-rowStart, n, k)
			return nil
		})
	}
	return g.Wait()
}

// stripHeight returns the smallest multiple of iBlock that is at least
// RowsPerStrip.
func stripHeight(iBlock int) int {
	return (RowsPerStrip + iBlock - 1) / iBlock * iBlock
}
