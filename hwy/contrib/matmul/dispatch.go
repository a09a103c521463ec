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

// Size-based dispatch thresholds.
const (
	// Below this many multiply-adds the serial blocked kernel wins.
	SmallMatrixThreshold = 64 * 64 * 64 // 262144 ops

	// MinParallelStrips is the minimum number of row strips needed for the
	// parallel kernel to beat the serial one.
	MinParallelStrips = 3
)

// MatMulAuto computes C = A * B, choosing between BlockedMatMul and
// ParallelBlockedMatMul by problem size:
//
//  1. Small products (M*N*K < 64^3), a single worker, or fewer than
//     MinParallelStrips row strips: BlockedMatMul.
//  2. Otherwise: ParallelBlockedMatMul.
//
// Both paths produce bit-identical results for the same cfg.
func MatMulAuto(cfg Config, a, b, c *Matrix) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	m, n, k := a.rows, b.cols, a.cols
	strips := (m + stripHeight(cfg.IBlock) - 1) / stripHeight(cfg.IBlock)
	if m*n*k < SmallMatrixThreshold || cfg.workers() == 1 || strips < MinParallelStrips {
		return BlockedMatMul(cfg, a, b, c)
	}
	return ParallelBlockedMatMul(cfg, a, b, c)
}
